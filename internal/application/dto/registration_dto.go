package dto

// AddressRequest sub-registro de dirección del formulario (siempre obligatorio).
type AddressRequest struct {
	Street      string `json:"street"`
	Province    string `json:"province"`
	City        string `json:"city"`
	District    string `json:"district"`
	SubDistrict string `json:"sub_district"`
	PostalCode  string `json:"postal_code"`
}

// GuardianRequest sub-registro de wali del formulario (opcional).
type GuardianRequest struct {
	Relationship string `json:"relationship"`
	FullName     string `json:"full_name"`
	Occupation   string `json:"occupation"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
}

// IsComplete indica si todos los campos del wali llegaron no vacíos.
// Solo un wali completo se persiste; si falta cualquier campo se omite.
func (g *GuardianRequest) IsComplete() bool {
	if g == nil {
		return false
	}
	return g.Relationship != "" && g.FullName != "" && g.Occupation != "" &&
		g.Address != "" && g.Phone != ""
}

// RegisterRequest formulario de registro de cliente.
// BirthDate viaja como "YYYY-MM-DD" (mismo formato que Dukcapil).
type RegisterRequest struct {
	NIK              string `json:"nik"`
	FullName         string `json:"full_name"`
	BirthPlace       string `json:"birth_place"`
	BirthDate        string `json:"birth_date"`
	Gender           string `json:"gender"`
	Religion         string `json:"religion"`
	MotherMaidenName string `json:"mother_maiden_name"`

	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`

	AccountType    string `json:"account_type"`
	CardTier       string `json:"card_tier"`    // Silver|Gold|Platinum|Batik Air|GPN; vacío = Silver
	AccountCode    *int32 `json:"account_code"` // opcional; si es nil se genera uno único
	MaritalStatus  string `json:"marital_status"`
	Occupation     string `json:"occupation"`
	IncomeSource   string `json:"income_source"`
	IncomeRange    string `json:"income_range"`
	AccountPurpose string `json:"account_purpose"`

	Address  AddressRequest   `json:"address"`
	Guardian *GuardianRequest `json:"guardian"`
}

// RegisterResponse proyección devuelta tras un registro exitoso.
type RegisterResponse struct {
	CardTier    string `json:"card_tier"`
	FullName    string `json:"full_name"`
	AccountCode string `json:"account_code"` // como texto
	AccountType string `json:"account_type"`
	CardNumber  string `json:"card_number"`
}

// CustomerProfile proyección del cliente para el endpoint /me.
type CustomerProfile struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CardTier    string `json:"card_tier"`
	AccountCode string `json:"account_code"`
	AccountType string `json:"account_type"`
	CardNumber  string `json:"card_number"`
}
