package entity

import "time"

// Customer es el agregado central del onboarding: identidad verificada contra
// Dukcapil, datos de cuenta generados y estado de seguridad del login.
// Los campos de identidad son inmutables después de la creación.
type Customer struct {
	ID string

	// Identidad (preferencia: payload KTP de Dukcapil; fallback: formulario)
	NIK              string // 16 dígitos, codifica región
	FullName         string
	BirthPlace       string
	BirthDate        time.Time
	Gender           string
	Religion         string
	MotherMaidenName string

	// Cuenta
	AccountType    string
	CardTier       CardTier
	AccountCode    int32  // generado, único
	CardNumber     string // 16 dígitos formateados "dddd dddd dddd dddd", único
	MaritalStatus  string
	Occupation     string
	IncomeSource   string
	IncomeRange    string
	AccountPurpose string

	// Contacto
	Email        string // siempre en minúsculas, único (case-insensitive)
	Phone        string // único
	PasswordHash string // bcrypt, nunca plano después de persistir

	// Estado de seguridad
	EmailVerified       bool
	FailedLoginAttempts int
	LockedUntil         *time.Time // nil = no bloqueado

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relaciones (owned, cascade delete con el cliente)
	Address  Address   // obligatoria, exactamente una
	Guardian *Guardian // opcional, solo si el sub-registro del formulario está completo
}

// IsLockedAt indica si la cuenta está bloqueada en el instante dado.
func (c *Customer) IsLockedAt(now time.Time) bool {
	return c.LockedUntil != nil && c.LockedUntil.After(now)
}

// Address es la dirección del cliente (owned por Customer).
type Address struct {
	ID          string
	Street      string // nama alamat
	Province    string
	City        string
	District    string // kecamatan
	SubDistrict string // kelurahan
	PostalCode  string
}

// Guardian es el wali del cliente (owned, presente solo si todos sus campos
// llegaron completos en el registro).
type Guardian struct {
	ID           string
	Relationship string // jenis wali
	FullName     string
	Occupation   string
	Address      string
	Phone        string
}
