package dto

// NIKVerificationRequest verificación de identidad contra Dukcapil (preview, sin efectos).
type NIKVerificationRequest struct {
	NIK       string `json:"nik"`
	FullName  string `json:"full_name"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD
}

// NIKCheckRequest chequeo simple de existencia de un NIK en Dukcapil.
type NIKCheckRequest struct {
	NIK string `json:"nik"`
}

// EmailVerificationRequest chequeo de disponibilidad de email.
type EmailVerificationRequest struct {
	Email string `json:"email"`
}

// PhoneVerificationRequest chequeo de disponibilidad de teléfono.
type PhoneVerificationRequest struct {
	Phone string `json:"phone"`
}

// AvailabilityResponse respuesta de los chequeos de disponibilidad.
type AvailabilityResponse struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

// StatsResponse estadísticas de registro y estado del registro civil.
type StatsResponse struct {
	TotalCustomers    int64   `json:"total_customers"`
	VerifiedCustomers int64   `json:"verified_customers"`
	VerificationRate  float64 `json:"verification_rate"`
	RegistryAvailable bool    `json:"registry_available"`
	RegistryURL       string  `json:"registry_url"`
}
