package dto

// LoginRequest credenciales de login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token emitido tras autenticación exitosa.
type LoginResponse struct {
	Token string `json:"token"`
}

// PasswordStrengthRequest candidato a evaluar.
type PasswordStrengthRequest struct {
	Password string `json:"password"`
}

// PasswordStrengthResponse clasificación del password: lemah | sedang | kuat.
type PasswordStrengthResponse struct {
	Strength string `json:"strength"`
}
