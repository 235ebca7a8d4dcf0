package registration

import "strings"

// Etiquetas de fuerza de password que viajan en la API (idioma del producto).
const (
	StrengthWeak   = "lemah"
	StrengthMedium = "sedang"
	StrengthStrong = "kuat"
)

// specialChars conjunto fijo de caracteres especiales que suman al score.
const specialChars = "@$!%*?&"

// CheckPasswordStrength clasifica un password candidato en lemah/sedang/kuat.
// Menos de 8 caracteres es automáticamente lemah. Con 8 o más: score base 1,
// +1 por minúscula, mayúscula, dígito y carácter especial presentes.
// Score 0-2 lemah, 3-4 sedang, 5 kuat.
func CheckPasswordStrength(password string) string {
	if len(password) < 8 {
		return StrengthWeak
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, c := range password {
		switch {
		case c >= 'a' && c <= 'z':
			hasLower = true
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		case c >= '0' && c <= '9':
			hasDigit = true
		case strings.ContainsRune(specialChars, c):
			hasSpecial = true
		}
		if hasLower && hasUpper && hasDigit && hasSpecial {
			break
		}
	}

	score := 1 // largo >= 8
	for _, ok := range []bool{hasLower, hasUpper, hasDigit, hasSpecial} {
		if ok {
			score++
		}
	}

	switch {
	case score <= 2:
		return StrengthWeak
	case score <= 4:
		return StrengthMedium
	default:
		return StrengthStrong
	}
}
