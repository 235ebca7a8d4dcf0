package domain

import "errors"

// Errores de dominio del onboarding (sin dependencias externas).
// Los handlers HTTP los traducen a códigos de estado; los mensajes visibles
// para el cliente final se construyen en los usecases.
var (
	ErrRegistryUnavailable = errors.New("servicio Dukcapil no disponible")
	ErrIdentityMismatch    = errors.New("verificación de identidad rechazada por Dukcapil")
	ErrDuplicateEmail      = errors.New("el email ya está registrado")
	ErrDuplicatePhone      = errors.New("el número de teléfono ya está registrado")
	ErrDuplicateNIK        = errors.New("el NIK ya fue usado en un registro")
	ErrInvalidCredentials  = errors.New("credenciales inválidas")
	ErrAccountLocked       = errors.New("cuenta bloqueada por intentos fallidos")
	ErrConstraintViolation = errors.New("conflicto de unicidad al persistir")
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
)

// Error envuelve un sentinel con el mensaje visible para el cliente final
// (en indonesio, idioma del producto). errors.Is sigue funcionando contra
// el sentinel; los handlers usan Error() como mensaje de respuesta.
type Error struct {
	Sentinel error
	Message  string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Sentinel.Error()
}

func (e *Error) Unwrap() error { return e.Sentinel }

// WithMessage construye un error de dominio con mensaje para el usuario.
func WithMessage(sentinel error, message string) error {
	return &Error{Sentinel: sentinel, Message: message}
}
