package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/nusabank/onboarding-api/internal/application/auth"
	"github.com/nusabank/onboarding-api/internal/application/dto"
	"github.com/nusabank/onboarding-api/internal/application/registration"
	"github.com/nusabank/onboarding-api/internal/domain"
)

// AuthHandler maneja registro de clientes, login y utilidades de sesión.
type AuthHandler struct {
	regUC  *registration.UseCase
	authUC *auth.UseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(regUC *registration.UseCase, authUC *auth.UseCase) *AuthHandler {
	return &AuthHandler{regUC: regUC, authUC: authUC}
}

// statusForError mapea el error de dominio al código HTTP. El mensaje
// visible viene del propio error (domain.WithMessage).
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrRegistryUnavailable):
		return fiber.StatusServiceUnavailable, "REGISTRY_UNAVAILABLE"
	case errors.Is(err, domain.ErrIdentityMismatch):
		return fiber.StatusBadRequest, "IDENTITY_MISMATCH"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return fiber.StatusConflict, "EMAIL_EXISTS"
	case errors.Is(err, domain.ErrDuplicatePhone):
		return fiber.StatusConflict, "PHONE_EXISTS"
	case errors.Is(err, domain.ErrDuplicateNIK):
		return fiber.StatusConflict, "NIK_EXISTS"
	case errors.Is(err, domain.ErrConstraintViolation):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, "INVALID_CREDENTIALS"
	case errors.Is(err, domain.ErrAccountLocked):
		return fiber.StatusLocked, "ACCOUNT_LOCKED"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

func errorJSON(c *fiber.Ctx, err error) error {
	status, code := statusForError(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

// Register godoc
// @Summary      Registrar cliente
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "datos del formulario de registro"
// @Success      201   {object}  dto.RegisterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.NIK == "" || in.FullName == "" || in.BirthDate == "" || in.Email == "" || in.Phone == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nik, full_name, birth_date, email, phone y password son requeridos"})
	}
	if !h.regUC.ValidateNIKFormat(in.NIK) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "NIK harus 16 digit angka dengan kode wilayah valid"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "Password minimal 8 karakter"})
	}

	out, err := h.regUC.Register(c.UserContext(), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      423   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	token, err := h.authUC.Login(c.UserContext(), in.Email, in.Password)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(dto.LoginResponse{Token: token})
}

// PasswordStrength godoc
// @Summary      Evaluar fuerza de password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PasswordStrengthRequest  true  "password candidato"
// @Success      200   {object}  dto.PasswordStrengthResponse
// @Router       /api/auth/password-strength [post]
func (h *AuthHandler) PasswordStrength(c *fiber.Ctx) error {
	var in dto.PasswordStrengthRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return c.JSON(dto.PasswordStrengthResponse{Strength: registration.CheckPasswordStrength(in.Password)})
}

// VerifyEmail godoc
// @Summary      Marcar email como verificado
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EmailVerificationRequest  true  "email"
// @Success      200   {object}  fiber.Map
// @Router       /api/auth/verify-email [post]
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var in dto.EmailVerificationRequest
	if err := c.BodyParser(&in); err != nil || in.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email es requerido"})
	}
	if err := h.regUC.VerifyEmail(c.UserContext(), in.Email); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"verified": true})
}

// Me godoc
// @Summary      Perfil del cliente autenticado
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.CustomerProfile
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	email := GetEmail(c)
	customer, err := h.regUC.CustomerByEmail(c.UserContext(), email)
	if err != nil {
		return errorJSON(c, err)
	}
	if customer == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
	}
	return c.JSON(dto.CustomerProfile{
		FullName:    customer.FullName,
		Email:       customer.Email,
		Phone:       customer.Phone,
		CardTier:    customer.CardTier.String(),
		AccountCode: strconv.FormatInt(int64(customer.AccountCode), 10),
		AccountType: customer.AccountType,
		CardNumber:  customer.CardNumber,
	})
}
