package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nusabank/onboarding-api/internal/application/dto"
	"github.com/nusabank/onboarding-api/internal/application/registration"
)

// VerificationHandler maneja los chequeos previos al registro: verificación
// de identidad contra Dukcapil y disponibilidad de email/teléfono.
type VerificationHandler struct {
	regUC *registration.UseCase
}

// NewVerificationHandler construye el handler de verificación.
func NewVerificationHandler(regUC *registration.UseCase) *VerificationHandler {
	return &VerificationHandler{regUC: regUC}
}

// VerifyNIK godoc
// @Summary      Verificar NIK con nombre y fecha de nacimiento (preview, sin efectos)
// @Tags         verification
// @Accept       json
// @Produce      json
// @Param        body  body  dto.NIKVerificationRequest  true  "nik, full_name, birth_date"
// @Success      200   {object}  dukcapil.VerificationOutcome
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/verification/nik [post]
func (h *VerificationHandler) VerifyNIK(c *fiber.Ctx) error {
	var in dto.NIKVerificationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.NIK == "" || in.FullName == "" || in.BirthDate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nik, full_name y birth_date son requeridos"})
	}
	outcome, err := h.regUC.ValidateIdentity(c.UserContext(), in.NIK, in.FullName, in.BirthDate)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(outcome)
}

// CheckNIK godoc
// @Summary      Chequeo simple de existencia de NIK en Dukcapil
// @Tags         verification
// @Accept       json
// @Produce      json
// @Param        body  body  dto.NIKCheckRequest  true  "nik"
// @Success      200   {object}  fiber.Map
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/verification/nik-check [post]
func (h *VerificationHandler) CheckNIK(c *fiber.Ctx) error {
	var in dto.NIKCheckRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.NIK) != 16 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "NIK harus 16 digit"})
	}
	registered := h.regUC.CheckNIKExists(c.UserContext(), in.NIK)
	message := "NIK tidak terdaftar di database Dukcapil"
	if registered {
		message = "NIK terdaftar di database Dukcapil"
	}
	return c.JSON(fiber.Map{"registered": registered, "message": message})
}

// CheckEmail godoc
// @Summary      Disponibilidad de email
// @Tags         verification
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EmailVerificationRequest  true  "email"
// @Success      200   {object}  dto.AvailabilityResponse
// @Router       /api/verification/email [post]
func (h *VerificationHandler) CheckEmail(c *fiber.Ctx) error {
	var in dto.EmailVerificationRequest
	if err := c.BodyParser(&in); err != nil || in.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email es requerido"})
	}
	available, err := h.regUC.EmailAvailable(c.UserContext(), in.Email)
	if err != nil {
		return errorJSON(c, err)
	}
	message := "Email sudah terdaftar"
	if available {
		message = "Email tersedia"
	}
	return c.JSON(dto.AvailabilityResponse{Available: available, Message: message})
}

// CheckPhone godoc
// @Summary      Disponibilidad de número de teléfono
// @Tags         verification
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PhoneVerificationRequest  true  "phone"
// @Success      200   {object}  dto.AvailabilityResponse
// @Router       /api/verification/phone [post]
func (h *VerificationHandler) CheckPhone(c *fiber.Ctx) error {
	var in dto.PhoneVerificationRequest
	if err := c.BodyParser(&in); err != nil || in.Phone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "phone es requerido"})
	}
	available, err := h.regUC.PhoneAvailable(c.UserContext(), in.Phone)
	if err != nil {
		return errorJSON(c, err)
	}
	message := "Nomor telepon sudah terdaftar"
	if available {
		message = "Nomor telepon tersedia"
	}
	return c.JSON(dto.AvailabilityResponse{Available: available, Message: message})
}

// Stats godoc
// @Summary      Estadísticas de registro y estado de Dukcapil
// @Tags         verification
// @Produce      json
// @Success      200  {object}  dto.StatsResponse
// @Router       /api/verification/stats [get]
func (h *VerificationHandler) Stats(c *fiber.Ctx) error {
	out, err := h.regUC.Stats(c.UserContext())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}
