package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nusabank/onboarding-api/internal/application/auth"
	"github.com/nusabank/onboarding-api/internal/application/registration"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RegistrationUC *registration.UseCase
	AuthUC         *auth.UseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.RegistrationUC, deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/password-strength", authHandler.PasswordStrength)
	authGroup.Post("/verify-email", authHandler.VerifyEmail)

	// Perfil (requiere Bearer Token)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Verificación previa al registro (público)
	verification := api.Group("/verification")
	verificationHandler := NewVerificationHandler(deps.RegistrationUC)
	verification.Post("/nik", verificationHandler.VerifyNIK)
	verification.Post("/nik-check", verificationHandler.CheckNIK)
	verification.Post("/email", verificationHandler.CheckEmail)
	verification.Post("/phone", verificationHandler.CheckPhone)
	verification.Get("/stats", verificationHandler.Stats)
}
