package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/nusabank/onboarding-api/internal/domain"
	"github.com/nusabank/onboarding-api/internal/domain/repository"
	"github.com/nusabank/onboarding-api/pkg/jwt"
	"github.com/nusabank/onboarding-api/pkg/logger"
)

// JWTConfig configuración para emisión de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// msgInvalidCredentials mensaje genérico: no revela si el email existe
// (previene enumeración de cuentas).
const msgInvalidCredentials = "Email atau password salah."

// UseCase caso de uso de autenticación con lockout por intentos fallidos.
type UseCase struct {
	repo     repository.CustomerRepository
	attempts *LoginAttemptService
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewUseCase construye el usecase de autenticación.
func NewUseCase(repo repository.CustomerRepository, attempts *LoginAttemptService, jwtCfg JWTConfig, log *logger.Logger) *UseCase {
	return &UseCase{repo: repo, attempts: attempts, jwtCfg: jwtCfg, log: log}
}

// Login autentica por email (case-insensitive) y password. En éxito resetea
// el contador de intentos, limpia el bloqueo y emite un JWT con el email como
// subject. En fallo registra el intento en una transacción propia.
func (uc *UseCase) Login(ctx context.Context, email, password string) (string, error) {
	customer, err := uc.repo.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return "", fmt.Errorf("buscar cliente: %w", err)
	}
	if customer == nil {
		// Sin cliente no hay intentos que trackear; mensaje genérico.
		return "", domain.WithMessage(domain.ErrInvalidCredentials, msgInvalidCredentials)
	}

	if uc.attempts.IsLocked(customer) {
		return "", domain.WithMessage(domain.ErrAccountLocked,
			fmt.Sprintf("Akun Anda terkunci karena terlalu banyak percobaan login gagal. Silakan coba lagi setelah %d menit.",
				uc.attempts.LockoutMinutes()))
	}

	if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)) == nil {
		customer.FailedLoginAttempts = 0
		customer.LockedUntil = nil
		if err := uc.repo.UpdateLoginState(ctx, customer); err != nil {
			return "", fmt.Errorf("resetear intentos: %w", err)
		}
		return jwt.Generate(uc.jwtCfg.Secret, customer.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	}

	updated, err := uc.attempts.RecordFailedAttempt(ctx, customer.Email)
	if err != nil {
		return "", fmt.Errorf("registrar intento fallido: %w", err)
	}

	if updated.FailedLoginAttempts >= uc.attempts.MaxAttempts() {
		return "", domain.WithMessage(domain.ErrAccountLocked,
			fmt.Sprintf("Terlalu banyak percobaan login gagal. Akun Anda telah terkunci selama %d menit.",
				uc.attempts.LockoutMinutes()))
	}
	return "", domain.WithMessage(domain.ErrInvalidCredentials,
		fmt.Sprintf("Email atau password salah. Sisa percobaan: %d",
			uc.attempts.MaxAttempts()-updated.FailedLoginAttempts))
}

// ValidateToken indica si un token emitido por este servicio es válido.
func (uc *UseCase) ValidateToken(token string) bool {
	return jwt.Validate(uc.jwtCfg.Secret, token)
}

// EmailFromToken extrae el email (subject) de un token válido.
func (uc *UseCase) EmailFromToken(token string) (string, error) {
	return jwt.Parse(uc.jwtCfg.Secret, token)
}

// TokenForEmail emite un token para un email ya autenticado por otra vía
// (ej. verificación de email).
func (uc *UseCase) TokenForEmail(email string) (string, error) {
	return jwt.Generate(uc.jwtCfg.Secret, strings.ToLower(email), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
}
