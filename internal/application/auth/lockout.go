package auth

import (
	"context"
	"time"

	"github.com/nusabank/onboarding-api/internal/domain"
	"github.com/nusabank/onboarding-api/internal/domain/entity"
	"github.com/nusabank/onboarding-api/internal/domain/repository"
	"github.com/nusabank/onboarding-api/pkg/logger"
)

// TxRunner ejecuta fn dentro de una transacción propia con un repositorio
// atado a esa transacción. El servicio de intentos lo usa para que el
// registro de un intento fallido sea durable aunque la operación que lo
// rodea termine abortando.
type TxRunner interface {
	Run(ctx context.Context, fn func(repo repository.CustomerRepository) error) error
}

// LoginAttemptService lleva el contador de intentos fallidos de login y el
// bloqueo temporal por cuenta.
type LoginAttemptService struct {
	tx          TxRunner
	maxAttempts int
	lockout     time.Duration
	now         func() time.Time
	log         *logger.Logger
}

// NewLoginAttemptService construye el servicio con los parámetros del lockout.
func NewLoginAttemptService(tx TxRunner, maxAttempts, lockoutMinutes int, log *logger.Logger) *LoginAttemptService {
	return &LoginAttemptService{
		tx:          tx,
		maxAttempts: maxAttempts,
		lockout:     time.Duration(lockoutMinutes) * time.Minute,
		now:         time.Now,
		log:         log,
	}
}

// RecordFailedAttempt incrementa el contador de intentos fallidos del cliente
// y, si alcanza el máximo, fija el vencimiento del bloqueo. Corre en su propia
// transacción: el efecto persiste aunque la transacción del caller falle.
func (s *LoginAttemptService) RecordFailedAttempt(ctx context.Context, email string) (*entity.Customer, error) {
	var updated *entity.Customer

	err := s.tx.Run(ctx, func(repo repository.CustomerRepository) error {
		customer, err := repo.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrNotFound
		}

		customer.FailedLoginAttempts++
		if customer.FailedLoginAttempts >= s.maxAttempts {
			lockedUntil := s.now().Add(s.lockout)
			customer.LockedUntil = &lockedUntil
		}

		if err := repo.UpdateLoginState(ctx, customer); err != nil {
			return err
		}
		updated = customer
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Warn().
		Str("customer_id", updated.ID).
		Int("failed_attempts", updated.FailedLoginAttempts).
		Bool("locked", updated.LockedUntil != nil).
		Msg("intento de login fallido registrado")

	return updated, nil
}

// IsLocked indica si la cuenta está bloqueada ahora.
func (s *LoginAttemptService) IsLocked(customer *entity.Customer) bool {
	return customer.IsLockedAt(s.now())
}

// MaxAttempts máximo de intentos fallidos consecutivos antes del bloqueo.
func (s *LoginAttemptService) MaxAttempts() int {
	return s.maxAttempts
}

// LockoutMinutes duración del bloqueo en minutos (para mensajes al usuario).
func (s *LoginAttemptService) LockoutMinutes() int {
	return int(s.lockout.Minutes())
}
