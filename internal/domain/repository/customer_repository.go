package repository

import (
	"context"

	"github.com/nusabank/onboarding-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer (DIP).
// Los chequeos Exists* son pre-checks de contención: la palabra final sobre
// unicidad la tienen los constraints de la base de datos en Create.
type CustomerRepository interface {
	// Create persiste el agregado completo (customer + address + guardian)
	// en una sola transacción. Una violación de constraint único se traduce
	// a domain.ErrConstraintViolation.
	Create(ctx context.Context, customer *entity.Customer) error

	FindByEmail(ctx context.Context, email string) (*entity.Customer, error) // case-insensitive
	FindByNIK(ctx context.Context, nik string) (*entity.Customer, error)
	FindByAccountCode(ctx context.Context, code int32) (*entity.Customer, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error) // case-insensitive
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	ExistsByNIK(ctx context.Context, nik string) (bool, error)
	ExistsByAccountCode(ctx context.Context, code int32) (bool, error)
	ExistsByCardNumber(ctx context.Context, cardNumber string) (bool, error)

	// UpdateLoginState persiste contador de intentos fallidos y bloqueo.
	UpdateLoginState(ctx context.Context, customer *entity.Customer) error
	// MarkEmailVerified marca el email como verificado.
	MarkEmailVerified(ctx context.Context, email string) error

	CountAll(ctx context.Context) (int64, error)
	CountEmailVerified(ctx context.Context) (int64, error)
}
