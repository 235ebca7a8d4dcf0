package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nusabank/onboarding-api/internal/domain"
	"github.com/nusabank/onboarding-api/internal/domain/entity"
	"github.com/nusabank/onboarding-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación del puerto CustomerRepository sobre PostgreSQL
// (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador de persistencia para clientes.
// Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `
	id, nik, full_name, birth_place, birth_date, gender, religion, mother_maiden_name,
	account_type, card_tier, account_code, card_number,
	marital_status, occupation, income_source, income_range, account_purpose,
	email, phone, password_hash,
	email_verified, failed_login_attempts, locked_until,
	created_at, updated_at`

// Create persiste el agregado completo (customer + address + guardian) en una
// sola transacción. Los constraints únicos de la tabla son el árbitro final:
// una violación se traduce a domain.ErrConstraintViolation.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	insertCustomer := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
		        $9, $10, $11, $12,
		        $13, $14, $15, $16, $17,
		        $18, $19, $20,
		        $21, $22, $23,
		        $24, $25)`
	_, err = tx.Exec(ctx, insertCustomer,
		c.ID, c.NIK, c.FullName, c.BirthPlace, c.BirthDate, c.Gender, c.Religion, c.MotherMaidenName,
		c.AccountType, c.CardTier.String(), c.AccountCode, c.CardNumber,
		c.MaritalStatus, c.Occupation, c.IncomeSource, c.IncomeRange, c.AccountPurpose,
		c.Email, c.Phone, c.PasswordHash,
		c.EmailVerified, c.FailedLoginAttempts, c.LockedUntil,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert customer: %w", domain.ErrConstraintViolation)
		}
		return fmt.Errorf("insert customer: %w", err)
	}

	insertAddress := `
		INSERT INTO customer_addresses (id, customer_id, street, province, city, district, sub_district, postal_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	a := c.Address
	if _, err := tx.Exec(ctx, insertAddress,
		a.ID, c.ID, a.Street, a.Province, a.City, a.District, a.SubDistrict, a.PostalCode,
	); err != nil {
		return fmt.Errorf("insert address: %w", err)
	}

	if c.Guardian != nil {
		insertGuardian := `
			INSERT INTO customer_guardians (id, customer_id, relationship, full_name, occupation, address, phone)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
		g := c.Guardian
		if _, err := tx.Exec(ctx, insertGuardian,
			g.ID, c.ID, g.Relationship, g.FullName, g.Occupation, g.Address, g.Phone,
		); err != nil {
			return fmt.Errorf("insert guardian: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("commit customer: %w", domain.ErrConstraintViolation)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// FindByEmail busca un cliente por email sin distinguir mayúsculas.
func (r *CustomerRepo) FindByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	return r.findOne(ctx, `lower(email) = lower($1)`, email)
}

// FindByNIK busca un cliente por NIK.
func (r *CustomerRepo) FindByNIK(ctx context.Context, nik string) (*entity.Customer, error) {
	return r.findOne(ctx, `nik = $1`, nik)
}

// FindByAccountCode busca un cliente por código de cuenta.
func (r *CustomerRepo) FindByAccountCode(ctx context.Context, code int32) (*entity.Customer, error) {
	return r.findOne(ctx, `account_code = $1`, code)
}

func (r *CustomerRepo) findOne(ctx context.Context, where string, arg any) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE ` + where

	var c entity.Customer
	var tier string
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&c.ID, &c.NIK, &c.FullName, &c.BirthPlace, &c.BirthDate, &c.Gender, &c.Religion, &c.MotherMaidenName,
		&c.AccountType, &tier, &c.AccountCode, &c.CardNumber,
		&c.MaritalStatus, &c.Occupation, &c.IncomeSource, &c.IncomeRange, &c.AccountPurpose,
		&c.Email, &c.Phone, &c.PasswordHash,
		&c.EmailVerified, &c.FailedLoginAttempts, &c.LockedUntil,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	// Un tier ilegible en la fila es corrupción de datos, no input del usuario.
	c.CardTier, err = entity.ParseCardTier(tier)
	if err != nil {
		return nil, fmt.Errorf("card tier persistido inválido: %w", err)
	}

	if err := r.loadRelations(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// loadRelations carga la dirección (obligatoria) y el wali (opcional).
func (r *CustomerRepo) loadRelations(ctx context.Context, c *entity.Customer) error {
	addrQuery := `
		SELECT id, street, province, city, district, sub_district, postal_code
		FROM customer_addresses WHERE customer_id = $1`
	err := r.q.QueryRow(ctx, addrQuery, c.ID).Scan(
		&c.Address.ID, &c.Address.Street, &c.Address.Province, &c.Address.City,
		&c.Address.District, &c.Address.SubDistrict, &c.Address.PostalCode,
	)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("load address: %w", err)
	}

	guardianQuery := `
		SELECT id, relationship, full_name, occupation, address, phone
		FROM customer_guardians WHERE customer_id = $1`
	var g entity.Guardian
	err = r.q.QueryRow(ctx, guardianQuery, c.ID).Scan(
		&g.ID, &g.Relationship, &g.FullName, &g.Occupation, &g.Address, &g.Phone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("load guardian: %w", err)
	}
	c.Guardian = &g
	return nil
}

// ExistsByEmail indica si un email ya está registrado (case-insensitive).
func (r *CustomerRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `lower(email) = lower($1)`, email)
}

// ExistsByPhone indica si un teléfono ya está registrado.
func (r *CustomerRepo) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	return r.exists(ctx, `phone = $1`, phone)
}

// ExistsByNIK indica si un NIK ya fue usado para registrarse.
func (r *CustomerRepo) ExistsByNIK(ctx context.Context, nik string) (bool, error) {
	return r.exists(ctx, `nik = $1`, nik)
}

// ExistsByAccountCode indica si un código de cuenta ya está asignado.
func (r *CustomerRepo) ExistsByAccountCode(ctx context.Context, code int32) (bool, error) {
	return r.exists(ctx, `account_code = $1`, code)
}

// ExistsByCardNumber indica si un número de tarjeta ya está asignado.
func (r *CustomerRepo) ExistsByCardNumber(ctx context.Context, cardNumber string) (bool, error) {
	return r.exists(ctx, `card_number = $1`, cardNumber)
}

func (r *CustomerRepo) exists(ctx context.Context, where string, arg any) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM customers WHERE ` + where + `)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, arg).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists customer: %w", err)
	}
	return exists, nil
}

// UpdateLoginState persiste el contador de intentos fallidos y el bloqueo.
func (r *CustomerRepo) UpdateLoginState(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE customers
		SET failed_login_attempts = $2, locked_until = $3, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, c.ID, c.FailedLoginAttempts, c.LockedUntil)
	if err != nil {
		return fmt.Errorf("update login state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkEmailVerified marca el email como verificado. No falla si no existe.
func (r *CustomerRepo) MarkEmailVerified(ctx context.Context, email string) error {
	query := `
		UPDATE customers SET email_verified = TRUE, updated_at = now()
		WHERE lower(email) = lower($1)`
	if _, err := r.q.Exec(ctx, query, email); err != nil {
		return fmt.Errorf("mark email verified: %w", err)
	}
	return nil
}

// CountAll cantidad total de clientes registrados.
func (r *CustomerRepo) CountAll(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM customers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}

// CountEmailVerified cantidad de clientes con email verificado.
func (r *CustomerRepo) CountEmailVerified(ctx context.Context) (int64, error) {
	var n int64
	query := `SELECT count(*) FROM customers WHERE email_verified`
	if err := r.q.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count verified customers: %w", err)
	}
	return n, nil
}
