package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nusabank/onboarding-api/internal/domain"
	"github.com/nusabank/onboarding-api/internal/domain/entity"
	"github.com/nusabank/onboarding-api/internal/domain/repository"
	"github.com/nusabank/onboarding-api/pkg/jwt"
	"github.com/nusabank/onboarding-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test
// ──────────────────────────────────────────────────────────────────────────────

// memRepo repositorio en memoria mínimo para los tests de autenticación.
type memRepo struct {
	customers []*entity.Customer
}

func (m *memRepo) Create(_ context.Context, c *entity.Customer) error {
	m.customers = append(m.customers, c)
	return nil
}

func (m *memRepo) FindByEmail(_ context.Context, email string) (*entity.Customer, error) {
	for _, c := range m.customers {
		if strings.EqualFold(c.Email, email) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memRepo) FindByNIK(_ context.Context, _ string) (*entity.Customer, error) {
	return nil, nil
}

func (m *memRepo) FindByAccountCode(_ context.Context, _ int32) (*entity.Customer, error) {
	return nil, nil
}

func (m *memRepo) ExistsByEmail(_ context.Context, _ string) (bool, error)      { return false, nil }
func (m *memRepo) ExistsByPhone(_ context.Context, _ string) (bool, error)      { return false, nil }
func (m *memRepo) ExistsByNIK(_ context.Context, _ string) (bool, error)        { return false, nil }
func (m *memRepo) ExistsByAccountCode(_ context.Context, _ int32) (bool, error) { return false, nil }
func (m *memRepo) ExistsByCardNumber(_ context.Context, _ string) (bool, error) { return false, nil }

func (m *memRepo) UpdateLoginState(_ context.Context, customer *entity.Customer) error {
	for _, c := range m.customers {
		if c.ID == customer.ID {
			c.FailedLoginAttempts = customer.FailedLoginAttempts
			c.LockedUntil = customer.LockedUntil
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memRepo) MarkEmailVerified(_ context.Context, _ string) error { return nil }
func (m *memRepo) CountAll(_ context.Context) (int64, error)           { return 0, nil }
func (m *memRepo) CountEmailVerified(_ context.Context) (int64, error) { return 0, nil }

// memTxRunner ejecuta fn contra el mismo repo; suficiente para simular la
// transacción propia del registro de intentos.
type memTxRunner struct {
	repo *memRepo
	runs int
}

func (r *memTxRunner) Run(_ context.Context, fn func(repo repository.CustomerRepository) error) error {
	r.runs++
	return fn(r.repo)
}

const (
	testPassword = "Rahasia1!"
	testSecret   = "secreto-de-test-suficientemente-largo"
)

func newTestAuth(t *testing.T) (*UseCase, *memRepo, *memTxRunner) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &memRepo{customers: []*entity.Customer{{
		ID:           "c-1",
		Email:        "budi@example.com",
		PasswordHash: string(hash),
	}}}
	tx := &memTxRunner{repo: repo}
	attempts := NewLoginAttemptService(tx, 5, 15, logger.Nop())
	uc := NewUseCase(repo, attempts, JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "onboarding-api-test",
	}, logger.Nop())

	return uc, repo, tx
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_ExitosoEmiteJWTConEmailComoSubject(t *testing.T) {
	uc, _, _ := newTestAuth(t)

	token, err := uc.Login(context.Background(), "Budi@Example.com", testPassword)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "budi@example.com", email)
}

func TestLogin_EmailDesconocidoMensajeGenerico(t *testing.T) {
	uc, _, tx := newTestAuth(t)

	_, err := uc.Login(context.Background(), "nadie@example.com", testPassword)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))
	assert.Equal(t, "Email atau password salah.", err.Error(), "no debe revelar si el email existe")
	assert.Zero(t, tx.runs, "sin cliente no hay intentos que registrar")
}

func TestLogin_PasswordIncorrectoDescuentaIntentos(t *testing.T) {
	uc, repo, tx := newTestAuth(t)
	ctx := context.Background()

	for i := 1; i <= 4; i++ {
		_, err := uc.Login(ctx, "budi@example.com", "incorrecta")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))
		assert.Contains(t, err.Error(), fmt.Sprintf("Sisa percobaan: %d", 5-i))
	}

	assert.Equal(t, 4, tx.runs, "cada fallo corre su propia transacción")
	assert.Equal(t, 4, repo.customers[0].FailedLoginAttempts)
	assert.Nil(t, repo.customers[0].LockedUntil, "aún sin bloqueo")
}

func TestLogin_QuintoFalloBloqueaLaCuenta(t *testing.T) {
	uc, repo, _ := newTestAuth(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, _ = uc.Login(ctx, "budi@example.com", "incorrecta")
	}

	_, err := uc.Login(ctx, "budi@example.com", "incorrecta")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAccountLocked))
	assert.Contains(t, err.Error(), "telah terkunci selama 15 menit")
	require.NotNil(t, repo.customers[0].LockedUntil)

	// Con la cuenta bloqueada ni siquiera el password correcto entra.
	_, err = uc.Login(ctx, "budi@example.com", testPassword)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAccountLocked))
	assert.Contains(t, err.Error(), "Akun Anda terkunci")
}

func TestLogin_ExitoReseteaContadorYBloqueo(t *testing.T) {
	uc, repo, _ := newTestAuth(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _ = uc.Login(ctx, "budi@example.com", "incorrecta")
	}
	require.Equal(t, 3, repo.customers[0].FailedLoginAttempts)

	token, err := uc.Login(ctx, "budi@example.com", testPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Zero(t, repo.customers[0].FailedLoginAttempts)
	assert.Nil(t, repo.customers[0].LockedUntil)
}

func TestLogin_BloqueoExpiradoPermiteEntrar(t *testing.T) {
	uc, repo, _ := newTestAuth(t)

	past := time.Now().Add(-time.Minute)
	repo.customers[0].FailedLoginAttempts = 5
	repo.customers[0].LockedUntil = &past

	token, err := uc.Login(context.Background(), "budi@example.com", testPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Zero(t, repo.customers[0].FailedLoginAttempts)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tokens
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateToken(t *testing.T) {
	uc, _, _ := newTestAuth(t)

	token, err := uc.TokenForEmail("Budi@Example.com")
	require.NoError(t, err)
	assert.True(t, uc.ValidateToken(token))
	assert.False(t, uc.ValidateToken("no-es-un-jwt"))

	email, err := uc.EmailFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "budi@example.com", email)
}

func TestRecordFailedAttempt_EmailInexistente(t *testing.T) {
	tx := &memTxRunner{repo: &memRepo{}}
	attempts := NewLoginAttemptService(tx, 5, 15, logger.Nop())

	_, err := attempts.RecordFailedAttempt(context.Background(), "nadie@example.com")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
