package registration

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/nusabank/onboarding-api/internal/application/dto"
	"github.com/nusabank/onboarding-api/internal/domain"
	"github.com/nusabank/onboarding-api/internal/domain/entity"
	"github.com/nusabank/onboarding-api/internal/domain/repository"
	"github.com/nusabank/onboarding-api/internal/infrastructure/dukcapil"
	"github.com/nusabank/onboarding-api/pkg/logger"
)

// dateLayout formato de fecha del formulario y de Dukcapil (ISO, solo fecha).
const dateLayout = "2006-01-02"

// UseCase orquesta el registro de clientes: verificación de identidad contra
// Dukcapil, unicidad, generación de identificadores, ensamblado del agregado
// y persistencia. Cada paso es un gate duro: el primer fallo aborta todo sin
// escrituras parciales.
type UseCase struct {
	repo     repository.CustomerRepository
	registry RegistryClient
	gen      *CodeGenerator
	log      *logger.Logger
}

// NewUseCase construye el usecase de registro.
func NewUseCase(repo repository.CustomerRepository, registry RegistryClient, gen *CodeGenerator, log *logger.Logger) *UseCase {
	return &UseCase{repo: repo, registry: registry, gen: gen, log: log}
}

// Register ejecuta el flujo completo de registro. Los pasos son lineales y
// sin transiciones hacia atrás; la única escritura ocurre al final, en una
// transacción única (Create persiste customer + address + guardian).
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	birthDate, err := time.Parse(dateLayout, in.BirthDate)
	if err != nil {
		return nil, domain.WithMessage(domain.ErrInvalidInput, "Tanggal lahir harus berformat YYYY-MM-DD")
	}

	// 1. Gate de disponibilidad del registro civil
	if !uc.registry.IsHealthy(ctx) {
		return nil, domain.WithMessage(domain.ErrRegistryUnavailable,
			"Layanan Dukcapil tidak tersedia. Silakan coba lagi nanti.")
	}

	// 2. Verificación de identidad (NIK + nombre + fecha de nacimiento)
	outcome := uc.registry.VerifyIdentity(ctx, in.NIK, in.FullName, birthDate)
	if !outcome.Valid {
		return nil, domain.WithMessage(domain.ErrIdentityMismatch,
			"Verifikasi Dukcapil gagal: "+outcome.Message)
	}

	// 3-5. Unicidad: email (case-insensitive), teléfono, NIK
	if taken, err := uc.repo.ExistsByEmail(ctx, in.Email); err != nil {
		return nil, fmt.Errorf("verificar email: %w", err)
	} else if taken {
		return nil, domain.WithMessage(domain.ErrDuplicateEmail,
			fmt.Sprintf("Email %s sudah terdaftar. Gunakan email lain.", in.Email))
	}
	if taken, err := uc.repo.ExistsByPhone(ctx, in.Phone); err != nil {
		return nil, fmt.Errorf("verificar teléfono: %w", err)
	} else if taken {
		return nil, domain.WithMessage(domain.ErrDuplicatePhone,
			fmt.Sprintf("Nomor telepon %s sudah terdaftar. Gunakan nomor lain.", in.Phone))
	}
	if taken, err := uc.repo.ExistsByNIK(ctx, in.NIK); err != nil {
		return nil, fmt.Errorf("verificar NIK: %w", err)
	} else if taken {
		return nil, domain.WithMessage(domain.ErrDuplicateNIK,
			fmt.Sprintf("NIK %s sudah pernah digunakan untuk registrasi.", in.NIK))
	}

	// 6. Tier (default Silver) y código de cuenta si no vino explícito
	tier, err := entity.ParseCardTier(in.CardTier)
	if err != nil {
		return nil, domain.WithMessage(domain.ErrInvalidInput,
			fmt.Sprintf("Jenis kartu %q tidak dikenal. Pilihan: Silver, Gold, Platinum, Batik Air, GPN.", in.CardTier))
	}

	var accountCode int32
	if in.AccountCode != nil {
		accountCode = *in.AccountCode
	} else {
		accountCode, err = uc.gen.GenerateUniqueAccountCode(ctx, tier)
		if err != nil {
			return nil, fmt.Errorf("generar código de cuenta: %w", err)
		}
	}

	// 7. Número de tarjeta virtual único (scoped al tier)
	cardNumber, err := uc.gen.GenerateUniqueCardNumber(ctx, tier)
	if err != nil {
		return nil, fmt.Errorf("generar número de tarjeta: %w", err)
	}

	// 11. Hash del password y email en minúsculas
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashear password: %w", err)
	}

	// 8. Ensamblado del agregado: datos KTP de Dukcapil con preferencia
	// sobre el formulario cuando el payload viene presente
	now := time.Now()
	customer := &entity.Customer{
		ID:               uuid.New().String(),
		NIK:              in.NIK,
		MotherMaidenName: in.MotherMaidenName,
		AccountType:      in.AccountType,
		CardTier:         tier,
		AccountCode:      accountCode,
		CardNumber:       cardNumber,
		MaritalStatus:    in.MaritalStatus,
		Occupation:       in.Occupation,
		IncomeSource:     in.IncomeSource,
		IncomeRange:      in.IncomeRange,
		AccountPurpose:   in.AccountPurpose,
		Email:            strings.ToLower(in.Email),
		Phone:            in.Phone,
		PasswordHash:     string(hash),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	uc.fillIdentity(customer, outcome.Data, in, birthDate)

	// 9. Dirección (siempre obligatoria)
	customer.Address = entity.Address{
		ID:          uuid.New().String(),
		Street:      in.Address.Street,
		Province:    in.Address.Province,
		City:        in.Address.City,
		District:    in.Address.District,
		SubDistrict: in.Address.SubDistrict,
		PostalCode:  in.Address.PostalCode,
	}

	// 10. Wali solo si el sub-registro llegó completo
	if in.Guardian.IsComplete() {
		customer.Guardian = &entity.Guardian{
			ID:           uuid.New().String(),
			Relationship: in.Guardian.Relationship,
			FullName:     in.Guardian.FullName,
			Occupation:   in.Guardian.Occupation,
			Address:      in.Guardian.Address,
			Phone:        in.Guardian.Phone,
		}
	}

	// 12. Escritura transaccional única. Una violación de constraint aquí es
	// la carrera residual de unicidad: fallo de registro, no crash.
	if err := uc.repo.Create(ctx, customer); err != nil {
		if errors.Is(err, domain.ErrConstraintViolation) {
			return nil, domain.WithMessage(domain.ErrConstraintViolation,
				"Registrasi gagal karena konflik data. Silakan coba lagi.")
		}
		return nil, fmt.Errorf("persistir cliente: %w", err)
	}

	uc.log.Info().
		Str("customer_id", customer.ID).
		Str("card_tier", tier.String()).
		Int32("account_code", accountCode).
		Msg("cliente registrado")

	return &dto.RegisterResponse{
		CardTier:    customer.CardTier.String(),
		FullName:    customer.FullName,
		AccountCode: strconv.FormatInt(int64(customer.AccountCode), 10),
		AccountType: customer.AccountType,
		CardNumber:  customer.CardNumber,
	}, nil
}

// fillIdentity aplica la preferencia de fuente de identidad: payload KTP de
// Dukcapil si está presente, campos del formulario si no.
func (uc *UseCase) fillIdentity(c *entity.Customer, ktp *dukcapil.KTPData, in dto.RegisterRequest, formBirthDate time.Time) {
	if ktp == nil {
		c.FullName = in.FullName
		c.BirthPlace = in.BirthPlace
		c.BirthDate = formBirthDate
		c.Gender = in.Gender
		c.Religion = in.Religion
		return
	}

	c.FullName = ktp.FullName
	c.BirthPlace = ktp.BirthPlace
	c.Gender = ktp.Gender
	c.Religion = ktp.Religion

	c.BirthDate = formBirthDate
	if ktp.BirthDate != "" {
		if parsed, err := time.Parse(dateLayout, ktp.BirthDate); err == nil {
			c.BirthDate = parsed
		}
	}
}

// ValidateIdentity verifica NIK, nombre y fecha contra Dukcapil sin efectos
// secundarios (preview para el formulario).
func (uc *UseCase) ValidateIdentity(ctx context.Context, nik, fullName, birthDateStr string) (*dukcapil.VerificationOutcome, error) {
	birthDate, err := time.Parse(dateLayout, birthDateStr)
	if err != nil {
		return nil, domain.WithMessage(domain.ErrInvalidInput, "Tanggal lahir harus berformat YYYY-MM-DD")
	}
	return uc.registry.VerifyIdentity(ctx, nik, fullName, birthDate), nil
}

// CheckNIKExists consulta la existencia cruda de un NIK en Dukcapil.
func (uc *UseCase) CheckNIKExists(ctx context.Context, nik string) bool {
	return uc.registry.NIKExists(ctx, nik)
}

// ValidateNIKFormat valida la estructura del NIK: 16 dígitos numéricos con
// códigos de provincia, kabupaten y kecamatan distintos de "00".
func (uc *UseCase) ValidateNIKFormat(nik string) bool {
	if len(nik) != 16 {
		return false
	}
	for _, c := range nik {
		if c < '0' || c > '9' {
			return false
		}
	}
	return nik[0:2] != "00" && nik[2:4] != "00" && nik[4:6] != "00"
}

// EmailAvailable indica si un email está libre (case-insensitive).
func (uc *UseCase) EmailAvailable(ctx context.Context, email string) (bool, error) {
	taken, err := uc.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("verificar email: %w", err)
	}
	return !taken, nil
}

// PhoneAvailable indica si un número de teléfono está libre.
func (uc *UseCase) PhoneAvailable(ctx context.Context, phone string) (bool, error) {
	taken, err := uc.repo.ExistsByPhone(ctx, phone)
	if err != nil {
		return false, fmt.Errorf("verificar teléfono: %w", err)
	}
	return !taken, nil
}

// CustomerByEmail busca un cliente por email (case-insensitive).
func (uc *UseCase) CustomerByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	return uc.repo.FindByEmail(ctx, email)
}

// CustomerByNIK busca un cliente por NIK.
func (uc *UseCase) CustomerByNIK(ctx context.Context, nik string) (*entity.Customer, error) {
	return uc.repo.FindByNIK(ctx, nik)
}

// CustomerByAccountCode busca un cliente por código de cuenta.
func (uc *UseCase) CustomerByAccountCode(ctx context.Context, code int32) (*entity.Customer, error) {
	return uc.repo.FindByAccountCode(ctx, code)
}

// VerifyEmail marca el email del cliente como verificado (idempotente;
// no falla si el email no existe).
func (uc *UseCase) VerifyEmail(ctx context.Context, email string) error {
	return uc.repo.MarkEmailVerified(ctx, email)
}

// Stats devuelve estadísticas de registro y el estado del servicio Dukcapil.
func (uc *UseCase) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	total, err := uc.repo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("contar clientes: %w", err)
	}
	verified, err := uc.repo.CountEmailVerified(ctx)
	if err != nil {
		return nil, fmt.Errorf("contar verificados: %w", err)
	}

	var rate float64
	if total > 0 {
		rate = float64(verified) / float64(total) * 100
	}

	return &dto.StatsResponse{
		TotalCustomers:    total,
		VerifiedCustomers: verified,
		VerificationRate:  rate,
		RegistryAvailable: uc.registry.IsHealthy(ctx),
		RegistryURL:       uc.registry.BaseURL(),
	}, nil
}
