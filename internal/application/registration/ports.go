package registration

import (
	"context"
	"time"

	"github.com/nusabank/onboarding-api/internal/infrastructure/dukcapil"
)

// RegistryClient define el puerto de salida hacia el servicio Dukcapil.
// La implementación concreta usa HTTP; para tests se puede inyectar un stub.
type RegistryClient interface {
	// VerifyIdentity nunca retorna error: los fallos de transporte se
	// convierten en un resultado con Valid=false.
	VerifyIdentity(ctx context.Context, nik, fullName string, birthDate time.Time) *dukcapil.VerificationOutcome
	// NIKExists retorna false ante cualquier fallo (señal consultiva).
	NIKExists(ctx context.Context, nik string) bool
	// IsHealthy gate previo al registro.
	IsHealthy(ctx context.Context) bool
	BaseURL() string
}

// UniquenessOracle subconjunto del repositorio que consulta el generador de
// códigos para evitar colisiones. El constraint de la DB sigue siendo el
// árbitro final de unicidad.
type UniquenessOracle interface {
	ExistsByAccountCode(ctx context.Context, code int32) (bool, error)
	ExistsByCardNumber(ctx context.Context, cardNumber string) (bool, error)
}
