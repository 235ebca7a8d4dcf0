package registration

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/nusabank/onboarding-api/internal/domain/entity"
)

// maxCollisionRetries reintentos locales ante colisión de un identificador
// generado. No garantiza unicidad más allá de este límite: la carrera
// residual la cierra el constraint único al escribir.
const maxCollisionRetries = 5

// CodeGenerator genera códigos de cuenta y números de tarjeta virtual únicos,
// consultando el oráculo de unicidad (persistencia). La aleatoriedad sale de
// crypto/rand, seguro bajo invocación concurrente.
type CodeGenerator struct {
	oracle UniquenessOracle
	now    func() time.Time
}

// NewCodeGenerator construye el generador.
func NewCodeGenerator(oracle UniquenessOracle) *CodeGenerator {
	return &CodeGenerator{oracle: oracle, now: time.Now}
}

// GenerateCardNumber genera un número de tarjeta virtual de 16 dígitos:
// prefijo del tier (4 dígitos) + 12 dígitos aleatorios con padding de ceros.
// Devuelto con formato "dddd dddd dddd dddd".
func (g *CodeGenerator) GenerateCardNumber(tier entity.CardTier) string {
	random12 := randInt64(1_000_000_000_000) // [0, 1e12)
	cardNumber := tier.CardPrefix() + fmt.Sprintf("%012d", random12)
	return formatCardNumber(cardNumber)
}

// formatCardNumber agrupa 16 dígitos como "dddd dddd dddd dddd".
// Un largo distinto de 16 es un error de programación: panic inmediato.
func formatCardNumber(cardNumber string) string {
	if len(cardNumber) != 16 {
		panic(fmt.Sprintf("card number debe tener 16 dígitos, tiene %d", len(cardNumber)))
	}
	return cardNumber[0:4] + " " + cardNumber[4:8] + " " + cardNumber[8:12] + " " + cardNumber[12:16]
}

// GenerateUniqueCardNumber genera un número de tarjeta y reintenta hasta 5
// veces si el oráculo reporta colisión.
func (g *CodeGenerator) GenerateUniqueCardNumber(ctx context.Context, tier entity.CardTier) (string, error) {
	cardNumber := g.GenerateCardNumber(tier)
	for attempts := 0; attempts < maxCollisionRetries; attempts++ {
		exists, err := g.oracle.ExistsByCardNumber(ctx, cardNumber)
		if err != nil {
			return "", fmt.Errorf("consultar unicidad de tarjeta: %w", err)
		}
		if !exists {
			break
		}
		cardNumber = g.GenerateCardNumber(tier)
	}
	return cardNumber, nil
}

// GenerateAccountCode genera un código de cuenta de 10 dígitos:
// [prefijo tier (2)][YYMM (4)][aleatorio 1000-9999 (4)], reducido módulo
// el máximo int32 con signo para caber en la columna INTEGER.
func (g *CodeGenerator) GenerateAccountCode(tier entity.CardTier) int32 {
	now := g.now()
	yearMonth := (now.Year()%100)*100 + int(now.Month()) // YYMM

	random4 := 1000 + randInt64(9000) // [1000, 9999]

	accountCode := int64(tier.AccountPrefix())*100_000_000 + int64(yearMonth)*10_000 + random4
	return int32(accountCode % math.MaxInt32)
}

// GenerateUniqueAccountCode genera un código de cuenta con hasta 5 reintentos
// ante colisión. Si aún colisiona, cae a un esquema estructuralmente distinto
// de menor probabilidad de colisión: prefijo*1_000_000 + 6 dígitos aleatorios,
// sin más reintentos.
func (g *CodeGenerator) GenerateUniqueAccountCode(ctx context.Context, tier entity.CardTier) (int32, error) {
	code := g.GenerateAccountCode(tier)
	for attempts := 0; attempts < maxCollisionRetries; attempts++ {
		exists, err := g.oracle.ExistsByAccountCode(ctx, code)
		if err != nil {
			return 0, fmt.Errorf("consultar unicidad de código de cuenta: %w", err)
		}
		if !exists {
			return code, nil
		}
		code = g.GenerateAccountCode(tier)
	}

	// Último candidato del loop: si quedó libre se usa, si no, fallback.
	exists, err := g.oracle.ExistsByAccountCode(ctx, code)
	if err != nil {
		return 0, fmt.Errorf("consultar unicidad de código de cuenta: %w", err)
	}
	if !exists {
		return code, nil
	}

	random6 := 100_000 + randInt64(900_000) // [100000, 999999]
	return int32(int64(tier.AccountPrefix())*1_000_000 + random6), nil
}

// randInt64 devuelve un entero uniforme en [0, max) desde crypto/rand.
// rand.Int solo falla si la fuente del sistema está rota: irrecuperable.
func randInt64(max int64) int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		panic(fmt.Sprintf("crypto/rand no disponible: %v", err))
	}
	return n.Int64()
}
