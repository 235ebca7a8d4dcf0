package entity

import "fmt"

// CardTier es el producto de tarjeta/cuenta del cliente. Tipo cerrado:
// el mapeo tier → prefijos vive aquí y es la única fuente de verdad
// para el generador de números de tarjeta y de códigos de cuenta.
type CardTier int

const (
	TierSilver CardTier = iota
	TierGold
	TierPlatinum
	TierBatikAir
	TierGPN
)

// AllTiers lista los tiers válidos (útil para validación y tests).
var AllTiers = []CardTier{TierSilver, TierGold, TierPlatinum, TierBatikAir, TierGPN}

// String devuelve el nombre comercial del tier tal como viaja en la API.
func (t CardTier) String() string {
	switch t {
	case TierGold:
		return "Gold"
	case TierPlatinum:
		return "Platinum"
	case TierBatikAir:
		return "Batik Air"
	case TierGPN:
		return "GPN"
	default:
		return "Silver"
	}
}

// CardPrefix devuelve los 4 primeros dígitos del número de tarjeta virtual.
func (t CardTier) CardPrefix() string {
	switch t {
	case TierGold:
		return "4102"
	case TierPlatinum:
		return "4103"
	case TierBatikAir:
		return "4104"
	case TierGPN:
		return "4105"
	default:
		return "4101"
	}
}

// AccountPrefix devuelve los 2 dígitos iniciales del código de cuenta.
// GPN es un tier solo-tarjeta: no tiene prefijo de cuenta propio y usa el de Silver.
func (t CardTier) AccountPrefix() int {
	switch t {
	case TierGold:
		return 20
	case TierPlatinum:
		return 30
	case TierBatikAir:
		return 40
	default:
		return 10
	}
}

// ParseCardTier convierte el string recibido en la API a CardTier.
// Vacío cae en Silver (default del producto); un valor no reconocido es un
// error, no un fallback silencioso.
func ParseCardTier(s string) (CardTier, error) {
	switch s {
	case "", "Silver":
		return TierSilver, nil
	case "Gold":
		return TierGold, nil
	case "Platinum":
		return TierPlatinum, nil
	case "Batik Air":
		return TierBatikAir, nil
	case "GPN":
		return TierGPN, nil
	default:
		return TierSilver, fmt.Errorf("tier desconocido: %q", s)
	}
}
