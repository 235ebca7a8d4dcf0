package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCardTier_Prefijos(t *testing.T) {
	cases := []struct {
		tier          CardTier
		name          string
		cardPrefix    string
		accountPrefix int
	}{
		{TierSilver, "Silver", "4101", 10},
		{TierGold, "Gold", "4102", 20},
		{TierPlatinum, "Platinum", "4103", 30},
		{TierBatikAir, "Batik Air", "4104", 40},
		{TierGPN, "GPN", "4105", 10}, // solo-tarjeta: cuenta con prefijo Silver
	}

	for _, tc := range cases {
		assert.Equal(t, tc.name, tc.tier.String())
		assert.Equal(t, tc.cardPrefix, tc.tier.CardPrefix())
		assert.Equal(t, tc.accountPrefix, tc.tier.AccountPrefix())
	}
}

func TestParseCardTier(t *testing.T) {
	for s, want := range map[string]CardTier{
		"Silver":    TierSilver,
		"Gold":      TierGold,
		"Platinum":  TierPlatinum,
		"Batik Air": TierBatikAir,
		"GPN":       TierGPN,
		"":          TierSilver, // vacío cae en el default del producto
	} {
		got, err := ParseCardTier(s)
		assert.NoError(t, err, "tier %q", s)
		assert.Equal(t, want, got, "tier %q", s)
	}

	// No reconocido es error, no fallback silencioso.
	_, err := ParseCardTier("Diamond")
	assert.Error(t, err)
	_, err = ParseCardTier("gold")
	assert.Error(t, err, "sensible a mayúsculas")
}

func TestCustomer_IsLockedAt(t *testing.T) {
	now := time.Now()

	c := &Customer{}
	assert.False(t, c.IsLockedAt(now), "sin LockedUntil nunca está bloqueado")

	future := now.Add(10 * time.Minute)
	c.LockedUntil = &future
	assert.True(t, c.IsLockedAt(now))

	past := now.Add(-time.Minute)
	c.LockedUntil = &past
	assert.False(t, c.IsLockedAt(now), "bloqueo vencido")
}
