package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemMetadata_Fingerprint(t *testing.T) {
	t.Run("empty and nil share a fingerprint", func(t *testing.T) {
		a, err := ItemMetadata(nil).Fingerprint()
		require.NoError(t, err)
		b, err := ItemMetadata{}.Fingerprint()
		require.NoError(t, err)
		assert.Equal(t, EmptyFingerprint, a)
		assert.Equal(t, a, b)
	})

	t.Run("key order does not matter", func(t *testing.T) {
		a, err := ItemMetadata{"durability": 50, "tint": "red"}.Fingerprint()
		require.NoError(t, err)
		b, err := ItemMetadata{"tint": "red", "durability": 50}.Fingerprint()
		require.NoError(t, err)
		assert.Equal(t, a, b)
		assert.Equal(t, `{"durability":50,"tint":"red"}`, a)
	})

	t.Run("nested objects are canonical too", func(t *testing.T) {
		a, err := ItemMetadata{"ench": map[string]any{"z": 1, "a": 2}}.Fingerprint()
		require.NoError(t, err)
		assert.Equal(t, `{"ench":{"a":2,"z":1}}`, a)
	})

	t.Run("different values are different stacks", func(t *testing.T) {
		a, _ := ItemMetadata{"durability": 50}.Fingerprint()
		b, _ := ItemMetadata{"durability": 49}.Fingerprint()
		assert.NotEqual(t, a, b)
	})

	t.Run("unserializable metadata is rejected", func(t *testing.T) {
		_, err := ItemMetadata{"fn": func() {}}.Fingerprint()
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestParseItemMetadata(t *testing.T) {
	m, err := ParseItemMetadata(`{"durability":50}`)
	require.NoError(t, err)
	assert.Equal(t, float64(50), m["durability"])

	m, err = ParseItemMetadata(EmptyFingerprint)
	require.NoError(t, err)
	assert.Empty(t, m)

	_, err = ParseItemMetadata("{broken")
	assert.Error(t, err)
}

func TestBalance(t *testing.T) {
	b := NewBalance(100, 40)
	assert.True(t, b.IsValid())
	assert.Equal(t, "140", b.Total().String())
	assert.True(t, b.Equal(NewBalance(100, 40)))

	b.Cash = b.Cash.Sub(b.Cash).Sub(b.Bank)
	assert.False(t, b.IsValid())
}

func TestVehicleCondition_Clamp(t *testing.T) {
	c := VehicleCondition{Fuel: 150, EngineHealth: -5000, BodyHealth: -1}.Clamp()
	assert.Equal(t, MaxFuel, c.Fuel)
	assert.Equal(t, MinEngineHealth, c.EngineHealth)
	assert.Equal(t, 0.0, c.BodyHealth)
}

func TestUpdatesIsEmpty(t *testing.T) {
	assert.True(t, PlayerUpdate{}.IsEmpty())
	health := 50
	assert.False(t, PlayerUpdate{Health: &health}.IsEmpty())

	assert.True(t, VehicleUpdate{}.IsEmpty())
	assert.False(t, VehicleUpdate{Mods: Mods{0: 1}}.IsEmpty())
}
