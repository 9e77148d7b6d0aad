package profile

import (
	"math"
	"testing"

	"github.com/OCAP2/ttkplot/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestRegistry_ResolvesDefaults(t *testing.T) {
	r := NewRegistry()

	for _, key := range r.HealthKeys() {
		p, err := r.Health(key)
		require.NoError(t, err, key)
		assert.NoError(t, p.Validate(), key)
	}
	for _, key := range r.DamageKeys() {
		p, err := r.Damage(key)
		require.NoError(t, err, key)
		assert.NoError(t, p.Validate(), key)
	}

	assert.Equal(t, []string{Multiplayer, Gauntlet, BattleRoyale}, r.HealthKeys())
	assert.Equal(t, []string{Body, SingleMissAndBody, SingleHeadshotAndBody}, r.DamageKeys())
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := NewRegistry()

	p, err := r.Health("battleroyale")
	require.NoError(t, err)
	assert.Equal(t, "BattleRoyale", p.Name)

	d, err := r.Damage("singleheadshotandbody")
	require.NoError(t, err)
	assert.Equal(t, 1, d.HeadshotCount)
}

func TestRegistry_UnknownKey(t *testing.T) {
	r := NewRegistry()

	_, err := r.Health("Hardcore")
	require.ErrorIs(t, err, ErrUnknownProfileKey)
	assert.Contains(t, err.Error(), "Hardcore")
	assert.Contains(t, err.Error(), Multiplayer)

	_, err = r.Damage("Headshots")
	require.ErrorIs(t, err, ErrUnknownProfileKey)

	_, err = r.Preset(PresetRequest{HealthKey: Multiplayer, DamageKey: "nope"})
	require.ErrorIs(t, err, ErrUnknownProfileKey)
}

func TestRegistry_OverridesDoNotMutateDefaults(t *testing.T) {
	r := NewRegistry()

	p, err := r.Preset(PresetRequest{
		Filter:    core.FilterAll,
		HealthKey: Multiplayer,
		DamageKey: Body,
		HealthOverrides: HealthOverrides{
			BaseHealth: intPtr(150),
			PlateCount: intPtr(2),
		},
		DamageOverrides: DamageOverrides{
			HeadshotCount:      intPtr(1),
			HeadshotMultiplier: floatPtr(2.0),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 150, p.Health.BaseHealth)
	assert.Equal(t, 2, p.Health.PlateCount)
	assert.Equal(t, 1, p.Damage.HeadshotCount)
	require.NotNil(t, p.Damage.HeadshotMultiplierOverride)
	assert.Equal(t, 2.0, *p.Damage.HeadshotMultiplierOverride)

	health, err := r.Health(Multiplayer)
	require.NoError(t, err)
	assert.Equal(t, 100, health.BaseHealth)
	assert.Equal(t, 0, health.PlateCount)

	damage, err := r.Damage(Body)
	require.NoError(t, err)
	assert.Equal(t, 0, damage.HeadshotCount)
	assert.Nil(t, damage.HeadshotMultiplierOverride)
}

func TestRegistry_ReturnedValuesAreCopies(t *testing.T) {
	r := NewRegistry()

	p, err := r.Health(Gauntlet)
	require.NoError(t, err)
	p.PlateCount = 99

	again, err := r.Health(Gauntlet)
	require.NoError(t, err)
	assert.Equal(t, 1, again.PlateCount)
}

func TestOverrides_ZeroIsAnOverride(t *testing.T) {
	r := NewRegistry()

	p, err := r.Preset(PresetRequest{
		HealthKey:       BattleRoyale,
		DamageKey:       SingleHeadshotAndBody,
		HealthOverrides: HealthOverrides{PlateCount: intPtr(0), PlateDamageReduction: floatPtr(0)},
		DamageOverrides: DamageOverrides{HeadshotCount: intPtr(0)},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, p.Health.PlateCount)
	assert.Equal(t, 0.0, p.Health.PlateDamageReduction)
	assert.Equal(t, 0, p.Damage.HeadshotCount)
	assert.Equal(t, "BattleRoyale (100 HP) - 1 HS + Body", p.Describe())
}

func TestOverrides_InvalidReductionRejected(t *testing.T) {
	r := NewRegistry()

	_, err := r.Preset(PresetRequest{
		HealthKey:       Gauntlet,
		DamageKey:       Body,
		HealthOverrides: HealthOverrides{PlateDamageReduction: floatPtr(1.0)},
	})
	require.ErrorIs(t, err, core.ErrInvalidProfile)
}

func TestOverrides_NonFiniteRejected(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name string
		req  PresetRequest
	}{
		{"NaN plate reduction", PresetRequest{HealthKey: BattleRoyale, DamageKey: Body,
			HealthOverrides: HealthOverrides{PlateDamageReduction: floatPtr(math.NaN())}}},
		{"infinite plate reduction", PresetRequest{HealthKey: BattleRoyale, DamageKey: Body,
			HealthOverrides: HealthOverrides{PlateDamageReduction: floatPtr(math.Inf(1))}}},
		{"NaN headshot multiplier", PresetRequest{HealthKey: Multiplayer, DamageKey: SingleHeadshotAndBody,
			DamageOverrides: DamageOverrides{HeadshotMultiplier: floatPtr(math.NaN())}}},
		{"infinite headshot multiplier", PresetRequest{HealthKey: Multiplayer, DamageKey: SingleHeadshotAndBody,
			DamageOverrides: DamageOverrides{HeadshotMultiplier: floatPtr(math.Inf(1))}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Preset(tt.req)
			assert.ErrorIs(t, err, core.ErrInvalidProfile)
		})
	}
}

func TestOverrides_IsEmpty(t *testing.T) {
	assert.True(t, HealthOverrides{}.IsEmpty())
	assert.False(t, HealthOverrides{PlateHealth: intPtr(0)}.IsEmpty())
	assert.True(t, DamageOverrides{}.IsEmpty())
	assert.False(t, DamageOverrides{MissCount: intPtr(2)}.IsEmpty())
}
