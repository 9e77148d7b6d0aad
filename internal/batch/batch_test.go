package batch

import (
	"testing"

	"github.com/OCAP2/ttkplot/internal/profile"
	"github.com/OCAP2/ttkplot/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombinations(t *testing.T) {
	combos := Combinations(profile.NewRegistry())
	require.Len(t, combos, 7*3*3)

	assert.Equal(t, Combination{Filter: core.FilterAll, HealthKey: profile.Multiplayer, DamageKey: profile.Body}, combos[0])
	assert.Equal(t, Combination{Filter: core.FilterAll, HealthKey: profile.Multiplayer, DamageKey: profile.SingleMissAndBody}, combos[1])
	assert.Equal(t, Combination{Filter: core.FilterAll, HealthKey: profile.Gauntlet, DamageKey: profile.Body}, combos[3])
	assert.Equal(t, Combination{Filter: core.FilterClass(core.ClassAR), HealthKey: profile.Multiplayer, DamageKey: profile.Body}, combos[9])
	assert.Equal(t, Combination{Filter: core.FilterClass(core.ClassPistol), HealthKey: profile.BattleRoyale, DamageKey: profile.SingleHeadshotAndBody}, combos[len(combos)-1])

	seen := make(map[Combination]bool)
	for _, c := range combos {
		assert.False(t, seen[c], "duplicate %+v", c)
		seen[c] = true
	}
}

func TestArtifactName(t *testing.T) {
	reg := profile.NewRegistry()
	tests := []struct {
		name string
		req  profile.PresetRequest
		want string
	}{
		{"all body", profile.PresetRequest{Filter: core.FilterAll, HealthKey: profile.Multiplayer, DamageKey: profile.Body}, "BF6-Multiplayer-AllBody-All"},
		{"miss", profile.PresetRequest{Filter: core.FilterClass(core.ClassLMG), HealthKey: profile.Gauntlet, DamageKey: profile.SingleMissAndBody}, "BF6-Gauntlet-1MissAndBody-LMG"},
		{"headshot", profile.PresetRequest{Filter: core.FilterClass(core.ClassSMG), HealthKey: profile.BattleRoyale, DamageKey: profile.SingleHeadshotAndBody}, "BF6-BattleRoyale-1HSAndBody-SMG"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := reg.Preset(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ArtifactName(p))
		})
	}
}

func TestCombination_RequestHasNoOverrides(t *testing.T) {
	req := Combination{Filter: core.FilterAll, HealthKey: profile.Gauntlet, DamageKey: profile.Body}.Request()
	assert.True(t, req.HealthOverrides.IsEmpty())
	assert.True(t, req.DamageOverrides.IsEmpty())
	assert.Equal(t, profile.Gauntlet, req.HealthKey)
}
