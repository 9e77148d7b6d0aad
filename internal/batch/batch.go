// Package batch enumerates every preset combination and renders one chart per
// combination.
package batch

import (
	"github.com/OCAP2/ttkplot/internal/profile"
	"github.com/OCAP2/ttkplot/internal/util"
	"github.com/OCAP2/ttkplot/pkg/core"
)

// Combination names one batch preset by registry keys.
type Combination struct {
	Filter    core.ClassFilter
	HealthKey string
	DamageKey string
}

// Request turns the combination into a registry request without overrides.
func (c Combination) Request() profile.PresetRequest {
	return profile.PresetRequest{
		Filter:    c.Filter,
		HealthKey: c.HealthKey,
		DamageKey: c.DamageKey,
	}
}

// Combinations returns class filters x health keys x damage keys, with the
// class filter varying slowest.
func Combinations(reg *profile.Registry) []Combination {
	filters := core.ClassFilters()
	healthKeys := reg.HealthKeys()
	damageKeys := reg.DamageKeys()

	combos := make([]Combination, 0, len(filters)*len(healthKeys)*len(damageKeys))
	for _, f := range filters {
		for _, h := range healthKeys {
			for _, d := range damageKeys {
				combos = append(combos, Combination{Filter: f, HealthKey: h, DamageKey: d})
			}
		}
	}
	return combos
}

// ArtifactName returns "BF6-<health>-<damage>-<filter>", e.g.
// "BF6-BattleRoyale-1HSAndBody-SMG".
func ArtifactName(p core.Preset) string {
	return "BF6-" + p.Health.Name + "-" + util.SanitizeName(p.Damage.Name) + "-" + p.Filter.String()
}
