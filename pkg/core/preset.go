// pkg/core/preset.go
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Preset combines a defender, an engagement assumption and a class filter.
// It is a value: copying it never shares state with the registry it came from.
type Preset struct {
	Filter ClassFilter
	Health HealthProfile
	Damage DamageProfile
}

// NewPreset validates both profiles and returns a Preset.
func NewPreset(filter ClassFilter, health HealthProfile, damage DamageProfile) (Preset, error) {
	if err := health.Validate(); err != nil {
		return Preset{}, err
	}
	if err := damage.Validate(); err != nil {
		return Preset{}, err
	}
	return Preset{Filter: filter, Health: health, Damage: damage.Clone()}, nil
}

// TotalHealth is the defender's effective health under this preset.
func (p Preset) TotalHealth() (float64, error) {
	return p.Health.TotalHealth()
}

// Select returns the weapons passing the class filter, in their original order.
func (p Preset) Select(weapons []Weapon) []Weapon {
	selected := make([]Weapon, 0, len(weapons))
	for _, w := range weapons {
		if p.Filter.Matches(w.Class) {
			selected = append(selected, w)
		}
	}
	return selected
}

// CalcTTK returns the time to kill in milliseconds for every distance bucket of
// the weapon. The first shot lands at t=0, so n shots take (n-1) intervals.
func (p Preset) CalcTTK(w Weapon) ([]int, error) {
	if w.RPM <= 0 {
		return nil, fmt.Errorf("%w: %s: rpm must be positive, got %d", ErrInvalidWeapon, w.Name, w.RPM)
	}
	totalHealth, err := p.Health.TotalHealth()
	if err != nil {
		return nil, err
	}

	interval := w.ShotInterval()
	hsMult := p.Damage.HeadshotMultiplier(w)
	shotsSoFar := p.Damage.MissCount + p.Damage.HeadshotCount

	ttk := make([]int, 0, len(w.DamageFalloffs))
	for i, d := range w.DamageFalloffs {
		if d <= 0 {
			return nil, fmt.Errorf("%w: %s: damage at %s must be positive, got %v", ErrInvalidWeapon, w.Name, bucketLabel(i), d)
		}

		headshotDamage := d * hsMult
		remaining := totalHealth - float64(p.Damage.HeadshotCount)*headshotDamage
		bodyShots := int(math.Ceil(remaining / d))
		if bodyShots < 0 {
			return nil, fmt.Errorf("%w: %s at %s: headshots leave %v health, %d body shots",
				ErrUndefinedTTK, w.Name, bucketLabel(i), remaining, bodyShots)
		}

		totalShots := shotsSoFar + bodyShots
		ttk = append(ttk, int(math.Trunc(float64(totalShots-1)*interval)))
	}
	return ttk, nil
}

func bucketLabel(i int) string {
	if i < len(Distances) {
		return Distances[i].Label
	}
	return "bucket " + strconv.Itoa(i)
}

// Describe renders the preset for chart titles, e.g.
// "BattleRoyale (100 HP, 2 Plates, 15% DR) - 1 HS + Body".
// Plates and damage reduction only appear when non-zero.
func (p Preset) Describe() string {
	attrs := []string{strconv.Itoa(p.Health.BaseHealth) + " HP"}
	if p.Health.PlateCount > 0 {
		plates := " Plates"
		if p.Health.PlateCount == 1 {
			plates = " Plate"
		}
		attrs = append(attrs, strconv.Itoa(p.Health.PlateCount)+plates)
	}
	if p.Health.PlateDamageReduction > 0 {
		pct := math.Round(p.Health.PlateDamageReduction*reductionScale*100) / 100
		attrs = append(attrs, strconv.FormatFloat(pct, 'f', -1, 64)+"% DR")
	}
	return fmt.Sprintf("%s (%s) - %s", p.Health.Name, strings.Join(attrs, ", "), p.Damage.Name)
}
