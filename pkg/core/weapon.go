// pkg/core/weapon.go
package core

import "fmt"

// msPerMinute converts rounds per minute into a shot interval.
const msPerMinute = 60_000.0

// Weapon is one row of the stats sheet. Build it with NewWeapon; treat it as
// read-only afterwards.
type Weapon struct {
	Name               string
	Class              WeaponClass
	HeadshotMultiplier float64
	RPM                int
	// DamageFalloffs holds per-shot damage for each entry of Distances.
	DamageFalloffs []float64
}

// NewWeapon validates the fields and returns a Weapon owning a copy of falloffs.
func NewWeapon(name string, class WeaponClass, headshotMultiplier float64, rpm int, falloffs []float64) (Weapon, error) {
	w := Weapon{
		Name:               name,
		Class:              class,
		HeadshotMultiplier: headshotMultiplier,
		RPM:                rpm,
		DamageFalloffs:     append([]float64(nil), falloffs...),
	}
	if err := w.Validate(); err != nil {
		return Weapon{}, err
	}
	return w, nil
}

// Validate checks the weapon invariants.
func (w Weapon) Validate() error {
	if !w.Class.Valid() {
		return fmt.Errorf("%w: %s: unknown class", ErrInvalidWeapon, w.Name)
	}
	if w.RPM <= 0 {
		return fmt.Errorf("%w: %s: rpm must be positive, got %d", ErrInvalidWeapon, w.Name, w.RPM)
	}
	if !isFinite(w.HeadshotMultiplier) || w.HeadshotMultiplier <= 0 {
		return fmt.Errorf("%w: %s: headshot multiplier must be positive and finite, got %v", ErrInvalidWeapon, w.Name, w.HeadshotMultiplier)
	}
	if len(w.DamageFalloffs) != len(Distances) {
		return fmt.Errorf("%w: %s: expected %d falloff values, got %d", ErrInvalidWeapon, w.Name, len(Distances), len(w.DamageFalloffs))
	}
	for i, d := range w.DamageFalloffs {
		if !isFinite(d) || d <= 0 {
			return fmt.Errorf("%w: %s: damage at %s must be positive and finite, got %v", ErrInvalidWeapon, w.Name, Distances[i].Label, d)
		}
	}
	return nil
}

// ShotInterval returns the time between consecutive shots in milliseconds.
func (w Weapon) ShotInterval() float64 {
	return msPerMinute / float64(w.RPM)
}
