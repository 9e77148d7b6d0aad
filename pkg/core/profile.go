// pkg/core/profile.go
package core

import (
	"fmt"
	"math"
)

// HealthProfile describes the defender: base health plus armor plates.
type HealthProfile struct {
	Name                 string
	BaseHealth           int
	PlateCount           int
	PlateHealth          int
	PlateDamageReduction float64 // fraction in [0, 1)
}

// NewHealthProfile validates and returns a HealthProfile.
func NewHealthProfile(name string, baseHealth, plateCount, plateHealth int, plateDamageReduction float64) (HealthProfile, error) {
	p := HealthProfile{
		Name:                 name,
		BaseHealth:           baseHealth,
		PlateCount:           plateCount,
		PlateHealth:          plateHealth,
		PlateDamageReduction: plateDamageReduction,
	}
	if err := p.Validate(); err != nil {
		return HealthProfile{}, err
	}
	return p, nil
}

// Validate checks the health profile invariants.
func (p HealthProfile) Validate() error {
	switch {
	case p.BaseHealth <= 0:
		return fmt.Errorf("%w: %s: base health must be positive, got %d", ErrInvalidProfile, p.Name, p.BaseHealth)
	case p.PlateCount < 0:
		return fmt.Errorf("%w: %s: plate count must not be negative, got %d", ErrInvalidProfile, p.Name, p.PlateCount)
	case p.PlateHealth < 0:
		return fmt.Errorf("%w: %s: plate health must not be negative, got %d", ErrInvalidProfile, p.Name, p.PlateHealth)
	case !isFinite(p.PlateDamageReduction) || p.PlateDamageReduction < 0 || p.PlateDamageReduction*reductionScale >= reductionScale:
		return fmt.Errorf("%w: %s: plate damage reduction must be in [0, 1), got %v", ErrInvalidProfile, p.Name, p.PlateDamageReduction)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// reductionScale is the fixed-point factor applied to plate damage reduction.
const reductionScale = 100.0

// EffectivePlateHealth is the raw damage one plate absorbs once its damage
// reduction is taken into account.
func (p HealthProfile) EffectivePlateHealth() (float64, error) {
	scaled := p.PlateDamageReduction * reductionScale
	if scaled >= reductionScale {
		return 0, fmt.Errorf("%w: %s: plate damage reduction %v leaves plates unbreakable", ErrInvalidProfile, p.Name, p.PlateDamageReduction)
	}
	return float64(p.PlateHealth) * reductionScale / (reductionScale - scaled), nil
}

// TotalHealth is base health plus the effective health of every plate.
func (p HealthProfile) TotalHealth() (float64, error) {
	plate, err := p.EffectivePlateHealth()
	if err != nil {
		return 0, err
	}
	return float64(p.BaseHealth) + plate*float64(p.PlateCount), nil
}

// DamageProfile describes the assumed shot sequence: some headshots and misses
// up front, body shots for the rest.
type DamageProfile struct {
	Name          string
	HeadshotCount int
	MissCount     int
	// HeadshotMultiplierOverride replaces the weapon's multiplier when set.
	HeadshotMultiplierOverride *float64
}

// NewDamageProfile validates and returns a DamageProfile. The override, if
// any, is copied so the profile never shares it with the caller.
func NewDamageProfile(name string, headshotCount, missCount int, headshotMultiplierOverride *float64) (DamageProfile, error) {
	p := DamageProfile{
		Name:          name,
		HeadshotCount: headshotCount,
		MissCount:     missCount,
	}
	if headshotMultiplierOverride != nil {
		v := *headshotMultiplierOverride
		p.HeadshotMultiplierOverride = &v
	}
	if err := p.Validate(); err != nil {
		return DamageProfile{}, err
	}
	return p, nil
}

// Validate checks the damage profile invariants.
func (p DamageProfile) Validate() error {
	switch {
	case p.HeadshotCount < 0:
		return fmt.Errorf("%w: %s: headshot count must not be negative, got %d", ErrInvalidProfile, p.Name, p.HeadshotCount)
	case p.MissCount < 0:
		return fmt.Errorf("%w: %s: miss count must not be negative, got %d", ErrInvalidProfile, p.Name, p.MissCount)
	case p.HeadshotMultiplierOverride != nil && (!isFinite(*p.HeadshotMultiplierOverride) || *p.HeadshotMultiplierOverride <= 0):
		return fmt.Errorf("%w: %s: headshot multiplier must be positive, got %v", ErrInvalidProfile, p.Name, *p.HeadshotMultiplierOverride)
	}
	return nil
}

// HeadshotMultiplier returns the override when present, otherwise the weapon's own multiplier.
func (p DamageProfile) HeadshotMultiplier(w Weapon) float64 {
	if p.HeadshotMultiplierOverride != nil {
		return *p.HeadshotMultiplierOverride
	}
	return w.HeadshotMultiplier
}

// Clone returns a copy that does not share the override pointer.
func (p DamageProfile) Clone() DamageProfile {
	if p.HeadshotMultiplierOverride != nil {
		v := *p.HeadshotMultiplierOverride
		p.HeadshotMultiplierOverride = &v
	}
	return p
}
