package profile

import (
	"github.com/OCAP2/ttkplot/pkg/core"
)

// HealthOverrides replaces individual HealthProfile fields. A nil field keeps
// the default; a non-nil field overrides it, zero included.
type HealthOverrides struct {
	BaseHealth           *int
	PlateCount           *int
	PlateHealth          *int
	PlateDamageReduction *float64
}

// IsEmpty reports whether no field is overridden.
func (o HealthOverrides) IsEmpty() bool {
	return o.BaseHealth == nil && o.PlateCount == nil && o.PlateHealth == nil && o.PlateDamageReduction == nil
}

// Apply returns a new validated profile derived from base.
func (o HealthOverrides) Apply(base core.HealthProfile) (core.HealthProfile, error) {
	p := base
	if o.BaseHealth != nil {
		p.BaseHealth = *o.BaseHealth
	}
	if o.PlateCount != nil {
		p.PlateCount = *o.PlateCount
	}
	if o.PlateHealth != nil {
		p.PlateHealth = *o.PlateHealth
	}
	if o.PlateDamageReduction != nil {
		p.PlateDamageReduction = *o.PlateDamageReduction
	}
	return core.NewHealthProfile(p.Name, p.BaseHealth, p.PlateCount, p.PlateHealth, p.PlateDamageReduction)
}

// DamageOverrides replaces individual DamageProfile fields.
type DamageOverrides struct {
	HeadshotCount      *int
	HeadshotMultiplier *float64
	MissCount          *int
}

// IsEmpty reports whether no field is overridden.
func (o DamageOverrides) IsEmpty() bool {
	return o.HeadshotCount == nil && o.HeadshotMultiplier == nil && o.MissCount == nil
}

// Apply returns a new validated profile derived from base.
func (o DamageOverrides) Apply(base core.DamageProfile) (core.DamageProfile, error) {
	p := base.Clone()
	if o.HeadshotCount != nil {
		p.HeadshotCount = *o.HeadshotCount
	}
	if o.MissCount != nil {
		p.MissCount = *o.MissCount
	}
	if o.HeadshotMultiplier != nil {
		p.HeadshotMultiplierOverride = o.HeadshotMultiplier
	}
	return core.NewDamageProfile(p.Name, p.HeadshotCount, p.MissCount, p.HeadshotMultiplierOverride)
}

// PresetRequest names the profiles to resolve and the overrides to apply.
type PresetRequest struct {
	Filter          core.ClassFilter
	HealthKey       string
	DamageKey       string
	HealthOverrides HealthOverrides
	DamageOverrides DamageOverrides
}

// Preset resolves both keys, applies the overrides and returns the preset.
// Unknown keys fail with ErrUnknownProfileKey before any override is looked at.
func (r *Registry) Preset(req PresetRequest) (core.Preset, error) {
	health, err := r.Health(req.HealthKey)
	if err != nil {
		return core.Preset{}, err
	}
	damage, err := r.Damage(req.DamageKey)
	if err != nil {
		return core.Preset{}, err
	}

	health, err = req.HealthOverrides.Apply(health)
	if err != nil {
		return core.Preset{}, err
	}
	damage, err = req.DamageOverrides.Apply(damage)
	if err != nil {
		return core.Preset{}, err
	}

	return core.NewPreset(req.Filter, health, damage)
}
