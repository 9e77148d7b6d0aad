// Package profile holds the named default health and damage profiles and
// builds presets from them with optional field overrides.
package profile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/OCAP2/ttkplot/pkg/core"
)

// ErrUnknownProfileKey is returned when a key is not registered.
var ErrUnknownProfileKey = errors.New("unknown profile key")

// Health profile keys.
const (
	Multiplayer  = "Multiplayer"
	Gauntlet     = "Gauntlet"
	BattleRoyale = "BattleRoyale"
)

// Damage profile keys.
const (
	Body                  = "Body"
	SingleMissAndBody     = "SingleMissAndBody"
	SingleHeadshotAndBody = "SingleHeadshotAndBody"
)

// Registry resolves profile keys to profile values. Lookups return copies, so
// callers can never change the stored defaults.
type Registry struct {
	healthKeys []string
	damageKeys []string
	health     map[string]core.HealthProfile
	damage     map[string]core.DamageProfile
}

// NewRegistry returns a registry holding the built-in defaults.
func NewRegistry() *Registry {
	r := &Registry{
		health: make(map[string]core.HealthProfile),
		damage: make(map[string]core.DamageProfile),
	}

	r.addHealth(Multiplayer, core.HealthProfile{Name: "Multiplayer", BaseHealth: 100})
	r.addHealth(Gauntlet, core.HealthProfile{Name: "Gauntlet", BaseHealth: 100, PlateCount: 1, PlateHealth: 50})
	r.addHealth(BattleRoyale, core.HealthProfile{Name: "BattleRoyale", BaseHealth: 100, PlateCount: 3, PlateHealth: 50, PlateDamageReduction: 0.15})

	r.addDamage(Body, core.DamageProfile{Name: "All Body"})
	r.addDamage(SingleMissAndBody, core.DamageProfile{Name: "1 Miss + Body", MissCount: 1})
	r.addDamage(SingleHeadshotAndBody, core.DamageProfile{Name: "1 HS + Body", HeadshotCount: 1})

	return r
}

func (r *Registry) addHealth(key string, p core.HealthProfile) {
	r.healthKeys = append(r.healthKeys, key)
	r.health[strings.ToLower(key)] = p
}

func (r *Registry) addDamage(key string, p core.DamageProfile) {
	r.damageKeys = append(r.damageKeys, key)
	r.damage[strings.ToLower(key)] = p
}

// HealthKeys returns the registered health profile keys in registration order.
func (r *Registry) HealthKeys() []string {
	return append([]string(nil), r.healthKeys...)
}

// DamageKeys returns the registered damage profile keys in registration order.
func (r *Registry) DamageKeys() []string {
	return append([]string(nil), r.damageKeys...)
}

// Health resolves a health profile key (case-insensitive).
func (r *Registry) Health(key string) (core.HealthProfile, error) {
	p, ok := r.health[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return core.HealthProfile{}, fmt.Errorf("%w: health profile %q (known: %s)",
			ErrUnknownProfileKey, key, strings.Join(r.healthKeys, ", "))
	}
	return p, nil
}

// Damage resolves a damage profile key (case-insensitive).
func (r *Registry) Damage(key string) (core.DamageProfile, error) {
	p, ok := r.damage[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return core.DamageProfile{}, fmt.Errorf("%w: damage profile %q (known: %s)",
			ErrUnknownProfileKey, key, strings.Join(r.damageKeys, ", "))
	}
	return p.Clone(), nil
}
