package core

import "errors"

var (
	// ErrInvalidWeapon is returned for a non-positive rate of fire, headshot
	// multiplier or damage value, or a falloff table of the wrong length.
	ErrInvalidWeapon = errors.New("invalid weapon")

	// ErrInvalidProfile is returned for out-of-range profile fields, most
	// notably a plate damage reduction of 1.0 or more.
	ErrInvalidProfile = errors.New("invalid profile")

	// ErrUndefinedTTK is returned when the headshots of a damage profile
	// overshoot total health by at least one body shot, which makes the shot
	// count negative.
	ErrUndefinedTTK = errors.New("undefined time to kill")
)
