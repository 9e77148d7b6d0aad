// pkg/core/class.go
package core

import (
	"fmt"
	"strings"
)

// WeaponClass is the closed set of weapon categories found in the stats sheet.
type WeaponClass uint8

const (
	ClassUnknown WeaponClass = iota
	ClassAR
	ClassCarbine
	ClassSMG
	ClassLMG
	ClassDMR
	ClassPistol
)

// weaponClassNames maps each class to the label used in the stats sheet and in artifact names.
var weaponClassNames = map[WeaponClass]string{
	ClassAR:      "AR",
	ClassCarbine: "Carbine",
	ClassSMG:     "SMG",
	ClassLMG:     "LMG",
	ClassDMR:     "DMR",
	ClassPistol:  "Pistol",
}

// WeaponClasses returns every known class in declaration order.
func WeaponClasses() []WeaponClass {
	return []WeaponClass{ClassAR, ClassCarbine, ClassSMG, ClassLMG, ClassDMR, ClassPistol}
}

func (c WeaponClass) String() string {
	if name, ok := weaponClassNames[c]; ok {
		return name
	}
	return "Unknown"
}

// Valid reports whether c is one of the declared classes.
func (c WeaponClass) Valid() bool {
	_, ok := weaponClassNames[c]
	return ok
}

// ParseWeaponClass resolves a sheet label (case-insensitive) to a WeaponClass.
func ParseWeaponClass(s string) (WeaponClass, error) {
	s = strings.TrimSpace(s)
	for _, c := range WeaponClasses() {
		if strings.EqualFold(weaponClassNames[c], s) {
			return c, nil
		}
	}
	return ClassUnknown, fmt.Errorf("unknown weapon class %q", s)
}

// ClassFilter selects weapons by class. The zero value selects all weapons.
type ClassFilter struct {
	class WeaponClass
}

// FilterAll selects every weapon.
var FilterAll = ClassFilter{}

// FilterClass returns a filter matching exactly one class.
func FilterClass(c WeaponClass) ClassFilter {
	return ClassFilter{class: c}
}

// ClassFilters returns All followed by one filter per weapon class.
func ClassFilters() []ClassFilter {
	filters := []ClassFilter{FilterAll}
	for _, c := range WeaponClasses() {
		filters = append(filters, FilterClass(c))
	}
	return filters
}

// ParseClassFilter accepts "All" or any weapon class label.
func ParseClassFilter(s string) (ClassFilter, error) {
	if strings.EqualFold(strings.TrimSpace(s), "All") {
		return FilterAll, nil
	}
	c, err := ParseWeaponClass(s)
	if err != nil {
		return FilterAll, err
	}
	return FilterClass(c), nil
}

// IsAll reports whether the filter selects every weapon.
func (f ClassFilter) IsAll() bool {
	return f.class == ClassUnknown
}

// Class returns the filtered class, or ClassUnknown for All.
func (f ClassFilter) Class() WeaponClass {
	return f.class
}

// Matches reports whether a weapon of class c passes the filter.
func (f ClassFilter) Matches(c WeaponClass) bool {
	return f.IsAll() || f.class == c
}

func (f ClassFilter) String() string {
	if f.IsAll() {
		return "All"
	}
	return f.class.String()
}
