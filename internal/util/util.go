// Package util provides small string helpers shared by the batch runner and renderer.
package util

import (
	"strconv"
	"strings"
)

// SanitizeName makes a display name safe for file names: spaces are removed
// and "+" becomes "And" ("1 HS + Body" -> "1HSAndBody").
func SanitizeName(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "+", "And")
}

// TrimCell trims whitespace and a UTF-8 byte order mark from a sheet cell.
func TrimCell(s string) string {
	return strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))
}

// FormatWeaponLabel builds a legend label from the weapon components.
// Format: "Name (Class, RPM RPM)" with empty parts omitted.
func FormatWeaponLabel(name, class string, rpm int) string {
	var b strings.Builder
	b.WriteString(name)

	var parts []string
	if class != "" {
		parts = append(parts, class)
	}
	if rpm > 0 {
		parts = append(parts, strconv.Itoa(rpm)+" RPM")
	}
	if len(parts) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(parts, ", "))
		b.WriteByte(')')
	}
	return b.String()
}
