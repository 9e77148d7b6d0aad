package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/OCAP2/ttkplot/internal/util"
	"github.com/OCAP2/ttkplot/pkg/core"
)

// columnIndex maps the required headers to their position in a record.
type columnIndex struct {
	weapon, class, hsMult, rpm int
	distances                  []int
}

func newColumnIndex(header []string) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		positions[util.TrimCell(h)] = i
	}

	var missing []string
	lookup := func(name string) int {
		i, ok := positions[name]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return i
	}

	cols := columnIndex{
		weapon: lookup(ColWeapon),
		class:  lookup(ColClass),
		hsMult: lookup(ColHSMult),
		rpm:    lookup(ColRPM),
	}
	for _, d := range core.Distances {
		cols.distances = append(cols.distances, lookup(d.Label))
	}

	if len(missing) > 0 {
		return columnIndex{}, fmt.Errorf("%w: missing columns %q", ErrDataLoad, missing)
	}
	return cols, nil
}

func cell(record []string, i int, name string) (string, error) {
	if i >= len(record) {
		return "", fmt.Errorf("column %q: missing value", name)
	}
	v := util.TrimCell(record[i])
	if v == "" {
		return "", fmt.Errorf("column %q: missing value", name)
	}
	return v, nil
}

func floatCell(record []string, i int, name string) (float64, error) {
	v, err := cell(record, i, name)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("column %q: %q is not a number", name, v)
	}
	return f, nil
}

// parseWeapon converts one record into a validated weapon.
func (c columnIndex) parseWeapon(record []string) (core.Weapon, error) {
	name, err := cell(record, c.weapon, ColWeapon)
	if err != nil {
		return core.Weapon{}, err
	}

	classLabel, err := cell(record, c.class, ColClass)
	if err != nil {
		return core.Weapon{}, fmt.Errorf("%s: %w", name, err)
	}
	class, err := core.ParseWeaponClass(classLabel)
	if err != nil {
		return core.Weapon{}, fmt.Errorf("%s: column %q: %w", name, ColClass, err)
	}

	hsMult, err := floatCell(record, c.hsMult, ColHSMult)
	if err != nil {
		return core.Weapon{}, fmt.Errorf("%s: %w", name, err)
	}

	rpmText, err := cell(record, c.rpm, ColRPM)
	if err != nil {
		return core.Weapon{}, fmt.Errorf("%s: %w", name, err)
	}
	rpm, err := parseIntFromFloat(strings.TrimSpace(rpmText))
	if err != nil {
		return core.Weapon{}, fmt.Errorf("%s: column %q: %q is not an integer", name, ColRPM, rpmText)
	}

	falloffs := make([]float64, len(c.distances))
	for i, col := range c.distances {
		falloffs[i], err = floatCell(record, col, core.Distances[i].Label)
		if err != nil {
			return core.Weapon{}, fmt.Errorf("%s: %w", name, err)
		}
	}

	return core.NewWeapon(name, class, hsMult, int(rpm), falloffs)
}
