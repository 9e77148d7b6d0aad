package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/OCAP2/ttkplot/pkg/core"
)

// ErrDataLoad is returned for any malformed stats sheet. A load either
// returns every weapon or fails as a whole.
var ErrDataLoad = errors.New("data load error")

// Stats sheet column headers besides the distance buckets.
const (
	ColWeapon = "Weapon"
	ColClass  = "Class"
	ColHSMult = "HS Mult"
	ColRPM    = "RPM"
)

// parseIntFromFloat parses a string that may be an integer ("600") or a
// float with no fractional part ("600.00"), as spreadsheet exports often write.
func parseIntFromFloat(s string) (int64, error) {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != float64(int64(f)) {
		return 0, fmt.Errorf("parseIntFromFloat: %q is not a valid integer", s)
	}
	return int64(f), nil
}

// Parser converts stats sheet rows into validated weapons.
// It has zero external dependencies beyond a logger.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a new parser with only a logger dependency
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// LoadWeapons reads the stats sheet at path.
func (p *Parser) LoadWeapons(path string) ([]core.Weapon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", ErrDataLoad, path, err)
	}
	defer f.Close()

	weapons, err := p.ParseWeapons(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	p.logger.Info("Loaded weapon stats", "path", path, "weapons", len(weapons))
	return weapons, nil
}

// ParseWeapons reads a comma-separated sheet with a header row.
func (p *Parser) ParseWeapons(r io.Reader) ([]core.Weapon, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing header row", ErrDataLoad)
		}
		return nil, fmt.Errorf("%w: reading header: %w", ErrDataLoad, err)
	}

	cols, err := newColumnIndex(header)
	if err != nil {
		return nil, err
	}

	var weapons []core.Weapon
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDataLoad, err)
		}
		line, _ := reader.FieldPos(0)

		w, err := cols.parseWeapon(record)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrDataLoad, line, err)
		}
		p.logger.Debug("Parsed weapon", "name", w.Name, "class", w.Class.String(), "rpm", w.RPM)
		weapons = append(weapons, w)
	}

	return weapons, nil
}
