package parser

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OCAP2/ttkplot/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHeader = "Weapon,Class,HS Mult,RPM,0 m,10 m,20 m,40 m,70+ m\n"

func newTestParser() *Parser {
	return NewParser(slog.Default())
}

func TestNewParser(t *testing.T) {
	p := newTestParser()
	require.NotNil(t, p)

	p = NewParser(nil)
	require.NotNil(t, p.logger)
}

func TestParseIntFromFloat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"integer", "600", 600, false},
		{"float with decimals", "600.00", 600, false},
		{"negative", "-1", -1, false},
		{"fractional rejects", "600.5", 0, true},
		{"empty string", "", 0, true},
		{"non-numeric", "fast", 0, true},
		{"NaN", "NaN", 0, true},
		{"infinity", "Inf", 0, true},
		{"negative infinity", "-Infinity", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIntFromFloat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseWeapons(t *testing.T) {
	sheet := testHeader +
		"M433,AR,1.34,720,25,25,22,20,18\n" +
		"SGX,SMG,1.25,900,22,20,18,16,15\n" +
		"M87A1 Hunter,DMR,2.0,300.0,60,60,55,55,50\n"

	weapons, err := newTestParser().ParseWeapons(strings.NewReader(sheet))
	require.NoError(t, err)
	require.Len(t, weapons, 3)

	assert.Equal(t, "M433", weapons[0].Name)
	assert.Equal(t, core.ClassAR, weapons[0].Class)
	assert.Equal(t, 1.34, weapons[0].HeadshotMultiplier)
	assert.Equal(t, 720, weapons[0].RPM)
	assert.Equal(t, []float64{25, 25, 22, 20, 18}, weapons[0].DamageFalloffs)

	assert.Equal(t, core.ClassSMG, weapons[1].Class)
	assert.Equal(t, 300, weapons[2].RPM)
	assert.Equal(t, "M87A1 Hunter", weapons[2].Name)
}

func TestParseWeapons_ColumnOrderAndExtraColumns(t *testing.T) {
	sheet := "Notes,70+ m,40 m,20 m,10 m,0 m,RPM,HS Mult,Class,Weapon\n" +
		"meta,18,20,22,25,25,720,1.34,AR,M433\n"

	weapons, err := newTestParser().ParseWeapons(strings.NewReader(sheet))
	require.NoError(t, err)
	require.Len(t, weapons, 1)
	assert.Equal(t, []float64{25, 25, 22, 20, 18}, weapons[0].DamageFalloffs)
}

func TestParseWeapons_Errors(t *testing.T) {
	tests := []struct {
		name     string
		sheet    string
		contains string
	}{
		{"empty input", "", "missing header"},
		{"missing column", "Weapon,Class,HS Mult,RPM,0 m,10 m,20 m,40 m\nX,AR,1,600,1,1,1,1\n", "70+ m"},
		{"non-numeric damage", testHeader + "X,AR,1.3,600,25,abc,20,20,20\n", "10 m"},
		{"empty rpm", testHeader + "X,AR,1.3,,25,25,20,20,20\n", "RPM"},
		{"fractional rpm", testHeader + "X,AR,1.3,600.5,25,25,20,20,20\n", "RPM"},
		{"unknown class", testHeader + "X,Shotgun,1.3,600,25,25,20,20,20\n", "Shotgun"},
		{"zero damage", testHeader + "X,AR,1.3,600,25,25,0,20,20\n", "20 m"},
		{"short row", testHeader + "X,AR,1.3,600,25\n", "wrong number of fields"},
		{"NaN multiplier", testHeader + "X,AR,NaN,600,25,25,20,20,20\n", "HS Mult"},
		{"infinite damage", testHeader + "X,AR,1.3,600,Inf,25,20,20,20\n", "0 m"},
		{"infinity damage", testHeader + "X,AR,1.3,600,25,25,20,20,+Infinity\n", "70+ m"},
		{"NaN damage", testHeader + "X,AR,1.3,600,25,nan,20,20,20\n", "10 m"},
		{"infinite rpm", testHeader + "X,AR,1.3,Inf,25,25,20,20,20\n", "RPM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weapons, err := newTestParser().ParseWeapons(strings.NewReader(tt.sheet))
			require.ErrorIs(t, err, ErrDataLoad)
			assert.Contains(t, err.Error(), tt.contains)
			assert.Nil(t, weapons, "no partial weapon list on failure")
		})
	}
}

func TestParseWeapons_BadRowAfterGoodRowsAbortsLoad(t *testing.T) {
	sheet := testHeader +
		"M433,AR,1.34,720,25,25,22,20,18\n" +
		"Broken,AR,1.34,0,25,25,22,20,18\n"

	weapons, err := newTestParser().ParseWeapons(strings.NewReader(sheet))
	require.ErrorIs(t, err, ErrDataLoad)
	assert.ErrorIs(t, err, core.ErrInvalidWeapon)
	assert.Contains(t, err.Error(), "line 3")
	assert.Nil(t, weapons)
}

func TestLoadWeapons(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Stats.csv")
	require.NoError(t, os.WriteFile(path, []byte("\ufeff"+testHeader+"M433,AR,1.34,720,25,25,22,20,18\n"), 0644))

	weapons, err := newTestParser().LoadWeapons(path)
	require.NoError(t, err)
	require.Len(t, weapons, 1)
	assert.Equal(t, "M433", weapons[0].Name)
}

func TestLoadWeapons_MissingFile(t *testing.T) {
	_, err := newTestParser().LoadWeapons(filepath.Join(t.TempDir(), "nope.csv"))
	require.ErrorIs(t, err, ErrDataLoad)
}
