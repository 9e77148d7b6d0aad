// Package render draws TTK step plots.
package render

import (
	"fmt"
	"math"

	"github.com/OCAP2/ttkplot/internal/util"
	"github.com/OCAP2/ttkplot/pkg/core"
)

// TitleFormat is filled with the preset description.
const TitleFormat = "BF6 Weapons - TTK (%s) vs Distance"

// Line is one weapon's curve.
type Line struct {
	Label string
	TTK   []int
}

// Chart is everything needed to draw one image.
type Chart struct {
	Title   string
	XLabels []string
	Lines   []Line
}

// Renderer writes a chart to path.
type Renderer interface {
	Render(path string, chart Chart) error
}

// NewChart builds a chart from series sharing one preset.
func NewChart(description string, series []core.Series) Chart {
	chart := Chart{
		Title:   fmt.Sprintf(TitleFormat, description),
		XLabels: core.DistanceLabels(),
		Lines:   make([]Line, 0, len(series)),
	}
	for _, s := range series {
		chart.Lines = append(chart.Lines, Line{
			Label: util.FormatWeaponLabel(s.Weapon, s.WeaponClass, s.RPM),
			TTK:   append([]int(nil), s.TTK...),
		})
	}
	return chart
}

// stepValues repeats the last value so the final bucket is drawn as a full step.
func stepValues(ttk []int) []float64 {
	if len(ttk) == 0 {
		return nil
	}
	values := make([]float64, 0, len(ttk)+1)
	for _, v := range ttk {
		values = append(values, float64(v))
	}
	return append(values, values[len(values)-1])
}

// tickValues returns lo, lo+step, ... up to and including hi.
func tickValues(lo, hi, step float64) []float64 {
	for _, v := range []float64{lo, hi, step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
	}
	if step <= 0 || hi < lo {
		return nil
	}
	n := int(math.Floor((hi-lo)/step+1e-9)) + 1
	values := make([]float64, n)
	for i := range values {
		values[i] = lo + float64(i)*step
	}
	return values
}
