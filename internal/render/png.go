package render

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/OCAP2/ttkplot/internal/config"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// dotted and dash-dot, alternating per line
var lineDashes = [][]vg.Length{
	{vg.Points(1), vg.Points(3)},
	{vg.Points(6), vg.Points(3), vg.Points(1), vg.Points(3)},
}

// PNG renders charts with gonum/plot. The file format follows the path
// extension; .png is the default used by the CLI.
type PNG struct {
	cfg config.ChartConfig
}

// NewPNG returns a renderer using the chart size and y tick range from cfg.
func NewPNG(cfg config.ChartConfig) *PNG {
	if cfg.Width <= 0 {
		cfg.Width = 10
	}
	if cfg.Height <= 0 {
		cfg.Height = 6
	}
	return &PNG{cfg: cfg}
}

// Render draws chart and saves it to path, creating parent directories.
func (r *PNG) Render(path string, chart Chart) error {
	p, err := r.build(chart)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := p.Save(vg.Length(r.cfg.Width)*vg.Inch, vg.Length(r.cfg.Height)*vg.Inch, path); err != nil {
		return fmt.Errorf("saving chart %s: %w", path, err)
	}
	return nil
}

func (r *PNG) build(chart Chart) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = chart.Title
	p.X.Label.Text = "Distance"
	p.Y.Label.Text = "TTK (ms)"
	p.Legend.Top = true
	p.Legend.TextStyle.Font.Size = vg.Points(8)
	p.Add(plotter.NewGrid())

	xTicks := make([]plot.Tick, len(chart.XLabels))
	for i, label := range chart.XLabels {
		xTicks[i] = plot.Tick{Value: float64(i), Label: label}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xTicks)
	p.X.Min = 0
	p.X.Max = float64(len(chart.XLabels))

	if values := tickValues(r.cfg.YMin, r.cfg.YMax, r.cfg.YStep); len(values) > 0 {
		yTicks := make([]plot.Tick, len(values))
		for i, v := range values {
			yTicks[i] = plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)}
		}
		p.Y.Tick.Marker = plot.ConstantTicks(yTicks)
	}

	for i, l := range chart.Lines {
		values := stepValues(l.TTK)
		xys := make(plotter.XYs, len(values))
		for x, y := range values {
			xys[x].X = float64(x)
			xys[x].Y = y
		}

		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, fmt.Errorf("plotting %s: %w", l.Label, err)
		}
		c := withAlpha(plotutil.Color(i), 0xbf)
		line.StepStyle = plotter.PostStep
		line.Color = c
		line.Dashes = lineDashes[i%len(lineDashes)]
		points.Color = c
		points.Shape = draw.CircleGlyph{}
		points.Radius = vg.Points(2.5)

		p.Add(line, points)
		p.Legend.Add(l.Label, line, points)
	}

	if !math.IsNaN(r.cfg.YMin) && !math.IsInf(r.cfg.YMin, 0) {
		p.Y.Min = min(p.Y.Min, r.cfg.YMin)
	}
	if !math.IsNaN(r.cfg.YMax) && !math.IsInf(r.cfg.YMax, 0) {
		p.Y.Max = max(p.Y.Max, r.cfg.YMax)
	}
	return p, nil
}

func withAlpha(c color.Color, a uint8) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: a}
}
