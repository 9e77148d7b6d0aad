package batch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/OCAP2/ttkplot/internal/profile"
	"github.com/OCAP2/ttkplot/internal/render"
	"github.com/OCAP2/ttkplot/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

type recordingRenderer struct {
	mu     sync.Mutex
	charts map[string]render.Chart
	err    error
}

func (r *recordingRenderer) Render(path string, chart render.Chart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if r.charts == nil {
		r.charts = make(map[string]render.Chart)
	}
	r.charts[path] = chart
	return nil
}

type recordingBackend struct {
	mu     sync.Mutex
	series []core.Series
}

func (b *recordingBackend) Init() error                              { return nil }
func (b *recordingBackend) Close() error                             { return nil }
func (b *recordingBackend) StartRun(context.Context, core.Run) error { return nil }
func (b *recordingBackend) EndRun(context.Context) error             { return nil }

func (b *recordingBackend) RecordSeries(_ context.Context, s core.Series) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.series = append(b.series, s)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testWeapons(t *testing.T) []core.Weapon {
	t.Helper()
	mk := func(name string, class core.WeaponClass, hs float64, rpm int, falloffs ...float64) core.Weapon {
		w, err := core.NewWeapon(name, class, hs, rpm, falloffs)
		require.NoError(t, err)
		return w
	}
	return []core.Weapon{
		mk("M433", core.ClassAR, 1.5, 720, 25, 25, 25, 20, 20),
		mk("SGX", core.ClassSMG, 1.3, 900, 20, 20, 18, 18, 15),
		// one headshot overshoots 100 and 150 health by more than a body shot
		mk("Overkill", core.ClassDMR, 3, 300, 80, 80, 80, 80, 80),
	}
}

func TestRunner_Run(t *testing.T) {
	renderer := &recordingRenderer{}
	backend := &recordingBackend{}
	outDir := t.TempDir()

	r, err := NewRunner(profile.NewRegistry(), renderer, backend, testLogger(), Options{RunID: "run-1", OutputDir: outDir, Workers: 4})
	require.NoError(t, err)

	sum, err := r.Run(context.Background(), testWeapons(t))
	require.NoError(t, err)

	// All, AR, SMG and DMR have weapons; DMR loses two headshot presets.
	assert.Equal(t, 9+9+9+7, sum.Presets)
	assert.Equal(t, 4, sum.Skipped)
	assert.Equal(t, 25+9+9+7, sum.Series)
	require.Len(t, sum.Artifacts, sum.Presets)
	assert.Equal(t, "BF6-Multiplayer-AllBody-All", sum.Artifacts[0])
	assert.NotContains(t, sum.Artifacts, "BF6-Multiplayer-1HSAndBody-DMR")
	assert.NotContains(t, sum.Artifacts, "BF6-Multiplayer-AllBody-Carbine")

	assert.Len(t, renderer.charts, sum.Presets)
	chart, ok := renderer.charts[filepath.Join(outDir, "BF6-Gauntlet-1HSAndBody-All.png")]
	require.True(t, ok)
	assert.Equal(t, "BF6 Weapons - TTK (Gauntlet (100 HP, 1 Plate) - 1 HS + Body) vs Distance", chart.Title)
	require.Len(t, chart.Lines, 2)
	assert.Equal(t, "M433 (AR, 720 RPM)", chart.Lines[0].Label)
	assert.Equal(t, "SGX (SMG, 900 RPM)", chart.Lines[1].Label)

	assert.Len(t, backend.series, sum.Series)
	for _, s := range backend.series {
		assert.Equal(t, "run-1", s.RunID)
	}
}

func TestRunner_RunPreset(t *testing.T) {
	reg := profile.NewRegistry()
	renderer := &recordingRenderer{}
	backend := &recordingBackend{}
	r, err := NewRunner(reg, renderer, backend, testLogger(), Options{RunID: "run-2"})
	require.NoError(t, err)

	preset, err := reg.Preset(profile.PresetRequest{Filter: core.FilterAll, HealthKey: profile.Multiplayer, DamageKey: profile.Body})
	require.NoError(t, err)

	res, err := r.RunPreset(context.Background(), preset, "single", "out/ttk.png", testWeapons(t))
	require.NoError(t, err)
	assert.True(t, res.Rendered)
	assert.Equal(t, 3, res.Series)
	assert.Zero(t, res.Skipped)

	names := make([]string, 0, len(backend.series))
	for _, s := range backend.series {
		names = append(names, s.Weapon)
		assert.Equal(t, "single", s.Artifact)
	}
	sort.Strings(names)
	assert.Equal(t, []string{"M433", "Overkill", "SGX"}, names)

	// M433: 4 shots at 720 RPM, 5 past 40 m
	assert.Equal(t, []int{250, 250, 250, 333, 333}, backend.series[0].TTK)
}

func TestRunner_EmptySelectionNotRendered(t *testing.T) {
	reg := profile.NewRegistry()
	renderer := &recordingRenderer{}
	r, err := NewRunner(reg, renderer, nil, testLogger(), Options{})
	require.NoError(t, err)

	preset, err := reg.Preset(profile.PresetRequest{Filter: core.FilterClass(core.ClassPistol), HealthKey: profile.Multiplayer, DamageKey: profile.Body})
	require.NoError(t, err)

	res, err := r.RunPreset(context.Background(), preset, "pistols", "pistols.png", testWeapons(t))
	require.NoError(t, err)
	assert.False(t, res.Rendered)
	assert.Empty(t, renderer.charts)
}

func TestRunner_RenderErrorStopsRun(t *testing.T) {
	renderErr := errors.New("disk full")
	r, err := NewRunner(profile.NewRegistry(), &recordingRenderer{err: renderErr}, nil, testLogger(), Options{Workers: 2})
	require.NoError(t, err)

	_, err = r.Run(context.Background(), testWeapons(t))
	assert.ErrorIs(t, err, renderErr)
}

func TestRunner_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	renderer := &recordingRenderer{}
	r, err := NewRunner(profile.NewRegistry(), renderer, nil, testLogger(), Options{Workers: 2})
	require.NoError(t, err)

	sum, err := r.Run(ctx, testWeapons(t))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, sum.Presets)
	assert.Empty(t, renderer.charts)
}

// counterTotals sums every int64 counter collected by reader, by name.
func counterTotals(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	totals := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				totals[m.Name] += dp.Value
			}
		}
	}
	return totals
}

func TestRunner_RecordsCounters(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	t.Cleanup(func() { otel.SetMeterProvider(noop.NewMeterProvider()) })

	r, err := NewRunner(profile.NewRegistry(), &recordingRenderer{}, nil, testLogger(), Options{OutputDir: t.TempDir(), Workers: 3})
	require.NoError(t, err)

	sum, err := r.Run(context.Background(), testWeapons(t))
	require.NoError(t, err)

	totals := counterTotals(t, reader)
	assert.Equal(t, int64(sum.Presets), totals["ttk.presets.rendered"])
	assert.Equal(t, int64(sum.Series), totals["ttk.series.computed"])
	assert.Equal(t, int64(4), totals["ttk.series.skipped"])
}
