package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/OCAP2/ttkplot/internal/profile"
	"github.com/OCAP2/ttkplot/internal/render"
	"github.com/OCAP2/ttkplot/internal/storage"
	"github.com/OCAP2/ttkplot/pkg/core"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"
)

// ImageExt is appended to artifact names in batch mode.
const ImageExt = ".png"

// Logger interface for pluggable logging. The context carries the run id.
type Logger interface {
	DebugContext(ctx context.Context, msg string, keysAndValues ...any)
	InfoContext(ctx context.Context, msg string, keysAndValues ...any)
	WarnContext(ctx context.Context, msg string, keysAndValues ...any)
}

// Options configures a Runner.
type Options struct {
	RunID     string
	OutputDir string
	Workers   int
}

// Result describes one rendered (or skipped) preset.
type Result struct {
	Artifact string
	Path     string
	Series   int
	Skipped  int
	Rendered bool
}

// Summary aggregates a batch run.
type Summary struct {
	Presets   int
	Series    int
	Skipped   int
	Artifacts []string
}

// Runner computes TTK curves and hands them to a renderer and a storage backend.
type Runner struct {
	registry *profile.Registry
	renderer render.Renderer
	backend  storage.Backend
	logger   Logger
	opts     Options

	// serializes backend writes
	storeMu sync.Mutex

	presetsRendered metric.Int64Counter
	seriesComputed  metric.Int64Counter
	seriesSkipped   metric.Int64Counter
}

// NewRunner creates a Runner. A nil backend discards results.
// Uses the global OTel meter for metrics (no-op if not configured).
func NewRunner(reg *profile.Registry, renderer render.Renderer, backend storage.Backend, logger Logger, opts Options) (*Runner, error) {
	if backend == nil {
		backend = storage.Nop{}
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	r := &Runner{
		registry: reg,
		renderer: renderer,
		backend:  backend,
		logger:   logger,
		opts:     opts,
	}

	m := meter()
	var err error

	r.presetsRendered, err = m.Int64Counter(
		"ttk.presets.rendered",
		metric.WithDescription("Charts written"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating presets counter: %w", err)
	}

	r.seriesComputed, err = m.Int64Counter(
		"ttk.series.computed",
		metric.WithDescription("Weapon curves computed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating computed counter: %w", err)
	}

	r.seriesSkipped, err = m.Int64Counter(
		"ttk.series.skipped",
		metric.WithDescription("Weapons left out because their TTK is undefined"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating skipped counter: %w", err)
	}

	return r, nil
}

// Run renders every combination into OutputDir. The first error cancels the
// remaining combinations.
func (r *Runner) Run(ctx context.Context, weapons []core.Weapon) (Summary, error) {
	combos := Combinations(r.registry)
	results := make([]Result, len(combos))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)

	for i, c := range combos {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			preset, err := r.registry.Preset(c.Request())
			if err != nil {
				return err
			}
			artifact := ArtifactName(preset)
			res, err := r.RunPreset(gctx, preset, artifact, filepath.Join(r.opts.OutputDir, artifact+ImageExt), weapons)
			if err != nil {
				return fmt.Errorf("%s: %w", artifact, err)
			}
			results[i] = res
			return nil
		})
	}

	err := g.Wait()

	var sum Summary
	for _, res := range results {
		sum.Series += res.Series
		sum.Skipped += res.Skipped
		if res.Rendered {
			sum.Presets++
			sum.Artifacts = append(sum.Artifacts, res.Artifact)
		}
	}
	return sum, err
}

// RunPreset computes the curves of every selected weapon, renders them to path
// and records them. Weapons with an undefined TTK are left out with a warning;
// a preset that selects nothing is not rendered.
func (r *Runner) RunPreset(ctx context.Context, preset core.Preset, artifact, path string, weapons []core.Weapon) (Result, error) {
	res := Result{Artifact: artifact, Path: path}
	attrs := metric.WithAttributes(
		attribute.String("health_profile", preset.Health.Name),
		attribute.String("damage_profile", preset.Damage.Name),
		attribute.String("class_filter", preset.Filter.String()),
	)

	selected := preset.Select(weapons)
	series := make([]core.Series, 0, len(selected))
	for _, w := range selected {
		ttk, err := preset.CalcTTK(w)
		if errors.Is(err, core.ErrUndefinedTTK) {
			r.logger.WarnContext(ctx, "Skipping weapon", "artifact", artifact, "weapon", w.Name, "error", err)
			res.Skipped++
			continue
		}
		if err != nil {
			return res, err
		}
		series = append(series, core.NewSeries(r.opts.RunID, artifact, preset, w, ttk))
	}
	if res.Skipped > 0 {
		r.seriesSkipped.Add(ctx, int64(res.Skipped), attrs)
	}

	if len(series) == 0 {
		r.logger.DebugContext(ctx, "No weapons to plot", "artifact", artifact, "filter", preset.Filter.String())
		return res, nil
	}
	res.Series = len(series)
	r.seriesComputed.Add(ctx, int64(len(series)), attrs)

	if err := r.renderer.Render(path, render.NewChart(preset.Describe(), series)); err != nil {
		return res, err
	}
	res.Rendered = true
	r.presetsRendered.Add(ctx, 1, attrs)
	r.logger.InfoContext(ctx, "Rendered chart", "artifact", artifact, "path", path, "weapons", len(series))

	return res, r.record(ctx, series)
}

func (r *Runner) record(ctx context.Context, series []core.Series) error {
	r.storeMu.Lock()
	defer r.storeMu.Unlock()

	for _, s := range series {
		if err := r.backend.RecordSeries(ctx, s); err != nil {
			return fmt.Errorf("recording %s: %w", s.Weapon, err)
		}
	}
	return nil
}
