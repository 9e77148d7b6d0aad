// Package gormstorage implements the storage.Backend interface on SQLite or
// PostgreSQL through GORM. Series are queued and written in batches.
package gormstorage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/OCAP2/ttkplot/internal/database"
	"github.com/OCAP2/ttkplot/internal/model"
	"github.com/OCAP2/ttkplot/internal/model/convert"
	"github.com/OCAP2/ttkplot/internal/queue"
	"github.com/OCAP2/ttkplot/pkg/core"
)

// DefaultBatchSize is the number of queued series that triggers a write.
const DefaultBatchSize = 200

// ErrNoRun is returned when series arrive before StartRun.
var ErrNoRun = errors.New("no run started")

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	Manager *database.Manager
	// Connect opens the manager's connection during Init.
	Connect   func(m *database.Manager) error
	Logger    *slog.Logger
	BatchSize int
}

// Backend implements storage.Backend using GORM with queue-based batch writes.
type Backend struct {
	deps   Dependencies
	series *queue.Queue[model.Series]

	mu  sync.Mutex
	run *model.Run
}

// New creates a new GORM storage backend.
func New(deps Dependencies) *Backend {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.BatchSize <= 0 {
		deps.BatchSize = DefaultBatchSize
	}
	return &Backend{
		deps:   deps,
		series: queue.New[model.Series](),
	}
}

// Init connects and migrates the schema.
func (b *Backend) Init() error {
	if b.deps.Manager == nil {
		return fmt.Errorf("gorm storage: no database manager")
	}
	if b.deps.Connect != nil {
		if err := b.deps.Connect(b.deps.Manager); err != nil {
			return err
		}
	}
	if err := b.deps.Manager.Setup(); err != nil {
		return fmt.Errorf("failed to setup DB: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (b *Backend) Close() error {
	return b.deps.Manager.Close()
}

// StartRun inserts the run row.
func (b *Backend) StartRun(ctx context.Context, run core.Run) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	gormRun := convert.CoreToRun(run)
	if err := b.deps.Manager.DB.WithContext(ctx).Create(&gormRun).Error; err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.ID, err)
	}
	b.run = &gormRun
	b.deps.Logger.DebugContext(ctx, "Run row created", "row_id", gormRun.ID)
	return nil
}

// RecordSeries converts the series and queues it, writing once a batch is full.
func (b *Backend) RecordSeries(ctx context.Context, s core.Series) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.run == nil {
		return fmt.Errorf("record series %s/%s: %w", s.Artifact, s.Weapon, ErrNoRun)
	}
	b.series.Push(convert.CoreToSeries(s, b.run.ID))
	b.run.SeriesCount++

	if b.series.Len() >= b.deps.BatchSize {
		return b.flush(ctx)
	}
	return nil
}

// EndRun writes the remaining series and closes the run row.
func (b *Backend) EndRun(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.run == nil {
		return fmt.Errorf("end run: %w", ErrNoRun)
	}
	if err := b.flush(ctx); err != nil {
		return err
	}

	b.run.EndTime = sql.NullTime{Time: time.Now(), Valid: true}
	err := b.deps.Manager.DB.WithContext(ctx).
		Model(&model.Run{}).
		Where("id = ?", b.run.ID).
		Updates(map[string]interface{}{
			"end_time":     b.run.EndTime,
			"series_count": b.run.SeriesCount,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to close run %s: %w", b.run.RunID, err)
	}

	b.deps.Logger.InfoContext(ctx, "Run stored", "series", b.run.SeriesCount)
	b.run = nil
	return nil
}

// flush writes queued series. Callers hold b.mu.
func (b *Backend) flush(ctx context.Context) error {
	db := b.deps.Manager.DB.WithContext(ctx)
	for batch := b.series.PopN(b.deps.BatchSize); len(batch) > 0; batch = b.series.PopN(b.deps.BatchSize) {
		start := time.Now()
		if err := db.Create(&batch).Error; err != nil {
			return fmt.Errorf("failed to insert %d series: %w", len(batch), err)
		}
		b.deps.Logger.DebugContext(ctx, "Wrote series batch", "count", len(batch), "duration", time.Since(start))
	}
	return nil
}
