// Package influxstorage implements the storage.Backend interface by writing
// one InfluxDB point per weapon and distance bucket.
package influxstorage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/OCAP2/ttkplot/internal/influx"
	"github.com/OCAP2/ttkplot/pkg/core"
)

// Backend writes series through an influx.Manager.
type Backend struct {
	manager *influx.Manager

	mu     sync.Mutex
	run    *core.Run
	points int
}

// New creates a new InfluxDB storage backend.
func New(manager *influx.Manager) *Backend {
	return &Backend{manager: manager}
}

// Init connects to InfluxDB, falling back to the manager's backup file.
func (b *Backend) Init() error {
	return b.manager.Connect(context.Background())
}

// Close flushes and releases the client.
func (b *Backend) Close() error {
	return b.manager.Close()
}

// StartRun remembers the run; its start time stamps every point.
func (b *Backend) StartRun(_ context.Context, run core.Run) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.run = &run
	b.points = 0
	return nil
}

// RecordSeries writes the series points.
func (b *Backend) RecordSeries(_ context.Context, s core.Series) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.run == nil {
		return fmt.Errorf("record series %s/%s: no run started", s.Artifact, s.Weapon)
	}
	var errs []error
	for _, p := range influx.SeriesPoints(s, b.run.StartTime) {
		if err := b.manager.WritePoint(p); err != nil {
			errs = append(errs, err)
			continue
		}
		b.points++
	}
	return errors.Join(errs...)
}

// EndRun flushes buffered points.
func (b *Backend) EndRun(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.run == nil {
		return fmt.Errorf("end run: no run started")
	}
	b.manager.Flush()
	b.run = nil
	return nil
}

// Points returns the number of points written in the current or last run.
func (b *Backend) Points() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.points
}
