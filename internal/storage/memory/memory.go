// internal/storage/memory/memory.go
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/OCAP2/ttkplot/internal/config"
	v1 "github.com/OCAP2/ttkplot/internal/storage/memory/export/v1"
	"github.com/OCAP2/ttkplot/pkg/core"
)

// Backend keeps a run's series in memory and exports them as a JSON report
type Backend struct {
	cfg config.MemoryConfig

	run     *core.Run
	series  []core.Series
	endTime time.Time

	lastExportPath string
	lastMetadata   core.UploadMetadata

	mu sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{cfg: cfg}
}

// Init initializes the backend
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// StartRun begins collecting a new run, dropping anything left from the last one
func (b *Backend) StartRun(_ context.Context, run core.Run) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.run = &run
	b.series = nil
	b.endTime = time.Time{}
	return nil
}

// RecordSeries appends one computed curve
func (b *Backend) RecordSeries(_ context.Context, s core.Series) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.run == nil {
		return fmt.Errorf("record series %s/%s: no run started", s.Artifact, s.Weapon)
	}
	s.Distances = append([]string(nil), s.Distances...)
	s.TTK = append([]int(nil), s.TTK...)
	b.series = append(b.series, s)
	return nil
}

// EndRun finalizes and exports the run report
func (b *Backend) EndRun(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.run == nil {
		return fmt.Errorf("end run: no run started")
	}
	b.endTime = time.Now()
	return b.exportJSON()
}

// Series returns a copy of the series recorded for the current run
func (b *Backend) Series() []core.Series {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]core.Series, len(b.series))
	copy(out, b.series)
	return out
}

// GetExportedFilePath returns the path of the last exported report
func (b *Backend) GetExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}

// GetExportMetadata describes the last exported report
func (b *Backend) GetExportMetadata() core.UploadMetadata {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastMetadata
}

func (b *Backend) runData() *v1.RunData {
	return &v1.RunData{
		Run:     *b.run,
		EndTime: b.endTime,
		Series:  b.series,
	}
}
