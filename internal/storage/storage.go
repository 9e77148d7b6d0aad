// internal/storage/storage.go
package storage

import (
	"context"

	"github.com/OCAP2/ttkplot/pkg/core"
)

// Backend is the interface all storage implementations must satisfy.
// RecordSeries may be called from several goroutines.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Run management
	StartRun(ctx context.Context, run core.Run) error
	EndRun(ctx context.Context) error

	// Result recording
	RecordSeries(ctx context.Context, s core.Series) error
}

// Uploadable is an optional interface for storage backends that produce
// a report file suitable for upload.
type Uploadable interface {
	GetExportedFilePath() string
	GetExportMetadata() core.UploadMetadata
}

// Nop discards everything. It backs storage.type "none".
type Nop struct{}

func (Nop) Init() error { return nil }
func (Nop) Close() error { return nil }
func (Nop) StartRun(context.Context, core.Run) error { return nil }
func (Nop) EndRun(context.Context) error { return nil }
func (Nop) RecordSeries(context.Context, core.Series) error { return nil }
