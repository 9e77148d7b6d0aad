// internal/storage/factory.go
package storage

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/OCAP2/ttkplot/internal/config"
	"github.com/OCAP2/ttkplot/internal/database"
	"github.com/OCAP2/ttkplot/internal/influx"
	gormstorage "github.com/OCAP2/ttkplot/internal/storage/gorm"
	influxstorage "github.com/OCAP2/ttkplot/internal/storage/influx"
	"github.com/OCAP2/ttkplot/internal/storage/memory"
	"github.com/rs/zerolog"
)

// Dependencies carries what the non-memory backends need.
type Dependencies struct {
	Logger       *slog.Logger
	DBLogger     zerolog.Logger
	InfluxLogger zerolog.Logger
	Influx       config.InfluxConfig
	// LogsDir receives the influx backup file.
	LogsDir string
}

// NewBackend creates a storage backend based on configuration
func NewBackend(cfg config.StorageConfig, deps Dependencies) (Backend, error) {
	switch cfg.Type {
	case "postgres":
		return gormstorage.New(gormstorage.Dependencies{
			Manager: database.NewManager(deps.DBLogger),
			Connect: func(m *database.Manager) error { return m.ConnectPostgres(cfg.Postgres) },
			Logger:  deps.Logger,
		}), nil
	case "sqlite":
		return gormstorage.New(gormstorage.Dependencies{
			Manager: database.NewManager(deps.DBLogger),
			Connect: func(m *database.Manager) error { return m.ConnectSQLite(cfg.SQLite.Path) },
			Logger:  deps.Logger,
		}), nil
	case "influx":
		backup := filepath.Join(deps.LogsDir, "influx_backup.log.gz")
		return influxstorage.New(influx.NewManager(deps.InfluxLogger, deps.Influx, backup)), nil
	case "memory":
		return memory.New(cfg.Memory), nil
	case "none", "":
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
