package main

import (
	"context"
	"os"

	"github.com/OCAP2/ttkplot/internal/api"
	"github.com/OCAP2/ttkplot/internal/config"
	"github.com/OCAP2/ttkplot/internal/logging"
	"github.com/OCAP2/ttkplot/internal/storage"
	"github.com/spf13/viper"
)

func initStorage() (storage.Backend, error) {
	Logger.Debug("Initializing storage")

	storageCfg := config.GetStorageConfig()
	level := SlogManager.Level()
	logsDir := viper.GetString("logsDir")

	managerOut := os.Stdout
	if LogFile != nil {
		managerOut = LogFile
	}

	backend, err := storage.NewBackend(storageCfg, storage.Dependencies{
		Logger:       Logger,
		DBLogger:     logging.NewComponentLogger(managerOut, level, "database"),
		InfluxLogger: logging.NewComponentLogger(managerOut, level, "influx"),
		Influx:       config.GetInfluxConfig(),
		LogsDir:      logsDir,
	})
	if err != nil {
		Logger.Error("Failed to create storage backend", "error", err)
		return nil, err
	}
	if err := backend.Init(); err != nil {
		Logger.Error("Failed to initialize storage backend", "type", storageCfg.Type, "error", err)
		return nil, err
	}
	Logger.Info("Storage backend initialized", "type", storageCfg.Type)
	return backend, nil
}

// uploadReport sends the exported report of an Uploadable backend when
// uploads are enabled. Failures are logged; the charts are already written.
func uploadReport(ctx context.Context, backend storage.Backend) {
	uploadCfg := config.GetUploadConfig()
	if !uploadCfg.Enabled {
		return
	}
	up, ok := backend.(storage.Uploadable)
	if !ok {
		Logger.WarnContext(ctx, "Upload enabled but storage backend produces no report", "type", config.GetStorageConfig().Type)
		return
	}
	path := up.GetExportedFilePath()
	if path == "" {
		Logger.WarnContext(ctx, "No report to upload")
		return
	}

	client := api.New(uploadCfg.ServerURL, uploadCfg.APIKey)
	if err := client.Healthcheck(ctx); err != nil {
		Logger.ErrorContext(ctx, "Upload server unreachable", "url", uploadCfg.ServerURL, "error", err)
		return
	}
	if err := client.Upload(ctx, path, up.GetExportMetadata()); err != nil {
		Logger.ErrorContext(ctx, "Failed to upload report", "path", path, "error", err)
		return
	}
	Logger.InfoContext(ctx, "Uploaded report", "path", path, "url", uploadCfg.ServerURL)
}
