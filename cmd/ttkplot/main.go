package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/OCAP2/ttkplot/internal/batch"
	"github.com/OCAP2/ttkplot/internal/config"
	"github.com/OCAP2/ttkplot/internal/logging"
	intOtel "github.com/OCAP2/ttkplot/internal/otel"
	"github.com/OCAP2/ttkplot/internal/parser"
	"github.com/OCAP2/ttkplot/internal/profile"
	"github.com/OCAP2/ttkplot/internal/render"
	"github.com/OCAP2/ttkplot/pkg/core"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// module defs - BuildDate can be set at build time via ldflags
var (
	CurrentVersion string = "0.0.1"
	BuildDate      string = "unknown"

	ExtensionName string = "ttkplot"
)

var (
	SlogManager  *logging.SlogManager
	Logger       *slog.Logger
	LogFile      *os.File
	OTelProvider *intOtel.Provider
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) (err error) {
	runStart := time.Now()
	runID := uuid.NewString()

	// stdout logging until the log file is open
	SlogManager = logging.NewSlogManager()
	SlogManager.Setup(nil, "info", nil)
	Logger = SlogManager.Logger()

	fs := newFlagSet()
	opts, err := parseArgs(fs, args)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := config.Load(opts.ConfigDir); err != nil {
		Logger.Warn("Failed to load config, using defaults!", "error", err)
	} else {
		Logger.Info("Loaded config", "path", viper.ConfigFileUsed())
	}

	closeLogging := setupLogging(runStart)
	defer closeLogging()

	ctx := logging.WithRunID(context.Background(), runID)
	defer func() {
		if err != nil {
			Logger.ErrorContext(ctx, "Run failed", "error", err)
		}
	}()
	Logger.InfoContext(ctx, "Starting up...", "version", CurrentVersion, "buildDate", BuildDate)

	// profile keys and overrides fail before anything is read or stored
	registry := profile.NewRegistry()
	var preset core.Preset
	if !opts.All {
		preset, err = registry.Preset(opts.Request())
		if err != nil {
			return err
		}
	}

	weapons, err := parser.NewParser(Logger).LoadWeapons(viper.GetString("statsFile"))
	if err != nil {
		return err
	}

	backend, err := initStorage()
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			Logger.WarnContext(ctx, "Failed to close storage backend", "error", err)
		}
	}()

	if err := backend.StartRun(ctx, core.Run{
		ID:          runID,
		StartTime:   runStart,
		StatsFile:   viper.GetString("statsFile"),
		WeaponCount: len(weapons),
		Batch:       opts.All,
	}); err != nil {
		return fmt.Errorf("starting run: %w", err)
	}
	ended := false
	defer func() {
		if err == nil || ended {
			return
		}
		// close the run so backends do not keep it open
		if endErr := backend.EndRun(ctx); endErr != nil {
			Logger.WarnContext(ctx, "Failed to end run", "error", endErr)
		}
	}()

	runner, err := batch.NewRunner(registry, render.NewPNG(config.GetChartConfig()), backend, Logger, batch.Options{
		RunID:     runID,
		OutputDir: viper.GetString("outputDir"),
		Workers:   viper.GetInt("workers"),
	})
	if err != nil {
		return err
	}

	if opts.All {
		err = runBatch(ctx, runner, opts, weapons)
	} else {
		err = runSingle(ctx, runner, preset, weapons)
	}
	if err != nil {
		return err
	}

	ended = true
	if err := backend.EndRun(ctx); err != nil {
		return fmt.Errorf("ending run: %w", err)
	}
	uploadReport(ctx, backend)

	Logger.InfoContext(ctx, "Done", "duration", time.Since(runStart))
	return nil
}

func runBatch(ctx context.Context, runner *batch.Runner, opts cliOptions, weapons []core.Weapon) error {
	if opts.HasOverrides() {
		Logger.WarnContext(ctx, "Profile overrides are ignored with --all")
	}
	sum, err := runner.Run(ctx, weapons)
	if err != nil {
		return err
	}
	Logger.InfoContext(ctx, "Batch complete",
		"charts", sum.Presets,
		"series", sum.Series,
		"skipped", sum.Skipped,
		"outputDir", viper.GetString("outputDir"))
	return nil
}

func runSingle(ctx context.Context, runner *batch.Runner, preset core.Preset, weapons []core.Weapon) error {
	out := viper.GetString("output")
	res, err := runner.RunPreset(ctx, preset, batch.ArtifactName(preset), out, weapons)
	if err != nil {
		return err
	}
	if !res.Rendered {
		Logger.WarnContext(ctx, "No weapons to plot", "class", preset.Filter.String())
	}
	return nil
}

// setupLogging moves logging into the run's log file and attaches the OTel and
// GELF sinks. The returned func flushes and closes them.
func setupLogging(runStart time.Time) func() {
	logsDir := viper.GetString("logsDir")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		Logger.Error("Failed to create logs directory", "error", err, "path", logsDir)
	}

	logFilePath := logging.LogFilePath(logsDir, ExtensionName, runStart)
	var err error
	LogFile, err = os.OpenFile(logFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		Logger.Error("Failed to create/open log file!", "error", err, "path", logFilePath)
		LogFile = nil
	}

	var otelWriter io.Writer
	if LogFile != nil {
		otelWriter = LogFile
	}
	otelCfg := config.GetOTelConfig()
	if otelCfg.Enabled {
		OTelProvider, err = intOtel.New(intOtel.FromSettings(otelCfg, otelWriter))
		if err != nil {
			Logger.Error("Failed to initialize OTel provider", "error", err)
		} else {
			Logger.Info("OTel provider initialized", "endpoint", otelCfg.Endpoint)
		}
	}

	// the console keeps receiving records once a file is in use
	var sinks []io.Writer
	if LogFile != nil {
		sinks = append(sinks, os.Stderr)
	}
	var closers []io.Closer
	if gl := config.GetGraylogConfig(); gl.Enabled {
		w, err := logging.NewGELFWriter(gl.Address)
		if err != nil {
			Logger.Error("Failed to connect to Graylog", "error", err)
		} else {
			sinks = append(sinks, w)
			closers = append(closers, w)
		}
	}

	var otelLogProvider *sdklog.LoggerProvider
	if OTelProvider != nil {
		otelLogProvider = OTelProvider.LoggerProvider()
	}
	var file io.Writer
	if LogFile != nil {
		file = LogFile
	}
	SlogManager.Setup(file, viper.GetString("logLevel"), otelLogProvider, sinks...)
	Logger = SlogManager.Logger()
	if LogFile != nil {
		Logger.Info("Logging to file", "path", logFilePath)
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if OTelProvider != nil {
			if err := OTelProvider.Shutdown(ctx); err != nil {
				fmt.Fprintln(os.Stderr, "otel shutdown:", err)
			}
		}
		for _, c := range closers {
			_ = c.Close()
		}
		if LogFile != nil {
			_ = LogFile.Close()
		}
	}
}
