// internal/storage/memory/export.go
package memory

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	v1 "github.com/OCAP2/ttkplot/internal/storage/memory/export/v1"
	"github.com/OCAP2/ttkplot/pkg/core"
)

// reportFileName returns ttk_<timestamp>_<runid>.json, with .gz when compressed
func reportFileName(run core.Run, compress bool) string {
	name := fmt.Sprintf("ttk_%s_%s.json", run.StartTime.UTC().Format("20060102_150405"), run.ID)
	if compress {
		name += ".gz"
	}
	return name
}

// exportJSON writes the run report. Callers hold b.mu.
func (b *Backend) exportJSON() error {
	report := v1.Build(b.runData())

	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	outputPath := filepath.Join(b.cfg.OutputDir, reportFileName(*b.run, b.cfg.CompressOutput))

	var err error
	if b.cfg.CompressOutput {
		err = writeGzipJSON(outputPath, report)
	} else {
		err = writeJSON(outputPath, report)
	}
	if err != nil {
		return err
	}

	artifacts := make([]string, 0, len(report.Artifacts))
	for _, a := range report.Artifacts {
		artifacts = append(artifacts, a.Name)
	}

	b.lastExportPath = outputPath
	b.lastMetadata = core.UploadMetadata{
		RunID:       b.run.ID,
		StatsFile:   b.run.StatsFile,
		SeriesCount: len(b.series),
		Artifacts:   artifacts,
		Duration:    b.endTime.Sub(b.run.StartTime).Seconds(),
	}
	return nil
}

func writeJSON(path string, report v1.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	encErr := encoder.Encode(report)
	return errors.Join(encErr, f.Close())
}

func writeGzipJSON(path string, report v1.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	gzWriter := gzip.NewWriter(f)
	encErr := json.NewEncoder(gzWriter).Encode(report)
	return errors.Join(encErr, gzWriter.Close(), f.Close())
}
