package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/badno/shopbuild/internal/output"
	"github.com/badno/shopbuild/pkg/models"
)

const JSONAdapterName = "json"

// JSONConfig holds JSON file output configuration.
type JSONConfig struct {
	OutputDir string // Directory for output files
	Pretty    bool   // Pretty-print JSON
}

// JSONAdapter writes the import rows as JSON, mainly for inspecting a build
// before importing it.
type JSONAdapter struct {
	*output.BaseAdapter
	config JSONConfig
}

// NewJSONAdapter creates a new JSON file adapter.
func NewJSONAdapter(cfg JSONConfig) *JSONAdapter {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "output"
	}

	return &JSONAdapter{
		BaseAdapter: output.NewBaseAdapter(
			JSONAdapterName,
			[]output.Format{output.FormatJSON},
		),
		config: cfg,
	}
}

// Connect creates the output directory.
func (a *JSONAdapter) Connect(ctx context.Context) error {
	if err := os.MkdirAll(a.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	a.SetConnected(true)
	return nil
}

// Close cleans up resources.
func (a *JSONAdapter) Close() error {
	a.SetConnected(false)
	return nil
}

// Test verifies the output directory is writable.
func (a *JSONAdapter) Test(ctx context.Context) error {
	testFile := filepath.Join(a.config.OutputDir, ".test")
	f, err := os.Create(testFile)
	if err != nil {
		return fmt.Errorf("output directory not writable: %w", err)
	}
	f.Close()
	os.Remove(testFile)
	return nil
}

// ExportRows writes the import rows to a JSON file.
func (a *JSONAdapter) ExportRows(ctx context.Context, rows []models.OutputRow, opts output.ExportOptions) (*output.ExportResult, error) {
	result := &output.ExportResult{
		StartedAt: time.Now(),
	}

	if !a.IsConnected() {
		if err := a.Connect(ctx); err != nil {
			result.Error = err
			return result, err
		}
	}

	if opts.DryRun {
		result.RowsExported = len(rows)
		result.Success = true
		result.Details = fmt.Sprintf("Dry run: would write %d rows", len(rows))
		result.CompletedAt = time.Now()
		return result, nil
	}

	filename := opts.OutputPath
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(a.config.OutputDir, fmt.Sprintf("shopify_import_%s.json", timestamp))
	}

	var (
		data []byte
		err  error
	)
	if a.config.Pretty {
		data, err = json.MarshalIndent(rows, "", "  ")
	} else {
		data, err = json.Marshal(rows)
	}
	if err != nil {
		result.Error = err
		return result, err
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		result.Error = err
		return result, err
	}

	result.Destination = filename
	result.RowsExported = len(rows)
	result.Success = true
	result.Details = fmt.Sprintf("Wrote %d variant rows to %s", len(rows), filename)
	result.CompletedAt = time.Now()

	return result, nil
}
