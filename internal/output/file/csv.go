package file

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/badno/shopbuild/internal/output"
	"github.com/badno/shopbuild/pkg/models"
)

const CSVAdapterName = "csv"

// CSVConfig holds CSV file output configuration.
type CSVConfig struct {
	OutputDir string // Directory for output files
}

// CSVAdapter writes the Shopify import CSV.
type CSVAdapter struct {
	*output.BaseAdapter
	config CSVConfig
}

// NewCSVAdapter creates a new CSV file adapter.
func NewCSVAdapter(cfg CSVConfig) *CSVAdapter {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "output"
	}

	return &CSVAdapter{
		BaseAdapter: output.NewBaseAdapter(
			CSVAdapterName,
			[]output.Format{output.FormatShopify},
		),
		config: cfg,
	}
}

// Connect creates the output directory.
func (a *CSVAdapter) Connect(ctx context.Context) error {
	if err := os.MkdirAll(a.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	a.SetConnected(true)
	return nil
}

// Close cleans up resources.
func (a *CSVAdapter) Close() error {
	a.SetConnected(false)
	return nil
}

// Test verifies the output directory is writable.
func (a *CSVAdapter) Test(ctx context.Context) error {
	testFile := filepath.Join(a.config.OutputDir, ".test")
	f, err := os.Create(testFile)
	if err != nil {
		return fmt.Errorf("output directory not writable: %w", err)
	}
	f.Close()
	os.Remove(testFile)
	return nil
}

// ExportRows writes the import rows to a CSV file.
func (a *CSVAdapter) ExportRows(ctx context.Context, rows []models.OutputRow, opts output.ExportOptions) (*output.ExportResult, error) {
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
		filename = filepath.Join(a.config.OutputDir, fmt.Sprintf("shopify_import_%s.csv", timestamp))
	}

	f, err := os.Create(filename)
	if err != nil {
		result.Error = err
		return result, err
	}
	defer f.Close()

	if err := WriteCSV(f, rows); err != nil {
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

// WriteCSV encodes the import rows, header first, UTF-8 comma-delimited
// with standard quoting.
func WriteCSV(w io.Writer, rows []models.OutputRow) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(models.ShopifyHeader); err != nil {
		return err
	}

	for _, r := range rows {
		record := []string{
			r.Handle,
			r.Title,
			r.BodyHTML,
			r.Vendor,
			r.ProductCategory,
			r.Type,
			r.Tags,
			r.Published,
			r.Option1Name,
			r.Option1Value,
			r.Option2Name,
			r.Option2Value,
			r.VariantSKU,
			r.VariantGrams,
			r.InventoryTracker,
			strconv.Itoa(r.InventoryQty),
			r.InventoryPolicy,
			r.FulfillmentService,
			r.Price,
			r.CompareAtPrice,
			r.RequiresShipping,
			r.Taxable,
			r.Status,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
