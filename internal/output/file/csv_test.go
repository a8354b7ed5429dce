package file

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/badno/shopbuild/internal/output"
	"github.com/badno/shopbuild/pkg/models"
)

func sampleRow() models.OutputRow {
	return models.OutputRow{
		Handle:             "classic-tee-01",
		Title:              "Classic Tee",
		BodyHTML:           "<p>A soft cotton tee, made to last.</p>",
		Vendor:             "BrandName",
		ProductCategory:    "Apparel",
		Type:               "T-Shirt",
		Tags:               "cotton, casual",
		Published:          "TRUE",
		Option1Name:        "Size",
		Option1Value:       "M",
		Option2Name:        "Color",
		Option2Value:       "Red",
		VariantSKU:         "T1-01-M-Red",
		VariantGrams:       "0",
		InventoryTracker:   "shopify",
		InventoryQty:       10,
		InventoryPolicy:    "deny",
		FulfillmentService: "manual",
		Price:              "19.90",
		CompareAtPrice:     "29.90",
		RequiresShipping:   "TRUE",
		Taxable:            "TRUE",
		Status:             "active",
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	row := sampleRow()

	var buf bytes.Buffer
	if err := WriteCSV(&buf, []models.OutputRow{row}); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want header + 1 row", len(records))
	}
	if !reflect.DeepEqual(records[0], models.ShopifyHeader) {
		t.Errorf("header mismatch:\n got %v\nwant %v", records[0], models.ShopifyHeader)
	}

	got := records[1]
	if len(got) != len(models.ShopifyHeader) {
		t.Fatalf("row has %d fields, want %d", len(got), len(models.ShopifyHeader))
	}
	checks := map[string]string{
		"Handle":                      "classic-tee-01",
		"Body (HTML)":                 "<p>A soft cotton tee, made to last.</p>",
		"Variant SKU":                 "T1-01-M-Red",
		"Variant Inventory Qty":       "10",
		"Option1 Name":                "Size",
		"Option2 Value":               "Red",
		"Variant Fulfillment Service": "manual",
		"Published":                   "TRUE",
	}
	for col, want := range checks {
		idx := headerIndex(t, col)
		if got[idx] != want {
			t.Errorf("%s = %q, want %q", col, got[idx], want)
		}
	}
}

func headerIndex(t *testing.T, name string) int {
	t.Helper()
	for i, h := range models.ShopifyHeader {
		if h == name {
			return i
		}
	}
	t.Fatalf("column %q not in header", name)
	return -1
}

func TestWriteCSVQuotesEmbeddedCommas(t *testing.T) {
	row := sampleRow()
	row.Tags = "cotton, casual, summer"

	var buf bytes.Buffer
	if err := WriteCSV(&buf, []models.OutputRow{row}); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if !strings.Contains(buf.String(), `"cotton, casual, summer"`) {
		t.Error("tag list with commas must be quoted")
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	idx := headerIndex(t, "Tags")
	if records[1][idx] != "cotton, casual, summer" {
		t.Errorf("Tags = %q", records[1][idx])
	}
}

func TestExportRowsDryRun(t *testing.T) {
	adapter := NewCSVAdapter(CSVConfig{OutputDir: t.TempDir()})

	result, err := adapter.ExportRows(context.Background(), []models.OutputRow{sampleRow()}, output.ExportOptions{
		Format: output.FormatShopify,
		DryRun: true,
	})
	if err != nil {
		t.Fatalf("ExportRows: %v", err)
	}
	if !result.Success || result.RowsExported != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
	if result.Destination != "" {
		t.Error("dry run must not name a destination file")
	}
}

func TestExportRowsWritesFile(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "import.csv")
	adapter := NewCSVAdapter(CSVConfig{OutputDir: dir})

	result, err := adapter.ExportRows(context.Background(), []models.OutputRow{sampleRow()}, output.ExportOptions{
		Format:     output.FormatShopify,
		OutputPath: outPath,
	})
	if err != nil {
		t.Fatalf("ExportRows: %v", err)
	}
	if result.Destination != outPath {
		t.Errorf("Destination = %q, want %q", result.Destination, outPath)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.HasPrefix(string(data), "Handle,Title,") {
		t.Errorf("file does not start with the import header: %q", string(data[:40]))
	}
}
