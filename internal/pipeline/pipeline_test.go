package pipeline

import (
	"context"
	"testing"

	"github.com/badno/shopbuild/internal/enrich"
	"github.com/badno/shopbuild/internal/loader"
	"github.com/badno/shopbuild/internal/quantity"
	"github.com/badno/shopbuild/pkg/models"
)

type countingClient struct {
	calls    int
	response string
	err      error
}

func (c *countingClient) Name() string { return "counting" }

func (c *countingClient) Generate(ctx context.Context, prompt string) (string, error) {
	c.calls++
	return c.response, c.err
}

func teeTable() *loader.Table {
	return &loader.Table{
		Headers: []string{"title", "description", "size", "colour", "product code", "published"},
		Rows: []models.SourceRow{
			{
				"title":        "Tee",
				"description":  "A soft cotton tee. Built for everyday wear.",
				"size":         "S,M",
				"colour":       "Red,Blue",
				"product code": "T1",
				"published":    "active",
			},
		},
	}
}

func TestRunExpandsVariants(t *testing.T) {
	p := New(nil, nil)

	result, err := p.Run(context.Background(), teeTable(), Options{
		Mode:       enrich.ModeTemplate,
		Vendor:     "BrandName",
		DefaultQty: 10,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Products != 1 {
		t.Errorf("Products = %d, want 1", result.Products)
	}
	if result.Handles != 1 {
		t.Errorf("Handles = %d, want 1", result.Handles)
	}
	if len(result.Rows) != 4 {
		t.Fatalf("got %d rows, want 2 sizes x 2 colours = 4", len(result.Rows))
	}
	if result.TotalQty != 40 {
		t.Errorf("TotalQty = %d, want 40", result.TotalQty)
	}

	wantSKUs := []string{"T1-01-S-Red", "T1-01-S-Blue", "T1-01-M-Red", "T1-01-M-Blue"}
	for i, row := range result.Rows {
		if row.Handle != "tee-01" {
			t.Errorf("row %d Handle = %q, want tee-01", i, row.Handle)
		}
		if row.VariantSKU != wantSKUs[i] {
			t.Errorf("row %d SKU = %q, want %q", i, row.VariantSKU, wantSKUs[i])
		}
		if row.Published != "TRUE" {
			t.Errorf("row %d Published = %q, want TRUE", i, row.Published)
		}
		if row.Vendor != "BrandName" {
			t.Errorf("row %d Vendor = %q", i, row.Vendor)
		}
	}
}

func TestRunTemplateModeNeverGenerates(t *testing.T) {
	client := &countingClient{response: "should not be used"}
	p := New(client, nil)

	_, err := p.Run(context.Background(), teeTable(), Options{
		Mode:       enrich.ModeTemplate,
		DefaultQty: 1,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if client.calls != 0 {
		t.Errorf("template mode made %d generation calls, want 0", client.calls)
	}
}

func TestRunFullModeOneCallPerProduct(t *testing.T) {
	client := &countingClient{response: "Rewritten description.\ncotton, casual"}
	p := New(client, nil)

	table := teeTable()
	table.Rows = append(table.Rows, models.SourceRow{
		"title":        "Hoodie",
		"description":  "Warm fleece hoodie.",
		"size":         "S,M,L",
		"colour":       "Black",
		"product code": "H1",
		"published":    "active",
	})

	result, err := p.Run(context.Background(), table, Options{
		Mode:       enrich.ModeFull,
		DefaultQty: 1,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// 2 products, 7 variant rows: calls follow products, not variants
	if client.calls != 2 {
		t.Errorf("got %d generation calls, want 2", client.calls)
	}
	if len(result.Rows) != 7 {
		t.Errorf("got %d rows, want 7", len(result.Rows))
	}
	for _, v := range result.Variants {
		if v.Description != "Rewritten description." {
			t.Errorf("Description = %q", v.Description)
			break
		}
	}
}

func TestRunCollectsDegradationWarnings(t *testing.T) {
	client := &countingClient{err: context.DeadlineExceeded}
	p := New(client, nil)

	result, err := p.Run(context.Background(), teeTable(), Options{
		Mode:       enrich.ModeFull,
		DefaultQty: 1,
	})
	if err != nil {
		t.Fatalf("Run must not fail on enrichment degradation: %v", err)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("got %d warnings, want 1", len(result.Warnings))
	}
	// Degraded rows keep the original description
	if len(result.Rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(result.Rows))
	}
}

func TestRunQuantityPrecedence(t *testing.T) {
	p := New(nil, nil)
	override := quantity.NewKey("S", "Red", "Tee")

	result, err := p.Run(context.Background(), teeTable(), Options{
		Mode:       enrich.ModeTemplate,
		DefaultQty: 10,
		Overrides:  map[quantity.Key]int{override: 3},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.TotalQty != 33 {
		t.Errorf("TotalQty = %d, want 3 + 10*3 = 33", result.TotalQty)
	}

	// Bulk supersedes overrides and the default
	result, err = p.Run(context.Background(), teeTable(), Options{
		Mode:       enrich.ModeTemplate,
		DefaultQty: 10,
		BulkQty:    7,
		BulkMode:   true,
		Overrides:  map[quantity.Key]int{override: 3},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.TotalQty != 28 {
		t.Errorf("TotalQty = %d, want 7*4 = 28", result.TotalQty)
	}
}

func TestRunLimit(t *testing.T) {
	table := teeTable()
	table.Rows = append(table.Rows, models.SourceRow{
		"title":        "Hoodie",
		"size":         "M",
		"colour":       "Black",
		"product code": "H1",
	})

	p := New(nil, nil)
	result, err := p.Run(context.Background(), table, Options{
		Mode:       enrich.ModeTemplate,
		DefaultQty: 1,
		Limit:      1,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Products != 1 || len(result.Rows) != 4 {
		t.Errorf("limit 1: Products = %d, rows = %d", result.Products, len(result.Rows))
	}
}

func TestRunDuplicateTitlesGetDistinctHandles(t *testing.T) {
	table := teeTable()
	second := table.Rows[0].Clone()
	second["product code"] = "T2"
	table.Rows = append(table.Rows, second)

	p := New(nil, nil)
	result, err := p.Run(context.Background(), table, Options{
		Mode:       enrich.ModeTemplate,
		DefaultQty: 1,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Handles != 2 {
		t.Errorf("Handles = %d, want 2", result.Handles)
	}
	if result.Rows[0].Handle != "tee-01" || result.Rows[4].Handle != "tee-02" {
		t.Errorf("handles = %q, %q", result.Rows[0].Handle, result.Rows[4].Handle)
	}
	if result.Rows[4].VariantSKU != "T2-02-S-Red" {
		t.Errorf("second product SKU = %q, want T2-02-S-Red", result.Rows[4].VariantSKU)
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(nil, nil)
	if _, err := p.Run(ctx, teeTable(), Options{Mode: enrich.ModeTemplate, DefaultQty: 1}); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestUniqueKeysFirstSeenOrder(t *testing.T) {
	p := New(nil, nil)
	result, err := p.Run(context.Background(), teeTable(), Options{
		Mode:       enrich.ModeTemplate,
		DefaultQty: 1,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	keys := result.UniqueKeys()
	if len(keys) != 4 {
		t.Fatalf("got %d keys, want 4", len(keys))
	}
	first := quantity.NewKey("S", "Red", "Tee")
	if keys[0] != first {
		t.Errorf("keys[0] = %v, want %v", keys[0], first)
	}
}
