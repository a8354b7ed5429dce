// Package pipeline runs the single-pass transform from a loaded product
// table to finished Shopify import rows: enrichment, variant expansion,
// handle assignment, quantity resolution and output building.
package pipeline

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/badno/shopbuild/internal/builder"
	"github.com/badno/shopbuild/internal/enrich"
	"github.com/badno/shopbuild/internal/expand"
	"github.com/badno/shopbuild/internal/handle"
	"github.com/badno/shopbuild/internal/loader"
	"github.com/badno/shopbuild/internal/quantity"
	"github.com/badno/shopbuild/internal/textgen"
	"github.com/badno/shopbuild/pkg/models"
)

// Options configures one pipeline run.
type Options struct {
	Mode       enrich.Mode
	Vendor     string
	DefaultQty int
	BulkQty    int  // Bulk quantity value; used when BulkMode is set
	BulkMode   bool // Overrides every quantity with BulkQty
	Limit      int  // Maximum products to process (0 = all)

	// Explicit per-variant overrides, superseded by bulk mode.
	Overrides map[quantity.Key]int

	// Progress is called once per source row before it is processed.
	Progress func(index, total int, title string)
}

// Result is the outcome of one pipeline run.
type Result struct {
	Rows     []models.OutputRow
	Variants []*models.Variant
	Products int      // Source rows processed
	Handles  int      // Distinct handles assigned
	TotalQty int      // Sum of resolved quantities
	Warnings []string // Non-fatal enrichment degradations
}

// Pipeline transforms product tables.
type Pipeline struct {
	client textgen.Client
	log    logrus.FieldLogger
}

// New creates a pipeline. A nil client disables generation; simple and full
// modes then degrade per row.
func New(client textgen.Client, log logrus.FieldLogger) *Pipeline {
	if client == nil {
		client = textgen.Disabled{}
	}
	if log == nil {
		logger := logrus.New()
		logger.SetLevel(logrus.WarnLevel)
		log = logger
	}
	return &Pipeline{client: client, log: log}
}

// Run processes the table in one pass. Enrichment happens once per source
// row before expansion, so external calls are bounded by the product count,
// not the variant count. Only context cancellation between rows aborts the
// run; per-row enrichment failures degrade and continue.
func (p *Pipeline) Run(ctx context.Context, table *loader.Table, opts Options) (*Result, error) {
	rows := table.Rows
	if opts.Limit > 0 && opts.Limit < len(rows) {
		rows = rows[:opts.Limit]
	}

	enricher := enrich.New(opts.Mode, p.client, p.log)
	assigner := handle.NewAssigner()

	resolver := quantity.NewResolver(opts.DefaultQty)
	for key, qty := range opts.Overrides {
		resolver.SetOverride(key, qty)
	}
	if opts.BulkMode {
		resolver.EnableBulk(opts.BulkQty)
	}

	out := builder.New(opts.Vendor)
	result := &Result{Products: len(rows)}
	handles := make(map[string]bool)

	for i, src := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if opts.Progress != nil {
			opts.Progress(i, len(rows), src.Get(models.ColTitle))
		}

		enriched := enricher.Enrich(ctx, src)
		if enriched.Warning != "" {
			result.Warnings = append(result.Warnings, enriched.Warning)
		}

		h, serial := assigner.Assign(src.Get(models.ColTitle))
		handles[h] = true

		for _, v := range expand.Row(src) {
			v.Handle = h
			v.Serial = serial
			v.Description = enriched.Description
			v.Tags = enriched.Tags
			v.Qty = resolver.Resolve(quantity.ForVariant(v))

			result.TotalQty += v.Qty
			result.Variants = append(result.Variants, v)
			result.Rows = append(result.Rows, out.Row(v))
		}
	}

	result.Handles = len(handles)
	return result, nil
}

// UniqueKeys returns the distinct variant keys of a run, in first-seen
// order, for quantity-input listings.
func (r *Result) UniqueKeys() []quantity.Key {
	seen := make(map[quantity.Key]bool)
	var keys []quantity.Key
	for _, v := range r.Variants {
		k := quantity.ForVariant(v)
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}
