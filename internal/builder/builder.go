// Package builder maps expanded variant rows onto the fixed Shopify import
// schema. No row is dropped or reordered: output row count equals variant
// count.
package builder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/badno/shopbuild/pkg/models"
)

// Builder produces Shopify output rows for variants.
type Builder struct {
	vendor string
}

// New creates a builder. The vendor name appears on every output row.
func New(vendor string) *Builder {
	return &Builder{vendor: vendor}
}

// Row maps one variant to its Shopify import row.
func (b *Builder) Row(v *models.Variant) models.OutputRow {
	src := v.Source
	return models.OutputRow{
		Handle:          v.Handle,
		Title:           src.Get(models.ColTitle),
		BodyHTML:        "<p>" + v.Description + "</p>",
		Vendor:          b.vendor,
		ProductCategory: src.Get(models.ColCategory),
		Type:            src.Get(models.ColType),
		Tags:            v.Tags,
		Published:       publishedFlag(src.Get(models.ColPublished)),
		// Option names are fixed literals on every row; Shopify's importer
		// accepts either that or first-row-only placement, and this tool
		// applies the former uniformly.
		Option1Name:        "Size",
		Option1Value:       v.Size,
		Option2Name:        "Color",
		Option2Value:       v.Colour,
		VariantSKU:         sku(src.Get(models.ColProductCode), v.Serial, v.Size, v.Colour),
		VariantGrams:       "0",
		InventoryTracker:   src.Get(models.ColInventoryTracker),
		InventoryQty:       v.Qty,
		InventoryPolicy:    src.Get(models.ColInventoryPolicy),
		FulfillmentService: "manual",
		Price:              coercePrice(src.Get(models.ColPrice)),
		CompareAtPrice:     coercePrice(src.Get(models.ColCompareAtPrice)),
		RequiresShipping:   "TRUE",
		Taxable:            "TRUE",
		Status:             src.Get(models.ColStatus),
	}
}

// Rows maps a batch of variants in order.
func (b *Builder) Rows(variants []*models.Variant) []models.OutputRow {
	rows := make([]models.OutputRow, 0, len(variants))
	for _, v := range variants {
		rows = append(rows, b.Row(v))
	}
	return rows
}

// sku composes "code-serial-size-colour".
func sku(code, serial, size, colour string) string {
	return fmt.Sprintf("%s-%s-%s-%s", code, serial, size, colour)
}

// publishedFlag maps the source published field to Shopify's TRUE/FALSE.
// Only "active" (any casing) publishes; absent or anything else does not.
func publishedFlag(published string) string {
	if strings.EqualFold(strings.TrimSpace(published), "active") {
		return "TRUE"
	}
	return "FALSE"
}

// coercePrice parses a price tolerantly, defaulting to 0 on absence or
// parse failure.
func coercePrice(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.TrimPrefix(s, "kr")
	s = strings.TrimPrefix(s, "$")

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		f = 0
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}
