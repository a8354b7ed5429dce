package models

import "strings"

// Canonical source column names. The loader lower-cases and trims headers,
// so lookups against these constants are exact.
const (
	ColTitle       = "title"
	ColDescription = "description"
	ColSize        = "size"
	ColColour      = "colour"
	ColProductCode = "product code"
	ColCategory    = "product category"
	ColType        = "type"
	ColPublished   = "published"

	ColInventoryTracker = "variant inventory tracker"
	ColInventoryPolicy  = "variant inventory policy"
	ColPrice            = "variant price"
	ColCompareAtPrice   = "variant compare at price"
	ColStatus           = "status"
)

// SourceRow is one input record: column name -> raw value. Rows are read
// once and copied into variants, never mutated in place.
type SourceRow map[string]string

// Get returns the trimmed value for a column, or "" when the column is
// absent. A missing column is a recoverable schema gap, not an error.
func (r SourceRow) Get(col string) string {
	return strings.TrimSpace(r[col])
}

// Clone returns an independent copy of the row.
func (r SourceRow) Clone() SourceRow {
	c := make(SourceRow, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// Variant is one exploded size×colour combination of a source row.
type Variant struct {
	Source SourceRow `json:"source"`
	Size   string    `json:"size"`
	Colour string    `json:"colour"`

	// Identity assigned by the handle stage. Serial is shared by all
	// variants of one source row and embedded in the SKU.
	Handle string `json:"handle"`
	Serial string `json:"serial"`

	// Enrichment result, broadcast from the owning source row.
	Description string `json:"description"`
	Tags        string `json:"tags"`

	// Resolved inventory quantity.
	Qty int `json:"qty"`
}

// Title returns the variant's product title.
func (v *Variant) Title() string {
	return v.Source.Get(ColTitle)
}
