// Package quantity resolves per-variant inventory quantities. The join key
// between quantity input and variant rows is built by one constructor on
// both sides, so overrides can never miss on a normalization mismatch.
package quantity

import (
	"fmt"
	"strings"

	"github.com/badno/shopbuild/pkg/models"
)

// Key identifies one quantity-input slot.
type Key struct {
	Size   string
	Colour string
	Title  string
}

// NewKey builds the canonical key for a (size, colour, title) tuple.
func NewKey(size, colour, title string) Key {
	return Key{
		Size:   strings.TrimSpace(size),
		Colour: strings.TrimSpace(colour),
		Title:  strings.TrimSpace(title),
	}
}

// ForVariant returns the key of a variant row.
func ForVariant(v *models.Variant) Key {
	return NewKey(v.Size, v.Colour, v.Title())
}

// String renders the key in its "size|colour|title" form, used for session
// persistence and CLI input.
func (k Key) String() string {
	return k.Size + "|" + k.Colour + "|" + k.Title
}

// ParseKey parses the "size|colour|title" form. Title may itself contain
// pipes; only the first two separators split.
func ParseKey(s string) (Key, error) {
	parts := strings.SplitN(s, "|", 3)
	if len(parts) != 3 {
		return Key{}, fmt.Errorf("invalid variant key %q (want \"size|colour|title\")", s)
	}
	return NewKey(parts[0], parts[1], parts[2]), nil
}

// Resolver resolves quantities in precedence order: bulk value when bulk
// mode is enabled, else an explicit per-key override, else the default.
type Resolver struct {
	def         int
	bulk        int
	bulkEnabled bool
	overrides   map[Key]int
}

// NewResolver creates a resolver with the given default quantity. Negative
// defaults clamp to zero.
func NewResolver(defaultQty int) *Resolver {
	if defaultQty < 0 {
		defaultQty = 0
	}
	return &Resolver{def: defaultQty, overrides: make(map[Key]int)}
}

// EnableBulk switches every resolution to the one bulk value, superseding
// explicit overrides.
func (r *Resolver) EnableBulk(qty int) {
	if qty < 0 {
		qty = 0
	}
	r.bulk = qty
	r.bulkEnabled = true
}

// SetOverride records an explicit quantity for one key.
func (r *Resolver) SetOverride(k Key, qty int) {
	if qty < 0 {
		qty = 0
	}
	r.overrides[k] = qty
}

// Resolve returns the quantity for a key.
func (r *Resolver) Resolve(k Key) int {
	if r.bulkEnabled {
		return r.bulk
	}
	if qty, ok := r.overrides[k]; ok {
		return qty
	}
	return r.def
}

// Overrides returns the number of explicit overrides recorded.
func (r *Resolver) Overrides() int {
	return len(r.overrides)
}
