// Package handle derives Shopify product handles. All variant rows of one
// product must share a handle, and distinct products need distinct handles
// even when their titles collide after slugging, so every handle carries a
// numeric serial suffix.
package handle

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	nonWordChars   = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// Slugify converts a product title to its URL-safe handle base: characters
// outside [A-Za-z0-9_ -] removed, whitespace runs collapsed to a single
// hyphen, lower-cased.
func Slugify(title string) string {
	s := nonWordChars.ReplaceAllString(strings.TrimSpace(title), "")
	s = whitespaceRuns.ReplaceAllString(s, "-")
	return strings.ToLower(s)
}

// Assigner hands out handles in first-seen order. A repeated slug receives
// the next serial for that slug, so two products with identical titles still
// get distinct handles.
type Assigner struct {
	counts map[string]int
}

// NewAssigner creates an empty assigner.
func NewAssigner() *Assigner {
	return &Assigner{counts: make(map[string]int)}
}

// Assign returns the handle and serial for the next product with the given
// title. Serials start at 1 per slug and are zero-padded to two digits;
// counts past 99 widen the field rather than wrap.
func (a *Assigner) Assign(title string) (handle, serial string) {
	slug := Slugify(title)
	a.counts[slug]++
	serial = fmt.Sprintf("%02d", a.counts[slug])
	return slug + "-" + serial, serial
}
