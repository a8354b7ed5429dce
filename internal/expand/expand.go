// Package expand turns product rows into one row per size×colour variant.
package expand

import (
	"strings"

	"github.com/badno/shopbuild/pkg/models"
)

// Tokens splits a comma-separated option list into trimmed, non-empty
// tokens. Whitespace-only tokens are dropped.
func Tokens(value string) []string {
	var tokens []string
	for _, t := range strings.Split(value, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// Row produces the Cartesian product of a source row's size and colour
// lists. A row with no listed sizes or colours still yields variants with an
// empty token in that dimension rather than being dropped.
func Row(src models.SourceRow) []*models.Variant {
	sizes := Tokens(src.Get(models.ColSize))
	colours := Tokens(src.Get(models.ColColour))

	if len(sizes) == 0 {
		sizes = []string{""}
	}
	if len(colours) == 0 {
		colours = []string{""}
	}

	variants := make([]*models.Variant, 0, len(sizes)*len(colours))
	for _, size := range sizes {
		for _, colour := range colours {
			variants = append(variants, &models.Variant{
				Source: src.Clone(),
				Size:   size,
				Colour: colour,
			})
		}
	}
	return variants
}

// Count returns the number of variants Row would produce without building
// them.
func Count(src models.SourceRow) int {
	s := len(Tokens(src.Get(models.ColSize)))
	c := len(Tokens(src.Get(models.ColColour)))
	if s == 0 {
		s = 1
	}
	if c == 0 {
		c = 1
	}
	return s * c
}
