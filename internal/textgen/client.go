// Package textgen wraps the external text-generation service behind a small
// client interface so the pipeline can run with generation disabled.
package textgen

import (
	"context"
	"errors"
)

// ErrDisabled is returned by the disabled client when no credential is
// configured.
var ErrDisabled = errors.New("text generation disabled: no API key configured")

// Client generates a completion for a prompt. Implementations must be safe
// for sequential reuse; the pipeline calls Generate once per product row.
type Client interface {
	// Name returns the client's identifier for logging.
	Name() string

	// Generate sends a prompt and returns the raw response text.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Disabled is a no-op client used when generation is not configured. Every
// call fails with ErrDisabled, which callers degrade from gracefully.
type Disabled struct{}

func (Disabled) Name() string { return "disabled" }

func (Disabled) Generate(ctx context.Context, prompt string) (string, error) {
	return "", ErrDisabled
}
