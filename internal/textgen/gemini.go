package textgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	GeminiClientName = "gemini"

	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 30 * time.Second
)

// GeminiConfig holds Gemini API client configuration.
type GeminiConfig struct {
	APIKey    string // API key; resolved from APIKeyEnv when empty
	APIKeyEnv string // Environment variable name for the API key
	Model     string // Model identifier (e.g. "gemini-2.5-flash")
	BaseURL   string // API base URL, overridable for tests
	Timeout   time.Duration
}

// Gemini calls the Google Generative Language REST API.
type Gemini struct {
	config GeminiConfig
	client *http.Client
}

// NewGemini creates a Gemini client. Returns an error when no API key can
// be resolved, so callers can fall back to the disabled client up front.
func NewGemini(cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" && cfg.APIKeyEnv != "" {
		cfg.APIKey = os.Getenv(cfg.APIKeyEnv)
	}
	if cfg.APIKey == "" {
		return nil, ErrDisabled
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	return &Gemini{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (g *Gemini) Name() string { return GeminiClientName }

// Generate sends the prompt to the generateContent endpoint and returns the
// first candidate's text.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	payload := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.config.BaseURL, g.config.Model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	req.Header.Set("x-goog-api-key", g.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from generation API")
	}

	var sb strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String()), nil
}

// Gemini API types
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}
