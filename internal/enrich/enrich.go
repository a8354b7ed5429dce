// Package enrich computes per-product descriptions and tags, optionally via
// the text-generation collaborator. Enrichment runs once per source row
// before variant expansion, never per variant, so the number of external
// calls is bounded by the number of products.
package enrich

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/badno/shopbuild/internal/textgen"
	"github.com/badno/shopbuild/pkg/models"
)

// Mode selects the enrichment strategy.
type Mode string

const (
	// ModeTemplate builds "{title} - {category}" with no external call.
	ModeTemplate Mode = "template"
	// ModeSimple keeps the first sentence and asks the collaborator for tags.
	ModeSimple Mode = "simple"
	// ModeFull asks the collaborator for a rewritten description plus tags.
	ModeFull Mode = "full"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeTemplate:
		return ModeTemplate, nil
	case ModeSimple:
		return ModeSimple, nil
	case ModeFull:
		return ModeFull, nil
	}
	return "", fmt.Errorf("unknown enrichment mode: %q (want template, simple or full)", s)
}

// Result is the enrichment outcome for one source row. Warning carries a
// non-fatal degradation note when the external call failed.
type Result struct {
	Description string
	Tags        string
	Warning     string
}

// Enricher applies one enrichment mode to source rows.
type Enricher struct {
	mode   Mode
	client textgen.Client
	log    logrus.FieldLogger
}

// New creates an enricher. The client may be textgen.Disabled; simple and
// full modes then degrade per row instead of aborting the batch.
func New(mode Mode, client textgen.Client, log logrus.FieldLogger) *Enricher {
	if log == nil {
		logger := logrus.New()
		logger.SetLevel(logrus.WarnLevel)
		log = logger
	}
	return &Enricher{mode: mode, client: client, log: log}
}

// Enrich computes the description and tags for one source row. It never
// fails: a collaborator error falls back to the original description with
// empty tags and is surfaced via Result.Warning.
func (e *Enricher) Enrich(ctx context.Context, row models.SourceRow) Result {
	original := row.Get(models.ColDescription)

	switch e.mode {
	case ModeSimple:
		sentence := firstSentence(original)
		tags, err := e.generateTags(ctx, sentence)
		if err != nil {
			return e.degrade(row, sentence, err)
		}
		return Result{Description: sentence, Tags: tags}

	case ModeFull:
		desc, tags, err := e.rewriteAndTag(ctx, original)
		if err != nil {
			return e.degrade(row, original, err)
		}
		return Result{Description: desc, Tags: tags}

	default: // ModeTemplate
		desc := fmt.Sprintf("%s - %s", row.Get(models.ColTitle), row.Get(models.ColCategory))
		return Result{Description: desc}
	}
}

// degrade returns the fallback result for a failed external call and logs
// the warning.
func (e *Enricher) degrade(row models.SourceRow, desc string, err error) Result {
	warning := fmt.Sprintf("enrichment failed for %q: %v", row.Get(models.ColTitle), err)
	e.log.WithField("title", row.Get(models.ColTitle)).Warn(warning)
	return Result{Description: desc, Warning: warning}
}

// rewriteAndTag asks the collaborator for a two-line response: rewritten
// description, then five comma-separated tags. A single-line response keeps
// the description and defaults tags to empty.
func (e *Enricher) rewriteAndTag(ctx context.Context, text string) (string, string, error) {
	prompt := "You are a top-tier Shopify copywriter.\n" +
		"1) Rewrite this product description to be clear, engaging, and on-brand.\n" +
		"2) Then output on the next line exactly five comma-separated tags.\n\n" +
		"Original description:\n\"\"\"\n" + text + "\n\"\"\"\n\n" +
		"Respond with exactly two lines:\n" +
		"- Line 1: your rewritten description\n" +
		"- Line 2: tag1,tag2,tag3,tag4,tag5"

	resp, err := e.client.Generate(ctx, prompt)
	if err != nil {
		return "", "", err
	}

	parts := strings.SplitN(strings.TrimSpace(resp), "\n", 2)
	desc := strings.TrimSpace(parts[0])
	tags := ""
	if len(parts) > 1 {
		tags = strings.TrimSpace(parts[1])
	}
	return desc, tags, nil
}

// generateTags asks the collaborator for a single line of five
// comma-separated tags.
func (e *Enricher) generateTags(ctx context.Context, text string) (string, error) {
	prompt := "You are an expert Shopify copywriter.\n" +
		"Suggest exactly five comma-separated Shopify tags for this product description:\n\n" +
		"\"\"\"\n" + text + "\n\"\"\"\n\n" +
		"Respond with a single line:\n" +
		"tag1,tag2,tag3,tag4,tag5"

	resp, err := e.client.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp), nil
}

// firstSentence returns the text up to and including the first period, or
// the whole trimmed text when there is none.
func firstSentence(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.Index(text, "."); i >= 0 {
		return strings.TrimSpace(text[:i+1])
	}
	return text
}
