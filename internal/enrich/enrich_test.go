package enrich

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/badno/shopbuild/pkg/models"
)

type fakeClient struct {
	calls      int
	lastPrompt string
	response   string
	err        error
}

func (f *fakeClient) Name() string { return "fake" }

func (f *fakeClient) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	return f.response, f.err
}

func TestTemplateModeNeverCalls(t *testing.T) {
	client := &fakeClient{response: "should not be used"}
	e := New(ModeTemplate, client, nil)

	row := models.SourceRow{"title": "Tee", "product category": "Apparel", "description": "A nice tee."}
	got := e.Enrich(context.Background(), row)

	if client.calls != 0 {
		t.Fatalf("template mode called the collaborator %d times", client.calls)
	}
	if got.Description != "Tee - Apparel" {
		t.Errorf("description = %q, want %q", got.Description, "Tee - Apparel")
	}
	if got.Tags != "" {
		t.Errorf("tags = %q, want empty", got.Tags)
	}
}

func TestSimpleModeFirstSentenceAndTags(t *testing.T) {
	client := &fakeClient{response: "soft,cotton,casual,summer,tee"}
	e := New(ModeSimple, client, nil)

	row := models.SourceRow{"description": "A soft cotton tee. Very comfortable for summer."}
	got := e.Enrich(context.Background(), row)

	if client.calls != 1 {
		t.Fatalf("collaborator called %d times, want 1", client.calls)
	}
	if got.Description != "A soft cotton tee." {
		t.Errorf("description = %q, want first sentence", got.Description)
	}
	if got.Tags != "soft,cotton,casual,summer,tee" {
		t.Errorf("tags = %q", got.Tags)
	}
	if !strings.Contains(client.lastPrompt, "A soft cotton tee.") {
		t.Errorf("prompt does not contain the first sentence: %q", client.lastPrompt)
	}
}

func TestSimpleModeNoPeriod(t *testing.T) {
	client := &fakeClient{response: "tags"}
	e := New(ModeSimple, client, nil)

	got := e.Enrich(context.Background(), models.SourceRow{"description": "No terminator here"})
	if got.Description != "No terminator here" {
		t.Errorf("description = %q, want whole text", got.Description)
	}
}

func TestFullModeTwoLineResponse(t *testing.T) {
	client := &fakeClient{response: "A rewritten description.\ntag1,tag2,tag3,tag4,tag5"}
	e := New(ModeFull, client, nil)

	got := e.Enrich(context.Background(), models.SourceRow{"description": "Original text."})

	if client.calls != 1 {
		t.Fatalf("collaborator called %d times, want 1", client.calls)
	}
	if got.Description != "A rewritten description." {
		t.Errorf("description = %q", got.Description)
	}
	if got.Tags != "tag1,tag2,tag3,tag4,tag5" {
		t.Errorf("tags = %q", got.Tags)
	}
}

func TestFullModeSingleLineResponse(t *testing.T) {
	client := &fakeClient{response: "Only a description line"}
	e := New(ModeFull, client, nil)

	got := e.Enrich(context.Background(), models.SourceRow{"description": "Original."})
	if got.Description != "Only a description line" {
		t.Errorf("description = %q", got.Description)
	}
	if got.Tags != "" {
		t.Errorf("tags = %q, want empty on single-line response", got.Tags)
	}
}

func TestFullModeDegradesOnError(t *testing.T) {
	client := &fakeClient{err: errors.New("boom")}
	e := New(ModeFull, client, nil)

	got := e.Enrich(context.Background(), models.SourceRow{"title": "Tee", "description": "Original text."})

	if got.Description != "Original text." {
		t.Errorf("description = %q, want original on failure", got.Description)
	}
	if got.Tags != "" {
		t.Errorf("tags = %q, want empty on failure", got.Tags)
	}
	if got.Warning == "" {
		t.Error("expected a warning on degraded enrichment")
	}
}

func TestSimpleModeDegradesOnError(t *testing.T) {
	client := &fakeClient{err: errors.New("boom")}
	e := New(ModeSimple, client, nil)

	got := e.Enrich(context.Background(), models.SourceRow{"description": "First. Second."})
	if got.Description != "First." {
		t.Errorf("description = %q, want first sentence even on tag failure", got.Description)
	}
	if got.Warning == "" {
		t.Error("expected a warning on degraded enrichment")
	}
}

func TestParseMode(t *testing.T) {
	for _, valid := range []string{"template", "Simple", " FULL "} {
		if _, err := ParseMode(valid); err != nil {
			t.Errorf("ParseMode(%q) unexpected error: %v", valid, err)
		}
	}
	if _, err := ParseMode("fancy"); err == nil {
		t.Error("ParseMode(\"fancy\") expected error")
	}
}
