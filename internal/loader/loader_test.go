package loader

import (
	"strings"
	"testing"
)

func TestLoadCSV(t *testing.T) {
	data := "Title,Description,Size,Colour\nTee,A tee,\"S,M\",Red\nShirt,A shirt,L,Blue\n"

	table, err := LoadCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}

	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}
	if !table.HasColumn("title") || !table.HasColumn("colour") {
		t.Errorf("headers not canonicalized: %v", table.Headers)
	}
	if got := table.Rows[0].Get("size"); got != "S,M" {
		t.Errorf("quoted field = %q, want S,M", got)
	}
}

func TestLoadCSVStripsBOM(t *testing.T) {
	data := "\ufeffTitle,Size\nTee,S\n"

	table, err := LoadCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if !table.HasColumn("title") {
		t.Errorf("BOM not stripped from first header: %v", table.Headers)
	}
}

func TestLoadCSVSkipsEmptyRows(t *testing.T) {
	data := "title,size\nTee,S\n,\nShirt,M\n"

	table, err := LoadCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2 (empty row skipped)", len(table.Rows))
	}
}

func TestLoadCSVShortRecords(t *testing.T) {
	data := "title,size,colour\nTee,S\n"

	table, err := LoadCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if got := table.Rows[0].Get("colour"); got != "" {
		t.Errorf("missing trailing field = %q, want empty", got)
	}
}

func TestLoadCSVNoHeader(t *testing.T) {
	if _, err := LoadCSV(strings.NewReader("")); err == nil {
		t.Error("expected error for empty file")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile("does-not-exist.csv"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadCSVHeaderOnly(t *testing.T) {
	table, err := LoadCSV(strings.NewReader("title,size\n"))
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if len(table.Rows) != 0 {
		t.Fatalf("got %d rows, want 0", len(table.Rows))
	}
}
