package proof

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func sampleCards() []Card {
	return []Card{
		{
			Title: "01001 Roland Banks",
			Sheet: 0,
			Fields: map[string]string{
				"name":   "Roland Banks",
				"$Rules": "<act> Draw | discard\nthen gain ",
			},
			Raw: []byte(`{"code": "01001", "name": "Roland Banks"}`),
		},
	}
}

// ---------------------------------------------------------------------------
// TestMarkdown - Proof source layout
// ---------------------------------------------------------------------------

func TestBuilder_Markdown(t *testing.T) {
	t.Parallel()

	b, err := NewBuilder()
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}

	md := b.Markdown("Proof", sampleCards())

	wants := []string{
		"# Proof\n",
		"## 01001 Roland Banks (sheet 0)",
		"| Field | Value |",
		`| $Rules | &lt;act&gt; Draw \| discard ⏎ then gain  |`,
		"| name | Roland Banks |",
		"```json\n{\"code\": \"01001\"",
	}
	for _, want := range wants {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown() missing %q\n%s", want, md)
		}
	}

	// Fields are sorted: "$Rules" sorts before "name".
	if strings.Index(md, "$Rules") > strings.Index(md, "| name |") {
		t.Error("fields not sorted")
	}
}

// ---------------------------------------------------------------------------
// TestHTML - Goldmark conversion
// ---------------------------------------------------------------------------

func TestBuilder_HTML(t *testing.T) {
	t.Parallel()

	b, err := NewBuilder()
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}

	page, err := b.HTML(context.Background(), "Proof <de>", sampleCards())
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}

	wants := []string{
		"<!DOCTYPE html>",
		"<title>Proof &lt;de&gt;</title>",
		"<table>",
		"&lt;act&gt;",
		"chroma",
	}
	for _, want := range wants {
		if !strings.Contains(page, want) {
			t.Errorf("HTML() missing %q", want)
		}
	}
	if strings.Contains(page, "<act>") {
		t.Error("SE markup must be escaped, not passed through as HTML")
	}
}

func TestBuilder_HTML_Cancelled(t *testing.T) {
	t.Parallel()

	b, err := NewBuilder()
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := b.HTML(ctx, "Proof", sampleCards()); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
