// Package proof renders a human-readable proof sheet of rendered cards.
//
// The sheet is built as Markdown (one section per card with a field table and
// the raw record in a fenced json block) and converted to a standalone HTML
// page with goldmark. Field values keep their Strange Eons markup visible so
// reviewers can check the exact output.
package proof

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates the Markdown to HTML step failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

const highlightStyle = "github"

// pageTemplate wraps goldmark's fragment output. Arguments: title, css, body.
const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 2px 8px; text-align: left; vertical-align: top; }
td:first-child { font-family: monospace; white-space: nowrap; }
%s
</style>
</head>
<body>
%s
</body>
</html>`

// markdownEscaper keeps values literal inside a table cell.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"<", "&lt;",
	">", "&gt;",
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"\n", " ⏎ ",
)

// Card is one rendered sheet to show on the proof.
type Card struct {
	Title  string
	Sheet  int
	Fields map[string]string
	Raw    []byte
}

// Builder converts cards into a proof page. Safe for concurrent use.
type Builder struct {
	md  goldmark.Markdown
	css string
}

// NewBuilder creates a Builder with GFM tables and class-based highlighting.
func NewBuilder() (*Builder, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(highlightStyle),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)

	var css bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&css, styles.Get(highlightStyle)); err != nil {
		return nil, fmt.Errorf("%w: highlight css: %v", ErrHTMLConversion, err)
	}

	return &Builder{md: md, css: css.String()}, nil
}

// Markdown returns the proof sheet source.
func (b *Builder) Markdown(title string, cards []Card) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", markdownEscaper.Replace(title))

	for _, c := range cards {
		fmt.Fprintf(&sb, "## %s (sheet %d)\n\n", markdownEscaper.Replace(c.Title), c.Sheet)
		sb.WriteString("| Field | Value |\n|---|---|\n")

		keys := make([]string, 0, len(c.Fields))
		for k := range c.Fields {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "| %s | %s |\n", markdownEscaper.Replace(k), markdownEscaper.Replace(c.Fields[k]))
		}

		if len(c.Raw) > 0 {
			sb.WriteString("\n```json\n")
			sb.Write(bytes.TrimSpace(c.Raw))
			sb.WriteString("\n```\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// HTML returns the proof sheet as a standalone HTML page.
// Goldmark has no context support, so conversion runs in a goroutine and
// the call returns early when ctx is done.
func (b *Builder) HTML(ctx context.Context, title string, cards []Card) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	source := b.Markdown(title, cards)
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := b.md.Convert([]byte(source), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: fmt.Sprintf(pageTemplate, htmlEscaper.Replace(title), b.css, buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
