// Package segment splits card text into header, flavor and body paragraphs.
//
// Paragraph boundaries come from two sources: explicit <hr> separators and
// bold headers. A bold node starts a new paragraph when its text ends with a
// colon, or when the text right after it begins on a new line. Bold cross
// references such as "(→R1)" never start a paragraph unless they end with a
// colon.
//
// Each paragraph then peels off a leading header and a leading flavor block
// (<blockquote> or <i>). Whatever remains is the body.
//
// Segmentation never fails. Input the HTML parser cannot make sense of ends
// up in the body.
package segment

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Paragraph is one segment of card text. All fields are trimmed.
type Paragraph struct {
	Header string
	Flavor string
	Body   string
}

const hrTag = "<hr>"

var (
	hrPattern     = regexp.MustCompile(`(?i)<hr\s*/?>`)
	boldHRPattern = regexp.MustCompile(`<b>\s*<hr>`)

	headerTags = strings.NewReplacer("<b>", "", "</b>", "")
	flavorTags = strings.NewReplacer("<blockquote>", "", "</blockquote>", "", "<i>", "", "</i>", "")
)

// Paragraphs segments body. A non-empty explicitFlavor is merged into the
// leading flavor block of body, or inserted as a new one before the first node.
func Paragraphs(body, explicitFlavor string) []Paragraph {
	text := body
	if explicitFlavor != "" {
		text = withFlavor(body, explicitFlavor)
	}

	text = hrPattern.ReplaceAllString(text, hrTag)
	// ArkhamDB sometimes opens the bold header before the rule.
	text = boldHRPattern.ReplaceAllString(text, hrTag+"<b>")

	var paragraphs []Paragraph
	for _, chunk := range strings.Split(text, hrTag) {
		for _, part := range splitHeaders(strings.TrimSpace(chunk)) {
			paragraphs = append(paragraphs, extract(part))
		}
	}
	return paragraphs
}

// At returns the i-th paragraph, or the zero Paragraph when out of range.
func At(paragraphs []Paragraph, i int) Paragraph {
	if i < 0 || i >= len(paragraphs) {
		return Paragraph{}
	}
	return paragraphs[i]
}

// isHeader reports whether n starts a new headed paragraph.
func isHeader(n *html.Node) bool {
	if !isElement(n, atom.B) {
		return false
	}

	text := strings.TrimSpace(textContent(n))
	if strings.HasSuffix(text, ":") || strings.HasSuffix(text, "：") {
		return true
	}
	if strings.HasPrefix(text, "(→") {
		return false
	}
	next := n.NextSibling
	return next != nil && strings.HasPrefix(textContent(next), "\n")
}

// isFlavor reports whether n is a flavor block.
func isFlavor(n *html.Node) bool {
	return isElement(n, atom.Blockquote) || isElement(n, atom.I)
}

// withFlavor places flavor at the start of body and returns the serialized result.
func withFlavor(body, flavor string) string {
	block := "<blockquote><i>" + flavor + "</i></blockquote>"

	root, err := parseFragment(body)
	if err != nil {
		return block + "\n" + body
	}

	first := firstContent(root)
	switch {
	case first == nil:
		return block
	case isFlavor(first):
		err = parseInto(first, first.FirstChild, flavor+"\n")
	default:
		err = parseInto(root, first, block+"\n")
	}
	if err != nil {
		return block + "\n" + body
	}
	return renderChildren(root)
}

// firstContent returns the first child of root that is not blank text.
func firstContent(root *html.Node) *html.Node {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if !isBlank(c) {
			return c
		}
	}
	return nil
}

// splitHeaders cuts chunk before every header node after the first node.
func splitHeaders(chunk string) []string {
	if chunk == "" {
		return nil
	}

	root, err := parseFragment(chunk)
	if err != nil {
		return []string{chunk}
	}

	var parts []string
	appendPart := func(from, to *html.Node) {
		if part := strings.TrimSpace(renderNodes(from, to)); part != "" {
			parts = append(parts, part)
		}
	}

	start := root.FirstChild
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c != start && isHeader(c) {
			appendPart(start, c)
			start = c
		}
	}
	appendPart(start, nil)
	return parts
}

// extract peels the header and flavor off the front of one paragraph.
func extract(part string) Paragraph {
	root, err := parseFragment(part)
	if err != nil {
		return Paragraph{Body: ampUnescaper.Replace(part)}
	}

	var p Paragraph

	stripLeading(root)
	if first := root.FirstChild; first != nil && isHeader(first) {
		p.Header = strings.TrimSpace(ampUnescaper.Replace(headerTags.Replace(render(first))))
		root.RemoveChild(first)
	}

	stripLeading(root)
	if first := root.FirstChild; first != nil && isFlavor(first) {
		p.Flavor = strings.TrimSpace(ampUnescaper.Replace(flavorTags.Replace(render(first))))
		root.RemoveChild(first)
	}

	p.Body = strings.TrimSpace(ampUnescaper.Replace(renderChildren(root)))
	return p
}

// stripLeading removes whitespace-only text nodes from the start of root.
func stripLeading(root *html.Node) {
	for c := root.FirstChild; c != nil && isBlank(c); c = root.FirstChild {
		root.RemoveChild(c)
	}
}
