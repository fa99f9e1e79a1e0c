package markup

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// iconTag maps one ArkhamDB bracket tag to its Strange Eons code.
type iconTag struct {
	pattern *regexp.Regexp
	code    string
}

func icon(tag, code string) iconTag {
	return iconTag{
		pattern: regexp.MustCompile(`(?i)\[` + regexp.QuoteMeta(tag) + `\]`),
		code:    code,
	}
}

// iconTags is the full icon table. Patterns are disjoint, so order is irrelevant.
var iconTags = []iconTag{
	icon("action", "<act>"),
	icon("reaction", "<rea>"),
	icon("free", "<fre>"),
	icon("fast", "<fre>"),
	icon("willpower", "<wil>"),
	icon("intellect", "<int>"),
	icon("combat", "<com>"),
	icon("agility", "<agi>"),
	icon("wild", "<wild>"),
	icon("guardian", "<gua>"),
	icon("seeker", "<see>"),
	icon("rogue", "<rog>"),
	icon("mystic", "<mys>"),
	icon("survivor", "<sur>"),
	icon("skull", "<sku>"),
	icon("cultist", "<cul>"),
	icon("tablet", "<tab>"),
	icon("elder_thing", "<mon>"),
	icon("elder_sign", "<eld>"),
	icon("auto_fail", "<ten>"),
	icon("bless", "<ble>"),
	icon("curse", "<cur>"),
	icon("per_investigator", "<per>"),
	icon("frost", "<fro>"),
	icon("seal_a", "<seal1>"),
	icon("seal_b", "<seal2>"),
	icon("seal_c", "<seal3>"),
	icon("seal_d", "<seal4>"),
	icon("seal_e", "<seal5>"),
}

// Precompiled regex patterns for rule normalization.
var (
	// [[Trait]] sugar. 0.90 * 0.33 * 3.37 ~= 1.00
	traitPattern     = regexp.MustCompile(`\[\[([^\]]*)\]\]`)
	traitReplacement = `<size 90%><t>${1}</t><size 33%> <size 337%>`

	// Italic errata and FAQ notes appended by ArkhamDB.
	errataPattern = regexp.MustCompile(`<i>\((?i:errat(?:um|a))[^<]*</i>`)
	faqPattern    = regexp.MustCompile(`<i>\(FAQ[^<]*</i>`)

	// Bold action keywords. 0.95 * 1.05 ~= 1.00
	boldPattern     = regexp.MustCompile(`<b>([^<]*)</b>`)
	boldReplacement = `<size 95%><hdr>${1}</hdr><size 105%>`

	bulletPattern = regexp.MustCompile(`^[\-—] `)
)

const bulletCode = "<bul> "

// Rewrite converts icon tags and [[Trait]] spans into Strange Eons codes.
// Text without bracket tags passes through unchanged.
func Rewrite(text string) string {
	if !strings.Contains(text, "[") {
		return text
	}
	for _, tag := range iconTags {
		text = tag.pattern.ReplaceAllLiteralString(text, tag.code)
	}
	return traitPattern.ReplaceAllString(text, traitReplacement)
}

// NormalizeRule rewrites rule text for a Strange Eons rules box.
// A non-blank result always ends with exactly one space; the layout engine
// does not wrap scenario text without it. Blank input yields "".
func NormalizeRule(text string) string {
	text = Rewrite(text)
	text = errataPattern.ReplaceAllString(text, "")
	text = faqPattern.ReplaceAllString(text, "")
	text = boldPattern.ReplaceAllString(text, boldReplacement)
	text = joinParagraphs(text)
	text = markBullets(text)

	if strings.TrimSpace(text) == "" {
		return ""
	}
	return text + " "
}

// Header wraps a deck-line header in the header size pair.
func Header(text string) string {
	return "<size 95%>" + text + "<size 105%>"
}

// StripTags removes all markup and returns the plain text.
// Used for tooltips where the template codes would show up literally.
func StripTags(text string) string {
	if !strings.Contains(text, "<") {
		return collapseSpace(text)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return collapseSpace(text)
	}
	return collapseSpace(doc.Text())
}

func collapseSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// joinParagraphs turns </p><p> into newlines and drops leftover <p> tags.
func joinParagraphs(text string) string {
	text = strings.ReplaceAll(text, "</p><p>", "\n")
	text = strings.ReplaceAll(text, "<p>", "")
	return strings.ReplaceAll(text, "</p>", "")
}

// markBullets trims each line and replaces a leading "- " or "— " with the bullet icon.
func markBullets(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = bulletPattern.ReplaceAllLiteralString(strings.TrimSpace(line), bulletCode)
	}
	return strings.Join(lines, "\n")
}
