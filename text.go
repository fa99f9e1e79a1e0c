package secard

import (
	"strings"

	"github.com/alnah/go-secard/internal/lines"
	"github.com/alnah/go-secard/internal/markup"
	"github.com/alnah/go-secard/internal/segment"
)

// ChaosToken is one of the four scenario chaos tokens, ranked in
// declaration order.
type ChaosToken = lines.Token

// Chaos tokens with their own reference lines.
const (
	Skull      = lines.Skull
	Cultist    = lines.Cultist
	Tablet     = lines.Tablet
	ElderThing = lines.ElderThing
)

// textKeys names the rule and flavor fields of one face.
func textKeys(side Sheet) (text, flavor string) {
	if side == Back {
		return "back_text", "back_flavor"
	}
	return "text", "flavor"
}

// FrontName returns the card title.
func (r *Renderer) FrontName(card Record) string {
	return r.localize(KindName, card.String("name", ""))
}

// BackName returns the title of the back. Scenario and investigator backs
// repeat the front title; story backs fall back to it.
func (r *Renderer) BackName(card Record) string {
	var name string
	switch card.TypeCode() {
	case "scenario", "investigator":
		name = card.String("name", "")
	case "story":
		name = card.String("back_name", card.String("name", ""))
	default:
		name = card.String("back_name", "")
	}
	return r.localize(KindName, name)
}

// Subname returns the subtitle.
func (r *Renderer) Subname(card Record) string {
	return r.localize(KindSubname, card.String("subname", ""))
}

// Traits returns the trait line with each trait closed by a period:
// "Item. Weapon. Firearm."
func (r *Renderer) Traits(card Record) string {
	var traits []string
	for trait := range strings.SplitSeq(card.String("traits", ""), ".") {
		if trait = strings.TrimSpace(trait); trait != "" {
			traits = append(traits, trait+".")
		}
	}
	return r.localize(KindTraits, strings.Join(traits, " "))
}

// Rule normalizes rule text into Strange Eons markup.
func (r *Renderer) Rule(text string) string {
	return r.localize(KindRule, markup.NormalizeRule(text))
}

// FrontRule returns the normalized front text.
func (r *Renderer) FrontRule(card Record) string {
	return r.Rule(card.String("text", ""))
}

// BackRule returns the normalized back text.
func (r *Renderer) BackRule(card Record) string {
	return r.Rule(card.String("back_text", ""))
}

// Flavor rewrites icons in flavor text.
func (r *Renderer) Flavor(text string) string {
	return r.localize(KindFlavor, markup.Rewrite(text))
}

// FrontFlavor returns the front flavor text.
func (r *Renderer) FrontFlavor(card Record) string {
	return r.Flavor(card.String("flavor", ""))
}

// BackFlavor returns the back flavor text.
func (r *Renderer) BackFlavor(card Record) string {
	return r.Flavor(card.String("back_flavor", ""))
}

// Header rewrites icons in header text.
func (r *Renderer) Header(text string) string {
	return r.localize(KindHeader, markup.Rewrite(text))
}

// BackHeader returns the first line of the back text as a scenario header,
// with the trailing space Strange Eons needs to wrap lines. Cards without
// back text have no header.
func (r *Renderer) BackHeader(card Record) string {
	raw := card.String("back_text", "")
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return r.Header(lines.FirstLine(raw) + " ")
}

// Paragraph returns the i-th (0-based) story paragraph of a face as
// header, flavor and rule. Missing paragraphs are empty.
func (r *Renderer) Paragraph(card Record, side Sheet, i int) (header, flavor, rule string) {
	textKey, flavorKey := textKeys(side)
	ps := segment.Paragraphs(card.String(textKey, ""), card.String(flavorKey, ""))
	p := segment.At(ps, i)
	return r.Header(p.Header), r.Flavor(p.Flavor), r.Rule(p.Body)
}

// Chaos returns the effect of token on a scenario reference face and the
// highest-ranked token sharing its line ("None" when alone).
func (r *Renderer) Chaos(card Record, side Sheet, token ChaosToken) (rule, merge string) {
	textKey, _ := textKeys(side)
	line := lines.Chaos(card.String(textKey, ""), token)
	return r.Rule(line.Text), line.Merge
}

// DeckHeader returns the header of the i-th back text line of a deck card,
// the part before the first colon.
func (r *Renderer) DeckHeader(card Record, i int) string {
	header, _ := lines.DeckLine(card.String("back_text", ""), i)
	return r.Header(markup.Header(header))
}

// DeckRule returns the rule of the i-th back text line of a deck card.
func (r *Renderer) DeckRule(card Record, i int) string {
	_, rule := lines.DeckLine(card.String("back_text", ""), i)
	return r.Rule(rule)
}

// Tracker returns the tracker label of cards with a counter box, or "".
func (r *Renderer) Tracker(card Record) string {
	return r.localize(KindTracker, r.tables.Tracker(card.Code()))
}

// TabooLabel returns the label appended to taboo card names.
func (r *Renderer) TabooLabel() string {
	return r.localize(KindTaboo, "Taboo")
}
