package secard

import (
	"strings"

	"github.com/alnah/go-secard/internal/markup"
)

// Tooltip is the name and description shown for a card object on a virtual
// tabletop.
type Tooltip struct {
	Name        string
	Description string
}

// Tooltip returns the tabletop label of card: its name with the experience
// level and the taboo label appended when they apply, and its traits as
// plain text.
func (r *Renderer) Tooltip(card Record) Tooltip {
	name := r.FrontName(card)
	if xp := XP(card); xp != "0" && xp != none {
		name += " (" + xp + ")"
	}
	if strings.HasSuffix(card.Code(), "-t") {
		name += " (" + r.TabooLabel() + ")"
	}
	return Tooltip{
		Name:        name,
		Description: markup.StripTags(r.Traits(card)),
	}
}
