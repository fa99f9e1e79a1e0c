package secard

import (
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/alnah/go-secard/internal/gamedata"
)

// Number of indexed slots Strange Eons components expose.
const (
	FactionSlots    = 3
	SkillSlots      = 6
	EquipmentSlots  = 2
	ParagraphSlots  = 8
	DeckLineSlots   = 6
	ConnectionSlots = 6
)

var factionKeys = [FactionSlots]string{"faction_code", "faction2_code", "faction3_code"}

// Subtype returns the Strange Eons subtype (Weakness, BasicWeakness), or
// "None" for cards without one.
func (r *Renderer) Subtype(card Record) (string, error) {
	code := card.String("subtype_code", "")
	if code == "" {
		return none, nil
	}
	return r.tables.Subtype(code)
}

// Faction returns the faction for slot i (0-2). A subtype replaces the
// first faction. Parallel cards get a "Parallel" prefix on the faces they
// replace: "-p" on both, "-pf" on the front, "-pb" on the back.
func (r *Renderer) Faction(card Record, i int, sheet Sheet) (string, error) {
	if i < 0 || i >= FactionSlots {
		return none, nil
	}
	if i == 0 {
		subtype, err := r.Subtype(card)
		if err != nil {
			return "", err
		}
		if subtype != none {
			return subtype, nil
		}
	}

	code := card.String(factionKeys[i], "")
	if code == "" {
		return none, nil
	}
	faction, err := r.tables.Faction(code)
	if err != nil {
		return "", err
	}
	if isParallel(card.Code(), sheet) {
		faction = "Parallel" + faction
	}
	return faction, nil
}

func isParallel(code string, sheet Sheet) bool {
	suffix := "-pb"
	if sheet == Front {
		suffix = "-pf"
	}
	return strings.HasSuffix(code, "-p") || strings.HasSuffix(code, suffix)
}

// Skill returns the i-th printed skill icon, or "None". Icons are listed
// skill by skill in table order, one per point.
func (r *Renderer) Skill(card Record, i int) string {
	var icons []string
	for _, skill := range r.tables.Skills() {
		n, _ := card.Int("skill_" + skill)
		name := cases.Title(language.Und).String(skill)
		for range n {
			icons = append(icons, name)
		}
	}
	if i < 0 || i >= len(icons) {
		return none
	}
	return icons[i]
}

// Slot returns the i-th equipment slot, or "None". ArkhamDB lists slots in
// the reverse of the printed order.
func (r *Renderer) Slot(card Record, i int) string {
	var slots []string
	for name := range strings.SplitSeq(card.String("real_slot", ""), ".") {
		if slot, ok := r.tables.Slot(strings.TrimSpace(name)); ok {
			slots = append(slots, slot)
		}
	}
	slices.Reverse(slots)
	if i < 0 || i >= len(slots) {
		return none
	}
	return slots[i]
}

// ProgressLetter returns the act/agenda letter. Only a few campaigns use
// letters other than "a".
func (r *Renderer) ProgressLetter(card Record) string {
	code := card.Code()
	switch {
	case r.tables.Has(gamedata.ProgressG, code):
		return "g"
	case r.tables.Has(gamedata.ProgressE, code):
		return "e"
	case r.tables.Has(gamedata.ProgressC, code):
		return "c"
	default:
		return "a"
	}
}

// ProgressReversed reports whether the act/agenda counts down.
func (r *Renderer) ProgressReversed(card Record) bool {
	return r.tables.Has(gamedata.ProgressReversed, card.Code())
}

// ProgressDirection returns "Reversed" or "Standard".
func (r *Renderer) ProgressDirection(card Record) string {
	if r.ProgressReversed(card) {
		return "Reversed"
	}
	return "Standard"
}

// DoomComment returns "1" for cards printing an asterisk next to doom.
func (r *Renderer) DoomComment(card Record) string {
	return flag(r.tables.Has(gamedata.DoomAsterisk, card.Code()))
}

// EncounterFrontVisibility returns "0" when the front hides its encounter icon.
func (r *Renderer) EncounterFrontVisibility(card Record) string {
	return flag(!r.tables.Has(gamedata.EncounterFrontHidden, card.Code()))
}

// EncounterBackVisibility returns "0" when the back hides its encounter icon.
func (r *Renderer) EncounterBackVisibility(card Record) string {
	return flag(!r.tables.Has(gamedata.EncounterBackHidden, card.Code()))
}

// isReturnTo reports whether card is the scenario card of a Return to pack.
func (r *Renderer) isReturnTo(card Record) bool {
	return card.TypeCode() == "scenario" &&
		r.tables.Has(gamedata.ReturnToPacks, card.String("pack_code", ""))
}

// FrontTemplate returns the story card template for the front.
func (r *Renderer) FrontTemplate(card Record) string {
	if r.isReturnTo(card) || r.tables.Has(gamedata.ChaosFrontTemplate, card.Code()) {
		return "Chaos"
	}
	return "Story"
}

// BackTemplate returns the story card template for the back.
func (r *Renderer) BackTemplate(card Record) string {
	if r.isReturnTo(card) {
		return "ChaosFull"
	}
	return "Story"
}

// BottomLineTransparent reports whether the sheet prints no bottom line:
// enemies, and acts or agendas whose face is full art. The collection,
// encounter and artist fields render empty when it holds.
func (r *Renderer) BottomLineTransparent(card Record, sheet Sheet) bool {
	if card.TypeCode() == "enemy" {
		return true
	}
	code := card.Code()
	if sheet == Front {
		return r.tables.Has(gamedata.AgendaImageFront, code) || r.tables.Has(gamedata.ActImageFront, code)
	}
	return r.tables.Has(gamedata.AgendaImageBack, code) || r.tables.Has(gamedata.ActImageBack, code)
}

// Illustrator returns the artist credit.
func (r *Renderer) Illustrator(card Record) string {
	return card.String("illustrator", "")
}

// Copyright returns the copyright line with the pack's release year.
func (r *Renderer) Copyright(card Record) string {
	year := ""
	if pack, err := r.tables.Pack(card.String("pack_code", "")); err == nil {
		year = strconv.Itoa(pack.Year)
	}
	return "<cop> " + year + " FFG"
}

// Pack returns the name of the card's pack.
func (r *Renderer) Pack(card Record) (string, error) {
	pack, err := r.tables.Pack(card.String("pack_code", ""))
	if err != nil {
		return "", err
	}
	return pack.Name, nil
}

// Encounter returns the encounter set name, or "" for player cards.
// A few vortex and flood cards print as Black Stars Rise.
func (r *Renderer) Encounter(card Record) (string, error) {
	code := card.String("encounter_code", "")
	if code == "" {
		return "", nil
	}
	if (code == "vortex" || code == "flood") && r.tables.Has(gamedata.BlackStarsRiseCards, card.Code()) {
		code = "black_stars_rise"
	}
	return r.tables.Encounter(code)
}

// EncounterTotal returns the number of cards in the encounter set, or "0"
// for player cards.
func (r *Renderer) EncounterTotal(card Record) (string, error) {
	code := card.String("encounter_code", "")
	if code == "" {
		return "0", nil
	}
	n, err := r.tables.EncounterCount(code)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(n), nil
}
