package secard

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/alnah/go-secard/internal/gamedata"
)

// pointPattern matches a trailing bold point value such as
// "<b>Shelter 2</b>." or "<b>避难所2。</b>". The bold span may not contain
// other tags, so earlier bold keywords are left alone.
var pointPattern = regexp.MustCompile(`\s*<b>[^<]*?(\d+)(</b>[.。]|[.。]</b>)\s*$`)

// backSideFields are copied from the original investigator onto the "-pb"
// variant, which pairs the original front with the parallel back.
var backSideFields = []string{
	"pack_code",
	"illustrator",
	"position",
	"text",
	"flavor",
	"health",
	"sanity",
	"skill_willpower",
	"skill_intellect",
	"skill_combat",
	"skill_agility",
}

// PatchPoints moves the shelter or blob value printed at the end of a
// card's text into its own numeric field, so Points can place it in the
// victory box. Cards not listed in the tables are returned unchanged.
func (r *Renderer) PatchPoints(card Record) (Record, error) {
	var key string
	switch code := card.Code(); {
	case r.tables.Has(gamedata.ShelterPoints, code):
		key = "shelter"
	case r.tables.Has(gamedata.BlobPoints, code):
		key = "blob"
	default:
		return card, nil
	}

	text := card.String("text", "")
	m := pointPattern.FindStringSubmatchIndex(text)
	if m == nil {
		return Record{}, fmt.Errorf("%w: %s %s", ErrPointPattern, key, card.Code())
	}
	n, err := strconv.Atoi(text[m[2]:m[3]])
	if err != nil {
		return Record{}, fmt.Errorf("%w: %s %s: %v", ErrPointPattern, key, card.Code(), err)
	}

	patched, err := card.With(key, n)
	if err != nil {
		return Record{}, err
	}
	return patched.With("text", text[:m[0]])
}

// ParallelVariants builds the three printable combinations of a parallel
// investigator and the investigator it replaces:
//
//   - "<code>-p": parallel front and back
//   - "<code>-pf": parallel front, original back
//   - "<code>-pb": original front, parallel back
//
// where code is the original investigator's code.
func ParallelVariants(parallel, original Record) ([]Record, error) {
	code := original.Code()
	if code == "" {
		return nil, fmt.Errorf("%w: original investigator has no code", ErrInvalidRecord)
	}

	both, err := parallel.With("code", code+"-p")
	if err != nil {
		return nil, err
	}

	front, err := parallel.With("code", code+"-pf")
	if err != nil {
		return nil, err
	}
	for _, key := range []string{"back_text", "back_flavor"} {
		if front, err = front.withFieldOf(original, key, ""); err != nil {
			return nil, err
		}
	}

	back, err := parallel.With("code", code+"-pb")
	if err != nil {
		return nil, err
	}
	for _, key := range backSideFields {
		if back, err = back.withFieldOf(original, key, 0); err != nil {
			return nil, err
		}
	}

	return []Record{both, front, back}, nil
}

// ExpandParallels appends the parallel variants of every parallel
// investigator in cards. Parallel investigators absent from cards are
// skipped; a present one whose original is missing is an error.
func (r *Renderer) ExpandParallels(cards []Record) ([]Record, error) {
	byCode := make(map[string]Record, len(cards))
	for _, card := range cards {
		byCode[card.Code()] = card
	}

	out := append([]Record(nil), cards...)
	for _, code := range r.tables.Codes(gamedata.ParallelInvestigators) {
		parallel, ok := byCode[code]
		if !ok {
			continue
		}
		originalCode := parallel.String("alternate_of", "")
		original, ok := byCode[originalCode]
		if !ok {
			return nil, fmt.Errorf("%w: %q, original of parallel %s", ErrMissingCard, originalCode, code)
		}

		variants, err := ParallelVariants(parallel, original)
		if err != nil {
			return nil, fmt.Errorf("parallel %s: %w", code, err)
		}
		out = append(out, variants...)
	}
	return out, nil
}

// PrepareRecords applies PatchPoints to every card and appends the parallel
// investigator variants.
func (r *Renderer) PrepareRecords(cards []Record) ([]Record, error) {
	patched := make([]Record, len(cards))
	for i, card := range cards {
		p, err := r.PatchPoints(card)
		if err != nil {
			return nil, err
		}
		patched[i] = p
	}
	return r.ExpandParallels(patched)
}

// CountEncounterCards sums the quantity of every card per encounter set.
// Cards without a quantity count once.
func CountEncounterCards(cards []Record) map[string]int {
	counts := make(map[string]int)
	for _, card := range cards {
		set := card.String("encounter_code", "")
		if set == "" {
			continue
		}
		n, ok := card.Int("quantity")
		if !ok {
			n = 1
		}
		counts[set] += n
	}
	return counts
}
