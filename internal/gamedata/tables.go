// Package gamedata holds the enumerated Arkham Horror data behind field
// derivation: faction, subtype, slot and icon names, pack and encounter set
// names, and the literal card-code lists that drive one-off layout choices.
//
// The defaults are embedded from tables.yaml. A file with the same shape can
// be laid over them to add packs, fix names or extend code lists.
package gamedata

import (
	"embed"
	"fmt"
	"io/fs"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/alnah/go-secard/internal/yamlutil"
)

//go:embed tables.yaml
var embedded embed.FS

const embeddedName = "tables.yaml"

// List names a literal card-code (or pack-code) list.
type List string

// Code lists read from the tables file.
const (
	ProgressG             List = "progress_g"
	ProgressE             List = "progress_e"
	ProgressC             List = "progress_c"
	ProgressReversed      List = "progress_reversed"
	DoomAsterisk          List = "doom_asterisk"
	ReturnToPacks         List = "return_to_packs"
	ChaosFrontTemplate    List = "chaos_front_template"
	EncounterFrontHidden  List = "encounter_front_hidden"
	EncounterBackHidden   List = "encounter_back_hidden"
	AgendaImageFront      List = "agenda_image_front"
	AgendaImageBack       List = "agenda_image_back"
	ActImageFront         List = "act_image_front"
	ActImageBack          List = "act_image_back"
	BlackStarsRiseCards   List = "black_stars_rise_cards"
	ShelterPoints         List = "shelter_points"
	BlobPoints            List = "blob_points"
	ParallelInvestigators List = "parallel_investigators"
	ScenarioHeaderBack    List = "scenario_header_back"
)

var knownLists = []List{
	ProgressG, ProgressE, ProgressC, ProgressReversed, DoomAsterisk,
	ReturnToPacks, ChaosFrontTemplate, EncounterFrontHidden, EncounterBackHidden,
	AgendaImageFront, AgendaImageBack, ActImageFront, ActImageBack,
	BlackStarsRiseCards, ShelterPoints, BlobPoints, ParallelInvestigators,
	ScenarioHeaderBack,
}

// Pack is one ArkhamDB pack.
type Pack struct {
	Name string `yaml:"name"`
	Year int    `yaml:"year"`
}

// file is the on-disk shape of a tables file.
type file struct {
	Factions        map[string]string `yaml:"factions"`
	Subtypes        map[string]string `yaml:"subtypes"`
	Skills          []string          `yaml:"skills"`
	Slots           map[string]string `yaml:"slots"`
	LocationIcons   map[string]string `yaml:"location_icons"`
	Trackers        map[string]string `yaml:"trackers"`
	Packs           map[string]Pack   `yaml:"packs"`
	Encounters      map[string]string `yaml:"encounters"`
	EncounterCounts map[string]int    `yaml:"encounter_counts"`
	Lists           map[List][]string `yaml:"lists"`
}

// Tables is an immutable set of game tables. Safe for concurrent use.
type Tables struct {
	data file
	sets map[List]map[string]struct{}
}

var loadDefault = sync.OnceValues(func() (*Tables, error) {
	return Load(embedded, embeddedName)
})

// Default returns the embedded tables.
// It panics if the embedded file is invalid, which only a broken build can cause.
func Default() *Tables {
	t, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("gamedata: embedded tables: %v", err))
	}
	return t
}

// Load reads a complete tables file from fsys.
func Load(fsys fs.FS, name string) (*Tables, error) {
	var f file
	if err := yamlutil.ReadFS(fsys, name, &f); err != nil {
		return nil, err
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return newTables(f), nil
}

// Overlay returns a copy of t with the entries of the named file laid over it.
// Map entries are replaced key by key; a list present in the file replaces the whole list.
func (t *Tables) Overlay(fsys fs.FS, name string) (*Tables, error) {
	var f file
	if err := yamlutil.ReadFS(fsys, name, &f); err != nil {
		return nil, err
	}
	if err := f.validateLists(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	merged := t.data.clone()
	maps.Copy(merged.Factions, f.Factions)
	maps.Copy(merged.Subtypes, f.Subtypes)
	maps.Copy(merged.Slots, f.Slots)
	maps.Copy(merged.LocationIcons, f.LocationIcons)
	maps.Copy(merged.Trackers, f.Trackers)
	maps.Copy(merged.Packs, f.Packs)
	maps.Copy(merged.Encounters, f.Encounters)
	maps.Copy(merged.EncounterCounts, f.EncounterCounts)
	maps.Copy(merged.Lists, f.Lists)
	if len(f.Skills) > 0 {
		merged.Skills = slices.Clone(f.Skills)
	}
	return newTables(merged), nil
}

// WithEncounterCounts returns a copy of t with the given per-set card counts.
// Existing counts for other sets are kept.
func (t *Tables) WithEncounterCounts(counts map[string]int) *Tables {
	merged := t.data.clone()
	maps.Copy(merged.EncounterCounts, counts)
	return newTables(merged)
}

// Faction returns the Strange Eons faction for an ArkhamDB faction code.
func (t *Tables) Faction(code string) (string, error) {
	return lookup(t.data.Factions, "faction", code)
}

// Subtype returns the Strange Eons subtype for an ArkhamDB subtype code.
func (t *Tables) Subtype(code string) (string, error) {
	return lookup(t.data.Subtypes, "subtype", code)
}

// Pack returns the pack for code.
func (t *Tables) Pack(code string) (Pack, error) {
	return lookup(t.data.Packs, "pack", code)
}

// Encounter returns the encounter set name for code.
func (t *Tables) Encounter(code string) (string, error) {
	return lookup(t.data.Encounters, "encounter", code)
}

// EncounterCount returns the number of cards in the encounter set code.
func (t *Tables) EncounterCount(code string) (int, error) {
	return lookup(t.data.EncounterCounts, "encounter count", code)
}

// Slot returns the Strange Eons slot for an ArkhamDB slot name.
func (t *Tables) Slot(name string) (string, bool) {
	v, ok := t.data.Slots[name]
	return v, ok
}

// Skills returns the skill icon names in print order.
func (t *Tables) Skills() []string {
	return slices.Clone(t.data.Skills)
}

// LocationIcon returns the Strange Eons icon for a connection icon name,
// or "None" for icons that are not printed. Names are matched case-insensitively
// with spaces and underscores treated alike.
func (t *Tables) LocationIcon(name string) string {
	key := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
	if v, ok := t.data.LocationIcons[key]; ok {
		return v
	}
	return "None"
}

// Tracker returns the English tracker label for a card code, or "".
func (t *Tables) Tracker(code string) string {
	return t.data.Trackers[code]
}

// Has reports whether code is in the named list.
func (t *Tables) Has(list List, code string) bool {
	_, ok := t.sets[list][code]
	return ok
}

// Codes returns a copy of the named list.
func (t *Tables) Codes(list List) []string {
	return slices.Clone(t.data.Lists[list])
}

func lookup[V any](m map[string]V, table, key string) (V, error) {
	v, ok := m[key]
	if !ok {
		var zero V
		return zero, &LookupError{Table: table, Key: key}
	}
	return v, nil
}

func newTables(f file) *Tables {
	t := &Tables{data: f, sets: make(map[List]map[string]struct{}, len(f.Lists))}
	for name, codes := range f.Lists {
		set := make(map[string]struct{}, len(codes))
		for _, c := range codes {
			set[c] = struct{}{}
		}
		t.sets[name] = set
	}
	return t
}

func (f file) validate() error {
	if len(f.Factions) == 0 {
		return fmt.Errorf("%w: no factions", ErrInvalidTables)
	}
	if len(f.Skills) == 0 {
		return fmt.Errorf("%w: no skills", ErrInvalidTables)
	}
	return f.validateLists()
}

func (f file) validateLists() error {
	for name := range f.Lists {
		if !slices.Contains(knownLists, name) {
			return fmt.Errorf("%w: %q", ErrUnknownList, name)
		}
	}
	return nil
}

func (f file) clone() file {
	c := file{
		Factions:        cloneMap(f.Factions),
		Subtypes:        cloneMap(f.Subtypes),
		Skills:          slices.Clone(f.Skills),
		Slots:           cloneMap(f.Slots),
		LocationIcons:   cloneMap(f.LocationIcons),
		Trackers:        cloneMap(f.Trackers),
		Packs:           cloneMap(f.Packs),
		Encounters:      cloneMap(f.Encounters),
		EncounterCounts: cloneMap(f.EncounterCounts),
		Lists:           make(map[List][]string, len(f.Lists)),
	}
	for k, v := range f.Lists {
		c.Lists[k] = slices.Clone(v)
	}
	return c
}

// cloneMap never returns nil, so merged tables can always be written to.
func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	c := make(map[K]V, len(m))
	maps.Copy(c, m)
	return c
}
