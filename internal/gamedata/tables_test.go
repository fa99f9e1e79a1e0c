package gamedata

import (
	"errors"
	"testing"
	"testing/fstest"
)

// ---------------------------------------------------------------------------
// TestDefault - Embedded tables load and answer lookups
// ---------------------------------------------------------------------------

func TestDefault(t *testing.T) {
	t.Parallel()

	tables := Default()
	if tables != Default() {
		t.Error("Default() should return the same instance")
	}

	tests := []struct {
		name   string
		lookup func() (string, error)
		want   string
	}{
		{name: "faction", lookup: func() (string, error) { return tables.Faction("guardian") }, want: "Guardian"},
		{name: "mythos faction", lookup: func() (string, error) { return tables.Faction("mythos") }, want: "Mythos"},
		{name: "subtype", lookup: func() (string, error) { return tables.Subtype("basicweakness") }, want: "BasicWeakness"},
		{name: "encounter", lookup: func() (string, error) { return tables.Encounter("torch") }, want: "The Gathering"},
		{name: "pack", lookup: func() (string, error) {
			p, err := tables.Pack("core")
			return p.Name, err
		}, want: "Core Set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.lookup()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefault_Lists(t *testing.T) {
	t.Parallel()

	tables := Default()

	tests := []struct {
		list List
		code string
		want bool
	}{
		{ProgressG, "53029", true},
		{ProgressE, "04137a", true},
		{ProgressC, "03279b", true},
		{ProgressC, "03281", false},
		{ProgressReversed, "03281", true},
		{DoomAsterisk, "04212", true},
		{ReturnToPacks, "rtptc", true},
		{ChaosFrontTemplate, "07062a", true},
		{EncounterFrontHidden, "06015b", true},
		{ShelterPoints, "08514", true},
		{BlobPoints, "85042", true},
		{ParallelInvestigators, "90024", true},
		{ProgressG, "01001", false},
	}

	for _, tt := range tests {
		if got := tables.Has(tt.list, tt.code); got != tt.want {
			t.Errorf("Has(%s, %q) = %v, want %v", tt.list, tt.code, got, tt.want)
		}
	}
}

func TestDefault_EncountersPerCampaign(t *testing.T) {
	t.Parallel()

	tables := Default()

	tests := []struct {
		code string
		want string
	}{
		{"vortex", "The Vortex Above"},
		{"the_city_of_archives", "The City of Archives"},
		{"the_depths_of_yoth", "The Depths of Yoth"},
		{"the_secret_name", "The Secret Name"},
		{"beyond_the_gates_of_sleep", "Beyond the Gates of Sleep"},
		{"the_vanishing_of_elina_harper", "The Vanishing of Elina Harper"},
		{"ice_and_death", "Ice and Death"},
		{"riddles_and_rain", "Riddles and Rain"},
		{"written_in_rock", "Written in Rock"},
		{"return_to_the_gathering", "Return to The Gathering"},
		{"return_to_before_the_black_throne", "Return to Before the Black Throne"},
		{"the_blob_that_ate_everything", "The Blob That Ate Everything"},
	}

	for _, tt := range tests {
		got, err := tables.Encounter(tt.code)
		if err != nil {
			t.Errorf("Encounter(%q) error = %v", tt.code, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Encounter(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

// Every return-to pack listed must itself be a known pack.
func TestDefault_ReturnToPacksKnown(t *testing.T) {
	t.Parallel()

	tables := Default()
	for _, code := range tables.Codes(ReturnToPacks) {
		if _, err := tables.Pack(code); err != nil {
			t.Errorf("Pack(%q) error = %v", code, err)
		}
	}
}

func TestTables_LookupError(t *testing.T) {
	t.Parallel()

	_, err := Default().Pack("nope")
	if !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("error = %v, want ErrUnknownKey", err)
	}

	var lookupErr *LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("error = %T, want *LookupError", err)
	}
	if lookupErr.Table != "pack" || lookupErr.Key != "nope" {
		t.Errorf("LookupError = %+v", lookupErr)
	}
	if got := err.Error(); got != `unknown key: pack "nope"` {
		t.Errorf("Error() = %q", got)
	}
}

func TestTables_LocationIcon(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{"TILDE", "Slash"},
		{"tilde", "Slash"},
		{"Double Slash", "DoubleSlash"},
		{"Circle", "Circle"},
		{"UNKNOWN", "None"},
		{"", "None"},
	}

	for _, tt := range tests {
		if got := Default().LocationIcon(tt.name); got != tt.want {
			t.Errorf("LocationIcon(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestTables_SlotsSkillsTrackers(t *testing.T) {
	t.Parallel()

	tables := Default()

	if got, ok := tables.Slot("Hand x2"); !ok || got != "TwoHands" {
		t.Errorf("Slot(Hand x2) = %q, %v", got, ok)
	}
	if _, ok := tables.Slot("Pocket"); ok {
		t.Error("Slot(Pocket) should be unknown")
	}

	skills := tables.Skills()
	if len(skills) != 5 || skills[0] != "willpower" || skills[4] != "wild" {
		t.Errorf("Skills() = %v", skills)
	}
	skills[0] = "mutated"
	if tables.Skills()[0] != "willpower" {
		t.Error("Skills() must return a copy")
	}

	if got := tables.Tracker("83016"); got != "Strength of the Abyss" {
		t.Errorf("Tracker(83016) = %q", got)
	}
	if got := tables.Tracker("01001"); got != "" {
		t.Errorf("Tracker(01001) = %q, want empty", got)
	}
}

// ---------------------------------------------------------------------------
// TestOverlay / TestWithEncounterCounts - Derived copies
// ---------------------------------------------------------------------------

func TestTables_Overlay(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"extra.yaml": {Data: []byte(`
packs:
  zdh: {name: Custom Pack, year: 2024}
encounters:
  torch: The Gathering (Revised)
lists:
  agenda_image_front: ["99001"]
`)},
		"badlist.yaml": {Data: []byte("lists:\n  no_such_list: [\"1\"]\n")},
		"typo.yaml":    {Data: []byte("packz: {}\n")},
	}

	base := Default()
	over, err := base.Overlay(fsys, "extra.yaml")
	if err != nil {
		t.Fatalf("Overlay() error = %v", err)
	}

	if p, err := over.Pack("zdh"); err != nil || p.Year != 2024 {
		t.Errorf("Pack(zdh) = %+v, %v", p, err)
	}
	if p, err := over.Pack("core"); err != nil || p.Name != "Core Set" {
		t.Errorf("Pack(core) = %+v, %v; base entries must survive", p, err)
	}
	if got, _ := over.Encounter("torch"); got != "The Gathering (Revised)" {
		t.Errorf("Encounter(torch) = %q", got)
	}
	if !over.Has(AgendaImageFront, "99001") {
		t.Error("overlay list not applied")
	}
	if base.Has(AgendaImageFront, "99001") {
		t.Error("Overlay mutated the base tables")
	}

	if _, err := base.Overlay(fsys, "badlist.yaml"); !errors.Is(err, ErrUnknownList) {
		t.Errorf("Overlay(badlist) error = %v, want ErrUnknownList", err)
	}
	if _, err := base.Overlay(fsys, "typo.yaml"); err == nil {
		t.Error("Overlay(typo) should reject unknown keys")
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"empty.yaml": {Data: []byte("packs: {}\n")},
	}

	if _, err := Load(fsys, "empty.yaml"); !errors.Is(err, ErrInvalidTables) {
		t.Errorf("Load(empty) error = %v, want ErrInvalidTables", err)
	}
	if _, err := Load(fsys, "missing.yaml"); err == nil {
		t.Error("Load(missing) should fail")
	}
}

func TestTables_WithEncounterCounts(t *testing.T) {
	t.Parallel()

	base := Default()
	counted := base.WithEncounterCounts(map[string]int{"torch": 16})

	if n, err := counted.EncounterCount("torch"); err != nil || n != 16 {
		t.Errorf("EncounterCount(torch) = %d, %v", n, err)
	}
	if _, err := base.EncounterCount("torch"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("base EncounterCount(torch) error = %v, want ErrUnknownKey", err)
	}
	if !counted.Has(ProgressG, "53029") {
		t.Error("lists lost in copy")
	}
}
