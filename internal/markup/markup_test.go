package markup

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRewrite - Icon tags and trait sugar
// ---------------------------------------------------------------------------

func TestRewrite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "action icon",
			input:    "[action] Draw 1 card.",
			expected: "<act> Draw 1 card.",
		},
		{
			name:     "case insensitive",
			input:    "[SKULL] [Cultist]",
			expected: "<sku> <cul>",
		},
		{
			name:     "fast shares free code",
			input:    "[fast][free]",
			expected: "<fre><fre>",
		},
		{
			name:     "elder thing and elder sign stay distinct",
			input:    "[elder_thing] [elder_sign]",
			expected: "<mon> <eld>",
		},
		{
			name:     "seals are numbered",
			input:    "[seal_a][seal_c][seal_e]",
			expected: "<seal1><seal3><seal5>",
		},
		{
			name:     "factions",
			input:    "[guardian][seeker][rogue][mystic][survivor]",
			expected: "<gua><see><rog><mys><sur>",
		},
		{
			name:     "skills and wild",
			input:    "[willpower][intellect][combat][agility][wild]",
			expected: "<wil><int><com><agi><wild>",
		},
		{
			name:     "trait sugar",
			input:    "[[Elite]].",
			expected: "<size 90%><t>Elite</t><size 33%> <size 337%>.",
		},
		{
			name:     "unknown tag passes through",
			input:    "[unknown]",
			expected: "[unknown]",
		},
		{
			name:     "plain text unchanged",
			input:    "No icons here.",
			expected: "No icons here.",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Rewrite(tt.input)
			if got != tt.expected {
				t.Errorf("Rewrite() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRewrite_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"[action] [[Hunter]]. [per_investigator] [bless] [curse] [frost]",
		"[auto_fail] or [elder_sign]: [reaction]",
		"plain",
	}

	for _, input := range inputs {
		once := Rewrite(input)
		twice := Rewrite(once)
		if once != twice {
			t.Errorf("Rewrite not idempotent for %q: %q != %q", input, once, twice)
		}
		if strings.Contains(once, "[") && input != "plain" {
			t.Errorf("Rewrite(%q) left bracket tags: %q", input, once)
		}
	}
}

// ---------------------------------------------------------------------------
// TestNormalizeRule - Rule box cleanup
// ---------------------------------------------------------------------------

func TestNormalizeRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "  \n  ",
			expected: "",
		},
		{
			name:     "plain text gets trailing space",
			input:    "Rule text",
			expected: "Rule text ",
		},
		{
			name:     "lines are trimmed",
			input:    "  A  \n  B  ",
			expected: "A\nB ",
		},
		{
			name:     "icons rewritten",
			input:    "[willpower] test",
			expected: "<wil> test ",
		},
		{
			name:     "bold keyword restyled",
			input:    "<b>Forced</b> - After you draw",
			expected: "<size 95%><hdr>Forced</hdr><size 105%> - After you draw ",
		},
		{
			name:     "hyphen bullets",
			input:    "- One\n- Two",
			expected: "<bul> One\n<bul> Two ",
		},
		{
			name:     "em dash bullet",
			input:    "— Dash",
			expected: "<bul> Dash ",
		},
		{
			name:     "hyphen without space is not a bullet",
			input:    "-2 to your skill value",
			expected: "-2 to your skill value ",
		},
		{
			name:     "paragraph tags become newlines",
			input:    "<p>A</p><p>B</p>",
			expected: "A\nB ",
		},
		{
			name:     "erratum note removed",
			input:    "Text.<i>(Erratum, March 2020)</i>",
			expected: "Text. ",
		},
		{
			name:     "errata note removed case insensitively",
			input:    "Text.<i>(errata applied)</i>",
			expected: "Text. ",
		},
		{
			name:     "FAQ note removed",
			input:    "Text. <i>(FAQ: see rules)</i>",
			expected: "Text. ",
		},
		{
			name:     "other italics kept",
			input:    "<i>Flavor.</i>",
			expected: "<i>Flavor.</i> ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NormalizeRule(tt.input)
			if got != tt.expected {
				t.Errorf("NormalizeRule() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNormalizeRule_SingleTrailingSpace(t *testing.T) {
	t.Parallel()

	inputs := []string{"a", "a ", "a\n", "[skull]", "<p>x</p>"}
	for _, input := range inputs {
		got := NormalizeRule(input)
		if !strings.HasSuffix(got, " ") || strings.HasSuffix(got, "  ") {
			t.Errorf("NormalizeRule(%q) = %q, want exactly one trailing space", input, got)
		}
		if strings.Contains(got, "[") {
			t.Errorf("NormalizeRule(%q) = %q, contains bracket tag", input, got)
		}
	}
}

// ---------------------------------------------------------------------------
// TestHeader / TestStripTags
// ---------------------------------------------------------------------------

func TestHeader(t *testing.T) {
	t.Parallel()

	if got := Header("Setup"); got != "<size 95%>Setup<size 105%>" {
		t.Errorf("Header() = %q", got)
	}
	if got := Header(""); got != "<size 95%><size 105%>" {
		t.Errorf("Header(\"\") = %q", got)
	}
}

func TestStripTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain text", input: "Humanoid. Cultist.", expected: "Humanoid. Cultist."},
		{name: "bold removed", input: "<b>Bold</b> text", expected: "Bold text"},
		{name: "size tags removed", input: "Item.<size 50%> <size 200%>Tool.", expected: "Item. Tool."},
		{name: "entities decoded", input: "<i>Fish &amp; Chips</i>", expected: "Fish & Chips"},
		{name: "whitespace collapsed", input: "  a \n b  ", expected: "a b"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := StripTags(tt.input)
			if got != tt.expected {
				t.Errorf("StripTags() = %q, want %q", got, tt.expected)
			}
		})
	}
}
