// Package lines parses the line-oriented text on scenario reference cards.
package lines

import (
	"regexp"
	"strings"
)

// Token is a chaos token with a dedicated line on scenario reference cards.
// The declaration order is the merge rank.
type Token int

// Chaos tokens in rank order.
const (
	Skull Token = iota
	Cultist
	Tablet
	ElderThing
)

// Tokens lists every Token in rank order.
var Tokens = []Token{Skull, Cultist, Tablet, ElderThing}

var (
	tokenTags  = [...]string{"[skull]", "[cultist]", "[tablet]", "[elder_thing]"}
	tokenNames = [...]string{"Skull", "Cultist", "Tablet", "ElderThing"}
)

var colonPattern = regexp.MustCompile(`[:：]`)

// Tag returns the ArkhamDB placeholder for t, e.g. "[skull]".
func (t Token) Tag() string { return tokenTags[t] }

// String returns the Strange Eons name of t, e.g. "ElderThing".
func (t Token) String() string { return tokenNames[t] }

// ChaosLine is the effect text of one chaos token. Merge names the
// highest-ranked token sharing the line, or "None".
type ChaosLine struct {
	Text  string
	Merge string
}

// Chaos finds the line for token in raw. The first line holds the scenario
// name and is skipped. The returned text has colons and token tags removed.
func Chaos(raw string, token Token) ChaosLine {
	all := strings.Split(raw, "\n")
	for _, line := range all[1:] {
		line = strings.TrimSpace(line)
		if !strings.Contains(line, token.Tag()) {
			continue
		}

		highest := token
		for _, other := range Tokens {
			if other > highest && strings.Contains(line, other.Tag()) {
				highest = other
			}
		}

		line = colonPattern.ReplaceAllString(line, "")
		for _, other := range Tokens {
			line = strings.ReplaceAll(line, other.Tag(), "")
		}

		merge := "None"
		if highest > token {
			merge = highest.String()
		}
		return ChaosLine{Text: strings.TrimSpace(line), Merge: merge}
	}
	return ChaosLine{Merge: "None"}
}

// DeckLine splits the i-th non-blank line of raw on its first colon.
// Full-width colons count as colons. Missing lines yield two empty strings.
func DeckLine(raw string, i int) (header, rule string) {
	var nonBlank []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			nonBlank = append(nonBlank, line)
		}
	}
	if i < 0 || i >= len(nonBlank) {
		return "", ""
	}

	parts := strings.Split(strings.ReplaceAll(nonBlank[i], "：", ":"), ":")
	for j := range parts {
		parts[j] = strings.TrimSpace(parts[j])
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], ":")
}

// FirstLine returns the trimmed first line of raw.
func FirstLine(raw string) string {
	first, _, _ := strings.Cut(raw, "\n")
	return strings.TrimSpace(first)
}
