package secard

import (
	"strconv"
	"strings"
)

// point renders "<label> <n>." for an integer field, or "" when the card
// has no such value.
func (r *Renderer) point(card Record, key, label string, kind TextKind) string {
	n, ok := card.Int(key)
	if !ok {
		return ""
	}
	return r.localize(kind, label+" "+strconv.Itoa(n)+".")
}

// Vengeance returns the vengeance line, e.g. "Vengeance 1.".
func (r *Renderer) Vengeance(card Record) string {
	return r.point(card, "vengeance", "Vengeance", KindVengeance)
}

// Victory returns the victory line, e.g. "Victory 2.".
func (r *Renderer) Victory(card Record) string {
	return r.point(card, "victory", "Victory", KindVictory)
}

// Shelter returns the shelter line of Edge of the Earth locations.
func (r *Renderer) Shelter(card Record) string {
	return r.point(card, "shelter", "Shelter", KindShelter)
}

// Blob returns the blob line of The Blob That Ate Everything enemies.
func (r *Renderer) Blob(card Record) string {
	return r.point(card, "blob", "Blob", KindBlob)
}

// Points joins the point lines printed in the victory box. Locations print
// vengeance, shelter, victory; other cards victory, vengeance, blob.
// Components the card does not have are left out.
func (r *Renderer) Points(card Record) string {
	var parts []string
	if card.TypeCode() == "location" {
		parts = []string{r.Vengeance(card), r.Shelter(card), r.Victory(card)}
	} else {
		parts = []string{r.Victory(card), r.Vengeance(card), r.Blob(card)}
	}

	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n")
}
