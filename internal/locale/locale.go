// Package locale post-processes rendered card text for a target language.
//
// Every user-facing text field passes through a Localizer together with its
// Kind. The Kind is always an explicit argument chosen by the caller, so the
// same value can be treated differently as a name or as a rule.
//
// Kinds without a registered transform pass through unchanged.
package locale

import (
	"errors"
	"fmt"
	"strings"

	"github.com/longbridgeapp/opencc"
)

// Sentinel errors for localization.
var (
	ErrInvalidLanguage = errors.New("invalid language")
	ErrUnknownKind     = errors.New("unknown text kind")
	ErrCatalog         = errors.New("invalid catalog")
)

// Kind identifies the logical field a text value belongs to.
type Kind string

// Text kinds.
const (
	KindName      Kind = "name"
	KindSubname   Kind = "subname"
	KindRule      Kind = "rule"
	KindFlavor    Kind = "flavor"
	KindHeader    Kind = "header"
	KindTraits    Kind = "traits"
	KindTracker   Kind = "tracker"
	KindTaboo     Kind = "taboo"
	KindVengeance Kind = "vengeance"
	KindVictory   Kind = "victory"
	KindShelter   Kind = "shelter"
	KindBlob      Kind = "blob"
)

// Kinds lists every recognized Kind.
var Kinds = []Kind{
	KindName, KindSubname, KindRule, KindFlavor, KindHeader, KindTraits,
	KindTracker, KindTaboo, KindVengeance, KindVictory, KindShelter, KindBlob,
}

func (k Kind) valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Localizer transforms a text value of the given kind.
// Implementations must be safe for concurrent use.
type Localizer interface {
	Localize(kind Kind, value string) string
}

// Transform rewrites one text value.
type Transform func(string) string

// Table is a Localizer backed by a fixed set of transforms.
// It must not be modified after it is shared.
type Table map[Kind]Transform

// Localize applies the transform registered for kind, if any.
func (t Table) Localize(kind Kind, value string) string {
	if f := t[kind]; f != nil {
		return f(value)
	}
	return value
}

type identity struct{}

func (identity) Localize(_ Kind, value string) string { return value }

// Identity returns every value unchanged.
var Identity Localizer = identity{}

// Compile-time interface checks.
var (
	_ Localizer = Table(nil)
	_ Localizer = identity{}
)

// Chain applies each transform in order.
func Chain(transforms ...Transform) Transform {
	return func(s string) string {
		for _, f := range transforms {
			s = f(s)
		}
		return s
	}
}

// Replace returns a transform that replaces every from with to.
func Replace(from, to string) Transform {
	return func(s string) string {
		return strings.ReplaceAll(s, from, to)
	}
}

// Phrases returns a transform that swaps whole values found in m.
func Phrases(m map[string]string) Transform {
	return func(s string) string {
		if v, ok := m[s]; ok {
			return v
		}
		return s
	}
}

// Join returns a transform that rejoins space-separated words with sep.
func Join(sep string) Transform {
	return func(s string) string {
		return strings.Join(strings.Split(s, " "), sep)
	}
}

// Convert returns a transform that runs the named OpenCC conversion, such
// as "t2s" for Traditional to Simplified Chinese. A value the converter
// rejects passes through unchanged.
func Convert(name string) (Transform, error) {
	cc, err := opencc.New(name)
	if err != nil {
		return nil, fmt.Errorf("%w: conversion %q: %v", ErrCatalog, name, err)
	}
	return func(s string) string {
		out, err := cc.Convert(s)
		if err != nil {
			return s
		}
		return out
	}, nil
}
