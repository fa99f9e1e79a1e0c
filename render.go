package secard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"go.uber.org/zap"

	"github.com/alnah/go-secard/internal/gamedata"
	"github.com/alnah/go-secard/internal/locale"
)

// Renderer derives Strange Eons fields from card records.
// It is immutable after New and safe for concurrent use.
type Renderer struct {
	tables      *gamedata.Tables
	loc         Localizer
	language    string
	log         *zap.Logger
	cache       Cache
	cachePrefix string
	workers     int
}

// New creates a Renderer. Without options it renders English text with the
// bundled game tables.
func New(opts ...Option) (*Renderer, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if o.workers < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkers, o.workers)
	}

	tables := gamedata.Default()
	if o.tablesFS != nil {
		overlaid, err := tables.Overlay(o.tablesFS, o.tablesName)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTables, err)
		}
		tables = overlaid
	}
	if len(o.counts) > 0 {
		tables = tables.WithEncounterCounts(o.counts)
	}

	loc := o.localizer
	if loc == nil {
		resolved, err := locale.ForLanguage(o.language)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidLanguage, err)
		}
		loc = resolved
	}

	logger := o.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Renderer{
		tables:      tables,
		loc:         loc,
		language:    o.language,
		log:         logger,
		cache:       o.cache,
		cachePrefix: o.cachePrefix,
		workers:     ResolveWorkers(o.workers),
	}, nil
}

// localize passes value through the localizer for kind.
func (r *Renderer) localize(kind TextKind, value string) string {
	return r.loc.Localize(kind, value)
}

// RenderedCard is the flat field-name to value mapping for one card sheet.
// It is never modified after Render returns it.
type RenderedCard struct {
	code   string
	sheet  Sheet
	fields map[string]string
}

// Code returns the identifier of the rendered card.
func (c RenderedCard) Code() string { return c.code }

// Sheet returns the rendered face.
func (c RenderedCard) Sheet() Sheet { return c.sheet }

// Len returns the number of fields.
func (c RenderedCard) Len() int { return len(c.fields) }

// Get returns the value of a field, or "" when it was not rendered.
func (c RenderedCard) Get(name string) string { return c.fields[name] }

// Lookup returns the value of a field and whether it was rendered.
func (c RenderedCard) Lookup(name string) (string, bool) {
	v, ok := c.fields[name]
	return v, ok
}

// Fields returns a copy of all fields.
func (c RenderedCard) Fields() map[string]string {
	return maps.Clone(c.fields)
}

// Names returns the field names in sorted order.
func (c RenderedCard) Names() []string {
	return slices.Sorted(maps.Keys(c.fields))
}

// MarshalJSON encodes the fields as one JSON object with sorted keys.
// Strange Eons markup is kept literal instead of being HTML-escaped.
func (c RenderedCard) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c.fields); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Render derives every field of card for sheet. Lookup failures in the game
// tables are collected and returned together; no partial card is returned.
func (r *Renderer) Render(card Record, sheet Sheet, opts ...RenderOption) (RenderedCard, error) {
	var ro renderOptions
	for _, opt := range opts {
		opt(&ro)
	}

	fields, err := r.derive(card, sheet, ro.metadata)
	if err != nil {
		return RenderedCard{}, err
	}
	return assemble(card, sheet, fields, ro.portrait), nil
}

// derive evaluates the field table.
func (r *Renderer) derive(card Record, sheet Sheet, meta Record) (map[string]string, error) {
	if !sheet.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSheet, sheet)
	}

	in := input{card: card, sheet: sheet, meta: meta}
	fields := make(map[string]string, fieldCount)
	var errs []error

	for _, rule := range fieldRules {
		values, err := rule.derive(r, in)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", rule.names[0], err))
			continue
		}
		for i, name := range rule.names {
			fields[name] = values[i]
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s sheet %d: %w", ErrRender, card.Code(), sheet, errors.Join(errs...))
	}

	r.log.Debug("card rendered",
		zap.String("code", card.Code()),
		zap.Int("sheet", int(sheet)),
		zap.Int("fields", len(fields)),
	)
	return fields, nil
}

// assemble freezes fields into a RenderedCard, adding portrait settings.
func assemble(card Record, sheet Sheet, fields map[string]string, p *Portrait) RenderedCard {
	if p != nil {
		fields = maps.Clone(fields)
		maps.Copy(fields, portraitFields(*p))
	}
	return RenderedCard{code: card.Code(), sheet: sheet, fields: fields}
}

func portraitFields(p Portrait) map[string]string {
	format := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	x, y, scale := format(p.X), format(p.Y), format(p.Scale)
	return map[string]string{
		"port0X":         x,
		"port1X":         x,
		"port0Y":         y,
		"port1Y":         y,
		"port0Scale":     scale,
		"port1Scale":     scale,
		"$PortraitShare": "0",
		"port0Rot":       "0",
		"$port1Rot":      "0",
	}
}
