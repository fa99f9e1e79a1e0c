package secard

import (
	"io/fs"
	"maps"

	"go.uber.org/zap"

	"github.com/alnah/go-secard/internal/locale"
)

// Localizer post-processes user-facing text for one language. It must be
// safe for concurrent use.
type Localizer = locale.Localizer

// TextKind names the logical text field a localizer is asked to transform.
type TextKind = locale.Kind

// Text kinds passed to a Localizer.
const (
	KindName      = locale.KindName
	KindSubname   = locale.KindSubname
	KindRule      = locale.KindRule
	KindFlavor    = locale.KindFlavor
	KindHeader    = locale.KindHeader
	KindTraits    = locale.KindTraits
	KindTracker   = locale.KindTracker
	KindTaboo     = locale.KindTaboo
	KindVengeance = locale.KindVengeance
	KindVictory   = locale.KindVictory
	KindShelter   = locale.KindShelter
	KindBlob      = locale.KindBlob
)

// Sheet selects the card face being rendered.
type Sheet int

// Card faces.
const (
	Front Sheet = 0
	Back  Sheet = 1
)

// Valid reports whether s is Front or Back.
func (s Sheet) Valid() bool {
	return s == Front || s == Back
}

// Option configures a Renderer.
type Option func(*options)

type options struct {
	localizer   Localizer
	language    string
	tablesFS    fs.FS
	tablesName  string
	counts      map[string]int
	logger      *zap.Logger
	cache       Cache
	cachePrefix string
	workers     int
}

// WithLocalizer sets the text post-processor. It takes precedence over
// WithLanguage for text; the language is still used for cache keys.
func WithLocalizer(l Localizer) Option {
	return func(o *options) {
		o.localizer = l
	}
}

// WithLanguage selects a bundled localizer by BCP 47 tag ("de", "zh-CN").
// Languages without a catalog render unchanged text.
func WithLanguage(id string) Option {
	return func(o *options) {
		o.language = id
	}
}

// Languages returns the languages with a bundled catalog.
func Languages() []string {
	return locale.Default().Languages()
}

// WithTables overlays a game tables file on the bundled tables. Maps are
// merged key by key; code lists in the file replace the bundled ones.
func WithTables(fsys fs.FS, name string) Option {
	return func(o *options) {
		o.tablesFS = fsys
		o.tablesName = name
	}
}

// WithEncounterCounts sets the number of cards in each encounter set,
// usually from CountEncounterCards.
func WithEncounterCounts(counts map[string]int) Option {
	return func(o *options) {
		o.counts = maps.Clone(counts)
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithCache memoizes rendered cards in c. Cache failures are logged and
// never fail a render.
func WithCache(c Cache) Option {
	return func(o *options) {
		o.cache = c
	}
}

// WithCachePrefix namespaces cache keys.
func WithCachePrefix(prefix string) Option {
	return func(o *options) {
		o.cachePrefix = prefix
	}
}

// WithWorkers bounds RenderAll concurrency. Zero picks a value from
// GOMAXPROCS (see ResolveWorkers).
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// Portrait positions the card art. Values are copied verbatim into the
// port0/port1 settings of both faces.
type Portrait struct {
	X     float64
	Y     float64
	Scale float64
}

// RenderOption configures a single Render call.
type RenderOption func(*renderOptions)

type renderOptions struct {
	metadata Record
	portrait *Portrait
}

// WithMetadata supplies location metadata (the "locationFront" and
// "locationBack" objects with "icons" and "connections").
func WithMetadata(meta Record) RenderOption {
	return func(o *renderOptions) {
		o.metadata = meta
	}
}

// WithPortrait emits the static portrait settings.
func WithPortrait(p Portrait) RenderOption {
	return func(o *renderOptions) {
		o.portrait = &p
	}
}
