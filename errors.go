package secard

import (
	"errors"

	"github.com/alnah/go-secard/internal/gamedata"
)

// LookupError reports a key missing from an enumerated game table.
// It unwraps to ErrUnknownKey.
type LookupError = gamedata.LookupError

// ErrUnknownKey indicates a data-integrity problem upstream: the record
// references a faction, subtype, pack or encounter set the tables do not know.
var ErrUnknownKey = gamedata.ErrUnknownKey

// Sentinel errors for library operations.
var (
	ErrInvalidRecord   = errors.New("invalid card record")
	ErrInvalidSheet    = errors.New("invalid sheet")
	ErrUnsupportedType = errors.New("unsupported card type")
	ErrRender          = errors.New("card rendering failed")

	// Renderer construction errors.
	ErrInvalidLanguage = errors.New("invalid language")
	ErrInvalidTables   = errors.New("invalid game tables")
	ErrInvalidWorkers  = errors.New("invalid worker count")

	// Data preparation errors.
	ErrMissingCard  = errors.New("card not found")
	ErrPointPattern = errors.New("point value not found in text")
)
