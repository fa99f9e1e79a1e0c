package main

import (
	"errors"
	"os"

	"github.com/alnah/go-secard"
	"github.com/alnah/go-secard/internal/cache"
	"github.com/alnah/go-secard/internal/config"
	"github.com/alnah/go-secard/internal/hints"
)

// Exit codes for the secard CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All cards rendered
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or environment
	ExitIO      = 3 // File not found, permission denied
	ExitData    = 4 // Card data the tables cannot render
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Data errors (exit 4)
	if errors.Is(err, secard.ErrRender) ||
		errors.Is(err, secard.ErrUnknownKey) ||
		errors.Is(err, secard.ErrInvalidRecord) ||
		errors.Is(err, secard.ErrUnsupportedType) ||
		errors.Is(err, secard.ErrMissingCard) ||
		errors.Is(err, secard.ErrPointPattern) {
		return ExitData
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEnvParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, secard.ErrInvalidLanguage) ||
		errors.Is(err, secard.ErrInvalidTables) ||
		errors.Is(err, secard.ErrInvalidWorkers) ||
		errors.Is(err, secard.ErrInvalidSheet) ||
		errors.Is(err, cache.ErrEmptyEndpoint) ||
		errors.Is(err, cache.ErrNegativeTTL) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(err.Error())
	case errors.Is(err, secard.ErrUnknownKey):
		return hints.ForUnknownKey()
	case errors.Is(err, secard.ErrInvalidRecord):
		return hints.ForInvalidInput()
	case errors.Is(err, secard.ErrInvalidLanguage):
		return hints.ForLanguage(secard.Languages())
	case errors.Is(err, cache.ErrEmptyEndpoint), errors.Is(err, cache.ErrNegativeTTL):
		return hints.ForCache()
	default:
		return ""
	}
}
