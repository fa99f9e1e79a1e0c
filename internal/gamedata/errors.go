package gamedata

import (
	"errors"
	"fmt"
)

// Sentinel errors for table operations.
var (
	// ErrUnknownKey indicates a lookup key is absent from an exhaustive table.
	// This points at a data problem upstream, not at a recoverable condition.
	ErrUnknownKey = errors.New("unknown key")

	// ErrUnknownList indicates a tables file names a code list this package does not use.
	ErrUnknownList = errors.New("unknown code list")

	// ErrInvalidTables indicates a tables file failed validation.
	ErrInvalidTables = errors.New("invalid tables")
)

// LookupError reports a key missing from one of the game tables.
type LookupError struct {
	Table string
	Key   string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: %s %q", ErrUnknownKey, e.Table, e.Key)
}

// Unwrap lets errors.Is match ErrUnknownKey.
func (e *LookupError) Unwrap() error {
	return ErrUnknownKey
}
