// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and the user config directory when it was searched.
func ForConfigNotFound(message string) string {
	hint := "use --config /path/to/file.yaml"

	// The error message lists the searched paths; suggest the user one.
	for p := range strings.SplitSeq(message, ", ") {
		if i := strings.Index(p, "/"); i >= 0 && strings.Contains(p, "go-secard") {
			hint += " or create " + p[i:]
			break
		}
	}

	return format(hint)
}

// ForUnknownKey returns hints for records that reference codes the game
// tables do not know, usually cards from a newer pack.
func ForUnknownKey() string {
	return format("add the missing entry to a tables overlay and pass it with --tables")
}

// ForInvalidInput returns hints for input that is not a card list.
func ForInvalidInput() string {
	return format("input must be a JSON array of ArkhamDB card objects")
}

// ForCache returns hints for Redis cache setup errors.
func ForCache() string {
	return formatHints([]string{
		"check --redis-addr (or SECARD_REDIS_ADDR) is host:port",
		"omit it to render without a cache",
	})
}

// ForLanguage returns hints for malformed language tags.
func ForLanguage(catalogs []string) string {
	hint := `use a BCP 47 tag such as "de" or "zh_CN"`
	if len(catalogs) > 0 {
		hint += "; bundled catalogs: " + strings.Join(catalogs, ", ")
	}
	return format(hint)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
