package question

import (
	"regexp"
	"strings"
)

var ordinalPrefix = regexp.MustCompile(`^\d+\.\s*`)

// Normalize strips a leading ordinal marker ("12. ") and surrounding
// whitespace from a raw generated line. It is total and idempotent.
func Normalize(line string) string {
	trimmed := strings.TrimSpace(line)
	return strings.TrimSpace(ordinalPrefix.ReplaceAllString(trimmed, ""))
}
