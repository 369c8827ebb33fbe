package question

import (
	"regexp"
	"strings"
)

// rejectRules is the ordered table of heading and preamble shapes that the
// generation service mixes into its output. A line matching any rule is
// dropped before classification.
var rejectRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^technical questions?:?$`),
	regexp.MustCompile(`(?i)^behavioral questions?:?$`),
	regexp.MustCompile(`(?i)^situational questions?:?$`),
	regexp.MustCompile(`(?i)^general questions?:?$`),
	regexp.MustCompile(`(?i)^questions?:?$`),
	regexp.MustCompile(`(?i)^interview questions?:?$`),
	regexp.MustCompile(`(?i)^here are.*questions?`),
	regexp.MustCompile(`(?i)^below are.*questions?`),
	regexp.MustCompile(`(?i)^the following.*questions?`),
	regexp.MustCompile(`(?i)^these questions? are designed`),
	regexp.MustCompile(`(?i)^interview questions? that would be`),
	regexp.MustCompile(`(?i)^likely asked for the`),
	regexp.MustCompile(`(?i)^position at`),
	regexp.MustCompile(`(?i)^focus\.?\s*prepare\.?\s*shine\.?`),
	regexp.MustCompile(`(?i)^\d+\.\s*(technical|behavioral) questions?:?$`),
}

var bareOrdinal = regexp.MustCompile(`^\d+\.\s*$`)

// leadWords are the interrogative/imperative openers that mark a line as a
// question even without a question mark. Prefix match, case-insensitive.
var leadWords = []string{
	"what", "how", "why", "when", "where", "who", "which", "can you",
	"do you", "have you", "tell me", "describe", "explain", "walk me through",
}

const minQuestionLength = 20

// IsValid reports whether a line is a genuine interview question rather than
// a heading, preamble or stray numbering. This is a heuristic noise filter,
// not a grammar check: after the reject table, a line passes only if it is at
// least 20 characters long and either contains a question mark or opens with
// a known lead word.
func IsValid(line string) bool {
	trimmed := strings.TrimSpace(line)

	for _, rule := range rejectRules {
		if rule.MatchString(trimmed) {
			return false
		}
	}

	if bareOrdinal.MatchString(trimmed) {
		return false
	}

	if len(trimmed) < minQuestionLength {
		return false
	}

	if strings.Contains(trimmed, "?") {
		return true
	}

	lower := strings.ToLower(trimmed)
	for _, word := range leadWords {
		if strings.HasPrefix(lower, word) {
			return true
		}
	}

	return false
}
