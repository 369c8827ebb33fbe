package question

import (
	"strings"

	"github.com/prepgenie/prepgenie-backend/internal/entity"
)

// Keyword evidence tables. Substring match on the lower-cased question text.
var technicalKeywords = []string{
	"technical", "algorithm", "code", "programming", "system", "architecture",
	"design", "implement", "debug", "technology", "framework", "api",
}

var behavioralKeywords = []string{
	"tell me about", "describe a time", "how do you handle",
	"what would you do", "conflict", "leadership", "teamwork",
}

// Classification is the output of one full pipeline run over the raw pool.
// Filtered is the Technical++Behavioral concatenation presented to the user.
type Classification struct {
	Technical  []entity.Question
	Behavioral []entity.Question
	Filtered   []entity.Question
}

// Classify normalizes and validates every raw line, then runs two independent
// keyword scans over the validated sequence. The scans are set-membership
// tests, not a partition: a question matching both keyword sets lands in both
// buckets and therefore appears twice in Filtered, and a question matching
// neither is excluded from the practice sequence entirely. Both properties
// mirror the upstream behavior on purpose.
func Classify(raw []string) Classification {
	validated := make([]string, 0, len(raw))
	for _, line := range raw {
		normalized := Normalize(line)
		if IsValid(normalized) {
			validated = append(validated, normalized)
		}
	}

	var c Classification
	for _, q := range validated {
		if matchesAny(q, technicalKeywords) {
			c.Technical = append(c.Technical, entity.Question{
				Text:     q,
				Category: entity.CategoryTechnical,
			})
		}
	}
	for _, q := range validated {
		if matchesAny(q, behavioralKeywords) {
			c.Behavioral = append(c.Behavioral, entity.Question{
				Text:     q,
				Category: entity.CategoryBehavioral,
			})
		}
	}

	c.Filtered = make([]entity.Question, 0, len(c.Technical)+len(c.Behavioral))
	c.Filtered = append(c.Filtered, c.Technical...)
	c.Filtered = append(c.Filtered, c.Behavioral...)

	return c
}

func matchesAny(q string, keywords []string) bool {
	lower := strings.ToLower(q)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
