// Package evaluation extracts structured feedback fields from the freeform
// evaluation passages returned by the generation service. Extraction is best
// effort and never fails: malformed input degrades to the raw passage as
// feedback, and consumers substitute placeholder text for anything that
// stayed empty.
package evaluation

import (
	"regexp"
	"strings"
)

// Display placeholders substituted by consumers (API converter, exporter,
// Telegram renderer) for fields the extractor left empty.
const (
	PlaceholderFeedback    = "No specific feedback provided."
	PlaceholderImprovement = "No specific improvement suggestions provided."
	PlaceholderScore       = "Not provided"
)

// Extraction holds the three fields recovered from one evaluation passage.
// Any of them may be empty; none of them is ever an error.
type Extraction struct {
	Feedback    string
	Improvement string
	Score       string
}

var (
	feedbackLabel    = regexp.MustCompile(`(?i)^.*feedback:\s*`)
	improvementLabel = regexp.MustCompile(`(?i)^.*improvement.*:\s*`)
	scoreLabel       = regexp.MustCompile(`(?i)^.*score:\s*`)
	digitRun         = regexp.MustCompile(`(\d+)`)
	looseScore       = regexp.MustCompile(`(?i)(\d+)(\s*/\s*10|\s*out\s*of\s*10)`)
)

// Parse extracts feedback, improvement and score from a raw evaluation
// passage. The passes run in label order; a labeled line with an empty
// remainder accumulates the following lines until the next label. When no
// label matched at all, the whole passage is scanned for a loose "<n>/10" or
// "<n> out of 10" score and used verbatim as feedback.
func Parse(raw string) Extraction {
	lines := nonEmptyLines(raw)

	var ext Extraction

	for i, line := range lines {
		if !containsFold(line, "feedback:") {
			continue
		}
		ext.Feedback = strings.TrimSpace(feedbackLabel.ReplaceAllString(line, ""))
		if ext.Feedback == "" {
			ext.Feedback = accumulate(lines[i+1:], "improvement:", "score:")
		}
	}

	for i, line := range lines {
		if !containsFold(line, "improvement:") {
			continue
		}
		ext.Improvement = strings.TrimSpace(improvementLabel.ReplaceAllString(line, ""))
		if ext.Improvement == "" {
			ext.Improvement = accumulate(lines[i+1:], "score:")
		}
	}

	for _, line := range lines {
		if !containsFold(line, "score:") {
			continue
		}
		remainder := strings.TrimSpace(scoreLabel.ReplaceAllString(line, ""))
		if digits := digitRun.FindString(remainder); digits != "" {
			ext.Score = digits + "/10"
		} else {
			ext.Score = remainder
		}
		break
	}

	if ext.Feedback == "" && ext.Improvement == "" && ext.Score == "" {
		if m := looseScore.FindStringSubmatch(raw); m != nil {
			ext.Score = m[1] + "/10"
		}
		ext.Feedback = strings.TrimSpace(raw)
	}

	return ext
}

// accumulate joins lines with single spaces until one carries a stop label.
func accumulate(lines []string, stopLabels ...string) string {
	var sb strings.Builder
	for _, line := range lines {
		for _, stop := range stopLabels {
			if containsFold(line, stop) {
				return sb.String()
			}
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strings.TrimSpace(line))
	}
	return sb.String()
}

func nonEmptyLines(raw string) []string {
	split := strings.Split(raw, "\n")
	lines := make([]string, 0, len(split))
	for _, line := range split {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}
