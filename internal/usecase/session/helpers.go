package session

import (
	"fmt"
	"strings"

	"github.com/prepgenie/prepgenie-backend/internal/entity"
	"github.com/prepgenie/prepgenie-backend/internal/evaluation"
	"github.com/prepgenie/prepgenie-backend/internal/question"
)

// reclassify reruns the classification pipeline over the whole raw pool and
// rebuilds the practice sequence. Answer buffers carry over by position and
// the current index clamps back into range.
func reclassify(session *entity.Session) {
	classification := question.Classify(session.RawQuestions)

	answers := make([]string, len(classification.Filtered))
	copy(answers, session.Answers)

	session.Questions = classification.Filtered
	session.Answers = answers

	if session.CurrentIndex >= len(session.Questions) && len(session.Questions) > 0 {
		session.CurrentIndex = len(session.Questions) - 1
	}
	if session.CurrentIndex < 0 {
		session.CurrentIndex = 0
	}
}

// collectQAPairs pairs every question with its trimmed answer, dropping
// questions whose buffer is empty or whitespace.
func collectQAPairs(session *entity.Session) []entity.QAPair {
	pairs := make([]entity.QAPair, 0, len(session.Questions))
	for i, q := range session.Questions {
		if i >= len(session.Answers) {
			break
		}
		answer := strings.TrimSpace(session.Answers[i])
		if answer == "" {
			continue
		}
		pairs = append(pairs, entity.QAPair{
			Question: q.Text,
			Answer:   answer,
		})
	}
	return pairs
}

// EvaluationDTOs converts stored results into their display form, substituting
// placeholder text for fields the extractor left empty.
func EvaluationDTOs(results []entity.EvaluationResult) []entity.EvaluationResultDTO {
	dtos := make([]entity.EvaluationResultDTO, 0, len(results))
	for _, r := range results {
		dtos = append(dtos, entity.EvaluationResultDTO{
			Question:    r.Question,
			Answer:      r.Answer,
			Feedback:    orPlaceholder(r.Feedback, evaluation.PlaceholderFeedback),
			Improvement: orPlaceholder(r.Improvement, evaluation.PlaceholderImprovement),
			Score:       orPlaceholder(r.Score, evaluation.PlaceholderScore),
		})
	}
	return dtos
}

func orPlaceholder(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}

// renderResultsText lays the results out as plain text for the export
// formatters.
func renderResultsText(results []entity.EvaluationResult) string {
	var sb strings.Builder
	for i, dto := range EvaluationDTOs(results) {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "Question %d: %s\n", i+1, dto.Question)
		fmt.Fprintf(&sb, "Your Answer: %s\n", dto.Answer)
		fmt.Fprintf(&sb, "Feedback: %s\n", dto.Feedback)
		fmt.Fprintf(&sb, "Improvement: %s\n", dto.Improvement)
		fmt.Fprintf(&sb, "Score: %s\n", dto.Score)
	}
	return sb.String()
}

func shortID(sessionID string) string {
	if len(sessionID) > 8 {
		return sessionID[:8]
	}
	return sessionID
}
