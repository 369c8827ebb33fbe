package telegram

import (
	"fmt"
	"strings"

	"github.com/prepgenie/prepgenie-backend/internal/entity"
	usecase "github.com/prepgenie/prepgenie-backend/internal/usecase/session"
)

func renderQuestion(session *entity.Session) string {
	q := session.Questions[session.CurrentIndex]

	var sb strings.Builder
	fmt.Fprintf(&sb, "Question %d of %d", session.CurrentIndex+1, len(session.Questions))
	if q.Category == entity.CategoryTechnical {
		sb.WriteString(" [technical]\n\n")
	} else {
		sb.WriteString(" [behavioral]\n\n")
	}
	sb.WriteString(q.Text)

	if session.Mode == entity.ModePractice {
		answer := session.Answers[session.CurrentIndex]
		if answer != "" {
			fmt.Fprintf(&sb, "\n\nYour answer so far:\n%s", answer)
		} else {
			sb.WriteString("\n\nSend a message to answer this question.")
		}
	}

	return sb.String()
}

func renderQuestionList(session *entity.Session) string {
	var sb strings.Builder
	sb.WriteString("Your interview questions:\n")
	for i, q := range session.Questions {
		tag := "technical"
		if q.Category == entity.CategoryBehavioral {
			tag = "behavioral"
		}
		fmt.Fprintf(&sb, "\n%d. [%s] %s", i+1, tag, q.Text)
	}
	return sb.String()
}

func renderEvaluations(results []entity.EvaluationResult) string {
	var sb strings.Builder
	sb.WriteString("Interview Evaluation Results\n")
	for i, dto := range usecase.EvaluationDTOs(results) {
		fmt.Fprintf(&sb, "\n%d. %s\n", i+1, dto.Question)
		fmt.Fprintf(&sb, "Feedback: %s\n", dto.Feedback)
		fmt.Fprintf(&sb, "Improvement: %s\n", dto.Improvement)
		fmt.Fprintf(&sb, "Score: %s\n", dto.Score)
	}
	return sb.String()
}
