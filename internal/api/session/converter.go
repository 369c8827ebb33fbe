package session

import (
	"github.com/prepgenie/prepgenie-backend/internal/entity"
	usecase "github.com/prepgenie/prepgenie-backend/internal/usecase/session"
)

// toSessionDTO converts Session entity to SessionDTO
func toSessionDTO(session *entity.Session) *entity.SessionDTO {
	questions := make([]entity.QuestionDTO, 0, len(session.Questions))
	for _, q := range session.Questions {
		questions = append(questions, entity.QuestionDTO{
			Text:     q.Text,
			Category: q.Category,
		})
	}

	return &entity.SessionDTO{
		ID:             session.ID,
		Mode:           session.Mode,
		CurrentIndex:   session.CurrentIndex,
		Questions:      questions,
		Answers:        session.Answers,
		IsEvaluating:   session.IsEvaluating,
		ShowResults:    session.ShowResults,
		HasEvaluations: len(session.Evaluations) > 0,
		CreatedAt:      session.CreatedAt,
		UpdatedAt:      session.UpdatedAt,
	}
}

// toEvaluationDTOs converts stored results to display form with placeholders.
func toEvaluationDTOs(results []entity.EvaluationResult) []entity.EvaluationResultDTO {
	return usecase.EvaluationDTOs(results)
}
