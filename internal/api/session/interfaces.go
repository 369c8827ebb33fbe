package session

import (
	"context"

	"github.com/prepgenie/prepgenie-backend/internal/entity"
)

type SessionUsecase interface {
	StartSession(ctx context.Context, req *entity.StartSessionRequest) (*entity.Session, error)
	GetSession(ctx context.Context, sessionID string) (*entity.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
	SelectMode(ctx context.Context, sessionID string, mode entity.Mode) (*entity.Session, error)
	Navigate(ctx context.Context, sessionID string, direction string) (*entity.Session, error)
	SetAnswer(ctx context.Context, sessionID string, index int, answer string) (*entity.Session, error)
	AppendDictation(ctx context.Context, sessionID string, index int, audioData []byte, filename string) (*entity.Session, error)
	MoreQuestions(ctx context.Context, sessionID string, category entity.Category) (*entity.Session, error)
	SubmitForEvaluation(ctx context.Context, sessionID string, callbackURL string, requestID string) (*entity.Session, error)
	ToggleResults(ctx context.Context, sessionID string) (*entity.Session, error)
	GetEvaluations(ctx context.Context, sessionID string) ([]entity.EvaluationResult, error)
	ExportResults(ctx context.Context, sessionID string, format entity.ResultFormat) ([]byte, string, string, error)
	Speak(ctx context.Context, text string) (bool, error)
	SpeechAvailable() bool
}
