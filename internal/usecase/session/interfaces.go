package session

import (
	"context"

	"github.com/prepgenie/prepgenie-backend/internal/entity"
)

type LLMConnector interface {
	GenerateQuestions(ctx context.Context, req *entity.LLMGenerateQuestionsRequest) (*entity.LLMGenerateQuestionsResponse, error)
	GenerateMoreQuestions(ctx context.Context, req *entity.LLMGenerateMoreQuestionsRequest) (*entity.LLMGenerateMoreQuestionsResponse, error)
	EvaluateAnswers(ctx context.Context, req *entity.LLMEvaluateAnswersRequest) (*entity.LLMEvaluateAnswersResponse, error)
}

type SpeechConnector interface {
	Available() bool
	TranscribeOnce(ctx context.Context, audioData []byte, filename string) (string, error)
	Speak(ctx context.Context, text string) (bool, error)
}

type CallbackConnector interface {
	SendEvaluations(ctx context.Context, callbackURL string, requestID string, data *entity.CallbackEvaluationsData)
	SendError(ctx context.Context, callbackURL string, requestID string, message string, details map[string]any)
}
