package llm

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/prepgenie/prepgenie-backend/internal/entity"
)

// MockConnector is the canned LLM used when ENABLE_MOCKS is set. Its output
// deliberately mixes headings, preambles and questions so the classification
// pipeline gets exercised end to end.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) GenerateQuestions(ctx context.Context, req *entity.LLMGenerateQuestionsRequest) (
	*entity.LLMGenerateQuestionsResponse, error,
) {
	ctxzap.Info(ctx, "[MOCK] generating questions via LLM", zap.String("job_title", req.JobTitle))

	resp := &entity.LLMGenerateQuestionsResponse{
		Questions: []string{
			"Here are interview questions for the " + req.JobTitle + " position:",
			"Technical Questions:",
			"1. What algorithm would you use to detect a cycle in a linked list, and how would you implement it in code?",
			"2. How would you design a system architecture that scales to one million concurrent users?",
			"3. Walk me through your process for debugging a memory leak in a production service.",
			"4. Which framework would you pick for building a REST API and why?",
			"5. Explain how you would implement rate limiting for a public API.",
			"Behavioral Questions:",
			"6. Tell me about a time you resolved a conflict within your team.",
			"7. Describe a time you had to take leadership of a struggling project.",
			"8. How do you handle disagreement with a senior colleague about technical direction?",
			"9. What would you do if a teammate consistently missed deadlines?",
			"10. Tell me about a situation where teamwork made the difference between success and failure.",
		},
	}

	ctxzap.Info(ctx, "[MOCK] questions generated", zap.Int("line_count", len(resp.Questions)))
	return resp, nil
}

func (m *MockConnector) GenerateMoreQuestions(ctx context.Context, req *entity.LLMGenerateMoreQuestionsRequest) (
	*entity.LLMGenerateMoreQuestionsResponse, error,
) {
	ctxzap.Info(ctx, "[MOCK] generating more questions via LLM", zap.String("type", req.Type))

	var questions []string
	switch req.Type {
	case "behavioral":
		questions = []string{
			"Describe a time you had to deliver difficult feedback to a peer.",
			"Tell me about a project where leadership was required from everyone involved.",
			"How do you handle shifting priorities late in a delivery cycle?",
		}
	default:
		questions = []string{
			"How would you debug an intermittent failure that only reproduces under load?",
			"What trade-offs would you consider when choosing between SQL and NoSQL for a new system?",
			"Explain how you would design an API versioning strategy for a long-lived service.",
		}
	}

	ctxzap.Info(ctx, "[MOCK] more questions generated", zap.Int("line_count", len(questions)))
	return &entity.LLMGenerateMoreQuestionsResponse{NewQuestions: questions}, nil
}

func (m *MockConnector) EvaluateAnswers(ctx context.Context, req *entity.LLMEvaluateAnswersRequest) (
	*entity.LLMEvaluateAnswersResponse, error,
) {
	ctxzap.Info(ctx, "[MOCK] evaluating answers via LLM", zap.Int("pair_count", len(req.QAPairs)))

	evaluations := make([]entity.RawEvaluation, 0, len(req.QAPairs))
	for i, pair := range req.QAPairs {
		var passage string
		// Alternate between labeled and unlabeled passages so the
		// extraction fallbacks stay covered in manual testing.
		if i%2 == 0 {
			passage = "Feedback: Clear structure with a concrete example, though the conclusion trails off.\n" +
				"Improvement: Close with the measurable outcome of your work.\n" +
				"Score: 7/10"
		} else {
			passage = fmt.Sprintf("A reasonable answer to %q that covers the basics, 6 out of 10.", pair.Question)
		}

		evaluations = append(evaluations, entity.RawEvaluation{
			Question:   pair.Question,
			Answer:     pair.Answer,
			Evaluation: passage,
		})
	}

	ctxzap.Info(ctx, "[MOCK] answers evaluated", zap.Int("evaluation_count", len(evaluations)))
	return &entity.LLMEvaluateAnswersResponse{Evaluations: evaluations}, nil
}
