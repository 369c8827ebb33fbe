package llm

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/prepgenie/prepgenie-backend/internal/config"
	"github.com/prepgenie/prepgenie-backend/internal/entity"
	"github.com/prepgenie/prepgenie-backend/internal/integration/common"
	pkghttp "github.com/prepgenie/prepgenie-backend/pkg/http"
)

type Connector struct {
	config    config.LLMConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// GenerateQuestions requests the initial question pool for a job posting.
// The resume file is forwarded as-is; text extraction happens on the
// generation service side.
func (c *Connector) GenerateQuestions(ctx context.Context, req *entity.LLMGenerateQuestionsRequest) (
	*entity.LLMGenerateQuestionsResponse, error,
) {
	ctxzap.Info(ctx, "generating questions via LLM service",
		zap.String("job_title", req.JobTitle),
	)

	prepareBody := func(writer *multipart.Writer) error {
		fields := map[string]string{
			"jobTitle":       req.JobTitle,
			"company":        req.Company,
			"experience":     req.Experience,
			"jobDescription": req.JobDescription,
			"resume":         req.ResumeText,
		}
		for name, value := range fields {
			if err := writer.WriteField(name, value); err != nil {
				return fmt.Errorf("write field %s: %w", name, err)
			}
		}

		if len(req.ResumeFile) > 0 {
			part, err := writer.CreateFormFile("resume", req.ResumeFilename)
			if err != nil {
				return fmt.Errorf("create resume part: %w", err)
			}
			if _, err := part.Write(req.ResumeFile); err != nil {
				return fmt.Errorf("write resume content: %w", err)
			}
		}

		return nil
	}

	var rawResp entity.LLMGenerateQuestionsResponse
	err := retry.Do(func() error {
		return c.connector.DoMultipartRequest(ctx, http.MethodPost, c.config.GenerateQuestionsEndpoint, prepareBody, &rawResp)
	}, c.retryOptions(ctx)...)
	if err != nil {
		return nil, fmt.Errorf("generate questions failed: %w", err)
	}

	ctxzap.Info(ctx, "questions generated successfully", zap.Int("line_count", len(rawResp.Questions)))

	return &rawResp, nil
}

// GenerateMoreQuestions requests additional questions for one category.
func (c *Connector) GenerateMoreQuestions(ctx context.Context, req *entity.LLMGenerateMoreQuestionsRequest) (
	*entity.LLMGenerateMoreQuestionsResponse, error,
) {
	ctxzap.Info(ctx, "generating more questions via LLM service",
		zap.String("type", req.Type),
	)

	prepareBody := func(writer *multipart.Writer) error {
		fields := map[string]string{
			"type":           req.Type,
			"resume":         req.ResumeText,
			"jobDescription": req.JobDescription,
		}
		for name, value := range fields {
			if err := writer.WriteField(name, value); err != nil {
				return fmt.Errorf("write field %s: %w", name, err)
			}
		}
		return nil
	}

	var resp entity.LLMGenerateMoreQuestionsResponse
	err := retry.Do(func() error {
		return c.connector.DoMultipartRequest(ctx, http.MethodPost, c.config.GenerateMoreQuestionsEndpoint, prepareBody, &resp)
	}, c.retryOptions(ctx)...)
	if err != nil {
		return nil, fmt.Errorf("generate more questions failed: %w", err)
	}

	ctxzap.Info(ctx, "more questions generated successfully", zap.Int("line_count", len(resp.NewQuestions)))

	return &resp, nil
}

// EvaluateAnswers submits question/answer pairs and returns one freeform
// evaluation passage per pair. A missing or malformed evaluations field is a
// total failure.
func (c *Connector) EvaluateAnswers(ctx context.Context, req *entity.LLMEvaluateAnswersRequest) (
	*entity.LLMEvaluateAnswersResponse, error,
) {
	ctxzap.Info(ctx, "evaluating answers via LLM service", zap.Int("pair_count", len(req.QAPairs)))

	var resp entity.LLMEvaluateAnswersResponse
	err := retry.Do(func() error {
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.EvaluateAnswersEndpoint, req, &resp)
	}, c.retryOptions(ctx)...)
	if err != nil {
		return nil, fmt.Errorf("evaluate answers failed: %w", err)
	}

	if resp.Evaluations == nil {
		return nil, fmt.Errorf("invalid evaluation response: missing evaluations field")
	}

	ctxzap.Info(ctx, "answers evaluated successfully", zap.Int("evaluation_count", len(resp.Evaluations)))

	return &resp, nil
}

func (c *Connector) retryOptions(ctx context.Context) []retry.Option {
	opts := c.config.Retry.ToRetryOptions()
	return append(opts,
		retry.Context(ctx),
		retry.RetryIf(common.Retriable),
	)
}
