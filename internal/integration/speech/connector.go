package speech

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"mime/multipart"
	"net/http"
	"sync"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/prepgenie/prepgenie-backend/internal/config"
	"github.com/prepgenie/prepgenie-backend/internal/entity"
	"github.com/prepgenie/prepgenie-backend/internal/integration/common"
	pkghttp "github.com/prepgenie/prepgenie-backend/pkg/http"
)

// Connector talks to the speech service for single-shot transcription and
// text-to-speech playback. Playback acts as a toggle: a Speak call while a
// previous one is still playing cancels it and does nothing further.
type Connector struct {
	config    config.SpeechConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger

	mu             sync.Mutex
	cancelSpeaking context.CancelFunc
}

func NewConnector(
	cfg config.SpeechConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

func (c *Connector) Available() bool {
	return c.config.Enabled
}

// TranscribeOnce sends one audio clip for a single-shot (non-continuous)
// transcription.
func (c *Connector) TranscribeOnce(ctx context.Context, audioData []byte, filename string) (string, error) {
	if !c.config.Enabled {
		return "", entity.ErrSpeechUnavailable
	}

	if len(audioData) == 0 {
		return "", fmt.Errorf("empty audio data provided")
	}

	hash := sha256.Sum256(audioData)
	checksum := hex.EncodeToString(hash[:])

	ctxzap.Info(ctx, "transcribing audio via speech service",
		zap.String("filename", filename),
		zap.String("checksum", checksum),
		zap.Int("size", len(audioData)),
	)

	prepareBody := func(writer *multipart.Writer) error {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}

		if _, err := part.Write(audioData); err != nil {
			return fmt.Errorf("write file content: %w", err)
		}

		if err := writer.WriteField("checksum", checksum); err != nil {
			return fmt.Errorf("write checksum field: %w", err)
		}

		return nil
	}

	var resp entity.SpeechTranscribeResponse
	err := retry.Do(func() error {
		return c.connector.DoMultipartRequest(ctx, http.MethodPost, c.config.TranscribeEndpoint, prepareBody, &resp)
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx), retry.RetryIf(common.Retriable))...)
	if err != nil {
		return "", fmt.Errorf("failed to transcribe audio: %w", err)
	}

	ctxzap.Info(ctx, "audio transcribed successfully", zap.Int("transcript_length", len(resp.Transcript)))

	return resp.Transcript, nil
}

// Speak synthesizes text once. When a previous playback is still running it
// is cancelled instead and no new playback starts; the returned bool reports
// that stop case.
func (c *Connector) Speak(ctx context.Context, text string) (bool, error) {
	if !c.config.Enabled {
		return false, entity.ErrSpeechUnavailable
	}

	c.mu.Lock()
	if c.cancelSpeaking != nil {
		c.cancelSpeaking()
		c.cancelSpeaking = nil
		c.mu.Unlock()
		ctxzap.Info(ctx, "playback cancelled")
		return true, nil
	}

	playCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c.cancelSpeaking = cancel
	c.mu.Unlock()

	go func() {
		defer func() {
			c.mu.Lock()
			c.cancelSpeaking = nil
			c.mu.Unlock()
		}()

		req := &entity.SpeechSynthesizeRequest{Text: text}
		err := c.connector.DoRequest(playCtx, http.MethodPost, c.config.SynthesizeEndpoint, req, nil)
		if err != nil {
			ctxzap.Error(playCtx, "synthesize request failed", zap.Error(err))
		}
	}()

	ctxzap.Info(ctx, "playback started", zap.Int("text_length", len(text)))
	return false, nil
}
