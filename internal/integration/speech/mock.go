package speech

import (
	"context"
	"fmt"
	"sync"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector fakes the speech service for local runs and tests.
type MockConnector struct {
	logger *zap.Logger

	mu       sync.Mutex
	speaking bool
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Available() bool {
	return true
}

func (m *MockConnector) TranscribeOnce(ctx context.Context, audioData []byte, filename string) (string, error) {
	if len(audioData) == 0 {
		return "", fmt.Errorf("empty audio data provided")
	}

	ctxzap.Info(ctx, "[MOCK] transcribing audio",
		zap.String("filename", filename),
		zap.Int("size", len(audioData)),
	)

	return "I would start by reproducing the issue in a staging environment and narrowing it down with structured logging.", nil
}

func (m *MockConnector) Speak(ctx context.Context, text string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.speaking {
		m.speaking = false
		ctxzap.Info(ctx, "[MOCK] playback cancelled")
		return true, nil
	}

	m.speaking = true
	ctxzap.Info(ctx, "[MOCK] playback started", zap.Int("text_length", len(text)))
	return false, nil
}
