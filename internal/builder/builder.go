package builder

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/prepgenie/prepgenie-backend/internal/api"
	sessionapi "github.com/prepgenie/prepgenie-backend/internal/api/session"
	"github.com/prepgenie/prepgenie-backend/internal/config"
	"github.com/prepgenie/prepgenie-backend/internal/integration/callback"
	"github.com/prepgenie/prepgenie-backend/internal/integration/llm"
	"github.com/prepgenie/prepgenie-backend/internal/integration/speech"
	"github.com/prepgenie/prepgenie-backend/internal/pkg/formatter"
	"github.com/prepgenie/prepgenie-backend/internal/pkg/validator"
	"github.com/prepgenie/prepgenie-backend/internal/repository"
	"github.com/prepgenie/prepgenie-backend/internal/telegram"
	"github.com/prepgenie/prepgenie-backend/internal/usecase/session"
)

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	sessionUC := buildSessionUsecase(cfg, logger)
	logger.Info("Use cases initialized")

	fileValidator := validator.NewValidator(cfg.FileUploadCfg)
	sessionHandler := sessionapi.NewHandler(sessionUC, fileValidator, cfg.FileUploadCfg)
	logger.Info("API handlers initialized")

	router := api.SetupRouter(sessionHandler, logger)
	logger.Info("HTTP router configured")

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (*telegram.Bot, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	sessionUC := buildSessionUsecase(cfg, logger)
	logger.Info("Use cases initialized")

	states := telegram.NewStateStore(cfg.SessionTTL, cfg.SessionCleanupInterval)

	bot, err := telegram.NewBot(&cfg.TelegramCfg, states, sessionUC, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, logger, nil
}

func buildSessionUsecase(cfg *config.Config, logger *zap.Logger) *session.SessionUsecase {
	sessionRepo := repository.NewSessionMemory(cfg.SessionTTL, cfg.SessionCleanupInterval)
	logger.Info("Session store initialized",
		zap.Duration("ttl", cfg.SessionTTL),
		zap.Duration("cleanup_interval", cfg.SessionCleanupInterval),
	)

	callbackConnector := callback.NewConnector(cfg.CallbackConnectorCfg, logger)

	var llmConnector session.LLMConnector
	var speechConnector session.SpeechConnector

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		llmConnector = llm.NewMockConnector(logger)
		speechConnector = speech.NewMockConnector(logger)
	} else {
		logger.Info("Using real connectors for external services")
		llmConnector = llm.NewConnector(cfg.LLMConnectorCfg, logger)
		speechConnector = speech.NewConnector(cfg.SpeechConnectorCfg, logger)
	}

	fileValidator := validator.NewValidator(cfg.FileUploadCfg)

	return session.NewUsecase(
		sessionRepo,
		fileValidator,
		llmConnector,
		speechConnector,
		callbackConnector,
		formatter.NewFactory(),
		logger,
	)
}
