package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	pkgRetry "github.com/prepgenie/prepgenie-backend/internal/pkg/retry"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR,notEmpty"`

	// Session store configuration
	SessionTTL             time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	SessionCleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"10m"`

	// External service configurations
	LLMConnectorCfg      LLMConnectorConfig      `envPrefix:"LLM_"`
	SpeechConnectorCfg   SpeechConnectorConfig   `envPrefix:"SPEECH_"`
	CallbackConnectorCfg CallbackConnectorConfig `envPrefix:"CALLBACK_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL,notEmpty"`

	// File upload configuration
	FileUploadCfg FileUploadConfig `envPrefix:"FILE_UPLOAD_"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Telegram bot configuration (only read by the telegram-bot binary)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken        string `env:"BOT_TOKEN"`
	UpdateTimeout   int    `env:"UPDATE_TIMEOUT" envDefault:"30"`
	ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"` // seconds
}

type LLMConnectorConfig struct {
	HTTPClientConfig
	GenerateQuestionsEndpoint     string               `env:"GENERATE_QUESTIONS_ENDPOINT,notEmpty"`
	GenerateMoreQuestionsEndpoint string               `env:"GENERATE_MORE_QUESTIONS_ENDPOINT,notEmpty"`
	EvaluateAnswersEndpoint       string               `env:"EVALUATE_ANSWERS_ENDPOINT,notEmpty"`
	Retry                         pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type SpeechConnectorConfig struct {
	HTTPClientConfig
	// Enabled marks the speech service as present. When false, dictation and
	// playback report a non-fatal unavailable condition.
	Enabled            bool                 `env:"ENABLED" envDefault:"false"`
	TranscribeEndpoint string               `env:"TRANSCRIBE_ENDPOINT"`
	SynthesizeEndpoint string               `env:"SYNTHESIZE_ENDPOINT"`
	Retry              pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type CallbackConnectorConfig struct {
	HTTPClientConfig
	Retry pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"60s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL"`
}

// FileUploadConfig holds file upload limits
type FileUploadConfig struct {
	MaxResumeSize    int64 `env:"MAX_RESUME_SIZE" envDefault:"5242880"`      // 5 MiB
	MaxAudioFileSize int64 `env:"MAX_AUDIO_FILE_SIZE" envDefault:"26214400"` // 25 MiB
	MaxUploadSize    int64 `env:"MAX_UPLOAD_SIZE" envDefault:"33554432"`     // 32 MiB
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.SessionTTL < time.Minute {
		return fmt.Errorf("SESSION_TTL must be at least 1m, got %s", cfg.SessionTTL)
	}

	if cfg.SessionCleanupInterval < time.Minute {
		return fmt.Errorf("SESSION_CLEANUP_INTERVAL must be at least 1m, got %s", cfg.SessionCleanupInterval)
	}

	if !cfg.EnableMocks && cfg.LLMConnectorCfg.Url == "" {
		return fmt.Errorf("LLM_SERVICE_URL must be set unless ENABLE_MOCKS is true")
	}

	if cfg.SpeechConnectorCfg.Enabled && cfg.SpeechConnectorCfg.Url == "" {
		return fmt.Errorf("SPEECH_SERVICE_URL must be set when SPEECH_ENABLED is true")
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
