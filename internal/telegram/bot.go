package telegram

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/prepgenie/prepgenie-backend/internal/config"
	"github.com/prepgenie/prepgenie-backend/internal/entity"
)

// SessionUsecase is the slice of the session use case the bot needs.
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
	GetEvaluations(ctx context.Context, sessionID string) ([]entity.EvaluationResult, error)
}

// telegramClient is the slice of the Bot API client the handlers use: sending
// messages, answering callback queries and resolving file downloads.
type telegramClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

// Bot is a Telegram front end for practice sessions: it collects the job
// posting fields in a short dialogue, then drives the same session operations
// the HTTP API exposes.
type Bot struct {
	api       *tgbotapi.BotAPI
	client    telegramClient
	cfg       *config.TelegramConfig
	states    *StateStore
	sessionUC SessionUsecase
	logger    *zap.Logger

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewBot creates a new Telegram bot
func NewBot(
	cfg *config.TelegramConfig,
	states *StateStore,
	sessionUC SessionUsecase,
	logger *zap.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	api.Debug = false

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	return &Bot{
		api:       api,
		client:    api,
		cfg:       cfg,
		states:    states,
		sessionUC: sessionUC,
		logger:    logger,
		stopChan:  make(chan struct{}),
	}, nil
}

// Start starts the update loop
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	updates := b.api.GetUpdatesChan(u)

	ctx = ctxzap.ToContext(ctx, b.logger)
	go b.processUpdates(ctx, updates)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops the bot gracefully with timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	close(b.stopChan)
	b.api.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped")
	return nil
}

func (b *Bot) processUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-b.stopChan:
			return
		case update, ok := <-updates:
			if !ok {
				return
			}

			b.wg.Add(1)
			go func(update tgbotapi.Update) {
				defer b.wg.Done()
				defer func() {
					if r := recover(); r != nil {
						ctxzap.Error(ctx, "panic while handling update", zap.Any("panic", r))
					}
				}()

				b.handleUpdate(ctx, update)
			}(update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) send(ctx context.Context, msg tgbotapi.Chattable) {
	if _, err := b.client.Send(msg); err != nil {
		ctxzap.Error(ctx, "failed to send telegram message", zap.Error(err))
	}
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	b.send(ctx, tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) replyWithKeyboard(ctx context.Context, chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	b.send(ctx, msg)
}
