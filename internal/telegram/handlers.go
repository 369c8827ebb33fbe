package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/prepgenie/prepgenie-backend/internal/entity"
	usecase "github.com/prepgenie/prepgenie-backend/internal/usecase/session"
)

const skipToken = "-"

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	ctx = ctxzap.ToContext(ctx, ctxzap.Extract(ctx).With(zap.Int64("chat_id", chatID)))

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	state, ok := b.states.Get(chatID)
	if !ok {
		b.reply(ctx, chatID, "Send /start to begin an interview practice session.")
		return
	}

	if msg.Voice != nil {
		if state.Stage != StageQuestions {
			b.reply(ctx, chatID, "Finish the setup first, then you can dictate answers.")
			return
		}
		b.recordDictation(ctx, state, msg.Voice)
		return
	}

	text := strings.TrimSpace(msg.Text)

	switch state.Stage {
	case StageJobTitle:
		if text == "" {
			b.reply(ctx, chatID, "Please send the job title you are preparing for.")
			return
		}
		state.JobTitle = text
		state.Stage = StageCompany
		b.states.Set(state)
		b.reply(ctx, chatID, "Which company is it? Send '-' to skip.")

	case StageCompany:
		if text != skipToken {
			state.Company = text
		}
		state.Stage = StageExperience
		b.states.Set(state)
		b.reply(ctx, chatID, "How many years of experience do you have? Send '-' to skip.")

	case StageExperience:
		if text != skipToken {
			state.Experience = text
		}
		state.Stage = StageJobDescription
		b.states.Set(state)
		b.reply(ctx, chatID, "Paste the job description.")

	case StageJobDescription:
		if text == "" {
			b.reply(ctx, chatID, "A job description is required to generate questions.")
			return
		}
		state.JobDescription = text
		b.states.Set(state)
		b.startSession(ctx, state)

	case StageQuestions:
		b.recordAnswer(ctx, state, text)

	default:
		b.reply(ctx, chatID, "Choose a mode first.")
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		b.states.Set(&ChatState{
			ChatID: chatID,
			Stage:  StageJobTitle,
		})
		b.reply(ctx, chatID, "Let's prepare for your interview. What job title are you applying for?")

	case "cancel":
		if state, ok := b.states.Get(chatID); ok && state.SessionID != "" {
			if err := b.sessionUC.DeleteSession(ctx, state.SessionID); err != nil {
				ctxzap.Error(ctx, "failed to delete session", zap.Error(err))
			}
		}
		b.states.Delete(chatID)
		b.reply(ctx, chatID, "Session discarded. Send /start to begin again.")

	case "results":
		state, ok := b.states.Get(chatID)
		if !ok || state.SessionID == "" {
			b.reply(ctx, chatID, "No active session. Send /start to begin.")
			return
		}
		b.showResults(ctx, state)

	default:
		b.reply(ctx, chatID, "Commands: /start, /results, /cancel")
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	ctx = ctxzap.ToContext(ctx, ctxzap.Extract(ctx).With(zap.Int64("chat_id", chatID)))

	// Acknowledge the button press so the client stops the spinner.
	if _, err := b.client.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		ctxzap.Error(ctx, "failed to answer callback query", zap.Error(err))
	}

	state, ok := b.states.Get(chatID)
	if !ok || state.SessionID == "" {
		b.reply(ctx, chatID, "No active session. Send /start to begin.")
		return
	}

	switch cb.Data {
	case cbModeLearn:
		b.selectMode(ctx, state, entity.ModeLearn)
	case cbModePractice:
		b.selectMode(ctx, state, entity.ModePractice)
	case cbNavNext:
		b.navigate(ctx, state, "next")
	case cbNavPrev:
		b.navigate(ctx, state, "prev")
	case cbMoreTechnical:
		b.moreQuestions(ctx, state, entity.CategoryTechnical)
	case cbMoreBehavioral:
		b.moreQuestions(ctx, state, entity.CategoryBehavioral)
	case cbEvaluate:
		b.evaluate(ctx, state)
	case cbResults:
		b.showResults(ctx, state)
	default:
		ctxzap.Warn(ctx, "unknown callback data", zap.String("data", cb.Data))
	}
}

func (b *Bot) startSession(ctx context.Context, state *ChatState) {
	b.reply(ctx, state.ChatID, "Generating interview questions, hold on...")

	session, err := b.sessionUC.StartSession(ctx, &entity.StartSessionRequest{
		JobTitle:       state.JobTitle,
		Company:        state.Company,
		Experience:     state.Experience,
		JobDescription: state.JobDescription,
	})
	if err != nil {
		ctxzap.Error(ctx, "failed to start session", zap.Error(err))
		if errors.Is(err, entity.ErrNoQuestions) {
			b.reply(ctx, state.ChatID, "No usable questions came back for this posting. Try a more detailed job description with /start.")
		} else {
			b.reply(ctx, state.ChatID, "Something went wrong while generating questions. Try again with /start.")
		}
		return
	}

	state.SessionID = session.ID
	state.Stage = StageMode
	b.states.Set(state)

	b.replyWithKeyboard(ctx, state.ChatID,
		fmt.Sprintf("Got %d questions. How do you want to practice?", len(session.Questions)),
		modeKeyboard(),
	)
}

func (b *Bot) selectMode(ctx context.Context, state *ChatState, mode entity.Mode) {
	session, err := b.sessionUC.SelectMode(ctx, state.SessionID, mode)
	if err != nil {
		b.reportError(ctx, state.ChatID, "failed to select mode", err)
		return
	}

	state.Stage = StageQuestions
	b.states.Set(state)

	b.sendQuestion(ctx, state.ChatID, session)
}

func (b *Bot) navigate(ctx context.Context, state *ChatState, direction string) {
	session, err := b.sessionUC.Navigate(ctx, state.SessionID, direction)
	if err != nil {
		b.reportError(ctx, state.ChatID, "failed to navigate", err)
		return
	}

	b.sendQuestion(ctx, state.ChatID, session)
}

func (b *Bot) recordAnswer(ctx context.Context, state *ChatState, text string) {
	if text == "" {
		return
	}

	session, err := b.sessionUC.SetAnswer(ctx, state.SessionID, usecase.CurrentQuestion, text)
	if err != nil {
		b.reportError(ctx, state.ChatID, "failed to record answer", err)
		return
	}

	b.reply(ctx, state.ChatID, fmt.Sprintf("Answer saved for question %d.", session.CurrentIndex+1))
}

// recordDictation downloads a voice message, transcribes it through the
// session use case and appends the transcript to the current answer.
func (b *Bot) recordDictation(ctx context.Context, state *ChatState, voice *tgbotapi.Voice) {
	data, err := b.downloadVoice(ctx, voice.FileID)
	if err != nil {
		ctxzap.Error(ctx, "failed to download voice message", zap.Error(err))
		b.reply(ctx, state.ChatID, "Could not fetch the voice message, please try again.")
		return
	}

	session, err := b.sessionUC.AppendDictation(ctx, state.SessionID, usecase.CurrentQuestion, data, "voice.ogg")
	if err != nil {
		if errors.Is(err, entity.ErrSpeechUnavailable) {
			b.reply(ctx, state.ChatID, "Voice input is not available right now, please type your answer.")
			return
		}
		b.reportError(ctx, state.ChatID, "failed to append dictation", err)
		return
	}

	b.reply(ctx, state.ChatID, fmt.Sprintf("Transcript added to question %d.", session.CurrentIndex+1))
}

func (b *Bot) downloadVoice(ctx context.Context, fileID string) ([]byte, error) {
	url, err := b.client.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("resolve file url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download voice file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download voice file: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read voice file: %w", err)
	}
	return data, nil
}

func (b *Bot) moreQuestions(ctx context.Context, state *ChatState, category entity.Category) {
	session, err := b.sessionUC.MoreQuestions(ctx, state.SessionID, category)
	if err != nil {
		b.reportError(ctx, state.ChatID, "failed to add questions", err)
		return
	}

	b.reply(ctx, state.ChatID, fmt.Sprintf("Added more %s questions, %d total now.",
		strings.ToLower(string(category)), len(session.Questions)))
	b.sendQuestion(ctx, state.ChatID, session)
}

func (b *Bot) evaluate(ctx context.Context, state *ChatState) {
	_, err := b.sessionUC.SubmitForEvaluation(ctx, state.SessionID, "", uuid.New().String())
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrNoAnsweredQuestions):
			b.reply(ctx, state.ChatID, "Answer at least one question before requesting an evaluation.")
		case errors.Is(err, entity.ErrEvaluationInProgress):
			b.reply(ctx, state.ChatID, "An evaluation is already running, check back shortly.")
		default:
			b.reportError(ctx, state.ChatID, "failed to submit evaluation", err)
		}
		return
	}

	b.replyWithKeyboard(ctx, state.ChatID,
		"Evaluating your answers. Tap the button below in a moment.",
		resultsKeyboard(),
	)
}

func (b *Bot) showResults(ctx context.Context, state *ChatState) {
	results, err := b.sessionUC.GetEvaluations(ctx, state.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrEvaluationInProgress):
			b.replyWithKeyboard(ctx, state.ChatID, "Still evaluating, try again in a moment.", resultsKeyboard())
		case errors.Is(err, entity.ErrNoEvaluations):
			b.reply(ctx, state.ChatID, "No evaluation results yet. Answer questions and tap Evaluate first.")
		default:
			b.reportError(ctx, state.ChatID, "failed to fetch results", err)
		}
		return
	}

	b.reply(ctx, state.ChatID, renderEvaluations(results))
}

func (b *Bot) sendQuestion(ctx context.Context, chatID int64, session *entity.Session) {
	if len(session.Questions) == 0 {
		b.reply(ctx, chatID, "The session has no questions.")
		return
	}

	// Learn mode shows the full list; only practice steps question by question.
	if session.Mode == entity.ModeLearn {
		b.replyWithKeyboard(ctx, chatID, renderQuestionList(session), learnKeyboard())
		return
	}

	b.replyWithKeyboard(ctx, chatID, renderQuestion(session), questionKeyboard())
}

func (b *Bot) reportError(ctx context.Context, chatID int64, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	if errors.Is(err, entity.ErrSessionNotFound) {
		b.states.Delete(chatID)
		b.reply(ctx, chatID, "Your session expired. Send /start to begin a new one.")
		return
	}
	b.reply(ctx, chatID, "Something went wrong, please try again.")
}
