package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/prepgenie/prepgenie-backend/internal/entity"
	usecase "github.com/prepgenie/prepgenie-backend/internal/usecase/session"
)

type stubClient struct {
	sent    []tgbotapi.Chattable
	fileURL string
}

func (s *stubClient) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	s.sent = append(s.sent, c)
	return tgbotapi.Message{}, nil
}

func (s *stubClient) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (s *stubClient) GetFileDirectURL(string) (string, error) {
	return s.fileURL, nil
}

func (s *stubClient) lastText(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, s.sent)
	msg, ok := s.sent[len(s.sent)-1].(tgbotapi.MessageConfig)
	require.True(t, ok)
	return msg.Text
}

type stubSessionUsecase struct {
	session *entity.Session
	err     error

	dictationIndex int
	dictationAudio []byte
}

func (s *stubSessionUsecase) StartSession(context.Context, *entity.StartSessionRequest) (*entity.Session, error) {
	return s.session, s.err
}

func (s *stubSessionUsecase) GetSession(context.Context, string) (*entity.Session, error) {
	return s.session, s.err
}

func (s *stubSessionUsecase) DeleteSession(context.Context, string) error {
	return s.err
}

func (s *stubSessionUsecase) SelectMode(context.Context, string, entity.Mode) (*entity.Session, error) {
	return s.session, s.err
}

func (s *stubSessionUsecase) Navigate(context.Context, string, string) (*entity.Session, error) {
	return s.session, s.err
}

func (s *stubSessionUsecase) SetAnswer(context.Context, string, int, string) (*entity.Session, error) {
	return s.session, s.err
}

func (s *stubSessionUsecase) AppendDictation(_ context.Context, _ string, index int, audio []byte, _ string) (*entity.Session, error) {
	s.dictationIndex = index
	s.dictationAudio = audio
	return s.session, s.err
}

func (s *stubSessionUsecase) MoreQuestions(context.Context, string, entity.Category) (*entity.Session, error) {
	return s.session, s.err
}

func (s *stubSessionUsecase) SubmitForEvaluation(context.Context, string, string, string) (*entity.Session, error) {
	return s.session, s.err
}

func (s *stubSessionUsecase) GetEvaluations(context.Context, string) ([]entity.EvaluationResult, error) {
	return nil, s.err
}

func practiceSession() *entity.Session {
	return &entity.Session{
		ID:           "sess-1",
		Mode:         entity.ModePractice,
		CurrentIndex: 0,
		Questions: []entity.Question{
			{Text: "How would you design a rate limiter?", Category: entity.CategoryTechnical},
		},
		Answers: []string{""},
	}
}

func newTestBot(client *stubClient, uc SessionUsecase) *Bot {
	return &Bot{
		client:    client,
		states:    NewStateStore(time.Hour, time.Hour),
		sessionUC: uc,
		logger:    zap.NewNop(),
	}
}

func voiceMessage(chatID int64) *tgbotapi.Message {
	return &tgbotapi.Message{
		Chat:  &tgbotapi.Chat{ID: chatID},
		Voice: &tgbotapi.Voice{FileID: "voice-file-1"},
	}
}

func TestVoiceMessageAppendsDictation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("opus-bytes"))
	}))
	defer server.Close()

	client := &stubClient{fileURL: server.URL}
	uc := &stubSessionUsecase{session: practiceSession()}
	bot := newTestBot(client, uc)
	bot.states.Set(&ChatState{ChatID: 42, SessionID: "sess-1", Stage: StageQuestions})

	bot.handleMessage(context.Background(), voiceMessage(42))

	assert.Equal(t, usecase.CurrentQuestion, uc.dictationIndex)
	assert.Equal(t, []byte("opus-bytes"), uc.dictationAudio)
	assert.Contains(t, client.lastText(t), "Transcript added to question 1")
}

func TestVoiceMessageWhenSpeechUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("opus-bytes"))
	}))
	defer server.Close()

	client := &stubClient{fileURL: server.URL}
	uc := &stubSessionUsecase{err: entity.ErrSpeechUnavailable}
	bot := newTestBot(client, uc)
	bot.states.Set(&ChatState{ChatID: 42, SessionID: "sess-1", Stage: StageQuestions})

	bot.handleMessage(context.Background(), voiceMessage(42))

	assert.Contains(t, client.lastText(t), "Voice input is not available")
}

func TestVoiceMessageBeforeQuestions(t *testing.T) {
	client := &stubClient{}
	uc := &stubSessionUsecase{session: practiceSession()}
	bot := newTestBot(client, uc)
	bot.states.Set(&ChatState{ChatID: 42, Stage: StageJobTitle})

	bot.handleMessage(context.Background(), voiceMessage(42))

	assert.Nil(t, uc.dictationAudio)
	assert.Contains(t, client.lastText(t), "Finish the setup first")
}

func TestTextAnswerRecorded(t *testing.T) {
	client := &stubClient{}
	uc := &stubSessionUsecase{session: practiceSession()}
	bot := newTestBot(client, uc)
	bot.states.Set(&ChatState{ChatID: 42, SessionID: "sess-1", Stage: StageQuestions})

	bot.handleMessage(context.Background(), &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: 42},
		Text: "I would use a token bucket.",
	})

	assert.Contains(t, client.lastText(t), "Answer saved for question 1")
}
