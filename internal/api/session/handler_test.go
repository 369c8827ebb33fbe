package session

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepgenie/prepgenie-backend/internal/config"
	"github.com/prepgenie/prepgenie-backend/internal/entity"
	"github.com/prepgenie/prepgenie-backend/internal/pkg/validator"
)

type stubUsecase struct {
	session     *entity.Session
	evaluations []entity.EvaluationResult
	err         error
	available   bool
}

func (s *stubUsecase) StartSession(context.Context, *entity.StartSessionRequest) (*entity.Session, error) {
	return s.session, s.err
}

func (s *stubUsecase) GetSession(context.Context, string) (*entity.Session, error) {
	return s.session, s.err
}

func (s *stubUsecase) DeleteSession(context.Context, string) error {
	return s.err
}

func (s *stubUsecase) SelectMode(context.Context, string, entity.Mode) (*entity.Session, error) {
	return s.session, s.err
}

func (s *stubUsecase) Navigate(context.Context, string, string) (*entity.Session, error) {
	return s.session, s.err
}

func (s *stubUsecase) SetAnswer(context.Context, string, int, string) (*entity.Session, error) {
	return s.session, s.err
}

func (s *stubUsecase) AppendDictation(context.Context, string, int, []byte, string) (*entity.Session, error) {
	return s.session, s.err
}

func (s *stubUsecase) MoreQuestions(context.Context, string, entity.Category) (*entity.Session, error) {
	return s.session, s.err
}

func (s *stubUsecase) SubmitForEvaluation(context.Context, string, string, string) (*entity.Session, error) {
	return s.session, s.err
}

func (s *stubUsecase) ToggleResults(context.Context, string) (*entity.Session, error) {
	return s.session, s.err
}

func (s *stubUsecase) GetEvaluations(context.Context, string) ([]entity.EvaluationResult, error) {
	return s.evaluations, s.err
}

func (s *stubUsecase) ExportResults(context.Context, string, entity.ResultFormat) ([]byte, string, string, error) {
	if s.err != nil {
		return nil, "", "", s.err
	}
	return []byte("# Interview Evaluation Results"), "interview-results-test.md", "text/markdown; charset=utf-8", nil
}

func (s *stubUsecase) Speak(context.Context, string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return false, nil
}

func (s *stubUsecase) SpeechAvailable() bool {
	return s.available
}

func testSession() *entity.Session {
	now := time.Now().UTC()
	return &entity.Session{
		ID:           "sess-1",
		Mode:         entity.ModePractice,
		CurrentIndex: 0,
		Questions: []entity.Question{
			{Text: "How would you design a rate limiter?", Category: entity.CategoryTechnical},
		},
		Answers:   []string{""},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newTestRouter(uc SessionUsecase) http.Handler {
	uploadCfg := config.FileUploadConfig{
		MaxResumeSize:    5 << 20,
		MaxAudioFileSize: 25 << 20,
		MaxUploadSize:    32 << 20,
	}
	h := NewHandler(uc, validator.NewValidator(uploadCfg), uploadCfg)

	r := chi.NewRouter()
	RegisterRoutes(r, h)
	return r
}

func TestStartSessionEndpoint(t *testing.T) {
	router := newTestRouter(&stubUsecase{session: testSession()})

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("jobTitle", "Backend Engineer"))
	require.NoError(t, writer.WriteField("jobDescription", "Build Go services."))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/practice-session", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var dto entity.SessionDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, "sess-1", dto.ID)
	assert.Len(t, dto.Questions, 1)
}

func TestStartSessionRejectsBadResumeExtension(t *testing.T) {
	router := newTestRouter(&stubUsecase{session: testSession()})

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("jobTitle", "Backend Engineer"))
	require.NoError(t, writer.WriteField("jobDescription", "Build Go services."))
	part, err := writer.CreateFormFile("resume", "resume.exe")
	require.NoError(t, err)
	_, err = part.Write([]byte("binary"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/practice-session", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSessionEndpoint(t *testing.T) {
	router := newTestRouter(&stubUsecase{session: testSession()})

	req := httptest.NewRequest(http.MethodGet, "/practice-session/sess-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var dto entity.SessionDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, entity.ModePractice, dto.Mode)
}

func TestGetSessionNotFoundMapsTo404(t *testing.T) {
	router := newTestRouter(&stubUsecase{err: entity.ErrSessionNotFound})

	req := httptest.NewRequest(http.MethodGet, "/practice-session/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNavigateEndpoint(t *testing.T) {
	router := newTestRouter(&stubUsecase{session: testSession()})

	req := httptest.NewRequest(http.MethodPost, "/practice-session/sess-1/navigate",
		strings.NewReader(`{"direction":"next"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEvaluateEndpointReturnsAccepted(t *testing.T) {
	session := testSession()
	session.IsEvaluating = true
	router := newTestRouter(&stubUsecase{session: session})

	req := httptest.NewRequest(http.MethodPost, "/practice-session/sess-1/evaluate", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, rec.Body.String(), `"accepted"`)
}

func TestEvaluateConflictMapsTo409(t *testing.T) {
	router := newTestRouter(&stubUsecase{err: entity.ErrEvaluationInProgress})

	req := httptest.NewRequest(http.MethodPost, "/practice-session/sess-1/evaluate", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestToggleResultsEndpoint(t *testing.T) {
	session := testSession()
	session.ShowResults = true
	router := newTestRouter(&stubUsecase{session: session})

	req := httptest.NewRequest(http.MethodPost, "/practice-session/sess-1/results/toggle", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"show_results":true`)
}

func TestToggleResultsWithoutEvaluationsMapsTo409(t *testing.T) {
	router := newTestRouter(&stubUsecase{err: entity.ErrNoEvaluations})

	req := httptest.NewRequest(http.MethodPost, "/practice-session/sess-1/results/toggle", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetEvaluationsSubstitutesPlaceholders(t *testing.T) {
	router := newTestRouter(&stubUsecase{evaluations: []entity.EvaluationResult{
		{Question: "Q", Answer: "A", Feedback: "Good.", Improvement: "", Score: ""},
	}})

	req := httptest.NewRequest(http.MethodGet, "/practice-session/sess-1/evaluations", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No specific improvement suggestions provided.")
	assert.Contains(t, rec.Body.String(), "Not provided")
}

func TestExportEndpointSetsDownloadHeaders(t *testing.T) {
	router := newTestRouter(&stubUsecase{})

	req := httptest.NewRequest(http.MethodGet, "/practice-session/sess-1/evaluations/export?format=md", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/markdown")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
}

func TestSpeechUnavailableMapsTo503(t *testing.T) {
	router := newTestRouter(&stubUsecase{err: entity.ErrSpeechUnavailable})

	req := httptest.NewRequest(http.MethodPost, "/speech/speak",
		strings.NewReader(`{"text":"What is a goroutine?"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSpeechAvailabilityEndpoint(t *testing.T) {
	router := newTestRouter(&stubUsecase{available: true})

	req := httptest.NewRequest(http.MethodGet, "/speech/availability", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"available":true`)
}
