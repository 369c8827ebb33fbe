package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/prepgenie/prepgenie-backend/internal/config"
	"github.com/prepgenie/prepgenie-backend/internal/entity"
	"github.com/prepgenie/prepgenie-backend/internal/pkg/logger"
	"github.com/prepgenie/prepgenie-backend/internal/pkg/response"
	"github.com/prepgenie/prepgenie-backend/internal/pkg/validator"
	usecase "github.com/prepgenie/prepgenie-backend/internal/usecase/session"
)

type Handler struct {
	usecase   SessionUsecase
	validator *validator.Validator
	uploadCfg config.FileUploadConfig
}

func NewHandler(
	usecase SessionUsecase,
	validator *validator.Validator,
	uploadCfg config.FileUploadConfig,
) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
		uploadCfg: uploadCfg,
	}
}

// StartSession handles POST /practice-session - Start a new practice session
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StartSession")

	if err := r.ParseMultipartForm(h.uploadCfg.MaxUploadSize); err != nil {
		ctxzap.Error(ctx, "failed to parse multipart form", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	req := entity.StartSessionRequest{
		JobTitle:       r.FormValue("jobTitle"),
		Company:        r.FormValue("company"),
		Experience:     r.FormValue("experience"),
		JobDescription: r.FormValue("jobDescription"),
		ResumeText:     r.FormValue("resumeText"),
	}

	file, header, err := r.FormFile("resume")
	switch {
	case err == nil:
		defer file.Close()

		if err := h.validator.ValidateResumeFile(header); err != nil {
			ctxzap.Error(ctx, "invalid resume file", zap.Error(err))
			h.handleUsecaseError(ctx, w, err)
			return
		}

		content, err := io.ReadAll(file)
		if err != nil {
			ctxzap.Error(ctx, "failed to read resume file", zap.Error(err))
			response.Error(w, http.StatusBadRequest, "failed to read resume file")
			return
		}
		req.ResumeFile = content
		req.ResumeFilename = header.Filename
	case errors.Is(err, http.ErrMissingFile):
		// Resume is optional; generation falls back to the job description.
	default:
		ctxzap.Error(ctx, "failed to read resume part", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "failed to read resume part")
		return
	}

	ctxzap.Info(ctx, "starting practice session",
		zap.String("job_title", req.JobTitle),
		zap.Bool("has_resume_file", len(req.ResumeFile) > 0),
	)

	session, err := h.usecase.StartSession(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.JSON(w, http.StatusCreated, toSessionDTO(session))
}

// GetSession handles GET /practice-session/{id} - Get session state
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", chi.URLParam(r, "id")),
		zap.String("action", "GetSession"),
	)

	session, err := h.usecase.GetSession(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSessionDTO(session))
}

// DeleteSession handles DELETE /practice-session/{id} - Discard a session
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "DeleteSession"),
	)

	if err := h.usecase.DeleteSession(ctx, sessionID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "session deleted")
	response.Success(w, map[string]string{"message": "session deleted"})
}

// SelectMode handles POST /practice-session/{id}/mode - Switch learn/practice mode
func (h *Handler) SelectMode(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "SelectMode"),
	)

	var req entity.SelectModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateSelectMode(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.usecase.SelectMode(ctx, sessionID, req.Mode)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSessionDTO(session))
}

// Navigate handles POST /practice-session/{id}/navigate - Step through questions
func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "Navigate"),
	)

	var req entity.NavigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.usecase.Navigate(ctx, sessionID, req.Direction)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSessionDTO(session))
}

// SetAnswer handles PUT /practice-session/{id}/answer - Replace one answer buffer
func (h *Handler) SetAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "SetAnswer"),
	)

	var req entity.SetAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	index := usecase.CurrentQuestion
	if req.Index != nil {
		index = *req.Index
	}

	session, err := h.usecase.SetAnswer(ctx, sessionID, index, req.Answer)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSessionDTO(session))
}

// AppendDictation handles POST /practice-session/{id}/answer/dictation -
// Transcribe an audio clip and append it to an answer buffer
func (h *Handler) AppendDictation(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "AppendDictation"),
	)

	if err := r.ParseMultipartForm(h.uploadCfg.MaxUploadSize); err != nil {
		ctxzap.Error(ctx, "failed to parse multipart form", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		ctxzap.Error(ctx, "missing audio file", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "audio file is required")
		return
	}
	defer file.Close()

	if err := h.validator.ValidateAudioFile(header); err != nil {
		ctxzap.Error(ctx, "invalid audio file", zap.Error(err))
		h.handleUsecaseError(ctx, w, err)
		return
	}

	audioData, err := io.ReadAll(file)
	if err != nil {
		ctxzap.Error(ctx, "failed to read audio file", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "failed to read audio file")
		return
	}

	// Optional index field; the current question is the default target.
	index := usecase.CurrentQuestion
	if raw := r.FormValue("index"); raw != "" {
		index, err = strconv.Atoi(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "invalid index")
			return
		}
	}

	session, err := h.usecase.AppendDictation(ctx, sessionID, index, audioData, header.Filename)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSessionDTO(session))
}

// MoreQuestions handles POST /practice-session/{id}/questions/more -
// Request additional questions of one category
func (h *Handler) MoreQuestions(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "MoreQuestions"),
	)

	var req entity.MoreQuestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateMoreQuestions(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.usecase.MoreQuestions(ctx, sessionID, req.Category)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSessionDTO(session))
}

// Evaluate handles POST /practice-session/{id}/evaluate - Submit answers for
// asynchronous evaluation
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "Evaluate"),
	)

	// The body is optional; a callback URL may be provided for completion
	// notification.
	var req entity.EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	requestID := chimiddleware.GetReqID(ctx)

	session, err := h.usecase.SubmitForEvaluation(ctx, sessionID, req.CallbackURL, requestID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Accepted(w, map[string]any{
		"status":  "accepted",
		"message": "answers are being evaluated",
		"session": toSessionDTO(session),
	})
}

// ToggleResults handles POST /practice-session/{id}/results/toggle - Flip the
// results view
func (h *Handler) ToggleResults(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "ToggleResults"),
	)

	session, err := h.usecase.ToggleResults(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSessionDTO(session))
}

// GetEvaluations handles GET /practice-session/{id}/evaluations - Fetch results
func (h *Handler) GetEvaluations(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "GetEvaluations"),
	)

	results, err := h.usecase.GetEvaluations(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, map[string]any{
		"evaluations": toEvaluationDTOs(results),
	})
}

// ExportResults handles GET /practice-session/{id}/evaluations/export -
// Download the results as a document
func (h *Handler) ExportResults(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "ExportResults"),
	)

	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(entity.FormatMarkdown)
	}

	data, filename, contentType, err := h.usecase.ExportResults(ctx, sessionID, entity.ResultFormat(formatParam))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "results exported",
		zap.String("format", formatParam),
		zap.Int("size", len(data)),
	)

	response.File(w, contentType, filename, data)
}

// Speak handles POST /speech/speak - Toggle text-to-speech playback
func (h *Handler) Speak(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Speak")

	var req entity.SpeakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	stopped, err := h.usecase.Speak(ctx, req.Text)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	status := "speaking"
	if stopped {
		status = "stopped"
	}
	response.Success(w, map[string]string{"status": status})
}

// SpeechAvailability handles GET /speech/availability - Report speech support
func (h *Handler) SpeechAvailability(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]bool{"available": h.usecase.SpeechAvailable()})
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		h.respondError(ctx, w, http.StatusNotFound, "session not found", err)
	case errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrInvalidParameter),
		errors.Is(err, entity.ErrInvalidFile),
		errors.Is(err, entity.ErrInvalidExtension),
		errors.Is(err, entity.ErrFileTooLarge):
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, entity.ErrNoQuestions),
		errors.Is(err, entity.ErrNoAnsweredQuestions),
		errors.Is(err, entity.ErrEvaluationInProgress),
		errors.Is(err, entity.ErrNoEvaluations),
		errors.Is(err, entity.ErrWrongMode),
		errors.Is(err, entity.ErrIndexOutOfRange):
		h.respondError(ctx, w, http.StatusConflict, err.Error(), err)
	case errors.Is(err, entity.ErrSpeechUnavailable):
		h.respondError(ctx, w, http.StatusServiceUnavailable, "speech capability unavailable", err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	response.Error(w, status, message)
}
