package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/prepgenie/prepgenie-backend/internal/entity"
	"github.com/prepgenie/prepgenie-backend/internal/evaluation"
	"github.com/prepgenie/prepgenie-backend/internal/pkg/formatter"
	"github.com/prepgenie/prepgenie-backend/internal/pkg/validator"
	"github.com/prepgenie/prepgenie-backend/internal/question"
	"github.com/prepgenie/prepgenie-backend/internal/repository"
)

// SessionUsecase implements the practice session business logic: question
// generation and classification, mode selection, clamped navigation, answer
// buffers, dictation append and asynchronous evaluation.
type SessionUsecase struct {
	sessionRepo       repository.SessionRepository
	validator         *validator.Validator
	llmConnector      LLMConnector
	speechConnector   SpeechConnector
	callbackConnector CallbackConnector
	formatterFactory  *formatter.Factory
	logger            *zap.Logger

	// Per-session locks serialize read-modify-write cycles against the store.
	locks sync.Map
}

// NewUsecase creates a new session use case
func NewUsecase(
	sessionRepo repository.SessionRepository,
	validator *validator.Validator,
	llmConnector LLMConnector,
	speechConnector SpeechConnector,
	callbackConnector CallbackConnector,
	formatterFactory *formatter.Factory,
	logger *zap.Logger,
) *SessionUsecase {
	return &SessionUsecase{
		sessionRepo:       sessionRepo,
		validator:         validator,
		llmConnector:      llmConnector,
		speechConnector:   speechConnector,
		callbackConnector: callbackConnector,
		formatterFactory:  formatterFactory,
		logger:            logger,
	}
}

// StartSession generates the initial question pool for a job posting, runs it
// through the classification pipeline and creates a session holding the
// filtered practice sequence.
func (uc *SessionUsecase) StartSession(ctx context.Context, req *entity.StartSessionRequest) (*entity.Session, error) {
	if err := uc.validator.ValidateStartSession(req); err != nil {
		return nil, err
	}

	resp, err := uc.llmConnector.GenerateQuestions(ctx, &entity.LLMGenerateQuestionsRequest{
		JobTitle:       req.JobTitle,
		Company:        req.Company,
		Experience:     req.Experience,
		JobDescription: req.JobDescription,
		ResumeText:     req.ResumeText,
		ResumeFile:     req.ResumeFile,
		ResumeFilename: req.ResumeFilename,
	})
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	classification := question.Classify(resp.Questions)
	if len(classification.Filtered) == 0 {
		return nil, entity.ErrNoQuestions
	}

	session := &entity.Session{
		ID:             uuid.New().String(),
		Mode:           entity.ModeLearn,
		CurrentIndex:   0,
		RawQuestions:   resp.Questions,
		Questions:      classification.Filtered,
		Answers:        make([]string, len(classification.Filtered)),
		ResumeText:     req.ResumeText,
		JobDescription: req.JobDescription,
	}

	createdSession, err := uc.sessionRepo.CreateSession(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	ctxzap.Info(ctx, "session started",
		zap.String("session_id", createdSession.ID),
		zap.Int("raw_count", len(resp.Questions)),
		zap.Int("technical_count", len(classification.Technical)),
		zap.Int("behavioral_count", len(classification.Behavioral)),
	)

	return createdSession, nil
}

// GetSession retrieves a session by ID
func (uc *SessionUsecase) GetSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	session, err := uc.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}

// DeleteSession removes a session from the store
func (uc *SessionUsecase) DeleteSession(ctx context.Context, sessionID string) error {
	if err := uc.sessionRepo.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// SelectMode switches the session between learn and practice. Only the mode
// changes: the current index, answer buffers, evaluations and the results
// flag all stay as they are, so a detour through learn mode loses nothing.
func (uc *SessionUsecase) SelectMode(ctx context.Context, sessionID string, mode entity.Mode) (*entity.Session, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}

	unlock := uc.lockSession(sessionID)
	defer unlock()

	session, err := uc.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	session.Mode = mode

	updated, err := uc.sessionRepo.UpdateSession(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	ctxzap.Info(ctx, "session mode selected",
		zap.String("session_id", sessionID),
		zap.String("mode", string(mode)),
	)

	return updated, nil
}

// Navigate moves the current question index one step. Only practice mode has
// a question pointer; learn mode shows the whole list. Navigation clamps at
// both ends instead of failing: prev on the first question and next on the
// last are no-ops.
func (uc *SessionUsecase) Navigate(ctx context.Context, sessionID string, direction string) (*entity.Session, error) {
	if err := uc.validator.ValidateNavigate(&entity.NavigateRequest{Direction: direction}); err != nil {
		return nil, err
	}

	unlock := uc.lockSession(sessionID)
	defer unlock()

	session, err := uc.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.Mode != entity.ModePractice {
		return nil, entity.ErrWrongMode
	}

	if len(session.Questions) == 0 {
		return nil, entity.ErrNoQuestions
	}

	switch direction {
	case "next":
		if session.CurrentIndex < len(session.Questions)-1 {
			session.CurrentIndex++
		}
	case "prev":
		if session.CurrentIndex > 0 {
			session.CurrentIndex--
		}
	}

	updated, err := uc.sessionRepo.UpdateSession(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	return updated, nil
}

// CurrentQuestion targets the answer buffer of the current question instead
// of an explicit index.
const CurrentQuestion = -1

// SetAnswer overwrites one answer buffer, regardless of mode. Passing
// CurrentQuestion targets the question currently shown.
func (uc *SessionUsecase) SetAnswer(ctx context.Context, sessionID string, index int, answer string) (*entity.Session, error) {
	unlock := uc.lockSession(sessionID)
	defer unlock()

	session, err := uc.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if index == CurrentQuestion {
		index = session.CurrentIndex
	}
	if index < 0 || index >= len(session.Answers) {
		return nil, entity.ErrIndexOutOfRange
	}

	session.Answers[index] = answer

	updated, err := uc.sessionRepo.UpdateSession(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	return updated, nil
}

// AppendDictation transcribes one audio clip and appends the transcript to
// one answer buffer, separated from existing text by a single space. Typed
// text is never overwritten. The per-session lock serializes concurrent
// dictations targeting the same buffer.
func (uc *SessionUsecase) AppendDictation(ctx context.Context, sessionID string, index int, audioData []byte, filename string) (*entity.Session, error) {
	transcript, err := uc.speechConnector.TranscribeOnce(ctx, audioData, filename)
	if err != nil {
		return nil, fmt.Errorf("transcribe dictation: %w", err)
	}

	unlock := uc.lockSession(sessionID)
	defer unlock()

	session, err := uc.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if index == CurrentQuestion {
		index = session.CurrentIndex
	}
	if index < 0 || index >= len(session.Answers) {
		return nil, entity.ErrIndexOutOfRange
	}

	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return session, nil
	}

	existing := session.Answers[index]
	if existing == "" {
		session.Answers[index] = transcript
	} else {
		session.Answers[index] = existing + " " + transcript
	}

	updated, err := uc.sessionRepo.UpdateSession(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	ctxzap.Info(ctx, "dictation appended",
		zap.String("session_id", sessionID),
		zap.Int("question_index", index),
		zap.Int("transcript_length", len(transcript)),
	)

	return updated, nil
}

// MoreQuestions requests additional questions of one category, appends them to
// the raw pool and re-runs the classification pipeline over the whole pool.
// Existing answer buffers carry over by position.
func (uc *SessionUsecase) MoreQuestions(ctx context.Context, sessionID string, category entity.Category) (*entity.Session, error) {
	if err := category.Validate(); err != nil {
		return nil, err
	}

	unlock := uc.lockSession(sessionID)
	defer unlock()

	session, err := uc.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.IsEvaluating {
		return nil, entity.ErrEvaluationInProgress
	}

	resp, err := uc.llmConnector.GenerateMoreQuestions(ctx, &entity.LLMGenerateMoreQuestionsRequest{
		Type:           strings.ToLower(string(category)),
		ResumeText:     session.ResumeText,
		JobDescription: session.JobDescription,
	})
	if err != nil {
		return nil, fmt.Errorf("generate more questions: %w", err)
	}

	session.RawQuestions = append(session.RawQuestions, resp.NewQuestions...)
	reclassify(session)

	updated, err := uc.sessionRepo.UpdateSession(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	ctxzap.Info(ctx, "more questions added",
		zap.String("session_id", sessionID),
		zap.String("category", string(category)),
		zap.Int("new_count", len(resp.NewQuestions)),
		zap.Int("total_count", len(updated.Questions)),
	)

	return updated, nil
}

// SubmitForEvaluation collects the answered questions and submits them for
// evaluation in the background. The call returns as soon as the session is
// marked evaluating; completion flips the flags and, when a callback URL was
// provided, posts an event there.
func (uc *SessionUsecase) SubmitForEvaluation(ctx context.Context, sessionID string, callbackURL string, requestID string) (*entity.Session, error) {
	unlock := uc.lockSession(sessionID)
	defer unlock()

	session, err := uc.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.IsEvaluating {
		return nil, entity.ErrEvaluationInProgress
	}

	pairs := collectQAPairs(session)
	if len(pairs) == 0 {
		return nil, entity.ErrNoAnsweredQuestions
	}

	session.IsEvaluating = true
	session.Evaluations = nil
	session.ShowResults = false

	updated, err := uc.sessionRepo.UpdateSession(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	ctxzap.Info(ctx, "evaluation submitted",
		zap.String("session_id", sessionID),
		zap.Int("pair_count", len(pairs)),
	)

	// The evaluation outlives the request; detach from its cancellation but
	// keep the logger and request values.
	bgCtx := context.WithoutCancel(ctx)
	go uc.runEvaluation(bgCtx, sessionID, pairs, callbackURL, requestID)

	return updated, nil
}

func (uc *SessionUsecase) runEvaluation(ctx context.Context, sessionID string, pairs []entity.QAPair, callbackURL string, requestID string) {
	resp, err := uc.llmConnector.EvaluateAnswers(ctx, &entity.LLMEvaluateAnswersRequest{QAPairs: pairs})
	if err != nil {
		ctxzap.Error(ctx, "evaluation failed",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		uc.finishEvaluation(ctx, sessionID, nil)
		if callbackURL != "" {
			uc.callbackConnector.SendError(ctx, callbackURL, requestID, "evaluation failed", map[string]any{
				"session_id": sessionID,
			})
		}
		return
	}

	results := make([]entity.EvaluationResult, 0, len(resp.Evaluations))
	for _, raw := range resp.Evaluations {
		ext := evaluation.Parse(raw.Evaluation)
		results = append(results, entity.EvaluationResult{
			Question:      raw.Question,
			Answer:        raw.Answer,
			RawEvaluation: raw.Evaluation,
			Feedback:      ext.Feedback,
			Improvement:   ext.Improvement,
			Score:         ext.Score,
		})
	}

	uc.finishEvaluation(ctx, sessionID, results)

	if callbackURL != "" {
		uc.callbackConnector.SendEvaluations(ctx, callbackURL, requestID, &entity.CallbackEvaluationsData{
			SessionID:   sessionID,
			Evaluations: EvaluationDTOs(results),
		})
	}
}

// finishEvaluation clears the evaluating flag and, when results are present,
// stores them and switches the session to the results view.
func (uc *SessionUsecase) finishEvaluation(ctx context.Context, sessionID string, results []entity.EvaluationResult) {
	unlock := uc.lockSession(sessionID)
	defer unlock()

	session, err := uc.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		ctxzap.Error(ctx, "session vanished during evaluation",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return
	}

	session.IsEvaluating = false
	if results != nil {
		session.Evaluations = results
		session.ShowResults = true
	}

	if _, err := uc.sessionRepo.UpdateSession(ctx, session); err != nil {
		ctxzap.Error(ctx, "failed to store evaluation results",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return
	}

	ctxzap.Info(ctx, "evaluation finished",
		zap.String("session_id", sessionID),
		zap.Int("result_count", len(results)),
	)
}

// ToggleResults flips the results view flag. The flag is independent of the
// mode but meaningless without stored evaluations.
func (uc *SessionUsecase) ToggleResults(ctx context.Context, sessionID string) (*entity.Session, error) {
	unlock := uc.lockSession(sessionID)
	defer unlock()

	session, err := uc.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if len(session.Evaluations) == 0 {
		return nil, entity.ErrNoEvaluations
	}

	session.ShowResults = !session.ShowResults

	updated, err := uc.sessionRepo.UpdateSession(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	return updated, nil
}

// GetEvaluations returns the stored evaluation results. While an evaluation
// is still running the results are not available yet.
func (uc *SessionUsecase) GetEvaluations(ctx context.Context, sessionID string) ([]entity.EvaluationResult, error) {
	session, err := uc.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.IsEvaluating {
		return nil, entity.ErrEvaluationInProgress
	}

	if len(session.Evaluations) == 0 {
		return nil, entity.ErrNoEvaluations
	}

	return session.Evaluations, nil
}

// ExportResults renders the evaluation results into the requested format and
// returns the document bytes with a filename and content type.
func (uc *SessionUsecase) ExportResults(ctx context.Context, sessionID string, format entity.ResultFormat) ([]byte, string, string, error) {
	results, err := uc.GetEvaluations(ctx, sessionID)
	if err != nil {
		return nil, "", "", err
	}

	f, err := uc.formatterFactory.Create(format)
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: %s", entity.ErrInvalidParameter, format)
	}

	data, err := f.Format(renderResultsText(results))
	if err != nil {
		return nil, "", "", fmt.Errorf("format results: %w", err)
	}

	filename := fmt.Sprintf("interview-results-%s%s", shortID(sessionID), f.FileExtension())
	return data, filename, f.ContentType(), nil
}

// Speak toggles text-to-speech playback: it starts reading the text, or stops
// the playback that is still running. The returned bool reports the stop case.
func (uc *SessionUsecase) Speak(ctx context.Context, text string) (bool, error) {
	if err := uc.validator.ValidateSpeak(&entity.SpeakRequest{Text: text}); err != nil {
		return false, err
	}
	return uc.speechConnector.Speak(ctx, text)
}

// SpeechAvailable reports whether the speech service is configured. Callers
// degrade to text-only flows when it is not.
func (uc *SessionUsecase) SpeechAvailable() bool {
	return uc.speechConnector.Available()
}

func (uc *SessionUsecase) lockSession(sessionID string) func() {
	value, _ := uc.locks.LoadOrStore(sessionID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
