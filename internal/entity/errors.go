package entity

import "errors"

// Domain errors
var (
	// Session errors
	ErrSessionNotFound      = errors.New("session not found")
	ErrNoQuestions          = errors.New("no valid questions available")
	ErrNoAnsweredQuestions  = errors.New("no answered questions to evaluate")
	ErrEvaluationInProgress = errors.New("evaluation already in progress")
	ErrNoEvaluations        = errors.New("no evaluation results available")
	ErrWrongMode            = errors.New("operation not allowed in current mode")
	ErrIndexOutOfRange      = errors.New("question index out of range")

	// Speech errors
	ErrSpeechUnavailable = errors.New("speech capability unavailable")

	// File errors
	ErrInvalidFile      = errors.New("invalid file")
	ErrFileTooLarge     = errors.New("file too large")
	ErrInvalidExtension = errors.New("invalid file extension")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
)
