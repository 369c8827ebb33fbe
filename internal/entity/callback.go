package entity

type CallbackEventType string

const (
	CallbackEventTypeEvaluations CallbackEventType = "evaluations_ready"
	CallbackEventTypeError       CallbackEventType = "error"
)

// CallbackEvent is the envelope POSTed to a client-provided callback URL
// when an asynchronous evaluation finishes.
type CallbackEvent struct {
	Event     CallbackEventType `json:"event"`
	Timestamp string            `json:"timestamp,omitempty"`
	Data      any               `json:"data,omitempty"`
}

type CallbackEvaluationsData struct {
	SessionID   string                `json:"session_id"`
	Evaluations []EvaluationResultDTO `json:"evaluations"`
}

type CallbackErrorDetails struct {
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type CallbackErrorData struct {
	Error CallbackErrorDetails `json:"error"`
}
