package entity

import "time"

// StartSessionRequest carries the form fields collected before generation.
// The resume file itself travels alongside as a multipart part.
type StartSessionRequest struct {
	JobTitle       string `json:"jobTitle"`
	Company        string `json:"company"`
	Experience     string `json:"experience"`
	JobDescription string `json:"jobDescription"`
	ResumeText     string `json:"-"`
	ResumeFile     []byte `json:"-"`
	ResumeFilename string `json:"-"`
}

type SelectModeRequest struct {
	Mode Mode `json:"mode"`
}

type NavigateRequest struct {
	Direction string `json:"direction"` // "next" or "prev"
}

// SetAnswerRequest targets one answer buffer. A missing index means the
// current question.
type SetAnswerRequest struct {
	Index  *int   `json:"index,omitempty"`
	Answer string `json:"answer"`
}

type MoreQuestionsRequest struct {
	Category Category `json:"category"`
}

type EvaluateRequest struct {
	CallbackURL string `json:"callbackUrl,omitempty"`
}

type SpeakRequest struct {
	Text string `json:"text"`
}

// SessionDTO is the API view of a session.
type SessionDTO struct {
	ID             string        `json:"session_id"`
	Mode           Mode          `json:"mode"`
	CurrentIndex   int           `json:"current_index"`
	Questions      []QuestionDTO `json:"questions"`
	Answers        []string      `json:"answers"`
	IsEvaluating   bool          `json:"is_evaluating"`
	ShowResults    bool          `json:"show_results"`
	HasEvaluations bool          `json:"has_evaluations"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

type QuestionDTO struct {
	Text     string   `json:"text"`
	Category Category `json:"category"`
}

// EvaluationResultDTO is the display form of one evaluation: the extracted
// fields with placeholders substituted for anything the extractor left empty.
type EvaluationResultDTO struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	Feedback    string `json:"feedback"`
	Improvement string `json:"improvement"`
	Score       string `json:"score"`
}
