package entity

import (
	"fmt"
	"time"
)

type Category string

const (
	CategoryTechnical  Category = "TECHNICAL"
	CategoryBehavioral Category = "BEHAVIORAL"
)

func (c *Category) Validate() error {
	switch *c {
	case CategoryTechnical, CategoryBehavioral:
		return nil
	default:
		return fmt.Errorf("unknown question category: %s", *c)
	}
}

type Mode string

const (
	ModeLearn    Mode = "LEARN"
	ModePractice Mode = "PRACTICE"
)

func (m *Mode) Validate() error {
	switch *m {
	case ModeLearn, ModePractice:
		return nil
	default:
		return fmt.Errorf("unknown session mode: %s", *m)
	}
}

// Question is one entry of the filtered practice sequence. Text is already
// normalized (ordinal prefix stripped, whitespace trimmed) and immutable.
type Question struct {
	Text     string   `json:"text"`
	Category Category `json:"category"`
}

// QAPair is a question paired with its trimmed, non-empty answer. It is the
// unit sent to the evaluation service.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// EvaluationResult holds one evaluated answer. Question, Answer and
// RawEvaluation come back from the evaluation service; Feedback, Improvement
// and Score are extracted locally and may stay empty until display time,
// where empty fields degrade to placeholder text.
type EvaluationResult struct {
	Question      string `json:"question"`
	Answer        string `json:"answer"`
	RawEvaluation string `json:"rawEvaluation"`
	Feedback      string `json:"feedback"`
	Improvement   string `json:"improvement"`
	Score         string `json:"score"`
}

// Session is the whole state of one practice run. RawQuestions is the
// unfiltered generated pool; Questions is the Technical++Behavioral sequence
// actually presented to the user.
//
// Invariants: len(Answers) == len(Questions) after every (re)classification,
// and CurrentIndex stays inside [0, len(Questions)) whenever Questions is
// non-empty.
type Session struct {
	ID             string             `json:"session_id"`
	Mode           Mode               `json:"mode"`
	CurrentIndex   int                `json:"current_index"`
	RawQuestions   []string           `json:"-"`
	Questions      []Question         `json:"questions"`
	Answers        []string           `json:"answers"`
	Evaluations    []EvaluationResult `json:"evaluations,omitempty"`
	IsEvaluating   bool               `json:"is_evaluating"`
	ShowResults    bool               `json:"show_results"`
	ResumeText     string             `json:"-"`
	JobDescription string             `json:"-"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

type ResultFormat string

const (
	FormatMarkdown ResultFormat = "md"
	FormatPDF      ResultFormat = "pdf"
	FormatDOCX     ResultFormat = "docx"
)
