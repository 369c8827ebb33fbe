package entity

import (
	"encoding/json"
	"strings"
)

type LLMGenerateQuestionsRequest struct {
	JobTitle       string `json:"jobTitle"`
	Company        string `json:"company"`
	Experience     string `json:"experience"`
	JobDescription string `json:"jobDescription"`
	ResumeText     string `json:"resume"`
	ResumeFile     []byte `json:"-"`
	ResumeFilename string `json:"-"`
}

// LLMGenerateQuestionsResponse carries the generated question pool. The
// service returns either a JSON array of lines or a single newline-joined
// string; the string form is split on newlines with empty segments dropped.
type LLMGenerateQuestionsResponse struct {
	Questions []string `json:"questions"`
}

func (r *LLMGenerateQuestionsResponse) UnmarshalJSON(data []byte) error {
	var asSlice struct {
		Questions []string `json:"questions"`
	}
	if err := json.Unmarshal(data, &asSlice); err == nil {
		r.Questions = asSlice.Questions
		return nil
	}

	var asString struct {
		Questions string `json:"questions"`
	}
	if err := json.Unmarshal(data, &asString); err != nil {
		return err
	}

	r.Questions = SplitQuestionLines(asString.Questions)
	return nil
}

// SplitQuestionLines splits a newline-joined generation response into
// trimmed, non-empty lines.
func SplitQuestionLines(s string) []string {
	lines := make([]string, 0)
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

type LLMGenerateMoreQuestionsRequest struct {
	Type           string `json:"type"`
	ResumeText     string `json:"resume"`
	JobDescription string `json:"jobDescription"`
}

type LLMGenerateMoreQuestionsResponse struct {
	NewQuestions []string `json:"newQuestions"`
}

type LLMEvaluateAnswersRequest struct {
	QAPairs []QAPair `json:"qaPairs"`
}

// RawEvaluation is one freeform evaluation passage for a single QAPair.
type RawEvaluation struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Evaluation string `json:"evaluation"`
}

type LLMEvaluateAnswersResponse struct {
	Evaluations []RawEvaluation `json:"evaluations"`
}

type SpeechTranscribeResponse struct {
	Transcript string `json:"transcript"`
}

type SpeechSynthesizeRequest struct {
	Text string `json:"text"`
}
