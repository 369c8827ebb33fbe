package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateQuestionsResponseDecodesArray(t *testing.T) {
	payload := `{"questions": ["First question?", "Second question?"]}`

	var resp LLMGenerateQuestionsResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))
	assert.Equal(t, []string{"First question?", "Second question?"}, resp.Questions)
}

func TestGenerateQuestionsResponseDecodesNewlineJoinedString(t *testing.T) {
	payload := `{"questions": "First question?\n\n  Second question?  \n"}`

	var resp LLMGenerateQuestionsResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))
	assert.Equal(t, []string{"First question?", "Second question?"}, resp.Questions)
}

func TestGenerateQuestionsResponseRejectsOtherShapes(t *testing.T) {
	payload := `{"questions": 42}`

	var resp LLMGenerateQuestionsResponse
	require.Error(t, json.Unmarshal([]byte(payload), &resp))
}

func TestSplitQuestionLines(t *testing.T) {
	lines := SplitQuestionLines("  one \n\n two\n")
	assert.Equal(t, []string{"one", "two"}, lines)

	assert.Empty(t, SplitQuestionLines("\n  \n"))
}
