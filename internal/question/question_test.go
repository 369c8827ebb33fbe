package question

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepgenie/prepgenie-backend/internal/entity"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"ordinal prefix", "12. What is a goroutine?", "What is a goroutine?"},
		{"no prefix", "What is a goroutine?", "What is a goroutine?"},
		{"surrounding whitespace", "  3. Explain channels.  ", "Explain channels."},
		{"bare ordinal", "3.", ""},
		{"empty", "", ""},
		{"digits without dot kept", "42 things to know", "42 things to know"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"1. What is polymorphism?",
		"  7.   Tell me about a project.",
		"no numbering here",
		"",
		"3.",
		"10. 20. double prefix",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestIsValidRejectsHeadings(t *testing.T) {
	rejected := []string{
		"Technical Questions",
		"Behavioral Questions:",
		"SITUATIONAL QUESTIONS",
		"General Questions:",
		"Questions",
		"Interview Questions:",
		"Here are five technical questions",
		"Below are the behavioral questions",
		"The following are interview questions",
		"These questions are designed to probe your experience",
		"Interview questions that would be likely asked",
		"likely asked for the Software Engineer",
		"position at Acme Corp",
		"Focus. Prepare. Shine.",
		"3. Technical Questions:",
		"3.",
		"12.   ",
	}

	for _, line := range rejected {
		assert.False(t, IsValid(line), "expected rejection of %q", line)
	}
}

func TestIsValidRejectsShortOrShapelessLines(t *testing.T) {
	assert.False(t, IsValid("What is Go?"), "below minimum length")
	assert.False(t, IsValid("This sentence has no question shape at all."), "no question mark, no lead word")
}

func TestIsValidAcceptsQuestions(t *testing.T) {
	accepted := []string{
		"What is polymorphism in object-oriented programming and how would you implement it in code?",
		"Tell me about a time you led a team through a difficult release.",
		"Describe your approach to reviewing a large pull request.",
		"Walk me through your debugging process for a production incident.",
		"Can you explain the difference between a mutex and a semaphore?",
	}

	for _, line := range accepted {
		assert.True(t, IsValid(line), "expected acceptance of %q", line)
	}
}

func TestClassifyBuckets(t *testing.T) {
	raw := []string{
		"1. Technical Questions:",
		"2. What algorithm would you use to debug a memory leak in production?",
		"3. Tell me about a time you resolved team conflict.",
	}

	c := Classify(raw)

	require.Len(t, c.Technical, 1)
	assert.Equal(t, "What algorithm would you use to debug a memory leak in production?", c.Technical[0].Text)
	assert.Equal(t, entity.CategoryTechnical, c.Technical[0].Category)

	require.Len(t, c.Behavioral, 1)
	assert.Equal(t, "Tell me about a time you resolved team conflict.", c.Behavioral[0].Text)
	assert.Equal(t, entity.CategoryBehavioral, c.Behavioral[0].Category)

	require.Len(t, c.Filtered, 2)
	assert.Equal(t, c.Technical[0], c.Filtered[0])
	assert.Equal(t, c.Behavioral[0], c.Filtered[1])
}

// A question matching both keyword sets appears in both buckets and twice in
// the filtered sequence. This duplication matches the upstream behavior and
// must not be silently deduplicated.
func TestClassifyDualKeywordQuestionAppearsTwice(t *testing.T) {
	raw := []string{
		"Describe a time you had to debug a conflict in the system architecture.",
	}

	c := Classify(raw)

	require.Len(t, c.Technical, 1)
	require.Len(t, c.Behavioral, 1)
	require.Len(t, c.Filtered, 2)
	assert.Equal(t, c.Filtered[0].Text, c.Filtered[1].Text)
	assert.Equal(t, entity.CategoryTechnical, c.Filtered[0].Category)
	assert.Equal(t, entity.CategoryBehavioral, c.Filtered[1].Category)
}

func TestClassifyExcludesKeywordlessQuestions(t *testing.T) {
	raw := []string{
		"What motivates you to get up in the morning and go to work?",
	}

	c := Classify(raw)

	assert.Empty(t, c.Technical)
	assert.Empty(t, c.Behavioral)
	assert.Empty(t, c.Filtered)
}

func TestClassifyDeterministic(t *testing.T) {
	raw := []string{
		"Here are some interview questions",
		"1. How would you design an API for a rate limiter?",
		"2. Tell me about a time you showed leadership.",
		"3. Describe a time you had to debug a conflict in the system architecture.",
		"Focus. Prepare. Shine.",
	}

	first := Classify(raw)
	second := Classify(raw)

	assert.Equal(t, first, second)
}

func TestClassifyPreservesRelativeOrder(t *testing.T) {
	raw := []string{
		"1. How would you design a caching system for session data?",
		"2. What framework would you choose for a REST API and why?",
		"3. Tell me about a time you dealt with team conflict.",
		"4. How do you handle disagreement about priorities?",
	}

	c := Classify(raw)

	require.Len(t, c.Technical, 2)
	assert.Contains(t, c.Technical[0].Text, "caching system")
	assert.Contains(t, c.Technical[1].Text, "framework")

	require.Len(t, c.Behavioral, 2)
	assert.Contains(t, c.Behavioral[0].Text, "team conflict")
	assert.Contains(t, c.Behavioral[1].Text, "disagreement")
}
