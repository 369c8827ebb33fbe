package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepgenie/prepgenie-backend/internal/entity"
)

func TestFactoryCreatesKnownFormats(t *testing.T) {
	factory := NewFactory()

	for _, format := range []entity.ResultFormat{entity.FormatMarkdown, entity.FormatPDF, entity.FormatDOCX} {
		f, err := factory.Create(format)
		require.NoError(t, err)
		assert.NotEmpty(t, f.ContentType())
		assert.NotEmpty(t, f.FileExtension())
	}

	_, err := factory.Create(entity.ResultFormat("xlsx"))
	require.Error(t, err)
}

func TestMarkdownFormatter(t *testing.T) {
	f := NewMarkdownFormatter()

	out, err := f.Format("Question 1: What is a goroutine?\nScore: 8/10")
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "# Interview Evaluation Results")
	assert.Contains(t, text, "Score: 8/10")
	assert.Equal(t, ".md", f.FileExtension())
	assert.Contains(t, f.ContentType(), "text/markdown")
}

func TestPDFFormatterProducesDocument(t *testing.T) {
	f := NewPDFFormatter()

	out, err := f.Format("Question 1: What is a goroutine?")
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}
