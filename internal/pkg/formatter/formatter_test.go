package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmalyshev/voice-interviewer/internal/entity"
)

func sampleSession() *entity.InterviewSession {
	return &entity.InterviewSession{
		ID:       "sess-1",
		State:    entity.SessionStateDone,
		Question: "Final question?",
		Done:     true,
		Profile: entity.CandidateProfile{
			JobRole:       "Backend Engineer",
			Topic:         "Distributed Systems",
			SpecificTopic: "Consensus",
		},
		History: []entity.Turn{
			{Role: entity.TurnRoleUser, Text: "I would use Raft."},
			{Role: entity.TurnRoleHint, Text: "Think about quorums."},
			{Role: entity.TurnRoleUser, Text: "(audio answer sent)"},
		},
		StartedAt: time.Now(),
	}
}

func TestFactoryCreatesEveryFormat(t *testing.T) {
	factory := NewFactory()

	for _, format := range []entity.ReportFormat{entity.FormatMarkdown, entity.FormatPDF, entity.FormatDOCX} {
		f, err := factory.Create(format)
		require.NoError(t, err, format)
		assert.NotEmpty(t, f.ContentType())
		assert.NotEmpty(t, f.FileExtension())
	}

	_, err := factory.Create(entity.ReportFormat("xlsx"))
	require.Error(t, err)
}

func TestMarkdownFormatterRendersHistory(t *testing.T) {
	data, err := NewMarkdownFormatter().Format(sampleSession())
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "# Interview Transcript")
	assert.Contains(t, out, "Backend Engineer")
	assert.Contains(t, out, "**Candidate:** I would use Raft.")
	assert.Contains(t, out, "**Hint:** Think about quorums.")
	assert.Contains(t, out, "Interview complete.")
}

func TestPDFFormatterProducesDocument(t *testing.T) {
	data, err := NewPDFFormatter().Format(sampleSession())
	require.NoError(t, err)

	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestDOCXFormatterProducesDocument(t *testing.T) {
	data, err := NewDOCXFormatter().Format(sampleSession())
	require.NoError(t, err)

	// DOCX is a zip container.
	require.NotEmpty(t, data)
	assert.Equal(t, []byte{0x50, 0x4b}, data[:2])
}

func TestTurnLabels(t *testing.T) {
	assert.Equal(t, "Candidate", turnLabel(entity.TurnRoleUser))
	assert.Equal(t, "Hint", turnLabel(entity.TurnRoleHint))
}
