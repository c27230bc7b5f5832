package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmalyshev/voice-interviewer/internal/entity"
)

func TestIntakeWalksThroughAllStages(t *testing.T) {
	tracker := newIntakeTracker()
	chatID := int64(100)

	tracker.begin(chatID)
	assert.Equal(t, stageJobRole, tracker.stage(chatID))

	assert.Equal(t, stageTopic, tracker.submitText(chatID, "Backend Engineer"))
	assert.Equal(t, stageSpecific, tracker.submitText(chatID, "Databases"))
	assert.Equal(t, stageResume, tracker.submitText(chatID, "Indexing"))

	resume := &entity.ResumeFile{Name: "cv.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}
	profile, ok := tracker.submitResume(chatID, resume)
	require.True(t, ok)
	assert.Equal(t, "Backend Engineer", profile.JobRole)
	assert.Equal(t, "Databases", profile.Topic)
	assert.Equal(t, "Indexing", profile.SpecificTopic)
	assert.Equal(t, "cv.pdf", profile.Resume.Name)
}

func TestIntakeSkipTokenLeavesSpecificEmpty(t *testing.T) {
	tracker := newIntakeTracker()
	chatID := int64(101)

	tracker.begin(chatID)
	tracker.submitText(chatID, "SRE")
	tracker.submitText(chatID, "Kubernetes")
	assert.Equal(t, stageResume, tracker.submitText(chatID, "-"))

	profile, ok := tracker.submitResume(chatID, &entity.ResumeFile{Name: "cv.pdf", Data: []byte("x")})
	require.True(t, ok)
	assert.Empty(t, profile.SpecificTopic)
}

func TestIntakeIgnoresBlankRequiredAnswers(t *testing.T) {
	tracker := newIntakeTracker()
	chatID := int64(102)

	tracker.begin(chatID)
	assert.Equal(t, stageJobRole, tracker.submitText(chatID, "   "))
	assert.Equal(t, stageTopic, tracker.submitText(chatID, "QA Engineer"))
}

func TestIntakeResumeKeptUntilCleared(t *testing.T) {
	tracker := newIntakeTracker()
	chatID := int64(103)

	tracker.begin(chatID)
	tracker.submitText(chatID, "Role")
	tracker.submitText(chatID, "Topic")
	tracker.submitText(chatID, "-")

	// A rejected resume can be replaced by sending another document.
	_, ok := tracker.submitResume(chatID, &entity.ResumeFile{Name: "notes.txt", Data: []byte("x")})
	require.True(t, ok)
	assert.Equal(t, stageResume, tracker.stage(chatID))

	profile, ok := tracker.submitResume(chatID, &entity.ResumeFile{Name: "cv.pdf", Data: []byte("x")})
	require.True(t, ok)
	assert.Equal(t, "cv.pdf", profile.Resume.Name)

	tracker.clear(chatID)
	assert.Equal(t, stageIdle, tracker.stage(chatID))
}

func TestIntakeUnknownChatIsIdle(t *testing.T) {
	tracker := newIntakeTracker()
	assert.Equal(t, stageIdle, tracker.submitText(999, "hello"))
	_, ok := tracker.submitResume(999, &entity.ResumeFile{})
	assert.False(t, ok)
}
