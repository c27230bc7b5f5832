package handlers

import (
	"strings"
	"sync"

	"github.com/kmalyshev/voice-interviewer/internal/entity"
)

// Profile intake walks the candidate through the pre-interview fields one
// message at a time: job role, topic, optional specific area, resume document.

type intakeStage int

const (
	stageIdle intakeStage = iota
	stageJobRole
	stageTopic
	stageSpecific
	stageResume
)

// skipToken lets the candidate skip the optional specific-topic question.
const skipToken = "-"

type intakeState struct {
	stage   intakeStage
	profile entity.CandidateProfile
}

// intakeTracker holds per-chat intake progress. Only one interview runs at a
// time, but several chats may poke the bot; each gets its own intake slot.
type intakeTracker struct {
	mu     sync.Mutex
	states map[int64]*intakeState
}

func newIntakeTracker() *intakeTracker {
	return &intakeTracker{states: make(map[int64]*intakeState)}
}

func (t *intakeTracker) begin(chatID int64) {
	t.mu.Lock()
	t.states[chatID] = &intakeState{stage: stageJobRole}
	t.mu.Unlock()
}

func (t *intakeTracker) clear(chatID int64) {
	t.mu.Lock()
	delete(t.states, chatID)
	t.mu.Unlock()
}

func (t *intakeTracker) stage(chatID int64) intakeStage {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s, ok := t.states[chatID]; ok {
		return s.stage
	}
	return stageIdle
}

// submitText advances the intake with a text answer and reports the next
// stage. Returns stageIdle when no intake is running for the chat.
func (t *intakeTracker) submitText(chatID int64, text string) intakeStage {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.states[chatID]
	if !ok {
		return stageIdle
	}

	text = strings.TrimSpace(text)

	switch s.stage {
	case stageJobRole:
		if text == "" {
			return s.stage
		}
		s.profile.JobRole = text
		s.stage = stageTopic
	case stageTopic:
		if text == "" {
			return s.stage
		}
		s.profile.Topic = text
		s.stage = stageSpecific
	case stageSpecific:
		if text != skipToken {
			s.profile.SpecificTopic = text
		}
		s.stage = stageResume
	}

	return s.stage
}

// submitResume attaches the resume document and returns the completed
// profile for the start request. The intake slot stays until the caller
// clears it, so a rejected resume can simply be re-sent.
func (t *intakeTracker) submitResume(chatID int64, resume *entity.ResumeFile) (entity.CandidateProfile, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.states[chatID]
	if !ok || s.stage != stageResume {
		return entity.CandidateProfile{}, false
	}

	s.profile.Resume = resume
	return s.profile, true
}
