package interview

import (
	"github.com/kmalyshev/voice-interviewer/internal/entity"
	usecase "github.com/kmalyshev/voice-interviewer/internal/usecase/interview"
)

// StatusDTO is the snapshot shape served to facade clients. The derived
// can-* flags mirror the control availability rules so clients do not
// reimplement them.
type StatusDTO struct {
	SessionID     string        `json:"session_id,omitempty"`
	State         string        `json:"state"`
	Question      string        `json:"question,omitempty"`
	HintAvailable bool          `json:"hint_available"`
	Done          bool          `json:"done"`
	History       []entity.Turn `json:"history"`
	Processing    bool          `json:"processing"`
	Recording     bool          `json:"recording"`
	Playing       bool          `json:"playing"`
	CanAnswer     bool          `json:"can_answer"`
	CanHint       bool          `json:"can_hint"`
}

func toStatusDTO(status usecase.Status) StatusDTO {
	s := status.Session

	canAnswer := s.ID != "" && !s.Done &&
		!status.Recording && !status.Processing && !status.Playing

	canHint := s.HintAvailable && (s.ID != "" || s.Question != "") &&
		!status.Processing

	history := s.History
	if history == nil {
		history = []entity.Turn{}
	}

	return StatusDTO{
		SessionID:     s.ID,
		State:         string(s.State),
		Question:      s.Question,
		HintAvailable: s.HintAvailable,
		Done:          s.Done,
		History:       history,
		Processing:    status.Processing,
		Recording:     status.Recording,
		Playing:       status.Playing,
		CanAnswer:     canAnswer,
		CanHint:       canHint,
	}
}
