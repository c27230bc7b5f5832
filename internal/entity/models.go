package entity

import (
	"fmt"
	"time"
)

type SessionState string

// Session state represents the current position in the interview loop
const (
	// Before the start request succeeded; profile is still editable
	SessionStateNotStarted SessionState = "NOT_STARTED"

	// A question is on screen, waiting for the candidate
	SessionStateAsking SessionState = "ASKING"

	// Microphone is live, clip is being captured
	SessionStateRecording SessionState = "RECORDING"

	// A start/answer/hint request is in flight
	SessionStateSubmitting SessionState = "SUBMITTING"

	// Backend marked the interview complete
	SessionStateDone SessionState = "DONE"
)

type TurnRole string

const (
	TurnRoleUser TurnRole = "user"
	TurnRoleHint TurnRole = "hint"
)

func (tr TurnRole) Validate() error {
	switch tr {
	case TurnRoleUser, TurnRoleHint:
		return nil
	default:
		return fmt.Errorf("unknown turn role: %s", tr)
	}
}

// Turn is one appended history entry: a transcribed candidate answer or a
// revealed hint. History is append-only and keeps insertion order.
type Turn struct {
	Role TurnRole `json:"role"`
	Text string   `json:"text"`
}

// ResumeFile is the candidate resume attached before the interview starts.
type ResumeFile struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// CandidateProfile is editable only until a session identifier is assigned.
type CandidateProfile struct {
	JobRole       string      `json:"job_role"`
	Topic         string      `json:"topic"`
	SpecificTopic string      `json:"specific_topic,omitempty"`
	Resume        *ResumeFile `json:"resume,omitempty"`
}

// InterviewSession is the single in-memory session for the process lifetime.
// ID is opaque and immutable once assigned, except on reset.
type InterviewSession struct {
	ID            string           `json:"session_id,omitempty"`
	State         SessionState     `json:"state"`
	Question      string           `json:"question,omitempty"`
	HintAvailable bool             `json:"hint_available"`
	Done          bool             `json:"done"`
	History       []Turn           `json:"history"`
	Profile       CandidateProfile `json:"profile"`
	StartedAt     time.Time        `json:"started_at,omitzero"`
	UpdatedAt     time.Time        `json:"updated_at,omitzero"`
}

// Clip is the finalized binary audio capture produced by one record/stop cycle.
type Clip struct {
	Data        []byte
	ContentType string
	Duration    time.Duration
}

type ReportFormat string

const (
	FormatMarkdown ReportFormat = "markdown"
	FormatPDF      ReportFormat = "pdf"
	FormatDOCX     ReportFormat = "docx"
)

func (rf ReportFormat) Validate() error {
	switch rf {
	case FormatMarkdown, FormatPDF, FormatDOCX:
		return nil
	default:
		return fmt.Errorf("unsupported report format: %s", rf)
	}
}

// Severity classifies how an adapter should surface a failure.
type Severity string

const (
	// SeverityBlocking requires a user-visible message
	SeverityBlocking Severity = "BLOCKING"
	// SeveritySilent is logged only; the interview must not stop
	SeveritySilent Severity = "SILENT"
)
