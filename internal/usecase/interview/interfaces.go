package interview

import (
	"context"

	"github.com/kmalyshev/voice-interviewer/internal/entity"
)

// WorkflowConnector is the outbound contract to the interview backend.
type WorkflowConnector interface {
	StartInterview(ctx context.Context, req *entity.StartInterviewRequest) (*entity.StartInterviewResponse, error)
	SubmitAnswer(ctx context.Context, req *entity.SubmitAnswerRequest) (*entity.SubmitAnswerResponse, error)
	RequestHint(ctx context.Context, req *entity.RequestHintRequest) (*entity.RequestHintResponse, error)
}

// Recorder captures exactly one clip per start/stop cycle. A nil Recorder is
// legal: clips may instead arrive pre-recorded through SubmitClip.
type Recorder interface {
	Start(ctx context.Context) error
	Stop() (*entity.Clip, error)
	Abort()
	IsRecording() bool
}

// Player narrates questions and hints. Playback is fire-and-forget; failures
// stay inside the player.
type Player interface {
	PlayURL(ctx context.Context, url string)
	IsPlaying() bool
	Stop()
}

// ProfileValidator runs the same resume and profile checks on every intake
// path before any network call.
type ProfileValidator interface {
	ValidateProfile(profile *entity.CandidateProfile) error
}

// TranscriptFormatter renders the session history into one export format.
type TranscriptFormatter interface {
	Format(session *entity.InterviewSession) ([]byte, error)
	ContentType() string
	FileExtension() string
}

// FormatterFactory resolves a formatter for a report format.
type FormatterFactory interface {
	Create(format entity.ReportFormat) (TranscriptFormatter, error)
}
