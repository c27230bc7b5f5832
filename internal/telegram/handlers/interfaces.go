package handlers

import (
	"context"

	"github.com/kmalyshev/voice-interviewer/internal/entity"
	usecase "github.com/kmalyshev/voice-interviewer/internal/usecase/interview"
)

// InterviewUsecase is the single-session interview engine the bot drives.
type InterviewUsecase interface {
	Start(ctx context.Context, profile entity.CandidateProfile) error
	SubmitClip(ctx context.Context, clip *entity.Clip) error
	RequestHint(ctx context.Context) error
	Reset()
	Snapshot() usecase.Status
	ExportTranscript(format entity.ReportFormat) ([]byte, usecase.TranscriptFormatter, error)
}
