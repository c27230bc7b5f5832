package interview

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/kmalyshev/voice-interviewer/internal/entity"
)

// Shown while the backend answer to the start request carried no question text.
const startingQuestionFallback = "Interview starting..."

// Recorded when the backend returned no transcript for a submitted answer.
const transcriptFallback = "(audio answer sent)"

// Status is a point-in-time copy of the session plus the transient flags the
// presentation layer keys its controls on.
type Status struct {
	Session    entity.InterviewSession `json:"session"`
	Processing bool                    `json:"processing"`
	Recording  bool                    `json:"recording"`
	Playing    bool                    `json:"playing"`
}

// Usecase owns the single interview session and serializes every transition
// through one mutex. Network calls run outside the lock; each in-flight
// request carries the generation counter observed at send time, and a
// response whose generation no longer matches is discarded wholesale.
type Usecase struct {
	connector WorkflowConnector
	recorder  Recorder
	player    Player
	validator ProfileValidator
	exports   FormatterFactory
	logger    *zap.Logger
	clock     func() time.Time

	mu         sync.Mutex
	session    entity.InterviewSession
	processing bool
	generation uint64
}

func NewUsecase(
	connector WorkflowConnector,
	recorder Recorder,
	player Player,
	validator ProfileValidator,
	exports FormatterFactory,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		connector: connector,
		recorder:  recorder,
		player:    player,
		validator: validator,
		exports:   exports,
		logger:    logger,
		clock:     time.Now,
		session:   entity.InterviewSession{State: entity.SessionStateNotStarted},
	}
}

// Start validates the profile, posts the start request and installs the first
// question. The profile freezes the moment a session identifier is assigned.
func (u *Usecase) Start(ctx context.Context, profile entity.CandidateProfile) error {
	if err := u.validator.ValidateProfile(&profile); err != nil {
		return err
	}

	u.mu.Lock()
	if u.session.ID != "" || u.session.State != entity.SessionStateNotStarted {
		u.mu.Unlock()
		return entity.ErrSessionActive
	}
	if u.processing {
		u.mu.Unlock()
		return entity.ErrProcessing
	}
	u.processing = true
	u.session.State = entity.SessionStateSubmitting
	gen := u.generation
	u.mu.Unlock()

	resp, err := u.connector.StartInterview(ctx, &entity.StartInterviewRequest{
		JobRole:       profile.JobRole,
		Topic:         profile.Topic,
		SpecificTopic: profile.SpecificTopic,
		Resume:        profile.Resume,
	})

	u.mu.Lock()
	if gen != u.generation {
		u.mu.Unlock()
		return entity.ErrStaleResponse
	}
	u.processing = false

	if err != nil {
		u.session.State = entity.SessionStateNotStarted
		u.mu.Unlock()
		return fmt.Errorf("start interview: %w", err)
	}

	now := u.clock()
	u.session.ID = resp.SessionID
	if u.session.ID == "" {
		// The backend occasionally omits the identifier on the first
		// response; mint a local one so the answer flow is not blocked.
		u.session.ID = uuid.NewString()
		ctxzap.Warn(ctx, "start response carried no session id, generated local id",
			zap.String("session_id", u.session.ID))
	}
	u.session.Question = resp.Question
	if u.session.Question == "" {
		u.session.Question = startingQuestionFallback
	}
	u.session.HintAvailable = resp.HintAvailable
	u.session.Done = resp.Done
	u.session.History = nil
	u.session.Profile = profile
	u.session.StartedAt = now
	u.session.UpdatedAt = now
	u.session.State = entity.SessionStateAsking
	if resp.Done {
		u.session.State = entity.SessionStateDone
	}
	ttsURL := resp.TTSURL
	u.mu.Unlock()

	u.narrate(ctx, ttsURL)
	return nil
}

// canBeginAnswer is the single recording precondition policy: a session must
// exist and nothing else may be holding the turn.
func (u *Usecase) canBeginAnswer() error {
	switch {
	case u.session.ID == "":
		return entity.ErrNoSession
	case u.session.Done || u.session.State == entity.SessionStateDone:
		return entity.ErrSessionDone
	case u.session.State == entity.SessionStateRecording:
		return entity.ErrAlreadyRecording
	case u.processing:
		return entity.ErrProcessing
	case u.player != nil && u.player.IsPlaying():
		return entity.ErrPlaybackActive
	}
	return nil
}

// BeginAnswer opens the microphone for the current question.
func (u *Usecase) BeginAnswer(ctx context.Context) error {
	u.mu.Lock()
	if err := u.canBeginAnswer(); err != nil {
		u.mu.Unlock()
		return err
	}
	if u.recorder == nil {
		u.mu.Unlock()
		return entity.ErrNoRecorder
	}
	u.session.State = entity.SessionStateRecording
	u.mu.Unlock()

	if err := u.recorder.Start(ctx); err != nil {
		u.mu.Lock()
		if u.session.State == entity.SessionStateRecording {
			u.session.State = entity.SessionStateAsking
		}
		u.mu.Unlock()
		return err
	}

	return nil
}

// EndAnswer finalizes the live recording and submits the clip. The clip is
// submitted unconditionally, even when nearly empty. Ending while no capture
// is live is a no-op.
func (u *Usecase) EndAnswer(ctx context.Context) error {
	if u.recorder == nil {
		return entity.ErrNoRecorder
	}

	clip, err := u.recorder.Stop()
	if err != nil {
		return fmt.Errorf("stop recording: %w", err)
	}
	if clip == nil {
		return nil
	}

	u.mu.Lock()
	if u.session.State == entity.SessionStateRecording {
		u.session.State = entity.SessionStateAsking
	}
	u.mu.Unlock()

	return u.SubmitClip(ctx, clip)
}

// SubmitClip posts a finalized clip as the answer to the current question.
// Shared by the local recorder, the HTTP facade and the telegram bot.
func (u *Usecase) SubmitClip(ctx context.Context, clip *entity.Clip) error {
	if clip == nil || len(clip.Data) == 0 {
		return fmt.Errorf("%w: empty audio clip", entity.ErrMissingField)
	}

	u.mu.Lock()
	if u.session.ID == "" {
		u.mu.Unlock()
		return entity.ErrNoSession
	}
	if u.processing {
		u.mu.Unlock()
		return entity.ErrProcessing
	}
	u.processing = true
	u.session.State = entity.SessionStateSubmitting
	gen := u.generation
	sessionID := u.session.ID
	u.mu.Unlock()

	resp, err := u.connector.SubmitAnswer(ctx, &entity.SubmitAnswerRequest{
		SessionID: sessionID,
		Clip:      clip,
	})

	u.mu.Lock()
	if gen != u.generation {
		u.mu.Unlock()
		return entity.ErrStaleResponse
	}
	u.processing = false

	if err != nil {
		// The question stays on screen so the candidate can retry.
		u.session.State = entity.SessionStateAsking
		u.mu.Unlock()
		return fmt.Errorf("submit answer: %w", err)
	}

	if resp.SessionID != "" {
		u.session.ID = resp.SessionID
	}

	transcript := resp.Transcript
	if transcript == "" {
		transcript = transcriptFallback
	}
	u.session.History = append(u.session.History, entity.Turn{
		Role: entity.TurnRoleUser,
		Text: transcript,
	})

	if resp.Question != "" {
		u.session.Question = resp.Question
	}
	u.session.HintAvailable = resp.HintAvailable
	u.session.Done = resp.Done
	u.session.UpdatedAt = u.clock()
	u.session.State = entity.SessionStateAsking
	if resp.Done {
		u.session.State = entity.SessionStateDone
	}
	ttsURL := resp.TTSURL
	u.mu.Unlock()

	u.narrate(ctx, ttsURL)
	return nil
}

// RequestHint fetches at most one hint per question. The hint allowance is
// consumed on the attempt, not on its success.
func (u *Usecase) RequestHint(ctx context.Context) error {
	u.mu.Lock()
	if u.session.ID == "" && u.session.Question == "" {
		u.mu.Unlock()
		return entity.ErrNoSession
	}
	if !u.session.HintAvailable {
		u.mu.Unlock()
		return entity.ErrHintUnavailable
	}
	if u.processing {
		u.mu.Unlock()
		return entity.ErrProcessing
	}
	u.processing = true
	u.session.HintAvailable = false
	u.session.State = entity.SessionStateSubmitting
	gen := u.generation
	sessionID := u.session.ID
	u.mu.Unlock()

	resp, err := u.connector.RequestHint(ctx, &entity.RequestHintRequest{SessionID: sessionID})

	u.mu.Lock()
	if gen != u.generation {
		u.mu.Unlock()
		return entity.ErrStaleResponse
	}
	u.processing = false
	u.session.State = entity.SessionStateAsking

	if err != nil {
		u.mu.Unlock()
		return fmt.Errorf("request hint: %w", err)
	}

	if resp.Hint != "" {
		u.session.History = append(u.session.History, entity.Turn{
			Role: entity.TurnRoleHint,
			Text: resp.Hint,
		})
	}
	u.session.UpdatedAt = u.clock()
	ttsURL := resp.TTSURL
	u.mu.Unlock()

	u.narrate(ctx, ttsURL)
	return nil
}

// Reset tears everything down: live capture is aborted without submitting,
// narration is cut, and any in-flight response becomes stale. Idempotent.
func (u *Usecase) Reset() {
	u.mu.Lock()
	u.generation++
	u.processing = false
	u.session = entity.InterviewSession{State: entity.SessionStateNotStarted}
	u.mu.Unlock()

	if u.recorder != nil {
		u.recorder.Abort()
	}
	if u.player != nil {
		u.player.Stop()
	}

	u.logger.Info("session reset")
}

// Snapshot returns a copy of the current session and transient flags.
func (u *Usecase) Snapshot() Status {
	u.mu.Lock()
	session := u.session
	session.History = append([]entity.Turn(nil), u.session.History...)
	processing := u.processing
	u.mu.Unlock()

	recording := u.recorder != nil && u.recorder.IsRecording()
	playing := u.player != nil && u.player.IsPlaying()
	if recording {
		session.State = entity.SessionStateRecording
	}

	return Status{
		Session:    session,
		Processing: processing,
		Recording:  recording,
		Playing:    playing,
	}
}

// ExportTranscript renders the accumulated history in the requested format.
func (u *Usecase) ExportTranscript(format entity.ReportFormat) ([]byte, TranscriptFormatter, error) {
	if err := format.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", entity.ErrInvalidParameter, err)
	}

	u.mu.Lock()
	session := u.session
	session.History = append([]entity.Turn(nil), u.session.History...)
	u.mu.Unlock()

	if session.ID == "" {
		return nil, nil, entity.ErrNoSession
	}

	f, err := u.exports.Create(format)
	if err != nil {
		return nil, nil, err
	}

	data, err := f.Format(&session)
	if err != nil {
		return nil, nil, fmt.Errorf("format transcript: %w", err)
	}

	return data, f, nil
}

func (u *Usecase) narrate(ctx context.Context, url string) {
	if u.player == nil || url == "" {
		return
	}
	u.player.PlayURL(context.WithoutCancel(ctx), url)
}
