package entity

import "errors"

// Domain errors
var (
	// Profile / resume errors
	ErrMissingJobRole   = errors.New("job role is required")
	ErrMissingTopic     = errors.New("focus topic is required")
	ErrMissingResume    = errors.New("resume file is required")
	ErrInvalidResume    = errors.New("resume must be a PDF or Word document")
	ErrResumeTooLarge   = errors.New("resume file too large")
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")

	// Session errors
	ErrNoSession        = errors.New("no active session")
	ErrSessionActive    = errors.New("session already started")
	ErrSessionDone      = errors.New("interview is already complete")
	ErrAlreadyRecording = errors.New("a recording is already in progress")
	ErrNotRecording     = errors.New("no recording in progress")
	ErrProcessing       = errors.New("a request is already in flight")
	ErrPlaybackActive   = errors.New("cannot record while narration is playing")
	ErrHintUnavailable  = errors.New("no hint available for this question")
	ErrStaleResponse    = errors.New("response arrived for a reset session")

	// Audio errors
	ErrMicrophoneUnavailable = errors.New("could not access microphone")
	ErrNoRecorder            = errors.New("no audio recorder configured")
)
