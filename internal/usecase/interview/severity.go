package interview

import (
	"errors"

	"github.com/kmalyshev/voice-interviewer/internal/entity"
)

// Classify decides how a presentation adapter should surface a failure.
// Guard rejections and stale responses are expected traffic and stay in the
// logs; everything else needs a user-visible message.
func Classify(err error) entity.Severity {
	switch {
	case errors.Is(err, entity.ErrStaleResponse),
		errors.Is(err, entity.ErrNotRecording),
		errors.Is(err, entity.ErrAlreadyRecording),
		errors.Is(err, entity.ErrProcessing),
		errors.Is(err, entity.ErrPlaybackActive),
		errors.Is(err, entity.ErrHintUnavailable):
		return entity.SeveritySilent
	default:
		return entity.SeverityBlocking
	}
}
