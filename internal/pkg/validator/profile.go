package validator

import (
	"fmt"
	"strings"

	"github.com/kmalyshev/voice-interviewer/internal/config"
	"github.com/kmalyshev/voice-interviewer/internal/entity"
)

// Validator validates candidate profiles and resume uploads
type Validator struct {
	cfg config.ResumeUploadConfig
}

func NewProfileValidator(cfg config.ResumeUploadConfig) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateProfile checks the candidate profile before the start request is
// sent. Failures are blocking: no network call may happen after one.
func (v *Validator) ValidateProfile(profile *entity.CandidateProfile) error {
	if strings.TrimSpace(profile.JobRole) == "" {
		return entity.ErrMissingJobRole
	}
	if strings.TrimSpace(profile.Topic) == "" {
		return entity.ErrMissingTopic
	}
	if profile.Resume == nil || len(profile.Resume.Data) == 0 {
		return entity.ErrMissingResume
	}

	return v.ValidateResume(profile.Resume)
}

// ValidateResume accepts PDF and Word-family documents. The same check runs
// on every intake path (form, drag-and-drop, telegram document).
func (v *Validator) ValidateResume(file *entity.ResumeFile) error {
	if int64(len(file.Data)) > v.cfg.MaxFileSize {
		return fmt.Errorf("%w: %d bytes (max %d)", entity.ErrResumeTooLarge, len(file.Data), v.cfg.MaxFileSize)
	}

	contentType := strings.ToLower(file.ContentType)
	name := strings.ToLower(file.Name)

	if strings.Contains(contentType, "pdf") ||
		strings.Contains(contentType, "word") ||
		strings.HasSuffix(name, ".docx") ||
		strings.HasSuffix(name, ".pdf") ||
		strings.HasSuffix(name, ".doc") {
		return nil
	}

	return fmt.Errorf("%w: %s", entity.ErrInvalidResume, file.Name)
}
