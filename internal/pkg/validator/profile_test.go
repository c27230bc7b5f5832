package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmalyshev/voice-interviewer/internal/config"
	"github.com/kmalyshev/voice-interviewer/internal/entity"
)

func newValidator() *Validator {
	return NewProfileValidator(config.ResumeUploadConfig{MaxFileSize: 1024})
}

func pdfResume() *entity.ResumeFile {
	return &entity.ResumeFile{
		Name:        "resume.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.4"),
	}
}

func TestValidateProfile(t *testing.T) {
	tests := []struct {
		name    string
		profile entity.CandidateProfile
		wantErr error
	}{
		{
			name: "valid profile",
			profile: entity.CandidateProfile{
				JobRole: "Backend Engineer",
				Topic:   "Go",
				Resume:  pdfResume(),
			},
		},
		{
			name: "missing job role",
			profile: entity.CandidateProfile{
				Topic:  "Go",
				Resume: pdfResume(),
			},
			wantErr: entity.ErrMissingJobRole,
		},
		{
			name: "whitespace topic",
			profile: entity.CandidateProfile{
				JobRole: "Backend Engineer",
				Topic:   "   ",
				Resume:  pdfResume(),
			},
			wantErr: entity.ErrMissingTopic,
		},
		{
			name: "no resume",
			profile: entity.CandidateProfile{
				JobRole: "Backend Engineer",
				Topic:   "Go",
			},
			wantErr: entity.ErrMissingResume,
		},
		{
			name: "empty resume data",
			profile: entity.CandidateProfile{
				JobRole: "Backend Engineer",
				Topic:   "Go",
				Resume:  &entity.ResumeFile{Name: "resume.pdf"},
			},
			wantErr: entity.ErrMissingResume,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newValidator().ValidateProfile(&tt.profile)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateResumeAcceptedTypes(t *testing.T) {
	tests := []struct {
		name        string
		fileName    string
		contentType string
		ok          bool
	}{
		{"pdf by content type", "cv", "application/pdf", true},
		{"word by content type", "cv", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", true},
		{"pdf by extension", "cv.pdf", "application/octet-stream", true},
		{"docx by extension", "cv.docx", "", true},
		{"legacy doc by extension", "cv.doc", "", true},
		{"uppercase extension", "CV.PDF", "", true},
		{"plain text rejected", "cv.txt", "text/plain", false},
		{"image rejected", "photo.png", "image/png", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newValidator().ValidateResume(&entity.ResumeFile{
				Name:        tt.fileName,
				ContentType: tt.contentType,
				Data:        []byte("content"),
			})
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, entity.ErrInvalidResume)
			}
		})
	}
}

func TestValidateResumeSizeLimit(t *testing.T) {
	resume := &entity.ResumeFile{
		Name:        "resume.pdf",
		ContentType: "application/pdf",
		Data:        make([]byte, 2048),
	}

	err := newValidator().ValidateResume(resume)
	require.ErrorIs(t, err, entity.ErrResumeTooLarge)
}
