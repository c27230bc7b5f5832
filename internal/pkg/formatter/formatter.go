package formatter

import (
	"fmt"

	"github.com/kmalyshev/voice-interviewer/internal/entity"
)

const baseTitle = "Interview Transcript"

// Formatter renders an interview session transcript into one output format.
type Formatter interface {
	Format(session *entity.InterviewSession) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ReportFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func turnLabel(role entity.TurnRole) string {
	if role == entity.TurnRoleHint {
		return "Hint"
	}
	return "Candidate"
}

func sessionSubtitle(s *entity.InterviewSession) string {
	subtitle := s.Profile.JobRole
	if s.Profile.Topic != "" {
		subtitle += " / " + s.Profile.Topic
	}
	if s.Profile.SpecificTopic != "" {
		subtitle += " (" + s.Profile.SpecificTopic + ")"
	}
	return subtitle
}
