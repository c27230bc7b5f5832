package formatter

import (
	"bytes"
	"fmt"

	"github.com/kmalyshev/voice-interviewer/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(session *entity.InterviewSession) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", baseTitle)
	fmt.Fprintf(&buf, "%s\n\n", sessionSubtitle(session))

	if session.Question != "" {
		fmt.Fprintf(&buf, "Last question: %s\n\n", session.Question)
	}

	for _, turn := range session.History {
		fmt.Fprintf(&buf, "- **%s:** %s\n", turnLabel(turn.Role), turn.Text)
	}

	if session.Done {
		buf.WriteString("\nInterview complete.\n")
	}

	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
