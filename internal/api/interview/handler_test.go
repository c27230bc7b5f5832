package interview

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmalyshev/voice-interviewer/internal/entity"
	usecase "github.com/kmalyshev/voice-interviewer/internal/usecase/interview"
)

type fakeUsecase struct {
	startErr  error
	submitErr error
	hintErr   error
	status    usecase.Status

	startProfile *entity.CandidateProfile
	submitted    *entity.Clip
	resets       int
}

func (f *fakeUsecase) Start(_ context.Context, profile entity.CandidateProfile) error {
	f.startProfile = &profile
	return f.startErr
}

func (f *fakeUsecase) SubmitClip(_ context.Context, clip *entity.Clip) error {
	f.submitted = clip
	return f.submitErr
}

func (f *fakeUsecase) RequestHint(context.Context) error { return f.hintErr }

func (f *fakeUsecase) Reset() { f.resets++ }

func (f *fakeUsecase) Snapshot() usecase.Status { return f.status }

func (f *fakeUsecase) ExportTranscript(format entity.ReportFormat) ([]byte, usecase.TranscriptFormatter, error) {
	if err := format.Validate(); err != nil {
		return nil, nil, entity.ErrInvalidParameter
	}
	return []byte("# Interview Transcript\n"), markdownStub{}, nil
}

type markdownStub struct{}

func (markdownStub) Format(*entity.InterviewSession) ([]byte, error) { return nil, nil }
func (markdownStub) ContentType() string                             { return "text/markdown; charset=utf-8" }
func (markdownStub) FileExtension() string                           { return ".md" }

func newTestRouter(f *fakeUsecase) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(f))
	return r
}

func multipartProfile(t *testing.T, withResume bool) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("jobRole", "SRE"))
	require.NoError(t, w.WriteField("topic", "Kubernetes"))
	require.NoError(t, w.WriteField("specific", "Operators"))

	if withResume {
		part, err := w.CreateFormFile("resume", "cv.pdf")
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4"))
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func TestStartInterviewParsesProfile(t *testing.T) {
	f := &fakeUsecase{status: usecase.Status{
		Session: entity.InterviewSession{
			ID:       "sess-7",
			State:    entity.SessionStateAsking,
			Question: "First question",
		},
	}}
	router := newTestRouter(f)

	body, contentType := multipartProfile(t, true)
	req := httptest.NewRequest(http.MethodPost, "/interview/start", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, f.startProfile)
	assert.Equal(t, "SRE", f.startProfile.JobRole)
	assert.Equal(t, "Kubernetes", f.startProfile.Topic)
	assert.Equal(t, "Operators", f.startProfile.SpecificTopic)
	require.NotNil(t, f.startProfile.Resume)
	assert.Equal(t, "cv.pdf", f.startProfile.Resume.Name)

	var dto StatusDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, "sess-7", dto.SessionID)
	assert.Equal(t, "First question", dto.Question)
	assert.True(t, dto.CanAnswer)
}

func TestStartInterviewValidationFailureMapsTo400(t *testing.T) {
	f := &fakeUsecase{startErr: entity.ErrMissingResume}
	router := newTestRouter(f)

	body, contentType := multipartProfile(t, false)
	req := httptest.NewRequest(http.MethodPost, "/interview/start", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStartInterviewActiveSessionMapsTo409(t *testing.T) {
	f := &fakeUsecase{startErr: entity.ErrSessionActive}
	router := newTestRouter(f)

	body, contentType := multipartProfile(t, true)
	req := httptest.NewRequest(http.MethodPost, "/interview/start", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSubmitAnswerRequiresAudioPart(t *testing.T) {
	f := &fakeUsecase{}
	router := newTestRouter(f)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("note", "no audio here"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/interview/answer", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, f.submitted)
}

func TestSubmitAnswerForwardsClip(t *testing.T) {
	f := &fakeUsecase{status: usecase.Status{
		Session: entity.InterviewSession{ID: "sess-7", State: entity.SessionStateAsking},
	}}
	router := newTestRouter(f)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("audio", "answer.webm")
	require.NoError(t, err)
	_, err = part.Write([]byte("webm-bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/interview/answer", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, f.submitted)
	assert.Equal(t, []byte("webm-bytes"), f.submitted.Data)
}

func TestSubmitAnswerNoSessionMapsTo404(t *testing.T) {
	f := &fakeUsecase{submitErr: entity.ErrNoSession}
	router := newTestRouter(f)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("audio", "answer.webm")
	require.NoError(t, err)
	_, err = part.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/interview/answer", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequestHintUnavailableMapsTo409(t *testing.T) {
	f := &fakeUsecase{hintErr: entity.ErrHintUnavailable}
	router := newTestRouter(f)

	req := httptest.NewRequest(http.MethodPost, "/interview/hint", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestResetAlwaysSucceeds(t *testing.T) {
	f := &fakeUsecase{}
	router := newTestRouter(f)

	req := httptest.NewRequest(http.MethodPost, "/interview/reset", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, f.resets)
}

func TestGetTranscriptServesAttachment(t *testing.T) {
	f := &fakeUsecase{status: usecase.Status{
		Session: entity.InterviewSession{ID: "sess-7"},
	}}
	router := newTestRouter(f)

	req := httptest.NewRequest(http.MethodGet, "/interview/transcript?format=markdown", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/markdown; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "transcript-sess-7.md")
	assert.Contains(t, rec.Body.String(), "Interview Transcript")
}

func TestGetTranscriptRejectsUnknownFormat(t *testing.T) {
	f := &fakeUsecase{}
	router := newTestRouter(f)

	req := httptest.NewRequest(http.MethodGet, "/interview/transcript?format=xlsx", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatusDTOControlFlags(t *testing.T) {
	status := usecase.Status{
		Session: entity.InterviewSession{
			ID:            "sess-1",
			State:         entity.SessionStateAsking,
			Question:      "Q",
			HintAvailable: true,
		},
		Playing: true,
	}

	dto := toStatusDTO(status)
	assert.False(t, dto.CanAnswer, "recording must be blocked while narration plays")
	assert.True(t, dto.CanHint)
	assert.NotNil(t, dto.History)
}
