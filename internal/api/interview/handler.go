package interview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/kmalyshev/voice-interviewer/internal/entity"
	"github.com/kmalyshev/voice-interviewer/internal/pkg/logger"
	"github.com/kmalyshev/voice-interviewer/internal/pkg/response"
)

const maxMultipartMemory = 10 << 20

type Handler struct {
	usecase InterviewUsecase
}

func NewHandler(usecase InterviewUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// StartInterview handles POST /interview/start - begin a session from a
// multipart profile (jobRole, topic, specific fields plus the resume file).
func (h *Handler) StartInterview(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StartInterview")

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		ctxzap.Error(ctx, "failed to parse multipart form", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	profile := entity.CandidateProfile{
		JobRole:       r.FormValue("jobRole"),
		Topic:         r.FormValue("topic"),
		SpecificTopic: r.FormValue("specific"),
	}

	file, header, err := r.FormFile("resume")
	if err == nil {
		defer file.Close()

		data, readErr := io.ReadAll(file)
		if readErr != nil {
			ctxzap.Error(ctx, "failed to read resume file", zap.Error(readErr))
			response.Error(w, http.StatusBadRequest, "failed to read resume file")
			return
		}

		profile.Resume = &entity.ResumeFile{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		}
	}

	ctxzap.Info(ctx, "starting interview",
		zap.String("job_role", profile.JobRole),
		zap.String("topic", profile.Topic),
	)

	if err := h.usecase.Start(ctx, profile); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toStatusDTO(h.usecase.Snapshot()))
}

// SubmitAnswer handles POST /interview/answer - submit a pre-recorded clip
// as the answer to the current question.
func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SubmitAnswer")

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		ctxzap.Error(ctx, "failed to parse multipart form", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		ctxzap.Error(ctx, "missing audio file", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "audio file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		ctxzap.Error(ctx, "failed to read audio file", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "failed to read audio file")
		return
	}

	clip := &entity.Clip{
		Data:        data,
		ContentType: header.Header.Get("Content-Type"),
	}

	ctxzap.Info(ctx, "submitting answer clip", zap.Int("size_bytes", len(data)))

	if err := h.usecase.SubmitClip(ctx, clip); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toStatusDTO(h.usecase.Snapshot()))
}

// RequestHint handles POST /interview/hint.
func (h *Handler) RequestHint(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "RequestHint")

	if err := h.usecase.RequestHint(ctx); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toStatusDTO(h.usecase.Snapshot()))
}

// ResetInterview handles POST /interview/reset.
func (h *Handler) ResetInterview(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ResetInterview")

	h.usecase.Reset()

	ctxzap.Info(ctx, "interview reset")
	response.Success(w, toStatusDTO(h.usecase.Snapshot()))
}

// GetStatus handles GET /interview - current session snapshot.
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	response.Success(w, toStatusDTO(h.usecase.Snapshot()))
}

// GetTranscript handles GET /interview/transcript?format= - export the
// accumulated history as an attachment.
func (h *Handler) GetTranscript(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetTranscript")

	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(entity.FormatMarkdown)
	}

	data, f, err := h.usecase.ExportTranscript(entity.ReportFormat(formatParam))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	status := h.usecase.Snapshot()
	filename := fmt.Sprintf("transcript-%s%s", status.Session.ID, f.FileExtension())

	ctxzap.Info(ctx, "transcript exported",
		zap.String("format", formatParam),
		zap.Int("size_bytes", len(data)),
	)

	response.File(w, f.ContentType(), filename, data)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	ctxzap.Error(ctx, "request failed", zap.Error(err))

	switch {
	case errors.Is(err, entity.ErrNoSession):
		response.Error(w, http.StatusNotFound, "no active session")
	case errors.Is(err, entity.ErrMissingJobRole),
		errors.Is(err, entity.ErrMissingTopic),
		errors.Is(err, entity.ErrMissingResume),
		errors.Is(err, entity.ErrInvalidResume),
		errors.Is(err, entity.ErrResumeTooLarge),
		errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrInvalidParameter):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrSessionActive),
		errors.Is(err, entity.ErrSessionDone),
		errors.Is(err, entity.ErrProcessing),
		errors.Is(err, entity.ErrAlreadyRecording),
		errors.Is(err, entity.ErrPlaybackActive),
		errors.Is(err, entity.ErrHintUnavailable),
		errors.Is(err, entity.ErrStaleResponse):
		response.Error(w, http.StatusConflict, err.Error())
	default:
		response.Error(w, http.StatusBadGateway, "interview backend unavailable")
	}
}
