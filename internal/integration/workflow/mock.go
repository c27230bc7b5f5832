package workflow

import (
	"context"
	"fmt"
	"sync"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/kmalyshev/voice-interviewer/internal/entity"
)

// MockConnector is a canned workflow backend for local development without
// the real webhook endpoints. Selected via ENABLE_MOCKS.
type MockConnector struct {
	logger *zap.Logger

	mu   sync.Mutex
	step int
}

var mockQuestions = []string{
	"Tell me about a project where you had to make a difficult technical trade-off.",
	"How would you design a rate limiter for a public API?",
	"What happens between typing a URL in a browser and the page rendering?",
}

var mockHints = []string{
	"Think about what you optimized for and what you gave up.",
	"Consider token bucket vs sliding window.",
	"Start from DNS resolution and work forward.",
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) StartInterview(ctx context.Context, req *entity.StartInterviewRequest) (*entity.StartInterviewResponse, error) {
	ctxzap.Info(ctx, "[MOCK] starting interview",
		zap.String("job_role", req.JobRole),
		zap.String("topic", req.Topic),
	)

	m.mu.Lock()
	m.step = 0
	m.mu.Unlock()

	return &entity.StartInterviewResponse{
		SessionID:     "mock-session-1",
		Question:      mockQuestions[0],
		HintAvailable: true,
		Done:          false,
	}, nil
}

func (m *MockConnector) SubmitAnswer(ctx context.Context, req *entity.SubmitAnswerRequest) (*entity.SubmitAnswerResponse, error) {
	ctxzap.Info(ctx, "[MOCK] submitting answer",
		zap.String("session_id", req.SessionID),
		zap.Int("clip_size", len(req.Clip.Data)),
	)

	m.mu.Lock()
	m.step++
	step := m.step
	m.mu.Unlock()

	resp := &entity.SubmitAnswerResponse{
		SessionID:  req.SessionID,
		Transcript: fmt.Sprintf("(mock transcript for answer %d)", step),
	}

	if step < len(mockQuestions) {
		resp.Question = mockQuestions[step]
		resp.HintAvailable = true
	} else {
		resp.Done = true
	}

	return resp, nil
}

func (m *MockConnector) RequestHint(ctx context.Context, req *entity.RequestHintRequest) (*entity.RequestHintResponse, error) {
	ctxzap.Info(ctx, "[MOCK] requesting hint", zap.String("session_id", req.SessionID))

	m.mu.Lock()
	step := m.step
	m.mu.Unlock()

	if step >= len(mockHints) {
		step = len(mockHints) - 1
	}

	return &entity.RequestHintResponse{Hint: mockHints[step]}, nil
}
