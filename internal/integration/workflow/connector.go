package workflow

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/kmalyshev/voice-interviewer/internal/config"
	"github.com/kmalyshev/voice-interviewer/internal/entity"
	"github.com/kmalyshev/voice-interviewer/pkg/httpclient"
)

// The answer clip part keeps this filename regardless of the actual container;
// the workflow backend keys on it.
const answerPartFilename = "answer.webm"

// Connector talks to the external workflow backend over its two webhook
// endpoints. It never mutates session state; callers map responses themselves.
type Connector struct {
	cfg       config.WorkflowConnectorConfig
	connector *httpclient.Connector
	logger    *zap.Logger
}

func NewConnector(cfg config.WorkflowConnectorConfig, logger *zap.Logger) *Connector {
	return &Connector{
		cfg: cfg,
		connector: httpclient.NewConnector(
			logger,
			httpclient.WithRequestTimeout(cfg.RequestTimeout),
			httpclient.WithDialTimeout(cfg.DialTimeout),
			httpclient.WithKeepAlive(cfg.KeepAlive),
			httpclient.WithIdleConnTimeout(cfg.IdleConnTimeout),
			httpclient.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
			httpclient.WithRequestLogging(),
			httpclient.WithBearerToken(cfg.Token),
		),
		logger: logger,
	}
}

// StartInterview posts the candidate profile to the start endpoint.
func (c *Connector) StartInterview(ctx context.Context, req *entity.StartInterviewRequest) (*entity.StartInterviewResponse, error) {
	ctxzap.Info(ctx, "starting interview via workflow backend",
		zap.String("job_role", req.JobRole),
		zap.String("topic", req.Topic),
	)

	prepareBody := func(writer *multipart.Writer) error {
		if err := writer.WriteField("action", string(entity.ActionStart)); err != nil {
			return fmt.Errorf("write action field: %w", err)
		}
		if err := writer.WriteField("topic", req.Topic); err != nil {
			return fmt.Errorf("write topic field: %w", err)
		}
		if err := writer.WriteField("specific", req.SpecificTopic); err != nil {
			return fmt.Errorf("write specific field: %w", err)
		}
		if err := writer.WriteField("jobRole", req.JobRole); err != nil {
			return fmt.Errorf("write jobRole field: %w", err)
		}

		if req.Resume != nil {
			part, err := writer.CreateFormFile("resume", req.Resume.Name)
			if err != nil {
				return fmt.Errorf("create resume part: %w", err)
			}
			if _, err := part.Write(req.Resume.Data); err != nil {
				return fmt.Errorf("write resume content: %w", err)
			}
		}

		return nil
	}

	var resp entity.StartInterviewResponse
	err := c.post(ctx, c.cfg.StartURL, prepareBody, &resp)
	if err != nil {
		return nil, fmt.Errorf("start interview: %w", err)
	}

	ctxzap.Info(ctx, "interview started",
		zap.String("session_id", resp.SessionID),
		zap.Bool("hint_available", resp.HintAvailable),
		zap.Bool("done", resp.Done),
	)

	return &resp, nil
}

// SubmitAnswer posts the clip to the answer endpoint. The clip is sent even
// when nearly empty; the backend decides what to make of it.
func (c *Connector) SubmitAnswer(ctx context.Context, req *entity.SubmitAnswerRequest) (*entity.SubmitAnswerResponse, error) {
	ctxzap.Info(ctx, "submitting answer via workflow backend",
		zap.String("session_id", req.SessionID),
		zap.Int("clip_size", len(req.Clip.Data)),
	)

	prepareBody := func(writer *multipart.Writer) error {
		if err := writer.WriteField("sessionId", req.SessionID); err != nil {
			return fmt.Errorf("write sessionId field: %w", err)
		}

		part, err := writer.CreateFormFile("audio", answerPartFilename)
		if err != nil {
			return fmt.Errorf("create audio part: %w", err)
		}
		if _, err := part.Write(req.Clip.Data); err != nil {
			return fmt.Errorf("write audio content: %w", err)
		}

		return nil
	}

	var resp entity.SubmitAnswerResponse
	err := c.post(ctx, c.cfg.AnswerURL, prepareBody, &resp)
	if err != nil {
		return nil, fmt.Errorf("submit answer: %w", err)
	}

	return &resp, nil
}

// RequestHint asks the start endpoint for a hint on the current question.
func (c *Connector) RequestHint(ctx context.Context, req *entity.RequestHintRequest) (*entity.RequestHintResponse, error) {
	prepareBody := func(writer *multipart.Writer) error {
		if err := writer.WriteField("action", string(entity.ActionHint)); err != nil {
			return fmt.Errorf("write action field: %w", err)
		}
		if err := writer.WriteField("sessionId", req.SessionID); err != nil {
			return fmt.Errorf("write sessionId field: %w", err)
		}
		return nil
	}

	var resp entity.RequestHintResponse
	err := c.post(ctx, c.cfg.StartURL, prepareBody, &resp)
	if err != nil {
		return nil, fmt.Errorf("request hint: %w", err)
	}

	return &resp, nil
}

func (c *Connector) post(ctx context.Context, url string, prepare func(*multipart.Writer) error, out any) error {
	opts := append(c.cfg.Retry.ToRetryOptions(), retry.Context(ctx))
	return retry.Do(func() error {
		return c.connector.PostMultipart(ctx, url, prepare, out)
	}, opts...)
}
