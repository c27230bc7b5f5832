package logger

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// AddFields adds fields to the logger in context and returns new context
func AddFields(ctx context.Context, fields ...zap.Field) context.Context {
	log := ctxzap.Extract(ctx)
	return ctxzap.ToContext(ctx, log.With(fields...))
}

// WithAction adds "action" field to context logger to describe the flow
func WithAction(ctx context.Context, action string) context.Context {
	log := ctxzap.Extract(ctx)
	return ctxzap.ToContext(ctx, log.With(zap.String("action", action)))
}
