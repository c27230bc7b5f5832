package telegram

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kmalyshev/voice-interviewer/internal/config"
	"github.com/kmalyshev/voice-interviewer/internal/telegram/bot"
	"github.com/kmalyshev/voice-interviewer/internal/telegram/handlers"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot initializes the telegram bot with all dependencies
func NewBot(cfg *config.TelegramConfig, uc handlers.InterviewUsecase, logger *zap.Logger) (Bot, error) {
	b, err := bot.New(cfg, uc, logger)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	logger.Info("telegram bot initialized successfully")

	return b, nil
}
