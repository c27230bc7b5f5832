package handlers

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/kmalyshev/voice-interviewer/internal/entity"
	"github.com/kmalyshev/voice-interviewer/internal/telegram/keyboard"
	"github.com/kmalyshev/voice-interviewer/internal/telegram/render"
	usecase "github.com/kmalyshev/voice-interviewer/internal/usecase/interview"
)

// Handler drives the interview conversation: profile intake over text
// messages, voice answers, hint and transcript buttons.
type Handler struct {
	api      *tgbotapi.BotAPI
	usecase  InterviewUsecase
	keyboard *keyboard.Builder
	logger   *zap.Logger
	intake   *intakeTracker
}

func NewHandler(api *tgbotapi.BotAPI, uc InterviewUsecase, kb *keyboard.Builder, logger *zap.Logger) *Handler {
	return &Handler{
		api:      api,
		usecase:  uc,
		keyboard: kb,
		logger:   logger,
		intake:   newIntakeTracker(),
	}
}

// HandleCommand routes bot commands.
func (h *Handler) HandleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	command := message.Command()

	ctxzap.Info(ctx, "command received",
		zap.String("command", command),
		zap.Int64("user_id", message.From.ID),
	)

	switch command {
	case "start":
		h.handleStart(ctx, chatID)
	case "status":
		h.sendQuestion(ctx, chatID)
	case "hint":
		h.handleHint(ctx, chatID)
	case "transcript":
		h.handleTranscriptMenu(ctx, chatID)
	case "reset":
		h.send(ctx, chatID, render.MsgConfirmReset, h.keyboard.ConfirmResetKeyboard())
	case "help":
		h.send(ctx, chatID, render.MsgHelp, nil)
	default:
		h.send(ctx, chatID, "❌ Unknown command. Use /help", nil)
	}
}

// HandleMessage routes non-command messages by their payload: documents feed
// the resume intake, voice messages answer the current question, text
// advances the profile intake.
func (h *Handler) HandleMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	switch {
	case message.Document != nil:
		h.handleResumeDocument(ctx, chatID, message.Document)
	case message.Voice != nil:
		h.handleVoiceAnswer(ctx, chatID, message.Voice)
	case message.Text != "":
		h.handleText(ctx, chatID, message.Text)
	}
}

// HandleCallback routes inline button clicks.
func (h *Handler) HandleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	data, err := keyboard.ParseCallback(query.Data)
	if err != nil {
		ctxzap.Error(ctx, "invalid callback data", zap.Error(err), zap.String("data", query.Data))
		h.answerCallback(query.ID, "❌ Invalid request")
		return
	}

	chatID := query.Message.Chat.ID

	switch data.Action {
	case "hint":
		h.answerCallback(query.ID, "💡 Fetching hint...")
		h.handleHint(ctx, chatID)
	case "dl":
		h.answerCallback(query.ID, "📄 Preparing transcript...")
		h.handleTranscriptDownload(ctx, chatID, entity.ReportFormat(data.Value))
	case "confirm":
		switch data.Value {
		case "ask":
			h.answerCallback(query.ID, "")
			h.send(ctx, chatID, render.MsgConfirmReset, h.keyboard.ConfirmResetKeyboard())
		case "reset":
			h.answerCallback(query.ID, "🔄 Resetting...")
			h.usecase.Reset()
			h.intake.clear(chatID)
			h.send(ctx, chatID, render.MsgResetDone, nil)
		default:
			h.answerCallback(query.ID, "👍")
		}
	default:
		h.answerCallback(query.ID, "❌ Unknown action")
	}
}

func (h *Handler) handleStart(ctx context.Context, chatID int64) {
	status := h.usecase.Snapshot()
	if status.Session.ID != "" {
		h.send(ctx, chatID, render.ErrSessionExists, nil)
		return
	}

	h.intake.begin(chatID)
	h.send(ctx, chatID, render.MsgWelcome, nil)
}

func (h *Handler) handleText(ctx context.Context, chatID int64, text string) {
	switch h.intake.submitText(chatID, text) {
	case stageTopic:
		h.send(ctx, chatID, render.MsgAskTopic, nil)
	case stageSpecific:
		h.send(ctx, chatID, render.MsgAskSpecific, nil)
	case stageResume:
		h.send(ctx, chatID, render.MsgAskResume, nil)
	case stageIdle:
		if h.usecase.Snapshot().Session.ID != "" {
			h.send(ctx, chatID, render.ErrNotVoice, nil)
		} else {
			h.send(ctx, chatID, render.ErrNoSession, nil)
		}
	}
}

func (h *Handler) handleResumeDocument(ctx context.Context, chatID int64, doc *tgbotapi.Document) {
	if h.intake.stage(chatID) != stageResume {
		h.send(ctx, chatID, render.ErrNoSession, nil)
		return
	}

	resume, err := downloadResume(ctx, h.api, doc)
	if err != nil {
		ctxzap.Error(ctx, "failed to download resume", zap.Error(err))
		h.send(ctx, chatID, render.ErrGeneric, nil)
		return
	}

	profile, ok := h.intake.submitResume(chatID, resume)
	if !ok {
		h.send(ctx, chatID, render.ErrNoSession, nil)
		return
	}

	h.send(ctx, chatID, render.MsgStarting, nil)

	if err := h.usecase.Start(ctx, profile); err != nil {
		h.reportError(ctx, chatID, err)
		return
	}

	h.intake.clear(chatID)
	h.sendQuestion(ctx, chatID)
}

func (h *Handler) handleVoiceAnswer(ctx context.Context, chatID int64, voice *tgbotapi.Voice) {
	status := h.usecase.Snapshot()
	if status.Session.ID == "" {
		h.send(ctx, chatID, render.ErrNoSession, nil)
		return
	}

	clip, err := downloadVoiceClip(ctx, h.api, voice)
	if err != nil {
		ctxzap.Error(ctx, "failed to download voice answer", zap.Error(err))
		h.send(ctx, chatID, render.ErrVoiceTooLarge, nil)
		return
	}

	h.send(ctx, chatID, render.MsgAnswerReceived, nil)

	if err := h.usecase.SubmitClip(ctx, clip); err != nil {
		h.reportError(ctx, chatID, err)
		return
	}

	h.sendQuestion(ctx, chatID)
}

func (h *Handler) handleHint(ctx context.Context, chatID int64) {
	if err := h.usecase.RequestHint(ctx); err != nil {
		h.reportError(ctx, chatID, err)
		return
	}

	status := h.usecase.Snapshot()
	history := status.Session.History
	if len(history) > 0 && history[len(history)-1].Role == entity.TurnRoleHint {
		h.send(ctx, chatID, "💡 "+history[len(history)-1].Text, nil)
	}
}

func (h *Handler) handleTranscriptMenu(ctx context.Context, chatID int64) {
	if h.usecase.Snapshot().Session.ID == "" {
		h.send(ctx, chatID, render.ErrNoSession, nil)
		return
	}
	h.send(ctx, chatID, "📄 Choose a transcript format:", h.keyboard.TranscriptKeyboard())
}

func (h *Handler) handleTranscriptDownload(ctx context.Context, chatID int64, format entity.ReportFormat) {
	data, f, err := h.usecase.ExportTranscript(format)
	if err != nil {
		h.reportError(ctx, chatID, err)
		return
	}

	status := h.usecase.Snapshot()
	filename := fmt.Sprintf("transcript-%s%s", status.Session.ID, f.FileExtension())

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: filename, Bytes: data})
	if _, err := h.api.Send(doc); err != nil {
		ctxzap.Error(ctx, "failed to send transcript document",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

// sendQuestion shows the current question with its controls, or the
// completion message when the interview is done.
func (h *Handler) sendQuestion(ctx context.Context, chatID int64) {
	status := h.usecase.Snapshot()

	if status.Session.ID == "" {
		h.send(ctx, chatID, render.ErrNoSession, nil)
		return
	}

	if status.Session.Done {
		h.send(ctx, chatID, render.MsgInterviewDone, h.keyboard.TranscriptKeyboard())
		return
	}

	h.send(ctx, chatID, "❓ "+status.Session.Question, h.keyboard.QuestionKeyboard(status.Session.HintAvailable))
}

// reportError surfaces blocking failures to the chat and keeps silent ones
// in the logs only.
func (h *Handler) reportError(ctx context.Context, chatID int64, err error) {
	ctxzap.Error(ctx, "interview operation failed", zap.Error(err), zap.Int64("chat_id", chatID))

	if usecase.Classify(err) == entity.SeveritySilent {
		// Guard rejections still get a short nudge where one helps.
		switch {
		case errors.Is(err, entity.ErrProcessing):
			h.send(ctx, chatID, render.ErrBusy, nil)
		case errors.Is(err, entity.ErrHintUnavailable):
			h.send(ctx, chatID, render.ErrHintUsed, nil)
		}
		return
	}

	switch {
	case errors.Is(err, entity.ErrInvalidResume),
		errors.Is(err, entity.ErrResumeTooLarge),
		errors.Is(err, entity.ErrMissingResume):
		h.send(ctx, chatID, render.ErrResumeRejected, nil)
	case errors.Is(err, entity.ErrNoSession):
		h.send(ctx, chatID, render.ErrNoSession, nil)
	case errors.Is(err, entity.ErrSessionActive):
		h.send(ctx, chatID, render.ErrSessionExists, nil)
	default:
		h.send(ctx, chatID, render.ErrGeneric, nil)
	}
}

func (h *Handler) send(ctx context.Context, chatID int64, text string, replyMarkup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	if replyMarkup != nil {
		msg.ReplyMarkup = replyMarkup
	}
	if _, err := h.api.Send(msg); err != nil {
		ctxzap.Error(ctx, "failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

func (h *Handler) answerCallback(callbackID, text string) {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := h.api.Request(callback); err != nil {
		h.logger.Error("failed to answer callback",
			zap.Error(err),
			zap.String("callback_id", callbackID),
		)
	}
}
