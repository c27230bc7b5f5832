package keyboard

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Builder creates inline keyboards
type Builder struct{}

// NewBuilder creates a keyboard builder
func NewBuilder() *Builder {
	return &Builder{}
}

// QuestionKeyboard is attached to every question message. The hint button
// only appears while the hint allowance for the question is unused.
func (b *Builder) QuestionKeyboard(hintAvailable bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}

	if hintAvailable {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💡 Hint", "hint:request"),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔄 Start over", "confirm:ask"),
	))

	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// TranscriptKeyboard offers the export formats.
func (b *Builder) TranscriptKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 .md", "dl:markdown"),
			tgbotapi.NewInlineKeyboardButtonData("📕 .pdf", "dl:pdf"),
			tgbotapi.NewInlineKeyboardButtonData("📘 .docx", "dl:docx"),
		),
	)
}

// ConfirmResetKeyboard asks for reset confirmation.
func (b *Builder) ConfirmResetKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Yes, start over", "confirm:reset"),
			tgbotapi.NewInlineKeyboardButtonData("❌ No, continue", "confirm:continue"),
		),
	)
}
