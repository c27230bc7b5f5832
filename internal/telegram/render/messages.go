package render

// User-facing bot copy. Kept in one place so the tone stays consistent.
const (
	MsgWelcome = `👋 Welcome to the voice interview bot!

I will ask you interview questions out loud style: you answer with voice messages, I transcribe and evaluate them.

To begin, tell me the job role you are interviewing for.`

	MsgAskTopic    = "📚 Got it. Which topic should the interview focus on?"
	MsgAskSpecific = "🔎 Any specific area within that topic? Send \"-\" to skip."
	MsgAskResume   = "📎 Now send your resume as a document (PDF or Word)."

	MsgStarting = "⏳ Starting your interview..."

	MsgAnswerReceived = "🎙 Answer received, processing..."

	MsgInterviewDone = "🏁 The interview is complete. Use the buttons below to download your transcript, or /reset to start over."

	MsgResetDone = "🔄 Session cleared. Use /start to begin a new interview."

	MsgConfirmReset = "⚠️ Are you sure? All interview progress will be lost."

	MsgHelp = `🤖 Bot commands:

/start - Begin a new interview
/status - Show the current question
/hint - Ask for a hint on the current question
/transcript - Download the interview transcript
/reset - Discard the session and start over
/help - Show this help

Answer questions by sending voice messages.`

	ErrGeneric        = "❌ Something went wrong. Please try again."
	ErrNoSession      = "❌ No active interview. Use /start to begin."
	ErrSessionExists  = "❌ An interview is already running. Use /reset to start over."
	ErrNotVoice       = "🎙 Please answer with a voice message."
	ErrHintUsed       = "💡 The hint for this question has already been used."
	ErrBusy           = "⏳ Still processing your previous request, one moment..."
	ErrResumeRejected = "📎 That file does not look like a resume. Please send a PDF or Word document."
	ErrVoiceTooLarge  = "🎙 That voice message is too large. Please keep answers under a few minutes."
)
