package entity

// Wire contract for the external workflow backend. Two endpoints: the start
// endpoint also serves hint requests (dispatched on the "action" field), the
// answer endpoint takes the session id plus the audio clip.

type WorkflowAction string

const (
	ActionStart WorkflowAction = "start"
	ActionHint  WorkflowAction = "hint"
)

// StartInterviewRequest carries the candidate profile as multipart form
// fields: action, topic, specific, jobRole, resume (original filename kept).
type StartInterviewRequest struct {
	JobRole       string
	Topic         string
	SpecificTopic string
	Resume        *ResumeFile
}

type StartInterviewResponse struct {
	SessionID     string `json:"sessionId"`
	Question      string `json:"question"`
	HintAvailable bool   `json:"hintAvailable"`
	Done          bool   `json:"done"`
	TTSURL        string `json:"ttsUrl,omitempty"`
}

// SubmitAnswerRequest carries the session id and the finalized clip. The
// audio part filename is fixed to "answer.webm" by the wire contract.
type SubmitAnswerRequest struct {
	SessionID string
	Clip      *Clip
}

type SubmitAnswerResponse struct {
	SessionID     string `json:"sessionId"`
	Transcript    string `json:"transcript"`
	Question      string `json:"question"`
	HintAvailable bool   `json:"hintAvailable"`
	Done          bool   `json:"done"`
	TTSURL        string `json:"ttsUrl,omitempty"`
}

type RequestHintRequest struct {
	SessionID string
}

type RequestHintResponse struct {
	Hint   string `json:"hint"`
	TTSURL string `json:"ttsUrl,omitempty"`
}
