package models

import (
	"bytes"
	"encoding/json"
)

// AssistantRequest is the payload accepted by the assistant gateway
// endpoint. Input is the only required field; everything else is optional
// context the client may attach.
type AssistantRequest struct {
	Input         string          `json:"input"`
	Mode          string          `json:"mode"`
	Attachments   []Attachment    `json:"attachments"`
	VideoEnabled  bool            `json:"videoEnabled"`
	Context       *RequestContext `json:"context"`
	GenerateImage bool            `json:"generateImage"`
	AnalyzeFile   bool            `json:"analyzeFile"`
	// ShouldSpeak is kept as raw JSON: speech is only synthesized when the
	// client sends the literal boolean true. The string "true" does not
	// count.
	ShouldSpeak json.RawMessage `json:"shouldSpeak"`
	UserEmail   string          `json:"userEmail"`
	UserProfile *UserProfile    `json:"userProfile"`
}

func (r *AssistantRequest) WantsSpeech() bool {
	return bytes.Equal(bytes.TrimSpace(r.ShouldSpeak), []byte("true"))
}

// FirstAttachment returns the only attachment the gateway ever consults.
func (r *AssistantRequest) FirstAttachment() *Attachment {
	if len(r.Attachments) == 0 {
		return nil
	}
	return &r.Attachments[0]
}

// Attachment is a file the client selected. Data is a data URI built
// client-side; nothing here is persisted.
type Attachment struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data string `json:"data"`
	Size int64  `json:"size"`
}

// RequestContext is an optional bag of client-side settings and state.
// Fields are passed through to prompt construction without validation
// beyond presence checks.
type RequestContext struct {
	Settings            *ContextSettings `json:"settings"`
	RecognizedPeople    []string         `json:"recognizedPeople"`
	CurrentEmotion      string           `json:"currentEmotion"`
	CurrentScene        string           `json:"currentScene"`
	UploadedFiles       []string         `json:"uploadedFiles"`
	ConversationHistory []HistoryTurn    `json:"conversationHistory"`
}

type ContextSettings struct {
	PreferredVoice string `json:"preferredVoice"`
	SpeechSpeed    string `json:"speechSpeed"` // "slow" | "normal" | "fast"
}

type HistoryTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type UserProfile struct {
	FullName string `json:"full_name"`
}

// AssistantResponse is the single composite reply. Success is the only
// field clients need to branch on; failures still travel in an HTTP 200
// body.
type AssistantResponse struct {
	Success         bool     `json:"success"`
	Text            string   `json:"text,omitempty"`
	AudioURL        *string  `json:"audioUrl"`
	ImageURL        *string  `json:"imageUrl"`
	Emotion         *Emotion `json:"emotion"`
	IsWakeUpRequest bool     `json:"isWakeUpRequest"`
	Suggestions     []string `json:"suggestions,omitempty"`
	Error           string   `json:"error,omitempty"`
}

type Emotion struct {
	Primary     string  `json:"primary"`
	Confidence  float64 `json:"confidence"`
	Tone        string  `json:"tone"`
	Description string  `json:"description"`
}
