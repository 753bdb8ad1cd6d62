package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation groups the chat messages a user keeps between sessions.
type Conversation struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChatMessage is one persisted turn of a conversation.
type ChatMessage struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	Role           string    `json:"role"` // "user" or "assistant"
	Content        string    `json:"content"`
	ImageURL       *string   `json:"image_url"`
	AudioURL       *string   `json:"audio_url"`
	CreatedAt      time.Time `json:"created_at"`
}

type CreateConversationRequest struct {
	Title string `json:"title"`
}

type AppendMessageRequest struct {
	Role     string  `json:"role"`
	Content  string  `json:"content"`
	ImageURL *string `json:"image_url"`
	AudioURL *string `json:"audio_url"`
}
