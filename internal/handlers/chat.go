package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"carelink-backend/internal/middleware"
	"carelink-backend/internal/models"
	"carelink-backend/internal/repository"
)

type ChatHandler struct {
	conversationRepo *repository.ConversationRepo
	messageRepo      *repository.MessageRepo
}

func NewChatHandler(conversationRepo *repository.ConversationRepo, messageRepo *repository.MessageRepo) *ChatHandler {
	return &ChatHandler{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
	}
}

func (h *ChatHandler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	var req models.CreateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "New conversation"
	}

	conversation := &models.Conversation{
		UserID: middleware.GetUserID(r.Context()),
		Title:  title,
	}
	if err := h.conversationRepo.Create(r.Context(), conversation); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create conversation", r))
		return
	}

	writeJSON(w, http.StatusCreated, conversation)
}

func (h *ChatHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	conversations, err := h.conversationRepo.ListByUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list conversations", r))
		return
	}
	if conversations == nil {
		conversations = []*models.Conversation{}
	}
	writeJSON(w, http.StatusOK, conversations)
}

func (h *ChatHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	conversation, ok := h.ownedConversation(w, r)
	if !ok {
		return
	}

	messages, err := h.messageRepo.ListByConversation(r.Context(), conversation.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load messages", r))
		return
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"conversation": conversation,
		"messages":     messages,
	})
}

func (h *ChatHandler) AppendMessage(w http.ResponseWriter, r *http.Request) {
	conversation, ok := h.ownedConversation(w, r)
	if !ok {
		return
	}

	var req models.AppendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.Role != "user" && req.Role != "assistant" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Role must be user or assistant", r))
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Content is required", r))
		return
	}

	message := &models.ChatMessage{
		ConversationID: conversation.ID,
		Role:           req.Role,
		Content:        req.Content,
		ImageURL:       req.ImageURL,
		AudioURL:       req.AudioURL,
	}
	if err := h.messageRepo.Create(r.Context(), message); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to save message", r))
		return
	}
	h.conversationRepo.Touch(r.Context(), conversation.ID)

	writeJSON(w, http.StatusCreated, message)
}

func (h *ChatHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	conversation, ok := h.ownedConversation(w, r)
	if !ok {
		return
	}

	if err := h.conversationRepo.Delete(r.Context(), conversation.ID); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete conversation", r))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ownedConversation loads the conversation from the URL and verifies the
// caller owns it. On failure it writes the error response and returns ok=false.
func (h *ChatHandler) ownedConversation(w http.ResponseWriter, r *http.Request) (*models.Conversation, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid conversation ID", r))
		return nil, false
	}

	conversation, err := h.conversationRepo.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Conversation not found", r))
		return nil, false
	}

	if conversation.UserID != middleware.GetUserID(r.Context()) {
		writeJSON(w, http.StatusForbidden, errorResp("FORBIDDEN", "Access denied", r))
		return nil, false
	}

	return conversation, true
}
