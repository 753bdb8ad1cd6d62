package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"carelink-backend/internal/middleware"
	"carelink-backend/internal/models"
)

// Attachments arrive inline as data URIs, so the body cap has to leave room
// for a base64-encoded document or photo.
const maxAssistantBody = 25 << 20

type assistantService interface {
	Respond(ctx context.Context, req *models.AssistantRequest) *models.AssistantResponse
}

type AssistantHandler struct {
	service assistantService
}

func NewAssistantHandler(service assistantService) *AssistantHandler {
	return &AssistantHandler{service: service}
}

// Respond always answers 200. Failures travel in the body with success=false
// so the mobile client branches on one flag instead of HTTP status codes.
func (h *AssistantHandler) Respond(w http.ResponseWriter, r *http.Request) {
	var req models.AssistantRequest
	body := io.LimitReader(r.Body, maxAssistantBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeJSON(w, http.StatusOK, &models.AssistantResponse{
			Success: false,
			Error:   "Invalid request body",
			Text:    "I couldn't read that request. Please try again.",
		})
		return
	}

	// Signed-in callers get personalization even when the client omits it.
	if req.UserEmail == "" {
		req.UserEmail = middleware.GetEmail(r.Context())
	}

	writeJSON(w, http.StatusOK, h.service.Respond(r.Context(), &req))
}
