package assistant

import (
	"errors"
	"net/http"
	"strings"

	"carelink-backend/internal/models"
	"carelink-backend/internal/openai"
)

// User-facing failure messages. Every upstream error collapses into one of
// these four.
const (
	msgHighDemand   = "I'm experiencing high demand right now. Please try again in a few moments."
	msgConfig       = "There is a configuration problem with the AI service. Please contact support."
	msgConnectivity = "I couldn't reach the AI service. Please check your connection and try again."
	msgGeneric      = "I'm having technical difficulties right now. Please try again shortly."
)

// failure maps any error from the chat call into a uniform unsuccessful
// response. The HTTP layer still replies 200; clients read the success flag.
func (s *Service) failure(err error) *models.AssistantResponse {
	msg := classify(err)
	return &models.AssistantResponse{
		Success:     false,
		Error:       msg,
		Text:        msg,
		Suggestions: defaultSuggestions,
	}
}

// classify checks the upstream HTTP status first, then falls back to
// substring matching on the error message.
func classify(err error) string {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusTooManyRequests:
			return msgHighDemand
		case http.StatusUnauthorized:
			return msgConfig
		}
	}

	m := strings.ToLower(err.Error())
	switch {
	case strings.Contains(m, "rate limit"), strings.Contains(m, "quota"), strings.Contains(m, "429"):
		return msgHighDemand
	case strings.Contains(m, "api key"), strings.Contains(m, "unauthorized"), strings.Contains(m, "401"):
		return msgConfig
	case strings.Contains(m, "network"), strings.Contains(m, "connect"):
		return msgConnectivity
	default:
		return msgGeneric
	}
}
