package assistant

import (
	"fmt"
	"log"
	"strings"

	"carelink-backend/internal/models"
	"carelink-backend/internal/openai"
)

const maxDocumentExcerpt = 6000

// buildSystemPrompt assembles the persona plus whatever personalization the
// request carried. Layered the same way for every mode.
func buildSystemPrompt(req *models.AssistantRequest) string {
	var b strings.Builder

	b.WriteString("You are Cara, the caring AI companion inside the CareLink learning and telemedicine app. ")
	b.WriteString("You help users study, look after their health, find doctors and clinics, and manage their day. ")
	b.WriteString("Be warm, clear, and concise, and answer in the language the user writes in.\n\n")

	if req.UserProfile != nil && req.UserProfile.FullName != "" {
		fmt.Fprintf(&b, "The user's name is %s. Address them by name when it feels natural.\n", req.UserProfile.FullName)
	}
	if req.UserEmail != "" {
		fmt.Fprintf(&b, "The user's account email is %s.\n", req.UserEmail)
	}

	if ctx := req.Context; ctx != nil {
		if len(ctx.RecognizedPeople) > 0 {
			fmt.Fprintf(&b, "People recognized nearby: %s.\n", strings.Join(ctx.RecognizedPeople, ", "))
		}
		if ctx.CurrentEmotion != "" {
			fmt.Fprintf(&b, "The user's current detected emotion is %q; match your tone to it.\n", ctx.CurrentEmotion)
		}
		if ctx.CurrentScene != "" {
			fmt.Fprintf(&b, "Current camera scene: %s.\n", ctx.CurrentScene)
		}
		if len(ctx.UploadedFiles) > 0 {
			fmt.Fprintf(&b, "Files the user uploaded this session: %s.\n", strings.Join(ctx.UploadedFiles, ", "))
		}
	}

	return b.String()
}

// buildMessages produces the outbound message list: system prompt, prior
// history turns converted to alternating user/assistant roles, then the
// mode-specific user message.
func (s *Service) buildMessages(req *models.AssistantRequest, mode Mode) []openai.Message {
	msgs := []openai.Message{openai.TextMessage("system", buildSystemPrompt(req))}

	if req.Context != nil {
		for _, turn := range req.Context.ConversationHistory {
			role := "assistant"
			if turn.Role == "user" {
				role = "user"
			}
			msgs = append(msgs, openai.TextMessage(role, turn.Content))
		}
	}

	return append(msgs, s.userMessage(req, mode))
}

func (s *Service) userMessage(req *models.AssistantRequest, mode Mode) openai.Message {
	att := req.FirstAttachment()

	switch mode {
	case ModeImage:
		if att != nil {
			instruction := req.Input
			if strings.TrimSpace(instruction) == "" {
				instruction = "Please analyze this image and describe what you see."
			}
			return openai.Message{Role: "user", Content: []openai.ContentPart{
				{Type: "text", Text: instruction},
				{Type: "image_url", ImageURL: &openai.ImageURL{URL: att.Data}},
			}}
		}

	case ModeDocument:
		if att != nil {
			return openai.TextMessage("user", s.documentPrompt(req.Input, att))
		}

	case ModeVoice:
		if req.Context != nil && req.Context.CurrentEmotion != "" {
			return openai.TextMessage("user",
				fmt.Sprintf("[The user sounds %s] %s", req.Context.CurrentEmotion, req.Input))
		}

	case ModeVideo:
		text := "Describe the scene in exhaustive detail for a blind user: layout, people, objects, colors, movement, and anything that matters for moving through it safely. " + req.Input
		if att != nil {
			return openai.Message{Role: "user", Content: []openai.ContentPart{
				{Type: "text", Text: text},
				{Type: "image_url", ImageURL: &openai.ImageURL{URL: att.Data}},
			}}
		}
		return openai.TextMessage("user", text)

	case ModeSongGeneration:
		return openai.TextMessage("user",
			"Write an original song with a title, verses, and a chorus based on this request: "+req.Input)

	case ModeSongIdentification:
		return openai.TextMessage("user",
			"Identify the song the user is describing and share the title, artist, and one interesting fact about it: "+req.Input)

	case ModeAlarm:
		return openai.TextMessage("user",
			"The user wants help with an alarm or wake-up routine. Confirm the request warmly and explain what will happen: "+req.Input)
	}

	return openai.TextMessage("user", req.Input)
}

// documentPrompt embeds the attachment's name and type, plus the extracted
// text when the file format allows it. Extraction failures only cost the
// excerpt, never the request.
func (s *Service) documentPrompt(input string, att *models.Attachment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The user uploaded a document named %q (%s).\n", att.Name, att.Type)

	if s.extractor != nil {
		if text, err := s.extractor.ExtractFromDataURI(att.Name, att.Data); err != nil {
			log.Printf("document extraction failed for %s: %v", att.Name, err)
		} else {
			if len(text) > maxDocumentExcerpt {
				text = text[:maxDocumentExcerpt]
			}
			fmt.Fprintf(&b, "Document content:\n---\n%s\n---\n", text)
		}
	}

	if strings.TrimSpace(input) != "" {
		b.WriteString("Answer the user's specific question about it: " + input)
	} else {
		b.WriteString("Ask the user what they would like to know about this document.")
	}
	return b.String()
}
