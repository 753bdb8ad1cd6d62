package assistant

import (
	"fmt"
	"strings"
	"testing"

	"carelink-backend/internal/models"
	"carelink-backend/internal/openai"
)

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) ExtractFromDataURI(name, dataURI string) (string, error) {
	return f.text, f.err
}

func TestBuildSystemPrompt_Personalization(t *testing.T) {
	req := &models.AssistantRequest{
		UserEmail:   "amira@example.com",
		UserProfile: &models.UserProfile{FullName: "Amira Khan"},
		Context: &models.RequestContext{
			RecognizedPeople: []string{"Dana", "Luis"},
			CurrentEmotion:   "tired",
			CurrentScene:     "kitchen, morning light",
			UploadedFiles:    []string{"labs.pdf"},
		},
	}

	prompt := buildSystemPrompt(req)

	for _, want := range []string{
		"Cara",
		"Amira Khan",
		"amira@example.com",
		"Dana, Luis",
		`"tired"`,
		"kitchen, morning light",
		"labs.pdf",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected system prompt to contain %q", want)
		}
	}
}

func TestBuildSystemPrompt_Anonymous(t *testing.T) {
	prompt := buildSystemPrompt(&models.AssistantRequest{})

	if !strings.Contains(prompt, "Cara") {
		t.Error("Expected persona in system prompt")
	}
	if strings.Contains(prompt, "The user's name") {
		t.Error("Anonymous requests must not mention a name")
	}
}

func TestBuildMessages_HistoryRoleConversion(t *testing.T) {
	svc := newTestService(&fakeClient{})

	req := &models.AssistantRequest{
		Input: "and now?",
		Context: &models.RequestContext{
			ConversationHistory: []models.HistoryTurn{
				{Role: "user", Content: "first question"},
				{Role: "model", Content: "first answer"},
				{Role: "assistant", Content: "second answer"},
			},
		},
	}

	msgs := svc.buildMessages(req, ModeText)

	if len(msgs) != 5 {
		t.Fatalf("Expected system + 3 history + user = 5 messages, got %d", len(msgs))
	}
	if msgs[0].Role != "system" {
		t.Errorf("Expected system message first, got %q", msgs[0].Role)
	}

	wantRoles := []string{"user", "assistant", "assistant"}
	for i, want := range wantRoles {
		if msgs[i+1].Role != want {
			t.Errorf("History turn %d: expected role %q, got %q", i, want, msgs[i+1].Role)
		}
	}
	if msgs[4].Role != "user" || msgs[4].Content != "and now?" {
		t.Errorf("Expected trailing user message, got %+v", msgs[4])
	}
}

func TestUserMessage_ImageModeDefaultInstruction(t *testing.T) {
	svc := newTestService(&fakeClient{})

	req := &models.AssistantRequest{
		Mode: "image",
		Attachments: []models.Attachment{
			{Name: "photo.jpg", Type: "image/jpeg", Data: "data:image/jpeg;base64,abc"},
		},
	}

	msg := svc.userMessage(req, ModeImage)

	parts, ok := msg.Content.([]openai.ContentPart)
	if !ok {
		t.Fatalf("Expected multimodal content, got %T", msg.Content)
	}
	if len(parts) != 2 {
		t.Fatalf("Expected text + image parts, got %d", len(parts))
	}
	if parts[0].Text != "Please analyze this image and describe what you see." {
		t.Errorf("Expected default instruction for empty input, got %q", parts[0].Text)
	}
	if parts[1].ImageURL == nil || parts[1].ImageURL.URL != "data:image/jpeg;base64,abc" {
		t.Error("Expected attachment data URI in image part")
	}
}

func TestUserMessage_ImageModeWithoutAttachment(t *testing.T) {
	svc := newTestService(&fakeClient{})

	msg := svc.userMessage(&models.AssistantRequest{Input: "look at this", Mode: "image"}, ModeImage)

	if msg.Content != "look at this" {
		t.Errorf("Image mode without attachment falls back to plain text, got %v", msg.Content)
	}
}

func TestUserMessage_VoiceModeEmotionHint(t *testing.T) {
	svc := newTestService(&fakeClient{})

	req := &models.AssistantRequest{
		Input:   "can you help me",
		Context: &models.RequestContext{CurrentEmotion: "anxious"},
	}

	msg := svc.userMessage(req, ModeVoice)

	want := "[The user sounds anxious] can you help me"
	if msg.Content != want {
		t.Errorf("Expected %q, got %v", want, msg.Content)
	}
}

func TestDocumentPrompt(t *testing.T) {
	att := &models.Attachment{Name: "notes.txt", Type: "text/plain", Data: "data:text/plain;base64,abc"}

	t.Run("with extracted text and question", func(t *testing.T) {
		svc := NewService(&fakeClient{}, nil, &fakeExtractor{text: "meeting at noon"}, Options{})

		prompt := svc.documentPrompt("when is the meeting?", att)

		if !strings.Contains(prompt, `"notes.txt"`) {
			t.Error("Expected file name in prompt")
		}
		if !strings.Contains(prompt, "meeting at noon") {
			t.Error("Expected extracted text in prompt")
		}
		if !strings.Contains(prompt, "when is the meeting?") {
			t.Error("Expected the user's question in prompt")
		}
	})

	t.Run("extraction failure keeps the request alive", func(t *testing.T) {
		svc := NewService(&fakeClient{}, nil, &fakeExtractor{err: fmt.Errorf("corrupt file")}, Options{})

		prompt := svc.documentPrompt("summarize it", att)

		if strings.Contains(prompt, "Document content:") {
			t.Error("Expected no content section after extraction failure")
		}
		if !strings.Contains(prompt, "summarize it") {
			t.Error("Expected the question to survive extraction failure")
		}
	})

	t.Run("no question asks what the user wants", func(t *testing.T) {
		svc := NewService(&fakeClient{}, nil, &fakeExtractor{text: "hello"}, Options{})

		prompt := svc.documentPrompt("  ", att)

		if !strings.Contains(prompt, "what they would like to know") {
			t.Errorf("Expected follow-up question for empty input, got %q", prompt)
		}
	})

	t.Run("long excerpt is truncated", func(t *testing.T) {
		svc := NewService(&fakeClient{}, nil, &fakeExtractor{text: strings.Repeat("x", maxDocumentExcerpt+100)}, Options{})

		prompt := svc.documentPrompt("q", att)

		if strings.Contains(prompt, strings.Repeat("x", maxDocumentExcerpt+1)) {
			t.Error("Expected excerpt truncated to the cap")
		}
	})
}

func TestUserMessage_InstructionWrappers(t *testing.T) {
	svc := newTestService(&fakeClient{})

	tests := []struct {
		mode     Mode
		contains string
	}{
		{ModeSongGeneration, "Write an original song"},
		{ModeSongIdentification, "Identify the song"},
		{ModeAlarm, "alarm or wake-up routine"},
	}

	for _, tc := range tests {
		msg := svc.userMessage(&models.AssistantRequest{Input: "do it"}, tc.mode)
		text, ok := msg.Content.(string)
		if !ok {
			t.Fatalf("mode %s: expected string content", tc.mode)
		}
		if !strings.Contains(text, tc.contains) {
			t.Errorf("mode %s: expected wrapper %q, got %q", tc.mode, tc.contains, text)
		}
		if !strings.HasSuffix(text, "do it") {
			t.Errorf("mode %s: expected input appended, got %q", tc.mode, text)
		}
	}
}
