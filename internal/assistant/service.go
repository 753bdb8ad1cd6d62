// Package assistant implements the AI gateway: one request in, up to three
// provider calls out (chat completion, image generation, speech synthesis),
// one composite JSON reply back. The service keeps no state between calls;
// conversation history arrives inside the request payload.
package assistant

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"

	"carelink-backend/internal/models"
	"carelink-backend/internal/openai"
)

// Client is the slice of the provider API the gateway needs. openai.Client
// satisfies it; tests inject a scripted fake.
type Client interface {
	ChatCompletion(ctx context.Context, model string, messages []openai.Message, maxTokens int, temperature float64) (string, error)
	GenerateImage(ctx context.Context, model, prompt string) (string, error)
	Speech(ctx context.Context, req openai.SpeechRequest) ([]byte, error)
}

// DocumentExtractor pulls plain text out of a document attachment.
type DocumentExtractor interface {
	ExtractFromDataURI(name, dataURI string) (string, error)
}

// Options carries the fixed knobs of the gateway.
type Options struct {
	ChatModel   string
	ImageModel  string
	SpeechModel string
	SpeechVoice string
	MaxTokens   int
	Temperature float64
}

const (
	maxSpeechChars = 4000
	imageMarker    = "[IMAGE_GENERATED]"

	wakeUpNotice = "\n\n🔔 WAKE UP NOTIFICATION ACTIVATED! I will send you a notification to make sure you're up and ready."
)

// Static follow-up prompts returned with every successful response.
var defaultSuggestions = []string{
	"Find a doctor near me",
	"Book an appointment",
	"Create an image for me",
	"Help me wake up on time",
}

type Service struct {
	client    Client
	rules     *Ruleset
	extractor DocumentExtractor
	opts      Options
}

func NewService(client Client, rules *Ruleset, extractor DocumentExtractor, opts Options) *Service {
	if rules == nil {
		rules = DefaultRules()
	}
	if opts.ChatModel == "" {
		opts.ChatModel = "gpt-4o-mini"
	}
	if opts.ImageModel == "" {
		opts.ImageModel = "dall-e-3"
	}
	if opts.SpeechModel == "" {
		opts.SpeechModel = "tts-1"
	}
	if opts.SpeechVoice == "" {
		opts.SpeechVoice = "nova"
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 800
	}
	if opts.Temperature == 0 {
		opts.Temperature = 0.8
	}
	return &Service{client: client, rules: rules, extractor: extractor, opts: opts}
}

// Respond runs one full gateway interaction. It never returns an error:
// every failure becomes a response with Success=false so the HTTP layer can
// keep its always-200 contract and clients branch only on the success flag.
func (s *Service) Respond(ctx context.Context, req *models.AssistantRequest) *models.AssistantResponse {
	mode := ParseMode(req.Mode)
	log.Printf("assistant request: mode=%s attachments=%d videoEnabled=%t analyzeFile=%t",
		mode, len(req.Attachments), req.VideoEnabled, req.AnalyzeFile)

	// TTS short-circuits everything else; the chat model is never invoked.
	if mode == ModeTTS {
		return s.speechOnly(ctx, req)
	}

	// Image side channel runs before the chat call. Its failure is logged
	// and the response simply omits imageUrl.
	var imageURL *string
	if s.shouldGenerateImage(req, mode) {
		if url, err := s.client.GenerateImage(ctx, s.opts.ImageModel, s.rules.StylePrompt(req.Input)); err != nil {
			log.Printf("image generation failed: %v", err)
		} else {
			imageURL = &url
		}
	}

	msgs := s.buildMessages(req, mode)
	text, err := s.client.ChatCompletion(ctx, s.opts.ChatModel, msgs, s.opts.MaxTokens, s.opts.Temperature)
	if err != nil {
		return s.failure(err)
	}

	if imageURL != nil {
		text = fmt.Sprintf("I've created an image for you! %s\n\n%s", imageMarker, text)
	}

	// Post-processing runs on the raw input, not the model's answer.
	isWake := s.rules.IsWakeUpRequest(req.Input)
	if isWake {
		text += wakeUpNotice
	}

	// The content-policy override replaces the model's entire answer. It
	// runs after every other text mutation so the replacement stays exact.
	if s.rules.ViolatesPolicy(req.Input) {
		text = s.rules.Refusal
	}

	var audioURL *string
	if req.WantsSpeech() {
		if url, err := s.synthesize(ctx, req, text); err != nil {
			log.Printf("speech synthesis failed: %v", err)
		} else {
			audioURL = &url
		}
	}

	return &models.AssistantResponse{
		Success:         true,
		Text:            text,
		AudioURL:        audioURL,
		ImageURL:        imageURL,
		Emotion:         s.detectEmotion(req, mode),
		IsWakeUpRequest: isWake,
		Suggestions:     defaultSuggestions,
	}
}

func (s *Service) shouldGenerateImage(req *models.AssistantRequest, mode Mode) bool {
	return req.GenerateImage || mode == ModeImageGeneration || s.rules.WantsImage(req.Input)
}

// speechOnly handles tts mode: synthesize the literal input and return only
// the audio.
func (s *Service) speechOnly(ctx context.Context, req *models.AssistantRequest) *models.AssistantResponse {
	url, err := s.synthesize(ctx, req, req.Input)
	if err != nil {
		log.Printf("tts request failed: %v", err)
		const msg = "Speech synthesis is unavailable right now. Please try again in a moment."
		return &models.AssistantResponse{Success: false, Error: msg, Text: msg}
	}
	return &models.AssistantResponse{Success: true, AudioURL: &url}
}

func (s *Service) synthesize(ctx context.Context, req *models.AssistantRequest, text string) (string, error) {
	if len(text) > maxSpeechChars {
		text = text[:maxSpeechChars]
	}

	speed := 1.0
	if req.Context != nil && req.Context.Settings != nil {
		switch req.Context.Settings.SpeechSpeed {
		case "slow":
			speed = 0.8
		case "fast":
			speed = 1.2
		}
	}

	audio, err := s.client.Speech(ctx, openai.SpeechRequest{
		Model: s.opts.SpeechModel,
		Input: text,
		Voice: s.opts.SpeechVoice,
		Speed: speed,
	})
	if err != nil {
		return "", err
	}
	return "data:audio/mp3;base64," + base64.StdEncoding.EncodeToString(audio), nil
}

// detectEmotion tags the input. The emotion object is only populated for
// voice mode or when a non-neutral keyword matched.
func (s *Service) detectEmotion(req *models.AssistantRequest, mode Mode) *models.Emotion {
	if rule := s.rules.DetectEmotion(req.Input); rule != nil {
		return &models.Emotion{
			Primary:     rule.Name,
			Confidence:  0.9,
			Tone:        rule.Tone,
			Description: rule.Description,
		}
	}
	if mode == ModeVoice {
		return &models.Emotion{
			Primary:     "neutral",
			Confidence:  0.7,
			Tone:        "friendly",
			Description: "No strong emotion detected",
		}
	}
	return nil
}
