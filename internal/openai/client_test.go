package openai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestChatCompletion(t *testing.T) {
	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"hi there"}}]}`))
	}))
	defer server.Close()

	client := NewClient("sk-test", WithBaseURL(server.URL))

	text, err := client.ChatCompletion(context.Background(), "gpt-4o-mini",
		[]Message{TextMessage("user", "hello")}, 100, 0.5)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text != "hi there" {
		t.Errorf("Expected content from first choice, got %q", text)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Expected bearer auth header, got %q", gotAuth)
	}
	if gotPath != "/chat/completions" {
		t.Errorf("Expected /chat/completions path, got %q", gotPath)
	}
}

func TestChatCompletion_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewClient("sk-test", WithBaseURL(server.URL))

	if _, err := client.ChatCompletion(context.Background(), "m", nil, 0, 0); err == nil {
		t.Fatal("Expected error for empty choices")
	}
}

func TestAPIErrorCarriesStatusCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"Rate limit reached"}}`))
	}))
	defer server.Close()

	client := NewClient("sk-test", WithBaseURL(server.URL))

	_, err := client.ChatCompletion(context.Background(), "m", nil, 0, 0)
	if err == nil {
		t.Fatal("Expected error for 429 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "Rate limit reached" {
		t.Errorf("Expected upstream error message, got %q", apiErr.Message)
	}
}

func TestMissingAPIKey(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewClient("", WithBaseURL(server.URL))

	_, err := client.ChatCompletion(context.Background(), "m", nil, 0, 0)
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("Expected ErrMissingAPIKey, got %v", err)
	}
	if called {
		t.Error("No request should be sent without a credential")
	}
}

func TestGenerateImage(t *testing.T) {
	t.Run("base64 becomes data URI", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/images/generations" {
				t.Errorf("Expected /images/generations, got %q", r.URL.Path)
			}
			w.Write([]byte(`{"data":[{"b64_json":"aGVsbG8="}]}`))
		}))
		defer server.Close()

		client := NewClient("sk-test", WithBaseURL(server.URL))

		url, err := client.GenerateImage(context.Background(), "dall-e-3", "a cat")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if url != "data:image/png;base64,aGVsbG8=" {
			t.Errorf("Expected data URI, got %q", url)
		}
	})

	t.Run("url passthrough", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":[{"url":"https://img.example/x.png"}]}`))
		}))
		defer server.Close()

		client := NewClient("sk-test", WithBaseURL(server.URL))

		url, err := client.GenerateImage(context.Background(), "dall-e-3", "a cat")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if url != "https://img.example/x.png" {
			t.Errorf("Expected upstream URL, got %q", url)
		}
	})

	t.Run("empty data errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":[]}`))
		}))
		defer server.Close()

		client := NewClient("sk-test", WithBaseURL(server.URL))

		if _, err := client.GenerateImage(context.Background(), "dall-e-3", "a cat"); err == nil {
			t.Fatal("Expected error for empty data")
		}
	})
}

func TestSpeech(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/speech" {
			t.Errorf("Expected /audio/speech, got %q", r.URL.Path)
		}
		w.Write([]byte("raw-mp3-bytes"))
	}))
	defer server.Close()

	client := NewClient("sk-test", WithBaseURL(server.URL))

	audio, err := client.Speech(context.Background(), SpeechRequest{
		Model: "tts-1",
		Input: "hello",
		Voice: "nova",
		Speed: 1.2,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(audio) != "raw-mp3-bytes" {
		t.Errorf("Expected raw body bytes, got %q", audio)
	}
}

func TestErrorMessageFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	client := NewClient("sk-test", WithBaseURL(server.URL))

	_, err := client.ChatCompletion(context.Background(), "m", nil, 0, 0)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %T", err)
	}
	if !strings.Contains(apiErr.Message, "upstream exploded") {
		t.Errorf("Expected raw body as message, got %q", apiErr.Message)
	}
}
