package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// Auth. Access tokens are issued by the hosted auth provider; this
	// backend only verifies them with the shared signing secret.
	JWTSecret string

	// OpenAI
	OpenAIAPIKey  string
	OpenAIBaseURL string
	ChatModel     string
	ImageModel    string
	SpeechModel   string
	SpeechVoice   string
	MaxTokens     int
	Temperature   float64

	// Assistant quota (requests per minute per user or IP)
	AssistantRequestsPerMin int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		Env:         getEnvOrDefault("ENV", "development"),
		DatabaseURL: mustGetEnv("DATABASE_URL"),
		RedisURL:    mustGetEnv("REDIS_URL"),
		JWTSecret:   mustGetEnv("JWT_SECRET"),

		OpenAIAPIKey:  getEnvOrDefault("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnvOrDefault("OPENAI_BASE_URL", ""),
		ChatModel:     getEnvOrDefault("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
		ImageModel:    getEnvOrDefault("OPENAI_IMAGE_MODEL", "dall-e-3"),
		SpeechModel:   getEnvOrDefault("OPENAI_SPEECH_MODEL", "tts-1"),
		SpeechVoice:   getEnvOrDefault("OPENAI_SPEECH_VOICE", "nova"),
		MaxTokens:     getEnvAsIntOrDefault("OPENAI_MAX_TOKENS", 800),
		Temperature:   getEnvAsFloatOrDefault("OPENAI_TEMPERATURE", 0.8),

		AssistantRequestsPerMin: getEnvAsIntOrDefault("ASSISTANT_REQUESTS_PER_MINUTE", 20),

		FrontendURL: getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsFloatOrDefault(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return f
}
