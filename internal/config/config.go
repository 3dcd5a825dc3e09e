package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	// "memory", "sqlite" or "firestore"
	StorageBackend string
	SQLitePath     string
	GCPProjectID   string
	GCPLocation    string

	// "openai", "gemini" or "mock"
	LLMProvider  string
	OpenAIAPIKey string
	ModelName    string
	MaxTokens    int
	Temperature  float32
	ModelTimeout time.Duration

	// Path to a YAML persona document; empty means the built-in default.
	PersonaFile string

	MinMessageLen     int
	MaxMessageLen     int
	HistoryLimit      int
	ContextMessageMax int
}

// Load reads all env vars and builds the config.
func Load() *Config {
	cfg := &Config{
		Port: getEnv("CHATDESK_PORT", "8080"),

		StorageBackend: getEnv("CHATDESK_STORAGE_BACKEND", "sqlite"),
		SQLitePath:     getEnv("CHATDESK_SQLITE_PATH", "data/chatdesk.db"),
		GCPProjectID:   getEnv("CHATDESK_GCP_PROJECT", ""),
		GCPLocation:    getEnv("CHATDESK_GCP_LOCATION", "us-central1"),

		LLMProvider:  getEnv("CHATDESK_LLM_PROVIDER", "openai"),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		ModelName:    getEnv("CHATDESK_MODEL_NAME", "gpt-4o-mini"),
		MaxTokens:    getIntEnv("CHATDESK_MAX_TOKENS", 500),
		Temperature:  getFloatEnv("CHATDESK_TEMPERATURE", 0.7),
		ModelTimeout: time.Duration(getIntEnv("CHATDESK_MODEL_TIMEOUT_SECONDS", 30)) * time.Second,

		PersonaFile: getEnv("CHATDESK_PERSONA_FILE", ""),

		MinMessageLen:     getIntEnv("CHATDESK_MIN_MESSAGE_LENGTH", 1),
		MaxMessageLen:     getIntEnv("CHATDESK_MAX_MESSAGE_LENGTH", 5000),
		HistoryLimit:      getIntEnv("CHATDESK_HISTORY_LIMIT", 10),
		ContextMessageMax: getIntEnv("CHATDESK_CONTEXT_MESSAGE_MAX", 1000),
	}

	if cfg.LLMProvider == "openai" && cfg.OpenAIAPIKey == "" {
		log.Println("WARNING: OPENAI_API_KEY is not set, model calls will fail over to fallback replies")
	}
	if cfg.StorageBackend == "firestore" && cfg.GCPProjectID == "" {
		log.Fatal("CHATDESK_GCP_PROJECT must be set for the firestore storage backend")
	}
	if cfg.LLMProvider == "gemini" && cfg.GCPProjectID == "" {
		log.Fatal("CHATDESK_GCP_PROJECT must be set for the gemini provider")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getIntEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getFloatEnv(key string, def float32) float32 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 32)
	if err != nil {
		return def
	}
	return float32(f)
}
