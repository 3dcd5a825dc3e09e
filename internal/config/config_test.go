package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.StorageBackend != "sqlite" {
		t.Fatalf("expected default backend sqlite, got %s", cfg.StorageBackend)
	}
	if cfg.MaxMessageLen != 5000 {
		t.Fatalf("expected max message length 5000, got %d", cfg.MaxMessageLen)
	}
	if cfg.HistoryLimit != 10 {
		t.Fatalf("expected history limit 10, got %d", cfg.HistoryLimit)
	}
	if cfg.ContextMessageMax != 1000 {
		t.Fatalf("expected context message max 1000, got %d", cfg.ContextMessageMax)
	}
	if cfg.ModelTimeout != 30*time.Second {
		t.Fatalf("expected model timeout 30s, got %s", cfg.ModelTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CHATDESK_PORT", "9999")
	t.Setenv("CHATDESK_STORAGE_BACKEND", "memory")
	t.Setenv("CHATDESK_HISTORY_LIMIT", "25")
	t.Setenv("CHATDESK_TEMPERATURE", "0.2")
	t.Setenv("CHATDESK_MODEL_TIMEOUT_SECONDS", "5")

	cfg := Load()

	if cfg.Port != "9999" {
		t.Fatalf("expected port 9999, got %s", cfg.Port)
	}
	if cfg.StorageBackend != "memory" {
		t.Fatalf("expected backend memory, got %s", cfg.StorageBackend)
	}
	if cfg.HistoryLimit != 25 {
		t.Fatalf("expected history limit 25, got %d", cfg.HistoryLimit)
	}
	if cfg.Temperature != 0.2 {
		t.Fatalf("expected temperature 0.2, got %f", cfg.Temperature)
	}
	if cfg.ModelTimeout != 5*time.Second {
		t.Fatalf("expected model timeout 5s, got %s", cfg.ModelTimeout)
	}
}

func TestLoadIgnoresBadNumbers(t *testing.T) {
	t.Setenv("CHATDESK_HISTORY_LIMIT", "lots")

	cfg := Load()
	if cfg.HistoryLimit != 10 {
		t.Fatalf("expected fallback history limit 10, got %d", cfg.HistoryLimit)
	}
}
