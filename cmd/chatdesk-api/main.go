package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	httpadapter "github.com/techstyle/chatdesk/internal/adapters/http"
	"github.com/techstyle/chatdesk/internal/adapters/llm"
	firestorestore "github.com/techstyle/chatdesk/internal/adapters/storage/firestore"
	memstore "github.com/techstyle/chatdesk/internal/adapters/storage/memory"
	sqlitestore "github.com/techstyle/chatdesk/internal/adapters/storage/sqlite"
	"github.com/techstyle/chatdesk/internal/app/chat"
	"github.com/techstyle/chatdesk/internal/config"
	"github.com/techstyle/chatdesk/internal/domain"
	"github.com/techstyle/chatdesk/internal/observability"
	"github.com/techstyle/chatdesk/internal/persona"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Model provider
	var (
		llmClient domain.LLMClient
		err       error
	)
	switch cfg.LLMProvider {
	case "mock":
		log.Println("[LLM] Using mock client")
		llmClient = llm.NewMockClient()
	case "gemini":
		log.Printf("[LLM] Using Gemini client (model=%s)", cfg.ModelName)
		llmClient, err = llm.NewGeminiClient(ctx, cfg.GCPProjectID, cfg.GCPLocation, cfg.ModelName, cfg.MaxTokens, cfg.Temperature)
		if err != nil {
			log.Fatalf("error initializing Gemini client: %v", err)
		}
	default:
		log.Printf("[LLM] Using OpenAI client (model=%s)", cfg.ModelName)
		llmClient = llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.ModelName, cfg.MaxTokens, cfg.Temperature)
	}

	// Storage gateway
	var conversations domain.ConversationStore
	var messages domain.MessageStore

	switch cfg.StorageBackend {
	case "firestore":
		log.Printf("[STORE] Using Firestore storage (project=%s)", cfg.GCPProjectID)
		fsStore, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Fatalf("error initializing Firestore store: %v", err)
		}
		defer fsStore.Close()

		// 1 store, implements 2 interfaces
		conversations = fsStore
		messages = fsStore

	case "memory":
		log.Println("[STORE] Using in-memory storage")
		store := memstore.NewStore()
		conversations = store
		messages = store

	default:
		log.Printf("[STORE] Using SQLite storage (path=%s)", cfg.SQLitePath)
		store, err := sqlitestore.Open(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("error opening SQLite store: %v", err)
		}
		defer store.Close()

		conversations = store
		messages = store
	}

	// System instruction document
	doc, err := persona.Load(cfg.PersonaFile)
	if err != nil {
		log.Fatalf("error loading persona: %v", err)
	}

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	svc := chat.NewService(llmClient, conversations, messages, chat.Options{
		SystemPrompt:      doc.SystemPrompt(),
		MinMessageLen:     cfg.MinMessageLen,
		MaxMessageLen:     cfg.MaxMessageLen,
		HistoryLimit:      cfg.HistoryLimit,
		ContextMessageMax: cfg.ContextMessageMax,
		ModelTimeout:      cfg.ModelTimeout,
		Metrics:           metrics,
	})

	handler := httpadapter.NewServer(svc, metrics, registry)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Println("chatdesk API listening on port:", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
