package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cityguardian/agents"
	"cityguardian/config"
	"cityguardian/dedup"
	"cityguardian/departments"
	"cityguardian/gemini"
	"cityguardian/handlers"
	"cityguardian/llm"
	"cityguardian/metrics"
	"cityguardian/openai"
	"cityguardian/server"
	"cityguardian/service"
	"cityguardian/sheets"
	"cityguardian/sinks"

	"github.com/apex/log"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	// Validate required configuration
	if cfg.LLMProvider == "gemini" && cfg.GeminiAPIKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable is required")
	}
	if cfg.LLMProvider == "openai" && cfg.OpenAIAPIKey == "" {
		log.Fatal("OPENAI_API_KEY environment variable is required")
	}
	if cfg.SheetID == "" {
		log.Fatal("SHEET_ID environment variable is required")
	}
	if cfg.WebhookURL == "" {
		log.Fatal("WEBHOOK_URL environment variable is required")
	}

	metrics.Register()

	// Wire the intake pipeline
	var llmClient llm.Client
	selectedModel := cfg.GeminiModel
	if cfg.LLMProvider == "openai" {
		llmClient = openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.LLMTimeout)
		selectedModel = cfg.OpenAIModel
	} else {
		llmClient = gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.LLMTimeout)
	}
	log.Infof("Intake capability provider=%s model=%s", llmClient.SourceName(), selectedModel)

	sheetClient := sheets.NewClient(cfg.SheetBaseURL, cfg.SheetID, cfg.SheetTimeout)
	detector := dedup.NewDetector(sheetClient)

	webhookSink := sinks.NewWebhookSink(cfg.WebhookURL, cfg.WebhookTimeout)
	emailSink := sinks.NewEmailSink(cfg.MailerooEndpoint, cfg.MailerooAPIKey, cfg.EmailFromAddress, cfg.EmailFromName, cfg.EmailTimeout)

	svc := service.New(agents.New(llmClient), departments.DefaultRegistry(), detector, webhookSink, emailSink)
	h := handlers.NewHandlers(svc)

	router := server.NewRouter(h, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Infof("Starting HTTP server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
