package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sahayak-ai/sahayak/internal/agent"
	"github.com/sahayak-ai/sahayak/internal/api"
	"github.com/sahayak-ai/sahayak/internal/application"
	"github.com/sahayak-ai/sahayak/internal/catalog"
	"github.com/sahayak-ai/sahayak/internal/config"
	"github.com/sahayak-ai/sahayak/internal/llm"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	if err := config.Load(); err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	schemes, err := catalog.Load(config.CatalogPath())
	if err != nil {
		logger.Fatal("failed to load scheme catalog", zap.Error(err))
	}
	logger.Info("scheme catalog loaded",
		zap.String("path", config.CatalogPath()),
		zap.Int("schemes", len(schemes)))

	llmClient, err := llm.NewClient(config.LLMProvider(), config.LLMAPIKey())
	if err != nil {
		logger.Fatal("failed to initialize LLM client",
			zap.String("provider", config.LLMProvider()),
			zap.Error(err))
	}
	logger.Info("LLM client initialized", zap.String("provider", config.LLMProvider()))

	var apps application.Client
	switch config.ApplicationMode() {
	case "http":
		apps = application.NewHTTPClient(config.ApplicationAPIURL())
		logger.Info("application client initialized",
			zap.String("mode", "http"),
			zap.String("url", config.ApplicationAPIURL()))
	default:
		apps = application.NewMockClient()
		logger.Info("application client initialized", zap.String("mode", "mock"))
	}

	app := api.NewApp(api.Deps{
		LLM:                  llmClient,
		Schemes:              schemes,
		Applications:         apps,
		EligibilityThreshold: config.EligibilityThreshold(),
		Manager: agent.ManagerConfig{
			Controller: agent.ControllerConfig{
				MaxTurns:      config.MaxTurns(),
				TopSchemes:    config.TopSchemes(),
				HistoryWindow: config.HistoryWindow(),
			},
			SessionTTL:    time.Duration(config.SessionTTLMinutes()) * time.Minute,
			SweepInterval: time.Duration(config.SweepIntervalMinutes()) * time.Minute,
		},
	}, logger)

	// Start the idle-conversation sweeper
	app.Manager.Start()

	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:    addr,
		Handler: app.Router,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")

	app.Manager.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
