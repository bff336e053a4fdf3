package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/user/partscribe/internal/api"
	"github.com/user/partscribe/internal/config"
	"github.com/user/partscribe/internal/describe"
	"github.com/user/partscribe/internal/llm"
	"github.com/user/partscribe/internal/monitoring"
	"github.com/user/partscribe/internal/pipeline"
	"github.com/user/partscribe/internal/render"
)

func main() {
	// Initialize structured logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("could not load config", zap.Error(err))
	}

	// Initialize Monitoring
	metrics := monitoring.NewMetrics()

	// Initialize Renderer (headless browser)
	renderer := render.NewChromeRenderer(
		time.Duration(cfg.RenderTimeout)*time.Second,
		time.Duration(cfg.NetworkIdleMS)*time.Millisecond,
		logger,
	)
	defer renderer.Close()

	// Initialize Language-Generation Backend
	llmClient := llm.NewClient(cfg.LLMBaseURL, time.Duration(cfg.LLMTimeout)*time.Second)
	synth := describe.NewSynthesizer(
		llmClient.Model(cfg.LLMModel),
		time.Duration(cfg.LLMTimeout)*time.Second,
		logger,
	)

	// Initialize Core Pipeline
	pipe := pipeline.New(cfg.CatalogBaseURL, renderer, synth, metrics, logger)

	// Initialize API Server
	server := api.NewServer(cfg, pipe, llmClient, logger)

	// Graceful Shutdown
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	logger.Info("server started", zap.String("port", cfg.ServerPort))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}
