package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"solar_feasibility_backend/internal/analysis"
	"solar_feasibility_backend/internal/analysis/agent"
	apphttp "solar_feasibility_backend/internal/http"
	"solar_feasibility_backend/internal/http/router"
	"solar_feasibility_backend/platform/ai/gemini"
	"solar_feasibility_backend/platform/config"
	"solar_feasibility_backend/platform/logger"
	"solar_feasibility_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr, "model", cfg.GeminiModel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	geminiClient, err := gemini.New(ctx, gemini.Config{
		APIKey: cfg.GetGeminiAPIKey(),
		Model:  cfg.GetGeminiModel(),
	})
	if err != nil {
		log.Error("failed to initialize gemini client", "error", err)
		panic("failed to initialize gemini client: " + err.Error())
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	analysisModule := analysis.NewModule(
		agent.NewGeminiGenerator(geminiClient),
		val,
		log,
		cfg.GetMaxUploadBytes(),
	)

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Modules: []apphttp.Module{
			analysisModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}
