package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lessonhub/internal/api/v1/router"
	"lessonhub/internal/config"
	"lessonhub/internal/logger"

	"github.com/joho/godotenv"
)

// @title LessonHub Bridge API
// @version 1.0
// @description Command bridge between the LessonHub desktop shell and Supabase
// @host localhost:8080
// @BasePath /v1
// @Schemes http

func main() {
	// 1. Load configuration; .env must be loaded before the logger reads ENV and LOG_LEVEL
	envErr := godotenv.Load()
	logger := logger.New()
	if envErr != nil {
		logger.Warn().Msg("Warning: no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Msgf("Error loading config: %v", err)
	}

	// 2. Build router
	ctx := context.Background()
	r, cleanup, err := router.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Msgf("Failed to build router: %v", err)
	}
	defer cleanup()

	// 3. Create HTTP server. No write timeout: validate_code may run for as long as
	// the interpreter does.
	srv := &http.Server{
		Addr:        cfg.BridgeAddr,
		Handler:     r,
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// 4. Start server in a goroutine
	go func() {
		logger.Info().Msgf("Bridge listening on %s", cfg.BridgeAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Msgf("Listen: %s\n", err)
		}
	}()

	// 5. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("Shutdown signal received, exiting...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Msgf("Server forced to shutdown: %v", err)
	}
	logger.Info().Msg("Server shut down gracefully")
}
