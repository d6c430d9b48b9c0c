package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"library-backend/internal/config"
	"library-backend/pkg/logger"
	"library-backend/pkg/tracing"
)

func main() {
	// ========================================
	// LOAD ENVIRONMENT VARIABLES
	// ========================================
	// .env is optional; production uses the real environment
	envFileErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	if envFileErr != nil {
		log.Debug().Msg("no .env file found, using system environment variables")
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// ========================================
	// TRACING
	// ========================================
	shutdownTracing, err := tracing.Init(context.Background(), tracing.Config{
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
		ServiceName: cfg.App.Name,
		Version:     cfg.App.Version,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}

	code := 0
	if err := Serve(cfg); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		code = 1
	}

	if err := shutdownTracing(context.Background()); err != nil {
		log.Warn().Err(err).Msg("tracer shutdown")
	}
	os.Exit(code)
}
