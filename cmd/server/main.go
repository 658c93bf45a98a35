package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/config"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/extract"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/handler"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/interpret"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/llm"
	_ "github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/llm/gemini"
	_ "github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/llm/openai"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/logging"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/metrics"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/router"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.New(cfg.Log)
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.New()

	// Initialize interpretation
	orch, err := interpret.NewFromConfig(&cfg.Generation,
		interpret.WithLogger(logger.With().Str("component", "interpret").Logger()),
		interpret.WithRecorder(m),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize generator: %w", err)
	}
	logger.Info().
		Str("engine", orch.Engine()).
		Dur("call_timeout", cfg.Generation.Timeout).
		Msg("interpretation engine ready")

	// Initialize extraction
	extractor, err := extract.New(&cfg.PDF, logger.With().Str("component", "extract").Logger())
	if err != nil {
		return fmt.Errorf("failed to initialize extractor: %w", err)
	}

	// Initialize services
	reportSvc := service.NewReportService(extractor, orch, m, &cfg.Upload, logger)
	statsSvc := service.NewStatsService(m, orch.Engine(), llm.Providers())

	// Initialize handlers
	parseH := handler.NewParseHandler(reportSvc, cfg.Upload.MaxBytes())
	interpretH := handler.NewInterpretHandler(reportSvc)
	statsH := handler.NewStatsHandler(statsSvc)
	healthH := handler.NewHealthHandler(orch.Engine())

	// Setup router
	r := router.Setup(logger, cfg.CORS.AllowedOrigins, parseH, interpretH, statsH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
