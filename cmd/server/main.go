package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/CodingManiac11/ai-interview-assistant/internal/clock"
	"github.com/CodingManiac11/ai-interview-assistant/internal/config"
	"github.com/CodingManiac11/ai-interview-assistant/internal/evaluator"
	_ "github.com/CodingManiac11/ai-interview-assistant/internal/evaluator/gemini"
	"github.com/CodingManiac11/ai-interview-assistant/internal/handlers"
	"github.com/CodingManiac11/ai-interview-assistant/internal/hub"
	"github.com/CodingManiac11/ai-interview-assistant/internal/jobs"
	"github.com/CodingManiac11/ai-interview-assistant/internal/metrics"
	"github.com/CodingManiac11/ai-interview-assistant/internal/questions"
	"github.com/CodingManiac11/ai-interview-assistant/internal/repository"
	"github.com/CodingManiac11/ai-interview-assistant/internal/routers"
	"github.com/CodingManiac11/ai-interview-assistant/internal/session"
)

func registerRoutes(router *chi.Mux, candidateHandler *handlers.CandidateHandler, sessionHandler *handlers.SessionHandler, healthHandler *handlers.HealthHandler, eventHub *hub.Hub) {
	routers.HealthRoutes(router, healthHandler)
	routers.CandidateRoutes(router, candidateHandler)
	routers.SessionRoutes(router, sessionHandler)
	router.Get("/ws", eventHub.HandleWS)
	router.Handle("/metrics", metrics.Handler())
}

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.String("provider", cfg.Provider),
		zap.String("dbDriver", cfg.DBDriver))

	db, err := repository.OpenDatabase(repository.DatabaseConfig{
		Driver:      cfg.DBDriver,
		SQLitePath:  cfg.SQLitePath,
		PostgresDSN: cfg.PostgresDSN,
	})
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	repo := repository.NewCandidateRepository(db)

	bank, err := questions.LoadBank()
	if err != nil {
		logger.Fatal("Failed to load question bank", zap.Error(err))
	}
	generator := questions.NewGenerator(bank)

	provider, err := evaluator.NewProvider(cfg.Provider)
	if err != nil {
		logger.Fatal("Failed to initialize evaluation provider", zap.Error(err))
	}

	eventHub := hub.New(logger)
	controller := session.NewController(logger, repo, generator, provider, eventHub, clock.System(), cfg.EvalTimeout)

	exporterJob := jobs.NewReportExporterJob(logger, repo, &jobs.ExporterConfig{
		Schedule:      cfg.ExportSchedule,
		ExportDir:     cfg.ExportDir,
		ExportEnabled: cfg.ExportEnabled,
	})
	if err := exporterJob.Start(); err != nil {
		logger.Error("Failed to start report exporter job", zap.Error(err))
	}

	candidateHandler := handlers.NewCandidateHandler(repo, controller, logger)
	sessionHandler := handlers.NewSessionHandler(controller, logger)
	healthHandler := handlers.NewHealthHandler(provider, db, cfg)

	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	router.Use(chimiddleware.RequestID, chimiddleware.RealIP, chimiddleware.Logger, chimiddleware.Recoverer, chimiddleware.Timeout(60*time.Second))
	router.Use(metrics.Middleware)

	registerRoutes(router, candidateHandler, sessionHandler, healthHandler, eventHub)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Interview service starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Interview service shutting down...")
	exporterJob.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("Interview service exited")
}
