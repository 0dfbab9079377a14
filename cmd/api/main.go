package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Alessandra005/witcon2026/internal/infrastructure/di"
	"github.com/Alessandra005/witcon2026/internal/infrastructure/worker"
	"github.com/Alessandra005/witcon2026/internal/interface/middleware"
	"github.com/Alessandra005/witcon2026/internal/interface/router"
	"github.com/Alessandra005/witcon2026/internal/interface/server"
	"github.com/Alessandra005/witcon2026/pkg/config"
	"github.com/Alessandra005/witcon2026/pkg/logger"
)

// @title WiTCON Attendee API
// @version 1.0
// @description WiTCON 参加者プロフィールのレコードストア REST API
// @host localhost:8080
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Logger setup
	logger.Setup(logger.OptionsFrom(cfg.Log))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize DI Container
	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	// Metrics registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	dependencyUp := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "witcon",
		Name:      "dependency_up",
		Help:      "Whether a backing service answered its last health check (1) or not (0).",
	}, []string{"dependency"})
	registry.MustRegister(dependencyUp)

	// Initialize UseCases, Handlers, and Middlewares
	container.InitAttendeeUseCases()
	handlers := di.NewHandlers(container)
	middlewares := di.NewMiddlewares(container, registry)

	// Setup Server
	srv := server.NewServer(server.ConfigFrom(cfg.Server))
	e := srv.Echo()

	// Global middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middlewares.Metrics.Middleware())
	e.Use(middleware.Recover())
	e.Use(middleware.SecurityHeaders(cfg.Security))
	e.Use(middleware.CORS(cfg.Security))

	// Setup Router
	router.NewRouter(e, handlers, middlewares, registry).Setup()

	// Start background workers
	workerMgr := worker.NewManager()
	workerMgr.Register(worker.NewDependencyHealthJob(container.HealthChecks(), dependencyUp))
	workerMgr.Start(ctx)

	// Start server
	slog.Info("starting server",
		"address", srv.Address(),
		"resume_upload_limit", cfg.Resume.UploadLimit,
		"require_auth", cfg.Security.RequireAuth,
	)
	if err := srv.Run(ctx); err != nil {
		slog.Error("server error", "error", err)
	}

	slog.Info("server stopped, waiting for workers")
	if !workerMgr.Shutdown(10 * time.Second) {
		slog.Warn("workers did not stop in time")
	}
}
