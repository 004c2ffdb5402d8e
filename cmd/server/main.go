package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/loanforge/deal-service/internal/application/usecase"
	"github.com/loanforge/deal-service/internal/domain/service"
	"github.com/loanforge/deal-service/internal/infrastructure/adapter"
	"github.com/loanforge/deal-service/internal/infrastructure/config"
	"github.com/loanforge/deal-service/internal/infrastructure/messaging"
	pgRepo "github.com/loanforge/deal-service/internal/infrastructure/persistence/postgres"
	"github.com/loanforge/deal-service/internal/metrics"
	"github.com/loanforge/deal-service/internal/presentation/rest"
	"github.com/loanforge/deal-service/pkg/kafka"
	"github.com/loanforge/deal-service/pkg/observability"
	"github.com/loanforge/deal-service/pkg/postgres"
)

func main() {
	cfg := config.Load()
	cfg.Validate()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	logger.Info("starting deal service",
		"http_port", cfg.HTTPPort,
		"metrics_port", cfg.MetricsPort,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Observability ------------------------------------------------------
	meterProvider, registerer, metricsHandler, err := observability.InitMetrics()
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := meterProvider.Shutdown(context.Background()); err != nil {
			logger.Error("meter provider shutdown error", "error", err)
		}
	}()
	m := metrics.NewMetrics(registerer)

	// --- Database -----------------------------------------------------------
	dbCfg := postgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}
	pool, err := postgres.NewPool(ctx, dbCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if cfg.MigrationsDir != "" {
		if err := postgres.RunMigrations(dbCfg.DSN(), cfg.MigrationsDir); err != nil {
			logger.Error("migrations failed", "error", err)
			os.Exit(1)
		}
		logger.Info("migrations applied")
	}

	// --- Infrastructure adapters -------------------------------------------
	clientRepo := pgRepo.NewClientRepository(pool)
	appRepo := pgRepo.NewApplicationRepository(pool)
	creditRepo := pgRepo.NewCreditRepository(pool)

	producer := kafka.NewProducer(kafka.Config{Brokers: cfg.Kafka.Brokers}, cfg.Kafka.Topic)
	defer func() {
		if err := producer.Close(); err != nil {
			logger.Error("kafka producer close error", "error", err)
		}
	}()
	publisher := messaging.NewKafkaEventPublisher(producer, m, logger)

	conveyor := adapter.NewConveyorClient(cfg.Conveyor, m, nil)
	reconciler := service.NewOfferReconciler()

	// --- Use cases ----------------------------------------------------------
	requestOffersUC := usecase.NewRequestOffersUseCase(clientRepo, appRepo, conveyor, reconciler, publisher)
	applyOfferUC := usecase.NewApplyOfferUseCase(appRepo, publisher)
	calculateUC := usecase.NewCalculateCreditUseCase(appRepo, clientRepo, creditRepo, conveyor, publisher, logger)
	getAppUC := usecase.NewGetApplicationUseCase(appRepo)

	// --- HTTP API server ----------------------------------------------------
	mux := http.NewServeMux()
	dealHandler := rest.NewDealHandler(requestOffersUC, applyOfferUC, calculateUC, getAppUC, m, logger)
	dealHandler.RegisterRoutes(mux)
	healthHandler := rest.NewHealthHandler(pool)
	healthHandler.RegisterRoutes(mux)

	apiServer := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: mux,
	}
	go func() {
		logger.Info("HTTP API server listening", "addr", cfg.HTTPAddr())
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// --- Metrics server -----------------------------------------------------
	metricsMux := http.NewServeMux()
	metricsMux.Handle("GET /metrics", metricsHandler)
	metricsServer := &http.Server{
		Addr:    cfg.MetricsAddr(),
		Handler: metricsMux,
	}
	go func() {
		logger.Info("metrics server listening", "addr", cfg.MetricsAddr())
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
			os.Exit(1)
		}
	}()

	// --- Graceful shutdown --------------------------------------------------
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("received shutdown signal", "signal", sig.String())

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	if err := metricsServer.Shutdown(ctx); err != nil {
		logger.Error("metrics server shutdown error", "error", err)
	}

	logger.Info("deal service stopped")
}
