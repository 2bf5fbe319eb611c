package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/carebridge/homecare-platform/internal/admin"
	"github.com/carebridge/homecare-platform/internal/api/router"
	"github.com/carebridge/homecare-platform/internal/applications"
	"github.com/carebridge/homecare-platform/internal/caregivers"
	appconfig "github.com/carebridge/homecare-platform/internal/config"
	"github.com/carebridge/homecare-platform/internal/invoices"
	"github.com/carebridge/homecare-platform/internal/medications"
	"github.com/carebridge/homecare-platform/internal/notify"
	"github.com/carebridge/homecare-platform/internal/observability/metrics"
	"github.com/carebridge/homecare-platform/internal/patients"
	"github.com/carebridge/homecare-platform/internal/pricing"
	"github.com/carebridge/homecare-platform/internal/requests"
	"github.com/carebridge/homecare-platform/internal/settings"
	"github.com/carebridge/homecare-platform/internal/visits"
	"github.com/carebridge/homecare-platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting homecare-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Repositories: Postgres when a database is configured, in-memory
	// otherwise so the service still runs in local development.
	var (
		patientRepo     patients.Repository
		caregiverRepo   caregivers.Repository
		requestRepo     requests.Repository
		medicationRepo  medications.Repository
		visitRepo       visits.Repository
		invoiceRepo     invoices.Repository
		applicationRepo applications.Repository
		dashboardDB     *sql.DB
	)

	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create pg pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			logger.Error("failed to reach postgres", "error", err)
			os.Exit(1)
		}

		patientRepo = patients.NewPostgresRepository(pool)
		caregiverRepo = caregivers.NewPostgresRepository(pool)
		requestRepo = requests.NewPostgresRepository(pool)
		medicationRepo = medications.NewPostgresRepository(pool)
		visitRepo = visits.NewPostgresRepository(pool)
		invoiceRepo = invoices.NewPostgresRepository(pool)
		applicationRepo = applications.NewPostgresRepository(pool)

		// The admin dashboard runs its aggregates over database/sql.
		dashboardDB, err = sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to open database/sql handle", "error", err)
			os.Exit(1)
		}
		defer dashboardDB.Close()
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory repositories")
		patientRepo = patients.NewInMemoryRepository()
		caregiverRepo = caregivers.NewInMemoryRepository()
		requestRepo = requests.NewInMemoryRepository()
		medicationRepo = medications.NewInMemoryRepository()
		visitRepo = visits.NewInMemoryRepository()
		invoiceRepo = invoices.NewInMemoryRepository()
		applicationRepo = applications.NewInMemoryRepository()
	}

	// Pricing catalog lives on disk with a built-in default forest.
	catalog := pricing.NewFileStore(cfg.PricingFile, logger)

	// Metrics registry with process/go collectors plus catalog metrics.
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	catalogMetrics := metrics.NewCatalogMetrics(registry)

	// Email notifications: SendGrid when configured, log-only otherwise.
	var sender notify.Sender
	if cfg.SendGridAPIKey != "" {
		sender = notify.NewSendGridSender(cfg.SendGridAPIKey, cfg.SendGridFromName, cfg.SendGridFromEmail)
	} else {
		sender = notify.NewLogSender(logger)
	}

	requestService := requests.NewService(requestRepo, catalog, caregiverRepo, patientRepo, sender, logger)
	invoiceGenerator := invoices.NewGenerator(catalog)

	routerCfg := &router.Config{
		Logger:              logger,
		PricingHandler:      pricing.NewHandler(catalog, catalogMetrics, logger),
		PatientsHandler:     patients.NewHandler(patientRepo, logger),
		CaregiversHandler:   caregivers.NewHandler(caregiverRepo, logger),
		RequestsHandler:     requests.NewHandler(requestService, requestRepo, logger),
		MedicationsHandler:  medications.NewHandler(medicationRepo, logger),
		VisitsHandler:       visits.NewHandler(visitRepo, logger),
		InvoicesHandler:     invoices.NewHandler(invoiceGenerator, requestRepo, invoiceRepo, logger),
		ApplicationsHandler: applications.NewHandler(applicationRepo, logger),
		MetricsHandler:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		AuthSecret:          cfg.AdminJWTSecret,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		RateLimitPerMinute:  cfg.RateLimitPerMinute,
		RateLimitBurst:      cfg.RateLimitBurst,
	}

	// Agency settings ride on redis when available.
	if cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		redisClient := redis.NewClient(opts)
		defer redisClient.Close()
		routerCfg.SettingsHandler = settings.NewHandler(settings.NewStore(redisClient), logger)
	}

	if dashboardDB != nil {
		routerCfg.DashboardHandler = admin.NewDashboardHandler(dashboardDB, logger)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.New(routerCfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
