package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"barangay/docs"
	"barangay/internal/community"
	"barangay/internal/config"
	"barangay/internal/database"
	"barangay/internal/database/migration"
	handlers "barangay/internal/http/handler"
	"barangay/internal/http/middleware"
	"barangay/internal/identity"
	"barangay/internal/ledger"
	"barangay/internal/logging"
	"barangay/internal/otel"
	"barangay/internal/repository"
	"barangay/internal/repository/postgres"
	"barangay/internal/seed"
	"barangay/internal/service"
	"barangay/internal/settings"
	"barangay/internal/storage"
)

const maxUploadBytes = 10 << 20

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP API",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(cCtx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(cfg.LogLevel, os.Stdout)

	shutdownTracing, err := otel.Init(ctx, cfg.Tracing, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.WithError(err).Warn("tracer shutdown failed")
		}
	}()

	var (
		db   *sql.DB
		repo repository.RequestRepository
	)
	if cfg.Database.Enabled() {
		db, err = database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()

		if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
			return err
		}
		repo = postgres.NewRequestPostgres(db)
	} else {
		logger.Warn("DB_HOST not set, requests are kept in memory only")
	}

	var store storage.Storage
	if cfg.MinIO.Enabled() {
		store, err = storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			return fmt.Errorf("initialize object storage: %w", err)
		}
	} else {
		logger.Warn("MINIO_ENDPOINT not set, proof uploads are disabled")
	}

	appSettings, err := settings.FromConfig(cfg.Settings)
	if err != nil {
		return err
	}

	var ds seed.Dataset
	if cfg.SeedDemo {
		ds = seed.Demo()
	}

	led := ledger.New(appSettings)
	loaded, err := service.LoadLedger(ctx, led, repo, ds.Requests)
	if err != nil {
		return err
	}
	logger.WithField("requests", loaded).Info("ledger loaded")

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	opts := []service.Option{
		service.WithLogger(logger),
		service.WithMetrics(service.NewMetrics(reg)),
	}
	if repo != nil {
		opts = append(opts, service.WithRepository(repo))
	}
	if store != nil {
		opts = append(opts, service.WithStorage(store, cfg.MinIO.PresignTTL))
	}

	app, err := newApp(logger, reg, handlers.Deps{
		DB:       db,
		Requests: service.NewRequestService(led, opts...),
		Identity: identity.NewDirectory(ds.Residents, ds.Admins),
		Tokens:   identity.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Board:    community.NewBoard(ds.Announcements, ds.Directory, ds.Emergency),
		Settings: appSettings,
	})
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.WithError(err).Error("server shutdown failed")
		}
	}()

	addr := ":" + cfg.Port
	logger.WithField("addr", addr).Info("listening")
	if err := app.Listen(addr); err != nil {
		return fmt.Errorf("start server: %w", err)
	}
	return nil
}

func newApp(logger *logrus.Logger, reg *prometheus.Registry, deps handlers.Deps) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		AppName:               "barangay",
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             maxUploadBytes,
		DisableStartupMessage: true,
	})

	prom, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return nil, fmt.Errorf("register http metrics: %w", err)
	}

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(logger))
	app.Use(prom.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(otelhttp.NewHandler(
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		"metrics",
	)))

	// Swagger UI with the host and scheme the client actually used.
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}
		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}
		return swagger.HandlerDefault(c)
	})

	handlers.RegisterRoutes(app, deps)
	return app, nil
}
