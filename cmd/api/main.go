package main

import (
	"context"
	"os"
	"strings"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"meterflow/docs"
	"meterflow/internal/config"
	"meterflow/internal/database"
	"meterflow/internal/database/migration"
	handlers "meterflow/internal/http/handler"
	"meterflow/internal/http/middleware"
	"meterflow/internal/otel"
	"meterflow/internal/repository/postgres"
	"meterflow/internal/service"
	"meterflow/internal/storage"
)

// @title MeterFlow API
// @version 1.0
// @description Import and query service for D0010 meter reading flow files.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	logger := newLogger(cfg.LogLevel)

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx := context.Background()

	if err := migration.EnsureMigrated(ctx, db, logger); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize tracing")
	}
	defer shutdownTracing(ctx)

	// The archive keeps the original file bytes in S3-compatible object
	// storage; without it imports still work, downloads do not.
	var archive storage.Archive
	if cfg.Archive.Enabled {
		archive, err = storage.NewMinIOArchive(cfg.Archive)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize flow file archive")
		}
	}

	importMetrics, err := service.NewImportMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to register import metrics")
	}

	importStore := postgres.NewImportStorePostgres(db)
	importSvc := service.NewImportService(importStore, archive, importMetrics, logger)

	repos := service.MeterDataRepos{
		FlowFiles:   postgres.NewFlowFilePostgres(db),
		MeterPoints: postgres.NewMeterPointPostgres(db),
		Meters:      postgres.NewMeterPostgres(db),
		Readings:    postgres.NewReadingPostgres(db),
		Maintenance: postgres.NewMaintenancePostgres(db),
	}
	dataSvc := service.NewMeterDataService(repos, archive, logger)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    cfg.Upload.MaxSizeMB * 1024 * 1024,
	})

	app.Use(recover.New())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to register http metrics")
	}
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, db, importSvc, dataSvc)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Swagger UI with dynamic host and scheme
	docs.SwaggerInfo.Host = cfg.AppHost
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port
	if err := app.Listen(addr); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}
