package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/policypulse/backend/internal/analysis"
	"github.com/policypulse/backend/internal/api/handlers"
	"github.com/policypulse/backend/internal/cache/redis"
	"github.com/policypulse/backend/internal/classify"
	"github.com/policypulse/backend/internal/ingestion"
	"github.com/policypulse/backend/internal/metrics"
	"github.com/policypulse/backend/internal/middleware/ratelimit"
	"github.com/policypulse/backend/internal/store/memstore"
	"github.com/policypulse/backend/pkg/config"
	appLogger "github.com/policypulse/backend/pkg/logger"
	"github.com/policypulse/backend/pkg/retry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	err = appLogger.Init(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting PolicyPulse API Server")

	metrics.Init()

	var cache ingestion.FetchCache
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(
			cfg.Redis.Host,
			cfg.Redis.Port,
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.Redis.CacheTTL,
		)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		cache = redisClient
	}

	sources := []ingestion.Source{
		ingestion.NewRedditSource(cfg.Sources.Reddit, cfg.Ingestion.FetchTimeout),
		ingestion.NewYouTubeSource(cfg.Sources.YouTube, cfg.Ingestion.FetchTimeout),
		ingestion.NewTwitterSource(cfg.Sources.Twitter, cfg.Ingestion.FetchTimeout),
	}

	clock := clockwork.NewRealClock()
	gate := ingestion.NewCooldownGate(cfg.Ingestion.Cooldown, clock)

	collector := ingestion.NewCollector(ingestion.CollectorConfig{
		QueryLimit:      cfg.Ingestion.QueryLimit,
		PolitenessDelay: cfg.Ingestion.PolitenessDelay,
		FetchTimeout:    cfg.Ingestion.FetchTimeout,
		TopicQueries:    cfg.Ingestion.TopicQueries,
		Retry: retry.Config{
			MaxAttempts:  3,
			InitialDelay: 500 * time.Millisecond,
			MaxDelay:     5 * time.Second,
			Multiplier:   2.0,
			RetryableErrors: []error{
				ingestion.ErrSourceUnavailable,
				ingestion.ErrSourceTimeout,
			},
		},
	}, sources, gate, cache, clock)

	labeler := analysis.NewLabeler(
		classify.CategoryTable(cfg.Analysis.Categories),
		classify.RegionTable(cfg.Analysis.Regions),
	)

	store := memstore.New()

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
	})

	limiter := ratelimit.New(ratelimit.Config{RequestsPerMinute: 60})
	defer limiter.Stop()

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))
	app.Use(limiter.Middleware())

	ingestHandler := handlers.NewIngestHandler(collector, labeler, store, cfg.Ingestion.LookbackDays)
	analyticsHandler := handlers.NewAnalyticsHandler(store)
	exportHandler := handlers.NewExportHandler(store)

	api := app.Group("/api/v1")

	api.Post("/ingest", ingestHandler.TriggerIngest)
	api.Post("/upload", ingestHandler.UploadCSV)

	api.Get("/records", analyticsHandler.ListRecords)
	api.Get("/summary", analyticsHandler.GetSummary)

	api.Get("/report", exportHandler.DownloadReport)
	api.Get("/export", exportHandler.DownloadCSV)

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	app.Get("/metrics", metrics.MetricsHandler())

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	appLogger.Info("Server starting", zap.String("address", addr))

	go func() {
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Server shutting down gracefully...")
	app.Shutdown()
	appLogger.Info("Server stopped")
}
