package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shoppix/shoppix-backend/internal/ratings"
	"github.com/shoppix/shoppix-backend/pkg/config"
	"github.com/shoppix/shoppix-backend/pkg/db"
	"github.com/shoppix/shoppix-backend/pkg/idempotency"
	"github.com/shoppix/shoppix-backend/pkg/logger"
	"github.com/shoppix/shoppix-backend/pkg/metrics"
	"github.com/shoppix/shoppix-backend/pkg/pubsub"
	"github.com/shoppix/shoppix-backend/pkg/redis"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logg := logger.New(logger.Options{ServiceName: "worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	pubsubClient, err := pubsub.NewClient(ctx, cfg.GCP, cfg.PubSub, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap pubsub", err)
		os.Exit(1)
	}
	defer func() {
		if err := pubsubClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing pubsub", err)
		}
	}()

	jobMetrics := metrics.NewRatingJobMetrics(prometheus.DefaultRegisterer)

	ratingsRepo := ratings.NewRepository(dbClient.DB())
	ratingsService, err := ratings.NewService(ratings.ServiceParams{
		Repo:    ratingsRepo,
		Logger:  logg,
		Metrics: jobMetrics,
	})
	if err != nil {
		logg.Error(ctx, "failed to create ratings service", err)
		os.Exit(1)
	}

	idempotencyManager, err := idempotency.NewManager(redisClient, cfg.Ratings.IdempotencyTTL)
	if err != nil {
		logg.Error(ctx, "failed to create idempotency manager", err)
		os.Exit(1)
	}

	consumer, err := ratings.NewConsumer(ratings.ConsumerParams{
		Service:      ratingsService,
		Repo:         ratingsRepo,
		Subscription: pubsubClient.RatingsSubscription(),
		Idempotency:  idempotencyManager,
		Logger:       logg,
		Metrics:      jobMetrics,
		MaxRetries:   cfg.Ratings.RetryMaxRetries,
		BaseBackoff:  cfg.Ratings.RetryBaseBackoff,
	})
	if err != nil {
		logg.Error(ctx, "failed to create ratings consumer", err)
		os.Exit(1)
	}

	service, err := NewService(ServiceParams{
		Config:          cfg,
		Logger:          logg,
		DB:              dbClient,
		Redis:           redisClient,
		PubSub:          pubsubClient,
		RatingsConsumer: consumer,
	})
	if err != nil {
		logg.Error(ctx, "failed to create worker service", err)
		os.Exit(1)
	}

	runCtx := logg.WithField(ctx, "env", cfg.App.Env)
	logg.Info(runCtx, "starting worker")

	if err := service.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(runCtx, "worker stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(context.Background(), "worker shutting down gracefully")
}
