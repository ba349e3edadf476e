package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shoppix/shoppix-backend/api/routes"
	"github.com/shoppix/shoppix-backend/internal/cart"
	"github.com/shoppix/shoppix-backend/internal/catalog"
	"github.com/shoppix/shoppix-backend/internal/ratings"
	"github.com/shoppix/shoppix-backend/internal/reviews"
	"github.com/shoppix/shoppix-backend/pkg/config"
	"github.com/shoppix/shoppix-backend/pkg/db"
	"github.com/shoppix/shoppix-backend/pkg/logger"
	"github.com/shoppix/shoppix-backend/pkg/metrics"
	"github.com/shoppix/shoppix-backend/pkg/migrate"
	"github.com/shoppix/shoppix-backend/pkg/pubsub"
	"github.com/shoppix/shoppix-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	pubsubClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap pubsub", err)
		os.Exit(1)
	}
	defer func() {
		if err := pubsubClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing pubsub", err)
		}
	}()

	catalogRepo := catalog.NewRepository(dbClient.DB())
	catalogService, err := catalog.NewService(catalog.ServiceParams{Repo: catalogRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cart.ServiceParams{
		CartRepo: cart.NewRepository(dbClient.DB()),
		Products: catalogRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	ratingsPublisher, err := ratings.NewPublisher(pubsubClient.RatingsPublisher(), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create ratings publisher", err)
		os.Exit(1)
	}

	reviewsRepo := reviews.NewRepository(dbClient.DB())
	reviewsService, err := reviews.NewService(reviews.ServiceParams{
		ReviewRepo: reviewsRepo,
		Users:      reviewsRepo,
		Products:   catalogRepo,
		Enqueuer:   ratingsPublisher,
		Logger:     logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create reviews service", err)
		os.Exit(1)
	}

	ratingsService, err := ratings.NewService(ratings.ServiceParams{
		Repo:    ratings.NewRepository(dbClient.DB()),
		Logger:  logg,
		Metrics: metrics.NewRatingJobMetrics(prometheus.DefaultRegisterer),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create ratings service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			pubsubClient,
			catalogService,
			cartService,
			reviewsService,
			ratingsService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
