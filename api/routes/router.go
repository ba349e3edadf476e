package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shoppix/shoppix-backend/api/controllers"
	"github.com/shoppix/shoppix-backend/api/middleware"
	"github.com/shoppix/shoppix-backend/internal/cart"
	"github.com/shoppix/shoppix-backend/internal/catalog"
	"github.com/shoppix/shoppix-backend/internal/ratings"
	"github.com/shoppix/shoppix-backend/internal/reviews"
	"github.com/shoppix/shoppix-backend/pkg/config"
	"github.com/shoppix/shoppix-backend/pkg/db"
	"github.com/shoppix/shoppix-backend/pkg/logger"
	"github.com/shoppix/shoppix-backend/pkg/pubsub"
	"github.com/shoppix/shoppix-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	pubsubClient *pubsub.Client,
	catalogService catalog.Service,
	cartService cart.Service,
	reviewsService reviews.Service,
	ratingsService ratings.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient, pubsubClient))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(catalogService, logg))
			r.Get("/{slug}", controllers.ProductDetail(catalogService, logg))
			r.Get("/{productID}/reviews", controllers.ProductReviews(reviewsService, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.CategoryList(catalogService, logg))
			r.Get("/{slug}", controllers.CategoryDetail(catalogService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Post("/items", controllers.CartAddItem(cartService, logg))
			r.Patch("/items/{itemID}", controllers.CartSetQuantity(cartService, logg))
			r.Get("/{cartCode}", controllers.CartFetch(cartService, logg))
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Post("/", controllers.ReviewCreate(reviewsService, logg))
			r.Put("/{reviewID}", controllers.ReviewUpdate(reviewsService, logg))
			r.Delete("/{reviewID}", controllers.ReviewDelete(reviewsService, logg))
			r.Get("/", controllers.UserReviews(reviewsService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Post("/products", controllers.AdminCreateProduct(catalogService, logg))
		r.Post("/categories", controllers.AdminCreateCategory(catalogService, logg))
		r.Post("/ratings/recompute", controllers.AdminRecomputeRatings(ratingsService, logg))
	})

	return r
}
