package ratings

import (
	"context"

	"github.com/google/uuid"
	"github.com/shoppix/shoppix-backend/pkg/db/models"
)

// RatingRepository defines the persistence surface required by the rating service.
type RatingRepository interface {
	ProductExists(ctx context.Context, productID uuid.UUID) (bool, error)
	AggregateReviews(ctx context.Context, productID uuid.UUID) (avg float64, count int, err error)
	UpsertRating(ctx context.Context, productID uuid.UUID, avg float64, count int) (models.ProductRating, error)
	ListProductIDs(ctx context.Context) ([]uuid.UUID, error)
	RecordFailure(ctx context.Context, failure *models.RatingJobFailure) error
}

// Enqueuer publishes recompute jobs; the API layer calls it after every
// review mutation.
type Enqueuer interface {
	Enqueue(ctx context.Context, productID uuid.UUID) error
}
