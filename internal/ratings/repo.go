package ratings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shoppix/shoppix-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates rating persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a rating repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ProductExists reports whether the product row is still present.
func (r *Repository) ProductExists(ctx context.Context, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Count(&count).
		Error
	return count > 0, err
}

// AggregateReviews computes the mean rating and review count for the
// product from the current review set. An empty set yields (0, 0).
func (r *Repository) AggregateReviews(ctx context.Context, productID uuid.UUID) (float64, int, error) {
	var row struct {
		Avg   float64 `gorm:"column:avg"`
		Count int     `gorm:"column:count"`
	}
	err := r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count FROM reviews WHERE product_id = ?`, productID).
		Scan(&row).
		Error
	if err != nil {
		return 0, 0, err
	}
	return row.Avg, row.Count, nil
}

type upsertRatingRow struct {
	ID            uuid.UUID `gorm:"column:id"`
	ProductID     uuid.UUID `gorm:"column:product_id"`
	AverageRating float64   `gorm:"column:average_rating"`
	TotalReviews  int       `gorm:"column:total_reviews"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

// UpsertRating writes the aggregate for the product. Last write wins;
// concurrent recomputes each wrote a value derived from the full review
// set, so any winner is a valid aggregate.
func (r *Repository) UpsertRating(ctx context.Context, productID uuid.UUID, avg float64, count int) (models.ProductRating, error) {
	var row upsertRatingRow
	err := r.db.WithContext(ctx).
		Raw(`INSERT INTO product_ratings (product_id, average_rating, total_reviews)
VALUES (?, ?, ?)
ON CONFLICT (product_id)
DO UPDATE SET average_rating = EXCLUDED.average_rating, total_reviews = EXCLUDED.total_reviews, updated_at = now()
RETURNING id, product_id, average_rating, total_reviews, created_at, updated_at`, productID, avg, count).
		Scan(&row).
		Error
	if err != nil {
		return models.ProductRating{}, err
	}
	return models.ProductRating{
		ID:            row.ID,
		ProductID:     row.ProductID,
		AverageRating: row.AverageRating,
		TotalReviews:  row.TotalReviews,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}, nil
}

// ListProductIDs returns every product id for bulk recomputation.
func (r *Repository) ListProductIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Order("created_at ASC").
		Pluck("id", &ids).
		Error
	return ids, err
}

// RecordFailure persists an abandoned job for operator review.
func (r *Repository) RecordFailure(ctx context.Context, failure *models.RatingJobFailure) error {
	return r.db.WithContext(ctx).Create(failure).Error
}
