package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductRating is the denormalized aggregate over a product's reviews.
// One row per product, created lazily on first recompute and owned
// exclusively by the rating worker.
type ProductRating struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID     uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex"`
	AverageRating float64   `gorm:"column:average_rating;not null;default:0"`
	TotalReviews  int       `gorm:"column:total_reviews;not null;default:0"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
