package models

import (
	"time"

	"github.com/google/uuid"
)

// Review rating bounds; enforced in the service and by a DB check constraint.
const (
	ReviewRatingMin = 1
	ReviewRatingMax = 5
)

// Review is one user's rating of one product. A user gets at most one
// review per product; every mutation triggers a rating recompute job.
type Review struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_reviews_user_product,priority:2"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_reviews_user_product,priority:1"`
	Rating    int       `gorm:"column:rating;not null"`
	Comment   string    `gorm:"column:comment;not null;default:''"`
	User      *User     `gorm:"foreignKey:UserID"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
