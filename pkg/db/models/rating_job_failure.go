package models

import (
	"time"

	"github.com/google/uuid"
)

// RatingJobFailure records a recompute job abandoned after exhausting its
// retries. Operators drain this table; nothing in the hot path reads it.
type RatingJobFailure struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	EventID      uuid.UUID `gorm:"column:event_id;type:uuid;not null"`
	ProductID    uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	ErrorMessage string    `gorm:"column:error_message;not null"`
	AttemptCount int       `gorm:"column:attempt_count;not null;default:0"`
	FailedAt     time.Time `gorm:"column:failed_at;autoCreateTime"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
