package ratings

import (
	"time"

	"github.com/google/uuid"
)

// EventTypeRecompute marks a rating-recompute job on the queue.
const EventTypeRecompute = "rating.recompute"

// Event is the recompute job carried on the queue. Each review mutation
// publishes one; workers tolerate duplicates and reordering because the
// recompute reads the full review set.
type Event struct {
	EventID    uuid.UUID `json:"eventId"`
	ProductID  uuid.UUID `json:"productId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewEvent builds a recompute event for the product.
func NewEvent(productID uuid.UUID) Event {
	return Event{
		EventID:    uuid.New(),
		ProductID:  productID,
		OccurredAt: time.Now().UTC(),
	}
}
