package ratings

import (
	"context"
	"encoding/json"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"
	pkgerrors "github.com/shoppix/shoppix-backend/pkg/errors"
	"github.com/shoppix/shoppix-backend/pkg/logger"
)

type messagePublisher interface {
	Publish(ctx context.Context, msg *pubsub.Message) *pubsub.PublishResult
}

// Publisher enqueues recompute jobs on the ratings topic.
type Publisher struct {
	topic messagePublisher
	logg  *logger.Logger
}

// NewPublisher builds a rating-event publisher.
func NewPublisher(topic messagePublisher, logg *logger.Logger) (*Publisher, error) {
	if topic == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ratings topic is required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &Publisher{topic: topic, logg: logg}, nil
}

// Enqueue publishes one recompute job for the product and waits for the
// broker to accept it. Callers treat failures as non-fatal: the review
// write has already committed by the time this runs.
func (p *Publisher) Enqueue(ctx context.Context, productID uuid.UUID) error {
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	event := NewEvent(productID)
	payload, err := json.Marshal(event)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode rating event")
	}

	result := p.topic.Publish(ctx, &pubsub.Message{
		Data: payload,
		Attributes: map[string]string{
			"event_type": EventTypeRecompute,
			"event_id":   event.EventID.String(),
			"product_id": event.ProductID.String(),
		},
	})
	if _, err := result.Get(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "publish rating event")
	}

	logCtx := p.logg.WithFields(ctx, map[string]any{
		"event_id":   event.EventID.String(),
		"product_id": event.ProductID.String(),
	})
	p.logg.Debug(logCtx, "rating recompute enqueued")
	return nil
}
