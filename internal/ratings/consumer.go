package ratings

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"
	"github.com/shoppix/shoppix-backend/pkg/db/models"
	pkgerrors "github.com/shoppix/shoppix-backend/pkg/errors"
	"github.com/shoppix/shoppix-backend/pkg/logger"
	"github.com/shoppix/shoppix-backend/pkg/metrics"
)

const consumerName = "ratings-worker"

const (
	defaultMaxRetries  = 3
	defaultBaseBackoff = 60 * time.Second
	markTimeout        = 5 * time.Second
)

type idempotencyGuard interface {
	IsProcessed(ctx context.Context, consumer string, eventID uuid.UUID) (bool, error)
	MarkProcessed(ctx context.Context, consumer string, eventID uuid.UUID) error
}

// ConsumerParams groups dependencies for the rating consumer.
type ConsumerParams struct {
	Service      Service
	Repo         RatingRepository
	Subscription *pubsub.Subscriber
	Idempotency  idempotencyGuard
	Logger       *logger.Logger
	Metrics      *metrics.RatingJobMetrics
	MaxRetries   int
	BaseBackoff  time.Duration
}

// Consumer pulls recompute jobs off the ratings subscription. The
// subscription's Receive loop is the worker pool; each callback runs
// one job end to end including its retry ladder.
type Consumer struct {
	service      Service
	repo         RatingRepository
	subscription *pubsub.Subscriber
	idempotency  idempotencyGuard
	logg         *logger.Logger
	metrics      *metrics.RatingJobMetrics
	maxRetries   int
	baseBackoff  time.Duration
}

// NewConsumer builds a rating recompute consumer.
func NewConsumer(params ConsumerParams) (*Consumer, error) {
	if params.Service == nil {
		return nil, fmt.Errorf("rating service required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("rating repository required")
	}
	if params.Subscription == nil {
		return nil, fmt.Errorf("ratings subscription required")
	}
	if params.Idempotency == nil {
		return nil, fmt.Errorf("idempotency manager required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.MaxRetries <= 0 {
		params.MaxRetries = defaultMaxRetries
	}
	if params.BaseBackoff <= 0 {
		params.BaseBackoff = defaultBaseBackoff
	}
	return &Consumer{
		service:      params.Service,
		repo:         params.Repo,
		subscription: params.Subscription,
		idempotency:  params.Idempotency,
		logg:         params.Logger,
		metrics:      params.Metrics,
		maxRetries:   params.MaxRetries,
		baseBackoff:  params.BaseBackoff,
	}, nil
}

// Run starts the consumer loop until the context is canceled.
func (c *Consumer) Run(ctx context.Context) error {
	return c.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		result := c.process(ctx, msg)
		if result.nack {
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

type processResult struct {
	ack  bool
	nack bool
}

func (c *Consumer) process(ctx context.Context, msg *pubsub.Message) processResult {
	eventType := msg.Attributes["event_type"]
	logCtx := c.logg.WithFields(ctx, map[string]any{
		"message_id": msg.ID,
		"event_type": eventType,
	})

	if eventType != EventTypeRecompute {
		c.logg.Info(logCtx, "skipping non-rating event")
		return processResult{ack: true}
	}

	var event Event
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		c.logg.Error(logCtx, "failed to decode rating event", err)
		return processResult{ack: true}
	}
	if event.EventID == uuid.Nil || event.ProductID == uuid.Nil {
		c.logg.Error(logCtx, "rating event missing ids", nil)
		return processResult{ack: true}
	}

	logCtx = c.logg.WithFields(logCtx, map[string]any{
		"event_id":   event.EventID.String(),
		"product_id": event.ProductID.String(),
	})

	already, err := c.idempotency.IsProcessed(ctx, consumerName, event.EventID)
	if err != nil {
		c.logg.Error(logCtx, "idempotency check failed", err)
		return processResult{nack: true}
	}
	if already {
		c.logg.Info(logCtx, "event already processed")
		return processResult{ack: true}
	}

	if err := c.Process(logCtx, event); err != nil {
		// No marker exists yet, so the nacked message reruns the job on
		// redelivery. Shutdown mid-backoff therefore requeues, never drops.
		return processResult{nack: true}
	}

	// Mark only after the job finished. The marker write runs on a
	// detached context so a shutdown right after success still records
	// it; if the write fails anyway the redelivered duplicate recomputes
	// the same aggregate, which is idempotent.
	markCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), markTimeout)
	defer cancel()
	if err := c.idempotency.MarkProcessed(markCtx, consumerName, event.EventID); err != nil {
		c.logg.Error(logCtx, "failed to mark event processed", err)
	}
	return processResult{ack: true}
}

// Process runs one recompute job with its bounded retry ladder. A nil
// return means the job is finished from the queue's perspective, even
// when it ended in the failure table. A non-nil return asks for
// redelivery.
func (c *Consumer) Process(ctx context.Context, event Event) error {
	start := time.Now()
	attempts := 0
	var lastErr error

	for {
		result, err := c.service.Recompute(ctx, event.ProductID)
		if err == nil {
			c.metrics.ObserveDuration("recompute", time.Since(start))
			if !result.Skipped {
				c.metrics.IncSuccess("recompute")
			}
			return nil
		}
		lastErr = err

		if !pkgerrors.IsRetryable(err) {
			c.logg.Error(ctx, "rating job failed permanently", err)
			break
		}
		if attempts >= c.maxRetries {
			break
		}

		// sleeps base, 2*base, 4*base before retries 1..3
		backoff := c.baseBackoff << attempts
		attempts++
		c.metrics.IncRetry("recompute")
		c.logg.Warn(c.logg.WithFields(ctx, map[string]any{
			"attempt": attempts,
			"backoff": backoff.String(),
		}), "transient recompute failure, retrying")

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	c.metrics.IncFailure("recompute")
	failure := &models.RatingJobFailure{
		EventID:      event.EventID,
		ProductID:    event.ProductID,
		ErrorMessage: lastErr.Error(),
		AttemptCount: attempts + 1,
	}
	if err := c.repo.RecordFailure(ctx, failure); err != nil {
		c.logg.Error(ctx, "failed to record abandoned rating job", err)
		return err
	}
	c.logg.Error(ctx, "rating job abandoned after retries", lastErr)
	return nil
}
