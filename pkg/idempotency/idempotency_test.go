package idempotency

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

type fakeStore struct {
	keys map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{keys: make(map[string]string)}
}

func (s *fakeStore) Get(_ context.Context, key string) (string, error) {
	value, ok := s.keys[key]
	if !ok {
		return "", goredis.Nil
	}
	return value, nil
}

func (s *fakeStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, exists := s.keys[key]; exists {
		return false, nil
	}
	s.keys[key] = "1"
	return true, nil
}

func (s *fakeStore) IdempotencyKey(scope, id string) string {
	return "spx:idempotency:" + scope + ":" + id
}

func (s *fakeStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.keys, key)
	}
	return nil
}

func TestUnmarkedEventIsNotProcessed(t *testing.T) {
	manager, err := NewManager(newFakeStore(), time.Hour)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	processed, err := manager.IsProcessed(context.Background(), "ratings-worker", uuid.New())
	if err != nil {
		t.Fatalf("is processed: %v", err)
	}
	if processed {
		t.Fatalf("event without a marker must not report processed")
	}
}

func TestMarkProcessedDetectsDuplicates(t *testing.T) {
	manager, err := NewManager(newFakeStore(), time.Hour)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	ctx := context.Background()
	eventID := uuid.New()

	if err := manager.MarkProcessed(ctx, "ratings-worker", eventID); err != nil {
		t.Fatalf("mark: %v", err)
	}

	processed, err := manager.IsProcessed(ctx, "ratings-worker", eventID)
	if err != nil {
		t.Fatalf("is processed: %v", err)
	}
	if !processed {
		t.Fatalf("marked event must report processed")
	}

	// marking twice is harmless
	if err := manager.MarkProcessed(ctx, "ratings-worker", eventID); err != nil {
		t.Fatalf("second mark: %v", err)
	}
}

func TestMarkersAreScopedPerConsumer(t *testing.T) {
	manager, err := NewManager(newFakeStore(), time.Hour)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	ctx := context.Background()
	eventID := uuid.New()

	if err := manager.MarkProcessed(ctx, "ratings-worker", eventID); err != nil {
		t.Fatalf("mark: %v", err)
	}
	processed, err := manager.IsProcessed(ctx, "other-worker", eventID)
	if err != nil {
		t.Fatalf("is processed: %v", err)
	}
	if processed {
		t.Fatalf("marker must not leak across consumers")
	}
}

func TestManagerValidation(t *testing.T) {
	if _, err := NewManager(nil, time.Hour); err == nil {
		t.Fatalf("nil store must be rejected")
	}
	manager, err := NewManager(newFakeStore(), time.Hour)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if _, err := manager.IsProcessed(context.Background(), "", uuid.New()); err == nil {
		t.Fatalf("empty consumer must be rejected")
	}
	if err := manager.MarkProcessed(context.Background(), "ratings-worker", uuid.Nil); err == nil {
		t.Fatalf("nil event id must be rejected")
	}
}
