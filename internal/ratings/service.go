package ratings

import (
	"context"

	"github.com/google/uuid"
	pkgerrors "github.com/shoppix/shoppix-backend/pkg/errors"
	"github.com/shoppix/shoppix-backend/pkg/logger"
	"github.com/shoppix/shoppix-backend/pkg/metrics"
)

// RecomputeResult reports the outcome of a single recompute.
type RecomputeResult struct {
	ProductID     uuid.UUID `json:"product_id"`
	Skipped       bool      `json:"skipped"`
	AverageRating float64   `json:"average_rating"`
	TotalReviews  int       `json:"total_reviews"`
}

// BulkResult aggregates the outcome of RecomputeAll.
type BulkResult struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// ServiceParams groups dependencies for the rating service.
type ServiceParams struct {
	Repo    RatingRepository
	Logger  *logger.Logger
	Metrics *metrics.RatingJobMetrics
}

// Service recomputes product rating aggregates from the review set.
type Service interface {
	Recompute(ctx context.Context, productID uuid.UUID) (RecomputeResult, error)
	RecomputeAll(ctx context.Context) (BulkResult, error)
}

type service struct {
	repo    RatingRepository
	logg    *logger.Logger
	metrics *metrics.RatingJobMetrics
}

// NewService builds a rating service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating repo is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{
		repo:    params.Repo,
		logg:    params.Logger,
		metrics: params.Metrics,
	}, nil
}

// Recompute reads the full review set for the product and upserts its
// aggregate. A vanished product is a benign no-op: the job consumed a
// stale trigger, nothing to report beyond a low-severity log line.
func (s *service) Recompute(ctx context.Context, productID uuid.UUID) (RecomputeResult, error) {
	if productID == uuid.Nil {
		return RecomputeResult{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	logCtx := s.logg.WithProductID(ctx, productID.String())

	exists, err := s.repo.ProductExists(ctx, productID)
	if err != nil {
		return RecomputeResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check product")
	}
	if !exists {
		s.logg.Info(logCtx, "product gone before recompute, skipping")
		s.metrics.IncNoop("recompute")
		return RecomputeResult{ProductID: productID, Skipped: true}, nil
	}

	avg, count, err := s.repo.AggregateReviews(ctx, productID)
	if err != nil {
		return RecomputeResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate reviews")
	}

	rating, err := s.repo.UpsertRating(ctx, productID, avg, count)
	if err != nil {
		return RecomputeResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert rating")
	}

	return RecomputeResult{
		ProductID:     productID,
		AverageRating: rating.AverageRating,
		TotalReviews:  rating.TotalReviews,
	}, nil
}

// RecomputeAll recomputes every product's aggregate. Individual failures
// are counted and logged but never abort the sweep.
func (s *service) RecomputeAll(ctx context.Context) (BulkResult, error) {
	ids, err := s.repo.ListProductIDs(ctx)
	if err != nil {
		return BulkResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	result := BulkResult{Total: len(ids)}
	for _, id := range ids {
		recompute, err := s.Recompute(ctx, id)
		if err != nil {
			result.Failed++
			s.logg.Error(s.logg.WithProductID(ctx, id.String()), "bulk recompute failed for product", err)
			continue
		}
		if recompute.Skipped {
			result.Skipped++
			continue
		}
		result.Succeeded++
	}
	return result, nil
}
