package reviews

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shoppix/shoppix-backend/internal/ratings"
	"github.com/shoppix/shoppix-backend/pkg/db"
	"github.com/shoppix/shoppix-backend/pkg/db/models"
	pkgerrors "github.com/shoppix/shoppix-backend/pkg/errors"
	"github.com/shoppix/shoppix-backend/pkg/logger"
	"gorm.io/gorm"
)

// ServiceParams groups dependencies for the review service.
type ServiceParams struct {
	ReviewRepo ReviewRepository
	Users      UserFinder
	Products   ProductFinder
	Enqueuer   ratings.Enqueuer
	Logger     *logger.Logger
}

// Service exposes review CRUD. Every mutation enqueues a rating
// recompute after the write commits; enqueue failures never fail the
// request because eventual consistency is the worker's problem.
type Service interface {
	CreateReview(ctx context.Context, input CreateReviewInput) (ReviewDTO, error)
	UpdateReview(ctx context.Context, reviewID uuid.UUID, input UpdateReviewInput) (ReviewDTO, error)
	DeleteReview(ctx context.Context, reviewID uuid.UUID) error
	ListProductReviews(ctx context.Context, productID uuid.UUID) ([]ReviewDTO, error)
	ListUserReviews(ctx context.Context, email string) ([]ReviewDTO, error)
}

type service struct {
	reviewRepo ReviewRepository
	users      UserFinder
	products   ProductFinder
	enqueuer   ratings.Enqueuer
	logg       *logger.Logger
}

// NewService builds a review service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ReviewRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "review repo is required")
	}
	if params.Users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user finder is required")
	}
	if params.Products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product finder is required")
	}
	if params.Enqueuer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating enqueuer is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{
		reviewRepo: params.ReviewRepo,
		users:      params.Users,
		products:   params.Products,
		enqueuer:   params.Enqueuer,
		logg:       params.Logger,
	}, nil
}

// CreateReview writes one review per (user, product). A second review by
// the same author surfaces as a conflict, not an update.
func (s *service) CreateReview(ctx context.Context, input CreateReviewInput) (ReviewDTO, error) {
	if err := validateRating(input.Rating); err != nil {
		return ReviewDTO{}, err
	}
	if input.ProductID == uuid.Nil {
		return ReviewDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if strings.TrimSpace(input.Email) == "" {
		return ReviewDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	if _, err := s.products.FindProductByID(ctx, input.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReviewDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return ReviewDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	user, err := s.users.FindUserByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReviewDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return ReviewDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	review := models.Review{
		ProductID: input.ProductID,
		UserID:    user.ID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}
	if err := s.reviewRepo.Create(ctx, &review); err != nil {
		if db.IsUniqueViolation(err, "idx_reviews_user_product") {
			return ReviewDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "user already reviewed this product")
		}
		return ReviewDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create review")
	}
	review.User = &user

	s.enqueueRecompute(ctx, review.ProductID)
	return toReviewDTO(review), nil
}

// UpdateReview applies partial changes to an existing review.
func (s *service) UpdateReview(ctx context.Context, reviewID uuid.UUID, input UpdateReviewInput) (ReviewDTO, error) {
	if reviewID == uuid.Nil {
		return ReviewDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "review id is required")
	}
	if input.Rating != nil {
		if err := validateRating(*input.Rating); err != nil {
			return ReviewDTO{}, err
		}
	}

	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReviewDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "review not found")
		}
		return ReviewDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load review")
	}

	if input.Rating != nil {
		review.Rating = *input.Rating
	}
	if input.Comment != nil {
		review.Comment = *input.Comment
	}
	if err := s.reviewRepo.Save(ctx, &review); err != nil {
		return ReviewDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update review")
	}

	s.enqueueRecompute(ctx, review.ProductID)
	return toReviewDTO(review), nil
}

// DeleteReview removes a review and triggers a recompute for its product.
func (s *service) DeleteReview(ctx context.Context, reviewID uuid.UUID) error {
	if reviewID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "review id is required")
	}

	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "review not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load review")
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete review")
	}

	s.enqueueRecompute(ctx, review.ProductID)
	return nil
}

// ListProductReviews returns every review of a product.
func (s *service) ListProductReviews(ctx context.Context, productID uuid.UUID) ([]ReviewDTO, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	reviewRows, err := s.reviewRepo.ListForProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	return toReviewDTOs(reviewRows), nil
}

// ListUserReviews returns every review written by the user behind the email.
func (s *service) ListUserReviews(ctx context.Context, email string) ([]ReviewDTO, error) {
	if strings.TrimSpace(email) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	reviewRows, err := s.reviewRepo.ListForUser(ctx, user.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	return toReviewDTOs(reviewRows), nil
}

// enqueueRecompute fires the recompute job after the review write has
// committed. Failures here are logged and dropped: the synchronous path
// must never fail because the queue hiccupped.
func (s *service) enqueueRecompute(ctx context.Context, productID uuid.UUID) {
	if err := s.enqueuer.Enqueue(ctx, productID); err != nil {
		s.logg.Error(s.logg.WithProductID(ctx, productID.String()), "failed to enqueue rating recompute", err)
	}
}

func validateRating(rating int) error {
	if rating < models.ReviewRatingMin || rating > models.ReviewRatingMax {
		return pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	return nil
}

func toReviewDTO(review models.Review) ReviewDTO {
	dto := ReviewDTO{
		ID:        review.ID,
		ProductID: review.ProductID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
	if review.User != nil {
		dto.Author = AuthorDTO{
			ID:             review.User.ID,
			Email:          review.User.Email,
			Username:       review.User.Username,
			FirstName:      review.User.FirstName,
			LastName:       review.User.LastName,
			ProfilePicture: review.User.ProfilePicture,
		}
	}
	return dto
}

func toReviewDTOs(reviewRows []models.Review) []ReviewDTO {
	dtos := make([]ReviewDTO, 0, len(reviewRows))
	for _, review := range reviewRows {
		dtos = append(dtos, toReviewDTO(review))
	}
	return dtos
}
