package reviews

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shoppix/shoppix-backend/pkg/db/models"
	pkgerrors "github.com/shoppix/shoppix-backend/pkg/errors"
	"github.com/shoppix/shoppix-backend/pkg/logger"
	"gorm.io/gorm"
)

type stubReviewRepo struct {
	reviews   map[uuid.UUID]models.Review
	users     map[string]models.User
	createErr error
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{
		reviews: make(map[uuid.UUID]models.Review),
		users:   make(map[string]models.User),
	}
}

func (s *stubReviewRepo) Create(_ context.Context, review *models.Review) error {
	if s.createErr != nil {
		return s.createErr
	}
	for _, existing := range s.reviews {
		if existing.UserID == review.UserID && existing.ProductID == review.ProductID {
			return errors.New(`duplicate key value violates unique constraint "idx_reviews_user_product"`)
		}
	}
	review.ID = uuid.New()
	s.reviews[review.ID] = *review
	return nil
}

func (s *stubReviewRepo) FindByID(_ context.Context, id uuid.UUID) (models.Review, error) {
	if review, ok := s.reviews[id]; ok {
		return review, nil
	}
	return models.Review{}, gorm.ErrRecordNotFound
}

func (s *stubReviewRepo) Save(_ context.Context, review *models.Review) error {
	s.reviews[review.ID] = *review
	return nil
}

func (s *stubReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.reviews, id)
	return nil
}

func (s *stubReviewRepo) ListForProduct(_ context.Context, productID uuid.UUID) ([]models.Review, error) {
	var out []models.Review
	for _, review := range s.reviews {
		if review.ProductID == productID {
			out = append(out, review)
		}
	}
	return out, nil
}

func (s *stubReviewRepo) ListForUser(_ context.Context, userID uuid.UUID) ([]models.Review, error) {
	var out []models.Review
	for _, review := range s.reviews {
		if review.UserID == userID {
			out = append(out, review)
		}
	}
	return out, nil
}

func (s *stubReviewRepo) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	if user, ok := s.users[email]; ok {
		return user, nil
	}
	return models.User{}, gorm.ErrRecordNotFound
}

type stubProducts struct {
	ids map[uuid.UUID]bool
}

func (s *stubProducts) FindProductByID(_ context.Context, id uuid.UUID) (models.Product, error) {
	if s.ids[id] {
		return models.Product{ID: id}, nil
	}
	return models.Product{}, gorm.ErrRecordNotFound
}

type recordingEnqueuer struct {
	enqueued []uuid.UUID
	err      error
}

func (r *recordingEnqueuer) Enqueue(_ context.Context, productID uuid.UUID) error {
	if r.err != nil {
		return r.err
	}
	r.enqueued = append(r.enqueued, productID)
	return nil
}

type reviewFixture struct {
	repo     *stubReviewRepo
	products *stubProducts
	enqueuer *recordingEnqueuer
	svc      Service
	product  uuid.UUID
	user     models.User
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	repo := newStubReviewRepo()
	productID := uuid.New()
	products := &stubProducts{ids: map[uuid.UUID]bool{productID: true}}
	user := models.User{ID: uuid.New(), Email: "shopper@example.com", Username: "shopper"}
	repo.users[user.Email] = user
	enqueuer := &recordingEnqueuer{}
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel, Output: io.Discard})

	svc, err := NewService(ServiceParams{
		ReviewRepo: repo,
		Users:      repo,
		Products:   products,
		Enqueuer:   enqueuer,
		Logger:     logg,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return &reviewFixture{
		repo:     repo,
		products: products,
		enqueuer: enqueuer,
		svc:      svc,
		product:  productID,
		user:     user,
	}
}

func TestCreateReviewEnqueuesRecompute(t *testing.T) {
	f := newReviewFixture(t)

	dto, err := f.svc.CreateReview(context.Background(), CreateReviewInput{
		ProductID: f.product,
		Email:     f.user.Email,
		Rating:    4,
		Comment:   "solid",
	})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
	if dto.Rating != 4 || dto.Author.Email != f.user.Email {
		t.Fatalf("unexpected dto %+v", dto)
	}
	if len(f.enqueuer.enqueued) != 1 || f.enqueuer.enqueued[0] != f.product {
		t.Fatalf("expected one recompute enqueue for the product, got %v", f.enqueuer.enqueued)
	}
}

func TestCreateReviewDuplicateIsConflict(t *testing.T) {
	f := newReviewFixture(t)

	input := CreateReviewInput{ProductID: f.product, Email: f.user.Email, Rating: 5}
	if _, err := f.svc.CreateReview(context.Background(), input); err != nil {
		t.Fatalf("first review: %v", err)
	}
	_, err := f.svc.CreateReview(context.Background(), input)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(f.enqueuer.enqueued) != 1 {
		t.Fatalf("rejected duplicate must not enqueue, got %d", len(f.enqueuer.enqueued))
	}
}

func TestCreateReviewRatingBounds(t *testing.T) {
	f := newReviewFixture(t)

	for _, rating := range []int{0, 6, -3} {
		_, err := f.svc.CreateReview(context.Background(), CreateReviewInput{
			ProductID: f.product,
			Email:     f.user.Email,
			Rating:    rating,
		})
		appErr := pkgerrors.As(err)
		if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
			t.Fatalf("rating %d: expected validation error, got %v", rating, err)
		}
	}
}

func TestCreateReviewEnqueueFailureDoesNotFailRequest(t *testing.T) {
	f := newReviewFixture(t)
	f.enqueuer.err = errors.New("broker down")

	_, err := f.svc.CreateReview(context.Background(), CreateReviewInput{
		ProductID: f.product,
		Email:     f.user.Email,
		Rating:    3,
	})
	if err != nil {
		t.Fatalf("enqueue failure must not surface: %v", err)
	}
	if len(f.repo.reviews) != 1 {
		t.Fatalf("review must still be committed")
	}
}

func TestUpdateReviewEnqueuesRecompute(t *testing.T) {
	f := newReviewFixture(t)

	created, err := f.svc.CreateReview(context.Background(), CreateReviewInput{
		ProductID: f.product,
		Email:     f.user.Email,
		Rating:    2,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newRating := 5
	updated, err := f.svc.UpdateReview(context.Background(), created.ID, UpdateReviewInput{Rating: &newRating})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Rating != 5 {
		t.Fatalf("expected rating 5, got %d", updated.Rating)
	}
	if len(f.enqueuer.enqueued) != 2 {
		t.Fatalf("update must enqueue a recompute, got %d enqueues", len(f.enqueuer.enqueued))
	}
}

func TestDeleteReviewEnqueuesRecompute(t *testing.T) {
	f := newReviewFixture(t)

	created, err := f.svc.CreateReview(context.Background(), CreateReviewInput{
		ProductID: f.product,
		Email:     f.user.Email,
		Rating:    2,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := f.svc.DeleteReview(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(f.repo.reviews) != 0 {
		t.Fatalf("review must be gone")
	}
	if len(f.enqueuer.enqueued) != 2 {
		t.Fatalf("delete must enqueue a recompute")
	}

	err = f.svc.DeleteReview(context.Background(), created.ID)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("second delete must be not found, got %v", err)
	}
}

func TestListUserReviews(t *testing.T) {
	f := newReviewFixture(t)

	if _, err := f.svc.CreateReview(context.Background(), CreateReviewInput{
		ProductID: f.product,
		Email:     f.user.Email,
		Rating:    4,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	listed, err := f.svc.ListUserReviews(context.Background(), f.user.Email)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 review, got %d", len(listed))
	}

	_, err = f.svc.ListUserReviews(context.Background(), "nobody@example.com")
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unknown user must be not found, got %v", err)
	}
}
