package reviews

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shoppix/shoppix-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates review persistence and author lookup.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a review repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the review row. The unique (user, product) index
// rejects a second review by the same author.
func (r *Repository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// FindByID loads a review with its author.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&review).
		Error
	return review, err
}

// Save persists changes to an existing review.
func (r *Repository) Save(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

// Delete removes the review row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Review{}).
		Error
}

// ListForProduct returns all reviews of a product, newest first.
func (r *Repository) ListForProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	var reviewRows []models.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviewRows).
		Error
	return reviewRows, err
}

// ListForUser returns all reviews written by a user, newest first.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Review, error) {
	var reviewRows []models.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviewRows).
		Error
	return reviewRows, err
}

// FindUserByEmail resolves a user by normalized email.
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).
		Error
	return user, err
}
