package reviews

import (
	"context"

	"github.com/google/uuid"
	"github.com/shoppix/shoppix-backend/pkg/db/models"
)

// ReviewRepository defines the persistence surface required by the review service.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (models.Review, error)
	Save(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListForProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Review, error)
}

// UserFinder resolves review authors.
type UserFinder interface {
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
}

// ProductFinder is the slice of the catalog surface the review service needs.
type ProductFinder interface {
	FindProductByID(ctx context.Context, id uuid.UUID) (models.Product, error)
}
