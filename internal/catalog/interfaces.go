package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shoppix/shoppix-backend/pkg/db/models"
)

// CatalogRepository defines the persistence surface required by the catalog service.
type CatalogRepository interface {
	ListProducts(ctx context.Context, featuredOnly bool) ([]models.Product, error)
	FindProductByID(ctx context.Context, id uuid.UUID) (models.Product, error)
	FindProductBySlug(ctx context.Context, slug string) (models.Product, error)
	ListSimilarProducts(ctx context.Context, categoryID, excludeID uuid.UUID, limit int) ([]models.Product, error)
	ProductSlugExists(ctx context.Context, slug string) (bool, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	ListCategories(ctx context.Context) ([]models.Category, error)
	FindCategoryBySlug(ctx context.Context, slug string) (models.Category, error)
	CategorySlugExists(ctx context.Context, slug string) (bool, error)
	CreateCategory(ctx context.Context, category *models.Category) error
}
