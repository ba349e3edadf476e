package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shoppix/shoppix-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates catalog persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListProducts returns products, optionally filtered to featured ones.
func (r *Repository) ListProducts(ctx context.Context, featuredOnly bool) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if featuredOnly {
		query = query.Where("featured = ?", true)
	}
	var products []models.Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindProductByID loads a single product by primary key.
func (r *Repository) FindProductByID(ctx context.Context, id uuid.UUID) (models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&product).
		Error
	return product, err
}

// FindProductBySlug loads a product with its rating aggregate preloaded.
func (r *Repository) FindProductBySlug(ctx context.Context, slug string) (models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Rating").
		Where("slug = ?", slug).
		First(&product).
		Error
	return product, err
}

// ListSimilarProducts returns other products in the same category.
func (r *Repository) ListSimilarProducts(ctx context.Context, categoryID, excludeID uuid.UUID, limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("category_id = ? AND id <> ?", categoryID, excludeID).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).
		Error
	return products, err
}

// ProductSlugExists reports whether any product already uses the slug.
func (r *Repository) ProductSlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("slug = ?", slug).
		Count(&count).
		Error
	return count > 0, err
}

// CreateProduct inserts the product row.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// ListCategories returns all categories ordered by name.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

// FindCategoryBySlug loads a category and its products.
func (r *Repository) FindCategoryBySlug(ctx context.Context, slug string) (models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Preload("Products").
		Where("slug = ?", slug).
		First(&category).
		Error
	return category, err
}

// CategorySlugExists reports whether any category already uses the slug.
func (r *Repository) CategorySlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("slug = ?", slug).
		Count(&count).
		Error
	return count > 0, err
}

// CreateCategory inserts the category row.
func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}
