package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/shoppix/shoppix-backend/pkg/db/models"
	pkgerrors "github.com/shoppix/shoppix-backend/pkg/errors"
	"gorm.io/gorm"
)

const similarProductsLimit = 4

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	Repo CatalogRepository
}

// Service exposes read and admin operations over the catalog.
type Service interface {
	ListProducts(ctx context.Context, featuredOnly bool) ([]ProductSummary, error)
	GetProductBySlug(ctx context.Context, slug string) (ProductDetail, error)
	ListCategories(ctx context.Context) ([]CategorySummary, error)
	GetCategoryBySlug(ctx context.Context, slug string) (CategoryDetail, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (ProductSummary, error)
	CreateCategory(ctx context.Context, input CreateCategoryInput) (CategorySummary, error)
}

type service struct {
	repo CatalogRepository
}

// NewService builds a catalog service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	return &service{repo: params.Repo}, nil
}

// ListProducts returns the product listing, optionally only featured items.
func (s *service) ListProducts(ctx context.Context, featuredOnly bool) ([]ProductSummary, error) {
	products, err := s.repo.ListProducts(ctx, featuredOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	summaries := make([]ProductSummary, 0, len(products))
	for _, p := range products {
		summaries = append(summaries, toProductSummary(p))
	}
	return summaries, nil
}

// GetProductBySlug returns the product detail including its rating
// aggregate and up to four products from the same category.
func (s *service) GetProductBySlug(ctx context.Context, slug string) (ProductDetail, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return ProductDetail{}, pkgerrors.New(pkgerrors.CodeValidation, "product slug is required")
	}

	product, err := s.repo.FindProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProductDetail{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return ProductDetail{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	detail := ProductDetail{
		ProductSummary:  toProductSummary(product),
		Description:     product.Description,
		SimilarProducts: []ProductSummary{},
		CreatedAt:       product.CreatedAt,
		UpdatedAt:       product.UpdatedAt,
	}
	if product.Rating != nil {
		detail.AverageRating = product.Rating.AverageRating
		detail.TotalReviews = product.Rating.TotalReviews
	}

	if product.CategoryID != nil {
		similar, err := s.repo.ListSimilarProducts(ctx, *product.CategoryID, product.ID, similarProductsLimit)
		if err != nil {
			return ProductDetail{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load similar products")
		}
		for _, p := range similar {
			detail.SimilarProducts = append(detail.SimilarProducts, toProductSummary(p))
		}
	}

	return detail, nil
}

// ListCategories returns all categories.
func (s *service) ListCategories(ctx context.Context) ([]CategorySummary, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	summaries := make([]CategorySummary, 0, len(categories))
	for _, c := range categories {
		summaries = append(summaries, toCategorySummary(c))
	}
	return summaries, nil
}

// GetCategoryBySlug returns the category detail including its products.
func (s *service) GetCategoryBySlug(ctx context.Context, slug string) (CategoryDetail, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return CategoryDetail{}, pkgerrors.New(pkgerrors.CodeValidation, "category slug is required")
	}

	category, err := s.repo.FindCategoryBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CategoryDetail{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "category not found")
		}
		return CategoryDetail{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}

	detail := CategoryDetail{
		CategorySummary: toCategorySummary(category),
		Description:     category.Description,
		Products:        make([]ProductSummary, 0, len(category.Products)),
	}
	for _, p := range category.Products {
		detail.Products = append(detail.Products, toProductSummary(p))
	}
	return detail, nil
}

// CreateProduct inserts a product, deriving a collision-free slug from its name.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (ProductSummary, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ProductSummary{}, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.Price.IsNegative() {
		return ProductSummary{}, pkgerrors.New(pkgerrors.CodeValidation, "product price must not be negative")
	}

	slug, err := NextSlug(Slugify(name), func(candidate string) (bool, error) {
		return s.repo.ProductSlugExists(ctx, candidate)
	})
	if err != nil {
		return ProductSummary{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve product slug")
	}

	product := models.Product{
		Name:        name,
		Description: input.Description,
		Price:       input.Price,
		Slug:        slug,
		ImageURL:    input.ImageURL,
		Featured:    input.Featured,
		CategoryID:  input.CategoryID,
	}
	if err := s.repo.CreateProduct(ctx, &product); err != nil {
		return ProductSummary{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return toProductSummary(product), nil
}

// CreateCategory inserts a category, deriving a collision-free slug from its name.
func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) (CategorySummary, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return CategorySummary{}, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}

	slug, err := NextSlug(Slugify(name), func(candidate string) (bool, error) {
		return s.repo.CategorySlugExists(ctx, candidate)
	})
	if err != nil {
		return CategorySummary{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve category slug")
	}

	category := models.Category{
		Name:        name,
		Slug:        slug,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}
	if err := s.repo.CreateCategory(ctx, &category); err != nil {
		return CategorySummary{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return toCategorySummary(category), nil
}

func toProductSummary(p models.Product) ProductSummary {
	return ProductSummary{
		ID:       p.ID,
		Name:     p.Name,
		Slug:     p.Slug,
		Price:    p.Price,
		ImageURL: p.ImageURL,
		Featured: p.Featured,
	}
}

func toCategorySummary(c models.Category) CategorySummary {
	return CategorySummary{
		ID:       c.ID,
		Name:     c.Name,
		Slug:     c.Slug,
		ImageURL: c.ImageURL,
	}
}
