package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shoppix/shoppix-backend/pkg/db/models"
	pkgerrors "github.com/shoppix/shoppix-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stubCatalogRepo struct {
	products      []models.Product
	categories    []models.Category
	similar       []models.Product
	takenSlugs    map[string]bool
	created       []models.Product
	createdCats   []models.Category
	findSlugErr   error
	listErr       error
	productBySlug *models.Product
}

func (s *stubCatalogRepo) ListProducts(_ context.Context, featuredOnly bool) ([]models.Product, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	if !featuredOnly {
		return s.products, nil
	}
	out := []models.Product{}
	for _, p := range s.products {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubCatalogRepo) FindProductByID(_ context.Context, id uuid.UUID) (models.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, gorm.ErrRecordNotFound
}

func (s *stubCatalogRepo) FindProductBySlug(_ context.Context, slug string) (models.Product, error) {
	if s.findSlugErr != nil {
		return models.Product{}, s.findSlugErr
	}
	if s.productBySlug != nil && s.productBySlug.Slug == slug {
		return *s.productBySlug, nil
	}
	return models.Product{}, gorm.ErrRecordNotFound
}

func (s *stubCatalogRepo) ListSimilarProducts(_ context.Context, _, _ uuid.UUID, limit int) ([]models.Product, error) {
	if len(s.similar) > limit {
		return s.similar[:limit], nil
	}
	return s.similar, nil
}

func (s *stubCatalogRepo) ProductSlugExists(_ context.Context, slug string) (bool, error) {
	return s.takenSlugs[slug], nil
}

func (s *stubCatalogRepo) CreateProduct(_ context.Context, product *models.Product) error {
	product.ID = uuid.New()
	s.created = append(s.created, *product)
	return nil
}

func (s *stubCatalogRepo) ListCategories(context.Context) ([]models.Category, error) {
	return s.categories, nil
}

func (s *stubCatalogRepo) FindCategoryBySlug(_ context.Context, slug string) (models.Category, error) {
	for _, c := range s.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return models.Category{}, gorm.ErrRecordNotFound
}

func (s *stubCatalogRepo) CategorySlugExists(_ context.Context, slug string) (bool, error) {
	return s.takenSlugs[slug], nil
}

func (s *stubCatalogRepo) CreateCategory(_ context.Context, category *models.Category) error {
	category.ID = uuid.New()
	s.createdCats = append(s.createdCats, *category)
	return nil
}

func newTestService(t *testing.T, repo *stubCatalogRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestListProductsFeaturedFilter(t *testing.T) {
	repo := &stubCatalogRepo{
		products: []models.Product{
			{ID: uuid.New(), Name: "A", Featured: true},
			{ID: uuid.New(), Name: "B", Featured: false},
		},
	}
	svc := newTestService(t, repo)

	all, err := svc.ListProducts(context.Background(), false)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 products, got %d", len(all))
	}

	featured, err := svc.ListProducts(context.Background(), true)
	if err != nil {
		t.Fatalf("list featured: %v", err)
	}
	if len(featured) != 1 || featured[0].Name != "A" {
		t.Fatalf("expected only featured product A, got %+v", featured)
	}
}

func TestGetProductBySlugIncludesRatingAndSimilar(t *testing.T) {
	categoryID := uuid.New()
	product := models.Product{
		ID:         uuid.New(),
		Name:       "Wireless Headphones",
		Slug:       "wireless-headphones",
		CategoryID: &categoryID,
		Rating:     &models.ProductRating{AverageRating: 4.5, TotalReviews: 12},
	}
	repo := &stubCatalogRepo{
		productBySlug: &product,
		similar: []models.Product{
			{ID: uuid.New(), Name: "Earbuds"},
			{ID: uuid.New(), Name: "Speaker"},
		},
	}
	svc := newTestService(t, repo)

	detail, err := svc.GetProductBySlug(context.Background(), "wireless-headphones")
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if detail.AverageRating != 4.5 || detail.TotalReviews != 12 {
		t.Fatalf("rating not mapped: %+v", detail)
	}
	if len(detail.SimilarProducts) != 2 {
		t.Fatalf("expected 2 similar products, got %d", len(detail.SimilarProducts))
	}
}

func TestGetProductBySlugNotFound(t *testing.T) {
	svc := newTestService(t, &stubCatalogRepo{})

	_, err := svc.GetProductBySlug(context.Background(), "missing")
	if err == nil {
		t.Fatalf("expected error")
	}
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", err)
	}
}

func TestCreateProductResolvesSlugCollision(t *testing.T) {
	repo := &stubCatalogRepo{
		takenSlugs: map[string]bool{"gaming-mouse": true, "gaming-mouse-1": true},
	}
	svc := newTestService(t, repo)

	summary, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:  "Gaming Mouse",
		Price: decimal.NewFromFloat(29.99),
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if summary.Slug != "gaming-mouse-2" {
		t.Fatalf("expected deduped slug, got %q", summary.Slug)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one insert, got %d", len(repo.created))
	}
}

func TestCreateProductRejectsNegativePrice(t *testing.T) {
	svc := newTestService(t, &stubCatalogRepo{})

	_, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:  "Broken",
		Price: decimal.NewFromInt(-1),
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetCategoryBySlugIncludesProducts(t *testing.T) {
	repo := &stubCatalogRepo{
		categories: []models.Category{
			{
				ID:   uuid.New(),
				Name: "Audio",
				Slug: "audio",
				Products: []models.Product{
					{ID: uuid.New(), Name: "Speaker"},
				},
			},
		},
	}
	svc := newTestService(t, repo)

	detail, err := svc.GetCategoryBySlug(context.Background(), "audio")
	if err != nil {
		t.Fatalf("get category: %v", err)
	}
	if len(detail.Products) != 1 || detail.Products[0].Name != "Speaker" {
		t.Fatalf("expected category products, got %+v", detail.Products)
	}
}
