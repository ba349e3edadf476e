package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductSummary is the listing shape returned by product collections.
type ProductSummary struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Slug     string          `json:"slug"`
	Price    decimal.Decimal `json:"price"`
	ImageURL *string         `json:"image_url"`
	Featured bool            `json:"featured"`
}

// ProductDetail extends the summary with description, category and the
// denormalized rating aggregate maintained by the worker.
type ProductDetail struct {
	ProductSummary
	Description     string           `json:"description"`
	Category        *CategorySummary `json:"category,omitempty"`
	AverageRating   float64          `json:"average_rating"`
	TotalReviews    int              `json:"total_reviews"`
	SimilarProducts []ProductSummary `json:"similar_products"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// CategorySummary is the listing shape for categories.
type CategorySummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Slug     string    `json:"slug"`
	ImageURL *string   `json:"image_url"`
}

// CategoryDetail includes the category's products.
type CategoryDetail struct {
	CategorySummary
	Description string           `json:"description"`
	Products    []ProductSummary `json:"products"`
}

// CreateProductInput carries the fields accepted when creating a product.
type CreateProductInput struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	ImageURL    *string         `json:"image_url"`
	Featured    bool            `json:"featured"`
	CategoryID  *uuid.UUID      `json:"category_id"`
}

// CreateCategoryInput carries the fields accepted when creating a category.
type CreateCategoryInput struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	ImageURL    *string `json:"image_url"`
}
