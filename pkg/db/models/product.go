package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the canonical catalog listing. From the cart/rating
// subsystem's point of view it is immutable except for the denormalized
// rating row maintained by the worker.
type Product struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string          `gorm:"column:name;not null"`
	Description string          `gorm:"column:description;not null;default:''"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Slug        string          `gorm:"column:slug;not null;uniqueIndex"`
	ImageURL    *string         `gorm:"column:image_url"`
	Featured    bool            `gorm:"column:featured;not null;default:false"`
	CategoryID  *uuid.UUID      `gorm:"column:category_id;type:uuid"`
	Rating      *ProductRating  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Reviews     []Review        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
