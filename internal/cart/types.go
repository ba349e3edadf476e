package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemProductDTO is the product shape embedded in cart responses.
type ItemProductDTO struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Slug     string          `json:"slug"`
	Price    decimal.Decimal `json:"price"`
	ImageURL *string         `json:"image_url"`
}

// CartItemDTO is one line of a cart with its extended price.
type CartItemDTO struct {
	ID       uuid.UUID       `json:"id"`
	Product  ItemProductDTO  `json:"product"`
	Quantity int             `json:"quantity"`
	SubTotal decimal.Decimal `json:"sub_total"`
}

// CartDTO is the full cart view returned by cart operations.
type CartDTO struct {
	ID        uuid.UUID       `json:"id"`
	CartCode  string          `json:"cart_code"`
	Items     []CartItemDTO   `json:"items"`
	CartTotal decimal.Decimal `json:"cart_total"`
}

// AddItemResult reports the outcome of an AddItem call.
type AddItemResult struct {
	Cart    CartDTO     `json:"cart"`
	Item    CartItemDTO `json:"item"`
	Created bool        `json:"created"`
}

// SetQuantityResult reports the outcome of a SetQuantity call. Item is
// nil when the quantity hit zero and the row was removed.
type SetQuantityResult struct {
	Cart    CartDTO      `json:"cart"`
	Item    *CartItemDTO `json:"item,omitempty"`
	Removed bool         `json:"removed"`
}
