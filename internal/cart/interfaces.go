package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/shoppix/shoppix-backend/pkg/db/models"
)

// CartRepository defines the persistence surface required by the cart service.
type CartRepository interface {
	CreateWithCode(ctx context.Context, code string) (models.Cart, error)
	GetOrCreateByCode(ctx context.Context, code string) (models.Cart, error)
	FindByID(ctx context.Context, id uuid.UUID) (models.Cart, error)
	FindByCode(ctx context.Context, code string) (models.Cart, error)
	UpsertItemIncrement(ctx context.Context, cartID, productID uuid.UUID) (models.CartItem, bool, error)
	FindItemByID(ctx context.Context, itemID uuid.UUID) (models.CartItem, error)
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (models.CartItem, error)
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
}

// ProductFinder is the slice of the catalog surface the cart service needs.
type ProductFinder interface {
	FindProductByID(ctx context.Context, id uuid.UUID) (models.Product, error)
}
