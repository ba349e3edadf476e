package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shoppix/shoppix-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates cart persistence. All multi-writer paths go
// through single-statement upserts so concurrent requests never race.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithCode inserts a fresh cart and fails on a code collision.
func (r *Repository) CreateWithCode(ctx context.Context, code string) (models.Cart, error) {
	cart := models.Cart{CartCode: code}
	if err := r.db.WithContext(ctx).Create(&cart).Error; err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

// GetOrCreateByCode resolves the cart for a client-supplied code,
// creating it when absent. The conditional insert makes re-submission
// of the same code idempotent under concurrency.
func (r *Repository) GetOrCreateByCode(ctx context.Context, code string) (models.Cart, error) {
	err := r.db.WithContext(ctx).
		Exec(`INSERT INTO carts (cart_code) VALUES (?) ON CONFLICT (cart_code) DO NOTHING`, code).
		Error
	if err != nil {
		return models.Cart{}, err
	}

	var cart models.Cart
	err = r.db.WithContext(ctx).
		Where("cart_code = ?", code).
		First(&cart).
		Error
	return cart, err
}

// FindByID loads a cart with its items and their products.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.created_at ASC")
		}).
		Preload("Items.Product").
		Where("id = ?", id).
		First(&cart).
		Error
	return cart, err
}

// FindByCode loads a cart by code with its items and their products.
func (r *Repository) FindByCode(ctx context.Context, code string) (models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.created_at ASC")
		}).
		Preload("Items.Product").
		Where("cart_code = ?", code).
		First(&cart).
		Error
	return cart, err
}

type upsertItemRow struct {
	ID        uuid.UUID `gorm:"column:id"`
	CartID    uuid.UUID `gorm:"column:cart_id"`
	ProductID uuid.UUID `gorm:"column:product_id"`
	Quantity  int       `gorm:"column:quantity"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
	Inserted  bool      `gorm:"column:inserted"`
}

// UpsertItemIncrement inserts the (cart, product) item with quantity 1
// or atomically increments the existing row. The single statement is the
// serialization point: concurrent callers each land exactly one
// increment and only the true insert reports created. xmax = 0 only
// holds for rows the inserting transaction created.
func (r *Repository) UpsertItemIncrement(ctx context.Context, cartID, productID uuid.UUID) (models.CartItem, bool, error) {
	var row upsertItemRow
	err := r.db.WithContext(ctx).
		Raw(`INSERT INTO cart_items (cart_id, product_id, quantity)
VALUES (?, ?, 1)
ON CONFLICT (cart_id, product_id)
DO UPDATE SET quantity = cart_items.quantity + 1, updated_at = now()
RETURNING id, cart_id, product_id, quantity, created_at, updated_at, (xmax = 0) AS inserted`, cartID, productID).
		Scan(&row).
		Error
	if err != nil {
		return models.CartItem{}, false, err
	}

	item := models.CartItem{
		ID:        row.ID,
		CartID:    row.CartID,
		ProductID: row.ProductID,
		Quantity:  row.Quantity,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	return item, row.Inserted, nil
}

// FindItemByID loads a cart item with its product.
func (r *Repository) FindItemByID(ctx context.Context, itemID uuid.UUID) (models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("id = ?", itemID).
		First(&item).
		Error
	return item, err
}

// UpdateItemQuantity overwrites the stored quantity for the item.
func (r *Repository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (models.CartItem, error) {
	result := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Updates(map[string]any{"quantity": quantity, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return models.CartItem{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.CartItem{}, gorm.ErrRecordNotFound
	}
	return r.FindItemByID(ctx, itemID)
}

// DeleteItem removes the cart item row if it still exists.
func (r *Repository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", itemID).
		Delete(&models.CartItem{}).
		Error
}
