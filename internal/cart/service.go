package cart

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shoppix/shoppix-backend/pkg/db"
	"github.com/shoppix/shoppix-backend/pkg/db/models"
	pkgerrors "github.com/shoppix/shoppix-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// maxCodeAttempts bounds the generate-and-insert loop for fresh codes.
// A collision on an 11-char random code is vanishingly rare; the loop
// exists so a unique-violation never escapes as a 500.
const maxCodeAttempts = 5

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	CartRepo CartRepository
	Products ProductFinder
}

// Service exposes the cart mutation operations.
type Service interface {
	AddItem(ctx context.Context, cartCode *string, productID uuid.UUID) (AddItemResult, error)
	SetQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (SetQuantityResult, error)
	GetCart(ctx context.Context, cartCode string) (CartDTO, error)
}

type service struct {
	cartRepo CartRepository
	products ProductFinder
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CartRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if params.Products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product finder is required")
	}
	return &service{cartRepo: params.CartRepo, products: params.Products}, nil
}

// AddItem resolves (or creates) the cart, then atomically adds one unit
// of the product. The product existence check runs before any cart
// mutation so a bad product id leaves no partial state behind.
func (s *service) AddItem(ctx context.Context, cartCode *string, productID uuid.UUID) (AddItemResult, error) {
	if productID == uuid.Nil {
		return AddItemResult{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if _, err := s.products.FindProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AddItemResult{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return AddItemResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	cartRecord, err := s.resolveCart(ctx, cartCode)
	if err != nil {
		return AddItemResult{}, err
	}

	item, created, err := s.cartRepo.UpsertItemIncrement(ctx, cartRecord.ID, productID)
	if err != nil {
		return AddItemResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert cart item")
	}

	fullCart, err := s.cartRepo.FindByID(ctx, cartRecord.ID)
	if err != nil {
		return AddItemResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	cartDTO := toCartDTO(fullCart)
	itemDTO := findItemDTO(cartDTO, item.ID)
	return AddItemResult{Cart: cartDTO, Item: itemDTO, Created: created}, nil
}

// SetQuantity overwrites the quantity of an existing cart item. Zero
// removes the row entirely; the parent cart view is returned either way.
func (s *service) SetQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (SetQuantityResult, error) {
	if itemID == uuid.Nil {
		return SetQuantityResult{}, pkgerrors.New(pkgerrors.CodeValidation, "cart item id is required")
	}
	if quantity < 0 {
		return SetQuantityResult{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	}

	item, err := s.cartRepo.FindItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SetQuantityResult{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "cart item not found")
		}
		return SetQuantityResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart item")
	}

	if quantity == 0 {
		if err := s.cartRepo.DeleteItem(ctx, itemID); err != nil {
			return SetQuantityResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart item")
		}
		fullCart, err := s.cartRepo.FindByID(ctx, item.CartID)
		if err != nil {
			return SetQuantityResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}
		return SetQuantityResult{Cart: toCartDTO(fullCart), Removed: true}, nil
	}

	updated, err := s.cartRepo.UpdateItemQuantity(ctx, itemID, quantity)
	if err != nil {
		// The row can vanish between the lookup and the update when a
		// concurrent SetQuantity(0) wins; last commit decides.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SetQuantityResult{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "cart item not found")
		}
		return SetQuantityResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart item")
	}

	fullCart, err := s.cartRepo.FindByID(ctx, updated.CartID)
	if err != nil {
		return SetQuantityResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	cartDTO := toCartDTO(fullCart)
	itemDTO := findItemDTO(cartDTO, updated.ID)
	return SetQuantityResult{Cart: cartDTO, Item: &itemDTO}, nil
}

// GetCart returns the cart view for a known code.
func (s *service) GetCart(ctx context.Context, cartCode string) (CartDTO, error) {
	code := strings.TrimSpace(cartCode)
	if code == "" {
		return CartDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "cart code is required")
	}
	fullCart, err := s.cartRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CartDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "cart not found")
		}
		return CartDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return toCartDTO(fullCart), nil
}

func (s *service) resolveCart(ctx context.Context, cartCode *string) (models.Cart, error) {
	if cartCode != nil && strings.TrimSpace(*cartCode) != "" {
		code := strings.TrimSpace(*cartCode)
		if len(code) != models.CartCodeLength {
			return models.Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "cart code must be 11 characters")
		}
		cartRecord, err := s.cartRepo.GetOrCreateByCode(ctx, code)
		if err != nil {
			return models.Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve cart")
		}
		return cartRecord, nil
	}

	var lastErr error
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := GenerateCartCode()
		if err != nil {
			return models.Cart{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate cart code")
		}
		cartRecord, err := s.cartRepo.CreateWithCode(ctx, code)
		if err == nil {
			return cartRecord, nil
		}
		if !db.IsUniqueViolation(err, "") {
			return models.Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart")
		}
		lastErr = err
	}
	return models.Cart{}, pkgerrors.Wrap(pkgerrors.CodeInternal, lastErr, "exhausted cart code attempts")
}

func toCartDTO(cartRecord models.Cart) CartDTO {
	dto := CartDTO{
		ID:        cartRecord.ID,
		CartCode:  strings.TrimSpace(cartRecord.CartCode),
		Items:     make([]CartItemDTO, 0, len(cartRecord.Items)),
		CartTotal: decimal.Zero,
	}
	for _, item := range cartRecord.Items {
		itemDTO := toCartItemDTO(item)
		dto.Items = append(dto.Items, itemDTO)
		dto.CartTotal = dto.CartTotal.Add(itemDTO.SubTotal)
	}
	return dto
}

func toCartItemDTO(item models.CartItem) CartItemDTO {
	dto := CartItemDTO{
		ID:       item.ID,
		Quantity: item.Quantity,
	}
	if item.Product != nil {
		dto.Product = ItemProductDTO{
			ID:       item.Product.ID,
			Name:     item.Product.Name,
			Slug:     item.Product.Slug,
			Price:    item.Product.Price,
			ImageURL: item.Product.ImageURL,
		}
		dto.SubTotal = item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
	}
	return dto
}

func findItemDTO(cartDTO CartDTO, itemID uuid.UUID) CartItemDTO {
	for _, item := range cartDTO.Items {
		if item.ID == itemID {
			return item
		}
	}
	return CartItemDTO{ID: itemID}
}
