package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shoppix/shoppix-backend/pkg/db/models"
	pkgerrors "github.com/shoppix/shoppix-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stubCartRepo struct {
	carts       map[string]models.Cart
	items       map[uuid.UUID]models.CartItem
	products    map[uuid.UUID]models.Product
	createCalls int
	failCreates int
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{
		carts:    make(map[string]models.Cart),
		items:    make(map[uuid.UUID]models.CartItem),
		products: make(map[uuid.UUID]models.Product),
	}
}

func (s *stubCartRepo) CreateWithCode(_ context.Context, code string) (models.Cart, error) {
	s.createCalls++
	if s.failCreates > 0 {
		s.failCreates--
		return models.Cart{}, errDuplicateKey{}
	}
	if _, exists := s.carts[code]; exists {
		return models.Cart{}, errDuplicateKey{}
	}
	cartRecord := models.Cart{ID: uuid.New(), CartCode: code}
	s.carts[code] = cartRecord
	return cartRecord, nil
}

func (s *stubCartRepo) GetOrCreateByCode(_ context.Context, code string) (models.Cart, error) {
	if cartRecord, ok := s.carts[code]; ok {
		return cartRecord, nil
	}
	cartRecord := models.Cart{ID: uuid.New(), CartCode: code}
	s.carts[code] = cartRecord
	return cartRecord, nil
}

func (s *stubCartRepo) FindByID(_ context.Context, id uuid.UUID) (models.Cart, error) {
	for _, cartRecord := range s.carts {
		if cartRecord.ID == id {
			return s.withItems(cartRecord), nil
		}
	}
	return models.Cart{}, gorm.ErrRecordNotFound
}

func (s *stubCartRepo) FindByCode(_ context.Context, code string) (models.Cart, error) {
	if cartRecord, ok := s.carts[code]; ok {
		return s.withItems(cartRecord), nil
	}
	return models.Cart{}, gorm.ErrRecordNotFound
}

func (s *stubCartRepo) withItems(cartRecord models.Cart) models.Cart {
	cartRecord.Items = nil
	for _, item := range s.items {
		if item.CartID == cartRecord.ID {
			if product, ok := s.products[item.ProductID]; ok {
				p := product
				item.Product = &p
			}
			cartRecord.Items = append(cartRecord.Items, item)
		}
	}
	return cartRecord
}

func (s *stubCartRepo) UpsertItemIncrement(_ context.Context, cartID, productID uuid.UUID) (models.CartItem, bool, error) {
	for id, item := range s.items {
		if item.CartID == cartID && item.ProductID == productID {
			item.Quantity++
			s.items[id] = item
			return item, false, nil
		}
	}
	item := models.CartItem{ID: uuid.New(), CartID: cartID, ProductID: productID, Quantity: 1}
	s.items[item.ID] = item
	return item, true, nil
}

func (s *stubCartRepo) FindItemByID(_ context.Context, itemID uuid.UUID) (models.CartItem, error) {
	if item, ok := s.items[itemID]; ok {
		return item, nil
	}
	return models.CartItem{}, gorm.ErrRecordNotFound
}

func (s *stubCartRepo) UpdateItemQuantity(_ context.Context, itemID uuid.UUID, quantity int) (models.CartItem, error) {
	item, ok := s.items[itemID]
	if !ok {
		return models.CartItem{}, gorm.ErrRecordNotFound
	}
	item.Quantity = quantity
	s.items[itemID] = item
	return item, nil
}

func (s *stubCartRepo) DeleteItem(_ context.Context, itemID uuid.UUID) error {
	delete(s.items, itemID)
	return nil
}

type errDuplicateKey struct{}

func (errDuplicateKey) Error() string {
	return `duplicate key value violates unique constraint "idx_carts_cart_code"`
}

type stubProductFinder struct {
	products map[uuid.UUID]models.Product
}

func (s *stubProductFinder) FindProductByID(_ context.Context, id uuid.UUID) (models.Product, error) {
	if product, ok := s.products[id]; ok {
		return product, nil
	}
	return models.Product{}, gorm.ErrRecordNotFound
}

func newCartTestService(t *testing.T, repo *stubCartRepo) Service {
	t.Helper()
	finder := &stubProductFinder{products: repo.products}
	svc, err := NewService(ServiceParams{CartRepo: repo, Products: finder})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func seedProduct(repo *stubCartRepo, price string) models.Product {
	product := models.Product{
		ID:    uuid.New(),
		Name:  "Wireless Headphones",
		Slug:  "wireless-headphones",
		Price: decimal.RequireFromString(price),
	}
	repo.products[product.ID] = product
	return product
}

func TestAddItemCreatesCartAndItem(t *testing.T) {
	repo := newStubCartRepo()
	product := seedProduct(repo, "25.00")
	svc := newCartTestService(t, repo)

	result, err := svc.AddItem(context.Background(), nil, product.ID)
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if !result.Created {
		t.Fatalf("expected created flag on first add")
	}
	if len(result.Cart.CartCode) != models.CartCodeLength {
		t.Fatalf("expected %d char cart code, got %q", models.CartCodeLength, result.Cart.CartCode)
	}
	if result.Item.Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", result.Item.Quantity)
	}
}

func TestAddItemIncrementsExistingItem(t *testing.T) {
	repo := newStubCartRepo()
	product := seedProduct(repo, "25.00")
	svc := newCartTestService(t, repo)

	first, err := svc.AddItem(context.Background(), nil, product.ID)
	if err != nil {
		t.Fatalf("first add: %v", err)
	}

	code := first.Cart.CartCode
	second, err := svc.AddItem(context.Background(), &code, product.ID)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if second.Created {
		t.Fatalf("second add must not report created")
	}
	if second.Item.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", second.Item.Quantity)
	}
	if len(second.Cart.Items) != 1 {
		t.Fatalf("expected a single cart item row, got %d", len(second.Cart.Items))
	}
	if got := second.Cart.CartTotal.String(); got != "50" {
		t.Fatalf("expected cart total 50, got %s", got)
	}
}

func TestAddItemUnknownProductLeavesNoState(t *testing.T) {
	repo := newStubCartRepo()
	svc := newCartTestService(t, repo)

	_, err := svc.AddItem(context.Background(), nil, uuid.New())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(repo.carts) != 0 || len(repo.items) != 0 {
		t.Fatalf("no cart state may exist after a failed add")
	}
}

func TestAddItemRetriesOnCodeCollision(t *testing.T) {
	repo := newStubCartRepo()
	repo.failCreates = 2
	product := seedProduct(repo, "10.00")
	svc := newCartTestService(t, repo)

	result, err := svc.AddItem(context.Background(), nil, product.ID)
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if repo.createCalls != 3 {
		t.Fatalf("expected 3 create attempts, got %d", repo.createCalls)
	}
	if !result.Created {
		t.Fatalf("expected created flag")
	}
}

func TestSetQuantityOverwrites(t *testing.T) {
	repo := newStubCartRepo()
	product := seedProduct(repo, "10.00")
	svc := newCartTestService(t, repo)

	added, err := svc.AddItem(context.Background(), nil, product.ID)
	if err != nil {
		t.Fatalf("add item: %v", err)
	}

	result, err := svc.SetQuantity(context.Background(), added.Item.ID, 5)
	if err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if result.Removed || result.Item == nil {
		t.Fatalf("expected surviving item, got %+v", result)
	}
	if result.Item.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", result.Item.Quantity)
	}

	// absolute set: applying the same quantity twice is a no-op
	again, err := svc.SetQuantity(context.Background(), added.Item.ID, 5)
	if err != nil {
		t.Fatalf("set quantity again: %v", err)
	}
	if again.Item.Quantity != 5 {
		t.Fatalf("expected quantity to stay 5, got %d", again.Item.Quantity)
	}
}

func TestSetQuantityZeroRemovesItem(t *testing.T) {
	repo := newStubCartRepo()
	product := seedProduct(repo, "10.00")
	svc := newCartTestService(t, repo)

	added, err := svc.AddItem(context.Background(), nil, product.ID)
	if err != nil {
		t.Fatalf("add item: %v", err)
	}

	result, err := svc.SetQuantity(context.Background(), added.Item.ID, 0)
	if err != nil {
		t.Fatalf("set quantity zero: %v", err)
	}
	if !result.Removed {
		t.Fatalf("expected removed flag")
	}
	if len(result.Cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(result.Cart.Items))
	}

	cartView, err := svc.GetCart(context.Background(), added.Cart.CartCode)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(cartView.Items) != 0 {
		t.Fatalf("deleted item must be absent from subsequent reads")
	}
}

func TestSetQuantityValidation(t *testing.T) {
	repo := newStubCartRepo()
	svc := newCartTestService(t, repo)

	_, err := svc.SetQuantity(context.Background(), uuid.New(), -1)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for negative quantity, got %v", err)
	}

	_, err = svc.SetQuantity(context.Background(), uuid.New(), 3)
	appErr = pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown item, got %v", err)
	}
}

func TestGenerateCartCodeShape(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code, err := GenerateCartCode()
		if err != nil {
			t.Fatalf("generate code: %v", err)
		}
		if len(code) != models.CartCodeLength {
			t.Fatalf("expected length %d, got %q", models.CartCodeLength, code)
		}
		for _, r := range code {
			if !((r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
				t.Fatalf("unexpected character %q in code %q", r, code)
			}
		}
		seen[code] = true
	}
	if len(seen) < 95 {
		t.Fatalf("codes look non-random: %d distinct of 100", len(seen))
	}
}
