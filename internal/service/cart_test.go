package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printcraft/printcraft-api/internal/dto"
	"github.com/printcraft/printcraft-api/internal/model"
	"github.com/printcraft/printcraft-api/internal/pricing"
	"github.com/printcraft/printcraft-api/internal/repository"
)

type mockCartRepo struct {
	carts    map[uuid.UUID]*model.Cart
	conflict bool
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{carts: make(map[uuid.UUID]*model.Cart)}
}

func (m *mockCartRepo) GetOrCreateByUser(_ context.Context, userID uuid.UUID) (*model.Cart, error) {
	if cart, ok := m.carts[userID]; ok {
		return cart, nil
	}
	cart := &model.Cart{ID: uuid.New(), UserID: userID}
	m.carts[userID] = cart
	return cart, nil
}

func (m *mockCartRepo) Save(_ context.Context, cart *model.Cart) error {
	if m.conflict {
		return repository.ErrVersionConflict
	}
	cart.LockVersion++
	m.carts[cart.UserID] = cart
	return nil
}

func testEngine() *pricing.Engine {
	return pricing.NewEngine(decimal.RequireFromString("0.08"), decimal.RequireFromString("5.99"))
}

func seedProduct(repo *mockProductRepo, price string) uuid.UUID {
	id := uuid.New()
	repo.products[id] = &model.Product{
		ID: id, Name: "Classic Tee", Price: decimal.RequireFromString(price), Stock: 100, Active: true,
	}
	return id
}

func TestCartService_AddItem_MergesSameLine(t *testing.T) {
	cartRepo := newMockCartRepo()
	productRepo := newMockProductRepo()
	pid := seedProduct(productRepo, "15.99")
	svc := NewCartService(cartRepo, productRepo, testEngine())
	userID := uuid.New()

	_, err := svc.AddItem(context.Background(), userID, dto.AddCartItemRequest{
		ProductID: pid, Quantity: 2, Size: "M", Color: "black",
	})
	require.NoError(t, err)

	cart, err := svc.AddItem(context.Background(), userID, dto.AddCartItemRequest{
		ProductID: pid, Quantity: 3, Size: "M", Color: "black",
	})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartService_AddItem_DifferentSizeSeparateLine(t *testing.T) {
	cartRepo := newMockCartRepo()
	productRepo := newMockProductRepo()
	pid := seedProduct(productRepo, "15.99")
	svc := NewCartService(cartRepo, productRepo, testEngine())
	userID := uuid.New()

	_, err := svc.AddItem(context.Background(), userID, dto.AddCartItemRequest{ProductID: pid, Quantity: 1, Size: "M"})
	require.NoError(t, err)
	cart, err := svc.AddItem(context.Background(), userID, dto.AddCartItemRequest{ProductID: pid, Quantity: 1, Size: "L"})
	require.NoError(t, err)

	assert.Len(t, cart.Items, 2)
}

func TestCartService_AddItem_ProductNotFound(t *testing.T) {
	svc := NewCartService(newMockCartRepo(), newMockProductRepo(), testEngine())
	_, err := svc.AddItem(context.Background(), uuid.New(), dto.AddCartItemRequest{ProductID: uuid.New(), Quantity: 1})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_AddItem_InactiveProduct(t *testing.T) {
	cartRepo := newMockCartRepo()
	productRepo := newMockProductRepo()
	pid := uuid.New()
	productRepo.products[pid] = &model.Product{ID: pid, Price: decimal.NewFromInt(10), Active: false}
	svc := NewCartService(cartRepo, productRepo, testEngine())

	_, err := svc.AddItem(context.Background(), uuid.New(), dto.AddCartItemRequest{ProductID: pid, Quantity: 1})
	assert.ErrorIs(t, err, ErrProductInactive)
}

func TestCartService_AddItem_InvalidCustomization(t *testing.T) {
	svc := NewCartService(newMockCartRepo(), newMockProductRepo(), testEngine())
	_, err := svc.AddItem(context.Background(), uuid.New(), dto.AddCartItemRequest{
		ProductID: uuid.New(), Quantity: 1,
		Customization: model.Customization{Kind: model.CustomizationText}, // no payload
	})
	assert.ErrorIs(t, err, model.ErrInvalidCustomization)
}

func TestCartService_UpdateItem_ZeroQuantityRemoves(t *testing.T) {
	cartRepo := newMockCartRepo()
	productRepo := newMockProductRepo()
	pid := seedProduct(productRepo, "15.99")
	svc := NewCartService(cartRepo, productRepo, testEngine())
	userID := uuid.New()

	cart, err := svc.AddItem(context.Background(), userID, dto.AddCartItemRequest{ProductID: pid, Quantity: 2})
	require.NoError(t, err)

	cart, err = svc.UpdateItem(context.Background(), userID, cart.Items[0].ID, 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.Total.IsZero())
}

func TestCartService_UpdateItem_NotFound(t *testing.T) {
	svc := NewCartService(newMockCartRepo(), newMockProductRepo(), testEngine())
	_, err := svc.UpdateItem(context.Background(), uuid.New(), uuid.New(), 3)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_RemoveItem_NotFound(t *testing.T) {
	svc := NewCartService(newMockCartRepo(), newMockProductRepo(), testEngine())
	_, err := svc.RemoveItem(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_ApplyDiscount(t *testing.T) {
	cartRepo := newMockCartRepo()
	productRepo := newMockProductRepo()
	pid := seedProduct(productRepo, "15.99")
	svc := NewCartService(cartRepo, productRepo, testEngine())
	userID := uuid.New()

	_, err := svc.AddItem(context.Background(), userID, dto.AddCartItemRequest{ProductID: pid, Quantity: 2})
	require.NoError(t, err)

	cart, err := svc.ApplyDiscount(context.Background(), userID, "SAVE5")
	require.NoError(t, err)
	assert.Equal(t, "SAVE5", cart.DiscountCode)
	assert.Equal(t, "5", cart.DiscountAmount.String())
	// 31.98 + 2.56 tax + 5.99 shipping - 5.00
	assert.Equal(t, "35.53", cart.Total.StringFixed(2))
}

func TestCartService_ApplyDiscount_UnknownCode(t *testing.T) {
	svc := NewCartService(newMockCartRepo(), newMockProductRepo(), testEngine())
	_, err := svc.ApplyDiscount(context.Background(), uuid.New(), "NOPE")
	assert.ErrorIs(t, err, ErrInvalidDiscount)
}

func TestCartService_Clear(t *testing.T) {
	cartRepo := newMockCartRepo()
	productRepo := newMockProductRepo()
	pid := seedProduct(productRepo, "15.99")
	svc := NewCartService(cartRepo, productRepo, testEngine())
	userID := uuid.New()

	_, err := svc.AddItem(context.Background(), userID, dto.AddCartItemRequest{ProductID: pid, Quantity: 2})
	require.NoError(t, err)
	_, err = svc.ApplyDiscount(context.Background(), userID, "WELCOME10")
	require.NoError(t, err)

	cart, err := svc.Clear(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Empty(t, cart.DiscountCode)
	assert.True(t, cart.Total.IsZero())
}

func TestCartService_SaveConflictSurfaces(t *testing.T) {
	cartRepo := newMockCartRepo()
	productRepo := newMockProductRepo()
	pid := seedProduct(productRepo, "15.99")
	cartRepo.conflict = true
	svc := NewCartService(cartRepo, productRepo, testEngine())

	_, err := svc.AddItem(context.Background(), uuid.New(), dto.AddCartItemRequest{ProductID: pid, Quantity: 1})
	assert.ErrorIs(t, err, repository.ErrVersionConflict)
}
