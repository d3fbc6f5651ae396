package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printcraft/printcraft-api/internal/dto"
	"github.com/printcraft/printcraft-api/internal/model"
)

type mockOrderRepo struct {
	orders map[uuid.UUID]*model.Order
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[uuid.UUID]*model.Order)}
}

func (m *mockOrderRepo) Create(_ context.Context, order *model.Order) error {
	order.ID = uuid.New()
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	return m.orders[id], nil
}

func (m *mockOrderRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]model.Order, error) {
	var out []model.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.OrderStatus) error {
	if o, ok := m.orders[id]; ok {
		o.Status = status
	}
	return nil
}

func (m *mockOrderRepo) SetTracking(_ context.Context, id uuid.UUID, tracking string) error {
	if o, ok := m.orders[id]; ok {
		o.TrackingNumber = tracking
	}
	return nil
}

func (m *mockOrderRepo) BeginTx(_ context.Context) (pgx.Tx, error) {
	return nil, nil
}

func (m *mockOrderRepo) UpdateStatusTx(ctx context.Context, _ pgx.Tx, id uuid.UUID, status model.OrderStatus) error {
	return m.UpdateStatus(ctx, id, status)
}

func (m *mockOrderRepo) CountAndRevenue(_ context.Context) (int, decimal.Decimal, error) {
	var revenue decimal.Decimal
	count := 0
	for _, o := range m.orders {
		if o.Status == model.OrderStatusCancelled {
			continue
		}
		count++
		revenue = revenue.Add(o.Total)
	}
	return count, revenue, nil
}

func orderFixture(t *testing.T) (*OrderService, *mockOrderRepo, *mockCartRepo, uuid.UUID) {
	t.Helper()
	orderRepo := newMockOrderRepo()
	cartRepo := newMockCartRepo()
	productRepo := newMockProductRepo()
	pid := seedProduct(productRepo, "15.99")
	svc := NewOrderService(orderRepo, cartRepo, productRepo, testEngine(), nil)
	userID := uuid.New()

	cartSvc := NewCartService(cartRepo, productRepo, testEngine())
	_, err := cartSvc.AddItem(context.Background(), userID, dto.AddCartItemRequest{ProductID: pid, Quantity: 2})
	require.NoError(t, err)
	return svc, orderRepo, cartRepo, userID
}

func TestOrderService_CreateOrder(t *testing.T) {
	svc, _, cartRepo, userID := orderFixture(t)

	order, err := svc.CreateOrder(context.Background(), userID, dto.CreateOrderRequest{
		ShippingAddress: model.Address{Line1: "1 Main St", City: "Springfield", Country: "US"},
	})
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Classic Tee", order.Items[0].ProductName)
	assert.Equal(t, "31.98", order.Subtotal.StringFixed(2))
	assert.Equal(t, "2.56", order.TaxAmount.StringFixed(2))
	assert.Equal(t, "40.53", order.Total.StringFixed(2))

	// the cart is emptied once the order exists
	cart, _ := cartRepo.GetOrCreateByUser(context.Background(), userID)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.Total.IsZero())
}

func TestOrderService_CreateOrder_EmptyCart(t *testing.T) {
	svc := NewOrderService(newMockOrderRepo(), newMockCartRepo(), newMockProductRepo(), testEngine(), nil)
	_, err := svc.CreateOrder(context.Background(), uuid.New(), dto.CreateOrderRequest{})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestOrderService_GetByID_AccessDenied(t *testing.T) {
	svc, _, _, userID := orderFixture(t)

	order, err := svc.CreateOrder(context.Background(), userID, dto.CreateOrderRequest{})
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), order.ID, uuid.New())
	assert.ErrorIs(t, err, ErrOrderAccessDenied)
}

func TestOrderService_GetByID_NotFound(t *testing.T) {
	svc := NewOrderService(newMockOrderRepo(), newMockCartRepo(), newMockProductRepo(), testEngine(), nil)
	_, err := svc.GetByID(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_Cancel(t *testing.T) {
	svc, orderRepo, _, userID := orderFixture(t)

	order, err := svc.CreateOrder(context.Background(), userID, dto.CreateOrderRequest{})
	require.NoError(t, err)

	got, err := svc.Cancel(context.Background(), order.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, got.Status)
	assert.Equal(t, model.OrderStatusCancelled, orderRepo.orders[order.ID].Status)
}

func TestOrderService_Cancel_NotPending(t *testing.T) {
	svc, orderRepo, _, userID := orderFixture(t)

	order, err := svc.CreateOrder(context.Background(), userID, dto.CreateOrderRequest{})
	require.NoError(t, err)
	orderRepo.orders[order.ID].Status = model.OrderStatusCompleted

	_, err = svc.Cancel(context.Background(), order.ID, userID)
	assert.ErrorIs(t, err, ErrOrderNotPending)
}
