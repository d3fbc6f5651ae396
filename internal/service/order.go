package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/printcraft/printcraft-api/internal/dto"
	"github.com/printcraft/printcraft-api/internal/model"
	"github.com/printcraft/printcraft-api/internal/pricing"
	"github.com/printcraft/printcraft-api/internal/repository"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderAccessDenied = errors.New("access denied")
	ErrOrderNotPending   = errors.New("order is no longer pending")
)

type OrderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	engine      *pricing.Engine
	amqpCh      *amqp.Channel
}

func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, productRepo repository.ProductRepository, engine *pricing.Engine, amqpCh *amqp.Channel) *OrderService {
	return &OrderService{orderRepo: orderRepo, cartRepo: cartRepo, productRepo: productRepo, engine: engine, amqpCh: amqpCh}
}

// CreateOrder freezes the cart into order line snapshots. Unit prices are
// the cart's add-time snapshots; totals are recomputed once more before
// the order row is written.
func (s *OrderService) CreateOrder(ctx context.Context, userID uuid.UUID, req dto.CreateOrderRequest) (*model.Order, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	s.engine.Recompute(cart)

	items := make([]model.OrderItem, 0, len(cart.Items))
	for _, ci := range cart.Items {
		product, err := s.productRepo.GetByID(ctx, ci.ProductID)
		if err != nil || product == nil {
			return nil, fmt.Errorf("product %s not found", ci.ProductID)
		}
		items = append(items, model.OrderItem{
			ProductID:     ci.ProductID,
			ProductName:   product.Name,
			DesignID:      ci.DesignID,
			ProjectID:     ci.ProjectID,
			Quantity:      ci.Quantity,
			Size:          ci.Size,
			Color:         ci.Color,
			Customization: ci.Customization,
			UnitPrice:     ci.UnitPrice,
			TotalPrice:    ci.TotalPrice,
		})
	}

	order := &model.Order{
		UserID:          userID,
		Status:          model.OrderStatusPending,
		PaymentStatus:   model.PaymentPending,
		Items:           items,
		Subtotal:        cart.Subtotal,
		TaxAmount:       cart.TaxAmount,
		ShippingCost:    cart.ShippingCost,
		DiscountAmount:  cart.DiscountAmount,
		Total:           cart.Total,
		ShippingAddress: req.ShippingAddress,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	// Hand off to the worker for stock processing.
	msg, _ := json.Marshal(model.OrderMessage{OrderID: order.ID, UserID: userID})
	if s.amqpCh != nil {
		_ = s.amqpCh.PublishWithContext(ctx, "", "orders", false, false, amqp.Publishing{
			ContentType:  "application/json",
			Body:         msg,
			DeliveryMode: amqp.Persistent,
		})
	}

	s.engine.Clear(cart)
	_ = s.cartRepo.Save(ctx, cart)

	return order, nil
}

func (s *OrderService) GetByID(ctx context.Context, orderID, userID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.UserID != userID {
		return nil, ErrOrderAccessDenied
	}
	return order, nil
}

func (s *OrderService) ListByUserID(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	return s.orderRepo.ListByUserID(ctx, userID)
}

// Cancel is a status transition, never a delete; only pending orders can
// be cancelled.
func (s *OrderService) Cancel(ctx context.Context, orderID, userID uuid.UUID) (*model.Order, error) {
	order, err := s.GetByID(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if order.Status != model.OrderStatusPending {
		return nil, ErrOrderNotPending
	}
	if err := s.orderRepo.UpdateStatus(ctx, orderID, model.OrderStatusCancelled); err != nil {
		return nil, fmt.Errorf("cancel order: %w", err)
	}
	order.Status = model.OrderStatusCancelled
	return order, nil
}
