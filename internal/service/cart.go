package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/printcraft/printcraft-api/internal/dto"
	"github.com/printcraft/printcraft-api/internal/model"
	"github.com/printcraft/printcraft-api/internal/pricing"
	"github.com/printcraft/printcraft-api/internal/repository"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidDiscount  = errors.New("invalid discount code")
	ErrProductInactive  = errors.New("product is not available")
)

// CartService owns the pricing engine: every mutation goes through the
// engine's recompute before the cart is persisted.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	engine      *pricing.Engine
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, engine *pricing.Engine) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo, engine: engine}
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get or create cart: %w", err)
	}
	s.engine.Recompute(cart)
	return cart, nil
}

func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req dto.AddCartItemRequest) (*model.Cart, error) {
	if err := req.Customization.Validate(); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !product.Active {
		return nil, ErrProductInactive
	}

	cart, err := s.cartRepo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get or create cart: %w", err)
	}

	// Unit price is snapshotted at add time; later catalog price changes
	// do not reprice lines already in the cart.
	s.engine.AddItem(cart, model.CartItem{
		ID:            uuid.New(),
		CartID:        cart.ID,
		ProductID:     req.ProductID,
		DesignID:      req.DesignID,
		ProjectID:     req.ProjectID,
		Quantity:      req.Quantity,
		Size:          req.Size,
		Color:         req.Color,
		Customization: req.Customization,
		UnitPrice:     product.Price,
	})

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*model.Cart, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	if err := s.engine.UpdateItemQuantity(cart, itemID, quantity); err != nil {
		if errors.Is(err, pricing.ErrItemNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*model.Cart, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	if err := s.engine.RemoveItem(cart, itemID); err != nil {
		if errors.Is(err, pricing.ErrItemNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	s.engine.Clear(cart)

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) ApplyDiscount(ctx context.Context, userID uuid.UUID, code string) (*model.Cart, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	if err := s.engine.ApplyDiscount(cart, code); err != nil {
		if errors.Is(err, pricing.ErrUnknownCode) {
			return nil, ErrInvalidDiscount
		}
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}
