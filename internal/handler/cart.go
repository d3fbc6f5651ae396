package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/printcraft/printcraft-api/internal/dto"
	"github.com/printcraft/printcraft-api/internal/middleware"
	"github.com/printcraft/printcraft-api/internal/model"
	"github.com/printcraft/printcraft-api/internal/service"
)

type CartHandler struct {
	svc *service.CartService
}

func NewCartHandler(svc *service.CartService) *CartHandler {
	return &CartHandler{svc: svc}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.svc.GetCart(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusOK, toCartResponse(cart))
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	cart, err := h.svc.AddItem(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusCreated, toCartResponse(cart))
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	cart, err := h.svc.UpdateItem(c.Request.Context(), middleware.GetUserID(c), itemID, req.Quantity)
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusOK, toCartResponse(cart))
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	cart, err := h.svc.RemoveItem(c.Request.Context(), middleware.GetUserID(c), itemID)
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusOK, toCartResponse(cart))
}

func (h *CartHandler) Clear(c *gin.Context) {
	cart, err := h.svc.Clear(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusOK, toCartResponse(cart))
}

func (h *CartHandler) ApplyDiscount(c *gin.Context) {
	var req dto.ApplyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	cart, err := h.svc.ApplyDiscount(c.Request.Context(), middleware.GetUserID(c), req.Code)
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusOK, toCartResponse(cart))
}

func toCartResponse(cart *model.Cart) dto.CartResponse {
	items := make([]dto.CartItemResponse, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, dto.CartItemResponse{
			ID:            item.ID,
			ProductID:     item.ProductID,
			DesignID:      item.DesignID,
			ProjectID:     item.ProjectID,
			Quantity:      item.Quantity,
			Size:          item.Size,
			Color:         item.Color,
			Customization: item.Customization,
			UnitPrice:     item.UnitPrice,
			TotalPrice:    item.TotalPrice,
		})
	}
	return dto.CartResponse{
		ID:             cart.ID,
		Items:          items,
		TaxRate:        cart.TaxRate,
		Subtotal:       cart.Subtotal,
		TaxAmount:      cart.TaxAmount,
		ShippingCost:   cart.ShippingCost,
		DiscountAmount: cart.DiscountAmount,
		DiscountCode:   cart.DiscountCode,
		Total:          cart.Total,
	}
}
