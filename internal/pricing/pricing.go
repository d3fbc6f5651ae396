// Package pricing owns every derived monetary field on a cart. All
// arithmetic is decimal and rounded to cents at each derivation step.
package pricing

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/printcraft/printcraft-api/internal/model"
)

var (
	ErrItemNotFound = errors.New("cart item not found")
	ErrUnknownCode  = errors.New("unknown discount code")
)

var five = decimal.NewFromInt(5)

type Engine struct {
	taxRate      decimal.Decimal
	shippingCost decimal.Decimal
}

func NewEngine(taxRate, shippingCost decimal.Decimal) *Engine {
	return &Engine{taxRate: taxRate, shippingCost: shippingCost}
}

// ItemTotal is quantity x unit price, rounded to cents.
func ItemTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// mergeKey is the identity under which cart lines collapse: two adds with
// the same product, size, color, and design merge into one line.
func mergeKey(productID uuid.UUID, size, color string, designID *uuid.UUID) string {
	d := ""
	if designID != nil {
		d = designID.String()
	}
	return fmt.Sprintf("%s|%s|%s|%s", productID, size, color, d)
}

// AddItem merges the new line into an existing one with the same signature
// or appends it, then recomputes the cart. Duplicate signatures are merged
// by design, never rejected.
func (e *Engine) AddItem(cart *model.Cart, item model.CartItem) {
	key := mergeKey(item.ProductID, item.Size, item.Color, item.DesignID)
	for i := range cart.Items {
		existing := &cart.Items[i]
		if mergeKey(existing.ProductID, existing.Size, existing.Color, existing.DesignID) == key {
			existing.Quantity += item.Quantity
			existing.TotalPrice = ItemTotal(existing.Quantity, existing.UnitPrice)
			e.Recompute(cart)
			return
		}
	}
	item.TotalPrice = ItemTotal(item.Quantity, item.UnitPrice)
	cart.Items = append(cart.Items, item)
	e.Recompute(cart)
}

// UpdateItemQuantity sets the quantity of one line. A quantity of zero or
// less removes the line entirely.
func (e *Engine) UpdateItemQuantity(cart *model.Cart, itemID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return e.RemoveItem(cart, itemID)
	}
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items[i].Quantity = quantity
			cart.Items[i].TotalPrice = ItemTotal(quantity, cart.Items[i].UnitPrice)
			e.Recompute(cart)
			return nil
		}
	}
	return ErrItemNotFound
}

func (e *Engine) RemoveItem(cart *model.Cart, itemID uuid.UUID) error {
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			e.Recompute(cart)
			return nil
		}
	}
	return ErrItemNotFound
}

func (e *Engine) Clear(cart *model.Cart) {
	cart.Items = nil
	cart.DiscountCode = ""
	cart.DiscountAmount = decimal.Zero
	e.Recompute(cart)
}

// ApplyDiscount resolves a code against the fixed table and pins the
// resulting amount on the cart. The amount is computed from the cart state
// at apply time and does not track later item changes; Recompute floors the
// total at zero and drops the discount once the cart empties.
func (e *Engine) ApplyDiscount(cart *model.Cart, code string) error {
	e.Recompute(cart)

	var amount decimal.Decimal
	switch code {
	case "WELCOME10":
		amount = cart.Subtotal.Mul(decimal.NewFromFloat(0.10)).Round(2)
	case "SAVE5":
		amount = five
		if amount.GreaterThan(cart.Subtotal) {
			amount = cart.Subtotal
		}
	case "FREESHIP":
		amount = cart.ShippingCost
	default:
		return ErrUnknownCode
	}

	cart.DiscountCode = code
	cart.DiscountAmount = amount
	e.Recompute(cart)
	return nil
}

// Recompute rebuilds every derived field from the line items. It runs
// before every persist regardless of which operation mutated the cart, so
// the stored totals are self-healing.
func (e *Engine) Recompute(cart *model.Cart) {
	subtotal := decimal.Zero
	for i := range cart.Items {
		cart.Items[i].TotalPrice = ItemTotal(cart.Items[i].Quantity, cart.Items[i].UnitPrice)
		subtotal = subtotal.Add(cart.Items[i].TotalPrice)
	}

	cart.TaxRate = e.taxRate
	cart.Subtotal = subtotal
	cart.TaxAmount = subtotal.Mul(e.taxRate).Round(2)
	if len(cart.Items) == 0 {
		cart.ShippingCost = decimal.Zero
		// The pinned amount was computed against lines that no longer
		// exist; an empty cart carries no discount.
		cart.DiscountCode = ""
		cart.DiscountAmount = decimal.Zero
	} else {
		cart.ShippingCost = e.shippingCost
	}
	cart.Total = cart.Subtotal.Add(cart.TaxAmount).Add(cart.ShippingCost).Sub(cart.DiscountAmount)
	if cart.Total.IsNegative() {
		cart.Total = decimal.Zero
	}
}
