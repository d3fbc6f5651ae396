package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusFailed     OrderStatus = "failed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type Order struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Status          OrderStatus
	PaymentStatus   PaymentStatus
	Items           []OrderItem
	Subtotal        decimal.Decimal
	TaxAmount       decimal.Decimal
	ShippingCost    decimal.Decimal
	DiscountAmount  decimal.Decimal
	Total           decimal.Decimal
	ShippingAddress Address
	TrackingNumber  string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem is a frozen snapshot of the cart line at purchase time;
// it never changes after the order is placed.
type OrderItem struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	ProductID     uuid.UUID
	ProductName   string
	DesignID      *uuid.UUID
	ProjectID     *uuid.UUID
	Quantity      int
	Size          string
	Color         string
	Customization Customization
	UnitPrice     decimal.Decimal
	TotalPrice    decimal.Decimal
}

type OrderMessage struct {
	OrderID uuid.UUID `json:"order_id"`
	UserID  uuid.UUID `json:"user_id"`
}
