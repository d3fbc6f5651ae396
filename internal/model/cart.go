package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CustomizationKind string

const (
	CustomizationNone  CustomizationKind = "none"
	CustomizationText  CustomizationKind = "text-overlay"
	CustomizationImage CustomizationKind = "image-overlay"
)

// Customization is a tagged union: exactly the payload matching Kind is set.
type Customization struct {
	Kind  CustomizationKind `json:"kind"`
	Text  *TextOverlay      `json:"text,omitempty"`
	Image *ImageOverlay     `json:"image,omitempty"`
}

type TextOverlay struct {
	Text   string     `json:"text"`
	FontID *uuid.UUID `json:"font_id,omitempty"`
	X      float64    `json:"x"`
	Y      float64    `json:"y"`
}

type ImageOverlay struct {
	DesignID uuid.UUID `json:"design_id"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
}

var ErrInvalidCustomization = errors.New("invalid customization payload")

func (c Customization) Validate() error {
	switch c.Kind {
	case "", CustomizationNone:
		if c.Text != nil || c.Image != nil {
			return ErrInvalidCustomization
		}
	case CustomizationText:
		if c.Text == nil || c.Image != nil || c.Text.Text == "" {
			return ErrInvalidCustomization
		}
	case CustomizationImage:
		if c.Image == nil || c.Text != nil {
			return ErrInvalidCustomization
		}
	default:
		return ErrInvalidCustomization
	}
	return nil
}

type Cart struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Items          []CartItem
	TaxRate        decimal.Decimal
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	ShippingCost   decimal.Decimal
	DiscountAmount decimal.Decimal
	DiscountCode   string
	Total          decimal.Decimal
	LockVersion    int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type CartItem struct {
	ID            uuid.UUID
	CartID        uuid.UUID
	ProductID     uuid.UUID
	DesignID      *uuid.UUID
	ProjectID     *uuid.UUID
	Quantity      int
	Size          string
	Color         string
	Customization Customization
	UnitPrice     decimal.Decimal
	TotalPrice    decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
