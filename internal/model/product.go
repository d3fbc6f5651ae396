package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	Sizes       []string
	Colors      []string
	Stock       int
	Active      bool
	ImagePath   string
	ThumbPath   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductSales is an aggregation row for the admin dashboard.
type ProductSales struct {
	ProductID uuid.UUID
	Name      string
	Units     int
}

// Design is user-uploaded artwork that can be placed on a product.
type Design struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	ImagePath string
	ThumbPath string
	Public    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Font struct {
	ID        uuid.UUID
	Name      string
	Family    string
	FilePath  string
	Premium   bool
	CreatedAt time.Time
}

type SuggestionStatus string

const (
	SuggestionNew      SuggestionStatus = "new"
	SuggestionReviewed SuggestionStatus = "reviewed"
	SuggestionDone     SuggestionStatus = "done"
)

type Suggestion struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Body      string
	Status    SuggestionStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
