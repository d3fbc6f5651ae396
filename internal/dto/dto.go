package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/printcraft/printcraft-api/internal/model"
)

// --- Auth ---

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Role      model.Role `json:"role"`
}

// --- Product ---

type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Sizes       []string        `json:"sizes"`
	Colors      []string        `json:"colors"`
	Stock       int             `json:"stock" binding:"required,min=0"`
	ImagePath   string          `json:"image_path"`
	ThumbPath   string          `json:"thumb_path"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Sizes       []string         `json:"sizes"`
	Colors      []string         `json:"colors"`
	Stock       *int             `json:"stock"`
	Active      *bool            `json:"active"`
}

type ListProductsRequest struct {
	Page     int    `form:"page,default=1" binding:"min=1"`
	Limit    int    `form:"limit,default=20" binding:"min=1,max=100"`
	Search   string `form:"search"`
	Category string `form:"category"`
	Sort     string `form:"sort,default=created_at" binding:"oneof=name price created_at"`
	Order    string `form:"order,default=desc" binding:"oneof=asc desc"`
}

type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Sizes       []string        `json:"sizes"`
	Colors      []string        `json:"colors"`
	Stock       int             `json:"stock"`
	Active      bool            `json:"active"`
	ImagePath   string          `json:"image_path,omitempty"`
	ThumbPath   string          `json:"thumb_path,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

// --- Cart ---

type AddCartItemRequest struct {
	ProductID     uuid.UUID           `json:"product_id" binding:"required"`
	DesignID      *uuid.UUID          `json:"design_id"`
	ProjectID     *uuid.UUID          `json:"project_id"`
	Quantity      int                 `json:"quantity" binding:"required,min=1"`
	Size          string              `json:"size"`
	Color         string              `json:"color"`
	Customization model.Customization `json:"customization"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type ApplyDiscountRequest struct {
	Code string `json:"code" binding:"required"`
}

type CartItemResponse struct {
	ID            uuid.UUID           `json:"id"`
	ProductID     uuid.UUID           `json:"product_id"`
	DesignID      *uuid.UUID          `json:"design_id,omitempty"`
	ProjectID     *uuid.UUID          `json:"project_id,omitempty"`
	Quantity      int                 `json:"quantity"`
	Size          string              `json:"size,omitempty"`
	Color         string              `json:"color,omitempty"`
	Customization model.Customization `json:"customization"`
	UnitPrice     decimal.Decimal     `json:"unit_price"`
	TotalPrice    decimal.Decimal     `json:"total_price"`
}

type CartResponse struct {
	ID             uuid.UUID          `json:"id"`
	Items          []CartItemResponse `json:"items"`
	TaxRate        decimal.Decimal    `json:"tax_rate"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	TaxAmount      decimal.Decimal    `json:"tax_amount"`
	ShippingCost   decimal.Decimal    `json:"shipping_cost"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	DiscountCode   string             `json:"discount_code,omitempty"`
	Total          decimal.Decimal    `json:"total"`
}

// --- Project ---

type CreateProjectRequest struct {
	Name      string               `json:"name" binding:"required"`
	ProductID uuid.UUID            `json:"product_id" binding:"required"`
	Variant   string               `json:"variant"`
	Canvas    model.CanvasSettings `json:"canvas"`
	Tags      []string             `json:"tags"`
	Category  string               `json:"category"`
}

type UpdateProjectRequest struct {
	Name     *string  `json:"name"`
	Variant  *string  `json:"variant"`
	Tags     []string `json:"tags"`
	Category *string  `json:"category"`
}

type UpdateElementsRequest struct {
	Elements []model.DesignElement `json:"elements" binding:"required"`
	Canvas   *model.CanvasSettings `json:"canvas"`
}

type UpdateProjectStatusRequest struct {
	Status model.ProjectStatus `json:"status" binding:"required,oneof=draft completed archived"`
}

type CreateVersionRequest struct {
	Note string `json:"note"`
}

type DuplicateProjectRequest struct {
	Name string `json:"name"`
}

type ProjectResponse struct {
	ID             uuid.UUID             `json:"id"`
	Name           string                `json:"name"`
	ProductID      uuid.UUID             `json:"product_id"`
	Variant        string                `json:"variant,omitempty"`
	Status         model.ProjectStatus   `json:"status"`
	Elements       []model.DesignElement `json:"elements"`
	Canvas         model.CanvasSettings  `json:"canvas"`
	Tags           []string              `json:"tags,omitempty"`
	Category       string                `json:"category,omitempty"`
	Metadata       model.ProjectMetadata `json:"metadata"`
	CurrentVersion int                   `json:"current_version"`
	DuplicatedFrom *uuid.UUID            `json:"duplicated_from,omitempty"`
	DuplicateCount int                   `json:"duplicate_count"`
	LastOpened     *time.Time            `json:"last_opened,omitempty"`
	OpenCount      int                   `json:"open_count"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

type VersionResponse struct {
	VersionNumber int       `json:"version_number"`
	ElementCount  int       `json:"element_count"`
	Note          string    `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// --- Order ---

type CreateOrderRequest struct {
	ShippingAddress model.Address `json:"shipping_address" binding:"required"`
}

type OrderItemResponse struct {
	ID            uuid.UUID           `json:"id"`
	ProductID     uuid.UUID           `json:"product_id"`
	ProductName   string              `json:"product_name"`
	Quantity      int                 `json:"quantity"`
	Size          string              `json:"size,omitempty"`
	Color         string              `json:"color,omitempty"`
	Customization model.Customization `json:"customization"`
	UnitPrice     decimal.Decimal     `json:"unit_price"`
	TotalPrice    decimal.Decimal     `json:"total_price"`
}

type OrderResponse struct {
	ID             uuid.UUID           `json:"id"`
	UserID         uuid.UUID           `json:"user_id"`
	Status         model.OrderStatus   `json:"status"`
	PaymentStatus  model.PaymentStatus `json:"payment_status"`
	Items          []OrderItemResponse `json:"items,omitempty"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	TaxAmount      decimal.Decimal     `json:"tax_amount"`
	ShippingCost   decimal.Decimal     `json:"shipping_cost"`
	DiscountAmount decimal.Decimal     `json:"discount_amount"`
	Total          decimal.Decimal     `json:"total"`
	TrackingNumber string              `json:"tracking_number,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
}

// --- Designs / Fonts / Suggestions ---

type CreateDesignRequest struct {
	Name      string `json:"name" binding:"required"`
	ImagePath string `json:"image_path" binding:"required"`
	ThumbPath string `json:"thumb_path"`
	Public    bool   `json:"public"`
}

type UpdateDesignRequest struct {
	Name   *string `json:"name"`
	Public *bool   `json:"public"`
}

type DesignResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ImagePath string    `json:"image_path"`
	ThumbPath string    `json:"thumb_path,omitempty"`
	Public    bool      `json:"public"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateFontRequest struct {
	Name     string `json:"name" binding:"required"`
	Family   string `json:"family" binding:"required"`
	FilePath string `json:"file_path" binding:"required"`
	Premium  bool   `json:"premium"`
}

type FontResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Family  string    `json:"family"`
	Premium bool      `json:"premium"`
}

type CreateSuggestionRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

type UpdateSuggestionStatusRequest struct {
	Status model.SuggestionStatus `json:"status" binding:"required,oneof=new reviewed done"`
}

type SuggestionResponse struct {
	ID        uuid.UUID              `json:"id"`
	UserID    uuid.UUID              `json:"user_id"`
	Title     string                 `json:"title"`
	Body      string                 `json:"body"`
	Status    model.SuggestionStatus `json:"status"`
	CreatedAt time.Time              `json:"created_at"`
}

// --- Admin ---

type UpdateUserRoleRequest struct {
	Role model.Role `json:"role" binding:"required,oneof=user premium admin superadmin"`
}

type SetTrackingRequest struct {
	TrackingNumber string `json:"tracking_number" binding:"required"`
}

type AdminStatsResponse struct {
	Users      int                      `json:"users"`
	Orders     int                      `json:"orders"`
	Revenue    decimal.Decimal          `json:"revenue"`
	TopProduct []TopProductResponse     `json:"top_products"`
	Projects   map[model.Complexity]int `json:"projects_by_complexity"`
}

type TopProductResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Units     int       `json:"units"`
}

type UploadResponse struct {
	ImagePath string `json:"image_path"`
	ThumbPath string `json:"thumb_path"`
}
