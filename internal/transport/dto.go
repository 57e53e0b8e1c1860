package transport

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/masalakitchen/storefront/internal/models"
)

// AddCartItemRequest mirrors the storefront client payload. Price and
// quantity arrive as either JSON numbers or strings, so they bind through
// json.Number and are parsed in the handler.
type AddCartItemRequest struct {
	DishID   uuid.UUID   `json:"dishId"`
	Name     string      `json:"name"`
	Price    json.Number `json:"price"`
	Quantity json.Number `json:"quantity"`
	ImageSrc string      `json:"imageSrc"`
	Size     string      `json:"size"`
}

type UpdateCartItemRequest struct {
	ItemID   uuid.UUID   `json:"itemId"`
	Quantity json.Number `json:"quantity"`
}

type CartResponse struct {
	Cart    []models.CartItem `json:"cart"`
	Success bool              `json:"success,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type DeliveryInfo struct {
	FirstName            string `json:"firstName"`
	LastName             string `json:"lastName"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	Address              string `json:"address"`
	City                 string `json:"city"`
	PostalCode           string `json:"postalCode"`
	Country              string `json:"country"`
	DeliveryInstructions string `json:"deliveryInstructions"`
}

type CreateOrderItem struct {
	DishID    uuid.UUID  `json:"dishId"`
	VariantID *uuid.UUID `json:"variantId"`
	Quantity  int        `json:"quantity"`
	Price     float64    `json:"price"`
	Size      string     `json:"size"`
}

type CreateOrderRequest struct {
	Email        string            `json:"email"`
	Items        []CreateOrderItem `json:"items"`
	TotalAmount  float64           `json:"totalAmount"`
	DeliveryInfo *DeliveryInfo     `json:"deliveryInfo"`
}

type CheckoutRequest struct {
	Email        string        `json:"email"`
	DeliveryInfo *DeliveryInfo `json:"deliveryInfo"`
}

type CheckoutResponse struct {
	OrderID uuid.UUID `json:"orderId"`
	URL     string    `json:"url"`
	Success bool      `json:"success"`
}

type PaymentWebhookRequest struct {
	OrderID    uuid.UUID `json:"orderId"`
	PaymentRef string    `json:"paymentRef"`
	Status     string    `json:"status"`
}

type UpdateOrderStatusRequest struct {
	Status     models.OrderStatus `json:"status"`
	PaymentRef string             `json:"paymentRef"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// VariantView is a variant localized for one locale; the raw per-locale
// fields ride along for the admin edit forms.
type VariantView struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	NameEn   string    `json:"nameEn"`
	NameNl   string    `json:"nameNl"`
	NameFr   string    `json:"nameFr"`
	Price    *float64  `json:"price"`
	IsActive bool      `json:"isActive"`
}

type CategoryView struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Slug     string    `json:"slug"`
	ImageURL string    `json:"imageUrl"`
}

type DishView struct {
	ID          uuid.UUID     `json:"id"`
	Slug        string        `json:"slug"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	ImageURL    string        `json:"imageUrl"`
	IsActive    bool          `json:"isActive"`
	Variants    []VariantView `json:"variants"`
	Category    *CategoryView `json:"category"`
	CreatedAt   time.Time     `json:"createdAt"`
}

type VariantInput struct {
	NameEn    string   `json:"nameEn"`
	NameNl    string   `json:"nameNl"`
	NameFr    string   `json:"nameFr"`
	Price     *float64 `json:"price"`
	SortOrder int      `json:"sortOrder"`
	IsActive  *bool    `json:"isActive"`
}

type DishInput struct {
	NameEn        string         `json:"nameEn"`
	NameNl        string         `json:"nameNl"`
	NameFr        string         `json:"nameFr"`
	DescriptionEn string         `json:"descriptionEn"`
	DescriptionNl string         `json:"descriptionNl"`
	DescriptionFr string         `json:"descriptionFr"`
	Price         float64        `json:"price"`
	ImageURL      string         `json:"imageUrl"`
	IsActive      *bool          `json:"isActive"`
	CategoryID    *uuid.UUID     `json:"categoryId"`
	Variants      []VariantInput `json:"variants"`
}

type CategoryInput struct {
	NameEn      string `json:"nameEn"`
	NameNl      string `json:"nameNl"`
	NameFr      string `json:"nameFr"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	IsActive    *bool  `json:"isActive"`
	SortOrder   int    `json:"sortOrder"`
}
