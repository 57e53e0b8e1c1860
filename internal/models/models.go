package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"       json:"id"`
	Slug        string    `gorm:"uniqueIndex;not null"       json:"slug"`
	NameEn      string    `gorm:"not null"                   json:"name_en"`
	NameNl      string    `json:"name_nl"`
	NameFr      string    `json:"name_fr"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	IsActive    bool      `gorm:"default:true"               json:"is_active"`
	SortOrder   int       `gorm:"default:0"                  json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Dish struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey"  json:"id"`
	Slug          string        `gorm:"uniqueIndex;not null"  json:"slug"`
	NameEn        string        `gorm:"not null"              json:"name_en"`
	NameNl        string        `json:"name_nl"`
	NameFr        string        `json:"name_fr"`
	DescriptionEn string        `json:"description_en"`
	DescriptionNl string        `json:"description_nl"`
	DescriptionFr string        `json:"description_fr"`
	Price         float64       `gorm:"not null"              json:"price"`
	ImageURL      string        `json:"image_url"`
	IsActive      bool          `gorm:"default:true"          json:"is_active"`
	CategoryID    *uuid.UUID    `gorm:"type:uuid;index"       json:"category_id"`
	Category      *Category     `json:"category,omitempty"`
	Variants      []DishVariant `gorm:"constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// DishVariant is a named sub-option of a dish. Price, when set, overrides
// the dish base price for lines ordered with this variant.
type DishVariant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"  json:"id"`
	DishID    uuid.UUID `gorm:"type:uuid;index;not null" json:"dish_id"`
	NameEn    string    `gorm:"not null"              json:"name_en"`
	NameNl    string    `json:"name_nl"`
	NameFr    string    `json:"name_fr"`
	Price     *float64  `json:"price"`
	SortOrder int       `gorm:"default:0"             json:"sort_order"`
	IsActive  bool      `gorm:"default:true"          json:"is_active"`
}

// CartItem is one line of a session-scoped cart. Name and price are
// denormalized at add time so later dish edits do not rewrite carts.
type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"       json:"id"`
	SessionID string    `gorm:"index;not null"             json:"session_id"`
	DishID    uuid.UUID `gorm:"type:uuid;not null"         json:"dish_id"`
	Name      string    `gorm:"not null"                   json:"name"`
	Price     float64   `gorm:"not null"                   json:"price"`
	Quantity  uint      `gorm:"default:1;check:quantity>0" json:"quantity"`
	ImageSrc  string    `json:"image_src"`
	Size      string    `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

type Order struct {
	ID                   uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Email                string      `gorm:"index"                json:"email"`
	FirstName            string      `json:"first_name"`
	LastName             string      `json:"last_name"`
	Phone                string      `json:"phone"`
	Address              string      `json:"address"`
	City                 string      `json:"city"`
	PostalCode           string      `json:"postal_code"`
	Country              string      `json:"country"`
	DeliveryInstructions string      `json:"delivery_instructions"`
	TotalAmount          float64     `gorm:"not null"             json:"total_amount"`
	Status               OrderStatus `gorm:"not null"             json:"status"`
	PaymentRef           string      `gorm:"index"                json:"payment_ref"`
	QRCode               []byte      `json:"-"`
	Items                []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt            time.Time   `json:"created_at"`
}

// OrderItem snapshots price at order time; it never changes afterwards.
type OrderItem struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"       json:"id"`
	OrderID   uuid.UUID  `gorm:"type:uuid;index;not null"   json:"order_id"`
	DishID    uuid.UUID  `gorm:"type:uuid;not null"         json:"dish_id"`
	VariantID *uuid.UUID `gorm:"type:uuid"                  json:"variant_id"`
	Quantity  uint       `gorm:"default:1;check:quantity>0" json:"quantity"`
	Price     float64    `gorm:"not null"                   json:"price"`
	Size      string     `json:"size"`
}

type AdminUser struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null"             json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (d *Dish) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

func (v *DishVariant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (u *AdminUser) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func All() []any {
	return []any{
		&Category{}, &Dish{}, &DishVariant{},
		&CartItem{}, &Order{}, &OrderItem{}, &AdminUser{},
	}
}
