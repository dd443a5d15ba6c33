package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cafepos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentMethod is a configured tender type for the store
type PaymentMethod struct {
	ID        uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	StoreID   uuid.UUID              `gorm:"type:uuid;not null;index" json:"store_id"`
	Name      string                 `gorm:"size:100;not null" json:"name"`
	Type      enum.PaymentMethodType `gorm:"default:0" json:"type"`
	IsActive  bool                   `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new payment method
func (m *PaymentMethod) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PaymentMethod model
func (PaymentMethod) TableName() string {
	return "payment_methods"
}

// Payment is an append-only tender record against an order. A refund is a new
// row flagged IsRefund, never a mutation of a prior payment.
type Payment struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	PaymentMethodID uuid.UUID       `gorm:"type:uuid;not null;index" json:"payment_method_id"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Reference       *string         `gorm:"size:255" json:"reference,omitempty"`
	IsRefund        bool            `gorm:"default:false" json:"is_refund"`
	CapturedAt      time.Time       `json:"captured_at"`

	Order         Order         `gorm:"foreignKey:OrderID" json:"-"`
	PaymentMethod PaymentMethod `gorm:"foreignKey:PaymentMethodID" json:"payment_method,omitempty"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
