package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cafepos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order represents a sales order. Monetary totals are always recomputed from
// the full set of current lines, never patched incrementally.
type Order struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	StoreID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"store_id"`
	TerminalID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"terminal_id"`
	ShiftID       *uuid.UUID       `gorm:"type:uuid;index" json:"shift_id,omitempty"`
	ReceiptNumber string           `gorm:"size:50;index" json:"receipt_number"`
	Status        enum.OrderStatus `gorm:"default:0;index" json:"status"`
	Subtotal      decimal.Decimal  `gorm:"type:decimal(12,2);default:0" json:"subtotal"`
	DiscountTotal decimal.Decimal  `gorm:"type:decimal(12,2);default:0" json:"discount_total"`
	TaxTotal      decimal.Decimal  `gorm:"type:decimal(12,2);default:0" json:"tax_total"`
	Total         decimal.Decimal  `gorm:"type:decimal(12,2);default:0" json:"total"`
	TotalPaid     decimal.Decimal  `gorm:"type:decimal(12,2);default:0" json:"total_paid"`
	ChangeDue     decimal.Decimal  `gorm:"type:decimal(12,2);default:0" json:"change_due"`
	HeldName      *string          `gorm:"size:100" json:"held_name,omitempty"`
	CreatedBy     uuid.UUID        `gorm:"type:uuid;not null" json:"created_by"`
	CompletedBy   *uuid.UUID       `gorm:"type:uuid" json:"completed_by,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	CompletedAt   *time.Time       `json:"completed_at,omitempty"`
	UpdatedAt     time.Time        `json:"updated_at"`

	// Relationships
	Terminal Terminal    `gorm:"foreignKey:TerminalID" json:"-"`
	Lines    []OrderLine `gorm:"foreignKey:OrderID" json:"lines,omitempty"`
	Payments []Payment   `gorm:"foreignKey:OrderID" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderLine is a line item carrying immutable snapshots of the purchased
// item's description, unit price, and tax rule as they were at add time.
// Later catalog changes never alter existing lines.
type OrderLine struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ItemID      *uuid.UUID      `gorm:"type:uuid" json:"item_id,omitempty"`
	ItemPriceID *uuid.UUID      `gorm:"type:uuid" json:"item_price_id,omitempty"`
	Description string          `gorm:"size:255;not null" json:"description"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Qty         decimal.Decimal `gorm:"type:decimal(10,3);not null" json:"qty"`
	Discount    decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"discount"`
	TaxRate     decimal.Decimal `gorm:"type:decimal(6,4);default:0" json:"tax_rate"`
	TaxIncluded bool            `gorm:"default:false" json:"tax_included"`
	TaxAmount   decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"tax_amount"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"line_total"`
	Note        *string         `gorm:"size:255" json:"note,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Order     Order               `gorm:"foreignKey:OrderID" json:"-"`
	Modifiers []OrderLineModifier `gorm:"foreignKey:OrderLineID" json:"modifiers,omitempty"`
}

// Net returns the tax-exclusive portion of the line total
func (l *OrderLine) Net() decimal.Decimal {
	return l.LineTotal.Sub(l.TaxAmount)
}

// BeforeCreate generates a UUID before creating a new order line
func (l *OrderLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderLine model
func (OrderLine) TableName() string {
	return "order_lines"
}

// OrderLineModifier snapshots a chosen modifier option on a line
type OrderLineModifier struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OrderLineID uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_line_id"`
	GroupName   string          `gorm:"size:255" json:"group_name"`
	OptionName  string          `gorm:"size:255;not null" json:"option_name"`
	PriceDelta  decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"price_delta"`
	CreatedAt   time.Time       `json:"created_at"`

	OrderLine OrderLine `gorm:"foreignKey:OrderLineID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new line modifier
func (m *OrderLineModifier) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderLineModifier model
func (OrderLineModifier) TableName() string {
	return "order_line_modifiers"
}
