package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cafepos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Shift is a cash-drawer accounting period for one terminal. At most one
// Open shift may exist per terminal at any time.
type Shift struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	StoreID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"store_id"`
	TerminalID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"terminal_id"`
	Status       enum.ShiftStatus `gorm:"default:0;index" json:"status"`
	OpenedBy     uuid.UUID        `gorm:"type:uuid;not null" json:"opened_by"`
	OpenedAt     time.Time        `json:"opened_at"`
	OpeningFloat decimal.Decimal  `gorm:"type:decimal(12,2);default:0" json:"opening_float"`
	ClosedBy     *uuid.UUID       `gorm:"type:uuid" json:"closed_by,omitempty"`
	ClosedAt     *time.Time       `json:"closed_at,omitempty"`
	CountedCash  *decimal.Decimal `gorm:"type:decimal(12,2)" json:"counted_cash,omitempty"`
	ExpectedCash *decimal.Decimal `gorm:"type:decimal(12,2)" json:"expected_cash,omitempty"`
	Variance     *decimal.Decimal `gorm:"type:decimal(12,2)" json:"variance,omitempty"`

	Terminal Terminal          `gorm:"foreignKey:TerminalID" json:"-"`
	Events   []CashDrawerEvent `gorm:"foreignKey:ShiftID" json:"events,omitempty"`
}

// BeforeCreate generates a UUID before creating a new shift
func (s *Shift) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Shift model
func (Shift) TableName() string {
	return "shifts"
}

// CashDrawerEvent is an append-only record of a manual drawer movement
// within a shift, feeding expected-cash reconciliation
type CashDrawerEvent struct {
	ID        uuid.UUID                `gorm:"type:uuid;primary_key" json:"id"`
	ShiftID   uuid.UUID                `gorm:"type:uuid;not null;index" json:"shift_id"`
	Type      enum.CashDrawerEventType `gorm:"not null" json:"type"`
	Amount    decimal.Decimal          `gorm:"type:decimal(12,2);default:0" json:"amount"`
	Note      *string                  `gorm:"size:255" json:"note,omitempty"`
	UserID    uuid.UUID                `gorm:"type:uuid;not null" json:"user_id"`
	CreatedAt time.Time                `json:"created_at"`

	Shift Shift `gorm:"foreignKey:ShiftID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new drawer event
func (e *CashDrawerEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CashDrawerEvent model
func (CashDrawerEvent) TableName() string {
	return "cash_drawer_events"
}
