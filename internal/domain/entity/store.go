package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store represents the single retail venue this deployment serves
type Store struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	AddressLine1 string    `gorm:"size:255" json:"address_line1"`
	City         string    `gorm:"size:100" json:"city"`
	Country      string    `gorm:"size:100" json:"country"`
	Phone        string    `gorm:"size:50" json:"phone"`
	TaxID        string    `gorm:"size:100" json:"tax_id"`
	CurrencyCode string    `gorm:"size:3;default:'USD'" json:"currency_code"`
	Timezone     string    `gorm:"size:64" json:"timezone"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new store
func (s *Store) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Store model
func (Store) TableName() string {
	return "stores"
}

// Terminal represents a physical point-of-sale station in the store.
// ReceiptPrefix leads every receipt number issued on this terminal.
type Terminal struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StoreID       uuid.UUID `gorm:"type:uuid;not null;index" json:"store_id"`
	Name          string    `gorm:"size:100;not null" json:"name"`
	ReceiptPrefix string    `gorm:"size:20;default:'T1'" json:"receipt_prefix"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Store Store `gorm:"foreignKey:StoreID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new terminal
func (t *Terminal) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Terminal model
func (Terminal) TableName() string {
	return "terminals"
}
