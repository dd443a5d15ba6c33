package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReceiptSequence holds the last issued receipt sequence value for a
// (store, terminal, business date) key. Created lazily on first use for a
// date; incremented under serialized access thereafter.
type ReceiptSequence struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StoreID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_receipt_seq_key" json:"store_id"`
	TerminalID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_receipt_seq_key" json:"terminal_id"`
	BusinessDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_receipt_seq_key" json:"business_date"`
	LastValue    int       `gorm:"not null;default:0" json:"last_value"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new receipt sequence row
func (s *ReceiptSequence) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReceiptSequence model
func (ReceiptSequence) TableName() string {
	return "receipt_sequences"
}
