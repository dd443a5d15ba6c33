package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cafepos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/cafepos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type receiptSequenceRepository struct {
	db *gorm.DB

	// mu serializes the read-increment-write per sequence key. Row locking
	// is not portable across the supported drivers, so the serialization
	// happens here; a single process owns each terminal's sequence.
	mu sync.Map
}

// NewReceiptSequenceRepository creates a new receipt sequence repository
func NewReceiptSequenceRepository(db *gorm.DB) domainRepo.ReceiptSequenceRepository {
	return &receiptSequenceRepository{db: db}
}

func (r *receiptSequenceRepository) keyLock(key string) *sync.Mutex {
	mu, _ := r.mu.LoadOrStore(key, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Next increments the sequence in its own transaction, committed before the
// per-key mutex is released. Joining a caller's transaction would let the
// uncommitted increment escape the critical section: the next caller would
// read the old committed value and hand out the same number. A caller whose
// surrounding work later rolls back burns the value it was given; sequence
// values are unique, not gapless.
func (r *receiptSequenceRepository) Next(ctx context.Context, storeID, terminalID uuid.UUID, businessDate time.Time) (int, error) {
	day := time.Date(businessDate.Year(), businessDate.Month(), businessDate.Day(), 0, 0, 0, 0, time.UTC)
	key := fmt.Sprintf("%s|%s|%s", storeID, terminalID, day.Format("20060102"))

	mu := r.keyLock(key)
	mu.Lock()
	defer mu.Unlock()

	var value int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq entity.ReceiptSequence
		err := tx.First(&seq, "store_id = ? AND terminal_id = ? AND business_date = ?", storeID, terminalID, day).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			seq = entity.ReceiptSequence{
				ID:           uuid.New(),
				StoreID:      storeID,
				TerminalID:   terminalID,
				BusinessDate: day,
				LastValue:    1,
			}
			if err := tx.Create(&seq).Error; err != nil {
				return err
			}
			value = seq.LastValue
			return nil
		}
		if err != nil {
			return err
		}

		seq.LastValue++
		if err := tx.Save(&seq).Error; err != nil {
			return err
		}
		value = seq.LastValue
		return nil
	})
	if err != nil {
		return 0, err
	}
	return value, nil
}
