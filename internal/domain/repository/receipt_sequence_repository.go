package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ReceiptSequenceRepository issues the next sequence value for a
// (store, terminal, business date) key. The read-increment-write is
// serialized per key at the storage boundary so that two concurrent
// completions can never receive the same value; a missing row is created
// lazily with value 1.
type ReceiptSequenceRepository interface {
	Next(ctx context.Context, storeID, terminalID uuid.UUID, businessDate time.Time) (int, error)
}
