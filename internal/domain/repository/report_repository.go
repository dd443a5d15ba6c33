package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cafepos-api/internal/domain/entity"
)

// ReportRepository provides the read-only views behind the reporting
// aggregator. Queries here never run inside a transaction.
type ReportRepository interface {
	// CompletedOrdersBetween returns Completed and Refunded orders whose
	// completion timestamp falls within [start, end] (inclusive, local time).
	CompletedOrdersBetween(ctx context.Context, start, end time.Time) ([]entity.Order, error)
	VoidedOrdersBetween(ctx context.Context, start, end time.Time) ([]entity.Order, error)
	LinesForOrders(ctx context.Context, orderIDs []uuid.UUID) ([]entity.OrderLine, error)
	PaymentsForOrders(ctx context.Context, orderIDs []uuid.UUID) ([]entity.Payment, error)
}
