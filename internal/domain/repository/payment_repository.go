package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/cafepos-api/internal/domain/entity"
)

// PaymentRepository defines data operations on payments and payment methods.
// Payments are append-only; there is no update or delete.
type PaymentRepository interface {
	CreateBatch(ctx context.Context, payments []entity.Payment) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error)
	GetByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) ([]entity.Payment, error)

	ListActiveMethods(ctx context.Context, storeID uuid.UUID) ([]entity.PaymentMethod, error)
	GetMethodsByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.PaymentMethod, error)
}
