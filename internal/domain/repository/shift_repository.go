package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/cafepos-api/internal/domain/entity"
)

// ShiftRepository defines data operations on shifts and drawer events.
// FindOpenByTerminal must observe rows written by concurrent openers when
// called inside a transaction; the shift service additionally serializes
// opens per terminal.
type ShiftRepository interface {
	Create(ctx context.Context, shift *entity.Shift) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Shift, error)
	FindOpenByTerminal(ctx context.Context, terminalID uuid.UUID) (*entity.Shift, error)
	Update(ctx context.Context, shift *entity.Shift) error

	CreateEvent(ctx context.Context, event *entity.CashDrawerEvent) error
	EventsByShift(ctx context.Context, shiftID uuid.UUID) ([]entity.CashDrawerEvent, error)

	// OrdersByShift returns all orders bound to the shift at completion.
	OrdersByShift(ctx context.Context, shiftID uuid.UUID) ([]entity.Order, error)
}
