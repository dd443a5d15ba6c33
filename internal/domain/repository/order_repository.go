package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cafepos-api/internal/domain/entity"
	"github.com/sangkips/cafepos-api/internal/domain/enum"
	"github.com/sangkips/cafepos-api/pkg/pagination"
)

// OrderRepository defines data operations on orders. Lookups return nil
// without an error when the order does not exist, matching the convention
// used throughout the repositories.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// GetWithLines preloads lines and their modifiers.
	GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	// ListHeld returns Held orders for a terminal, oldest first.
	ListHeld(ctx context.Context, terminalID uuid.UUID) ([]entity.Order, error)
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.OrderStatus
	TerminalID *uuid.UUID
	ShiftID    *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Search     string
}

// OrderLineRepository defines data operations on order lines and their
// modifier snapshots. Lines are owned by their order; removing a line removes
// its modifiers.
type OrderLineRepository interface {
	Create(ctx context.Context, line *entity.OrderLine) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.OrderLine, error)
	// GetWithModifiers preloads the line's modifier snapshots.
	GetWithModifiers(ctx context.Context, id uuid.UUID) (*entity.OrderLine, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderLine, error)
	Update(ctx context.Context, line *entity.OrderLine) error
	// Delete removes the line and its modifiers. Deleting a missing line is
	// not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}
