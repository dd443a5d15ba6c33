package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/cafepos-api/internal/domain/entity"
)

// StoreRepository defines lookups on store and terminal reference data
type StoreRepository interface {
	GetStore(ctx context.Context, id uuid.UUID) (*entity.Store, error)
	GetDefaultStore(ctx context.Context) (*entity.Store, error)
	GetTerminal(ctx context.Context, id uuid.UUID) (*entity.Terminal, error)
	ListTerminals(ctx context.Context, storeID uuid.UUID) ([]entity.Terminal, error)
}

// UserRepository defines data operations on users
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}
