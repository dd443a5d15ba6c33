package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/cafepos-api/internal/domain/entity"
	"github.com/sangkips/cafepos-api/internal/domain/enum"
	domainRepo "github.com/sangkips/cafepos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type shiftRepository struct {
	db *gorm.DB
}

// NewShiftRepository creates a new shift repository
func NewShiftRepository(db *gorm.DB) domainRepo.ShiftRepository {
	return &shiftRepository{db: db}
}

func (r *shiftRepository) Create(ctx context.Context, shift *entity.Shift) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Omit("Events").Create(shift).Error
}

func (r *shiftRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	var shift entity.Shift
	err := dbFromContext(ctx, r.db).WithContext(ctx).First(&shift, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepository) FindOpenByTerminal(ctx context.Context, terminalID uuid.UUID) (*entity.Shift, error) {
	var shift entity.Shift
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		First(&shift, "terminal_id = ? AND status = ?", terminalID, enum.ShiftStatusOpen).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepository) Update(ctx context.Context, shift *entity.Shift) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Omit("Events").Save(shift).Error
}

func (r *shiftRepository) CreateEvent(ctx context.Context, event *entity.CashDrawerEvent) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(event).Error
}

func (r *shiftRepository) EventsByShift(ctx context.Context, shiftID uuid.UUID) ([]entity.CashDrawerEvent, error) {
	var events []entity.CashDrawerEvent
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("shift_id = ?", shiftID).
		Order("created_at ASC").
		Find(&events).Error
	return events, err
}

func (r *shiftRepository) OrdersByShift(ctx context.Context, shiftID uuid.UUID) ([]entity.Order, error) {
	var orders []entity.Order
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("shift_id = ?", shiftID).
		Order("completed_at ASC").
		Find(&orders).Error
	return orders, err
}
