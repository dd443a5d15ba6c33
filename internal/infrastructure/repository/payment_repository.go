package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/cafepos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/cafepos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) CreateBatch(ctx context.Context, payments []entity.Payment) error {
	if len(payments) == 0 {
		return nil
	}
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(&payments).Error
}

func (r *paymentRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("captured_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) GetByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) ([]entity.Payment, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	var payments []entity.Payment
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) ListActiveMethods(ctx context.Context, storeID uuid.UUID) ([]entity.PaymentMethod, error) {
	var methods []entity.PaymentMethod
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("store_id = ? AND is_active = ?", storeID, true).
		Order("name ASC").
		Find(&methods).Error
	return methods, err
}

func (r *paymentRepository) GetMethodsByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.PaymentMethod, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var methods []entity.PaymentMethod
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("id IN ?", ids).
		Find(&methods).Error
	return methods, err
}
