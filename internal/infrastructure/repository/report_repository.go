package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cafepos-api/internal/domain/entity"
	"github.com/sangkips/cafepos-api/internal/domain/enum"
	domainRepo "github.com/sangkips/cafepos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) CompletedOrdersBetween(ctx context.Context, start, end time.Time) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).
		Where("status IN ? AND completed_at BETWEEN ? AND ?",
			[]enum.OrderStatus{enum.OrderStatusCompleted, enum.OrderStatusRefunded}, start, end).
		Order("completed_at ASC").
		Find(&orders).Error
	return orders, err
}

func (r *reportRepository) VoidedOrdersBetween(ctx context.Context, start, end time.Time) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).
		Where("status = ? AND completed_at BETWEEN ? AND ?", enum.OrderStatusVoided, start, end).
		Find(&orders).Error
	return orders, err
}

func (r *reportRepository) LinesForOrders(ctx context.Context, orderIDs []uuid.UUID) ([]entity.OrderLine, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	var lines []entity.OrderLine
	err := r.db.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Find(&lines).Error
	return lines, err
}

func (r *reportRepository) PaymentsForOrders(ctx context.Context, orderIDs []uuid.UUID) ([]entity.Payment, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	var payments []entity.Payment
	err := r.db.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Find(&payments).Error
	return payments, err
}
