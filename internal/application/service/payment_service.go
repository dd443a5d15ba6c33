package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/cafepos-api/internal/domain/entity"
	"github.com/sangkips/cafepos-api/internal/domain/repository"
	"github.com/sangkips/cafepos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// PaymentService exposes payment methods and validates tender requests
// before they reach the order lifecycle.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
}

// NewPaymentService creates a new payment service
func NewPaymentService(paymentRepo repository.PaymentRepository) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo}
}

// ListMethods returns the store's active payment methods
func (s *PaymentService) ListMethods(ctx context.Context, storeID uuid.UUID) ([]entity.PaymentMethod, error) {
	return s.paymentRepo.ListActiveMethods(ctx, storeID)
}

// GetOrderPayments returns the payment rows recorded for an order
func (s *PaymentService) GetOrderPayments(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error) {
	return s.paymentRepo.GetByOrderID(ctx, orderID)
}

// ValidateTenders confirms that every tender references an active payment
// method and carries a positive amount.
func (s *PaymentService) ValidateTenders(ctx context.Context, tenders []PaymentInput) error {
	if len(tenders) == 0 {
		return apperror.NewValidationError("At least one payment is required")
	}

	methodIDs := make([]uuid.UUID, 0, len(tenders))
	seen := make(map[uuid.UUID]bool)
	for _, t := range tenders {
		if t.Amount.LessThanOrEqual(decimal.Zero) {
			return apperror.NewValidationError("Payment amount must be greater than zero")
		}
		if !seen[t.PaymentMethodID] {
			seen[t.PaymentMethodID] = true
			methodIDs = append(methodIDs, t.PaymentMethodID)
		}
	}

	methods, err := s.paymentRepo.GetMethodsByIDs(ctx, methodIDs)
	if err != nil {
		return err
	}
	active := make(map[uuid.UUID]bool, len(methods))
	for _, m := range methods {
		if m.IsActive {
			active[m.ID] = true
		}
	}
	for _, id := range methodIDs {
		if !active[id] {
			return apperror.NewValidationError("Unknown or inactive payment method")
		}
	}
	return nil
}
