package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cafepos-api/internal/domain/repository"
	"github.com/sangkips/cafepos-api/pkg/apperror"
)

const defaultReceiptPrefix = "T1"

// ReceiptNumberService formats receipt numbers as
// {prefix}-{yyyymmdd}-{seq 0-padded to 4}, e.g. T1-20260828-0042.
// The sequence restarts at 1 for each (store, terminal, business date) key.
type ReceiptNumberService struct {
	sequenceRepo repository.ReceiptSequenceRepository
	storeRepo    repository.StoreRepository
}

// NewReceiptNumberService creates a new receipt number service
func NewReceiptNumberService(sequenceRepo repository.ReceiptSequenceRepository, storeRepo repository.StoreRepository) *ReceiptNumberService {
	return &ReceiptNumberService{
		sequenceRepo: sequenceRepo,
		storeRepo:    storeRepo,
	}
}

// NextReceiptNumber issues the next receipt number for the terminal on the
// given business date. Each call consumes a sequence value; callers must not
// retry a completion with a fresh call once a number has been assigned.
func (s *ReceiptNumberService) NextReceiptNumber(ctx context.Context, storeID, terminalID uuid.UUID, businessDate time.Time) (string, error) {
	terminal, err := s.storeRepo.GetTerminal(ctx, terminalID)
	if err != nil {
		return "", err
	}
	if terminal == nil {
		return "", apperror.NewNotFoundError("Terminal")
	}

	prefix := terminal.ReceiptPrefix
	if prefix == "" {
		prefix = defaultReceiptPrefix
	}

	value, err := s.sequenceRepo.Next(ctx, storeID, terminalID, businessDate)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%s-%04d", prefix, businessDate.Format("20060102"), value), nil
}
