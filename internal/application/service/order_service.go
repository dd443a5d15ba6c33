package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/sangkips/cafepos-api/internal/domain/entity"
	"github.com/sangkips/cafepos-api/internal/domain/enum"
	"github.com/sangkips/cafepos-api/internal/domain/pricing"
	"github.com/sangkips/cafepos-api/internal/domain/repository"
	"github.com/sangkips/cafepos-api/pkg/apperror"
	"github.com/sangkips/cafepos-api/pkg/clock"
	"github.com/sangkips/cafepos-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ReceiptPrinter is the printing collaborator notified after an order
// completes. A printing failure must never fail the completed order.
type ReceiptPrinter interface {
	PrintOrderReceipt(ctx context.Context, orderID uuid.UUID) error
}

// OrderService owns the order lifecycle state machine: creation, line
// mutation, hold/recall, completion with payment, refund, and void.
type OrderService struct {
	orderRepo   repository.OrderRepository
	lineRepo    repository.OrderLineRepository
	menuRepo    repository.MenuRepository
	shiftRepo   repository.ShiftRepository
	paymentRepo repository.PaymentRepository
	receipts    *ReceiptNumberService
	tx          repository.TxManager
	clock       clock.Clock
	printer     ReceiptPrinter
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	lineRepo repository.OrderLineRepository,
	menuRepo repository.MenuRepository,
	shiftRepo repository.ShiftRepository,
	paymentRepo repository.PaymentRepository,
	receipts *ReceiptNumberService,
	tx repository.TxManager,
	clk clock.Clock,
	printer ReceiptPrinter,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		lineRepo:    lineRepo,
		menuRepo:    menuRepo,
		shiftRepo:   shiftRepo,
		paymentRepo: paymentRepo,
		receipts:    receipts,
		tx:          tx,
		clock:       clk,
		printer:     printer,
	}
}

// PaymentInput represents one tender in a completion or refund request
type PaymentInput struct {
	PaymentMethodID uuid.UUID
	Amount          decimal.Decimal
	Reference       *string
}

// AddItemInput represents the add-item request
type AddItemInput struct {
	OrderID           uuid.UUID
	ItemPriceID       uuid.UUID
	ModifierOptionIDs []uuid.UUID
	Note              *string
}

// StartOrder creates a new Open order with zero totals
func (s *OrderService) StartOrder(ctx context.Context, storeID, terminalID, userID uuid.UUID) (*entity.Order, error) {
	order := &entity.Order{
		ID:         uuid.New(),
		StoreID:    storeID,
		TerminalID: terminalID,
		Status:     enum.OrderStatusOpen,
		CreatedBy:  userID,
		CreatedAt:  s.clock.LocalNow(),
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// AddItem resolves the priced item and modifiers from the catalog at call
// time, snapshots them onto a new line, and recomputes the order totals from
// all current lines. Line and order are persisted atomically.
func (s *OrderService) AddItem(ctx context.Context, input *AddItemInput) (*entity.OrderLine, error) {
	order, err := s.orderRepo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if !order.Status.IsEditable() {
		return nil, apperror.NewInvalidStateError("Order is not editable")
	}

	price, err := s.menuRepo.GetActivePrice(ctx, input.ItemPriceID)
	if err != nil {
		return nil, err
	}
	if price == nil {
		return nil, apperror.NewNotFoundError("Item price")
	}

	item, err := s.menuRepo.GetActiveItem(ctx, price.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}

	// Tax rule is snapshotted from the price's tax category; absent or
	// inactive categories fall back to untaxed.
	taxRate := decimal.Zero
	taxIncluded := false
	if price.TaxCategoryID != nil {
		taxCategory, err := s.menuRepo.GetActiveTaxCategory(ctx, *price.TaxCategoryID)
		if err != nil {
			return nil, err
		}
		if taxCategory != nil {
			taxRate = taxCategory.Rate
			taxIncluded = taxCategory.IsInclusive
		}
	}

	var options []entity.ModifierOption
	if len(input.ModifierOptionIDs) > 0 {
		options, err = s.menuRepo.GetActiveModifierOptions(ctx, input.ModifierOptionIDs)
		if err != nil {
			return nil, err
		}
	}

	line := &entity.OrderLine{
		ID:          uuid.New(),
		OrderID:     order.ID,
		ItemID:      &item.ID,
		ItemPriceID: &price.ID,
		Description: buildItemDescription(item.Name, price.Label),
		UnitPrice:   price.Price,
		Qty:         decimal.NewFromInt(1),
		Discount:    decimal.Zero,
		TaxRate:     taxRate,
		TaxIncluded: taxIncluded,
		Note:        input.Note,
	}
	for _, option := range options {
		line.Modifiers = append(line.Modifiers, entity.OrderLineModifier{
			ID:          uuid.New(),
			OrderLineID: line.ID,
			GroupName:   option.ModifierGroup.Name,
			OptionName:  option.Name,
			PriceDelta:  option.PriceDelta,
		})
	}
	applyLinePricing(line)

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.lineRepo.Create(ctx, line); err != nil {
			return err
		}
		return s.recomputeOrderTotals(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

// UpdateLineQty changes a line's quantity and reprices the line and order
func (s *OrderService) UpdateLineQty(ctx context.Context, lineID uuid.UUID, qty decimal.Decimal) error {
	if qty.LessThanOrEqual(decimal.Zero) {
		return apperror.NewValidationError("Quantity must be greater than zero")
	}

	line, err := s.lineRepo.GetWithModifiers(ctx, lineID)
	if err != nil {
		return err
	}
	if line == nil {
		return apperror.NewNotFoundError("Order line")
	}

	order, err := s.orderRepo.GetByID(ctx, line.OrderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	if !order.Status.IsEditable() {
		return apperror.NewInvalidStateError("Order is not editable")
	}

	line.Qty = qty
	applyLinePricing(line)

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.lineRepo.Update(ctx, line); err != nil {
			return err
		}
		return s.recomputeOrderTotals(ctx, order)
	})
}

// RemoveLine deletes a line and its modifiers and recomputes the order
// totals. Removing a line that no longer exists is a successful no-op; the
// front end issues this call opportunistically.
func (s *OrderService) RemoveLine(ctx context.Context, lineID uuid.UUID) error {
	line, err := s.lineRepo.GetByID(ctx, lineID)
	if err != nil {
		return err
	}
	if line == nil {
		return nil
	}

	order, err := s.orderRepo.GetByID(ctx, line.OrderID)
	if err != nil {
		return err
	}
	if order == nil {
		return nil
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.lineRepo.Delete(ctx, line.ID); err != nil {
			return err
		}
		return s.recomputeOrderTotals(ctx, order)
	})
}

// SetLineNote attaches or replaces the kitchen note on a line
func (s *OrderService) SetLineNote(ctx context.Context, lineID uuid.UUID, note *string) error {
	line, err := s.lineRepo.GetByID(ctx, lineID)
	if err != nil {
		return err
	}
	if line == nil {
		return apperror.NewNotFoundError("Order line")
	}

	line.Note = note
	return s.lineRepo.Update(ctx, line)
}

// HoldOrder parks an order under an optional display name
func (s *OrderService) HoldOrder(ctx context.Context, orderID uuid.UUID, heldName *string) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	if order.Status != enum.OrderStatusOpen && order.Status != enum.OrderStatusHeld {
		return apperror.NewInvalidStateError("Only open orders can be held")
	}

	order.Status = enum.OrderStatusHeld
	order.HeldName = heldName
	return s.orderRepo.Update(ctx, order)
}

// RecallOrder returns a held order to Open
func (s *OrderService) RecallOrder(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	if order.Status != enum.OrderStatusHeld && order.Status != enum.OrderStatusOpen {
		return apperror.NewInvalidStateError("Only held orders can be recalled")
	}

	order.Status = enum.OrderStatusOpen
	order.HeldName = nil
	return s.orderRepo.Update(ctx, order)
}

// CompleteOrder settles an order. The receipt number is assigned first, in
// its own committed increment (and only when one is not already present, so
// retried completions never allocate twice); a completion that fails after
// that point burns the number rather than returning it. One transaction then
// records the payment rows and marks the order Completed bound to the
// terminal's open shift. The receipt prints only after the transaction
// commits; a print failure is reported in the log, not to the caller.
func (s *OrderService) CompleteOrder(ctx context.Context, orderID, terminalID, userID uuid.UUID, payments []PaymentInput) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if !order.Status.IsEditable() {
		return nil, apperror.NewInvalidStateError("Order cannot be completed")
	}

	shift, err := s.shiftRepo.FindOpenByTerminal(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.NewInvalidStateError("No open shift for this terminal")
	}

	lines, err := s.lineRepo.GetByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	applyOrderTotals(order, lines)

	totalPaid := decimal.Zero
	for _, p := range payments {
		totalPaid = totalPaid.Add(p.Amount)
	}
	if totalPaid.LessThan(order.Total) {
		return nil, apperror.NewValidationError("Insufficient payment")
	}

	if order.ReceiptNumber == "" {
		receiptNumber, err := s.receipts.NextReceiptNumber(ctx, order.StoreID, order.TerminalID, s.clock.BusinessDate())
		if err != nil {
			return nil, err
		}
		order.ReceiptNumber = receiptNumber
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		paymentRows := make([]entity.Payment, 0, len(payments))
		for _, p := range payments {
			paymentRows = append(paymentRows, entity.Payment{
				ID:              uuid.New(),
				OrderID:         order.ID,
				PaymentMethodID: p.PaymentMethodID,
				Amount:          p.Amount,
				Reference:       p.Reference,
				IsRefund:        false,
				CapturedAt:      s.clock.LocalNow(),
			})
		}
		if err := s.paymentRepo.CreateBatch(ctx, paymentRows); err != nil {
			return err
		}

		now := s.clock.LocalNow()
		order.TotalPaid = totalPaid
		order.ChangeDue = pricing.RoundMoney(decimal.Max(decimal.Zero, totalPaid.Sub(order.Total)))
		order.Status = enum.OrderStatusCompleted
		order.CompletedAt = &now
		order.CompletedBy = &userID
		order.ShiftID = &shift.ID

		return s.orderRepo.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	if printErr := s.printer.PrintOrderReceipt(ctx, order.ID); printErr != nil {
		log.Printf("Printer error (order %s): %v", order.ID, printErr)
	}
	return order, nil
}

// RefundOrder refunds a completed order in full, appending refund-flagged
// payment rows inside one transaction. Partial refunds are not supported.
func (s *OrderService) RefundOrder(ctx context.Context, orderID, userID uuid.UUID, refundPayments []PaymentInput) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	if order.Status != enum.OrderStatusCompleted {
		return apperror.NewInvalidStateError("Only completed orders can be refunded")
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		paymentRows := make([]entity.Payment, 0, len(refundPayments))
		for _, p := range refundPayments {
			paymentRows = append(paymentRows, entity.Payment{
				ID:              uuid.New(),
				OrderID:         order.ID,
				PaymentMethodID: p.PaymentMethodID,
				Amount:          p.Amount,
				Reference:       p.Reference,
				IsRefund:        true,
				CapturedAt:      s.clock.LocalNow(),
			})
		}
		if err := s.paymentRepo.CreateBatch(ctx, paymentRows); err != nil {
			return err
		}

		order.Status = enum.OrderStatusRefunded
		order.CompletedBy = &userID
		return s.orderRepo.Update(ctx, order)
	})
}

// VoidOrder cancels an open or held order without creating payment rows
func (s *OrderService) VoidOrder(ctx context.Context, orderID, userID uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	if !order.Status.IsEditable() {
		return apperror.NewInvalidStateError("Only open or held orders can be voided")
	}

	// bind to the open shift, if any, so shift summaries can count voids
	shift, err := s.shiftRepo.FindOpenByTerminal(ctx, order.TerminalID)
	if err != nil {
		return err
	}
	if shift != nil {
		order.ShiftID = &shift.ID
	}

	now := s.clock.LocalNow()
	order.Status = enum.OrderStatusVoided
	order.CompletedBy = &userID
	order.CompletedAt = &now
	return s.orderRepo.Update(ctx, order)
}

// GetOrder retrieves an order with its lines and modifiers
func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithLines(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListHeldOrders returns the held orders for a terminal, oldest first
func (s *OrderService) ListHeldOrders(ctx context.Context, terminalID uuid.UUID) ([]entity.Order, error) {
	return s.orderRepo.ListHeld(ctx, terminalID)
}

// ListOrders returns a filtered, paginated page of orders
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, p), nil
}

// recomputeOrderTotals rebuilds the order's monetary totals from the full
// current set of lines and persists the order. Called inside the mutation's
// transaction so line and order always change together.
func (s *OrderService) recomputeOrderTotals(ctx context.Context, order *entity.Order) error {
	lines, err := s.lineRepo.GetByOrderID(ctx, order.ID)
	if err != nil {
		return err
	}
	applyOrderTotals(order, lines)
	return s.orderRepo.Update(ctx, order)
}

func applyLinePricing(line *entity.OrderLine) {
	deltas := make([]decimal.Decimal, 0, len(line.Modifiers))
	for _, m := range line.Modifiers {
		deltas = append(deltas, m.PriceDelta)
	}

	result := pricing.CalculateLine(line.UnitPrice, line.Qty, line.Discount, line.TaxRate, line.TaxIncluded, deltas)
	line.TaxAmount = result.Tax
	line.LineTotal = result.Total
}

func applyOrderTotals(order *entity.Order, lines []entity.OrderLine) {
	lineTotals := make([]pricing.LineTotals, 0, len(lines))
	discountTotal := decimal.Zero
	for _, l := range lines {
		lineTotals = append(lineTotals, pricing.LineTotals{
			Net:   l.Net(),
			Tax:   l.TaxAmount,
			Total: l.LineTotal,
		})
		discountTotal = discountTotal.Add(l.Discount)
	}

	totals := pricing.CalculateOrderTotals(lineTotals)
	order.Subtotal = totals.Subtotal
	order.TaxTotal = totals.TaxTotal
	order.Total = totals.Total
	order.DiscountTotal = pricing.RoundMoney(discountTotal)
}

func buildItemDescription(name string, label *string) string {
	if label == nil || *label == "" {
		return name
	}
	return fmt.Sprintf("%s - %s", name, *label)
}
