package service

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/sangkips/cafepos-api/internal/domain/entity"
	"github.com/sangkips/cafepos-api/internal/domain/enum"
	"github.com/sangkips/cafepos-api/internal/domain/pricing"
	"github.com/sangkips/cafepos-api/internal/domain/repository"
	"github.com/sangkips/cafepos-api/pkg/apperror"
	"github.com/sangkips/cafepos-api/pkg/clock"
	"github.com/shopspring/decimal"
)

// ShiftSummary is the reconciliation view of a shift, reproducible at any
// time from the shift's persisted orders, payments, and drawer events.
type ShiftSummary struct {
	Shift         *entity.Shift     `json:"shift"`
	OrderCount    int               `json:"order_count"`
	GrossSales    decimal.Decimal   `json:"gross_sales"`
	NetSales      decimal.Decimal   `json:"net_sales"`
	TaxTotal      decimal.Decimal   `json:"tax_total"`
	DiscountTotal decimal.Decimal   `json:"discount_total"`
	AverageTicket decimal.Decimal   `json:"average_ticket"`
	VoidCount     int               `json:"void_count"`
	VoidTotal     decimal.Decimal   `json:"void_total"`
	CashSales     decimal.Decimal   `json:"cash_sales"`
	NonCashSales  decimal.Decimal   `json:"non_cash_sales"`
	RefundTotal   decimal.Decimal   `json:"refund_total"`
	TenderBreaks  []ShiftTenderLine `json:"tender_breakdown"`
	TopItems      []ItemSales       `json:"top_items"`
	PayInTotal    decimal.Decimal   `json:"pay_in_total"`
	PayOutTotal   decimal.Decimal   `json:"pay_out_total"`
	CashDropTotal decimal.Decimal   `json:"cash_drop_total"`
	NoSaleCount   int               `json:"no_sale_count"`
	ExpectedCash  decimal.Decimal   `json:"expected_cash"`
	CountedCash   *decimal.Decimal  `json:"counted_cash,omitempty"`
	Variance      *decimal.Decimal  `json:"variance,omitempty"`
}

// ShiftTenderLine is one payment method's paid and refunded totals within a
// shift.
type ShiftTenderLine struct {
	PaymentMethodID uuid.UUID       `json:"payment_method_id"`
	MethodName      string          `json:"method_name"`
	Paid            decimal.Decimal `json:"paid"`
	Refunded        decimal.Decimal `json:"refunded"`
}

// ShiftService manages cash-drawer shifts: opening, drawer events, closing
// with reconciliation, and the shift summary.
type ShiftService struct {
	shiftRepo   repository.ShiftRepository
	paymentRepo repository.PaymentRepository
	lineRepo    repository.OrderLineRepository
	tx          repository.TxManager
	clock       clock.Clock

	// openMu serializes OpenShift per terminal so two concurrent opens on
	// the same terminal cannot both pass the open-shift check.
	openMu sync.Map
}

// NewShiftService creates a new shift service
func NewShiftService(
	shiftRepo repository.ShiftRepository,
	paymentRepo repository.PaymentRepository,
	lineRepo repository.OrderLineRepository,
	tx repository.TxManager,
	clk clock.Clock,
) *ShiftService {
	return &ShiftService{
		shiftRepo:   shiftRepo,
		paymentRepo: paymentRepo,
		lineRepo:    lineRepo,
		tx:          tx,
		clock:       clk,
	}
}

func (s *ShiftService) terminalLock(terminalID uuid.UUID) *sync.Mutex {
	mu, _ := s.openMu.LoadOrStore(terminalID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// OpenShift opens a new shift on a terminal with the counted opening float.
// At most one open shift may exist per terminal; a second open attempt
// returns a conflict.
func (s *ShiftService) OpenShift(ctx context.Context, storeID, terminalID, userID uuid.UUID, openingFloat decimal.Decimal) (*entity.Shift, error) {
	if openingFloat.IsNegative() {
		return nil, apperror.NewValidationError("Opening float cannot be negative")
	}

	mu := s.terminalLock(terminalID)
	mu.Lock()
	defer mu.Unlock()

	var shift *entity.Shift
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.shiftRepo.FindOpenByTerminal(ctx, terminalID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.NewConflictError("Terminal already has an open shift")
		}

		shift = &entity.Shift{
			ID:           uuid.New(),
			StoreID:      storeID,
			TerminalID:   terminalID,
			Status:       enum.ShiftStatusOpen,
			OpenedBy:     userID,
			OpenedAt:     s.clock.LocalNow(),
			OpeningFloat: pricing.RoundMoney(openingFloat),
		}
		return s.shiftRepo.Create(ctx, shift)
	})
	if err != nil {
		return nil, err
	}
	return shift, nil
}

// GetOpenShift returns the open shift for a terminal
func (s *ShiftService) GetOpenShift(ctx context.Context, terminalID uuid.UUID) (*entity.Shift, error) {
	shift, err := s.shiftRepo.FindOpenByTerminal(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.NewNotFoundError("Open shift")
	}
	return shift, nil
}

// RecordCashDrawerEvent appends a manual drawer movement to an open shift
func (s *ShiftService) RecordCashDrawerEvent(ctx context.Context, shiftID, userID uuid.UUID, eventType enum.CashDrawerEventType, amount decimal.Decimal, note *string) (*entity.CashDrawerEvent, error) {
	if amount.IsNegative() {
		return nil, apperror.NewValidationError("Amount cannot be negative")
	}
	if eventType == enum.CashDrawerEventNoSale && !amount.IsZero() {
		return nil, apperror.NewValidationError("No-sale events carry no amount")
	}

	shift, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.NewNotFoundError("Shift")
	}
	if shift.Status != enum.ShiftStatusOpen {
		return nil, apperror.NewInvalidStateError("Shift is not open")
	}

	event := &entity.CashDrawerEvent{
		ID:        uuid.New(),
		ShiftID:   shift.ID,
		Type:      eventType,
		Amount:    pricing.RoundMoney(amount),
		Note:      note,
		UserID:    userID,
		CreatedAt: s.clock.LocalNow(),
	}
	if err := s.shiftRepo.CreateEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// CloseShift reconciles and closes an open shift. Expected cash is computed
// inside the transaction from the shift's orders, payments, and drawer
// events, and the variance (counted minus expected) is stored on the shift.
func (s *ShiftService) CloseShift(ctx context.Context, shiftID, userID uuid.UUID, countedCash decimal.Decimal) (*entity.Shift, error) {
	if countedCash.IsNegative() {
		return nil, apperror.NewValidationError("Counted cash cannot be negative")
	}

	var shift *entity.Shift
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		shift, err = s.shiftRepo.GetByID(ctx, shiftID)
		if err != nil {
			return err
		}
		if shift == nil {
			return apperror.NewNotFoundError("Shift")
		}
		if shift.Status != enum.ShiftStatusOpen {
			return apperror.NewInvalidStateError("Shift is already closed")
		}

		expected, err := s.expectedCash(ctx, shift)
		if err != nil {
			return err
		}

		counted := pricing.RoundMoney(countedCash)
		variance := pricing.RoundMoney(counted.Sub(expected))
		now := s.clock.LocalNow()

		shift.Status = enum.ShiftStatusClosed
		shift.ClosedBy = &userID
		shift.ClosedAt = &now
		shift.CountedCash = &counted
		shift.ExpectedCash = &expected
		shift.Variance = &variance

		return s.shiftRepo.Update(ctx, shift)
	})
	if err != nil {
		return nil, err
	}
	return shift, nil
}

// GetShiftSummary builds the reconciliation summary for a shift. For a
// closed shift the stored counted cash and variance are included; the
// expected-cash figure is always recomputed from the underlying records.
func (s *ShiftService) GetShiftSummary(ctx context.Context, shiftID uuid.UUID) (*ShiftSummary, error) {
	shift, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.NewNotFoundError("Shift")
	}

	orders, err := s.shiftRepo.OrdersByShift(ctx, shift.ID)
	if err != nil {
		return nil, err
	}

	grossSales, taxTotal, discountTotal := decimal.Zero, decimal.Zero, decimal.Zero
	voidTotal := decimal.Zero
	orderCount, voidCount := 0, 0
	var soldLines []entity.OrderLine
	for _, o := range orders {
		switch o.Status {
		case enum.OrderStatusCompleted, enum.OrderStatusRefunded:
			grossSales = grossSales.Add(o.Total)
			taxTotal = taxTotal.Add(o.TaxTotal)
			discountTotal = discountTotal.Add(o.DiscountTotal)
			orderCount++
			if o.Status == enum.OrderStatusCompleted {
				lines, err := s.lineRepo.GetByOrderID(ctx, o.ID)
				if err != nil {
					return nil, err
				}
				soldLines = append(soldLines, lines...)
			}
		case enum.OrderStatusVoided:
			voidTotal = voidTotal.Add(o.Total)
			voidCount++
		}
	}

	cashSales, nonCashSales, cashRefunds, refundTotal, err := s.tenderTotals(ctx, orders)
	if err != nil {
		return nil, err
	}

	netSales := grossSales.Sub(refundTotal)
	averageTicket := decimal.Zero
	if orderCount > 0 {
		averageTicket = pricing.RoundMoney(grossSales.Div(decimal.NewFromInt(int64(orderCount))))
	}

	tenderBreaks, err := s.methodBreakdown(ctx, orders)
	if err != nil {
		return nil, err
	}

	events, err := s.shiftRepo.EventsByShift(ctx, shift.ID)
	if err != nil {
		return nil, err
	}

	payIns, payOuts, cashDrops := decimal.Zero, decimal.Zero, decimal.Zero
	noSaleCount := 0
	for _, e := range events {
		switch e.Type {
		case enum.CashDrawerEventPayIn:
			payIns = payIns.Add(e.Amount)
		case enum.CashDrawerEventPayOut:
			payOuts = payOuts.Add(e.Amount)
		case enum.CashDrawerEventCashDrop:
			cashDrops = cashDrops.Add(e.Amount)
		case enum.CashDrawerEventNoSale:
			noSaleCount++
		}
	}

	expected := pricing.CalculateExpectedCash(shift.OpeningFloat, cashSales, payIns, payOuts, cashDrops, cashRefunds)

	return &ShiftSummary{
		Shift:         shift,
		OrderCount:    orderCount,
		GrossSales:    pricing.RoundMoney(grossSales),
		NetSales:      pricing.RoundMoney(netSales),
		TaxTotal:      pricing.RoundMoney(taxTotal),
		DiscountTotal: pricing.RoundMoney(discountTotal),
		AverageTicket: averageTicket,
		VoidCount:     voidCount,
		VoidTotal:     pricing.RoundMoney(voidTotal),
		CashSales:     pricing.RoundMoney(cashSales),
		NonCashSales:  pricing.RoundMoney(nonCashSales),
		RefundTotal:   pricing.RoundMoney(refundTotal),
		TenderBreaks:  tenderBreaks,
		TopItems:      topItems(soldLines),
		PayInTotal:    pricing.RoundMoney(payIns),
		PayOutTotal:   pricing.RoundMoney(payOuts),
		CashDropTotal: pricing.RoundMoney(cashDrops),
		NoSaleCount:   noSaleCount,
		ExpectedCash:  expected,
		CountedCash:   shift.CountedCash,
		Variance:      shift.Variance,
	}, nil
}

// expectedCash computes opening float + cash sales + pay-ins - pay-outs -
// cash drops - cash refunds for the shift, all from persisted records.
func (s *ShiftService) expectedCash(ctx context.Context, shift *entity.Shift) (decimal.Decimal, error) {
	orders, err := s.shiftRepo.OrdersByShift(ctx, shift.ID)
	if err != nil {
		return decimal.Zero, err
	}
	cashSales, _, cashRefunds, _, err := s.tenderTotals(ctx, orders)
	if err != nil {
		return decimal.Zero, err
	}

	events, err := s.shiftRepo.EventsByShift(ctx, shift.ID)
	if err != nil {
		return decimal.Zero, err
	}

	payIns, payOuts, cashDrops := decimal.Zero, decimal.Zero, decimal.Zero
	for _, e := range events {
		switch e.Type {
		case enum.CashDrawerEventPayIn:
			payIns = payIns.Add(e.Amount)
		case enum.CashDrawerEventPayOut:
			payOuts = payOuts.Add(e.Amount)
		case enum.CashDrawerEventCashDrop:
			cashDrops = cashDrops.Add(e.Amount)
		}
	}

	return pricing.CalculateExpectedCash(shift.OpeningFloat, cashSales, payIns, payOuts, cashDrops, cashRefunds), nil
}

// tenderTotals splits the shift's payment rows into cash/non-cash sales and
// cash/total refunds. Cash sales sum the tendered cash payment rows as
// recorded; change handed back is already reflected in each order's ChangeDue.
func (s *ShiftService) tenderTotals(ctx context.Context, orders []entity.Order) (cashSales, nonCashSales, cashRefunds, refundTotal decimal.Decimal, err error) {
	cashSales, nonCashSales = decimal.Zero, decimal.Zero
	cashRefunds, refundTotal = decimal.Zero, decimal.Zero
	if len(orders) == 0 {
		return cashSales, nonCashSales, cashRefunds, refundTotal, nil
	}

	orderIDs := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}

	payments, err := s.paymentRepo.GetByOrderIDs(ctx, orderIDs)
	if err != nil {
		return cashSales, nonCashSales, cashRefunds, refundTotal, err
	}

	methodIDs := make([]uuid.UUID, 0, len(payments))
	seen := make(map[uuid.UUID]bool)
	for _, p := range payments {
		if !seen[p.PaymentMethodID] {
			seen[p.PaymentMethodID] = true
			methodIDs = append(methodIDs, p.PaymentMethodID)
		}
	}

	methods, err := s.paymentRepo.GetMethodsByIDs(ctx, methodIDs)
	if err != nil {
		return cashSales, nonCashSales, cashRefunds, refundTotal, err
	}
	methodType := make(map[uuid.UUID]enum.PaymentMethodType, len(methods))
	for _, m := range methods {
		methodType[m.ID] = m.Type
	}

	for _, p := range payments {
		isCash := methodType[p.PaymentMethodID] == enum.PaymentMethodTypeCash
		if p.IsRefund {
			refundTotal = refundTotal.Add(p.Amount)
			if isCash {
				cashRefunds = cashRefunds.Add(p.Amount)
			}
			continue
		}
		if isCash {
			cashSales = cashSales.Add(p.Amount)
		} else {
			nonCashSales = nonCashSales.Add(p.Amount)
		}
	}
	return cashSales, nonCashSales, cashRefunds, refundTotal, nil
}

// methodBreakdown totals paid and refunded amounts per payment method across
// the shift's orders, largest paid total first.
func (s *ShiftService) methodBreakdown(ctx context.Context, orders []entity.Order) ([]ShiftTenderLine, error) {
	if len(orders) == 0 {
		return nil, nil
	}

	orderIDs := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}

	payments, err := s.paymentRepo.GetByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return nil, nil
	}

	byMethod := make(map[uuid.UUID]*ShiftTenderLine)
	methodIDs := make([]uuid.UUID, 0)
	for _, p := range payments {
		line, ok := byMethod[p.PaymentMethodID]
		if !ok {
			line = &ShiftTenderLine{
				PaymentMethodID: p.PaymentMethodID,
				Paid:            decimal.Zero,
				Refunded:        decimal.Zero,
			}
			byMethod[p.PaymentMethodID] = line
			methodIDs = append(methodIDs, p.PaymentMethodID)
		}
		if p.IsRefund {
			line.Refunded = line.Refunded.Add(p.Amount)
		} else {
			line.Paid = line.Paid.Add(p.Amount)
		}
	}

	methods, err := s.paymentRepo.GetMethodsByIDs(ctx, methodIDs)
	if err != nil {
		return nil, err
	}
	for _, m := range methods {
		if line, ok := byMethod[m.ID]; ok {
			line.MethodName = m.Name
		}
	}

	lines := make([]ShiftTenderLine, 0, len(byMethod))
	for _, id := range methodIDs {
		line := byMethod[id]
		line.Paid = pricing.RoundMoney(line.Paid)
		line.Refunded = pricing.RoundMoney(line.Refunded)
		lines = append(lines, *line)
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].Paid.GreaterThan(lines[j].Paid)
	})
	return lines, nil
}
