package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/cafepos-api/internal/domain/enum"
	"github.com/sangkips/cafepos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

func TestStartOrderCreatesOpenOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	order, err := f.orders.StartOrder(ctx, f.storeID, f.terminalID, f.userID)
	if err != nil {
		t.Fatalf("StartOrder: %v", err)
	}
	if order.Status != enum.OrderStatusOpen {
		t.Errorf("status = %v, want Open", order.Status)
	}
	if !order.Total.IsZero() {
		t.Errorf("total = %s, want 0", order.Total)
	}
}

func TestAddItemSnapshotsPriceAndTax(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	priceID := f.seedItem("Latte", "4.50", "0.10", false)

	order, _ := f.orders.StartOrder(ctx, f.storeID, f.terminalID, f.userID)
	line, err := f.orders.AddItem(ctx, &AddItemInput{OrderID: order.ID, ItemPriceID: priceID})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if !line.UnitPrice.Equal(dec("4.50")) {
		t.Errorf("unit price = %s, want 4.50", line.UnitPrice)
	}
	if !line.TaxRate.Equal(dec("0.10")) {
		t.Errorf("tax rate = %s, want 0.10", line.TaxRate)
	}
	if !line.TaxAmount.Equal(dec("0.45")) {
		t.Errorf("tax amount = %s, want 0.45", line.TaxAmount)
	}
	if !line.LineTotal.Equal(dec("4.95")) {
		t.Errorf("line total = %s, want 4.95", line.LineTotal)
	}

	got, _ := f.orders.GetOrder(ctx, order.ID)
	if !got.Total.Equal(dec("4.95")) {
		t.Errorf("order total = %s, want 4.95", got.Total)
	}
	if !got.Subtotal.Equal(dec("4.50")) {
		t.Errorf("subtotal = %s, want 4.50", got.Subtotal)
	}
}

func TestAddItemLaterPriceChangeDoesNotAlterLine(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	priceID := f.seedItem("Latte", "4.50", "", false)

	order, _ := f.orders.StartOrder(ctx, f.storeID, f.terminalID, f.userID)
	line, err := f.orders.AddItem(ctx, &AddItemInput{OrderID: order.ID, ItemPriceID: priceID})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	// raise the catalog price after the line is created
	p := f.store.prices[priceID]
	p.Price = dec("9.99")
	f.store.prices[priceID] = p

	got, _ := f.orders.GetOrder(ctx, order.ID)
	if !got.Total.Equal(dec("4.50")) {
		t.Errorf("order total = %s, want snapshot price 4.50", got.Total)
	}
	if !line.UnitPrice.Equal(dec("4.50")) {
		t.Errorf("line unit price = %s, want 4.50", line.UnitPrice)
	}
}

func TestAddItemWithModifierDeltas(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	priceID := f.seedItem("Latte", "4.00", "", false)
	optID := f.seedOption("Oat milk", "0.50")

	order, _ := f.orders.StartOrder(ctx, f.storeID, f.terminalID, f.userID)
	line, err := f.orders.AddItem(ctx, &AddItemInput{
		OrderID:           order.ID,
		ItemPriceID:       priceID,
		ModifierOptionIDs: []uuid.UUID{optID},
	})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if !line.LineTotal.Equal(dec("4.50")) {
		t.Errorf("line total = %s, want 4.50", line.LineTotal)
	}
	if len(line.Modifiers) != 1 || line.Modifiers[0].OptionName != "Oat milk" {
		t.Errorf("modifier snapshot missing: %+v", line.Modifiers)
	}
}

func TestOrderTotalsUnderLineMutations(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	coffeeID := f.seedItem("Coffee", "3.00", "0.10", false)
	teaID := f.seedItem("Tea", "2.50", "", false)

	order, _ := f.orders.StartOrder(ctx, f.storeID, f.terminalID, f.userID)
	coffee, err := f.orders.AddItem(ctx, &AddItemInput{OrderID: order.ID, ItemPriceID: coffeeID})
	if err != nil {
		t.Fatalf("AddItem coffee: %v", err)
	}
	tea, err := f.orders.AddItem(ctx, &AddItemInput{OrderID: order.ID, ItemPriceID: teaID})
	if err != nil {
		t.Fatalf("AddItem tea: %v", err)
	}

	// 3 x coffee = 9.00 + 0.90 tax, 1 x tea = 2.50
	if err := f.orders.UpdateLineQty(ctx, coffee.ID, dec("3")); err != nil {
		t.Fatalf("UpdateLineQty: %v", err)
	}
	got, _ := f.orders.GetOrder(ctx, order.ID)
	if !got.Total.Equal(dec("12.40")) {
		t.Errorf("total after qty change = %s, want 12.40", got.Total)
	}

	if err := f.orders.RemoveLine(ctx, tea.ID); err != nil {
		t.Fatalf("RemoveLine: %v", err)
	}
	got, _ = f.orders.GetOrder(ctx, order.ID)
	if !got.Total.Equal(dec("9.90")) {
		t.Errorf("total after removal = %s, want 9.90", got.Total)
	}
	if !got.TaxTotal.Equal(dec("0.90")) {
		t.Errorf("tax total = %s, want 0.90", got.TaxTotal)
	}
}

func TestUpdateLineQtyRejectsNonPositive(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	priceID := f.seedItem("Coffee", "3.00", "", false)

	order, _ := f.orders.StartOrder(ctx, f.storeID, f.terminalID, f.userID)
	line, _ := f.orders.AddItem(ctx, &AddItemInput{OrderID: order.ID, ItemPriceID: priceID})

	err := f.orders.UpdateLineQty(ctx, line.ID, decimal.Zero)
	if !apperror.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestRemoveMissingLineIsNoOp(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	priceID := f.seedItem("Coffee", "3.00", "", false)

	order, _ := f.orders.StartOrder(ctx, f.storeID, f.terminalID, f.userID)
	line, _ := f.orders.AddItem(ctx, &AddItemInput{OrderID: order.ID, ItemPriceID: priceID})

	if err := f.orders.RemoveLine(ctx, line.ID); err != nil {
		t.Fatalf("first remove: %v", err)
	}
	if err := f.orders.RemoveLine(ctx, line.ID); err != nil {
		t.Errorf("second remove should be a no-op, got %v", err)
	}
}

func TestHoldAndRecall(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	order, _ := f.orders.StartOrder(ctx, f.storeID, f.terminalID, f.userID)
	name := "table 4"
	if err := f.orders.HoldOrder(ctx, order.ID, &name); err != nil {
		t.Fatalf("HoldOrder: %v", err)
	}

	held, _ := f.orders.ListHeldOrders(ctx, f.terminalID)
	if len(held) != 1 || held[0].HeldName == nil || *held[0].HeldName != "table 4" {
		t.Fatalf("held list = %+v", held)
	}

	if err := f.orders.RecallOrder(ctx, order.ID); err != nil {
		t.Fatalf("RecallOrder: %v", err)
	}
	got, _ := f.orders.GetOrder(ctx, order.ID)
	if got.Status != enum.OrderStatusOpen {
		t.Errorf("status = %v, want Open", got.Status)
	}
	if got.HeldName != nil {
		t.Errorf("held name should be cleared after recall")
	}
}

func TestCompleteOrderHappyPath(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	priceID := f.seedItem("Latte", "4.50", "0.10", false)
	shift := f.openShift("100.00")

	order, _ := f.orders.StartOrder(ctx, f.storeID, f.terminalID, f.userID)
	f.orders.AddItem(ctx, &AddItemInput{OrderID: order.ID, ItemPriceID: priceID})

	completed, err := f.orders.CompleteOrder(ctx, order.ID, f.terminalID, f.userID, []PaymentInput{
		{PaymentMethodID: f.cashID, Amount: dec("5.00")},
	})
	if err != nil {
		t.Fatalf("CompleteOrder: %v", err)
	}

	if completed.Status != enum.OrderStatusCompleted {
		t.Errorf("status = %v, want Completed", completed.Status)
	}
	if completed.ShiftID == nil || *completed.ShiftID != shift.ID {
		t.Errorf("order not bound to the open shift")
	}
	if !completed.ChangeDue.Equal(dec("0.05")) {
		t.Errorf("change due = %s, want 0.05", completed.ChangeDue)
	}
	if !strings.HasPrefix(completed.ReceiptNumber, "T1-20260314-") {
		t.Errorf("receipt number = %q", completed.ReceiptNumber)
	}
	if len(f.printer.calls) != 1 {
		t.Errorf("expected one print call, got %d", len(f.printer.calls))
	}
}

func TestCompleteOrderRequiresOpenShift(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	priceID := f.seedItem("Latte", "4.50", "", false)

	order, _ := f.orders.StartOrder(ctx, f.storeID, f.terminalID, f.userID)
	f.orders.AddItem(ctx, &AddItemInput{OrderID: order.ID, ItemPriceID: priceID})

	_, err := f.orders.CompleteOrder(ctx, order.ID, f.terminalID, f.userID, []PaymentInput{
		{PaymentMethodID: f.cashID, Amount: dec("5.00")},
	})
	if !apperror.IsInvalidState(err) {
		t.Errorf("expected invalid-state error, got %v", err)
	}
}

func TestCompleteOrderRejectsInsufficientPayment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	priceID := f.seedItem("Latte", "4.50", "", false)
	f.openShift("100.00")

	order, _ := f.orders.StartOrder(ctx, f.storeID, f.terminalID, f.userID)
	f.orders.AddItem(ctx, &AddItemInput{OrderID: order.ID, ItemPriceID: priceID})

	_, err := f.orders.CompleteOrder(ctx, order.ID, f.terminalID, f.userID, []PaymentInput{
		{PaymentMethodID: f.cashID, Amount: dec("4.00")},
	})
	if !apperror.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}

	got, _ := f.orders.GetOrder(ctx, order.ID)
	if got.Status != enum.OrderStatusOpen {
		t.Errorf("failed completion must leave the order Open, got %v", got.Status)
	}
}

func TestCompleteOrderRollsBackOnStorageFailure(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	priceID := f.seedItem("Latte", "4.50", "", false)
	f.openShift("100.00")

	order, _ := f.orders.StartOrder(ctx, f.storeID, f.terminalID, f.userID)
	f.orders.AddItem(ctx, &AddItemInput{OrderID: order.ID, ItemPriceID: priceID})

	f.store.failOrderUpdate = true
	_, err := f.orders.CompleteOrder(ctx, order.ID, f.terminalID, f.userID, []PaymentInput{
		{PaymentMethodID: f.cashID, Amount: dec("5.00")},
	})
	f.store.failOrderUpdate = false

	if err == nil {
		t.Fatal("expected storage failure")
	}
	payments, _ := f.payments.GetOrderPayments(ctx, order.ID)
	if len(payments) != 0 {
		t.Errorf("payment rows must be rolled back with the order, found %d", len(payments))
	}
	if len(f.printer.calls) != 0 {
		t.Errorf("nothing should print on a failed completion")
	}
}

func TestFailedCompletionDoesNotReissueReceiptNumber(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	priceID := f.seedItem("Latte", "4.50", "", false)
	f.openShift("100.00")

	order, _ := f.orders.StartOrder(ctx, f.storeID, f.terminalID, f.userID)
	f.orders.AddItem(ctx, &AddItemInput{OrderID: order.ID, ItemPriceID: priceID})

	f.store.failOrderUpdate = true
	_, err := f.orders.CompleteOrder(ctx, order.ID, f.terminalID, f.userID, []PaymentInput{
		{PaymentMethodID: f.cashID, Amount: dec("4.50")},
	})
	f.store.failOrderUpdate = false
	if err == nil {
		t.Fatal("expected storage failure")
	}

	// the value consumed by the failed attempt stays consumed; the retry
	// reads the still-unnumbered order and draws the next one
	completed, err := f.orders.CompleteOrder(ctx, order.ID, f.terminalID, f.userID, []PaymentInput{
		{PaymentMethodID: f.cashID, Amount: dec("4.50")},
	})
	if err != nil {
		t.Fatalf("retried completion: %v", err)
	}
	if completed.ReceiptNumber != "T1-20260314-0002" {
		t.Errorf("receipt number = %q, want T1-20260314-0002", completed.ReceiptNumber)
	}
}

func TestCompleteOrderKeepsAssignedReceiptNumber(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	priceID := f.seedItem("Latte", "4.50", "", false)
	f.openShift("100.00")

	order, _ := f.orders.StartOrder(ctx, f.storeID, f.terminalID, f.userID)
	f.orders.AddItem(ctx, &AddItemInput{OrderID: order.ID, ItemPriceID: priceID})

	// an earlier attempt already persisted a number for this order
	stored := f.store.orders[order.ID]
	stored.ReceiptNumber = "T1-20260314-0007"
	f.store.orders[order.ID] = stored

	completed, err := f.orders.CompleteOrder(ctx, order.ID, f.terminalID, f.userID, []PaymentInput{
		{PaymentMethodID: f.cashID, Amount: dec("4.50")},
	})
	if err != nil {
		t.Fatalf("CompleteOrder: %v", err)
	}
	if completed.ReceiptNumber != "T1-20260314-0007" {
		t.Errorf("receipt number = %q, want the already-assigned T1-20260314-0007", completed.ReceiptNumber)
	}
	if len(f.store.sequences) != 0 {
		t.Errorf("a sequence value was consumed for an order that already had a number")
	}
}

func TestCompleteOrderPrintFailureDoesNotFailOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	priceID := f.seedItem("Latte", "4.50", "", false)
	f.openShift("100.00")
	f.printer.fail = true

	order, _ := f.orders.StartOrder(ctx, f.storeID, f.terminalID, f.userID)
	f.orders.AddItem(ctx, &AddItemInput{OrderID: order.ID, ItemPriceID: priceID})

	completed, err := f.orders.CompleteOrder(ctx, order.ID, f.terminalID, f.userID, []PaymentInput{
		{PaymentMethodID: f.cashID, Amount: dec("4.50")},
	})
	if err != nil {
		t.Fatalf("CompleteOrder must succeed despite printer failure: %v", err)
	}
	if completed.Status != enum.OrderStatusCompleted {
		t.Errorf("status = %v, want Completed", completed.Status)
	}
}

func TestCompletedOrderIsImmutable(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	priceID := f.seedItem("Latte", "4.50", "", false)
	f.openShift("100.00")

	order, _ := f.orders.StartOrder(ctx, f.storeID, f.terminalID, f.userID)
	line, _ := f.orders.AddItem(ctx, &AddItemInput{OrderID: order.ID, ItemPriceID: priceID})
	f.orders.CompleteOrder(ctx, order.ID, f.terminalID, f.userID, []PaymentInput{
		{PaymentMethodID: f.cashID, Amount: dec("4.50")},
	})

	if _, err := f.orders.AddItem(ctx, &AddItemInput{OrderID: order.ID, ItemPriceID: priceID}); !apperror.IsInvalidState(err) {
		t.Errorf("AddItem on completed order: got %v", err)
	}
	if err := f.orders.UpdateLineQty(ctx, line.ID, dec("2")); !apperror.IsInvalidState(err) {
		t.Errorf("UpdateLineQty on completed order: got %v", err)
	}
	if err := f.orders.VoidOrder(ctx, order.ID, f.userID); !apperror.IsInvalidState(err) {
		t.Errorf("VoidOrder on completed order: got %v", err)
	}
}

func TestRefundCompletedOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	priceID := f.seedItem("Latte", "4.50", "", false)
	f.openShift("100.00")

	order, _ := f.orders.StartOrder(ctx, f.storeID, f.terminalID, f.userID)
	f.orders.AddItem(ctx, &AddItemInput{OrderID: order.ID, ItemPriceID: priceID})
	f.orders.CompleteOrder(ctx, order.ID, f.terminalID, f.userID, []PaymentInput{
		{PaymentMethodID: f.cashID, Amount: dec("4.50")},
	})

	err := f.orders.RefundOrder(ctx, order.ID, f.userID, []PaymentInput{
		{PaymentMethodID: f.cashID, Amount: dec("4.50")},
	})
	if err != nil {
		t.Fatalf("RefundOrder: %v", err)
	}

	got, _ := f.orders.GetOrder(ctx, order.ID)
	if got.Status != enum.OrderStatusRefunded {
		t.Errorf("status = %v, want Refunded", got.Status)
	}

	payments, _ := f.payments.GetOrderPayments(ctx, order.ID)
	refunds := 0
	for _, p := range payments {
		if p.IsRefund {
			refunds++
		}
	}
	if refunds != 1 {
		t.Errorf("refund rows = %d, want 1", refunds)
	}

	// refunded orders are terminal
	if err := f.orders.RefundOrder(ctx, order.ID, f.userID, nil); !apperror.IsInvalidState(err) {
		t.Errorf("double refund: got %v", err)
	}
}

func TestVoidOpenOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	order, _ := f.orders.StartOrder(ctx, f.storeID, f.terminalID, f.userID)
	if err := f.orders.VoidOrder(ctx, order.ID, f.userID); err != nil {
		t.Fatalf("VoidOrder: %v", err)
	}

	got, _ := f.orders.GetOrder(ctx, order.ID)
	if got.Status != enum.OrderStatusVoided {
		t.Errorf("status = %v, want Voided", got.Status)
	}

	payments, _ := f.payments.GetOrderPayments(ctx, order.ID)
	if len(payments) != 0 {
		t.Errorf("voided orders must have no payment rows")
	}
	if err := f.orders.RecallOrder(ctx, order.ID); !apperror.IsInvalidState(err) {
		t.Errorf("recall of a voided order: got %v", err)
	}
}
