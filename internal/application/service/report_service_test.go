package service

import (
	"context"
	"testing"
	"time"
)

func TestDailyReportAggregatesCompletedOrders(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	coffeeID := f.seedItem("Coffee", "3.00", "0.10", false)
	teaID := f.seedItem("Tea", "2.50", "", false)
	f.openShift("100.00")

	for i := 0; i < 2; i++ {
		order, _ := f.orders.StartOrder(ctx, f.storeID, f.terminalID, f.userID)
		f.orders.AddItem(ctx, &AddItemInput{OrderID: order.ID, ItemPriceID: coffeeID})
		if _, err := f.orders.CompleteOrder(ctx, order.ID, f.terminalID, f.userID, []PaymentInput{
			{PaymentMethodID: f.cashID, Amount: dec("3.30")},
		}); err != nil {
			t.Fatalf("coffee order %d: %v", i, err)
		}
	}
	teaOrder, _ := f.orders.StartOrder(ctx, f.storeID, f.terminalID, f.userID)
	f.orders.AddItem(ctx, &AddItemInput{OrderID: teaOrder.ID, ItemPriceID: teaID})
	if _, err := f.orders.CompleteOrder(ctx, teaOrder.ID, f.terminalID, f.userID, []PaymentInput{
		{PaymentMethodID: f.cardID, Amount: dec("2.50")},
	}); err != nil {
		t.Fatalf("tea order: %v", err)
	}

	report, err := f.reports.DailyReport(ctx, f.clock.LocalNow())
	if err != nil {
		t.Fatalf("DailyReport: %v", err)
	}

	if report.OrderCount != 3 {
		t.Errorf("order count = %d, want 3", report.OrderCount)
	}
	// 2 x 3.30 + 2.50
	if !report.NetSales.Equal(dec("9.10")) {
		t.Errorf("net sales = %s, want 9.10", report.NetSales)
	}
	if !report.TaxTotal.Equal(dec("0.60")) {
		t.Errorf("tax total = %s, want 0.60", report.TaxTotal)
	}

	if len(report.TenderBreaks) != 2 {
		t.Fatalf("tender breakdowns = %d, want 2", len(report.TenderBreaks))
	}
	// cash leads: 6.60 over 2.50
	if report.TenderBreaks[0].MethodName != "Cash" || !report.TenderBreaks[0].Amount.Equal(dec("6.60")) {
		t.Errorf("top tender = %+v", report.TenderBreaks[0])
	}

	if len(report.TopItems) == 0 || report.TopItems[0].Description != "Coffee" {
		t.Errorf("top items = %+v", report.TopItems)
	}
	if !report.TopItems[0].Quantity.Equal(dec("2")) {
		t.Errorf("coffee qty = %s, want 2", report.TopItems[0].Quantity)
	}
}

func TestDailyReportSeparatesRefundsAndVoids(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	priceID := f.seedItem("Coffee", "3.00", "", false)
	f.openShift("100.00")

	sold, _ := f.orders.StartOrder(ctx, f.storeID, f.terminalID, f.userID)
	f.orders.AddItem(ctx, &AddItemInput{OrderID: sold.ID, ItemPriceID: priceID})
	f.orders.CompleteOrder(ctx, sold.ID, f.terminalID, f.userID, []PaymentInput{
		{PaymentMethodID: f.cashID, Amount: dec("3.00")},
	})

	refunded, _ := f.orders.StartOrder(ctx, f.storeID, f.terminalID, f.userID)
	f.orders.AddItem(ctx, &AddItemInput{OrderID: refunded.ID, ItemPriceID: priceID})
	f.orders.CompleteOrder(ctx, refunded.ID, f.terminalID, f.userID, []PaymentInput{
		{PaymentMethodID: f.cashID, Amount: dec("3.00")},
	})
	f.orders.RefundOrder(ctx, refunded.ID, f.userID, []PaymentInput{
		{PaymentMethodID: f.cashID, Amount: dec("3.00")},
	})

	voided, _ := f.orders.StartOrder(ctx, f.storeID, f.terminalID, f.userID)
	f.orders.VoidOrder(ctx, voided.ID, f.userID)

	report, err := f.reports.DailyReport(ctx, f.clock.LocalNow())
	if err != nil {
		t.Fatalf("DailyReport: %v", err)
	}

	if report.OrderCount != 1 {
		t.Errorf("order count = %d, want 1", report.OrderCount)
	}
	if report.RefundCount != 1 {
		t.Errorf("refund count = %d, want 1", report.RefundCount)
	}
	if report.VoidCount != 1 {
		t.Errorf("void count = %d, want 1", report.VoidCount)
	}
	if !report.NetSales.Equal(dec("3.00")) {
		t.Errorf("net sales = %s, want 3.00", report.NetSales)
	}
	if !report.RefundTotal.Equal(dec("3.00")) {
		t.Errorf("refund total = %s, want 3.00", report.RefundTotal)
	}
	if !report.GrossSales.Equal(dec("6.00")) {
		t.Errorf("gross sales = %s, want 6.00", report.GrossSales)
	}
	// average ticket is taken over gross sales, before refunds
	if !report.AverageTicket.Equal(dec("6.00")) {
		t.Errorf("average ticket = %s, want 6.00", report.AverageTicket)
	}
	// refunded order's line must not appear in item rollups
	for _, it := range report.TopItems {
		if !it.Quantity.Equal(dec("1")) {
			t.Errorf("item rollup includes refunded lines: %+v", it)
		}
	}
}

func TestDailyReportEmptyDay(t *testing.T) {
	f := newFixture()
	report, err := f.reports.DailyReport(context.Background(), f.clock.LocalNow())
	if err != nil {
		t.Fatalf("DailyReport: %v", err)
	}
	if report.OrderCount != 0 || !report.NetSales.IsZero() || !report.AverageTicket.IsZero() {
		t.Errorf("empty day report = %+v", report)
	}
	if len(report.TenderBreaks) != 0 || len(report.TopItems) != 0 {
		t.Errorf("empty day should have empty breakdowns")
	}
}

func TestDailyReportCategoryBreakdown(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	priceID := f.seedItem("Coffee", "3.00", "", false)
	f.openShift("100.00")

	order, _ := f.orders.StartOrder(ctx, f.storeID, f.terminalID, f.userID)
	f.orders.AddItem(ctx, &AddItemInput{OrderID: order.ID, ItemPriceID: priceID})
	if _, err := f.orders.CompleteOrder(ctx, order.ID, f.terminalID, f.userID, []PaymentInput{
		{PaymentMethodID: f.cashID, Amount: dec("3.00")},
	}); err != nil {
		t.Fatalf("CompleteOrder: %v", err)
	}

	report, err := f.reports.DailyReport(ctx, f.clock.LocalNow())
	if err != nil {
		t.Fatalf("DailyReport: %v", err)
	}
	if len(report.CategoryBreaks) != 1 {
		t.Fatalf("category breakdowns = %d, want 1", len(report.CategoryBreaks))
	}
	if report.CategoryBreaks[0].Category != "Drinks" || !report.CategoryBreaks[0].Amount.Equal(dec("3.00")) {
		t.Errorf("category breakdown = %+v", report.CategoryBreaks[0])
	}
}

func TestMonthlyReportGroupsByDay(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	priceID := f.seedItem("Coffee", "3.00", "", false)
	f.openShift("100.00")

	// one sale on the 14th
	order, _ := f.orders.StartOrder(ctx, f.storeID, f.terminalID, f.userID)
	f.orders.AddItem(ctx, &AddItemInput{OrderID: order.ID, ItemPriceID: priceID})
	if _, err := f.orders.CompleteOrder(ctx, order.ID, f.terminalID, f.userID, []PaymentInput{
		{PaymentMethodID: f.cashID, Amount: dec("3.00")},
	}); err != nil {
		t.Fatalf("CompleteOrder day 1: %v", err)
	}

	// another on the 15th
	f.clock.now = f.clock.now.Add(24 * time.Hour)
	order2, _ := f.orders.StartOrder(ctx, f.storeID, f.terminalID, f.userID)
	f.orders.AddItem(ctx, &AddItemInput{OrderID: order2.ID, ItemPriceID: priceID})
	if _, err := f.orders.CompleteOrder(ctx, order2.ID, f.terminalID, f.userID, []PaymentInput{
		{PaymentMethodID: f.cashID, Amount: dec("3.00")},
	}); err != nil {
		t.Fatalf("CompleteOrder day 2: %v", err)
	}

	report, err := f.reports.MonthlyReport(ctx, 2026, time.March)
	if err != nil {
		t.Fatalf("MonthlyReport: %v", err)
	}
	if report.Month != "2026-03" {
		t.Errorf("month = %q", report.Month)
	}
	if report.OrderCount != 2 {
		t.Errorf("order count = %d, want 2", report.OrderCount)
	}
	if !report.NetSales.Equal(dec("6.00")) {
		t.Errorf("net sales = %s, want 6.00", report.NetSales)
	}
	if len(report.Days) != 2 {
		t.Fatalf("days = %d, want 2", len(report.Days))
	}
	if report.Days[0].Date != "2026-03-14" || report.Days[1].Date != "2026-03-15" {
		t.Errorf("days not sorted: %+v", report.Days)
	}
}
