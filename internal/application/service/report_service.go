package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cafepos-api/internal/domain/entity"
	"github.com/sangkips/cafepos-api/internal/domain/enum"
	"github.com/sangkips/cafepos-api/internal/domain/pricing"
	"github.com/sangkips/cafepos-api/internal/domain/repository"
	"github.com/sangkips/cafepos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// DailySalesReport aggregates one business day's completed sales
type DailySalesReport struct {
	Date           string              `json:"date"`
	OrderCount     int                 `json:"order_count"`
	RefundCount    int                 `json:"refund_count"`
	VoidCount      int                 `json:"void_count"`
	GrossSales     decimal.Decimal     `json:"gross_sales"`
	NetSales       decimal.Decimal     `json:"net_sales"`
	TaxTotal       decimal.Decimal     `json:"tax_total"`
	DiscountTotal  decimal.Decimal     `json:"discount_total"`
	RefundTotal    decimal.Decimal     `json:"refund_total"`
	AverageTicket  decimal.Decimal     `json:"average_ticket"`
	TenderBreaks   []TenderBreakdown   `json:"tenders"`
	CategoryBreaks []CategoryBreakdown `json:"categories"`
	TopItems       []ItemSales         `json:"top_items"`
}

// MonthlySalesReport aggregates a calendar month as per-day rows plus totals
type MonthlySalesReport struct {
	Month      string           `json:"month"`
	OrderCount int              `json:"order_count"`
	GrossSales decimal.Decimal  `json:"gross_sales"`
	NetSales   decimal.Decimal  `json:"net_sales"`
	TaxTotal   decimal.Decimal  `json:"tax_total"`
	Days       []DailySalesRow  `json:"days"`
}

// DailySalesRow is one day's line in the monthly report
type DailySalesRow struct {
	Date       string          `json:"date"`
	OrderCount int             `json:"order_count"`
	GrossSales decimal.Decimal `json:"gross_sales"`
	TaxTotal   decimal.Decimal `json:"tax_total"`
}

// TenderBreakdown is sales taken through one payment method
type TenderBreakdown struct {
	PaymentMethodID uuid.UUID       `json:"payment_method_id"`
	MethodName      string          `json:"method_name"`
	Amount          decimal.Decimal `json:"amount"`
	Count           int             `json:"count"`
}

// CategoryBreakdown is sales attributed to one menu category
type CategoryBreakdown struct {
	Category string          `json:"category"`
	Quantity decimal.Decimal `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
}

// ItemSales is one item's sold quantity and revenue
type ItemSales struct {
	ItemID      *uuid.UUID      `json:"item_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}

const topItemsLimit = 10

// ReportService builds sales reports by re-aggregating persisted orders,
// lines, and payments. Reports never read the live catalog prices; all
// monetary figures come from order-time snapshots.
type ReportService struct {
	reportRepo  repository.ReportRepository
	menuRepo    repository.MenuRepository
	paymentRepo repository.PaymentRepository
}

// NewReportService creates a new report service
func NewReportService(reportRepo repository.ReportRepository, menuRepo repository.MenuRepository, paymentRepo repository.PaymentRepository) *ReportService {
	return &ReportService{
		reportRepo:  reportRepo,
		menuRepo:    menuRepo,
		paymentRepo: paymentRepo,
	}
}

// DailyReport aggregates the business day containing the given date.
// Refunded orders contribute to the refund totals but not to net sales.
func (s *ReportService) DailyReport(ctx context.Context, date time.Time) (*DailySalesReport, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)

	orders, err := s.reportRepo.CompletedOrdersBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	voided, err := s.reportRepo.VoidedOrdersBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	report := &DailySalesReport{
		Date:           start.Format("2006-01-02"),
		VoidCount:      len(voided),
		GrossSales:     decimal.Zero,
		NetSales:       decimal.Zero,
		TaxTotal:       decimal.Zero,
		DiscountTotal:  decimal.Zero,
		RefundTotal:    decimal.Zero,
		AverageTicket:  decimal.Zero,
		TenderBreaks:   []TenderBreakdown{},
		CategoryBreaks: []CategoryBreakdown{},
		TopItems:       []ItemSales{},
	}

	orderIDs := make([]uuid.UUID, 0, len(orders))
	salesOrderIDs := make(map[uuid.UUID]bool)
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
		report.GrossSales = report.GrossSales.Add(o.Total)
		report.TaxTotal = report.TaxTotal.Add(o.TaxTotal)
		report.DiscountTotal = report.DiscountTotal.Add(o.DiscountTotal)
		if o.Status == enum.OrderStatusRefunded {
			report.RefundCount++
			report.RefundTotal = report.RefundTotal.Add(o.Total)
			continue
		}
		report.OrderCount++
		report.NetSales = report.NetSales.Add(o.Total)
		salesOrderIDs[o.ID] = true
	}

	if report.OrderCount > 0 {
		report.AverageTicket = pricing.RoundMoney(report.GrossSales.Div(decimal.NewFromInt(int64(report.OrderCount))))
	}
	report.GrossSales = pricing.RoundMoney(report.GrossSales)
	report.NetSales = pricing.RoundMoney(report.NetSales)
	report.TaxTotal = pricing.RoundMoney(report.TaxTotal)
	report.DiscountTotal = pricing.RoundMoney(report.DiscountTotal)
	report.RefundTotal = pricing.RoundMoney(report.RefundTotal)

	if len(orderIDs) == 0 {
		return report, nil
	}

	tenders, err := s.tenderBreakdown(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	report.TenderBreaks = tenders

	lines, err := s.reportRepo.LinesForOrders(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	// item and category rollups count only orders that stayed sold
	soldLines := make([]entity.OrderLine, 0, len(lines))
	for _, l := range lines {
		if salesOrderIDs[l.OrderID] {
			soldLines = append(soldLines, l)
		}
	}

	report.TopItems = topItems(soldLines)
	categories, err := s.categoryBreakdown(ctx, soldLines)
	if err != nil {
		return nil, err
	}
	report.CategoryBreaks = categories

	return report, nil
}

// MonthlyReport aggregates one calendar month into daily rows
func (s *ReportService) MonthlyReport(ctx context.Context, year int, month time.Month) (*MonthlySalesReport, error) {
	if month < time.January || month > time.December {
		return nil, apperror.NewValidationError("Invalid month")
	}

	loc := time.Local
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	orders, err := s.reportRepo.CompletedOrdersBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	report := &MonthlySalesReport{
		Month:      start.Format("2006-01"),
		GrossSales: decimal.Zero,
		NetSales:   decimal.Zero,
		TaxTotal:   decimal.Zero,
		Days:       []DailySalesRow{},
	}

	byDay := make(map[string]*DailySalesRow)
	for _, o := range orders {
		if o.CompletedAt == nil {
			continue
		}
		report.GrossSales = report.GrossSales.Add(o.Total)
		report.TaxTotal = report.TaxTotal.Add(o.TaxTotal)
		if o.Status == enum.OrderStatusRefunded {
			continue
		}
		report.OrderCount++
		report.NetSales = report.NetSales.Add(o.Total)

		day := o.CompletedAt.Format("2006-01-02")
		row, ok := byDay[day]
		if !ok {
			row = &DailySalesRow{Date: day, GrossSales: decimal.Zero, TaxTotal: decimal.Zero}
			byDay[day] = row
		}
		row.OrderCount++
		row.GrossSales = row.GrossSales.Add(o.Total)
		row.TaxTotal = row.TaxTotal.Add(o.TaxTotal)
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	for _, day := range days {
		row := byDay[day]
		row.GrossSales = pricing.RoundMoney(row.GrossSales)
		row.TaxTotal = pricing.RoundMoney(row.TaxTotal)
		report.Days = append(report.Days, *row)
	}

	report.GrossSales = pricing.RoundMoney(report.GrossSales)
	report.NetSales = pricing.RoundMoney(report.NetSales)
	report.TaxTotal = pricing.RoundMoney(report.TaxTotal)
	return report, nil
}

func (s *ReportService) tenderBreakdown(ctx context.Context, orderIDs []uuid.UUID) ([]TenderBreakdown, error) {
	payments, err := s.reportRepo.PaymentsForOrders(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	byMethod := make(map[uuid.UUID]*TenderBreakdown)
	methodIDs := make([]uuid.UUID, 0)
	for _, p := range payments {
		if p.IsRefund {
			continue
		}
		b, ok := byMethod[p.PaymentMethodID]
		if !ok {
			b = &TenderBreakdown{PaymentMethodID: p.PaymentMethodID, Amount: decimal.Zero}
			byMethod[p.PaymentMethodID] = b
			methodIDs = append(methodIDs, p.PaymentMethodID)
		}
		b.Amount = b.Amount.Add(p.Amount)
		b.Count++
	}

	methods, err := s.paymentRepo.GetMethodsByIDs(ctx, methodIDs)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(methods))
	for _, m := range methods {
		names[m.ID] = m.Name
	}

	result := make([]TenderBreakdown, 0, len(byMethod))
	for _, id := range methodIDs {
		b := byMethod[id]
		b.MethodName = names[id]
		b.Amount = pricing.RoundMoney(b.Amount)
		result = append(result, *b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Amount.GreaterThan(result[j].Amount) })
	return result, nil
}

func (s *ReportService) categoryBreakdown(ctx context.Context, lines []entity.OrderLine) ([]CategoryBreakdown, error) {
	itemIDs := make([]uuid.UUID, 0)
	seen := make(map[uuid.UUID]bool)
	for _, l := range lines {
		if l.ItemID != nil && !seen[*l.ItemID] {
			seen[*l.ItemID] = true
			itemIDs = append(itemIDs, *l.ItemID)
		}
	}

	categoryNames, err := s.menuRepo.CategoryNamesForItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string]*CategoryBreakdown)
	order := make([]string, 0)
	for _, l := range lines {
		category := "Uncategorized"
		if l.ItemID != nil {
			if name, ok := categoryNames[*l.ItemID]; ok {
				category = name
			}
		}
		b, ok := byCategory[category]
		if !ok {
			b = &CategoryBreakdown{Category: category, Quantity: decimal.Zero, Amount: decimal.Zero}
			byCategory[category] = b
			order = append(order, category)
		}
		b.Quantity = b.Quantity.Add(l.Qty)
		b.Amount = b.Amount.Add(l.LineTotal)
	}

	result := make([]CategoryBreakdown, 0, len(byCategory))
	for _, category := range order {
		b := byCategory[category]
		b.Amount = pricing.RoundMoney(b.Amount)
		result = append(result, *b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Amount.GreaterThan(result[j].Amount) })
	return result, nil
}

func topItems(lines []entity.OrderLine) []ItemSales {
	type key struct {
		hasItem bool
		itemID  uuid.UUID
		desc    string
	}
	byItem := make(map[key]*ItemSales)
	order := make([]key, 0)
	for _, l := range lines {
		k := key{desc: l.Description}
		if l.ItemID != nil {
			k.hasItem = true
			k.itemID = *l.ItemID
		}
		it, ok := byItem[k]
		if !ok {
			it = &ItemSales{Description: l.Description, Quantity: decimal.Zero, Amount: decimal.Zero}
			if l.ItemID != nil {
				id := *l.ItemID
				it.ItemID = &id
			}
			byItem[k] = it
			order = append(order, k)
		}
		it.Quantity = it.Quantity.Add(l.Qty)
		it.Amount = it.Amount.Add(l.LineTotal)
	}

	result := make([]ItemSales, 0, len(byItem))
	for _, k := range order {
		it := byItem[k]
		it.Amount = pricing.RoundMoney(it.Amount)
		result = append(result, *it)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Amount.GreaterThan(result[j].Amount) })
	if len(result) > topItemsLimit {
		result = result[:topItemsLimit]
	}
	return result
}
