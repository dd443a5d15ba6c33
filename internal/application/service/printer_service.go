package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/cafepos-api/internal/domain/entity"
	"github.com/sangkips/cafepos-api/internal/domain/enum"
	"github.com/sangkips/cafepos-api/internal/domain/repository"
	"github.com/sangkips/cafepos-api/pkg/apperror"
	"github.com/sangkips/cafepos-api/pkg/printer"
)

// PrinterService composes printable receipts from persisted order data and
// renders them to the configured ESC/POS printer.
type PrinterService struct {
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	storeRepo   repository.StoreRepository
	userRepo    repository.UserRepository
	printer     printer.Printer
	charWidth   int
	footer      string
}

// NewPrinterService creates a new printer service
func NewPrinterService(
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	storeRepo repository.StoreRepository,
	userRepo repository.UserRepository,
	p printer.Printer,
	charWidth int,
	footer string,
) *PrinterService {
	return &PrinterService{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		storeRepo:   storeRepo,
		userRepo:    userRepo,
		printer:     p,
		charWidth:   charWidth,
		footer:      footer,
	}
}

// BuildReceipt resolves an order into a printable receipt value object.
// Every figure on the receipt comes from order-time snapshots.
func (s *PrinterService) BuildReceipt(ctx context.Context, orderID uuid.UUID) (*entity.Receipt, error) {
	order, err := s.orderRepo.GetWithLines(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.Status != enum.OrderStatusCompleted && order.Status != enum.OrderStatusRefunded {
		return nil, apperror.NewInvalidStateError("Only settled orders have receipts")
	}

	store, err := s.storeRepo.GetStore(ctx, order.StoreID)
	if err != nil {
		return nil, err
	}
	terminal, err := s.storeRepo.GetTerminal(ctx, order.TerminalID)
	if err != nil {
		return nil, err
	}

	receipt := &entity.Receipt{
		ReceiptNumber: order.ReceiptNumber,
		Subtotal:      order.Subtotal,
		TaxTotal:      order.TaxTotal,
		Total:         order.Total,
		TotalPaid:     order.TotalPaid,
		ChangeDue:     order.ChangeDue,
		Footer:        s.footer,
	}
	if store != nil {
		receipt.Header = entity.ReceiptHeader{
			StoreName: store.Name,
			Address:   store.AddressLine1,
			Phone:     store.Phone,
			TaxID:     store.TaxID,
		}
	}
	if terminal != nil {
		receipt.Header.Terminal = terminal.Name
	}
	if order.CompletedAt != nil {
		receipt.Date = order.CompletedAt.Format("2006-01-02 15:04:05")
	}
	if order.CompletedBy != nil {
		user, err := s.userRepo.GetByID(ctx, *order.CompletedBy)
		if err != nil {
			return nil, err
		}
		if user != nil {
			receipt.Cashier = user.DisplayName
		}
	}

	for _, line := range order.Lines {
		rl := entity.ReceiptLine{
			Description: line.Description,
			Qty:         line.Qty,
			UnitPrice:   line.UnitPrice,
			LineTotal:   line.LineTotal,
		}
		for _, m := range line.Modifiers {
			rl.Modifiers = append(rl.Modifiers, entity.ReceiptModifier{
				Name:       m.OptionName,
				PriceDelta: m.PriceDelta,
			})
		}
		if line.Note != nil {
			rl.Note = *line.Note
		}
		receipt.Lines = append(receipt.Lines, rl)
	}

	payments, err := s.paymentRepo.GetByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
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
		return nil, err
	}
	methodNames := make(map[uuid.UUID]string, len(methods))
	cashMethods := make(map[uuid.UUID]bool, len(methods))
	for _, m := range methods {
		methodNames[m.ID] = m.Name
		cashMethods[m.ID] = m.Type == enum.PaymentMethodTypeCash
	}
	for _, p := range payments {
		receipt.Payments = append(receipt.Payments, entity.ReceiptPayment{
			Method:   methodNames[p.PaymentMethodID],
			Amount:   p.Amount,
			IsRefund: p.IsRefund,
		})
		if !p.IsRefund && cashMethods[p.PaymentMethodID] {
			receipt.CashTendered = true
		}
	}

	return receipt, nil
}

// PrintOrderReceipt builds and prints the receipt for a settled order
func (s *PrinterService) PrintOrderReceipt(ctx context.Context, orderID uuid.UUID) error {
	receipt, err := s.BuildReceipt(ctx, orderID)
	if err != nil {
		return err
	}
	return s.printer.Print(FormatReceipt(receipt, s.charWidth))
}

// OpenDrawer pulses the cash drawer without printing, for no-sale opens
func (s *PrinterService) OpenDrawer(ctx context.Context) error {
	return s.printer.KickDrawer()
}

// TestPrint prints a short alignment test page
func (s *PrinterService) TestPrint(ctx context.Context) error {
	doc := printer.NewDocument(s.charWidth)
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		Text("TEST PAGE").
		SetBold(false).
		Separator('-').
		SetAlign(printer.AlignLeft).
		KeyValue("Status", "OK").
		FeedLines(3).
		Cut()
	return s.printer.Print(doc.Bytes())
}

// IsConnected reports whether the configured printer is reachable
func (s *PrinterService) IsConnected() bool {
	return s.printer.IsConnected()
}

// FormatReceipt renders a receipt into an ESC/POS byte stream. Cash sales
// open the drawer as part of the same document so the pop and the paper come
// out together.
func FormatReceipt(r *entity.Receipt, charWidth int) []byte {
	doc := printer.NewDocument(charWidth)
	if r.CashTendered {
		doc.OpenDrawer()
	}

	doc.SetAlign(printer.AlignCenter).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal)
	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.TaxID != "" {
		doc.TextF("Tax ID: %s", r.Header.TaxID)
	}

	doc.Separator('=').SetAlign(printer.AlignLeft)
	doc.KeyValue("Receipt", r.ReceiptNumber)
	if r.Date != "" {
		doc.KeyValue("Date", r.Date)
	}
	if r.Header.Terminal != "" {
		doc.KeyValue("Terminal", r.Header.Terminal)
	}
	if r.Cashier != "" {
		doc.KeyValue("Cashier", r.Cashier)
	}
	doc.Separator('-')

	for _, line := range r.Lines {
		doc.ItemLine(line.Qty.String(), line.Description, line.LineTotal.StringFixed(2))
		for _, m := range line.Modifiers {
			if m.PriceDelta.IsZero() {
				doc.SubLine(m.Name)
			} else {
				doc.SubLine(fmt.Sprintf("%s %s", m.Name, m.PriceDelta.StringFixed(2)))
			}
		}
		if line.Note != "" {
			doc.SubLine("* " + line.Note)
		}
	}

	doc.Separator('-')
	doc.KeyValue("Subtotal", r.Subtotal.StringFixed(2))
	doc.KeyValue("Tax", r.TaxTotal.StringFixed(2))
	doc.SetBold(true).
		KeyValue("TOTAL", r.Total.StringFixed(2)).
		SetBold(false)
	doc.Separator('-')

	for _, p := range r.Payments {
		label := p.Method
		if p.IsRefund {
			label = "Refund " + p.Method
		}
		doc.KeyValue(label, p.Amount.StringFixed(2))
	}
	doc.KeyValue("Paid", r.TotalPaid.StringFixed(2))
	if !r.ChangeDue.IsZero() {
		doc.KeyValue("Change", r.ChangeDue.StringFixed(2))
	}

	if r.Footer != "" {
		doc.Separator('=').
			SetAlign(printer.AlignCenter).
			Text(r.Footer)
	}

	doc.FeedLines(4).Cut()
	return doc.Bytes()
}
