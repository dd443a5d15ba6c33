package entity

import "github.com/shopspring/decimal"

// ReceiptHeader holds the store/terminal header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
	Terminal  string `json:"terminal,omitempty"`
}

// ReceiptModifier is a modifier line printed under its item.
type ReceiptModifier struct {
	Name       string          `json:"name"`
	PriceDelta decimal.Decimal `json:"price_delta"`
}

// ReceiptLine represents a single item line on a receipt.
type ReceiptLine struct {
	Description string            `json:"description"`
	Qty         decimal.Decimal   `json:"qty"`
	UnitPrice   decimal.Decimal   `json:"unit_price"`
	LineTotal   decimal.Decimal   `json:"line_total"`
	Modifiers   []ReceiptModifier `json:"modifiers,omitempty"`
	Note        string            `json:"note,omitempty"`
}

// ReceiptPayment is a tender line printed in the payments section.
type ReceiptPayment struct {
	Method   string          `json:"method"`
	Amount   decimal.Decimal `json:"amount"`
	IsRefund bool            `json:"is_refund"`
}

// Receipt is a value object representing a fully-resolved printable receipt.
// It is not stored; it is composed from order data at print time.
type Receipt struct {
	Header        ReceiptHeader    `json:"header"`
	ReceiptNumber string           `json:"receipt_number"`
	Date          string           `json:"date"`
	Cashier       string           `json:"cashier,omitempty"`
	Lines         []ReceiptLine    `json:"lines"`
	Payments      []ReceiptPayment `json:"payments"`
	Subtotal      decimal.Decimal  `json:"subtotal"`
	TaxTotal      decimal.Decimal  `json:"tax_total"`
	Total         decimal.Decimal  `json:"total"`
	TotalPaid     decimal.Decimal  `json:"total_paid"`
	ChangeDue     decimal.Decimal  `json:"change_due"`
	CashTendered  bool             `json:"cash_tendered"`
	Footer        string           `json:"footer,omitempty"`
}
