package request

import "github.com/google/uuid"

// OpenShiftRequest represents a shift open request
type OpenShiftRequest struct {
	TerminalID   uuid.UUID `json:"terminal_id" binding:"required"`
	OpeningFloat string    `json:"opening_float" binding:"required"`
}

// CloseShiftRequest represents a shift close request
type CloseShiftRequest struct {
	CountedCash string `json:"counted_cash" binding:"required"`
}

// CashDrawerEventRequest represents a manual drawer movement request.
// Type is one of pay_in, pay_out, cash_drop, no_sale.
type CashDrawerEventRequest struct {
	Type   string  `json:"type" binding:"required,oneof=pay_in pay_out cash_drop no_sale"`
	Amount string  `json:"amount"`
	Note   *string `json:"note" binding:"omitempty,max=255"`
}
