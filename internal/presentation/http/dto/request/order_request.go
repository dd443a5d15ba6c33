package request

import "github.com/google/uuid"

// StartOrderRequest represents a new order request
type StartOrderRequest struct {
	TerminalID uuid.UUID `json:"terminal_id" binding:"required"`
}

// AddItemRequest represents an add-item request
type AddItemRequest struct {
	ItemPriceID       uuid.UUID   `json:"item_price_id" binding:"required"`
	ModifierOptionIDs []uuid.UUID `json:"modifier_option_ids"`
	Note              *string     `json:"note" binding:"omitempty,max=255"`
}

// UpdateLineQtyRequest represents a quantity change request.
// Qty is a decimal string so fractional quantities survive transport intact.
type UpdateLineQtyRequest struct {
	Qty string `json:"qty" binding:"required"`
}

// SetLineNoteRequest represents a line note change request
type SetLineNoteRequest struct {
	Note *string `json:"note" binding:"omitempty,max=255"`
}

// HoldOrderRequest represents a hold request
type HoldOrderRequest struct {
	Name *string `json:"name" binding:"omitempty,max=100"`
}

// PaymentRequest is one tender within a completion or refund request
type PaymentRequest struct {
	PaymentMethodID uuid.UUID `json:"payment_method_id" binding:"required"`
	Amount          string    `json:"amount" binding:"required"`
	Reference       *string   `json:"reference" binding:"omitempty,max=255"`
}

// CompleteOrderRequest represents an order completion request
type CompleteOrderRequest struct {
	TerminalID uuid.UUID        `json:"terminal_id" binding:"required"`
	Payments   []PaymentRequest `json:"payments" binding:"required,min=1,dive"`
}

// RefundOrderRequest represents a whole-order refund request
type RefundOrderRequest struct {
	Payments []PaymentRequest `json:"payments" binding:"required,min=1,dive"`
}
