package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/cafepos-api/internal/application/service"
	"github.com/sangkips/cafepos-api/internal/presentation/http/dto/response"
)

// PaymentHandler handles payment method and payment HTTP requests
type PaymentHandler struct {
	paymentService *service.PaymentService
	storeID        uuid.UUID
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService, storeID uuid.UUID) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, storeID: storeID}
}

// ListMethods handles listing active payment methods
// @Summary List Payment Methods
// @Tags payments
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /payment-methods [get]
func (h *PaymentHandler) ListMethods(c *gin.Context) {
	methods, err := h.paymentService.ListMethods(c.Request.Context(), h.storeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment methods retrieved successfully", gin.H{"payment_methods": methods})
}

// GetOrderPayments handles listing an order's payment rows
// @Summary Get Order Payments
// @Tags payments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} response.APIResponse
// @Router /orders/{id}/payments [get]
func (h *PaymentHandler) GetOrderPayments(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	payments, err := h.paymentService.GetOrderPayments(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments retrieved successfully", gin.H{"payments": payments})
}
