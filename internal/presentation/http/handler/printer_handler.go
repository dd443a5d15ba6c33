package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/cafepos-api/internal/application/service"
	"github.com/sangkips/cafepos-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles receipt printing HTTP requests
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetReceipt handles fetching the rendered receipt data for an order
// @Summary Get Receipt
// @Description Get the receipt payload for a completed or refunded order
// @Tags printing
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} response.APIResponse
// @Router /orders/{id}/receipt [get]
func (h *PrinterHandler) GetReceipt(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	receipt, err := h.printerService.BuildReceipt(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", gin.H{"receipt": receipt})
}

// Reprint handles reprinting an order's receipt
// @Summary Reprint Receipt
// @Tags printing
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} response.APIResponse
// @Router /orders/{id}/receipt/print [post]
func (h *PrinterHandler) Reprint(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.printerService.PrintOrderReceipt(c.Request.Context(), orderID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt sent to printer", nil)
}

// Status handles reporting printer connectivity
// @Summary Printer Status
// @Tags printing
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /printer/status [get]
func (h *PrinterHandler) Status(c *gin.Context) {
	response.OK(c, "Printer status retrieved successfully", gin.H{
		"connected": h.printerService.IsConnected(),
	})
}

// OpenDrawer handles opening the cash drawer without a sale
// @Summary Open Drawer
// @Description Pulse the cash drawer open, e.g. to make change
// @Tags printing
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /printer/drawer [post]
func (h *PrinterHandler) OpenDrawer(c *gin.Context) {
	if err := h.printerService.OpenDrawer(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Drawer opened", nil)
}

// TestPrint handles sending a test page to the configured printer
// @Summary Test Print
// @Tags printing
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /printer/test [post]
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	if err := h.printerService.TestPrint(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Test page sent to printer", nil)
}
