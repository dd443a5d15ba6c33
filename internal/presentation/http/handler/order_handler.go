package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/cafepos-api/internal/application/service"
	"github.com/sangkips/cafepos-api/internal/domain/enum"
	"github.com/sangkips/cafepos-api/internal/domain/repository"
	"github.com/sangkips/cafepos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/cafepos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/cafepos-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

var errInvalidAmount = errors.New("invalid payment amount")

// OrderHandler handles order lifecycle HTTP requests
type OrderHandler struct {
	orderService   *service.OrderService
	paymentService *service.PaymentService
	storeID        uuid.UUID
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, paymentService *service.PaymentService, storeID uuid.UUID) *OrderHandler {
	return &OrderHandler{
		orderService:   orderService,
		paymentService: paymentService,
		storeID:        storeID,
	}
}

// Start handles opening a new order
// @Summary Start Order
// @Description Open a new empty order on a terminal
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.StartOrderRequest true "Terminal"
// @Success 201 {object} response.APIResponse
// @Router /orders [post]
func (h *OrderHandler) Start(c *gin.Context) {
	var req request.StartOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	order, err := h.orderService.StartOrder(c.Request.Context(), h.storeID, req.TerminalID, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order started", gin.H{"order": order})
}

// Get handles fetching a single order with its lines
// @Summary Get Order
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", gin.H{"order": order})
}

// List handles filtered order listing
// @Summary List Orders
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param status query string false "Order status filter"
// @Param terminal_id query string false "Terminal filter"
// @Param shift_id query string false "Shift filter"
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Param search query string false "Receipt number search"
// @Success 200 {object} response.APIResponse
// @Router /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	params := &repository.OrderFilterParams{
		Pagination: pagination.DefaultPagination(),
		Search:     c.Query("search"),
	}

	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		params.Pagination.Page = page
	}
	if perPage, err := strconv.Atoi(c.Query("per_page")); err == nil {
		params.Pagination.PerPage = perPage
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status, ok := parseOrderStatus(statusStr)
		if !ok {
			response.BadRequest(c, "Invalid status filter")
			return
		}
		params.Status = &status
	}

	if terminalStr := c.Query("terminal_id"); terminalStr != "" {
		terminalID, err := uuid.Parse(terminalStr)
		if err != nil {
			response.BadRequest(c, "Invalid terminal ID")
			return
		}
		params.TerminalID = &terminalID
	}

	if shiftStr := c.Query("shift_id"); shiftStr != "" {
		shiftID, err := uuid.Parse(shiftStr)
		if err != nil {
			response.BadRequest(c, "Invalid shift ID")
			return
		}
		params.ShiftID = &shiftID
	}

	if startStr := c.Query("start_date"); startStr != "" {
		start, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			response.BadRequest(c, "Invalid start date format, use YYYY-MM-DD")
			return
		}
		params.StartDate = &start
	}
	if endStr := c.Query("end_date"); endStr != "" {
		end, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			response.BadRequest(c, "Invalid end date format, use YYYY-MM-DD")
			return
		}
		end = end.Add(24*time.Hour - time.Nanosecond)
		params.EndDate = &end
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// ListHeld handles listing held orders for a terminal
// @Summary List Held Orders
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param terminal_id query string true "Terminal ID"
// @Success 200 {object} response.APIResponse
// @Router /held-orders [get]
func (h *OrderHandler) ListHeld(c *gin.Context) {
	terminalID, err := uuid.Parse(c.Query("terminal_id"))
	if err != nil {
		response.BadRequest(c, "Invalid terminal ID")
		return
	}

	orders, err := h.orderService.ListHeldOrders(c.Request.Context(), terminalID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Held orders retrieved successfully", gin.H{"orders": orders})
}

// AddItem handles adding a menu item to an order
// @Summary Add Item
// @Description Add a priced menu item (with optional modifiers) to an open order
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body request.AddItemRequest true "Item"
// @Success 201 {object} response.APIResponse
// @Router /orders/{id}/lines [post]
func (h *OrderHandler) AddItem(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	line, err := h.orderService.AddItem(c.Request.Context(), &service.AddItemInput{
		OrderID:           orderID,
		ItemPriceID:       req.ItemPriceID,
		ModifierOptionIDs: req.ModifierOptionIDs,
		Note:              req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item added", gin.H{"line": line})
}

// UpdateLineQty handles changing a line's quantity
// @Summary Update Line Quantity
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param lineId path string true "Line ID"
// @Param request body request.UpdateLineQtyRequest true "Quantity"
// @Success 200 {object} response.APIResponse
// @Router /orders/{id}/lines/{lineId} [put]
func (h *OrderHandler) UpdateLineQty(c *gin.Context) {
	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		response.BadRequest(c, "Invalid line ID")
		return
	}

	var req request.UpdateLineQtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	qty, err := decimal.NewFromString(req.Qty)
	if err != nil {
		response.BadRequest(c, "Invalid quantity")
		return
	}

	if err := h.orderService.UpdateLineQty(c.Request.Context(), lineID, qty); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Line updated", nil)
}

// RemoveLine handles removing a line from an order
// @Summary Remove Line
// @Tags orders
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param lineId path string true "Line ID"
// @Success 204
// @Router /orders/{id}/lines/{lineId} [delete]
func (h *OrderHandler) RemoveLine(c *gin.Context) {
	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		response.BadRequest(c, "Invalid line ID")
		return
	}

	if err := h.orderService.RemoveLine(c.Request.Context(), lineID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// SetLineNote handles attaching a kitchen note to a line
// @Summary Set Line Note
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param lineId path string true "Line ID"
// @Param request body request.SetLineNoteRequest true "Note"
// @Success 200 {object} response.APIResponse
// @Router /orders/{id}/lines/{lineId}/note [put]
func (h *OrderHandler) SetLineNote(c *gin.Context) {
	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		response.BadRequest(c, "Invalid line ID")
		return
	}

	var req request.SetLineNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.orderService.SetLineNote(c.Request.Context(), lineID, req.Note); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Note updated", nil)
}

// Hold handles parking an open order
// @Summary Hold Order
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body request.HoldOrderRequest false "Hold name"
// @Success 200 {object} response.APIResponse
// @Router /orders/{id}/hold [post]
func (h *OrderHandler) Hold(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.HoldOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.orderService.HoldOrder(c.Request.Context(), orderID, req.Name); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order held", nil)
}

// Recall handles bringing a held order back to open
// @Summary Recall Order
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} response.APIResponse
// @Router /orders/{id}/recall [post]
func (h *OrderHandler) Recall(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.RecallOrder(c.Request.Context(), orderID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order recalled", nil)
}

// Complete handles tendering payment and finalizing an order
// @Summary Complete Order
// @Description Tender payment, assign a receipt number, and finalize the order
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body request.CompleteOrderRequest true "Payments"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /orders/{id}/complete [post]
func (h *OrderHandler) Complete(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.CompleteOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	payments, err := parsePayments(req.Payments)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.paymentService.ValidateTenders(c.Request.Context(), payments); err != nil {
		response.Error(c, err)
		return
	}

	order, err := h.orderService.CompleteOrder(c.Request.Context(), orderID, req.TerminalID, *userID, payments)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order completed", gin.H{"order": order})
}

// Refund handles refunding a completed order
// @Summary Refund Order
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body request.RefundOrderRequest true "Refund payments"
// @Success 200 {object} response.APIResponse
// @Router /orders/{id}/refund [post]
func (h *OrderHandler) Refund(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.RefundOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	payments, err := parsePayments(req.Payments)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.paymentService.ValidateTenders(c.Request.Context(), payments); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.orderService.RefundOrder(c.Request.Context(), orderID, *userID, payments); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order refunded", nil)
}

// Void handles voiding an open or held order
// @Summary Void Order
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} response.APIResponse
// @Router /orders/{id}/void [post]
func (h *OrderHandler) Void(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.orderService.VoidOrder(c.Request.Context(), orderID, *userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order voided", nil)
}

// parsePayments converts transport payment rows into service inputs,
// rejecting malformed decimal amounts.
func parsePayments(reqs []request.PaymentRequest) ([]service.PaymentInput, error) {
	payments := make([]service.PaymentInput, 0, len(reqs))
	for _, p := range reqs {
		amount, err := decimal.NewFromString(p.Amount)
		if err != nil {
			return nil, errInvalidAmount
		}
		payments = append(payments, service.PaymentInput{
			PaymentMethodID: p.PaymentMethodID,
			Amount:          amount,
			Reference:       p.Reference,
		})
	}
	return payments, nil
}

func parseOrderStatus(s string) (enum.OrderStatus, bool) {
	switch s {
	case "open":
		return enum.OrderStatusOpen, true
	case "held":
		return enum.OrderStatusHeld, true
	case "completed":
		return enum.OrderStatusCompleted, true
	case "voided":
		return enum.OrderStatusVoided, true
	case "refunded":
		return enum.OrderStatusRefunded, true
	}
	return 0, false
}
