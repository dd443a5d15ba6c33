package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/cafepos-api/internal/application/service"
	"github.com/sangkips/cafepos-api/internal/domain/enum"
	"github.com/sangkips/cafepos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/cafepos-api/internal/presentation/http/dto/response"
	"github.com/shopspring/decimal"
)

// ShiftHandler handles shift and cash drawer HTTP requests
type ShiftHandler struct {
	shiftService *service.ShiftService
	storeID      uuid.UUID
}

// NewShiftHandler creates a new shift handler
func NewShiftHandler(shiftService *service.ShiftService, storeID uuid.UUID) *ShiftHandler {
	return &ShiftHandler{shiftService: shiftService, storeID: storeID}
}

// Open handles opening a shift on a terminal
// @Summary Open Shift
// @Description Open a shift with a counted opening float
// @Tags shifts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.OpenShiftRequest true "Opening float"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /shifts [post]
func (h *ShiftHandler) Open(c *gin.Context) {
	var req request.OpenShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	openingFloat, err := decimal.NewFromString(req.OpeningFloat)
	if err != nil {
		response.BadRequest(c, "Invalid opening float")
		return
	}

	shift, err := h.shiftService.OpenShift(c.Request.Context(), h.storeID, req.TerminalID, *userID, openingFloat)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Shift opened", gin.H{"shift": shift})
}

// Current handles fetching the open shift for a terminal
// @Summary Current Shift
// @Tags shifts
// @Security BearerAuth
// @Produce json
// @Param terminal_id query string true "Terminal ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /shifts/current [get]
func (h *ShiftHandler) Current(c *gin.Context) {
	terminalID, err := uuid.Parse(c.Query("terminal_id"))
	if err != nil {
		response.BadRequest(c, "Invalid terminal ID")
		return
	}

	shift, err := h.shiftService.GetOpenShift(c.Request.Context(), terminalID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shift retrieved successfully", gin.H{"shift": shift})
}

// Close handles reconciling and closing a shift
// @Summary Close Shift
// @Description Close the shift and record counted cash against the expected drawer amount
// @Tags shifts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Shift ID"
// @Param request body request.CloseShiftRequest true "Counted cash"
// @Success 200 {object} response.APIResponse
// @Router /shifts/{id}/close [post]
func (h *ShiftHandler) Close(c *gin.Context) {
	shiftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid shift ID")
		return
	}

	var req request.CloseShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	countedCash, err := decimal.NewFromString(req.CountedCash)
	if err != nil {
		response.BadRequest(c, "Invalid counted cash")
		return
	}

	shift, err := h.shiftService.CloseShift(c.Request.Context(), shiftID, *userID, countedCash)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shift closed", gin.H{"shift": shift})
}

// Summary handles fetching a shift's reconciliation summary
// @Summary Shift Summary
// @Tags shifts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Shift ID"
// @Success 200 {object} response.APIResponse
// @Router /shifts/{id}/summary [get]
func (h *ShiftHandler) Summary(c *gin.Context) {
	shiftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid shift ID")
		return
	}

	summary, err := h.shiftService.GetShiftSummary(c.Request.Context(), shiftID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shift summary retrieved successfully", gin.H{"summary": summary})
}

// RecordDrawerEvent handles recording a manual cash drawer movement
// @Summary Record Drawer Event
// @Description Record a pay-in, pay-out, cash drop, or no-sale against an open shift
// @Tags shifts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Shift ID"
// @Param request body request.CashDrawerEventRequest true "Event"
// @Success 201 {object} response.APIResponse
// @Router /shifts/{id}/drawer-events [post]
func (h *ShiftHandler) RecordDrawerEvent(c *gin.Context) {
	shiftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid shift ID")
		return
	}

	var req request.CashDrawerEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	eventType, ok := parseDrawerEventType(req.Type)
	if !ok {
		response.BadRequest(c, "Invalid drawer event type")
		return
	}

	amount := decimal.Zero
	if req.Amount != "" {
		amount, err = decimal.NewFromString(req.Amount)
		if err != nil {
			response.BadRequest(c, "Invalid amount")
			return
		}
	}

	event, err := h.shiftService.RecordCashDrawerEvent(c.Request.Context(), shiftID, *userID, eventType, amount, req.Note)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Drawer event recorded", gin.H{"event": event})
}

func parseDrawerEventType(s string) (enum.CashDrawerEventType, bool) {
	switch s {
	case "pay_in":
		return enum.CashDrawerEventPayIn, true
	case "pay_out":
		return enum.CashDrawerEventPayOut, true
	case "cash_drop":
		return enum.CashDrawerEventCashDrop, true
	case "no_sale":
		return enum.CashDrawerEventNoSale, true
	}
	return 0, false
}
