package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/cafepos-api/internal/application/service"
	"github.com/sangkips/cafepos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/cafepos-api/internal/presentation/http/dto/response"
	"github.com/shopspring/decimal"
)

// MenuHandler handles menu catalog HTTP requests
type MenuHandler struct {
	menuService *service.MenuService
	storeID     uuid.UUID
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService *service.MenuService, storeID uuid.UUID) *MenuHandler {
	return &MenuHandler{menuService: menuService, storeID: storeID}
}

// GetMenu handles fetching the full sellable menu
// @Summary Get Menu
// @Description Get active categories with their items and prices; managers may include inactive rows
// @Tags menu
// @Security BearerAuth
// @Produce json
// @Param include_inactive query bool false "Include inactive rows (manager only)"
// @Success 200 {object} response.APIResponse
// @Router /menu [get]
func (h *MenuHandler) GetMenu(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true" && IsManager(c)
	menu, err := h.menuService.GetMenu(c.Request.Context(), h.storeID, includeInactive)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu retrieved successfully", gin.H{"menu": menu})
}

// ListTaxCategories handles listing active tax categories
// @Summary List Tax Categories
// @Tags menu
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /tax-categories [get]
func (h *MenuHandler) ListTaxCategories(c *gin.Context) {
	taxes, err := h.menuService.ListTaxCategories(c.Request.Context(), h.storeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax categories retrieved successfully", gin.H{"tax_categories": taxes})
}

// ListModifierGroups handles listing modifier groups with their options
// @Summary List Modifier Groups
// @Tags menu
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /modifier-groups [get]
func (h *MenuHandler) ListModifierGroups(c *gin.Context) {
	groups, err := h.menuService.ListModifierGroups(c.Request.Context(), h.storeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Modifier groups retrieved successfully", gin.H{"modifier_groups": groups})
}

// CreateCategory handles creating a menu category
// @Summary Create Category
// @Tags menu
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateCategoryRequest true "Category"
// @Success 201 {object} response.APIResponse
// @Router /menu/categories [post]
func (h *MenuHandler) CreateCategory(c *gin.Context) {
	var req request.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.menuService.CreateCategory(c.Request.Context(), &service.CreateCategoryInput{
		StoreID:      h.storeID,
		Name:         req.Name,
		DisplayOrder: req.DisplayOrder,
		ColorHex:     req.ColorHex,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Category created", gin.H{"category": category})
}

// CreateItem handles creating a menu item with its prices
// @Summary Create Item
// @Tags menu
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateItemRequest true "Item"
// @Success 201 {object} response.APIResponse
// @Router /menu/items [post]
func (h *MenuHandler) CreateItem(c *gin.Context) {
	var req request.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	prices := make([]service.CreatePriceInput, 0, len(req.Prices))
	for _, p := range req.Prices {
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			response.BadRequest(c, "Invalid price")
			return
		}
		prices = append(prices, service.CreatePriceInput{
			Label:         p.Label,
			Price:         price,
			TaxCategoryID: p.TaxCategoryID,
		})
	}

	item, err := h.menuService.CreateItem(c.Request.Context(), &service.CreateItemInput{
		StoreID:     h.storeID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Prices:      prices,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item created", gin.H{"item": item})
}

// CreateModifierGroup handles creating a modifier group
// @Summary Create Modifier Group
// @Tags menu
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateModifierGroupRequest true "Modifier group"
// @Success 201 {object} response.APIResponse
// @Router /modifier-groups [post]
func (h *MenuHandler) CreateModifierGroup(c *gin.Context) {
	var req request.CreateModifierGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	group, err := h.menuService.CreateModifierGroup(c.Request.Context(), &service.CreateModifierGroupInput{
		StoreID:      h.storeID,
		Name:         req.Name,
		IsRequired:   req.IsRequired,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Modifier group created", gin.H{"modifier_group": group})
}

// CreateModifierOption handles creating a modifier option
// @Summary Create Modifier Option
// @Tags menu
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateModifierOptionRequest true "Modifier option"
// @Success 201 {object} response.APIResponse
// @Router /modifier-options [post]
func (h *MenuHandler) CreateModifierOption(c *gin.Context) {
	var req request.CreateModifierOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	priceDelta := decimal.Zero
	if req.PriceDelta != "" {
		parsed, err := decimal.NewFromString(req.PriceDelta)
		if err != nil {
			response.BadRequest(c, "Invalid price delta")
			return
		}
		priceDelta = parsed
	}

	option, err := h.menuService.CreateModifierOption(c.Request.Context(), &service.CreateModifierOptionInput{
		ModifierGroupID: req.ModifierGroupID,
		Name:            req.Name,
		PriceDelta:      priceDelta,
		DisplayOrder:    req.DisplayOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Modifier option created", gin.H{"modifier_option": option})
}

// CreateTaxCategory handles creating a tax category
// @Summary Create Tax Category
// @Tags menu
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateTaxCategoryRequest true "Tax category"
// @Success 201 {object} response.APIResponse
// @Router /tax-categories [post]
func (h *MenuHandler) CreateTaxCategory(c *gin.Context) {
	var req request.CreateTaxCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	rate, err := decimal.NewFromString(req.Rate)
	if err != nil {
		response.BadRequest(c, "Invalid tax rate")
		return
	}

	tax, err := h.menuService.CreateTaxCategory(c.Request.Context(), h.storeID, req.Name, rate, req.IsInclusive)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Tax category created", gin.H{"tax_category": tax})
}
