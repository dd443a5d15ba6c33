package request

import "github.com/google/uuid"

// CreateCategoryRequest represents a menu category creation request
type CreateCategoryRequest struct {
	Name         string  `json:"name" binding:"required,min=1,max=255"`
	DisplayOrder int     `json:"display_order" binding:"min=0"`
	ColorHex     *string `json:"color_hex" binding:"omitempty,max=9"`
}

// CreateItemPriceRequest is one priced variant within an item creation request
type CreateItemPriceRequest struct {
	Label         *string    `json:"label" binding:"omitempty,max=100"`
	Price         string     `json:"price" binding:"required"`
	TaxCategoryID *uuid.UUID `json:"tax_category_id"`
}

// CreateItemRequest represents a menu item creation request
type CreateItemRequest struct {
	CategoryID  uuid.UUID                `json:"category_id" binding:"required"`
	Name        string                   `json:"name" binding:"required,min=1,max=255"`
	Description *string                  `json:"description"`
	Prices      []CreateItemPriceRequest `json:"prices" binding:"required,min=1,dive"`
}

// CreateModifierGroupRequest represents a modifier group creation request
type CreateModifierGroupRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=255"`
	IsRequired   bool   `json:"is_required"`
	DisplayOrder int    `json:"display_order" binding:"min=0"`
}

// CreateModifierOptionRequest represents a modifier option creation request
type CreateModifierOptionRequest struct {
	ModifierGroupID uuid.UUID `json:"modifier_group_id" binding:"required"`
	Name            string    `json:"name" binding:"required,min=1,max=255"`
	PriceDelta      string    `json:"price_delta"`
	DisplayOrder    int       `json:"display_order" binding:"min=0"`
}

// CreateTaxCategoryRequest represents a tax category creation request
type CreateTaxCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Rate        string `json:"rate" binding:"required"`
	IsInclusive bool   `json:"is_inclusive"`
}
