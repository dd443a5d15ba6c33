package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/cafepos-api/internal/domain/entity"
	"github.com/sangkips/cafepos-api/internal/domain/repository"
	"github.com/sangkips/cafepos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// MenuService serves the sales catalog to the POS front end and handles
// catalog administration.
type MenuService struct {
	menuRepo repository.MenuRepository
}

// NewMenuService creates a new menu service
func NewMenuService(menuRepo repository.MenuRepository) *MenuService {
	return &MenuService{menuRepo: menuRepo}
}

// MenuView is the catalog shape the POS grid renders: categories in display
// order, each with its active items and their priced variants.
type MenuView struct {
	Categories []MenuCategoryView `json:"categories"`
}

// MenuCategoryView is one category with its items
type MenuCategoryView struct {
	Category entity.MenuCategory `json:"category"`
	Items    []MenuItemView      `json:"items"`
}

// MenuItemView is one item with its active prices
type MenuItemView struct {
	Item   entity.MenuItem        `json:"item"`
	Prices []entity.MenuItemPrice `json:"prices"`
}

// GetMenu returns the catalog for a store. The POS grid asks for active rows
// only; the manager view passes includeInactive to see everything.
func (s *MenuService) GetMenu(ctx context.Context, storeID uuid.UUID, includeInactive bool) (*MenuView, error) {
	activeOnly := !includeInactive
	categories, err := s.menuRepo.ListCategories(ctx, storeID, activeOnly)
	if err != nil {
		return nil, err
	}
	items, err := s.menuRepo.ListItems(ctx, storeID, activeOnly)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		itemIDs = append(itemIDs, it.ID)
	}
	prices, err := s.menuRepo.ListPricesForItems(ctx, itemIDs, activeOnly)
	if err != nil {
		return nil, err
	}

	pricesByItem := make(map[uuid.UUID][]entity.MenuItemPrice)
	for _, p := range prices {
		pricesByItem[p.ItemID] = append(pricesByItem[p.ItemID], p)
	}

	itemsByCategory := make(map[uuid.UUID][]MenuItemView)
	for _, it := range items {
		itemsByCategory[it.CategoryID] = append(itemsByCategory[it.CategoryID], MenuItemView{
			Item:   it,
			Prices: pricesByItem[it.ID],
		})
	}

	view := &MenuView{Categories: make([]MenuCategoryView, 0, len(categories))}
	for _, c := range categories {
		view.Categories = append(view.Categories, MenuCategoryView{
			Category: c,
			Items:    itemsByCategory[c.ID],
		})
	}
	return view, nil
}

// ListTaxCategories returns the store's tax categories
func (s *MenuService) ListTaxCategories(ctx context.Context, storeID uuid.UUID) ([]entity.TaxCategory, error) {
	return s.menuRepo.ListTaxCategories(ctx, storeID)
}

// ListModifierGroups returns the store's modifier groups with options
func (s *MenuService) ListModifierGroups(ctx context.Context, storeID uuid.UUID) ([]entity.ModifierGroup, error) {
	return s.menuRepo.ListModifierGroups(ctx, storeID)
}

// CreateCategoryInput carries a new category request
type CreateCategoryInput struct {
	StoreID      uuid.UUID
	Name         string
	DisplayOrder int
	ColorHex     *string
}

// CreateCategory creates a menu category
func (s *MenuService) CreateCategory(ctx context.Context, input *CreateCategoryInput) (*entity.MenuCategory, error) {
	if input.Name == "" {
		return nil, apperror.NewValidationError("Category name is required")
	}

	category := &entity.MenuCategory{
		ID:           uuid.New(),
		StoreID:      input.StoreID,
		Name:         input.Name,
		DisplayOrder: input.DisplayOrder,
		ColorHex:     input.ColorHex,
		IsActive:     true,
	}
	if err := s.menuRepo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// CreateItemInput carries a new item request with at least one price
type CreateItemInput struct {
	StoreID     uuid.UUID
	CategoryID  uuid.UUID
	Name        string
	Description *string
	Prices      []CreatePriceInput
}

// CreatePriceInput carries one priced variant of an item
type CreatePriceInput struct {
	Label         *string
	Price         decimal.Decimal
	TaxCategoryID *uuid.UUID
}

// CreateItem creates a menu item and its priced variants
func (s *MenuService) CreateItem(ctx context.Context, input *CreateItemInput) (*entity.MenuItem, error) {
	if input.Name == "" {
		return nil, apperror.NewValidationError("Item name is required")
	}
	if len(input.Prices) == 0 {
		return nil, apperror.NewValidationError("At least one price is required")
	}
	for _, p := range input.Prices {
		if p.Price.IsNegative() {
			return nil, apperror.NewValidationError("Price cannot be negative")
		}
	}

	item := &entity.MenuItem{
		ID:          uuid.New(),
		StoreID:     input.StoreID,
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Description: input.Description,
		IsActive:    true,
		IsAvailable: true,
	}
	if err := s.menuRepo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	for _, p := range input.Prices {
		price := &entity.MenuItemPrice{
			ID:            uuid.New(),
			ItemID:        item.ID,
			Label:         p.Label,
			Price:         p.Price,
			TaxCategoryID: p.TaxCategoryID,
			IsActive:      true,
		}
		if err := s.menuRepo.CreatePrice(ctx, price); err != nil {
			return nil, err
		}
		item.Prices = append(item.Prices, *price)
	}
	return item, nil
}

// CreateTaxCategory creates a tax category
func (s *MenuService) CreateTaxCategory(ctx context.Context, storeID uuid.UUID, name string, rate decimal.Decimal, isInclusive bool) (*entity.TaxCategory, error) {
	if name == "" {
		return nil, apperror.NewValidationError("Tax category name is required")
	}
	if rate.IsNegative() {
		return nil, apperror.NewValidationError("Tax rate cannot be negative")
	}

	taxCategory := &entity.TaxCategory{
		ID:          uuid.New(),
		StoreID:     storeID,
		Name:        name,
		Rate:        rate,
		IsInclusive: isInclusive,
		IsActive:    true,
	}
	if err := s.menuRepo.CreateTaxCategory(ctx, taxCategory); err != nil {
		return nil, err
	}
	return taxCategory, nil
}

// CreateModifierGroupInput carries a new modifier group request
type CreateModifierGroupInput struct {
	StoreID      uuid.UUID
	Name         string
	IsRequired   bool
	DisplayOrder int
}

// CreateModifierGroup creates a modifier group
func (s *MenuService) CreateModifierGroup(ctx context.Context, input *CreateModifierGroupInput) (*entity.ModifierGroup, error) {
	if input.Name == "" {
		return nil, apperror.NewValidationError("Modifier group name is required")
	}

	group := &entity.ModifierGroup{
		ID:           uuid.New(),
		StoreID:      input.StoreID,
		Name:         input.Name,
		IsRequired:   input.IsRequired,
		DisplayOrder: input.DisplayOrder,
		IsActive:     true,
	}
	if err := s.menuRepo.CreateModifierGroup(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// CreateModifierOptionInput carries a new modifier option request
type CreateModifierOptionInput struct {
	ModifierGroupID uuid.UUID
	Name            string
	PriceDelta      decimal.Decimal
	DisplayOrder    int
}

// CreateModifierOption creates an option within a modifier group
func (s *MenuService) CreateModifierOption(ctx context.Context, input *CreateModifierOptionInput) (*entity.ModifierOption, error) {
	if input.Name == "" {
		return nil, apperror.NewValidationError("Modifier option name is required")
	}

	option := &entity.ModifierOption{
		ID:              uuid.New(),
		ModifierGroupID: input.ModifierGroupID,
		Name:            input.Name,
		PriceDelta:      input.PriceDelta,
		DisplayOrder:    input.DisplayOrder,
		IsActive:        true,
	}
	if err := s.menuRepo.CreateModifierOption(ctx, option); err != nil {
		return nil, err
	}
	return option, nil
}
