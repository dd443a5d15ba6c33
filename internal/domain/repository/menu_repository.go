package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/cafepos-api/internal/domain/entity"
)

// MenuRepository defines data operations on the sales catalog: categories,
// items, priced variants, tax categories, and modifiers. Lookups return nil
// without an error when the row does not exist.
type MenuRepository interface {
	// ListCategories returns categories for the store ordered by display
	// order; activeOnly restricts to active categories.
	ListCategories(ctx context.Context, storeID uuid.UUID, activeOnly bool) ([]entity.MenuCategory, error)
	ListItems(ctx context.Context, storeID uuid.UUID, activeOnly bool) ([]entity.MenuItem, error)
	ListPricesForItems(ctx context.Context, itemIDs []uuid.UUID, activeOnly bool) ([]entity.MenuItemPrice, error)

	GetActivePrice(ctx context.Context, priceID uuid.UUID) (*entity.MenuItemPrice, error)
	GetActiveItem(ctx context.Context, itemID uuid.UUID) (*entity.MenuItem, error)
	GetActiveTaxCategory(ctx context.Context, taxCategoryID uuid.UUID) (*entity.TaxCategory, error)
	// GetActiveModifierOptions resolves the requested options along with
	// their groups, skipping inactive options.
	GetActiveModifierOptions(ctx context.Context, optionIDs []uuid.UUID) ([]entity.ModifierOption, error)

	CreateCategory(ctx context.Context, category *entity.MenuCategory) error
	CreateItem(ctx context.Context, item *entity.MenuItem) error
	CreatePrice(ctx context.Context, price *entity.MenuItemPrice) error
	CreateTaxCategory(ctx context.Context, taxCategory *entity.TaxCategory) error
	CreateModifierGroup(ctx context.Context, group *entity.ModifierGroup) error
	CreateModifierOption(ctx context.Context, option *entity.ModifierOption) error

	ListTaxCategories(ctx context.Context, storeID uuid.UUID) ([]entity.TaxCategory, error)
	ListModifierGroups(ctx context.Context, storeID uuid.UUID) ([]entity.ModifierGroup, error)
	// CategoryNamesForItems maps item IDs to their category names, for
	// reporting rollups.
	CategoryNamesForItems(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]string, error)
}
