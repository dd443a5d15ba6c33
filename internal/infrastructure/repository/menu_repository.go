package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/cafepos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/cafepos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type menuRepository struct {
	db *gorm.DB
}

// NewMenuRepository creates a new menu repository
func NewMenuRepository(db *gorm.DB) domainRepo.MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) ListCategories(ctx context.Context, storeID uuid.UUID, activeOnly bool) ([]entity.MenuCategory, error) {
	var categories []entity.MenuCategory
	query := dbFromContext(ctx, r.db).WithContext(ctx).Where("store_id = ?", storeID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("display_order ASC, name ASC").Find(&categories).Error
	return categories, err
}

func (r *menuRepository) ListItems(ctx context.Context, storeID uuid.UUID, activeOnly bool) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	query := dbFromContext(ctx, r.db).WithContext(ctx).Where("store_id = ?", storeID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("display_order ASC, name ASC").Find(&items).Error
	return items, err
}

func (r *menuRepository) ListPricesForItems(ctx context.Context, itemIDs []uuid.UUID, activeOnly bool) ([]entity.MenuItemPrice, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	var prices []entity.MenuItemPrice
	query := dbFromContext(ctx, r.db).WithContext(ctx).Where("item_id IN ?", itemIDs)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("display_order ASC").Find(&prices).Error
	return prices, err
}

func (r *menuRepository) GetActivePrice(ctx context.Context, priceID uuid.UUID) (*entity.MenuItemPrice, error) {
	var price entity.MenuItemPrice
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		First(&price, "id = ? AND is_active = ?", priceID, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &price, nil
}

func (r *menuRepository) GetActiveItem(ctx context.Context, itemID uuid.UUID) (*entity.MenuItem, error) {
	var item entity.MenuItem
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		First(&item, "id = ? AND is_active = ?", itemID, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) GetActiveTaxCategory(ctx context.Context, taxCategoryID uuid.UUID) (*entity.TaxCategory, error) {
	var taxCategory entity.TaxCategory
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		First(&taxCategory, "id = ? AND is_active = ?", taxCategoryID, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &taxCategory, nil
}

func (r *menuRepository) GetActiveModifierOptions(ctx context.Context, optionIDs []uuid.UUID) ([]entity.ModifierOption, error) {
	if len(optionIDs) == 0 {
		return nil, nil
	}
	var options []entity.ModifierOption
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Preload("ModifierGroup").
		Where("id IN ? AND is_active = ?", optionIDs, true).
		Find(&options).Error
	return options, err
}

func (r *menuRepository) CreateCategory(ctx context.Context, category *entity.MenuCategory) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(category).Error
}

func (r *menuRepository) CreateItem(ctx context.Context, item *entity.MenuItem) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Omit("Prices").Create(item).Error
}

func (r *menuRepository) CreatePrice(ctx context.Context, price *entity.MenuItemPrice) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(price).Error
}

func (r *menuRepository) CreateTaxCategory(ctx context.Context, taxCategory *entity.TaxCategory) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(taxCategory).Error
}

func (r *menuRepository) CreateModifierGroup(ctx context.Context, group *entity.ModifierGroup) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Omit("Options").Create(group).Error
}

func (r *menuRepository) CreateModifierOption(ctx context.Context, option *entity.ModifierOption) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(option).Error
}

func (r *menuRepository) ListTaxCategories(ctx context.Context, storeID uuid.UUID) ([]entity.TaxCategory, error) {
	var taxCategories []entity.TaxCategory
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("name ASC").
		Find(&taxCategories).Error
	return taxCategories, err
}

func (r *menuRepository) ListModifierGroups(ctx context.Context, storeID uuid.UUID) ([]entity.ModifierGroup, error) {
	var groups []entity.ModifierGroup
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("display_order ASC")
		}).
		Where("store_id = ? AND is_active = ?", storeID, true).
		Order("display_order ASC").
		Find(&groups).Error
	return groups, err
}

func (r *menuRepository) CategoryNamesForItems(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string)
	if len(itemIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		ItemID       uuid.UUID
		CategoryName string
	}
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Table("menu_items").
		Select("menu_items.id AS item_id, menu_categories.name AS category_name").
		Joins("JOIN menu_categories ON menu_categories.id = menu_items.category_id").
		Where("menu_items.id IN ?", itemIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ItemID] = row.CategoryName
	}
	return out, nil
}
