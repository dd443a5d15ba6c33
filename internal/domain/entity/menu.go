package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MenuCategory groups items on the POS grid
type MenuCategory struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StoreID      uuid.UUID `gorm:"type:uuid;not null;index" json:"store_id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	ColorHex     *string   `gorm:"size:9" json:"color_hex,omitempty"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Items []MenuItem `gorm:"foreignKey:CategoryID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new menu category
func (c *MenuCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the MenuCategory model
func (MenuCategory) TableName() string {
	return "menu_categories"
}

// MenuItem represents a sellable product on the menu
type MenuItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StoreID      uuid.UUID `gorm:"type:uuid;not null;index" json:"store_id"`
	CategoryID   uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Description  *string   `gorm:"type:text" json:"description,omitempty"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	IsAvailable  bool      `gorm:"default:true" json:"is_available"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Category MenuCategory    `gorm:"foreignKey:CategoryID" json:"-"`
	Prices   []MenuItemPrice `gorm:"foreignKey:ItemID" json:"prices,omitempty"`
}

// BeforeCreate generates a UUID before creating a new menu item
func (i *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the MenuItem model
func (MenuItem) TableName() string {
	return "menu_items"
}

// MenuItemPrice is a priced variant of an item (e.g. Small / Large).
// Order lines snapshot this price at add time; changing it later never
// alters existing lines.
type MenuItemPrice struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ItemID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"item_id"`
	Label         *string         `gorm:"size:100" json:"label,omitempty"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	TaxCategoryID *uuid.UUID      `gorm:"type:uuid" json:"tax_category_id,omitempty"`
	DisplayOrder  int             `gorm:"default:0" json:"display_order"`
	IsActive      bool            `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Item        MenuItem     `gorm:"foreignKey:ItemID" json:"-"`
	TaxCategory *TaxCategory `gorm:"foreignKey:TaxCategoryID" json:"tax_category,omitempty"`
}

// BeforeCreate generates a UUID before creating a new item price
func (p *MenuItemPrice) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the MenuItemPrice model
func (MenuItemPrice) TableName() string {
	return "menu_item_prices"
}

// TaxCategory defines a tax rate and whether prices carrying it are
// tax-inclusive
type TaxCategory struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	StoreID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"store_id"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	Rate        decimal.Decimal `gorm:"type:decimal(6,4);not null" json:"rate"`
	IsInclusive bool            `gorm:"default:false" json:"is_inclusive"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new tax category
func (t *TaxCategory) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TaxCategory model
func (TaxCategory) TableName() string {
	return "tax_categories"
}

// ModifierGroup is a named set of options (e.g. "Milk") attachable to items
type ModifierGroup struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StoreID      uuid.UUID `gorm:"type:uuid;not null;index" json:"store_id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	IsRequired   bool      `gorm:"default:false" json:"is_required"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Options []ModifierOption `gorm:"foreignKey:ModifierGroupID" json:"options,omitempty"`
}

// BeforeCreate generates a UUID before creating a new modifier group
func (g *ModifierGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ModifierGroup model
func (ModifierGroup) TableName() string {
	return "modifier_groups"
}

// ModifierOption is a selectable option within a group, with a price delta
// applied to the line's effective unit price
type ModifierOption struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ModifierGroupID uuid.UUID       `gorm:"type:uuid;not null;index" json:"modifier_group_id"`
	Name            string          `gorm:"size:255;not null" json:"name"`
	PriceDelta      decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"price_delta"`
	DisplayOrder    int             `gorm:"default:0" json:"display_order"`
	IsActive        bool            `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	ModifierGroup ModifierGroup `gorm:"foreignKey:ModifierGroupID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new modifier option
func (o *ModifierOption) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ModifierOption model
func (ModifierOption) TableName() string {
	return "modifier_options"
}

// ItemModifierGroup links an item to the modifier groups it offers
type ItemModifierGroup struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ItemID          uuid.UUID `gorm:"type:uuid;not null;index" json:"item_id"`
	ModifierGroupID uuid.UUID `gorm:"type:uuid;not null;index" json:"modifier_group_id"`

	Item          MenuItem      `gorm:"foreignKey:ItemID" json:"-"`
	ModifierGroup ModifierGroup `gorm:"foreignKey:ModifierGroupID" json:"modifier_group,omitempty"`
}

// BeforeCreate generates a UUID before creating a new item modifier link
func (l *ItemModifierGroup) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ItemModifierGroup model
func (ItemModifierGroup) TableName() string {
	return "item_modifier_groups"
}
