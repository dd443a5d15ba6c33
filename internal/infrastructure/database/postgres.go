package database

import (
	"fmt"
	"log"

	"github.com/sangkips/cafepos-api/internal/config"
	"github.com/sangkips/cafepos-api/internal/domain/entity"
	"github.com/sangkips/cafepos-api/internal/domain/enum"
	"github.com/sangkips/cafepos-api/pkg/utils"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Reference data
		&entity.Store{},
		&entity.Terminal{},
		&entity.User{},

		// Catalog entities
		&entity.MenuCategory{},
		&entity.MenuItem{},
		&entity.MenuItemPrice{},
		&entity.TaxCategory{},
		&entity.ModifierGroup{},
		&entity.ModifierOption{},
		&entity.ItemModifierGroup{},

		// Sales entities
		&entity.Order{},
		&entity.OrderLine{},
		&entity.OrderLineModifier{},
		&entity.PaymentMethod{},
		&entity.Payment{},

		// Shift entities
		&entity.Shift{},
		&entity.CashDrawerEvent{},

		// System entities
		&entity.ReceiptSequence{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the store, default terminal, payment methods, tax
// categories, and the admin user on first run. Existing rows are left alone.
func SeedDefaultData(db *gorm.DB, cfg *config.StoreConfig) error {
	log.Println("Seeding default data...")

	var store entity.Store
	if err := db.First(&store).Error; err != nil {
		store = entity.Store{
			Name:         cfg.Name,
			AddressLine1: cfg.AddressLine1,
			Phone:        cfg.Phone,
			TaxID:        cfg.TaxID,
			CurrencyCode: cfg.CurrencyCode,
			Timezone:     cfg.Timezone,
			IsActive:     true,
		}
		if err := db.Create(&store).Error; err != nil {
			return fmt.Errorf("failed to seed store: %w", err)
		}
	}

	var terminal entity.Terminal
	if err := db.Where("store_id = ?", store.ID).First(&terminal).Error; err != nil {
		terminal = entity.Terminal{
			StoreID:       store.ID,
			Name:          cfg.TerminalName,
			ReceiptPrefix: cfg.ReceiptPrefix,
			IsActive:      true,
		}
		if err := db.Create(&terminal).Error; err != nil {
			return fmt.Errorf("failed to seed terminal: %w", err)
		}
	}

	methods := []entity.PaymentMethod{
		{StoreID: store.ID, Name: "Cash", Type: enum.PaymentMethodTypeCash, IsActive: true},
		{StoreID: store.ID, Name: "Card", Type: enum.PaymentMethodTypeExternal, IsActive: true},
	}
	for i := range methods {
		var existing entity.PaymentMethod
		if err := db.Where("store_id = ? AND name = ?", store.ID, methods[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&methods[i]).Error; err != nil {
				log.Printf("Warning: failed to create payment method %s: %v", methods[i].Name, err)
			}
		}
	}

	taxCategories := []entity.TaxCategory{
		{StoreID: store.ID, Name: "Standard", Rate: decimal.NewFromFloat(0.10), IsInclusive: false, IsActive: true},
		{StoreID: store.ID, Name: "Zero-rated", Rate: decimal.Zero, IsInclusive: false, IsActive: true},
	}
	for i := range taxCategories {
		var existing entity.TaxCategory
		if err := db.Where("store_id = ? AND name = ?", store.ID, taxCategories[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&taxCategories[i]).Error; err != nil {
				log.Printf("Warning: failed to create tax category %s: %v", taxCategories[i].Name, err)
			}
		}
	}

	var admin entity.User
	if err := db.Where("username = ?", cfg.AdminUser).First(&admin).Error; err != nil {
		hashed, err := utils.HashPassword(cfg.AdminPassword)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		admin = entity.User{
			Username:    cfg.AdminUser,
			DisplayName: "Administrator",
			Password:    hashed,
			Role:        "manager",
			IsActive:    true,
		}
		if err := db.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
		log.Printf("Created default admin user %q", cfg.AdminUser)
	}

	log.Println("Default data seeding completed")
	return nil
}
