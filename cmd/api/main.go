package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/cafepos-api/internal/application/service"
	"github.com/sangkips/cafepos-api/internal/config"
	"github.com/sangkips/cafepos-api/internal/infrastructure/database"
	"github.com/sangkips/cafepos-api/internal/infrastructure/repository"
	"github.com/sangkips/cafepos-api/internal/presentation/http/handler"
	"github.com/sangkips/cafepos-api/internal/presentation/http/routes"
	"github.com/sangkips/cafepos-api/pkg/clock"
	"github.com/sangkips/cafepos-api/pkg/printer"
	"github.com/sangkips/cafepos-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the store, terminal, payment methods, and admin user on first run
	if err := database.SeedDefaultData(db, &cfg.Store); err != nil {
		log.Fatalf("Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	txManager := repository.NewTxManager(db)
	storeRepo := repository.NewStoreRepository(db)
	userRepo := repository.NewUserRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderLineRepo := repository.NewOrderLineRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	sequenceRepo := repository.NewReceiptSequenceRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Resolve the store this instance serves
	store, err := storeRepo.GetDefaultStore(context.Background())
	if err != nil || store == nil {
		log.Fatalf("Failed to resolve store: %v", err)
	}

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	defer thermalPrinter.Close()

	// Initialize services
	clk := clock.NewSystemClock()
	authService := service.NewAuthService(userRepo, jwtManager)
	menuService := service.NewMenuService(menuRepo)
	paymentService := service.NewPaymentService(paymentRepo)
	receiptNumberService := service.NewReceiptNumberService(sequenceRepo, storeRepo)
	printerService := service.NewPrinterService(
		orderRepo,
		paymentRepo,
		storeRepo,
		userRepo,
		thermalPrinter,
		cfg.Printer.CharWidth,
		cfg.Printer.ReceiptFooter,
	)
	orderService := service.NewOrderService(
		orderRepo,
		orderLineRepo,
		menuRepo,
		shiftRepo,
		paymentRepo,
		receiptNumberService,
		txManager,
		clk,
		printerService,
	)
	shiftService := service.NewShiftService(shiftRepo, paymentRepo, orderLineRepo, txManager, clk)
	reportService := service.NewReportService(reportRepo, menuRepo, paymentRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Order:   handler.NewOrderHandler(orderService, paymentService, store.ID),
		Shift:   handler.NewShiftHandler(shiftService, store.ID),
		Menu:    handler.NewMenuHandler(menuService, store.ID),
		Payment: handler.NewPaymentHandler(paymentService, store.ID),
		Report:  handler.NewReportHandler(reportService),
		Printer: handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
