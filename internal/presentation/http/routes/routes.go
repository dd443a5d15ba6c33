package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/cafepos-api/internal/config"
	"github.com/sangkips/cafepos-api/internal/presentation/http/handler"
	"github.com/sangkips/cafepos-api/internal/presentation/http/middleware"
	"github.com/sangkips/cafepos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Order   *handler.OrderHandler
	Shift   *handler.ShiftHandler
	Menu    *handler.MenuHandler
	Payment *handler.PaymentHandler
	Report  *handler.ReportHandler
	Printer *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Auth
	protected.GET("/auth/me", h.Auth.Me)
	protected.POST("/auth/register", middleware.RequireRole("manager"), h.Auth.Register)

	// Menu catalog
	protected.GET("/menu", h.Menu.GetMenu)
	protected.GET("/tax-categories", h.Menu.ListTaxCategories)
	protected.GET("/modifier-groups", h.Menu.ListModifierGroups)
	protected.POST("/menu/categories", middleware.RequireRole("manager"), h.Menu.CreateCategory)
	protected.POST("/menu/items", middleware.RequireRole("manager"), h.Menu.CreateItem)
	protected.POST("/tax-categories", middleware.RequireRole("manager"), h.Menu.CreateTaxCategory)
	protected.POST("/modifier-groups", middleware.RequireRole("manager"), h.Menu.CreateModifierGroup)
	protected.POST("/modifier-options", middleware.RequireRole("manager"), h.Menu.CreateModifierOption)

	// Orders
	registerOrderRoutes(protected, h)

	// Shifts
	shifts := protected.Group("/shifts")
	{
		shifts.POST("", h.Shift.Open)
		shifts.GET("/current", h.Shift.Current)
		shifts.POST("/:id/close", h.Shift.Close)
		shifts.GET("/:id/summary", h.Shift.Summary)
		shifts.POST("/:id/drawer-events", h.Shift.RecordDrawerEvent)
	}

	// Payments
	protected.GET("/payment-methods", h.Payment.ListMethods)

	// Reports
	reports := protected.Group("/reports", middleware.RequireRole("manager"))
	{
		reports.GET("/daily", h.Report.Daily)
		reports.GET("/monthly", h.Report.Monthly)
	}

	// Printer
	protected.GET("/printer/status", h.Printer.Status)
	protected.POST("/printer/test", h.Printer.TestPrint)
	protected.POST("/printer/drawer", h.Printer.OpenDrawer)
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.GET("/held-orders", h.Order.ListHeld)

	orders := protected.Group("/orders")
	{
		orders.POST("", h.Order.Start)
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/lines", h.Order.AddItem)
		orders.PUT("/:id/lines/:lineId", h.Order.UpdateLineQty)
		orders.DELETE("/:id/lines/:lineId", h.Order.RemoveLine)
		orders.PUT("/:id/lines/:lineId/note", h.Order.SetLineNote)
		orders.POST("/:id/hold", h.Order.Hold)
		orders.POST("/:id/recall", h.Order.Recall)
		orders.POST("/:id/complete", h.Order.Complete)
		orders.POST("/:id/refund", middleware.RequireRole("manager"), h.Order.Refund)
		orders.POST("/:id/void", h.Order.Void)
		orders.GET("/:id/payments", h.Payment.GetOrderPayments)
		orders.GET("/:id/receipt", h.Printer.GetReceipt)
		orders.POST("/:id/receipt/print", h.Printer.Reprint)
	}
}
