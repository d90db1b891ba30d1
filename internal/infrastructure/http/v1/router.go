// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DhimiMohamed/stock-management/internal/domain/auth"
	"github.com/DhimiMohamed/stock-management/internal/domain/catalogs/category"
	"github.com/DhimiMohamed/stock-management/internal/domain/catalogs/product"
	"github.com/DhimiMohamed/stock-management/internal/domain/ledger"
	"github.com/DhimiMohamed/stock-management/internal/domain/reports"
	"github.com/DhimiMohamed/stock-management/internal/infrastructure/http/v1/handlers"
	"github.com/DhimiMohamed/stock-management/internal/infrastructure/http/v1/middleware"
	"github.com/DhimiMohamed/stock-management/pkg/logger"
)

// RouterConfig holds the services the router wires to endpoints.
type RouterConfig struct {
	Pool         *pgxpool.Pool
	Logger       *logger.Logger
	JWTValidator middleware.JWTValidator

	AuthService     *auth.Service
	CategoryService *category.Service
	ProductService  *product.Service
	LedgerService   *ledger.Service
	ReportsService  *reports.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	base := handlers.NewBaseHandler()

	healthHandler := handlers.NewHealthHandler(base, cfg.Pool)
	router.GET("/health/live", healthHandler.Live)
	router.GET("/health/ready", healthHandler.Ready)

	authHandler := handlers.NewAuthHandler(base, cfg.AuthService)
	categoryHandler := handlers.NewCategoryHandler(base, cfg.CategoryService)
	productHandler := handlers.NewProductHandler(base, cfg.ProductService)
	ledgerHandler := handlers.NewLedgerHandler(base, cfg.LedgerService)
	stockHandler := handlers.NewStockHandler(base, cfg.LedgerService)
	reportsHandler := handlers.NewReportsHandler(base, cfg.ReportsService)
	importHandler := handlers.NewImportHandler(base, cfg.CategoryService, cfg.ProductService)

	api := router.Group("/api/v1")

	// Public endpoints
	api.POST("/auth/login", authHandler.Login)

	// Authenticated endpoints
	authed := api.Group("")
	authed.Use(middleware.Auth(cfg.JWTValidator))
	{
		authed.GET("/auth/me", authHandler.Me)
		authed.POST("/auth/password", authHandler.ChangePassword)

		authed.GET("/categories", categoryHandler.List)
		authed.POST("/categories", categoryHandler.Create)
		authed.GET("/categories/:id", categoryHandler.Get)
		authed.PUT("/categories/:id", categoryHandler.Update)
		authed.DELETE("/categories/:id", categoryHandler.Delete)

		authed.GET("/products", productHandler.List)
		authed.POST("/products", productHandler.Create)
		authed.GET("/products/low-stock", productHandler.LowStock)
		authed.GET("/products/:id", productHandler.Get)
		authed.PUT("/products/:id", productHandler.Update)
		authed.DELETE("/products/:id", productHandler.Delete)

		authed.GET("/products/:id/ledger", ledgerHandler.Week)
		authed.PUT("/products/:id/ledger/:date", ledgerHandler.EditCell)
		authed.POST("/products/:id/ledger/:date/adjust", ledgerHandler.QuickAdjust)

		authed.GET("/stock/movements", stockHandler.Movements)
		authed.POST("/stock/entries", stockHandler.CreateEntry)
		authed.DELETE("/stock/entries/:id", stockHandler.DeleteEntry)

		authed.GET("/dashboard/stats", reportsHandler.Dashboard)
		authed.GET("/reports/financial", reportsHandler.Financial)
		authed.GET("/reports/movements", reportsHandler.Movements)
		authed.GET("/reports/valuation", reportsHandler.Valuation)

		authed.POST("/import/products", importHandler.Import)
	}

	// Admin-only endpoints
	admin := api.Group("")
	admin.Use(middleware.Auth(cfg.JWTValidator), middleware.RequireAdmin())
	{
		admin.POST("/auth/register", authHandler.Register)
		admin.GET("/users", authHandler.List)
		admin.PUT("/users/:id/active", authHandler.SetActive)
	}

	return router
}
