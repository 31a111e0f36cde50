package router

import (
	"gestion_backend/internal/handlers"
	"gestion_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the authentication routes.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/refresh-token", authHandler.Refresh)

		authRequiredRoutes := authRoutes.Group("")
		authRequiredRoutes.Use(middleware.AuthMiddleware())
		{
			authRequiredRoutes.GET("/me", authHandler.GetProfile)
		}
	}
}

// SetupInventoryRoutes sets up the inventory item and stock movement routes.
func SetupInventoryRoutes(authenticatedGroup *gin.RouterGroup, inventoryHandler *handlers.InventoryHandler) {
	inventoryRoutes := authenticatedGroup.Group("/inventory-items")
	inventoryRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		inventoryRoutes.POST("", inventoryHandler.CreateInventoryItem)
		inventoryRoutes.GET("", inventoryHandler.GetInventoryItems)
		inventoryRoutes.GET("/:id", inventoryHandler.GetInventoryItemByID)
		inventoryRoutes.PUT("/:id", inventoryHandler.UpdateInventoryItem)
		inventoryRoutes.DELETE("/:id", inventoryHandler.DeleteInventoryItem)
		inventoryRoutes.POST("/:id/adjust-stock", inventoryHandler.AdjustStock)
	}

	movementRoutes := authenticatedGroup.Group("/stock-movements")
	movementRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		movementRoutes.GET("", inventoryHandler.GetStockMovements)
	}
}

// SetupProductRoutes sets up the sellable product routes.
func SetupProductRoutes(authenticatedGroup *gin.RouterGroup, productHandler *handlers.ProductHandler) {
	productRoutes := authenticatedGroup.Group("/products")
	productRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		productRoutes.POST("", productHandler.CreateProduct)
		productRoutes.GET("", productHandler.GetProducts)
		productRoutes.GET("/:id", productHandler.GetProductByID)
		productRoutes.PUT("/:id", productHandler.UpdateProduct)
		productRoutes.DELETE("/:id", productHandler.DeleteProduct)
	}
}

// SetupOrderRoutes sets up the order and quotation routes.
func SetupOrderRoutes(authenticatedGroup *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	orderRoutes := authenticatedGroup.Group("/orders")
	orderRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		orderRoutes.POST("", orderHandler.CreateOrder)
		orderRoutes.GET("", orderHandler.GetOrders)
		orderRoutes.GET("/:id", orderHandler.GetOrderByID)
		orderRoutes.PUT("/:id", orderHandler.UpdateOrder)
		orderRoutes.DELETE("/:id", orderHandler.DeleteOrder)
	}
}

// SetupLedgerRoutes sets up the income/expense ledger routes.
func SetupLedgerRoutes(authenticatedGroup *gin.RouterGroup, ledgerHandler *handlers.LedgerHandler) {
	ledgerRoutes := authenticatedGroup.Group("/ledger-entries")
	ledgerRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		ledgerRoutes.POST("", ledgerHandler.CreateLedgerEntry)
		ledgerRoutes.GET("", ledgerHandler.GetLedgerEntries)
		ledgerRoutes.GET("/:id", ledgerHandler.GetLedgerEntryByID)
		ledgerRoutes.PUT("/:id", ledgerHandler.UpdateLedgerEntry)
		ledgerRoutes.DELETE("/:id", ledgerHandler.DeleteLedgerEntry)
	}
}

// SetupCustomerRoutes sets up the customer directory routes.
func SetupCustomerRoutes(authenticatedGroup *gin.RouterGroup, customerHandler *handlers.CustomerHandler) {
	customerRoutes := authenticatedGroup.Group("/customers")
	customerRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		customerRoutes.POST("", customerHandler.CreateCustomer)
		customerRoutes.GET("", customerHandler.GetCustomers)
		customerRoutes.GET("/:id", customerHandler.GetCustomerByID)
		customerRoutes.PUT("/:id", customerHandler.UpdateCustomer)
		customerRoutes.DELETE("/:id", customerHandler.DeleteCustomer)
	}
}

// SetupReportRoutes sets up the dashboard and reporting routes.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := authenticatedGroup.Group("/dashboard")
	reportRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		reportRoutes.GET("/summary", reportHandler.GetDashboardSummary)
	}
}
