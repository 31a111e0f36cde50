package router

import (
	"database/sql"

	"gestion_backend/internal/handlers"
	"gestion_backend/internal/middleware"
	"gestion_backend/internal/pricing"
	"gestion_backend/internal/repositories"
	"gestion_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup wires repositories, services and handlers and registers all routes.
func Setup(engine *gin.Engine, db *sql.DB, vatRate float64) {
	txManager := repositories.NewTxManager(db)
	calc := pricing.NewCalculator(vatRate)

	authRepo := repositories.NewAuthRepository(db)
	inventoryRepo := repositories.NewInventoryRepository(db)
	movementRepo := repositories.NewMovementRepository(db)
	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	ledgerRepo := repositories.NewLedgerRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)

	authService := services.NewAuthService(authRepo, txManager)
	inventoryService := services.NewInventoryService(inventoryRepo, movementRepo, txManager)
	productService := services.NewProductService(productRepo, inventoryRepo, txManager, calc)
	orderService := services.NewOrderService(orderRepo, inventoryRepo, movementRepo, txManager, calc)
	ledgerService := services.NewLedgerService(ledgerRepo, txManager, calc)
	customerService := services.NewCustomerService(customerRepo, txManager)
	reportService := services.NewReportService(inventoryRepo, orderRepo, ledgerRepo)

	authHandler := handlers.NewAuthHandler(authService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	reportHandler := handlers.NewReportHandler(reportService)

	apiV1 := engine.Group("/api/v1")

	SetupAuthRoutes(apiV1, authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupInventoryRoutes(authenticated, inventoryHandler)
		SetupProductRoutes(authenticated, productHandler)
		SetupOrderRoutes(authenticated, orderHandler)
		SetupLedgerRoutes(authenticated, ledgerHandler)
		SetupCustomerRoutes(authenticated, customerHandler)
		SetupReportRoutes(authenticated, reportHandler)
	}
}
