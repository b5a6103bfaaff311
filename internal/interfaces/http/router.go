package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/martesys/petshop-api/internal/application/auth"
	"github.com/martesys/petshop-api/internal/application/catalog"
	"github.com/martesys/petshop-api/internal/application/sales"
	"github.com/martesys/petshop-api/internal/application/stock"
	"github.com/martesys/petshop-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC         *catalog.ProductUseCase
	CustomerUC        *catalog.CustomerUseCase
	StockUC           *stock.UseCase
	AlertService      *stock.AlertService
	SalesUC           *sales.UseCase
	ReceiptUC         *sales.ReceiptUseCase
	AuthUC            *auth.UseCase
	JWTSecret         string
	CriticalThreshold int64
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido; baja solo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Deactivate)

	// Customers (protegido; baja solo admin)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/cpf/:cpf", customerHandler.GetByCPF)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", RequireRole(entity.RoleAdmin), customerHandler.Deactivate)

	// Stock (protegido; ajustes absolutos solo admin)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC, deps.AlertService, deps.CriticalThreshold)
	stockGroup.Post("/entries", stockHandler.Entry)
	stockGroup.Post("/exits", stockHandler.Exit)
	stockGroup.Post("/adjustments", RequireRole(entity.RoleAdmin), stockHandler.Adjust)
	stockGroup.Get("/alerts", stockHandler.Alerts)
	stockGroup.Get("/:id/availability", stockHandler.Availability)
	stockGroup.Get("/:id/movements", stockHandler.Movements)

	// Sales (protegido)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SalesUC, deps.ReceiptUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/:id/cancel", saleHandler.Cancel)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)

	// Reports (protegido, solo lectura)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.SalesUC)
	reports.Get("/sales", reportHandler.Statistics)
	reports.Get("/inventory-value", reportHandler.InventoryValue)
}
