package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stockmaster-api/internal/application/analytics"
	"github.com/jhoicas/stockmaster-api/internal/application/auth"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/application/operations"
	"github.com/jhoicas/stockmaster-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ProductUC     *usecase.ProductUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	StockReportUC *usecase.StockReportUseCase
	DocumentUC    *operations.DocumentUseCase
	Ledger        *inventory.Ledger
	Replenishment *inventory.ReplenishmentUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	SlipPDF       operations.SlipPDFGenerator
	Sheets        interface {
		SheetWriter
		operations.CountSheetParser
	}
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/request-otp", authHandler.RequestOTP)
	authGroup.Post("/reset-password", authHandler.ResetPassword)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.Detail)
	products.Put("/:id", productHandler.Update)

	// Warehouses / locations
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses := protected.Group("/warehouses")
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Delete("/:id", warehouseHandler.Delete)
	warehouses.Post("/:id/locations", warehouseHandler.CreateLocation)

	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.StockReportUC, deps.Sheets)
	locations := protected.Group("/locations")
	locations.Get("/", warehouseHandler.ListLocations)
	locations.Get("/:id/count-sheet", inventoryHandler.CountSheet)
	protected.Get("/stock/export", inventoryHandler.ExportStock)

	// Operations: las rutas fijas van antes que /:kind
	ops := protected.Group("/operations")
	opsHandler := NewOperationsHandler(deps.DocumentUC, deps.SlipPDF, deps.Sheets)
	ops.Get("/moves", inventoryHandler.ListMoves)
	ops.Post("/adjustments/import", opsHandler.ImportCount)
	ops.Post("/receipts", opsHandler.CreateReceipt)
	ops.Post("/deliveries", opsHandler.CreateDelivery)
	ops.Post("/transfers", opsHandler.CreateTransfer)
	ops.Post("/adjustments", opsHandler.CreateAdjustment)
	ops.Get("/:kind", opsHandler.List)
	ops.Get("/:kind/:id", opsHandler.Get)
	ops.Post("/:kind/:id/validate", opsHandler.Validate)
	ops.Get("/:kind/:id/pdf", opsHandler.PDF)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Replenishment)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
	dashboard.Get("/replenishment", dashboardHandler.GetReplenishmentList)
}
