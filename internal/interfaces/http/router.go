package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexwms/warehouse-api/internal/application/analytics"
	"github.com/nexwms/warehouse-api/internal/application/auth"
	"github.com/nexwms/warehouse-api/internal/application/catalog"
	"github.com/nexwms/warehouse-api/internal/application/documents"
	"github.com/nexwms/warehouse-api/internal/application/journal"
	"github.com/nexwms/warehouse-api/internal/application/ledger"
	"github.com/nexwms/warehouse-api/internal/application/stock"
	"github.com/nexwms/warehouse-api/internal/domain/entity"
	"github.com/nexwms/warehouse-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	ProductUC    *catalog.ProductUseCase
	WarehouseUC  *catalog.WarehouseUseCase
	StockUC      *stock.UseCase
	JournalUC    *journal.UseCase
	Coordinator  *ledger.Coordinator
	ReceiptUC    *documents.ReceiptUseCase
	DeliveryUC   *documents.DeliveryUseCase
	TransferUC   *documents.TransferUseCase
	AdjustmentUC *documents.AdjustmentUseCase
	DashboardUC  *analytics.DashboardUseCase
	ReportGen    *pdf.MarotoReportGenerator
	JWTSecret    string
}

// Router registra las rutas de la API.
//
// Política de roles: cualquier usuario autenticado lee; operator y admin
// mutan el ledger y el flujo documental; solo admin toca el maestro de datos
// y registra usuarios.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público, registro solo admin)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(entity.RoleAdmin),
		authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	operator := RequireRole(entity.RoleAdmin, entity.RoleOperator)
	admin := RequireRole(entity.RoleAdmin)

	// Maestro de datos
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", admin, productHandler.Create)
	products.Put("/:id", admin, productHandler.Update)

	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Post("/", admin, warehouseHandler.Create)

	locations := protected.Group("/locations")
	locations.Get("/", warehouseHandler.ListLocations)
	locations.Post("/", admin, warehouseHandler.CreateLocation)

	// Stock
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup.Get("/", stockHandler.List)
	stockGroup.Get("/low", stockHandler.LowStock)
	stockGroup.Get("/:product_id/:location_id/audit", stockHandler.Audit)
	stockGroup.Get("/:product_id/:location_id", stockHandler.Get)
	stockGroup.Put("/:product_id/:location_id/thresholds", operator, stockHandler.UpdateThresholds)
	stockGroup.Delete("/:product_id/:location_id", admin, stockHandler.Delete)

	// Movimientos (ledger + journal)
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.Coordinator, deps.JournalUC)
	movements.Get("/", movementHandler.History)
	movements.Get("/summary", movementHandler.Summary)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Post("/", operator, movementHandler.Record)

	// Flujo documental
	receipts := protected.Group("/receipts")
	receiptHandler := NewReceiptHandler(deps.ReceiptUC)
	receipts.Get("/", receiptHandler.List)
	receipts.Get("/:id", receiptHandler.GetByID)
	receipts.Post("/", operator, receiptHandler.Create)
	receipts.Put("/:id/status", operator, receiptHandler.UpdateStatus)

	deliveries := protected.Group("/deliveries")
	deliveryHandler := NewDeliveryHandler(deps.DeliveryUC)
	deliveries.Get("/", deliveryHandler.List)
	deliveries.Get("/:id", deliveryHandler.GetByID)
	deliveries.Post("/", operator, deliveryHandler.Create)
	deliveries.Put("/:id/status", operator, deliveryHandler.UpdateStatus)

	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Post("/", operator, transferHandler.Create)
	transfers.Put("/:id/status", operator, transferHandler.UpdateStatus)

	adjustments := protected.Group("/adjustments")
	adjustmentHandler := NewAdjustmentHandler(deps.AdjustmentUC)
	adjustments.Get("/", adjustmentHandler.List)
	adjustments.Get("/:id", adjustmentHandler.GetByID)
	adjustments.Post("/", operator, adjustmentHandler.Register)

	// Dashboard y reportes
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/", dashboardHandler.Summary)
	dashboard.Get("/warehouses", dashboardHandler.WarehouseSummaries)

	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.StockUC, deps.ReportGen)
	reports.Get("/low-stock", reportHandler.LowStockPDF)
	reports.Get("/count-sheet/:location_id", reportHandler.CountSheetPDF)
}
