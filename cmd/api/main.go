package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/nexwms/warehouse-api/internal/application/alerts"
	"github.com/nexwms/warehouse-api/internal/application/analytics"
	"github.com/nexwms/warehouse-api/internal/application/auth"
	"github.com/nexwms/warehouse-api/internal/application/catalog"
	"github.com/nexwms/warehouse-api/internal/application/documents"
	"github.com/nexwms/warehouse-api/internal/application/journal"
	"github.com/nexwms/warehouse-api/internal/application/ledger"
	"github.com/nexwms/warehouse-api/internal/application/stock"
	infrapdf "github.com/nexwms/warehouse-api/internal/infrastructure/pdf"
	"github.com/nexwms/warehouse-api/internal/infrastructure/postgres"
	httpRouter "github.com/nexwms/warehouse-api/internal/interfaces/http"
	"github.com/nexwms/warehouse-api/pkg/config"
	"github.com/nexwms/warehouse-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool (lecturas fuera de transacción)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	stockRepo := postgres.NewStockLevelRepository(pool)
	journalRepo := postgres.NewMovementJournalRepository(pool)
	receiptRepo := postgres.NewReceiptRepository(pool)
	deliveryRepo := postgres.NewDeliveryRepository(pool)
	transferRepo := postgres.NewTransferOrderRepository(pool)
	adjustmentRepo := postgres.NewAdjustmentRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Ledger: única puerta de mutación de stock
	coordinator := ledger.NewCoordinator(txRunner, productRepo, locationRepo, userRepo)

	// Casos de uso
	stockUC := stock.NewUseCase(stockRepo, journalRepo)
	journalUC := journal.NewUseCase(journalRepo)
	receiptUC := documents.NewReceiptUseCase(txRunner, receiptRepo, coordinator)
	deliveryUC := documents.NewDeliveryUseCase(txRunner, deliveryRepo, coordinator)
	transferUC := documents.NewTransferUseCase(txRunner, transferRepo, coordinator)
	adjustmentUC := documents.NewAdjustmentUseCase(txRunner, adjustmentRepo, coordinator)
	productUC := catalog.NewProductUseCase(productRepo)
	warehouseUC := catalog.NewWarehouseUseCase(warehouseRepo, locationRepo)
	dashboardUC := analytics.NewDashboardUseCase(analyticsRepo)
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Escaneo de stock bajo con webhook (opcional)
	var alertScheduler *alerts.Scheduler
	if cfg.Alerts.Enabled && cfg.Alerts.WebhookURL != "" {
		notifier := alerts.NewWebhookNotifier(alerts.WebhookConfig{
			URL:   cfg.Alerts.WebhookURL,
			Token: cfg.Alerts.WebhookToken,
		})
		alertScheduler = alerts.NewScheduler(cfg.Alerts.CronSpec, stockRepo, notifier, log.WithComponent("alerts"))
		if err := alertScheduler.Start(); err != nil {
			log.Fatal().Err(err).Msg("programar escaneo de stock bajo")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Warehouse API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProductUC:    productUC,
		WarehouseUC:  warehouseUC,
		StockUC:      stockUC,
		JournalUC:    journalUC,
		Coordinator:  coordinator,
		ReceiptUC:    receiptUC,
		DeliveryUC:   deliveryUC,
		TransferUC:   transferUC,
		AdjustmentUC: adjustmentUC,
		DashboardUC:  dashboardUC,
		ReportGen:    infrapdf.NewMarotoReportGenerator(),
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	if alertScheduler != nil {
		alertScheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
