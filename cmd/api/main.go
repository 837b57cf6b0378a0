package main

import (
	"context"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/stockmaster-api/internal/application/analytics"
	"github.com/jhoicas/stockmaster-api/internal/application/auth"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/application/operations"
	"github.com/jhoicas/stockmaster-api/internal/application/usecase"
	infraexcel "github.com/jhoicas/stockmaster-api/internal/infrastructure/excel"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/memory"
	inframetrics "github.com/jhoicas/stockmaster-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/stockmaster-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/stockmaster-api/internal/interfaces/http"
	"github.com/jhoicas/stockmaster-api/pkg/config"
	"github.com/jhoicas/stockmaster-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Store en memoria: se construye una vez y se comparte por referencia con todos los casos de uso.
	store := memory.NewStore()
	txRunner := memory.NewTxRunner(store)

	var metrics inventory.Metrics = inventory.NopMetrics{}
	var promMetrics *inframetrics.Prometheus
	if cfg.Metrics.Enabled {
		promMetrics = inframetrics.New()
		metrics = promMetrics
	}

	ledger := inventory.NewLedger(txRunner, time.Now, metrics)
	warehouseUC := usecase.NewWarehouseUseCase(txRunner, time.Now, log)
	productUC := usecase.NewProductUseCase(txRunner, ledger, time.Now, log)
	stockReportUC := usecase.NewStockReportUseCase(txRunner)
	documentUC := operations.NewDocumentUseCase(txRunner, ledger, time.Now, metrics, log)
	replenishmentUC := inventory.NewReplenishmentUseCase(txRunner)
	dashboardUC := appanalytics.NewDashboardUseCase(txRunner)
	authUC, err := auth.NewAuthUseCase(txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, time.Now)
	if err != nil {
		log.Fatal().Err(err).Msg("caso de uso de auth")
	}

	if cfg.App.SeedDefaults {
		if err := warehouseUC.SeedDefaults(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("sembrar bodega por defecto")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    12 << 20,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.HTTP.CORSOrigins}))
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs (solo si existe el swagger.json)
	if _, err := os.Stat(cfg.HTTP.DocsPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.DocsPath,
			Path:     "docs",
			Title:    "StockMaster API",
		}))
	} else {
		log.Warn().Str("path", cfg.HTTP.DocsPath).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	if promMetrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promMetrics.Handler()))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ProductUC:     productUC,
		WarehouseUC:   warehouseUC,
		StockReportUC: stockReportUC,
		DocumentUC:    documentUC,
		Ledger:        ledger,
		Replenishment: replenishmentUC,
		DashboardUC:   dashboardUC,
		SlipPDF:       infrapdf.NewMarotoPDFGenerator(cfg.App.Name),
		Sheets:        infraexcel.NewSheets(),
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.Shutdown.Timeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				log.Info().Msg("señal de apagado recibida, cerrando servidor...")
				return app.ShutdownWithContext(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Info().Int("exit_code", exitCode).Msg("aplicación detenida")
	os.Exit(exitCode)
}
