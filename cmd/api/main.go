package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appconsumption "github.com/nph-platform/casas-api/internal/application/consumption"
	"github.com/nph-platform/casas-api/internal/application/ledger"
	"github.com/nph-platform/casas-api/internal/application/usecase"
	"github.com/nph-platform/casas-api/internal/infrastructure/catalog"
	"github.com/nph-platform/casas-api/internal/infrastructure/postgres"
	httpRouter "github.com/nph-platform/casas-api/internal/interfaces/http"
	"github.com/nph-platform/casas-api/pkg/config"
	"github.com/nph-platform/casas-api/pkg/logger"
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

	invRepo := postgres.NewInventoryRepository(pool)
	txRepo := postgres.NewTransactionRepository(pool)
	consRepo := postgres.NewConsumptionRepository(pool)
	homeRepo := postgres.NewHomeRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	recorderUC := ledger.NewRecordTransactionUseCase(txRunner, invRepo, txRepo, log)
	inventoryUC := ledger.NewInventoryUseCase(invRepo)
	homeUC := usecase.NewHomeUseCase(homeRepo)

	// Catálogo externo de productos — opcional, solo enriquece nombres.
	var catalogClient appconsumption.CatalogClient
	if cfg.Catalog.BaseURL != "" {
		catalogClient = catalog.NewClient(
			cfg.Catalog.BaseURL,
			time.Duration(cfg.Catalog.TimeoutSeconds)*time.Second,
		)
	}
	consumptionUC := appconsumption.NewConsumptionUseCase(consRepo, txRunner, recorderUC, catalogClient, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(httpRouter.RequestID())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Casas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		InventoryUC:   inventoryUC,
		RecorderUC:    recorderUC,
		ConsumptionUC: consumptionUC,
		HomeUC:        homeUC,
		JWTSecret:     cfg.JWT.Secret,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
