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

	"github.com/farmastock/backend/internal/application/inventory"
	"github.com/farmastock/backend/internal/application/usecase"
	"github.com/farmastock/backend/internal/infrastructure/cache"
	"github.com/farmastock/backend/internal/infrastructure/postgres"
	httpRouter "github.com/farmastock/backend/internal/interfaces/http"
	"github.com/farmastock/backend/pkg/config"
	"github.com/farmastock/backend/pkg/logger"
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

	stockRepo := postgres.NewStockItemRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	shipmentRepo := postgres.NewShipmentRepository(pool)
	dispensingRepo := postgres.NewDispensingRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	patientRepo := postgres.NewPatientRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	transferUC := inventory.NewTransferUseCase(txRunner, movementRepo)
	arrivalUC := inventory.NewArrivalUseCase(txRunner, movementRepo)
	shipmentUC := inventory.NewShipmentUseCase(txRunner, branchRepo, shipmentRepo, notificationRepo, log)
	dispensingUC := inventory.NewDispensingUseCase(txRunner, patientRepo, employeeRepo, dispensingRepo, movementRepo)
	catalogUC := inventory.NewCatalogUseCase(stockRepo, categoryRepo)
	notificationUC := usecase.NewNotificationUseCase(notificationRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Limitador de tasa por IP; sin REDIS_ADDR queda desactivado.
	if cfg.Redis.Addr != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis.Addr)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisClient.Close()
		window := time.Duration(cfg.Redis.RateWindowSec) * time.Second
		app.Use(httpRouter.RateLimiter(redisClient, cfg.Redis.RateLimit, window))
	}

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "FarmaStock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		TransferUC:     transferUC,
		ArrivalUC:      arrivalUC,
		ShipmentUC:     shipmentUC,
		DispensingUC:   dispensingUC,
		CatalogUC:      catalogUC,
		NotificationUC: notificationUC,
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
