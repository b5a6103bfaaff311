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

	"github.com/martesys/petshop-api/internal/application/auth"
	"github.com/martesys/petshop-api/internal/application/catalog"
	"github.com/martesys/petshop-api/internal/application/sales"
	"github.com/martesys/petshop-api/internal/application/stock"
	infrapdf "github.com/martesys/petshop-api/internal/infrastructure/pdf"
	"github.com/martesys/petshop-api/internal/infrastructure/postgres"
	httpRouter "github.com/martesys/petshop-api/internal/interfaces/http"
	"github.com/martesys/petshop-api/pkg/config"
	"github.com/martesys/petshop-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledger := stock.NewLedger(txRunner)
	stockUC := stock.NewUseCase(ledger, productRepo, movementRepo)
	alertService := stock.NewAlertService(productRepo, cfg.Stock.CriticalThreshold)
	productUC := catalog.NewProductUseCase(productRepo, txRunner, ledger,
		cfg.Stock.CriticalThreshold, cfg.Stock.DefaultMinStock)
	customerUC := catalog.NewCustomerUseCase(customerRepo)
	salesUC := sales.NewUseCase(txRunner, ledger, saleRepo, customerRepo, reportRepo)
	receiptUC := sales.NewReceiptUseCase(salesUC, infrapdf.NewReceiptGenerator(cfg.App.Name))
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:         productUC,
		CustomerUC:        customerUC,
		StockUC:           stockUC,
		AlertService:      alertService,
		SalesUC:           salesUC,
		ReceiptUC:         receiptUC,
		AuthUC:            authUC,
		JWTSecret:         cfg.JWT.Secret,
		CriticalThreshold: cfg.Stock.CriticalThreshold,
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
