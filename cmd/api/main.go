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
	_ "github.com/SaeedBadree/TBSL-ERP/docs"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/alerts"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/auth"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/catalog"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/inventory"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/purchasing"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/sales"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/webhooks"
	"github.com/SaeedBadree/TBSL-ERP/internal/infrastructure/postgres"
	httpRouter "github.com/SaeedBadree/TBSL-ERP/internal/interfaces/http"
	"github.com/SaeedBadree/TBSL-ERP/pkg/config"
	"github.com/SaeedBadree/TBSL-ERP/pkg/logger"
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

	// Repositorios
	movementRepo := postgres.NewStockMovementRepository(pool)
	ruleRepo := postgres.NewReorderRuleRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	endpointRepo := postgres.NewWebhookEndpointRepository(pool)
	deliveryRepo := postgres.NewWebhookDeliveryRepository(pool)
	invoiceRepo := postgres.NewSalesInvoiceRepository(pool)
	grnRepo := postgres.NewGoodsReceiptRepository(pool)
	poRepo := postgres.NewPurchaseOrderRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	locationRepo := postgres.NewStoreLocationRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	staffRepo := postgres.NewStaffUserRepository(pool)
	apiKeyRepo := postgres.NewAPIKeyRepository(pool)

	// Webhooks: dispatcher de entregas firmadas + worker periódico
	dispatcher := webhooks.NewDispatcher(
		endpointRepo, deliveryRepo,
		time.Duration(cfg.Webhook.TimeoutSeconds)*time.Second,
		log.Zerolog(),
	)
	worker := webhooks.NewWorker(
		dispatcher,
		time.Duration(cfg.Webhook.IntervalSeconds)*time.Second,
		cfg.Webhook.BatchLimit,
		log.Zerolog(),
	)

	// Núcleo de inventario: poster idempotente + evaluador de reorden
	alertsUC := alerts.NewUseCase(alertRepo)
	evaluator := inventory.NewReorderEvaluator(
		movementRepo, ruleRepo,
		dispatcher,
		inventory.AlertEmitter(alertsUC.Emit),
		log.Zerolog(),
	)
	poster := inventory.NewStockPoster(movementRepo, evaluator)
	balancesUC := inventory.NewBalancesUseCase(movementRepo)
	ruleUC := inventory.NewRuleAdminUseCase(ruleRepo)

	// Documentos
	salesUC := sales.NewUseCase(invoiceRepo, poster)
	purchaseUC := purchasing.NewUseCase(grnRepo, poRepo, poster)

	catalogUC := catalog.NewUseCase(itemRepo, locationRepo, customerRepo, supplierRepo)
	endpointUC := webhooks.NewEndpointAdminUseCase(endpointRepo)
	authUC := auth.NewUseCase(staffRepo, apiKeyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Auth.APIKeySalt)

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
		Title:    "TBSL ERP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CatalogUC:  catalogUC,
		Poster:     poster,
		BalancesUC: balancesUC,
		RuleUC:     ruleUC,
		AlertsUC:   alertsUC,
		EndpointUC: endpointUC,
		SalesUC:    salesUC,
		PurchaseUC: purchaseUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	workerCtx, stopWorker := context.WithCancel(ctx)
	worker.Start(workerCtx)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	stopWorker()
	worker.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
