package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/alerts"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/auth"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/catalog"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/inventory"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/purchasing"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/sales"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/webhooks"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	CatalogUC  *catalog.UseCase
	Poster     *inventory.StockPoster
	BalancesUC *inventory.BalancesUseCase
	RuleUC     *inventory.RuleAdminUseCase
	AlertsUC   *alerts.UseCase
	EndpointUC *webhooks.EndpointAdminUseCase
	SalesUC    *sales.UseCase
	PurchaseUC *purchasing.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)

	// Integraciones (API key, sin JWT)
	integrationHandler := NewIntegrationHandler(deps.SalesUC)
	integrations := api.Group("/integrations", APIKeyMiddleware(deps.AuthUC, "orders:write"))
	integrations.Post("/orders", integrationHandler.CreateOrder)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/auth/me", authHandler.Me)

	// API keys (solo ADMIN)
	apiKeys := protected.Group("/auth/api-keys", RequireRole(entity.RoleAdmin))
	apiKeys.Post("/", authHandler.CreateAPIKey)
	apiKeys.Delete("/:id", authHandler.RevokeAPIKey)

	// Catálogo (lectura para todos; altas MANAGER/ADMIN)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	cat := protected.Group("/catalog")
	cat.Get("/items", catalogHandler.ListItems)
	cat.Get("/items/:id", catalogHandler.GetItem)
	cat.Get("/locations", catalogHandler.ListLocations)
	cat.Get("/customers", catalogHandler.ListCustomers)
	cat.Get("/suppliers", catalogHandler.ListSuppliers)
	catAdmin := cat.Group("/", RequireRole(entity.RoleManager, entity.RoleAdmin))
	catAdmin.Post("/items", catalogHandler.CreateItem)
	catAdmin.Post("/locations", catalogHandler.CreateLocation)
	catAdmin.Post("/customers", catalogHandler.CreateCustomer)
	catAdmin.Post("/suppliers", catalogHandler.CreateSupplier)

	// Inventario: libro, balances, tablero
	inventoryHandler := NewInventoryHandler(deps.Poster, deps.BalancesUC)
	inv := protected.Group("/inventory")
	inv.Get("/movements", inventoryHandler.ListMovements)
	inv.Get("/balances", inventoryHandler.ListBalances)
	inv.Get("/low-stock", inventoryHandler.LowStock)
	inv.Post("/movements", RequireRole(entity.RoleManager, entity.RoleAdmin), inventoryHandler.PostMovement)

	// Reglas de reorden (MANAGER/ADMIN)
	reorderHandler := NewReorderHandler(deps.RuleUC)
	rules := protected.Group("/reorder/rules", RequireRole(entity.RoleManager, entity.RoleAdmin))
	rules.Post("/", reorderHandler.Create)
	rules.Get("/", reorderHandler.List)
	rules.Put("/:id", reorderHandler.Update)
	rules.Delete("/:id", reorderHandler.Delete)

	// Alertas: listar para todos los autenticados, transiciones MANAGER/ADMIN
	alertHandler := NewAlertHandler(deps.AlertsUC)
	alertGroup := protected.Group("/alerts")
	alertGroup.Get("/", alertHandler.List)
	alertGroup.Post("/:id/ack", RequireRole(entity.RoleManager, entity.RoleAdmin), alertHandler.Ack)
	alertGroup.Post("/:id/resolve", RequireRole(entity.RoleManager, entity.RoleAdmin), alertHandler.Resolve)

	// Endpoints de webhook (solo ADMIN)
	webhookHandler := NewWebhookHandler(deps.EndpointUC)
	hooks := protected.Group("/webhooks/endpoints", RequireRole(entity.RoleAdmin))
	hooks.Post("/", webhookHandler.Create)
	hooks.Get("/", webhookHandler.List)
	hooks.Put("/:id", webhookHandler.Update)
	hooks.Delete("/:id", webhookHandler.Delete)

	// Ventas
	salesHandler := NewSalesHandler(deps.SalesUC)
	salesGroup := protected.Group("/sales/invoices")
	salesGroup.Post("/", salesHandler.Create)
	salesGroup.Get("/", salesHandler.List)
	salesGroup.Get("/:id", salesHandler.GetByID)
	salesGroup.Post("/:id/post", RequireRole(entity.RoleManager, entity.RoleAdmin), salesHandler.Post)
	salesGroup.Post("/:id/return", RequireRole(entity.RoleManager, entity.RoleAdmin), salesHandler.Return)

	// Compras
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	receipts := protected.Group("/purchasing/receipts")
	receipts.Post("/", purchaseHandler.CreateReceipt)
	receipts.Get("/", purchaseHandler.ListReceipts)
	receipts.Get("/:id", purchaseHandler.GetReceipt)
	receipts.Post("/:id/post", RequireRole(entity.RoleManager, entity.RoleAdmin), purchaseHandler.PostReceipt)
	receipts.Post("/:id/return", RequireRole(entity.RoleManager, entity.RoleAdmin), purchaseHandler.ReturnReceipt)

	orders := protected.Group("/purchasing/orders")
	orders.Post("/", purchaseHandler.CreateOrder)
	orders.Get("/", purchaseHandler.ListOrders)
	orders.Post("/:id/close", RequireRole(entity.RoleManager, entity.RoleAdmin), purchaseHandler.CloseOrder)
}
