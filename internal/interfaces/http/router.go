package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockroom-api/internal/application/alerts"
	"github.com/jhoicas/stockroom-api/internal/application/auth"
	"github.com/jhoicas/stockroom-api/internal/application/inventory"
	"github.com/jhoicas/stockroom-api/internal/application/receiving"
	"github.com/jhoicas/stockroom-api/internal/application/usecase"
	"github.com/jhoicas/stockroom-api/internal/application/variant"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	PlantUC     *usecase.PlantUseCase
	StoreUC     *usecase.StoreUseCase
	CatalogUC   *usecase.CatalogUseCase
	Registry    *variant.Registry
	Ledger      *inventory.Ledger
	Aggregator  *inventory.Aggregator
	Bulk        *inventory.BulkCoordinator
	Snapshot    *inventory.SnapshotUseCase
	Scanner     *inventory.Scanner
	BoxUC       *receiving.BoxUseCase
	DocumentsUC *receiving.DocumentsUseCase
	AlertsUC    *alerts.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	catalogWrite := RequireRole(RolesCatalogWrite...)
	stockWrite := RequireRole(RolesStockWrite...)

	// /me antes de /:id
	adminOnly := RequireRole(entity.RoleAdmin)
	users := protected.Group("/users")
	users.Get("/me", authHandler.Me)
	users.Put("/me", authHandler.UpdateProfile)
	users.Post("/me/change-password", authHandler.ChangePassword)
	users.Get("/", adminOnly, authHandler.ListUsers)
	users.Post("/", adminOnly, authHandler.CreateUser)
	users.Get("/:id", adminOnly, authHandler.GetUser)
	users.Put("/:id", adminOnly, authHandler.UpdateUser)
	users.Delete("/:id", adminOnly, authHandler.DeleteUser)

	plants := protected.Group("/plants")
	plantHandler := NewPlantHandler(deps.PlantUC)
	plants.Get("/", plantHandler.List)
	plants.Post("/", catalogWrite, plantHandler.Create)
	plants.Get("/:id", plantHandler.GetByID)
	plants.Put("/:id", catalogWrite, plantHandler.Update)

	stores := protected.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoreUC)
	stores.Get("/", storeHandler.List)
	stores.Post("/", catalogWrite, storeHandler.Create)
	stores.Get("/:id", storeHandler.GetByID)
	stores.Put("/:id", catalogWrite, storeHandler.Update)

	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	variantHandler := NewVariantHandler(deps.Registry)

	categories := protected.Group("/categories")
	categories.Get("/", catalogHandler.ListCategories)
	categories.Post("/", catalogWrite, catalogHandler.CreateCategory)
	categories.Get("/:id", catalogHandler.GetCategory)
	categories.Put("/:id", catalogWrite, catalogHandler.UpdateCategory)
	categories.Delete("/:id", catalogWrite, catalogHandler.DeleteCategory)

	itemTypes := protected.Group("/item-types")
	itemTypes.Get("/", catalogHandler.ListItemTypes)
	itemTypes.Post("/", catalogWrite, catalogHandler.CreateItemType)
	itemTypes.Get("/:id", catalogHandler.GetItemType)

	items := protected.Group("/items")
	items.Get("/", catalogHandler.ListItems)
	items.Post("/", catalogWrite, catalogHandler.CreateItem)
	items.Get("/:id", catalogHandler.GetItem)
	items.Get("/:id/variants", variantHandler.ListByItem)
	items.Post("/:id/variants", catalogWrite, variantHandler.Create)

	// /qr/:code antes de /:id
	variants := protected.Group("/variants")
	variants.Get("/qr/:code", variantHandler.ResolveQR)
	variants.Get("/:id", variantHandler.GetByID)
	variants.Delete("/:id", catalogWrite, variantHandler.Delete)

	boxes := protected.Group("/boxes")
	boxHandler := NewBoxHandler(deps.BoxUC, deps.DocumentsUC)
	boxes.Post("/", stockWrite, boxHandler.Create)
	boxes.Get("/", boxHandler.List)
	boxes.Get("/pending", boxHandler.ListPending)
	boxes.Get("/:id", boxHandler.GetByID)
	boxes.Put("/:id/checkin", stockWrite, boxHandler.CheckIn)
	boxes.Get("/:id/transactions", boxHandler.Transactions)
	boxes.Get("/:id/label", boxHandler.Label)
	boxes.Get("/:id/manifest", boxHandler.Manifest)

	inv := protected.Group("/inventory")
	invHandler := NewInventoryHandler(deps.Ledger, deps.Aggregator, deps.Bulk, deps.Snapshot, deps.Scanner)
	inv.Get("/quantity", RequireStoreScope("store_id"), invHandler.Quantity)
	inv.Get("/stores/:id", RequireStoreScope("id"), invHandler.StoreInventory)
	inv.Get("/stores/:id/low-stock", RequireStoreScope("id"), invHandler.LowStock)
	inv.Get("/stores/:id/export", RequireStoreScope("id"), invHandler.Export)
	inv.Get("/reconcile", RequireRole(RolesCatalogWrite...), invHandler.Reconcile)
	inv.Get("/transactions", RequireStoreScope("store_id"), invHandler.ListTransactions)
	inv.Get("/transactions/:id", invHandler.GetTransaction)
	inv.Post("/stock-in", stockWrite, invHandler.StockIn)
	inv.Post("/stock-out", stockWrite, invHandler.StockOut)
	inv.Post("/transfer", stockWrite, invHandler.Transfer)
	inv.Post("/bulk-stock-out", stockWrite, invHandler.BulkStockOut)
	inv.Post("/bulk-transfer", stockWrite, invHandler.BulkTransfer)
	inv.Post("/scan/stock-out", stockWrite, invHandler.ScanStockOut)

	alertsHandler := NewAlertsHandler(deps.AlertsUC)
	protected.Get("/alerts/stock", RequireStoreScope("store_id"), alertsHandler.Stock)
	protected.Get("/alerts/pending-checkin", alertsHandler.PendingCheckin)
}
