package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nph-platform/casas-api/internal/application/consumption"
	"github.com/nph-platform/casas-api/internal/application/ledger"
	"github.com/nph-platform/casas-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InventoryUC   *ledger.InventoryUseCase
	RecorderUC    *ledger.RecordTransactionUseCase
	ConsumptionUC *consumption.ConsumptionUseCase
	HomeUC        *usecase.HomeUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Inventario (protegido)
	inventories := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.RecorderUC)
	inventories.Post("/", inventoryHandler.Create)
	inventories.Get("/", inventoryHandler.ListAll)
	inventories.Get("/active", inventoryHandler.ListActive)
	inventories.Get("/inactive", inventoryHandler.ListInactive)
	inventories.Get("/:id", inventoryHandler.GetByID)
	inventories.Put("/:id", inventoryHandler.Update)
	inventories.Delete("/:id", inventoryHandler.Deactivate)
	inventories.Put("/:id/restore", inventoryHandler.Restore)
	inventories.Get("/:id/reconciliation", inventoryHandler.Reconciliation)

	// Transacciones de stock (protegido)
	transactions := protected.Group("/transactions")
	transactionHandler := NewTransactionHandler(deps.RecorderUC)
	transactions.Post("/", transactionHandler.Record)
	transactions.Get("/", transactionHandler.ListAll)
	transactions.Get("/active", transactionHandler.ListActive)
	transactions.Get("/inventory/:inventoryId", transactionHandler.ListByInventory)
	transactions.Get("/product/:productId", transactionHandler.ListByProduct)
	transactions.Get("/type/:type", transactionHandler.ListByType)
	transactions.Get("/:id", transactionHandler.GetByID)
	transactions.Put("/:id", transactionHandler.Update)
	transactions.Delete("/:id", transactionHandler.Deactivate)
	transactions.Put("/:id/restore", transactionHandler.Restore)

	// Consumos (protegido)
	consumptions := protected.Group("/consumption")
	consumptionHandler := NewConsumptionHandler(deps.ConsumptionUC)
	consumptions.Post("/", consumptionHandler.Record)
	consumptions.Get("/", consumptionHandler.ListAll)
	consumptions.Get("/active", consumptionHandler.ListActive)
	consumptions.Get("/inactive", consumptionHandler.ListInactive)
	consumptions.Get("/date-range", consumptionHandler.ListByDateRange)
	consumptions.Get("/product/:productId", consumptionHandler.GetProduct)
	consumptions.Get("/:id", consumptionHandler.GetByID)
	consumptions.Put("/:id", consumptionHandler.Update)
	consumptions.Delete("/:id", consumptionHandler.Deactivate)
	consumptions.Put("/:id/restore", consumptionHandler.Restore)

	// Hogares (protegido)
	homes := protected.Group("/homes")
	homeHandler := NewHomeHandler(deps.HomeUC)
	homes.Post("/", homeHandler.Create)
	homes.Get("/", homeHandler.ListAll)
	homes.Get("/active", homeHandler.ListActive)
	homes.Get("/inactive", homeHandler.ListInactive)
	homes.Get("/:id", homeHandler.GetByID)
	homes.Put("/:id", homeHandler.Update)
	homes.Delete("/:id", homeHandler.Deactivate)
	homes.Put("/:id/restore", homeHandler.Restore)
}
