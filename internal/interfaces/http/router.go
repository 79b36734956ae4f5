package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/farmastock/backend/internal/application/inventory"
	"github.com/farmastock/backend/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	TransferUC     *inventory.TransferUseCase
	ArrivalUC      *inventory.ArrivalUseCase
	ShipmentUC     *inventory.ShipmentUseCase
	DispensingUC   *inventory.DispensingUseCase
	CatalogUC      *inventory.CatalogUseCase
	NotificationUC *usecase.NotificationUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Traslados bodega central -> sucursal
	transfers := api.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)

	// Recepciones de proveedor en bodega central
	arrivals := api.Group("/arrivals")
	arrivalHandler := NewArrivalHandler(deps.ArrivalUC)
	arrivals.Post("/", arrivalHandler.Create)
	arrivals.Get("/", arrivalHandler.List)

	// Envíos y su ciclo de vida
	shipments := api.Group("/shipments")
	shipmentHandler := NewShipmentHandler(deps.ShipmentUC)
	shipments.Post("/", shipmentHandler.Create)
	shipments.Get("/", shipmentHandler.List)
	shipments.Get("/last-receipt", shipmentHandler.LastReceipt)
	shipments.Post("/:id/accept", shipmentHandler.Accept)
	shipments.Post("/:id/reject", shipmentHandler.Reject)
	shipments.Put("/:id/status", shipmentHandler.OverrideStatus)

	// Entregas a pacientes
	dispensing := api.Group("/dispensing")
	dispensingHandler := NewDispensingHandler(deps.DispensingUC)
	dispensing.Post("/", dispensingHandler.Create)
	dispensing.Get("/", dispensingHandler.List)

	// Catálogo y stock
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.CatalogUC)
	stock.Post("/", stockHandler.Create)
	stock.Get("/", stockHandler.List)
	stock.Get("/:id", stockHandler.GetByID)

	// Avisos a sucursales
	notifications := api.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Put("/:id/read", notificationHandler.MarkRead)
}
