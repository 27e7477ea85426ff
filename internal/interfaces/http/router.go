package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Plans         PlanService
	Replenishment ReplenishmentService
	Store         Pinger
	JWTSecret     string
	Log           zerolog.Logger
	// HideInternalErrors oculta el detalle de los 500 (APP_ENV=production).
	HideInternalErrors bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	errs := errorResponder{log: deps.Log, hideInternal: deps.HideInternalErrors}

	app.Get("/health", Health(deps.Store))

	// Rutas protegidas (requieren Bearer Token); lectura para cualquier rol válido
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	write := RequireRole(writerRoles...)

	plans := api.Group("/plans")
	planHandler := NewPlanHandler(deps.Plans, errs)
	plans.Get("/", planHandler.List)
	plans.Post("/", write, planHandler.Create)
	plans.Get("/status/:status", planHandler.ListByStatus)
	plans.Get("/:id", planHandler.GetByID)
	plans.Put("/:id", write, planHandler.Update)
	plans.Delete("/:id", write, planHandler.Delete)
	plans.Post("/:id/requirements", planHandler.Requirements)
	plans.Get("/:id/requirements", planHandler.Requirements)
	plans.Post("/:id/start-production", write, planHandler.StartProduction)
	plans.Post("/:id/complete-production", write, planHandler.CompleteProduction)
	plans.Post("/:id/cancel", write, planHandler.Cancel)
	plans.Get("/:id/reservations", planHandler.ListReservations)
	plans.Get("/:id/transactions", planHandler.ListTransactions)

	inventory := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Replenishment, errs)
	inventory.Get("/replenishment", inventoryHandler.GetReplenishmentList)
}
