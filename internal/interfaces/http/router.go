package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockvoz-api/internal/application/ledger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger    ledger.Deps
	JWTSecret string
}

// Router registra las rutas de la API. Todo el ledger va protegido: el tenant
// sale del token, nunca de la URL.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	handler := NewLedgerHandler(deps.Ledger)

	// Parser (no muta nada, pero igual requiere token)
	api.Post("/commands/parse", handler.ParseCommand)

	// Ledger de inventario
	inv := api.Group("/inventory")
	inv.Post("/commands", handler.RecordCommand)
	inv.Post("/transactions", handler.RecordTransaction)
	inv.Get("/transactions", handler.ListTransactions)
	inv.Delete("/transactions/all", handler.ClearTransactions)
	inv.Delete("/transactions", handler.DeleteTransactions)
	inv.Get("/stock", handler.GetStock)
	inv.Get("/audit", handler.GetAuditTrail)

	// Snapshots
	snaps := api.Group("/snapshots")
	snaps.Post("/", handler.CreateSnapshot)
	snaps.Get("/", handler.ListSnapshots)
	snaps.Delete("/:id", handler.DeleteSnapshot)
}
