package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockvoz-api/internal/application/dto"
	"github.com/jhoicas/stockvoz-api/internal/application/ledger"
	"github.com/jhoicas/stockvoz-api/internal/domain"
	"github.com/jhoicas/stockvoz-api/internal/domain/command"
)

// LedgerHandler maneja las peticiones HTTP del ledger de inventario
// (protegido). El servicio se construye por request, atado al tenant que
// viene en el token.
type LedgerHandler struct {
	deps ledger.Deps
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(deps ledger.Deps) *LedgerHandler {
	return &LedgerHandler{deps: deps}
}

// service construye el servicio del ledger para el tenant del request. Si el
// token no trae tenant, escribe el 401 y devuelve servicio nil; el caller debe
// cortar cuando svc es nil (el error acompañante es el resultado de esa
// escritura, que en el caso normal es nil).
func (h *LedgerHandler) service(c *fiber.Ctx) (*ledger.Service, error) {
	svc, err := ledger.NewService(GetOwnerKey(c), h.deps)
	if err != nil {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	return svc, nil
}

// mapLedgerError traduce errores del dominio a respuestas HTTP. Los mensajes
// de validación y de regla de negocio viajan tal cual al cliente.
func mapLedgerError(c *fiber.Ctx, err error) error {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: vErr.Message})
	}
	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: stockErr.Error()})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// ParseCommand godoc
// @Summary      Interpretar una instrucción de texto libre (sin registrarla)
// @Tags         commands
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ParseCommandRequest  true  "text"
// @Success      200  {object}  command.Command
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/commands/parse [post]
func (h *LedgerHandler) ParseCommand(c *fiber.Ctx) error {
	var in dto.ParseCommandRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cmd := command.Parse(in.Text)
	if cmd == nil {
		// No es un error: el cliente debe pedir aclaración al usuario.
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "NOT_UNDERSTOOD", Message: "instrucción no entendida"})
	}
	return c.JSON(cmd)
}

// RecordCommand godoc
// @Summary      Interpretar texto libre y registrarlo en el ledger
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordCommandRequest  true  "text, source"
// @Success      201  {object}  dto.TransactionView
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/inventory/commands [post]
func (h *LedgerHandler) RecordCommand(c *fiber.Ctx) error {
	svc, err := h.service(c)
	if svc == nil {
		return err
	}
	var in dto.RecordCommandRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cmd := command.Parse(in.Text)
	if cmd == nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "NOT_UNDERSTOOD", Message: "instrucción no entendida"})
	}
	view, err := svc.Record(c.Context(), *cmd, GetActor(c), in.Source)
	if err != nil {
		return mapLedgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// RecordTransaction godoc
// @Summary      Registrar una transacción estructurada
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordTransactionRequest  true  "action, item, quantity, unit, location, note, source"
// @Success      201  {object}  dto.TransactionView
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/transactions [post]
func (h *LedgerHandler) RecordTransaction(c *fiber.Ctx) error {
	svc, err := h.service(c)
	if svc == nil {
		return err
	}
	var in dto.RecordTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cmd := command.Command{
		Action:   command.Action(in.Action),
		Item:     in.Item,
		Quantity: command.ParseQuantity(in.Quantity),
		Unit:     in.Unit,
		Location: in.Location,
		Note:     in.Note,
	}
	view, err := svc.Record(c.Context(), cmd, GetActor(c), in.Source)
	if err != nil {
		return mapLedgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// ListTransactions godoc
// @Summary      Listar transacciones del tenant (timestamp ascendente)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TransactionView
// @Router       /api/inventory/transactions [get]
func (h *LedgerHandler) ListTransactions(c *fiber.Ctx) error {
	svc, err := h.service(c)
	if svc == nil {
		return err
	}
	views, err := svc.List(c.Context())
	if err != nil {
		return mapLedgerError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(views), "transactions": views})
}

// DeleteTransactions godoc
// @Summary      Borrar transacciones por ids (una entrada de auditoría por fila)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DeleteTransactionsRequest  true  "ids"
// @Success      200  {object}  map[string]int
// @Router       /api/inventory/transactions [delete]
func (h *LedgerHandler) DeleteTransactions(c *fiber.Ctx) error {
	svc, err := h.service(c)
	if svc == nil {
		return err
	}
	var in dto.DeleteTransactionsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	deleted, err := svc.DeleteMany(c.Context(), in.IDs, GetActor(c))
	if err != nil {
		return mapLedgerError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}

// ClearTransactions godoc
// @Summary      Borrar todas las transacciones del tenant
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/inventory/transactions/all [delete]
func (h *LedgerHandler) ClearTransactions(c *fiber.Ctx) error {
	svc, err := h.service(c)
	if svc == nil {
		return err
	}
	deleted, err := svc.ClearAll(c.Context(), GetActor(c))
	if err != nil {
		return mapLedgerError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}

// GetStock godoc
// @Summary      Stock neto actual por (artículo, unidad, ubicación)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.StockTotal
// @Router       /api/inventory/stock [get]
func (h *LedgerHandler) GetStock(c *fiber.Ctx) error {
	svc, err := h.service(c)
	if svc == nil {
		return err
	}
	totals, err := svc.Aggregate(c.Context())
	if err != nil {
		return mapLedgerError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(totals), "stock": totals})
}

// GetAuditTrail godoc
// @Summary      Audit trail del tenant (más reciente primero)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AuditView
// @Router       /api/inventory/audit [get]
func (h *LedgerHandler) GetAuditTrail(c *fiber.Ctx) error {
	svc, err := h.service(c)
	if svc == nil {
		return err
	}
	entries, err := svc.AuditTrail(c.Context())
	if err != nil {
		return mapLedgerError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(entries), "audit": entries})
}

// CreateSnapshot godoc
// @Summary      Crear un snapshot etiquetado del stock actual
// @Tags         snapshots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSnapshotRequest  true  "label"
// @Success      201  {object}  dto.SnapshotView
// @Router       /api/snapshots [post]
func (h *LedgerHandler) CreateSnapshot(c *fiber.Ctx) error {
	svc, err := h.service(c)
	if svc == nil {
		return err
	}
	var in dto.CreateSnapshotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	view, err := svc.CreateSnapshot(c.Context(), GetActor(c), in.Label)
	if err != nil {
		return mapLedgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// ListSnapshots godoc
// @Summary      Listar snapshots del tenant (más recientes primero)
// @Tags         snapshots
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SnapshotView
// @Router       /api/snapshots [get]
func (h *LedgerHandler) ListSnapshots(c *fiber.Ctx) error {
	svc, err := h.service(c)
	if svc == nil {
		return err
	}
	views, err := svc.ListSnapshots(c.Context())
	if err != nil {
		return mapLedgerError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(views), "snapshots": views})
}

// DeleteSnapshot godoc
// @Summary      Borrar un snapshot
// @Tags         snapshots
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "snapshot id"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/snapshots/{id} [delete]
func (h *LedgerHandler) DeleteSnapshot(c *fiber.Ctx) error {
	svc, err := h.service(c)
	if svc == nil {
		return err
	}
	removed, err := svc.DeleteSnapshot(c.Context(), c.Params("id"), GetActor(c))
	if err != nil {
		return mapLedgerError(c, err)
	}
	if !removed {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "snapshot no encontrado"})
	}
	return c.JSON(fiber.Map{"deleted": true})
}
