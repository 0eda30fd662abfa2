package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockvoz-api/internal/application/dto"
	"github.com/jhoicas/stockvoz-api/internal/domain"
	"github.com/jhoicas/stockvoz-api/internal/domain/command"
	"github.com/jhoicas/stockvoz-api/internal/domain/entity"
	"github.com/jhoicas/stockvoz-api/internal/domain/repository"
)

// Deps dependencias del servicio: lecturas directas con los repositorios y
// mutaciones a través del TxRunner.
type Deps struct {
	TxRunner     TxRunner
	Transactions repository.TransactionRepository
	Snapshots    repository.SnapshotRepository
	Audits       repository.AuditRepository
}

// Service operaciones del ledger de inventario para un solo tenant.
// Cada operación mutadora (Record, DeleteMany, CreateSnapshot, DeleteSnapshot)
// corre como una unidad atómica: transacción + auditoría aterrizan juntas o
// no aterriza nada.
type Service struct {
	ownerKey string
	deps     Deps
}

// NewService construye el servicio atado a un tenant. Un owner key vacío es
// un error de configuración, no de una llamada.
func NewService(ownerKey string, deps Deps) (*Service, error) {
	key := strings.ToLower(strings.TrimSpace(ownerKey))
	if key == "" {
		return nil, fmt.Errorf("ledger: owner_key es obligatorio")
	}
	return &Service{ownerKey: key, deps: deps}, nil
}

// OwnerKey tenant al que está atado el servicio (ya normalizado).
func (s *Service) OwnerKey() string { return s.ownerKey }

// payloads de auditoría (forma estable, se serializan a JSON)
type txnAuditPayload struct {
	Item     string          `json:"item"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
	Location string          `json:"location"`
	Source   string          `json:"source,omitempty"`
}

type snapshotAuditPayload struct {
	Label string `json:"label"`
	Count int    `json:"count,omitempty"`
}

// Record valida un comando y lo registra como transacción del ledger:
// resuelve o crea el artículo, verifica disponibilidad en retiros, inserta la
// transacción y escribe una entrada de auditoría, todo en una transacción.
func (s *Service) Record(ctx context.Context, cmd command.Command, actor, source string) (*dto.TransactionView, error) {
	if cmd.Quantity == nil {
		return nil, domain.NewValidationError("La cantidad debe ser numérica.")
	}
	quantity := *cmd.Quantity
	if !quantity.IsPositive() {
		return nil, domain.NewValidationError("La cantidad debe ser mayor que cero.")
	}
	if cmd.Action != command.ActionAdd && cmd.Action != command.ActionRemove {
		return nil, domain.NewValidationError("La acción debe ser 'add' o 'remove'.")
	}

	unitNorm := command.NormalizeUnit(cmd.Unit)
	location := strings.TrimSpace(cmd.Location)
	locationNorm := command.NormalizeLocation(location)
	note := strings.TrimSpace(cmd.Note)
	itemRaw := strings.TrimSpace(cmd.Item)
	actorName := strings.TrimSpace(actor)
	if source == "" {
		source = "manual"
	}

	var view *dto.TransactionView
	err := s.deps.TxRunner.Run(ctx, func(
		items repository.ItemRepository,
		txns repository.TransactionRepository,
		_ repository.SnapshotRepository,
		audits repository.AuditRepository,
	) error {
		item, err := s.ensureItem(items, itemRaw, unitNorm)
		if err != nil {
			return err
		}
		if unitNorm == "" {
			unitNorm = item.Unit
		}
		kind := entity.KindIn
		if cmd.Action == command.ActionRemove {
			kind = entity.KindOut
		}

		if kind == entity.KindOut {
			available, err := txns.SumByItemLocation(s.ownerKey, item.ID, locationNorm)
			if err != nil {
				return err
			}
			// Aritmética decimal exacta: la comparación no necesita tolerancia.
			if quantity.GreaterThan(available) {
				return &domain.InsufficientStockError{
					Item:      item.Name,
					Unit:      unitNorm,
					Location:  location,
					Available: available,
				}
			}
		}

		rawPayload, err := json.Marshal(cmd)
		if err != nil {
			return fmt.Errorf("serializar comando: %w", err)
		}
		now := time.Now()
		txn := &entity.Transaction{
			ID:                 uuid.New().String(),
			OwnerKey:           s.ownerKey,
			ItemID:             item.ID,
			Kind:               kind,
			Quantity:           quantity,
			Unit:               unitNorm,
			Note:               note,
			Location:           location,
			LocationNormalized: locationNorm,
			EnteredBy:          actorName,
			Source:             source,
			RawPayload:         rawPayload,
			Timestamp:          now,
		}
		if err := txns.Create(txn); err != nil {
			return err
		}

		action := entity.AuditActionAdd
		if kind == entity.KindOut {
			action = entity.AuditActionRemove
		}
		if err := audits.Create(s.newAudit(actorName, action, "txn", txn.ID, txnAuditPayload{
			Item:     item.Name,
			Quantity: quantity,
			Unit:     txn.Unit,
			Location: txn.Location,
			Source:   source,
		})); err != nil {
			return err
		}

		view = toTransactionView(txn, item.Name, item.Unit)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// ensureItem resuelve el artículo por nombre normalizado dentro del tenant,
// creándolo si no existe. Si ya existía sin unidad y el comando trae una,
// la rellena.
func (s *Service) ensureItem(items repository.ItemRepository, itemRaw, unitNorm string) (*entity.Item, error) {
	normalized := strings.ToLower(command.CleanItem(itemRaw))
	if normalized == "" {
		return nil, domain.NewValidationError("El nombre del artículo es obligatorio.")
	}
	item, err := items.GetByNormalizedName(s.ownerKey, normalized)
	if err != nil {
		return nil, err
	}
	if item != nil {
		if unitNorm != "" && item.Unit == "" {
			if err := items.UpdateUnit(item.ID, unitNorm); err != nil {
				return nil, err
			}
			item.Unit = unitNorm
		}
		return item, nil
	}
	name := strings.TrimSpace(itemRaw)
	if name == "" {
		name = normalized
	}
	item = &entity.Item{
		ID:             uuid.New().String(),
		OwnerKey:       s.ownerKey,
		Name:           name,
		NormalizedName: normalized,
		Unit:           unitNorm,
		CreatedAt:      time.Now(),
	}
	if err := items.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// List devuelve las transacciones del tenant, timestamp ascendente.
func (s *Service) List(ctx context.Context) ([]*dto.TransactionView, error) {
	rows, err := s.deps.Transactions.ListWithItems(s.ownerKey)
	if err != nil {
		return nil, err
	}
	views := make([]*dto.TransactionView, 0, len(rows))
	for _, row := range rows {
		views = append(views, toTransactionView(&row.Transaction, row.ItemName, row.ItemUnit))
	}
	return views, nil
}

// DeleteMany borra las transacciones del tenant entre los ids dados y escribe
// una entrada de auditoría por cada fila borrada (no una por lote). Ids de
// otros tenants se ignoran y no cuentan. Atómico: un fallo parcial revierte
// todo el lote.
func (s *Service) DeleteMany(ctx context.Context, ids []string, actor string) (int, error) {
	clean := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			clean = append(clean, id)
		}
	}
	if len(clean) == 0 {
		return 0, nil
	}

	var deleted int
	err := s.deps.TxRunner.Run(ctx, func(
		_ repository.ItemRepository,
		txns repository.TransactionRepository,
		_ repository.SnapshotRepository,
		audits repository.AuditRepository,
	) error {
		rows, err := txns.FindWithItems(s.ownerKey, clean)
		if err != nil {
			return err
		}
		deleted, err = txns.DeleteByIDs(s.ownerKey, clean)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return nil
		}
		for _, row := range rows {
			if err := audits.Create(s.newAudit(actor, entity.AuditActionDelete, "txn", row.ID, txnAuditPayload{
				Item:     row.ItemName,
				Quantity: row.Quantity,
				Unit:     row.Unit,
				Location: row.Location,
			})); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// ClearAll borra todas las transacciones del tenant (delega en DeleteMany).
func (s *Service) ClearAll(ctx context.Context, actor string) (int, error) {
	ids, err := s.deps.Transactions.IDsByOwner(s.ownerKey)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return s.DeleteMany(ctx, ids, actor)
}

type bucketKey struct {
	item     string
	unit     string
	location string
}

// Aggregate recalcula el stock neto desde el historial completo, agrupando
// por (nombre limpio en minúsculas, unidad normalizada, ubicación en
// minúsculas) y sumando cantidades con signo (add = +, remove = -).
// Resultado ordenado por (item, location, unit) ascendente.
func (s *Service) Aggregate(ctx context.Context) ([]entity.StockTotal, error) {
	rows, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	totals := make(map[bucketKey]decimal.Decimal)
	for _, rec := range rows {
		key := bucketKey{
			item:     strings.ToLower(command.CleanItem(rec.Item)),
			unit:     command.NormalizeUnit(rec.Unit),
			location: command.NormalizeLocation(rec.Location),
		}
		qty := rec.Quantity
		if rec.Action == string(command.ActionRemove) {
			qty = qty.Neg()
		}
		totals[key] = totals[key].Add(qty)
	}
	result := make([]entity.StockTotal, 0, len(totals))
	for key, net := range totals {
		result = append(result, entity.StockTotal{
			Item:        key.item,
			Unit:        key.unit,
			Location:    key.location,
			NetQuantity: net,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Item != result[j].Item {
			return result[i].Item < result[j].Item
		}
		if result[i].Location != result[j].Location {
			return result[i].Location < result[j].Location
		}
		return result[i].Unit < result[j].Unit
	})
	return result, nil
}

// CreateSnapshot calcula el agregado actual y lo persiste como registro
// etiquetado con su entrada de auditoría, en una transacción.
func (s *Service) CreateSnapshot(ctx context.Context, actor, label string) (*dto.SnapshotView, error) {
	totals, err := s.Aggregate(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(totals)
	if err != nil {
		return nil, fmt.Errorf("serializar snapshot: %w", err)
	}

	snap := &entity.StockSnapshot{
		ID:        uuid.New().String(),
		OwnerKey:  s.ownerKey,
		Label:     strings.TrimSpace(label),
		Actor:     actor,
		Data:      data,
		CreatedAt: time.Now(),
	}
	err = s.deps.TxRunner.Run(ctx, func(
		_ repository.ItemRepository,
		_ repository.TransactionRepository,
		snaps repository.SnapshotRepository,
		audits repository.AuditRepository,
	) error {
		if err := snaps.Create(snap); err != nil {
			return err
		}
		return audits.Create(s.newAudit(actor, entity.AuditActionSnapshot, "snapshot", snap.ID, snapshotAuditPayload{
			Label: snap.Label,
			Count: len(totals),
		}))
	})
	if err != nil {
		return nil, err
	}
	return &dto.SnapshotView{
		ID:        snap.ID,
		Label:     snap.Label,
		Actor:     snap.Actor,
		CreatedAt: snap.CreatedAt.Format(time.RFC3339),
		Data:      totals,
	}, nil
}

// ListSnapshots devuelve los snapshots del tenant, más recientes primero.
// Un payload ilegible degrada a data vacía en vez de romper el listado.
func (s *Service) ListSnapshots(ctx context.Context) ([]*dto.SnapshotView, error) {
	snaps, err := s.deps.Snapshots.ListByOwner(s.ownerKey)
	if err != nil {
		return nil, err
	}
	views := make([]*dto.SnapshotView, 0, len(snaps))
	for _, snap := range snaps {
		var totals []entity.StockTotal
		if err := json.Unmarshal(snap.Data, &totals); err != nil || totals == nil {
			// lista vacía, no null: la forma documentada sobrevive
			totals = []entity.StockTotal{}
		}
		views = append(views, &dto.SnapshotView{
			ID:        snap.ID,
			Label:     snap.Label,
			Actor:     snap.Actor,
			CreatedAt: snap.CreatedAt.Format(time.RFC3339),
			Data:      totals,
		})
	}
	return views, nil
}

// DeleteSnapshot borra un snapshot del tenant. Devuelve false (sin error) si
// no existía; el caller decide si eso le importa.
func (s *Service) DeleteSnapshot(ctx context.Context, id, actor string) (bool, error) {
	var removed bool
	err := s.deps.TxRunner.Run(ctx, func(
		_ repository.ItemRepository,
		_ repository.TransactionRepository,
		snaps repository.SnapshotRepository,
		audits repository.AuditRepository,
	) error {
		snap, err := snaps.GetByID(s.ownerKey, id)
		if err != nil {
			return err
		}
		if snap == nil {
			return nil
		}
		if err := snaps.Delete(s.ownerKey, id); err != nil {
			return err
		}
		if err := audits.Create(s.newAudit(actor, entity.AuditActionSnapshotDelete, "snapshot", id, snapshotAuditPayload{
			Label: snap.Label,
		})); err != nil {
			return err
		}
		removed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// AuditTrail devuelve el audit log del tenant, más reciente primero.
func (s *Service) AuditTrail(ctx context.Context) ([]*dto.AuditView, error) {
	entries, err := s.deps.Audits.ListByOwner(s.ownerKey)
	if err != nil {
		return nil, err
	}
	views := make([]*dto.AuditView, 0, len(entries))
	for _, e := range entries {
		views = append(views, &dto.AuditView{
			ID:          e.ID,
			Actor:       e.Actor,
			Action:      e.Action,
			Entity:      e.Entity,
			ReferenceID: e.ReferenceID,
			Payload:     string(e.Payload),
			CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		})
	}
	return views, nil
}

func (s *Service) newAudit(actor, action, entityName, referenceID string, payload any) *entity.AuditLog {
	data, _ := json.Marshal(payload)
	return &entity.AuditLog{
		ID:          uuid.New().String(),
		OwnerKey:    s.ownerKey,
		Actor:       actor,
		Action:      action,
		Entity:      entityName,
		ReferenceID: referenceID,
		Payload:     data,
		CreatedAt:   time.Now(),
	}
}

func toTransactionView(txn *entity.Transaction, itemName, itemUnit string) *dto.TransactionView {
	action := string(command.ActionAdd)
	if txn.Kind == entity.KindOut {
		action = string(command.ActionRemove)
	}
	unit := txn.Unit
	if unit == "" {
		unit = itemUnit
	}
	return &dto.TransactionView{
		ID:        txn.ID,
		Timestamp: txn.Timestamp.Format(time.RFC3339),
		Action:    action,
		Item:      itemName,
		Quantity:  txn.Quantity,
		Unit:      unit,
		Location:  txn.Location,
		Note:      txn.Note,
		By:        txn.EnteredBy,
		Source:    txn.Source,
	}
}
