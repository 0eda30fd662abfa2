package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockvoz-api/internal/domain/entity"
	"github.com/jhoicas/stockvoz-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación de TransactionRepository sobre PostgreSQL
// (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const txnWithItemColumns = `
	t.id, t.owner_key, t.item_id, t.kind, t.qty, t.unit, t.note,
	t.location, t.location_normalized, t.entered_by, t.source, t.raw_payload, t.ts,
	i.name, i.unit`

// Create persiste una transacción del ledger.
func (r *TransactionRepo) Create(txn *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, owner_key, item_id, kind, qty, unit, note, location, location_normalized, entered_by, source, raw_payload, ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		txn.ID, txn.OwnerKey, txn.ItemID, txn.Kind, txn.Quantity, txn.Unit, txn.Note,
		txn.Location, txn.LocationNormalized, txn.EnteredBy, txn.Source, txn.RawPayload, txn.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// ListWithItems transacciones del tenant con su artículo, ts ascendente.
func (r *TransactionRepo) ListWithItems(ownerKey string) ([]*entity.TransactionWithItem, error) {
	query := `
		SELECT ` + txnWithItemColumns + `
		FROM transactions t
		JOIN items i ON i.id = t.item_id
		WHERE t.owner_key = $1
		ORDER BY t.ts ASC`
	rows, err := r.q.Query(context.Background(), query, ownerKey)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	return scanTransactionsWithItems(rows)
}

// SumByItemLocation cantidad neta del bucket (artículo, ubicación normalizada).
func (r *TransactionRepo) SumByItemLocation(ownerKey, itemID, locationNormalized string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN kind = 'IN' THEN qty ELSE -qty END), 0)
		FROM transactions
		WHERE owner_key = $1 AND item_id = $2 AND location_normalized = $3`
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, ownerKey, itemID, locationNormalized).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum transactions: %w", err)
	}
	return sum, nil
}

// FindWithItems transacciones del tenant entre los ids dados.
func (r *TransactionRepo) FindWithItems(ownerKey string, ids []string) ([]*entity.TransactionWithItem, error) {
	query := `
		SELECT ` + txnWithItemColumns + `
		FROM transactions t
		JOIN items i ON i.id = t.item_id
		WHERE t.owner_key = $1 AND t.id = ANY($2)`
	rows, err := r.q.Query(context.Background(), query, ownerKey, ids)
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}
	defer rows.Close()
	return scanTransactionsWithItems(rows)
}

// IDsByOwner ids de todas las transacciones del tenant.
func (r *TransactionRepo) IDsByOwner(ownerKey string) ([]string, error) {
	query := `SELECT id FROM transactions WHERE owner_key = $1`
	rows, err := r.q.Query(context.Background(), query, ownerKey)
	if err != nil {
		return nil, fmt.Errorf("list transaction ids: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan transaction id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DeleteByIDs hard delete de las transacciones del tenant entre los ids dados.
// Devuelve cuántas filas borró realmente.
func (r *TransactionRepo) DeleteByIDs(ownerKey string, ids []string) (int, error) {
	query := `DELETE FROM transactions WHERE owner_key = $1 AND id = ANY($2)`
	tag, err := r.q.Exec(context.Background(), query, ownerKey, ids)
	if err != nil {
		return 0, fmt.Errorf("delete transactions: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func scanTransactionsWithItems(rows pgx.Rows) ([]*entity.TransactionWithItem, error) {
	var list []*entity.TransactionWithItem
	for rows.Next() {
		var row entity.TransactionWithItem
		if err := rows.Scan(
			&row.ID, &row.OwnerKey, &row.ItemID, &row.Kind, &row.Quantity, &row.Unit, &row.Note,
			&row.Location, &row.LocationNormalized, &row.EnteredBy, &row.Source, &row.RawPayload, &row.Timestamp,
			&row.ItemName, &row.ItemUnit,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}
