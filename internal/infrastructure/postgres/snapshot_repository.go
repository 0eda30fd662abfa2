package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockvoz-api/internal/domain/entity"
	"github.com/jhoicas/stockvoz-api/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

// SnapshotRepo implementación de SnapshotRepository sobre PostgreSQL
// (usable con pool o tx).
type SnapshotRepo struct {
	q Querier
}

// NewSnapshotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSnapshotRepository(q Querier) *SnapshotRepo {
	return &SnapshotRepo{q: q}
}

// Create persiste un snapshot de stock.
func (r *SnapshotRepo) Create(snap *entity.StockSnapshot) error {
	query := `
		INSERT INTO stock_snapshots (id, owner_key, label, actor, data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		snap.ID, snap.OwnerKey, snap.Label, snap.Actor, snap.Data, snap.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	return nil
}

// ListByOwner snapshots del tenant, más recientes primero.
func (r *SnapshotRepo) ListByOwner(ownerKey string) ([]*entity.StockSnapshot, error) {
	query := `
		SELECT id, owner_key, label, actor, data, created_at
		FROM stock_snapshots WHERE owner_key = $1
		ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, ownerKey)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockSnapshot
	for rows.Next() {
		var s entity.StockSnapshot
		if err := rows.Scan(&s.ID, &s.OwnerKey, &s.Label, &s.Actor, &s.Data, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// GetByID devuelve nil, nil si el snapshot no existe para ese tenant.
func (r *SnapshotRepo) GetByID(ownerKey, id string) (*entity.StockSnapshot, error) {
	query := `
		SELECT id, owner_key, label, actor, data, created_at
		FROM stock_snapshots WHERE owner_key = $1 AND id = $2`
	var s entity.StockSnapshot
	err := r.q.QueryRow(context.Background(), query, ownerKey, id).Scan(
		&s.ID, &s.OwnerKey, &s.Label, &s.Actor, &s.Data, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return &s, nil
}

// Delete borra un snapshot del tenant.
func (r *SnapshotRepo) Delete(ownerKey, id string) error {
	query := `DELETE FROM stock_snapshots WHERE owner_key = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query, ownerKey, id)
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}
