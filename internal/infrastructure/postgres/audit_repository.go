package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockvoz-api/internal/domain/entity"
	"github.com/jhoicas/stockvoz-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implementación de AuditRepository sobre PostgreSQL
// (usable con pool o tx).
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Create inserta una entrada del audit log.
func (r *AuditRepo) Create(entry *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, owner_key, actor, action, entity, reference_id, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.OwnerKey, entry.Actor, entry.Action, entry.Entity,
		entry.ReferenceID, entry.Payload, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create audit entry: %w", err)
	}
	return nil
}

// ListByOwner audit trail del tenant, más reciente primero.
func (r *AuditRepo) ListByOwner(ownerKey string) ([]*entity.AuditLog, error) {
	query := `
		SELECT id, owner_key, actor, action, entity, reference_id, payload, created_at
		FROM audit_logs WHERE owner_key = $1
		ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, ownerKey)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditLog
	for rows.Next() {
		var e entity.AuditLog
		if err := rows.Scan(&e.ID, &e.OwnerKey, &e.Actor, &e.Action, &e.Entity,
			&e.ReferenceID, &e.Payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
