package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockvoz-api/internal/domain"
	"github.com/jhoicas/stockvoz-api/internal/domain/entity"
	"github.com/jhoicas/stockvoz-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// GetByNormalizedName busca el artículo por tenant y nombre normalizado.
// Devuelve nil, nil si no existe.
func (r *ItemRepo) GetByNormalizedName(ownerKey, normalizedName string) (*entity.Item, error) {
	query := `
		SELECT id, owner_key, name, normalized_name, unit, created_at
		FROM items WHERE owner_key = $1 AND normalized_name = $2`
	var it entity.Item
	err := r.q.QueryRow(context.Background(), query, ownerKey, normalizedName).Scan(
		&it.ID, &it.OwnerKey, &it.Name, &it.NormalizedName, &it.Unit, &it.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// Create persiste un artículo nuevo. (owner_key, normalized_name) es único.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (id, owner_key, name, normalized_name, unit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OwnerKey, item.Name, item.NormalizedName, item.Unit, item.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// UpdateUnit rellena la unidad por defecto de un artículo.
func (r *ItemRepo) UpdateUnit(id, unit string) error {
	query := `UPDATE items SET unit = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, unit)
	if err != nil {
		return fmt.Errorf("update item unit: %w", err)
	}
	return nil
}
