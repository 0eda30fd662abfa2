package repository

import "github.com/jhoicas/stockvoz-api/internal/domain/entity"

// SnapshotRepository puerto de persistencia de snapshots de stock.
type SnapshotRepository interface {
	Create(snap *entity.StockSnapshot) error
	// ListByOwner devuelve los snapshots del tenant, más recientes primero.
	ListByOwner(ownerKey string) ([]*entity.StockSnapshot, error)
	// GetByID devuelve nil, nil si no existe para ese tenant.
	GetByID(ownerKey, id string) (*entity.StockSnapshot, error)
	Delete(ownerKey, id string) error
}
