package repository

import "github.com/jhoicas/stockvoz-api/internal/domain/entity"

// ItemRepository puerto de persistencia de artículos. Todas las consultas son
// por tenant (ownerKey); el aislamiento entre cuentas vive aquí.
type ItemRepository interface {
	// GetByNormalizedName devuelve nil, nil si el artículo no existe.
	GetByNormalizedName(ownerKey, normalizedName string) (*entity.Item, error)
	Create(item *entity.Item) error
	// UpdateUnit rellena la unidad por defecto de un artículo que no la tenía.
	UpdateUnit(id, unit string) error
}
