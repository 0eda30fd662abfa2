package repository

import "github.com/jhoicas/stockvoz-api/internal/domain/entity"

// AuditRepository puerto del audit log. Solo inserta y lista; las entradas
// no se editan ni se borran en operación normal.
type AuditRepository interface {
	Create(entry *entity.AuditLog) error
	// ListByOwner devuelve el audit trail del tenant, más reciente primero.
	ListByOwner(ownerKey string) ([]*entity.AuditLog, error)
}
