package ledger

import (
	"context"

	"github.com/jhoicas/stockvoz-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la unidad atómica de cada operación
// mutadora del ledger: o aterrizan todas las escrituras (upsert de artículo,
// insert/delete de transacción, insert de auditoría) o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		items repository.ItemRepository,
		txns repository.TransactionRepository,
		snaps repository.SnapshotRepository,
		audits repository.AuditRepository,
	) error) error
}
