package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockvoz-api/internal/domain/entity"
)

// ParseCommandRequest texto libre a interpretar.
type ParseCommandRequest struct {
	Text string `json:"text"`
}

// RecordCommandRequest texto libre que se interpreta y se registra en el
// ledger en un solo paso (flujo de voz).
type RecordCommandRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"` // "voice" | "manual"; vacío = manual
}

// RecordTransactionRequest registro estructurado (formularios de la UI).
// Quantity viaja como string para aceptar "5", "2.5" o "2,5".
type RecordTransactionRequest struct {
	Action   string `json:"action"`
	Item     string `json:"item"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
	Location string `json:"location"`
	Note     string `json:"note"`
	Source   string `json:"source"`
}

// DeleteTransactionsRequest ids a borrar en lote.
type DeleteTransactionsRequest struct {
	IDs []string `json:"ids"`
}

// CreateSnapshotRequest etiqueta opcional del snapshot.
type CreateSnapshotRequest struct {
	Label string `json:"label"`
}

// TransactionView vista de una transacción combinada con su artículo,
// tal como la consume la capa de presentación.
type TransactionView struct {
	ID        string          `json:"id"`
	Timestamp string          `json:"timestamp"` // RFC 3339
	Action    string          `json:"action"`
	Item      string          `json:"item"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	Location  string          `json:"location"`
	Note      string          `json:"note"`
	By        string          `json:"by"`
	Source    string          `json:"source"`
}

// SnapshotView snapshot con su payload ya deserializado.
type SnapshotView struct {
	ID        string              `json:"id"`
	Label     string              `json:"label"`
	Actor     string              `json:"actor"`
	CreatedAt string              `json:"created_at"` // RFC 3339
	Data      []entity.StockTotal `json:"data"`
}

// AuditView entrada del audit trail para la capa de presentación.
type AuditView struct {
	ID          string `json:"id"`
	Actor       string `json:"actor"`
	Action      string `json:"action"`
	Entity      string `json:"entity"`
	ReferenceID string `json:"reference_id"`
	Payload     string `json:"payload"`
	CreatedAt   string `json:"created_at"`
}
