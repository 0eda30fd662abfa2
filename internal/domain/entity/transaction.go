package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Dirección de una transacción del ledger. La cantidad siempre es positiva;
// el signo lo codifica Kind.
const (
	KindIn  = "IN"
	KindOut = "OUT"
)

// Transaction asiento inmutable del ledger de inventario.
type Transaction struct {
	ID                 string
	OwnerKey           string
	ItemID             string
	Kind               string // IN | OUT
	Quantity           decimal.Decimal
	Unit               string
	Note               string
	Location           string // texto libre tal como llegó
	LocationNormalized string // minúsculas, para agrupar buckets
	EnteredBy          string
	Source             string // "manual" | "voice"
	RawPayload         json.RawMessage
	Timestamp          time.Time
}

// TransactionWithItem fila de transacción junto con los datos del artículo
// (resultado del join transactions ⋈ items).
type TransactionWithItem struct {
	Transaction
	ItemName string
	ItemUnit string
}
