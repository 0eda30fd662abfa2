package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// StockSnapshot captura etiquetada del agregado de stock de un tenant en un
// instante. Inmutable una vez creada; puede borrarse.
type StockSnapshot struct {
	ID        string
	OwnerKey  string
	Label     string
	Actor     string
	Data      json.RawMessage // []StockTotal serializado
	CreatedAt time.Time
}

// StockTotal cantidad neta de un bucket (artículo, unidad, ubicación).
// Es el registro que se persiste dentro de StockSnapshot.Data y el que
// devuelve la agregación.
type StockTotal struct {
	Item        string          `json:"item"`
	Unit        string          `json:"unit"`
	Location    string          `json:"location"`
	NetQuantity decimal.Decimal `json:"net_quantity"`
}
