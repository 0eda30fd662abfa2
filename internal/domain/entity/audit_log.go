package entity

import (
	"encoding/json"
	"time"
)

// Acciones registradas en el audit log.
const (
	AuditActionAdd            = "inventory.add"
	AuditActionRemove         = "inventory.remove"
	AuditActionDelete         = "inventory.delete"
	AuditActionSnapshot       = "inventory.snapshot"
	AuditActionSnapshotDelete = "inventory.snapshot.delete"
)

// AuditLog registro append-only de cada operación mutadora del ledger.
// Se escribe en la misma unidad atómica que la mutación; nunca se edita
// ni se borra en operación normal.
type AuditLog struct {
	ID          string
	OwnerKey    string
	Actor       string
	Action      string
	Entity      string // "txn" | "snapshot"
	ReferenceID string
	Payload     json.RawMessage
	CreatedAt   time.Time
}
