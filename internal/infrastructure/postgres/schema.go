package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Sentencias idempotentes del esquema. El servicio asume que estas tablas
// existen antes de la primera llamada; EnsureSchema es esa garantía.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS items (
		id UUID PRIMARY KEY,
		owner_key TEXT NOT NULL,
		name TEXT NOT NULL,
		normalized_name TEXT NOT NULL,
		unit TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT uq_items_owner_name UNIQUE (owner_key, normalized_name)
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id UUID PRIMARY KEY,
		owner_key TEXT NOT NULL,
		item_id UUID NOT NULL REFERENCES items(id),
		kind TEXT NOT NULL CHECK (kind IN ('IN', 'OUT')),
		qty NUMERIC NOT NULL CHECK (qty > 0),
		unit TEXT NOT NULL DEFAULT '',
		note TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		location_normalized TEXT NOT NULL DEFAULT '',
		entered_by TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL DEFAULT '',
		raw_payload JSONB,
		ts TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS ix_txn_owner_item_ts ON transactions (owner_key, item_id, ts)`,
	`CREATE INDEX IF NOT EXISTS ix_txn_owner_location ON transactions (owner_key, location_normalized)`,
	`CREATE TABLE IF NOT EXISTS stock_snapshots (
		id UUID PRIMARY KEY,
		owner_key TEXT NOT NULL,
		label TEXT NOT NULL DEFAULT '',
		actor TEXT NOT NULL DEFAULT '',
		data JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS ix_snapshots_owner_created ON stock_snapshots (owner_key, created_at)`,
	`CREATE TABLE IF NOT EXISTS audit_logs (
		id UUID PRIMARY KEY,
		owner_key TEXT NOT NULL,
		actor TEXT NOT NULL DEFAULT '',
		action TEXT NOT NULL,
		entity TEXT NOT NULL DEFAULT '',
		reference_id TEXT NOT NULL DEFAULT '',
		payload JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS ix_audit_owner_created ON audit_logs (owner_key, created_at)`,
}

// EnsureSchema crea las tablas e índices del ledger si no existen.
// Se invoca una vez al arrancar, antes de servir tráfico.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
