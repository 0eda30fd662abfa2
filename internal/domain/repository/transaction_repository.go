package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockvoz-api/internal/domain/entity"
)

// TransactionRepository puerto de persistencia del ledger de transacciones.
type TransactionRepository interface {
	Create(txn *entity.Transaction) error
	// ListWithItems devuelve las transacciones del tenant junto con su
	// artículo, ordenadas por timestamp ascendente.
	ListWithItems(ownerKey string) ([]*entity.TransactionWithItem, error)
	// SumByItemLocation cantidad neta (IN - OUT) de un bucket
	// (artículo, ubicación normalizada).
	SumByItemLocation(ownerKey, itemID, locationNormalized string) (decimal.Decimal, error)
	// FindWithItems devuelve las transacciones del tenant entre los ids dados;
	// ids de otros tenants simplemente no aparecen.
	FindWithItems(ownerKey string, ids []string) ([]*entity.TransactionWithItem, error)
	IDsByOwner(ownerKey string) ([]string, error)
	// DeleteByIDs borra (hard delete) y devuelve cuántas filas eliminó.
	DeleteByIDs(ownerKey string, ids []string) (int, error)
}
