package entity

import "time"

// Item artículo del inventario de un tenant. Se crea de forma perezosa con la
// primera transacción que lo referencia y nunca se borra.
// Identidad: (owner_key, normalized_name).
type Item struct {
	ID             string
	OwnerKey       string
	Name           string // nombre con la capitalización de la primera vez
	NormalizedName string // minúsculas, sin palabras de relleno
	Unit           string // unidad por defecto; se asigna en el primer uso
	CreatedAt      time.Time
}
