package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
)

// ValidationError error recuperable de validación de entrada. El mensaje llega
// tal cual a la capa de presentación.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError construye un ValidationError con formato estilo Printf.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// InsufficientStockError regla de negocio: un retiro excede el stock disponible
// del bucket (artículo, ubicación). Incluye lo disponible para que el mensaje
// sea accionable.
type InsufficientStockError struct {
	Item      string
	Unit      string
	Location  string
	Available decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	loc := e.Location
	if loc == "" {
		loc = "el stock general"
	}
	return fmt.Sprintf("Solo hay %s %s de %s disponible en %s.", e.Available.String(), e.Unit, e.Item, loc)
}
