package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovement mueve el stock del material al crearse. Borrarlo no revierte el stock.
type StockMovement struct {
	ID           string           `json:"id"`
	MaterialID   string           `json:"material_id" validate:"required"`
	MaterialName string           `json:"material_name"`
	Direction    Direction        `json:"type" validate:"required,oneof=in out"`
	Quantity     decimal.Decimal  `json:"quantity" validate:"gt=0"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty" validate:"omitempty,gte=0"`
	TotalValue   *decimal.Decimal `json:"total_value,omitempty"`
	ProjectID    string           `json:"project_id,omitempty"`
	ProjectTitle string           `json:"project_title,omitempty"`
	Date         Date             `json:"date"`
	CreatedAt    time.Time        `json:"created_at"`
}

// Apply devuelve el stock resultante, nunca negativo. clamped indica que se descartó exceso.
func (m StockMovement) Apply(current decimal.Decimal) (next decimal.Decimal, clamped bool) {
	if m.Direction == DirectionIn {
		next = current.Add(m.Quantity)
	} else {
		next = current.Sub(m.Quantity)
	}
	if next.IsNegative() {
		return decimal.Zero, true
	}
	return next, false
}
