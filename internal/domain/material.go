package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricePoint es una entrada del historial de precios. El historial es append-only:
// el orden de inserción es el orden cronológico.
type PricePoint struct {
	Date     Date            `json:"date"`
	Price    decimal.Decimal `json:"price" validate:"gte=0"`
	Supplier string          `json:"supplier,omitempty"`
}

type Material struct {
	ID           string          `json:"id"`
	Name         string          `json:"name" validate:"required,max=180"`
	Description  string          `json:"description"`
	Category     string          `json:"category" validate:"max=100"`
	Unit         string          `json:"unit" validate:"required,max=10"`
	CurrentStock decimal.Decimal `json:"current_stock" validate:"gte=0"`
	MinStock     decimal.Decimal `json:"min_stock" validate:"gte=0"`
	CurrentPrice decimal.Decimal `json:"current_price" validate:"gte=0"`
	PriceHistory []PricePoint    `json:"price_history" validate:"dive"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (m Material) LowStock() bool {
	return m.CurrentStock.LessThanOrEqual(m.MinStock)
}

// PriceVariation compara el precio actual contra la penúltima entrada del historial.
// ok es false si no hay dos entradas o el precio anterior es cero.
func (m Material) PriceVariation() (pct decimal.Decimal, ok bool) {
	n := len(m.PriceHistory)
	if n < 2 {
		return decimal.Zero, false
	}
	prev := m.PriceHistory[n-2].Price
	if prev.IsZero() {
		return decimal.Zero, false
	}
	return m.CurrentPrice.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100)).Round(2), true
}

type MaterialPatch struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Category     *string          `json:"category"`
	Unit         *string          `json:"unit"`
	CurrentStock *decimal.Decimal `json:"current_stock"`
	MinStock     *decimal.Decimal `json:"min_stock"`
	CurrentPrice *decimal.Decimal `json:"current_price"`
	Supplier     *string          `json:"supplier"`
}

// Apply copia los campos presentes. El precio se maneja aparte porque dispara el historial.
func (p MaterialPatch) Apply(m *Material) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.Category != nil {
		m.Category = *p.Category
	}
	if p.Unit != nil {
		m.Unit = *p.Unit
	}
	if p.CurrentStock != nil {
		m.CurrentStock = *p.CurrentStock
	}
	if p.MinStock != nil {
		m.MinStock = *p.MinStock
	}
}

type MaterialFilter struct {
	Query    string
	Category string
	LowStock bool
}
