package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Component es una línea de la lista de materiales de un producto.
type Component struct {
	MaterialID   string          `json:"material_id" validate:"required"`
	MaterialName string          `json:"material_name"`
	Quantity     decimal.Decimal `json:"quantity" validate:"gt=0"`
	Unit         string          `json:"unit"`
}

type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name" validate:"required,max=180"`
	Description string      `json:"description"`
	Category    string      `json:"category" validate:"max=100"`
	Unit        string      `json:"unit" validate:"max=10"`
	Components  []Component `json:"components" validate:"dive"`
	CreatedAt   time.Time   `json:"created_at"`
}

// MergeComponents deja un componente por material; los repetidos suman cantidad.
func MergeComponents(in []Component) []Component {
	out := make([]Component, 0, len(in))
	idx := map[string]int{}
	for _, c := range in {
		if i, ok := idx[c.MaterialID]; ok {
			out[i].Quantity = out[i].Quantity.Add(c.Quantity)
			continue
		}
		idx[c.MaterialID] = len(out)
		out = append(out, c)
	}
	return out
}

type ProductPatch struct {
	Name        *string      `json:"name"`
	Description *string      `json:"description"`
	Category    *string      `json:"category"`
	Unit        *string      `json:"unit"`
	Components  *[]Component `json:"components"`
}

func (p ProductPatch) Apply(pr *Product) {
	if p.Name != nil {
		pr.Name = *p.Name
	}
	if p.Description != nil {
		pr.Description = *p.Description
	}
	if p.Category != nil {
		pr.Category = *p.Category
	}
	if p.Unit != nil {
		pr.Unit = *p.Unit
	}
	if p.Components != nil {
		pr.Components = MergeComponents(*p.Components)
	}
}

type ProductFilter struct {
	Query    string
	Category string
}
