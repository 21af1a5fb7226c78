package memory

import (
	"github.com/shopspring/decimal"

	"github.com/phenrril/carpinteria/internal/domain"
)

func cloneClient(c domain.Client) domain.Client { return c }

func cloneMaterial(m domain.Material) domain.Material {
	m.PriceHistory = append([]domain.PricePoint(nil), m.PriceHistory...)
	return m
}

func cloneProduct(p domain.Product) domain.Product {
	p.Components = append([]domain.Component(nil), p.Components...)
	return p
}

func cloneProject(p domain.Project) domain.Project {
	p.Items = append([]domain.LineItem(nil), p.Items...)
	p.MaterialsCost = cloneDecimal(p.MaterialsCost)
	p.LaborCost = cloneDecimal(p.LaborCost)
	p.ProfitMargin = cloneDecimal(p.ProfitMargin)
	if p.PaymentTerms != nil {
		t := *p.PaymentTerms
		p.PaymentTerms = &t
	}
	return p
}

func cloneMovement(m domain.StockMovement) domain.StockMovement {
	m.UnitPrice = cloneDecimal(m.UnitPrice)
	m.TotalValue = cloneDecimal(m.TotalValue)
	return m
}

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
