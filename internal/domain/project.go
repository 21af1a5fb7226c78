package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProjectStatus string

const (
	ProjectStatusQuote        ProjectStatus = "quote"
	ProjectStatusApproved     ProjectStatus = "approved"
	ProjectStatusInProduction ProjectStatus = "in_production"
	ProjectStatusCompleted    ProjectStatus = "completed"
	ProjectStatusDelivered    ProjectStatus = "delivered"
)

// Active: aprobado o en producción.
func (s ProjectStatus) Active() bool {
	return s == ProjectStatusApproved || s == ProjectStatusInProduction
}

// AwaitingFinalPayment: terminado o entregado.
func (s ProjectStatus) AwaitingFinalPayment() bool {
	return s == ProjectStatusCompleted || s == ProjectStatusDelivered
}

type ProjectType string

const (
	ProjectTypeQuote ProjectType = "quote"
	ProjectTypeSale  ProjectType = "sale"
)

// LineItem es un producto cotizado dentro de un proyecto.
type LineItem struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id" validate:"required"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity" validate:"gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"gte=0"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type Project struct {
	ID            string           `json:"id"`
	Number        int              `json:"number"`
	ClientID      string           `json:"client_id" validate:"required"`
	ClientName    string           `json:"client_name"`
	Title         string           `json:"title" validate:"required,max=180"`
	Description   string           `json:"description"`
	Status        ProjectStatus    `json:"status" validate:"required,oneof=quote approved in_production completed delivered"`
	Type          ProjectType      `json:"type" validate:"required,oneof=quote sale"`
	Items         []LineItem       `json:"items" validate:"dive"`
	Budget        decimal.Decimal  `json:"budget" validate:"gte=0"`
	StartDate     Date             `json:"start_date"`
	EndDate       Date             `json:"end_date"`
	MaterialsCost *decimal.Decimal `json:"materials_cost,omitempty" validate:"omitempty,gte=0"`
	LaborCost     *decimal.Decimal `json:"labor_cost,omitempty" validate:"omitempty,gte=0"`
	ProfitMargin  *decimal.Decimal `json:"profit_margin,omitempty"`
	PaymentTerms  *PaymentTerms    `json:"payment_terms,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// HalfBudget es el monto de la seña y del pago final.
func (p Project) HalfBudget() decimal.Decimal {
	return p.Budget.Mul(decimal.NewFromFloat(0.5))
}

// Total es lo que se cobra: con descuento si hay condiciones de pago, si no el presupuesto.
func (p Project) Total() decimal.Decimal {
	if p.PaymentTerms != nil && p.PaymentTerms.TotalWithDiscount.IsPositive() {
		return p.PaymentTerms.TotalWithDiscount
	}
	return p.Budget
}

// Recalculate recompone los totales de línea y los derivados de las condiciones de pago.
func (p *Project) Recalculate() {
	for i := range p.Items {
		p.Items[i].TotalPrice = p.Items[i].Quantity.Mul(p.Items[i].UnitPrice)
	}
	if p.PaymentTerms != nil {
		p.PaymentTerms.Compute(p.Budget)
	}
}

type ProjectPatch struct {
	ClientID      *string          `json:"client_id"`
	Title         *string          `json:"title"`
	Description   *string          `json:"description"`
	Status        *ProjectStatus   `json:"status"`
	Type          *ProjectType     `json:"type"`
	Items         *[]LineItem      `json:"items"`
	Budget        *decimal.Decimal `json:"budget"`
	StartDate     *Date            `json:"start_date"`
	EndDate       *Date            `json:"end_date"`
	MaterialsCost *decimal.Decimal `json:"materials_cost"`
	LaborCost     *decimal.Decimal `json:"labor_cost"`
	ProfitMargin  *decimal.Decimal `json:"profit_margin"`
	PaymentTerms  *PaymentTerms    `json:"payment_terms"`
}

// Apply no toca ClientID ni Items: el caso de uso resuelve sus snapshots.
func (p ProjectPatch) Apply(pr *Project) {
	if p.Title != nil {
		pr.Title = *p.Title
	}
	if p.Description != nil {
		pr.Description = *p.Description
	}
	if p.Status != nil {
		pr.Status = *p.Status
	}
	if p.Type != nil {
		pr.Type = *p.Type
	}
	if p.Budget != nil {
		pr.Budget = *p.Budget
	}
	if p.StartDate != nil {
		pr.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		pr.EndDate = *p.EndDate
	}
	if p.MaterialsCost != nil {
		pr.MaterialsCost = p.MaterialsCost
	}
	if p.LaborCost != nil {
		pr.LaborCost = p.LaborCost
	}
	if p.ProfitMargin != nil {
		pr.ProfitMargin = p.ProfitMargin
	}
	if p.PaymentTerms != nil {
		t := *p.PaymentTerms
		pr.PaymentTerms = &t
	}
}

type ProjectFilter struct {
	Query  string
	Status ProjectStatus
	Type   ProjectType
}
