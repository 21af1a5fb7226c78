package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Direction string

const (
	DirectionIn  Direction = "in"  // entrada
	DirectionOut Direction = "out" // salida
)

const (
	CategoryDeposit      = "deposit"
	CategoryFinalPayment = "final_payment"
)

// Transaction es un movimiento de caja. Sólo se borra en cascada con su proyecto.
type Transaction struct {
	ID           string          `json:"id"`
	ProjectID    string          `json:"project_id,omitempty"`
	ProjectTitle string          `json:"project_title,omitempty"`
	Direction    Direction       `json:"type" validate:"required,oneof=in out"`
	Category     string          `json:"category" validate:"required,max=60"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount" validate:"gte=0"`
	Date         Date            `json:"date"`
	Automatic    bool            `json:"automatic"` // seña o pago final generados por el sistema
	CreatedAt    time.Time       `json:"created_at"`
}
