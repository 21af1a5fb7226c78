package domain

import "github.com/shopspring/decimal"

type PaymentMethod string

const (
	PaymentCash            PaymentMethod = "cash"
	PaymentInstantTransfer PaymentMethod = "instant_transfer"
	PaymentCreditCard      PaymentMethod = "credit_card"
	PaymentDebitCard       PaymentMethod = "debit_card"
	PaymentBankSlip        PaymentMethod = "bank_slip"
	PaymentBankTransfer    PaymentMethod = "bank_transfer"
)

var paymentMethodLabels = map[PaymentMethod]string{
	PaymentCash:            "Efectivo",
	PaymentInstantTransfer: "Transferencia inmediata",
	PaymentCreditCard:      "Tarjeta de crédito",
	PaymentDebitCard:       "Tarjeta de débito",
	PaymentBankSlip:        "Boleta bancaria",
	PaymentBankTransfer:    "Transferencia bancaria",
}

func (m PaymentMethod) Label() string {
	if l, ok := paymentMethodLabels[m]; ok {
		return l
	}
	return string(m)
}

// PaymentTerms va embebido en el proyecto. InstallmentValue y TotalWithDiscount son derivados.
type PaymentTerms struct {
	Installments       int             `json:"installments" validate:"gte=1,lte=120"`
	Method             PaymentMethod   `json:"payment_method" validate:"required,oneof=cash instant_transfer credit_card debit_card bank_slip bank_transfer"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage" validate:"gte=0,lte=100"`
	InstallmentValue   decimal.Decimal `json:"installment_value"`
	TotalWithDiscount  decimal.Decimal `json:"total_with_discount"`
}

func (t *PaymentTerms) Compute(budget decimal.Decimal) {
	hundred := decimal.NewFromInt(100)
	factor := hundred.Sub(t.DiscountPercentage).Div(hundred)
	t.TotalWithDiscount = budget.Mul(factor).Round(2)
	if t.Installments <= 0 {
		t.InstallmentValue = t.TotalWithDiscount
		return
	}
	t.InstallmentValue = t.TotalWithDiscount.Div(decimal.NewFromInt(int64(t.Installments))).Round(2)
}
