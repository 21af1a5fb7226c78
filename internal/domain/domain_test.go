package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPaymentTermsCompute(t *testing.T) {
	cases := []struct {
		name         string
		budget       string
		installments int
		discount     string
		total, each  string
	}{
		{"sin descuento", "12000", 3, "0", "12000", "4000"},
		{"con descuento", "1000", 3, "5", "950", "316.67"},
		{"sin cuotas", "500", 0, "10", "450", "450"},
		{"descuento total", "800", 2, "100", "0", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pt := PaymentTerms{Installments: tc.installments, Method: PaymentCash, DiscountPercentage: d(tc.discount)}
			pt.Compute(d(tc.budget))
			assert.True(t, d(tc.total).Equal(pt.TotalWithDiscount), "total %s", pt.TotalWithDiscount)
			assert.True(t, d(tc.each).Equal(pt.InstallmentValue), "cuota %s", pt.InstallmentValue)
		})
	}
}

func TestProjectTotalAndRecalculate(t *testing.T) {
	p := Project{
		Budget: d("1500"),
		Items: []LineItem{
			{Quantity: d("10"), UnitPrice: d("150")},
			{Quantity: d("0.5"), UnitPrice: d("3")},
		},
	}
	assert.True(t, p.Total().Equal(d("1500")))
	p.Recalculate()
	assert.True(t, p.Items[0].TotalPrice.Equal(d("1500")))
	assert.True(t, p.Items[1].TotalPrice.Equal(d("1.5")))
	assert.True(t, p.HalfBudget().Equal(d("750")))

	p.PaymentTerms = &PaymentTerms{Installments: 3, Method: PaymentCreditCard, DiscountPercentage: d("10")}
	p.Recalculate()
	assert.True(t, p.Total().Equal(d("1350")))
}

func TestStatusHelpers(t *testing.T) {
	assert.True(t, ProjectStatusApproved.Active())
	assert.True(t, ProjectStatusInProduction.Active())
	assert.False(t, ProjectStatusQuote.Active())
	assert.True(t, ProjectStatusCompleted.AwaitingFinalPayment())
	assert.True(t, ProjectStatusDelivered.AwaitingFinalPayment())
	assert.False(t, ProjectStatusApproved.AwaitingFinalPayment())
	assert.Equal(t, "Tarjeta de crédito", PaymentCreditCard.Label())
	assert.Equal(t, "cheque", PaymentMethod("cheque").Label())
}

func TestMaterialPriceVariation(t *testing.T) {
	m := Material{CurrentPrice: d("85.50"), PriceHistory: []PricePoint{{Price: d("80")}, {Price: d("85.50")}}}
	pct, ok := m.PriceVariation()
	require.True(t, ok)
	assert.True(t, pct.Equal(d("6.88")), pct.String())

	_, ok = Material{PriceHistory: []PricePoint{{Price: d("1")}}}.PriceVariation()
	assert.False(t, ok)
	_, ok = Material{CurrentPrice: d("3"), PriceHistory: []PricePoint{{Price: d("0")}, {Price: d("3")}}}.PriceVariation()
	assert.False(t, ok)

	assert.True(t, Material{CurrentStock: d("10"), MinStock: d("10")}.LowStock())
	assert.False(t, Material{CurrentStock: d("10.01"), MinStock: d("10")}.LowStock())
}

func TestMergeComponents(t *testing.T) {
	got := MergeComponents([]Component{
		{MaterialID: "a", Quantity: d("1")},
		{MaterialID: "b", Quantity: d("2")},
		{MaterialID: "a", Quantity: d("0.5")},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].MaterialID)
	assert.True(t, got[0].Quantity.Equal(d("1.5")))
	assert.Equal(t, "b", got[1].MaterialID)
}

func TestStockMovementApply(t *testing.T) {
	next, clamped := StockMovement{Direction: DirectionIn, Quantity: d("5")}.Apply(d("1"))
	assert.True(t, next.Equal(d("6")))
	assert.False(t, clamped)

	next, clamped = StockMovement{Direction: DirectionOut, Quantity: d("5")}.Apply(d("5"))
	assert.True(t, next.IsZero())
	assert.False(t, clamped)

	next, clamped = StockMovement{Direction: DirectionOut, Quantity: d("7")}.Apply(d("5"))
	assert.True(t, next.IsZero())
	assert.True(t, clamped)
}

func TestDateJSON(t *testing.T) {
	type wrap struct {
		D Date `json:"d"`
	}
	b, err := json.Marshal(wrap{D: NewDate(time.Date(2024, 3, 5, 23, 59, 0, 0, time.UTC))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2024-03-05"}`, string(b))

	b, err = json.Marshal(wrap{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":""}`, string(b))

	var w wrap
	require.NoError(t, json.Unmarshal([]byte(`{"d":"2023-12-31"}`), &w))
	assert.Equal(t, "2023-12-31", w.D.String())
	require.NoError(t, json.Unmarshal([]byte(`{"d":"2023-12-31T10:00:00Z"}`), &w))
	assert.Equal(t, "2023-12-31", w.D.String())
	require.NoError(t, json.Unmarshal([]byte(`{"d":null}`), &w))
	assert.True(t, w.D.IsZero())
	assert.Error(t, json.Unmarshal([]byte(`{"d":"31/12/2023"}`), &w))
}

func TestErrors(t *testing.T) {
	err := NotFound("cliente", "x1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, `cliente "x1" no encontrado`, err.Error())

	var ve error = &ValidationError{Entity: "material", Fields: []FieldError{
		{Field: "name", Message: "name es obligatorio"},
		{Field: "unit", Message: "unit es obligatorio"},
	}}
	assert.ErrorIs(t, ve, ErrValidation)
	assert.False(t, errors.Is(ve, ErrNotFound))
	assert.Equal(t, "material inválido: name es obligatorio; unit es obligatorio", ve.Error())
}

func TestPatches(t *testing.T) {
	c := Client{Name: "Juan", Phone: "1"}
	name := "Juan Pérez"
	ClientPatch{Name: &name}.Apply(&c)
	assert.Equal(t, "Juan Pérez", c.Name)
	assert.Equal(t, "1", c.Phone)

	m := Material{Name: "MDF", CurrentPrice: d("10")}
	price := d("20")
	MaterialPatch{CurrentPrice: &price}.Apply(&m)
	assert.True(t, m.CurrentPrice.Equal(d("10")), "el precio se aplica aparte")

	p := Project{ClientID: "c1", Title: "A"}
	other := "c2"
	title := "B"
	ProjectPatch{ClientID: &other, Title: &title}.Apply(&p)
	assert.Equal(t, "c1", p.ClientID)
	assert.Equal(t, "B", p.Title)
}
