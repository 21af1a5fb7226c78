// Package export arma los datos de los documentos que se entregan al cliente.
// Los subpaquetes pdf y xlsx sólo se ocupan del formato.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/phenrril/carpinteria/internal/domain"
)

type Company struct {
	Name    string
	Phone   string
	Email   string
	Website string
	Address string
}

type Options struct {
	Company      Company
	ValidityDays int
	Currency     string
}

type QuoteItem struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}

type QuoteTerms struct {
	Method           string
	Installments     int
	Discount         decimal.Decimal
	InstallmentValue decimal.Decimal
}

// Quote es el documento ya resuelto: textos listos para imprimir y montos finales.
type Quote struct {
	Company     Company
	Title       string
	Number      string
	ClientName  string
	Date        string
	ProjectName string
	Description string
	Items       []QuoteItem
	Terms       *QuoteTerms
	Total       decimal.Decimal
	Currency    string
	Validity    string
	FileBase    string
}

func DocumentTitle(t domain.ProjectType) string {
	if t == domain.ProjectTypeSale {
		return "PROPUESTA COMERCIAL"
	}
	return "PRESUPUESTO"
}

// NewQuote toma un proyecto y lo pasa a documento. date es la fecha de emisión.
func NewQuote(p domain.Project, opts Options, date time.Time) Quote {
	validity := opts.ValidityDays
	if validity <= 0 {
		validity = 30
	}
	cur := opts.Currency
	if cur == "" {
		cur = "$"
	}
	q := Quote{
		Company:     opts.Company,
		Title:       DocumentTitle(p.Type),
		Number:      fmt.Sprintf("%04d", p.Number),
		ClientName:  p.ClientName,
		Date:        date.Format("02/01/2006"),
		ProjectName: p.Title,
		Description: p.Description,
		Total:       p.Total(),
		Currency:    cur,
		Validity:    fmt.Sprintf("Este presupuesto tiene validez de %d días.", validity),
		FileBase:    FileBase(p),
	}
	for _, it := range p.Items {
		q.Items = append(q.Items, QuoteItem{
			Description: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       it.Quantity.Mul(it.UnitPrice),
		})
	}
	if t := p.PaymentTerms; t != nil {
		q.Terms = &QuoteTerms{
			Method:           t.Method.Label(),
			Installments:     t.Installments,
			Discount:         t.DiscountPercentage,
			InstallmentValue: t.InstallmentValue,
		}
	}
	return q
}

// FileBase es el nombre del archivo sin extensión: <tipo>_<0000>_<cliente>.
func FileBase(p domain.Project) string {
	client := strings.Join(strings.Fields(p.ClientName), "_")
	if client == "" {
		client = "cliente"
	}
	return fmt.Sprintf("%s_%04d_%s", p.Type, p.Number, client)
}

// Money formatea con separador de miles "." y decimales ",": "$ 12.000,50".
func Money(cur string, v decimal.Decimal) string {
	s := v.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	sign := ""
	if v.IsNegative() {
		sign = "-"
	}
	return fmt.Sprintf("%s %s%s,%s", cur, sign, b.String(), frac)
}

// Quantity muestra la cantidad sin ceros de sobra.
func Quantity(v decimal.Decimal) string {
	return strings.Replace(v.String(), ".", ",", 1)
}
