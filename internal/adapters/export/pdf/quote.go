package pdf

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"github.com/phenrril/carpinteria/internal/adapters/export"
)

const (
	pageW     = 210.0
	marginX   = 15.0
	bottomMax = 270.0
)

var (
	colWidths = []float64{90, 25, 32.5, 32.5}
	colTitles = []string{"Ítem", "Cant.", "Precio unit.", "Total"}
)

// QuotePDF dibuja el presupuesto en A4. Si la tabla no entra, sigue en otra página
// repitiendo el encabezado de columnas.
func QuotePDF(q export.Quote) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginX, 15, marginX)
	pdf.SetAutoPageBreak(true, 15)
	// las fuentes core están en cp1252: acentos y ñ pasan por el traductor
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(q.Title+" "+q.Number), false)
	pdf.SetCreator(tr(q.Company.Name), false)
	pdf.AddPage()

	header(pdf, tr, q)

	pdf.SetTextColor(30, 30, 30)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginX, 45)
	pdf.CellFormat(pageW-2*marginX, 8, tr(q.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(pageW-2*marginX, 6, tr("N° "+q.Number), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(25, 6, "Cliente:", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, tr(q.ClientName), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(25, 6, "Fecha:", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, q.Date, "", 1, "L", false, 0, "")
	pdf.Ln(3)

	if q.ProjectName != "" || q.Description != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 7, tr(q.ProjectName), "", 1, "L", false, 0, "")
		if q.Description != "" {
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(q.Description), "", "L", false)
		}
		pdf.Ln(3)
	}

	if len(q.Items) > 0 {
		itemsTable(pdf, tr, q)
	}

	ensureSpace(pdf, 40)
	if q.Terms != nil {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 7, "Condiciones de pago", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		line := func(label, value string) {
			pdf.CellFormat(45, 5, tr(label), "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 5, tr(value), "", 1, "L", false, 0, "")
		}
		line("Forma de pago:", q.Terms.Method)
		line("Cuotas:", fmt.Sprintf("%d", q.Terms.Installments))
		if q.Terms.Discount.IsPositive() {
			line("Descuento:", q.Terms.Discount.String()+"%")
		}
		line("Valor de la cuota:", export.Money(q.Currency, q.Terms.InstallmentValue))
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(pageW-2*marginX-50, 10, "TOTAL", "", 0, "R", true, 0, "")
	pdf.CellFormat(50, 10, tr(export.Money(q.Currency, q.Total)), "", 1, "R", true, 0, "")

	footer(pdf, tr, q)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("generar pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func header(pdf *gofpdf.Fpdf, tr func(string) string, q export.Quote) {
	pdf.SetFillColor(31, 41, 55)
	pdf.Rect(0, 0, pageW, 35, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(marginX, 8)
	pdf.CellFormat(0, 9, tr(q.Company.Name), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	contact := q.Company.Phone
	for _, s := range []string{q.Company.Email, q.Company.Website} {
		if s == "" {
			continue
		}
		if contact != "" {
			contact += "  |  "
		}
		contact += s
	}
	pdf.SetX(marginX)
	pdf.CellFormat(0, 5, tr(contact), "", 1, "L", false, 0, "")
	if q.Company.Address != "" {
		pdf.SetX(marginX)
		pdf.CellFormat(0, 5, tr(q.Company.Address), "", 1, "L", false, 0, "")
	}
}

func tableHeader(pdf *gofpdf.Fpdf, tr func(string) string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(31, 41, 55)
	pdf.SetTextColor(255, 255, 255)
	for i, t := range colTitles {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(colWidths[i], 7, tr(t), "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(30, 30, 30)
	pdf.SetFont("Helvetica", "", 10)
}

func itemsTable(pdf *gofpdf.Fpdf, tr func(string) string, q export.Quote) {
	tableHeader(pdf, tr)
	for _, it := range q.Items {
		if pdf.GetY()+7 > bottomMax {
			pdf.AddPage()
			tableHeader(pdf, tr)
		}
		pdf.CellFormat(colWidths[0], 7, tr(it.Description), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 7, export.Quantity(it.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[2], 7, tr(export.Money(q.Currency, it.UnitPrice)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[3], 7, tr(export.Money(q.Currency, it.Total)), "1", 1, "R", false, 0, "")
	}
}

func ensureSpace(pdf *gofpdf.Fpdf, h float64) {
	if pdf.GetY()+h > bottomMax {
		pdf.AddPage()
	}
}

func footer(pdf *gofpdf.Fpdf, tr func(string) string, q export.Quote) {
	ensureSpace(pdf, 20)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 5, tr(q.Validity), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, tr("¡Gracias por su confianza!"), "", 1, "C", false, 0, "")
}
