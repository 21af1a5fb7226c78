package xlsx

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/phenrril/carpinteria/internal/adapters/export"
	"github.com/phenrril/carpinteria/internal/domain"
)

const (
	QuoteSheet     = "Presupuesto"
	InventorySheet = "Inventario"
)

// QuoteXLSX vuelca el presupuesto en una hoja con los mismos bloques que el PDF.
func QuoteXLSX(q export.Quote) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", QuoteSheet); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, err
	}

	rows := [][]any{
		{q.Company.Name},
		{q.Company.Phone, q.Company.Email, q.Company.Website},
		{},
		{q.Title, "N° " + q.Number},
		{"Cliente", q.ClientName},
		{"Fecha", q.Date},
		{"Proyecto", q.ProjectName},
		{"Descripción", q.Description},
		{},
		{"Ítem", "Cantidad", "Precio unitario", "Total"},
	}
	row := 1
	for _, r := range rows {
		if err := setRow(f, row, r); err != nil {
			return nil, err
		}
		row++
	}
	headerRow := row - 1
	_ = f.SetCellStyle(QuoteSheet, "A1", "A1", bold)
	_ = f.SetCellStyle(QuoteSheet, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("D%d", headerRow), bold)

	first := row
	for _, it := range q.Items {
		qty, _ := it.Quantity.Float64()
		unit, _ := it.UnitPrice.Float64()
		total, _ := it.Total.Float64()
		if err := setRow(f, row, []any{it.Description, qty, unit, total}); err != nil {
			return nil, err
		}
		row++
	}
	if row > first {
		_ = f.SetCellStyle(QuoteSheet, fmt.Sprintf("C%d", first), fmt.Sprintf("D%d", row-1), money)
	}
	row++

	if t := q.Terms; t != nil {
		disc, _ := t.Discount.Float64()
		inst, _ := t.InstallmentValue.Float64()
		for _, r := range [][]any{
			{"Forma de pago", t.Method},
			{"Cuotas", t.Installments},
			{"Descuento %", disc},
			{"Valor de la cuota", inst},
		} {
			if err := setRow(f, row, r); err != nil {
				return nil, err
			}
			row++
		}
		row++
	}

	total, _ := q.Total.Float64()
	if err := setRow(f, row, []any{"TOTAL", nil, nil, total}); err != nil {
		return nil, err
	}
	_ = f.SetCellStyle(QuoteSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("D%d", row), bold)
	row += 2
	if err := setRow(f, row, []any{q.Validity}); err != nil {
		return nil, err
	}

	_ = f.SetColWidth(QuoteSheet, "A", "A", 40)
	_ = f.SetColWidth(QuoteSheet, "B", "D", 16)
	return write(f)
}

// InventoryXLSX es la planilla de materiales con su estado de stock y variación de precio.
func InventoryXLSX(materials []domain.Material) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", InventorySheet); err != nil {
		return nil, err
	}
	if err := setRowOn(f, InventorySheet, 1, []any{
		"Nombre", "Categoría", "Unidad", "Stock", "Mínimo", "Precio", "Stock bajo", "Variación %",
	}); err != nil {
		return nil, err
	}
	for i, m := range materials {
		stock, _ := m.CurrentStock.Float64()
		minStock, _ := m.MinStock.Float64()
		price, _ := m.CurrentPrice.Float64()
		low := "no"
		if m.LowStock() {
			low = "sí"
		}
		var variation any
		if pct, ok := m.PriceVariation(); ok {
			variation, _ = pct.Float64()
		}
		if err := setRowOn(f, InventorySheet, i+2, []any{
			m.Name, m.Category, m.Unit, stock, minStock, price, low, variation,
		}); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(InventorySheet, "A", "A", 32)
	_ = f.SetPanes(InventorySheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
	return write(f)
}

func setRow(f *excelize.File, row int, values []any) error {
	return setRowOn(f, QuoteSheet, row, values)
}

func setRowOn(f *excelize.File, sheet string, row int, values []any) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	v := values
	return f.SetSheetRow(sheet, cell, &v)
}

func write(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("generar xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
