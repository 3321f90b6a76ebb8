// Package spreadsheet exporta las garantías a un libro .xlsx (excelize).
package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Garantias-api/internal/application/documents"
	"github.com/jhoicas/Garantias-api/internal/domain/entity"
	"github.com/jhoicas/Garantias-api/pkg/timeutil"
)

// SheetName nombre de la hoja exportada.
const SheetName = "Garantias"

// Headers encabezados de columna, en orden.
var Headers = []string{
	"ID", "Cliente", "Cédula", "Teléfono", "Email",
	"Producto", "Marca", "Modelo", "Serial", "Factura", "Fecha compra",
	"Descripción falla", "Estado", "Usuario asignado", "Valor cobrado", "Fecha registro",
}

var _ documents.SpreadsheetExporter = (*ExcelExporter)(nil)

// ExcelExporter implementa documents.SpreadsheetExporter.
type ExcelExporter struct{}

// NewExcelExporter construye el exportador.
func NewExcelExporter() *ExcelExporter { return &ExcelExporter{} }

// ExportWarranties escribe una fila por garantía en el orden recibido.
func (e *ExcelExporter) ExportWarranties(items []*entity.Warranty) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("spreadsheet: renombrar hoja: %w", err)
	}

	header := make([]any, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("spreadsheet: encabezados: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"00467F"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: estilo: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(Headers), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
		return nil, fmt.Errorf("spreadsheet: estilo encabezado: %w", err)
	}

	for i, w := range items {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := row(w)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("spreadsheet: fila %d: %w", w.ID, err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("spreadsheet: fijar encabezado: %w", err)
	}
	_ = f.SetColWidth(SheetName, "B", "B", 28)
	_ = f.SetColWidth(SheetName, "L", "L", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func row(w *entity.Warranty) []any {
	var amount any = ""
	if w.ChargedAmount != nil {
		amount = w.ChargedAmount.InexactFloat64()
	}
	return []any{
		w.ID,
		w.ClientName,
		w.IDDocument,
		w.Phone,
		w.Email,
		w.ProductType,
		w.Brand,
		w.Model,
		w.Serial,
		w.InvoiceRef,
		w.PurchaseDate,
		w.FaultDescription,
		string(w.Status),
		w.AssignedUser,
		amount,
		timeutil.In(w.CreatedAt).Format(timeutil.DateTimeLayout),
	}
}
