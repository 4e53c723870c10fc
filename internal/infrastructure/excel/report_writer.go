package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/viajespy/agencia-api/internal/application/dto"
	"github.com/viajespy/agencia-api/internal/application/ports"
)

var _ ports.ReportExporter = (*ReportWriter)(nil)

const reportSheet = "Transacciones"

var reportHeaders = []any{
	"Fecha", "Tipo", "Comprobante", "Número", "Cliente", "Exento", "IVA 5%", "IVA 10%", "Total",
}

// ReportWriter exporta el reporte de ingresos/egresos: una fila por factura y una fila de totales.
type ReportWriter struct{}

// NewReportWriter construye el exportador.
func NewReportWriter() *ReportWriter { return &ReportWriter{} }

// ExportTransactions genera el .xlsx en memoria.
func (ReportWriter) ExportTransactions(rep *dto.TransactionReport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}

	if err := f.SetSheetRow(reportSheet, "A1", &reportHeaders); err != nil {
		return nil, err
	}
	_ = f.SetCellStyle(reportSheet, "A1", "I1", bold)

	r := 2
	for _, row := range rep.Rows {
		values := []any{
			row.Date, row.TransactionType, row.DocumentType, row.DocumentNumber, row.Customer,
			row.Exempt.IntPart(), row.Tax5.IntPart(), row.Tax10.IntPart(), row.Total.IntPart(),
		}
		if err := f.SetSheetRow(reportSheet, cell(1, r), &values); err != nil {
			return nil, err
		}
		r++
	}

	totals := []any{
		"Totales", rep.Type, "", "", fmt.Sprintf("%d comprobante(s)", rep.Count),
		rep.Exempt.IntPart(), rep.Tax5.IntPart(), rep.Tax10.IntPart(), rep.Total.IntPart(),
	}
	if err := f.SetSheetRow(reportSheet, cell(1, r), &totals); err != nil {
		return nil, err
	}
	_ = f.SetCellStyle(reportSheet, cell(1, r), cell(9, r), bold)
	_ = f.SetCellStyle(reportSheet, "F2", cell(9, r), money)
	_ = f.SetColWidth(reportSheet, "A", "D", 16)
	_ = f.SetColWidth(reportSheet, "E", "E", 32)
	_ = f.SetColWidth(reportSheet, "F", "I", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
