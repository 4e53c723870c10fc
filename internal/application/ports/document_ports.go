package ports

import (
	"io"

	"github.com/viajespy/agencia-api/internal/application/dto"
	"github.com/viajespy/agencia-api/internal/domain/entity"
)

// InvoicePDFGenerator representación imprimible de una factura (InvoicePDF).
type InvoicePDFGenerator interface {
	Generate(inv *entity.StoredInvoice) ([]byte, error)
}

// SpreadsheetRow fila de planilla: columna (cabecera en minúsculas) -> valor crudo.
type SpreadsheetRow struct {
	Number int // número de fila en la planilla (la cabecera es la 1)
	Values map[string]string
}

// SpreadsheetReader lee la primera hoja de un .xlsx usando la primera fila como cabecera.
type SpreadsheetReader interface {
	ReadRows(r io.Reader) ([]SpreadsheetRow, error)
}

// ReportExporter exporta el reporte de transacciones a .xlsx.
type ReportExporter interface {
	ExportTransactions(report *dto.TransactionReport) ([]byte, error)
}

// NormalizedImage imagen re-codificada lista para el backend.
type NormalizedImage struct {
	Data   []byte
	Format string // JPEG o PNG
	Width  int
	Height int
}

// ImageNormalizer decodifica, reduce al ancho máximo y re-codifica una imagen subida.
type ImageNormalizer interface {
	Normalize(r io.Reader) (*NormalizedImage, error)
}
