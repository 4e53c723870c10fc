// Package excel lee planillas de importación de paquetes y exporta reportes a .xlsx con excelize.
package excel

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/viajespy/agencia-api/internal/application/ports"
)

var _ ports.SpreadsheetReader = (*Reader)(nil)

// ErrEmptyWorkbook la planilla no tiene hojas o no tiene cabecera.
var ErrEmptyWorkbook = errors.New("excel: la planilla está vacía")

// Reader lee la primera hoja usando la primera fila como nombres de columna.
type Reader struct{}

// NewReader construye el lector.
func NewReader() *Reader { return &Reader{} }

// ReadRows devuelve las filas de datos con valores crudos (las fechas llegan como serial de Excel).
// Las filas totalmente vacías se omiten; Number conserva la numeración de la planilla.
func (Reader) ReadRows(r io.Reader) ([]ports.SpreadsheetRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("excel: abrir planilla: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("excel: leer hoja %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyWorkbook
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	out := make([]ports.SpreadsheetRow, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		values := make(map[string]string, len(header))
		empty := true
		for c, name := range header {
			if name == "" || c >= len(cells) {
				continue
			}
			v := strings.TrimSpace(cells[c])
			values[name] = v
			if v != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		out = append(out, ports.SpreadsheetRow{Number: i + 2, Values: values})
	}
	return out, nil
}
