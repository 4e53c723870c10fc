package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/viajespy/agencia-api/internal/application/dto"
	"github.com/viajespy/agencia-api/internal/application/ports"
	"github.com/viajespy/agencia-api/internal/domain"
	"github.com/viajespy/agencia-api/pkg/guarani"
	"github.com/viajespy/agencia-api/pkg/logger"
)

// Valores por defecto de las celdas vacías de la planilla.
const (
	DefaultName        = "Sin nombre"
	DefaultDescription = "Descripción no disponible"
	DefaultCity        = "Desconocida"
	DefaultCountry     = "Desconocido"
	DefaultService     = "No especificado"
	DefaultImageURL    = "https://placehold.co/200"
)

// excelEpoch día 0 de los seriales de fecha de Excel.
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// ErrEmptyImport la planilla no tiene filas de datos.
var ErrEmptyImport = errors.New("la planilla no tiene filas de datos")

// ImportRejectedError alguna fila no pasó la validación; no se envió ninguna.
type ImportRejectedError struct {
	Total  int
	Failed []dto.ImportRowError
}

func (e *ImportRejectedError) Error() string {
	rows := make([]string, 0, len(e.Failed))
	for _, f := range e.Failed {
		rows = append(rows, strconv.Itoa(f.Row))
	}
	return "importación rechazada, filas inválidas: " + strings.Join(rows, ", ")
}

func (e *ImportRejectedError) Unwrap() error { return domain.ErrInvalidInput }

// ImportUseCase alta masiva de paquetes desde un .xlsx.
type ImportUseCase struct {
	reader      ports.SpreadsheetReader
	packages    *PackageUseCase
	concurrency int
	log         *logger.Logger
}

// NewImportUseCase construye el caso de uso. concurrency limita los altas simultáneos.
func NewImportUseCase(reader ports.SpreadsheetReader, packages *PackageUseCase, concurrency int, log *logger.Logger) *ImportUseCase {
	if concurrency <= 0 {
		concurrency = 1
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ImportUseCase{reader: reader, packages: packages, concurrency: concurrency, log: log.Component("import")}
}

type importRow struct {
	number int
	req    dto.PackageRequest
}

// Import lee la planilla, valida todas las filas y, si todas son válidas, las da de alta.
// Una fila inválida rechaza el lote completo (ImportRejectedError). Los fallos del backend
// se informan por fila en Failed sin cortar las demás.
func (uc *ImportUseCase) Import(ctx context.Context, token string, r io.Reader) (*dto.ImportResponse, error) {
	rows, err := uc.reader.ReadRows(r)
	if err != nil {
		return nil, fmt.Errorf("importar: %v: %w", err, domain.ErrInvalidInput)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("importar: %w: %w", ErrEmptyImport, domain.ErrInvalidInput)
	}

	batch := make([]importRow, 0, len(rows))
	var invalid []dto.ImportRowError
	for _, row := range rows {
		req := RowToPackage(row.Values)
		if err := ValidatePackage(req); err != nil {
			invalid = append(invalid, rowError(row.Number, req.Name, err))
			continue
		}
		batch = append(batch, importRow{number: row.Number, req: req})
	}
	if len(invalid) > 0 {
		uc.log.Info().Int("rows", len(rows)).Int("invalid", len(invalid)).Msg("importación rechazada")
		return nil, &ImportRejectedError{Total: len(rows), Failed: invalid}
	}

	created := make([]*dto.PackageResponse, len(batch))
	failures := make([]error, len(batch))

	var g errgroup.Group
	g.SetLimit(uc.concurrency)
	for i, item := range batch {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				failures[i] = err
				return nil
			}
			created[i], failures[i] = uc.packages.create(ctx, token, item.req)
			return nil
		})
	}
	_ = g.Wait()

	res := &dto.ImportResponse{Total: len(batch), Created: []dto.PackageResponse{}, Failed: []dto.ImportRowError{}}
	for i, item := range batch {
		if failures[i] != nil {
			res.Failed = append(res.Failed, dto.ImportRowError{Row: item.number, Name: item.req.Name, Errors: []string{failures[i].Error()}})
			continue
		}
		res.Created = append(res.Created, *created[i])
	}
	if len(res.Created) > 0 {
		uc.packages.invalidate(ctx)
	}

	uc.log.Info().Int("rows", res.Total).Int("created", len(res.Created)).Int("failed", len(res.Failed)).Msg("importación terminada")
	if err := ctx.Err(); err != nil && len(res.Created) == 0 {
		return nil, err
	}
	return res, nil
}

func rowError(number int, name string, err error) dto.ImportRowError {
	out := dto.ImportRowError{Row: number, Name: name}
	var ve *ValidationError
	if errors.As(err, &ve) {
		for _, f := range ve.Fields {
			out.Errors = append(out.Errors, f.Field+": "+f.Message)
		}
		return out
	}
	out.Errors = []string{err.Error()}
	return out
}

// RowToPackage arma el paquete de una fila aplicando los valores por defecto.
// Las columnas esperadas son los nombres JSON del paquete (name, description, cost_price, ...).
func RowToPackage(v map[string]string) dto.PackageRequest {
	return dto.PackageRequest{
		Name:             orDefault(v["name"], DefaultName),
		Description:      orDefault(v["description"], DefaultDescription),
		CostPrice:        parseAmount(v["cost_price"]),
		SellPrice:        parseAmount(v["sell_price"]),
		City:             orDefault(v["city"], DefaultCity),
		Country:          orDefault(v["country"], DefaultCountry),
		StartDate:        ExcelDate(v["start_date"]),
		EndDate:          ExcelDate(v["end_date"]),
		IncludedServices: splitServices(v["included_services"], []string{DefaultService}),
		ExcludedServices: splitServices(v["excluded_services"], nil),
		ImageURL:         orDefault(v["image_url"], DefaultImageURL),
	}
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}

func splitServices(s string, def []string) []string {
	out := cleanServices(strings.Split(s, ","))
	if len(out) == 0 {
		return def
	}
	return out
}

// parseAmount: valor crudo de celda numérica ("150000.5") o texto es-PY ("150.000").
func parseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d
	}
	return guarani.ParseDisplayNumber(s)
}

var textDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02/01/2006",
	"2/1/2006",
	"2006/01/02",
}

// ExcelDate convierte un serial de Excel o una fecha en texto a YYYY-MM-DD. Vacío si no se reconoce.
func ExcelDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial <= 0 || math.IsInf(serial, 0) || math.IsNaN(serial) {
			return ""
		}
		return excelEpoch.AddDate(0, 0, int(math.Floor(serial))).Format(dateLayout)
	}
	for _, layout := range textDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(dateLayout)
		}
	}
	return ""
}
