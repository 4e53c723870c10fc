package billing

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/viajespy/agencia-api/internal/application/dto"
	"github.com/viajespy/agencia-api/internal/application/ports"
	"github.com/viajespy/agencia-api/internal/domain"
	"github.com/viajespy/agencia-api/internal/domain/entity"
	"github.com/viajespy/agencia-api/internal/domain/invoice"
	"github.com/viajespy/agencia-api/pkg/guarani"
)

// ReportUseCase reporte de ingresos/egresos sobre las facturas del store.
type ReportUseCase struct {
	store    ports.InvoiceStore
	exporter ports.ReportExporter
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(store ports.InvoiceStore, exporter ports.ReportExporter) *ReportUseCase {
	return &ReportUseCase{store: store, exporter: exporter}
}

// reportFilter filtros ya validados.
type reportFilter struct {
	txType   invoice.TransactionType
	from, to time.Time
}

func parseReportQuery(q dto.TransactionReportQuery) (reportFilter, error) {
	var f reportFilter
	switch t := invoice.TransactionType(strings.ToLower(strings.TrimSpace(q.Type))); t {
	case "", invoice.TransactionIncome, invoice.TransactionExpense:
		f.txType = t
	default:
		return f, fmt.Errorf("tipo %q: %w", q.Type, domain.ErrInvalidInput)
	}
	var err error
	if f.from, err = parseOptionalDate(q.From); err != nil {
		return f, err
	}
	if f.to, err = parseOptionalDate(q.To); err != nil {
		return f, err
	}
	if !f.from.IsZero() && !f.to.IsZero() && f.to.Before(f.from) {
		return f, fmt.Errorf("rango de fechas invertido: %w", domain.ErrInvalidInput)
	}
	return f, nil
}

func parseOptionalDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(invoice.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha %q: %w", s, domain.ErrInvalidInput)
	}
	return t, nil
}

// Transactions filtra por tipo y rango de fechas inclusivo y agrega totales.
func (uc *ReportUseCase) Transactions(ctx context.Context, token string, q dto.TransactionReportQuery) (*dto.TransactionReport, error) {
	f, err := parseReportQuery(q)
	if err != nil {
		return nil, err
	}
	list, err := uc.store.ListInvoices(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("reporte: listar facturas: %w", err)
	}
	return buildReport(list, f, q), nil
}

// ExportTransactions igual que Transactions pero devuelve la planilla .xlsx.
func (uc *ReportUseCase) ExportTransactions(ctx context.Context, token string, q dto.TransactionReportQuery) ([]byte, error) {
	rep, err := uc.Transactions(ctx, token, q)
	if err != nil {
		return nil, err
	}
	raw, err := uc.exporter.ExportTransactions(rep)
	if err != nil {
		return nil, fmt.Errorf("reporte: exportar: %w", err)
	}
	return raw, nil
}

func buildReport(list []entity.StoredInvoice, f reportFilter, q dto.TransactionReportQuery) *dto.TransactionReport {
	rep := &dto.TransactionReport{
		Type:   string(f.txType),
		From:   strings.TrimSpace(q.From),
		To:     strings.TrimSpace(q.To),
		Exempt: decimal.Zero,
		Tax5:   decimal.Zero,
		Tax10:  decimal.Zero,
		Total:  decimal.Zero,
		Rows:   make([]dto.ReportRow, 0),
	}
	byType := map[string]*dto.DocumentTypeTotal{}

	for i := range list {
		inv := &list[i]
		if f.txType != "" && inv.Header.TransactionType != f.txType {
			continue
		}
		if !inv.InDateRange(f.from, f.to) {
			continue
		}
		t := inv.Totals()
		rep.Rows = append(rep.Rows, dto.ReportRow{
			ID:              inv.ID,
			Date:            inv.Header.Date,
			Customer:        inv.Header.Customer,
			TransactionType: string(inv.Header.TransactionType),
			DocumentType:    string(inv.Header.DocumentType),
			DocumentNumber:  inv.Header.DocumentNumber,
			Exempt:          t.Exempt,
			Tax5:            t.Tax5,
			Tax10:           t.Tax10,
			Total:           t.Total,
		})
		rep.Exempt = rep.Exempt.Add(t.Exempt)
		rep.Tax5 = rep.Tax5.Add(t.Tax5)
		rep.Tax10 = rep.Tax10.Add(t.Tax10)
		rep.Total = rep.Total.Add(t.Total)

		key := string(inv.Header.DocumentType)
		dt, ok := byType[key]
		if !ok {
			dt = &dto.DocumentTypeTotal{DocumentType: key, Total: decimal.Zero}
			byType[key] = dt
		}
		dt.Count++
		dt.Total = dt.Total.Add(t.Total)
	}

	rep.Count = len(rep.Rows)
	rep.TotalDisplay = guarani.FormatAmount(rep.Total)

	sort.SliceStable(rep.Rows, func(i, j int) bool {
		if rep.Rows[i].Date != rep.Rows[j].Date {
			return rep.Rows[i].Date < rep.Rows[j].Date
		}
		return rep.Rows[i].ID < rep.Rows[j].ID
	})
	rep.ByDocumentType = make([]dto.DocumentTypeTotal, 0, len(byType))
	for _, dt := range byType {
		rep.ByDocumentType = append(rep.ByDocumentType, *dt)
	}
	sort.Slice(rep.ByDocumentType, func(i, j int) bool {
		return rep.ByDocumentType[i].DocumentType < rep.ByDocumentType[j].DocumentType
	})
	return rep
}
