package billing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viajespy/agencia-api/internal/application/billing"
	"github.com/viajespy/agencia-api/internal/application/dto"
	"github.com/viajespy/agencia-api/internal/domain"
	"github.com/viajespy/agencia-api/internal/domain/entity"
	"github.com/viajespy/agencia-api/internal/domain/invoice"
)

type fakePDF struct{ got *entity.StoredInvoice }

func (f *fakePDF) Generate(inv *entity.StoredInvoice) ([]byte, error) {
	f.got = inv
	return []byte("%PDF-1.3 fake"), nil
}

type fakeExporter struct{ got *dto.TransactionReport }

func (f *fakeExporter) ExportTransactions(r *dto.TransactionReport) ([]byte, error) {
	f.got = r
	return []byte("xlsx"), nil
}

func stored(id string, tx invoice.TransactionType, doc invoice.DocumentType, date string, qty, price int64, cat invoice.TaxCategory) entity.StoredInvoice {
	return entity.StoredInvoice{
		ID: id,
		Header: invoice.Header{
			Customer: "Cliente " + id, TransactionType: tx, DocumentType: doc,
			DocumentNumber: "001-001-" + id, Date: date, Condition: invoice.ConditionCash,
		},
		Details: []invoice.Detail{{
			Quantity: decimal.NewFromInt(qty), UnitPrice: decimal.NewFromInt(price), TaxCategory: cat,
		}},
	}
}

func seededStore(invs ...entity.StoredInvoice) *fakeInvoiceStore {
	s := newFakeInvoiceStore()
	for _, inv := range invs {
		s.invoices[inv.ID] = inv
	}
	return s
}

func TestInvoiceGet_TotalesRecalculados(t *testing.T) {
	store := seededStore(stored("1", invoice.TransactionIncome, invoice.DocumentInvoice, "2026-10-01", 1, 110, invoice.Tax10))
	uc := billing.NewInvoiceUseCase(store, &fakePDF{})

	inv, err := uc.Get(context.Background(), "tok", "1")
	require.NoError(t, err)
	assert.Equal(t, "10", inv.Totals.Tax10.String())
	assert.Equal(t, "Gs. 110", inv.Totals.TotalDisplay)
	assert.Equal(t, "IVA 10%", inv.Details[0].TaxLabel)
}

func TestInvoiceGet_NoExiste(t *testing.T) {
	uc := billing.NewInvoiceUseCase(seededStore(), &fakePDF{})
	_, err := uc.Get(context.Background(), "tok", "99")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceDownloadPDF_NombreDeArchivo(t *testing.T) {
	store := seededStore(stored("7", invoice.TransactionIncome, invoice.DocumentInvoice, "2026-10-01", 1, 100, invoice.TaxExempt))
	gen := &fakePDF{}
	uc := billing.NewInvoiceUseCase(store, gen)

	raw, name, err := uc.DownloadPDF(context.Background(), "tok", "7")
	require.NoError(t, err)
	assert.Equal(t, "factura-001-001-7.pdf", name)
	assert.NotEmpty(t, raw)
	require.NotNil(t, gen.got)
	assert.Equal(t, "7", gen.got.ID)
}

func TestInvoiceDelete(t *testing.T) {
	store := seededStore(stored("1", invoice.TransactionIncome, invoice.DocumentInvoice, "2026-10-01", 1, 100, invoice.TaxExempt))
	uc := billing.NewInvoiceUseCase(store, &fakePDF{})

	require.NoError(t, uc.Delete(context.Background(), "tok", "1"))
	assert.ErrorIs(t, uc.Delete(context.Background(), "tok", "1"), domain.ErrNotFound)
}

func TestReport_FiltraPorTipoYRango(t *testing.T) {
	store := seededStore(
		stored("1", invoice.TransactionIncome, invoice.DocumentInvoice, "2026-10-01", 1, 110, invoice.Tax10),
		stored("2", invoice.TransactionIncome, invoice.DocumentReceipt, "2026-10-15", 2, 500, invoice.TaxExempt),
		stored("3", invoice.TransactionExpense, invoice.DocumentInvoice, "2026-10-10", 1, 999, invoice.Tax5),
		stored("4", invoice.TransactionIncome, invoice.DocumentInvoice, "2026-11-01", 1, 10, invoice.Tax10),
	)
	uc := billing.NewReportUseCase(store, &fakeExporter{})

	rep, err := uc.Transactions(context.Background(), "tok", dto.TransactionReportQuery{
		Type: "ingreso", From: "2026-10-01", To: "2026-10-31",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Count)
	require.Len(t, rep.Rows, 2)
	assert.Equal(t, "1", rep.Rows[0].ID)
	assert.Equal(t, "2", rep.Rows[1].ID)
	assert.Equal(t, "1110", rep.Total.String())
	assert.Equal(t, "1000", rep.Exempt.String())
	assert.Equal(t, "10", rep.Tax10.String())
	assert.Equal(t, "Gs. 1.110", rep.TotalDisplay)

	require.Len(t, rep.ByDocumentType, 2)
	assert.Equal(t, "factura", rep.ByDocumentType[0].DocumentType)
	assert.Equal(t, 1, rep.ByDocumentType[0].Count)
	assert.Equal(t, "recibo", rep.ByDocumentType[1].DocumentType)
	assert.Equal(t, "1000", rep.ByDocumentType[1].Total.String())
}

func TestReport_SinFiltrosIncluyeTodo(t *testing.T) {
	store := seededStore(
		stored("1", invoice.TransactionIncome, invoice.DocumentInvoice, "2026-10-01", 1, 100, invoice.TaxExempt),
		stored("2", invoice.TransactionExpense, invoice.DocumentInvoice, "", 1, 100, invoice.TaxExempt),
	)
	uc := billing.NewReportUseCase(store, &fakeExporter{})
	rep, err := uc.Transactions(context.Background(), "tok", dto.TransactionReportQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Count)
}

func TestReport_FiltrosInvalidos(t *testing.T) {
	uc := billing.NewReportUseCase(seededStore(), &fakeExporter{})
	for _, q := range []dto.TransactionReportQuery{
		{Type: "transferencia"},
		{From: "01/10/2026"},
		{From: "2026-10-31", To: "2026-10-01"},
	} {
		_, err := uc.Transactions(context.Background(), "tok", q)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", q)
	}
}

func TestReport_ExportaPlanilla(t *testing.T) {
	store := seededStore(stored("1", invoice.TransactionIncome, invoice.DocumentInvoice, "2026-10-01", 1, 100, invoice.TaxExempt))
	exp := &fakeExporter{}
	uc := billing.NewReportUseCase(store, exp)

	raw, err := uc.ExportTransactions(context.Background(), "tok", dto.TransactionReportQuery{Type: "ingreso"})
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), raw)
	require.NotNil(t, exp.got)
	assert.Equal(t, 1, exp.got.Count)
}
