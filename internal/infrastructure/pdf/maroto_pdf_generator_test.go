package pdf

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viajespy/agencia-api/internal/domain/entity"
	"github.com/viajespy/agencia-api/internal/domain/invoice"
)

func TestGenerate_ProducePDF(t *testing.T) {
	g := NewMarotoPDFGenerator(Issuer{Name: "Viajes Py", RUC: "80000000-1", Timbrado: "12345678"})
	inv := &entity.StoredInvoice{
		ID: "1",
		Header: invoice.Header{
			Customer: "Turismo Itapúa", RUC: "80012345-6", Condition: invoice.ConditionCredit,
			TransactionType: invoice.TransactionIncome, DocumentType: invoice.DocumentInvoice,
			DocumentNumber: "001-001-0000123", Date: "2026-10-14",
		},
		Details: []invoice.Detail{
			{Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(500), TaxCategory: invoice.TaxExempt, Description: "Seguro de viaje"},
			{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1100), TaxCategory: invoice.Tax10, Description: "Paquete Asunción"},
		},
	}

	raw, err := g.Generate(inv)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestGenerate_SinDetalle(t *testing.T) {
	g := NewMarotoPDFGenerator(Issuer{Name: "Viajes Py"})
	raw, err := g.Generate(&entity.StoredInvoice{Header: invoice.Header{DocumentType: invoice.DocumentReceipt}})
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
}

func TestPyg(t *testing.T) {
	assert.Equal(t, "1.250.000 PYG", pyg(decimal.NewFromInt(1250000)))
	assert.Equal(t, "101 PYG", pyg(decimal.RequireFromString("100.5")))
	assert.Equal(t, "0 PYG", pyg(decimal.Zero))
}

func TestConditionLabel(t *testing.T) {
	assert.Equal(t, "Contado", conditionLabel(invoice.ConditionCash))
	assert.Equal(t, "Crédito", conditionLabel(invoice.ConditionCredit))
	assert.Equal(t, "Recibo", documentTitle(invoice.DocumentReceipt))
	assert.Equal(t, "Factura", documentTitle(invoice.DocumentInvoice))
}
