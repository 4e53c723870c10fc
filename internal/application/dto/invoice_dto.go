package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceHeaderRequest cabecera editable de un borrador (PUT /api/drafts/:id/header).
type InvoiceHeaderRequest struct {
	Customer        string `json:"customer"`
	RUC             string `json:"ruc"`
	Email           string `json:"email"`
	Condition       string `json:"condition"`        // contado | credito
	TransactionType string `json:"transaction_type"` // ingreso | egreso
	DocumentType    string `json:"document_type"`    // factura | recibo
	DocumentNumber  string `json:"document_number"`
	Date            string `json:"date"` // YYYY-MM-DD
}

// DetailUpdateRequest cambio de un campo de una línea (PATCH /api/drafts/:id/details/:index).
// Los valores numéricos llegan como los escribe el usuario: "1.234", "25.000,5".
type DetailUpdateRequest struct {
	Field string `json:"field"` // quantity | unit_price | tax_category | description
	Value string `json:"value"`
}

// InvoiceHeaderResponse cabecera en respuestas.
type InvoiceHeaderResponse = InvoiceHeaderRequest

// DetailResponse línea con valores numéricos y su representación es-PY.
type DetailResponse struct {
	Index            int             `json:"index"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	QuantityDisplay  string          `json:"quantity_display"`
	UnitPriceDisplay string          `json:"unit_price_display"`
	SubtotalDisplay  string          `json:"subtotal_display"`
	TaxCategory      string          `json:"tax_category"`
	TaxLabel         string          `json:"tax_label,omitempty"`
	Description      string          `json:"description"`
}

// TotalsResponse totales en guaraníes enteros.
type TotalsResponse struct {
	Exempt        decimal.Decimal `json:"exempt"`
	Tax5          decimal.Decimal `json:"tax5"`
	Tax10         decimal.Decimal `json:"tax10"`
	Total         decimal.Decimal `json:"total"`
	ExemptDisplay string          `json:"exempt_display"`
	Tax5Display   string          `json:"tax5_display"`
	Tax10Display  string          `json:"tax10_display"`
	TotalDisplay  string          `json:"total_display"`
}

// DraftResponse borrador con detalle y totales al día.
type DraftResponse struct {
	ID        string                `json:"id"`
	Status    string                `json:"status"`
	RemoteID  string                `json:"remote_id,omitempty"`
	Header    InvoiceHeaderResponse `json:"header"`
	Details   []DetailResponse      `json:"details"`
	Totals    TotalsResponse        `json:"totals"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// SubmitResponse resultado de POST /api/drafts/:id/submit.
type SubmitResponse struct {
	InvoiceID string        `json:"invoice_id"`
	Draft     DraftResponse `json:"draft"`
}

// InvoiceResponse factura guardada en el Invoice Store.
type InvoiceResponse struct {
	ID      string                `json:"id"`
	Header  InvoiceHeaderResponse `json:"header"`
	Details []DetailResponse      `json:"details"`
	Totals  TotalsResponse        `json:"totals"`
}
