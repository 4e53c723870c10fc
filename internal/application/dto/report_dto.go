package dto

import "github.com/shopspring/decimal"

// TransactionReportQuery filtros de GET /api/reports/transactions.
type TransactionReportQuery struct {
	Type   string `query:"type"` // ingreso | egreso | vacío = todos
	From   string `query:"from"` // YYYY-MM-DD
	To     string `query:"to"`
	Format string `query:"format"` // json | xlsx
}

// ReportRow factura incluida en el reporte.
type ReportRow struct {
	ID              string          `json:"id"`
	Date            string          `json:"date"`
	Customer        string          `json:"customer"`
	TransactionType string          `json:"transaction_type"`
	DocumentType    string          `json:"document_type"`
	DocumentNumber  string          `json:"document_number"`
	Exempt          decimal.Decimal `json:"exempt"`
	Tax5            decimal.Decimal `json:"tax5"`
	Tax10           decimal.Decimal `json:"tax10"`
	Total           decimal.Decimal `json:"total"`
}

// DocumentTypeTotal total por tipo de comprobante.
type DocumentTypeTotal struct {
	DocumentType string          `json:"document_type"`
	Count        int             `json:"count"`
	Total        decimal.Decimal `json:"total"`
}

// TransactionReport resumen de ingresos/egresos en un rango de fechas.
type TransactionReport struct {
	Type           string              `json:"type,omitempty"`
	From           string              `json:"from,omitempty"`
	To             string              `json:"to,omitempty"`
	Count          int                 `json:"count"`
	Exempt         decimal.Decimal     `json:"exempt"`
	Tax5           decimal.Decimal     `json:"tax5"`
	Tax10          decimal.Decimal     `json:"tax10"`
	Total          decimal.Decimal     `json:"total"`
	TotalDisplay   string              `json:"total_display"`
	ByDocumentType []DocumentTypeTotal `json:"by_document_type"`
	Rows           []ReportRow         `json:"rows"`
}
