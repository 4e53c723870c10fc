package storeclient

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/viajespy/agencia-api/internal/domain/entity"
	"github.com/viajespy/agencia-api/internal/domain/invoice"
)

// CreateInvoice POST /invoices con {invoice: {headers, details}}.
func (c *Client) CreateInvoice(ctx context.Context, token string, inv entity.StoredInvoice) (string, error) {
	var reply invoiceReply
	if err := c.do(ctx, http.MethodPost, "/invoices", token, invoiceEnvelope{Invoice: toInvoiceWire(inv)}, &reply); err != nil {
		return "", err
	}
	return string(reply.unwrap().ID), nil
}

// ListInvoices GET /invoices.
func (c *Client) ListInvoices(ctx context.Context, token string) ([]entity.StoredInvoice, error) {
	var reply listOf[invoiceReply]
	if err := c.do(ctx, http.MethodGet, "/invoices", token, nil, &reply); err != nil {
		return nil, err
	}
	out := make([]entity.StoredInvoice, 0, len(reply))
	for _, r := range reply {
		out = append(out, fromInvoiceWire(r.unwrap()))
	}
	return out, nil
}

// GetInvoice GET /invoices/{id}.
func (c *Client) GetInvoice(ctx context.Context, token, id string) (*entity.StoredInvoice, error) {
	var reply invoiceReply
	if err := c.do(ctx, http.MethodGet, "/invoices/"+url.PathEscape(id), token, nil, &reply); err != nil {
		return nil, err
	}
	inv := fromInvoiceWire(reply.unwrap())
	if inv.ID == "" {
		inv.ID = id
	}
	return &inv, nil
}

// DeleteInvoice DELETE /invoices/{id}.
func (c *Client) DeleteInvoice(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/invoices/"+url.PathEscape(id), token, nil, nil)
}

func toInvoiceWire(inv entity.StoredInvoice) invoiceWire {
	h := inv.Header
	w := invoiceWire{
		Headers: headersWire{
			Customer:        h.Customer,
			RUC:             h.RUC,
			Email:           h.Email,
			Condition:       string(h.Condition),
			DocumentType:    string(h.DocumentType),
			DocumentNumber:  h.DocumentNumber,
			TransactionType: string(h.TransactionType),
			Date:            h.Date,
		},
		Details: make([]detailWire, 0, len(inv.Details)),
	}
	for _, d := range inv.Details {
		w.Details = append(w.Details, detailWire{
			Quantity:    NewNumber(d.Quantity),
			UnitPrice:   NewNumber(d.UnitPrice),
			Description: d.Description,
			TaxType:     d.TaxCategory.WireCode(),
		})
	}
	return w
}

func fromInvoiceWire(w invoiceWire) entity.StoredInvoice {
	inv := entity.StoredInvoice{
		ID: string(w.ID),
		Header: invoice.Header{
			Customer:        w.Headers.Customer,
			RUC:             w.Headers.RUC,
			Email:           w.Headers.Email,
			Condition:       invoice.Condition(w.Headers.Condition),
			TransactionType: invoice.TransactionType(w.Headers.TransactionType),
			DocumentType:    invoice.DocumentType(w.Headers.DocumentType),
			DocumentNumber:  w.Headers.DocumentNumber,
			Date:            normalizeDate(w.Headers.Date),
		},
		Details: make([]invoice.Detail, 0, len(w.Details)),
	}
	for _, d := range w.Details {
		cat, ok := invoice.ParseTaxCategory(d.TaxType)
		if !ok {
			cat = invoice.TaxCategory(d.TaxType)
		}
		inv.Details = append(inv.Details, invoice.Detail{
			Quantity:    d.Quantity.Decimal,
			UnitPrice:   d.UnitPrice.Decimal,
			TaxCategory: cat,
			Description: d.Description,
		})
	}
	if t, err := time.Parse(time.RFC3339, w.CreatedAt); err == nil {
		inv.CreatedAt = t
	}
	return inv
}

// normalizeDate recorta timestamps ISO ("2026-10-14T00:00:00.000Z") a YYYY-MM-DD.
func normalizeDate(s string) string {
	if len(s) > len(invoice.DateLayout) && s[len(invoice.DateLayout)] == 'T' {
		return s[:len(invoice.DateLayout)]
	}
	return s
}
