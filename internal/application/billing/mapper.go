package billing

import (
	"github.com/viajespy/agencia-api/internal/application/dto"
	"github.com/viajespy/agencia-api/internal/domain/entity"
	"github.com/viajespy/agencia-api/internal/domain/invoice"
	"github.com/viajespy/agencia-api/pkg/guarani"
)

// HeaderFromRequest traduce la cabecera recibida. Los valores se guardan tal cual; la validación los revisa.
func HeaderFromRequest(in dto.InvoiceHeaderRequest) invoice.Header {
	return invoice.Header{
		Customer:        in.Customer,
		RUC:             in.RUC,
		Email:           in.Email,
		Condition:       invoice.Condition(in.Condition),
		TransactionType: invoice.TransactionType(in.TransactionType),
		DocumentType:    invoice.DocumentType(in.DocumentType),
		DocumentNumber:  in.DocumentNumber,
		Date:            in.Date,
	}
}

func headerResponse(h invoice.Header) dto.InvoiceHeaderResponse {
	return dto.InvoiceHeaderResponse{
		Customer:        h.Customer,
		RUC:             h.RUC,
		Email:           h.Email,
		Condition:       string(h.Condition),
		TransactionType: string(h.TransactionType),
		DocumentType:    string(h.DocumentType),
		DocumentNumber:  h.DocumentNumber,
		Date:            h.Date,
	}
}

func detailResponses(details []invoice.Detail) []dto.DetailResponse {
	out := make([]dto.DetailResponse, 0, len(details))
	for i, d := range details {
		sub := d.Subtotal()
		out = append(out, dto.DetailResponse{
			Index:            i,
			Quantity:         d.Quantity,
			UnitPrice:        d.UnitPrice,
			Subtotal:         sub,
			QuantityDisplay:  guarani.FormatStoredNumber(d.Quantity),
			UnitPriceDisplay: guarani.FormatStoredNumber(d.UnitPrice),
			SubtotalDisplay:  guarani.FormatAmount(sub),
			TaxCategory:      string(d.TaxCategory),
			TaxLabel:         d.TaxCategory.Label(),
			Description:      d.Description,
		})
	}
	return out
}

func totalsResponse(t invoice.Totals) dto.TotalsResponse {
	return dto.TotalsResponse{
		Exempt:        t.Exempt,
		Tax5:          t.Tax5,
		Tax10:         t.Tax10,
		Total:         t.Total,
		ExemptDisplay: guarani.FormatAmount(t.Exempt),
		Tax5Display:   guarani.FormatAmount(t.Tax5),
		Tax10Display:  guarani.FormatAmount(t.Tax10),
		TotalDisplay:  guarani.FormatAmount(t.Total),
	}
}

func toDraftResponse(d *entity.InvoiceDraft) *dto.DraftResponse {
	return &dto.DraftResponse{
		ID:        d.ID,
		Status:    d.Status,
		RemoteID:  d.RemoteID,
		Header:    headerResponse(d.Header),
		Details:   detailResponses(d.Details),
		Totals:    totalsResponse(invoice.ComputeTotals(d.Details)),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func toInvoiceResponse(inv *entity.StoredInvoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:      inv.ID,
		Header:  headerResponse(inv.Header),
		Details: detailResponses(inv.Details),
		Totals:  totalsResponse(inv.Totals()),
	}
}
