package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/viajespy/agencia-api/internal/application/dto"
	"github.com/viajespy/agencia-api/internal/application/ports"
	"github.com/viajespy/agencia-api/internal/domain"
)

// InvoiceUseCase consulta y baja de facturas guardadas en el Invoice Store, y su PDF.
type InvoiceUseCase struct {
	store     ports.InvoiceStore
	generator ports.InvoicePDFGenerator
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(store ports.InvoiceStore, generator ports.InvoicePDFGenerator) *InvoiceUseCase {
	return &InvoiceUseCase{store: store, generator: generator}
}

// List todas las facturas con totales recalculados.
func (uc *InvoiceUseCase) List(ctx context.Context, token string) ([]dto.InvoiceResponse, error) {
	list, err := uc.store.ListInvoices(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("listar facturas: %w", err)
	}
	out := make([]dto.InvoiceResponse, 0, len(list))
	for i := range list {
		out = append(out, *toInvoiceResponse(&list[i]))
	}
	return out, nil
}

// Get una factura por id.
func (uc *InvoiceUseCase) Get(ctx context.Context, token, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.store.GetInvoice(ctx, token, id)
	if err != nil {
		return nil, fmt.Errorf("obtener factura: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return toInvoiceResponse(inv), nil
}

// Delete elimina la factura en el store.
func (uc *InvoiceUseCase) Delete(ctx context.Context, token, id string) error {
	if err := uc.store.DeleteInvoice(ctx, token, id); err != nil {
		return fmt.Errorf("eliminar factura: %w", err)
	}
	return nil
}

// DownloadPDF genera la representación imprimible de la factura.
// Retorna los bytes y un nombre de archivo basado en el número de documento.
func (uc *InvoiceUseCase) DownloadPDF(ctx context.Context, token, id string) ([]byte, string, error) {
	inv, err := uc.store.GetInvoice(ctx, token, id)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	raw, err := uc.generator.Generate(inv)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar: %w", err)
	}
	name := inv.Header.DocumentNumber
	if name == "" {
		name = inv.ID
	}
	return raw, "factura-" + sanitizeFilename(name) + ".pdf", nil
}

func sanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '-', r == '_':
			return r
		}
		return '_'
	}, s)
}
