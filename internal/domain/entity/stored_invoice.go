package entity

import (
	"time"

	"github.com/viajespy/agencia-api/internal/domain/invoice"
)

// StoredInvoice factura tal como la devuelve el Invoice Store.
type StoredInvoice struct {
	ID        string
	Header    invoice.Header
	Details   []invoice.Detail
	CreatedAt time.Time
}

// Totals recalcula los totales con el mismo motor que los borradores.
func (i *StoredInvoice) Totals() invoice.Totals {
	return invoice.ComputeTotals(i.Details)
}

// InDateRange indica si la fecha de la cabecera cae en [from, to]. Un extremo cero no limita.
func (i *StoredInvoice) InDateRange(from, to time.Time) bool {
	d, err := time.Parse(invoice.DateLayout, i.Header.Date)
	if err != nil {
		return from.IsZero() && to.IsZero()
	}
	if !from.IsZero() && d.Before(from) {
		return false
	}
	if !to.IsZero() && d.After(to) {
		return false
	}
	return true
}
