package entity

import (
	"time"

	"github.com/viajespy/agencia-api/internal/domain/invoice"
)

// Estados de un borrador de factura.
const (
	DraftStatusDraft      = "draft"      // editable
	DraftStatusSubmitting = "submitting" // envío al Invoice Store en curso
	DraftStatusSubmitted  = "submitted"  // cerrado; RemoteID tiene el id asignado por el store
)

// InvoiceDraft borrador persistido de una factura de ingreso/egreso.
type InvoiceDraft struct {
	ID         string
	OwnerEmail string
	Header     invoice.Header
	Details    []invoice.Detail
	Status     string
	RemoteID   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Editable indica si el borrador admite cambios.
func (d *InvoiceDraft) Editable() bool {
	return d.Status == DraftStatusDraft
}

// Engine reconstruye el motor de totales con la cabecera y el detalle guardados.
func (d *InvoiceDraft) Engine() *invoice.Draft {
	return invoice.RestoreDraft(d.Header, d.Details)
}

// Apply copia al borrador persistido el estado del motor.
func (d *InvoiceDraft) Apply(dr *invoice.Draft) {
	d.Header = dr.Header
	d.Details = dr.Details()
}
