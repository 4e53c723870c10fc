package repository

import (
	"context"

	"github.com/viajespy/agencia-api/internal/domain/entity"
)

// DraftRepository define el puerto de persistencia para InvoiceDraft (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si el borrador no existe.
type DraftRepository interface {
	Create(ctx context.Context, draft *entity.InvoiceDraft) error
	GetByID(ctx context.Context, id string) (*entity.InvoiceDraft, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción; fuera de una tx equivale a GetByID.
	GetForUpdate(ctx context.Context, id string) (*entity.InvoiceDraft, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]*entity.InvoiceDraft, error)
	// Update guarda cabecera y detalle; solo aplica a borradores en estado draft.
	Update(ctx context.Context, draft *entity.InvoiceDraft) error
	// TransitionStatus pasa de from a to solo si el estado actual es from. Devuelve false si no aplicó.
	TransitionStatus(ctx context.Context, id, from, to string) (bool, error)
	MarkSubmitted(ctx context.Context, id, remoteID string) error
	Delete(ctx context.Context, id string) error
}
