package billing

import (
	"context"

	"github.com/viajespy/agencia-api/internal/domain/repository"
)

// DraftTxRunner ejecuta una función dentro de una transacción con el repositorio de borradores atado a ella.
// Si fn retorna error se hace rollback.
type DraftTxRunner interface {
	Run(ctx context.Context, fn func(drafts repository.DraftRepository) error) error
}
