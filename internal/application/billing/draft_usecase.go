package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/viajespy/agencia-api/internal/application/dto"
	"github.com/viajespy/agencia-api/internal/application/ports"
	"github.com/viajespy/agencia-api/internal/domain"
	"github.com/viajespy/agencia-api/internal/domain/entity"
	"github.com/viajespy/agencia-api/internal/domain/invoice"
	"github.com/viajespy/agencia-api/internal/domain/repository"
	"github.com/viajespy/agencia-api/pkg/logger"
)

// ValidationError el borrador no pasó la validación; Result lleva los campos marcados.
type ValidationError struct {
	Result invoice.ValidationResult
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("borrador inválido: %d campo(s) con error", len(e.Result.FieldErrors))
}

func (e *ValidationError) Unwrap() error { return domain.ErrInvalidInput }

// StaleSubmitAfter tiempo tras el cual un borrador en submitting se considera trabado
// (el store ya aceptó la factura pero el cierre falló). Debe superar el timeout del store.
const StaleSubmitAfter = 15 * time.Minute

// DraftUseCase edición y envío de borradores de factura de ingreso/egreso.
// Cada borrador pertenece al email de la sesión que lo creó; para cualquier otro es inexistente.
type DraftUseCase struct {
	txRunner DraftTxRunner
	drafts   repository.DraftRepository
	store    ports.InvoiceStore
	log      *logger.Logger
	now      func() time.Time
}

// NewDraftUseCase construye el caso de uso.
func NewDraftUseCase(txRunner DraftTxRunner, drafts repository.DraftRepository, store ports.InvoiceStore, log *logger.Logger) *DraftUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DraftUseCase{txRunner: txRunner, drafts: drafts, store: store, log: log.Component("drafts"), now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DraftUseCase) WithClock(now func() time.Time) *DraftUseCase {
	uc.now = now
	return uc
}

// Create abre un borrador nuevo con una línea vacía. Cabecera y detalle se graban en la misma transacción.
func (uc *DraftUseCase) Create(ctx context.Context, owner string) (*dto.DraftResponse, error) {
	dr := invoice.NewDraft()
	d := &entity.InvoiceDraft{OwnerEmail: owner, Status: entity.DraftStatusDraft}
	d.Apply(dr)
	err := uc.txRunner.Run(ctx, func(repo repository.DraftRepository) error {
		return repo.Create(ctx, d)
	})
	if err != nil {
		return nil, fmt.Errorf("crear borrador: %w", err)
	}
	return toDraftResponse(d), nil
}

// Get devuelve el borrador con sus totales.
func (uc *DraftUseCase) Get(ctx context.Context, owner, id string) (*dto.DraftResponse, error) {
	d, err := uc.load(ctx, uc.drafts, owner, id, false)
	if err != nil {
		return nil, err
	}
	return toDraftResponse(d), nil
}

// List borradores abiertos del administrador.
func (uc *DraftUseCase) List(ctx context.Context, owner string) ([]dto.DraftResponse, error) {
	list, err := uc.drafts.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("listar borradores: %w", err)
	}
	out := make([]dto.DraftResponse, 0, len(list))
	for _, d := range list {
		out = append(out, *toDraftResponse(d))
	}
	return out, nil
}

// UpdateHeader reemplaza la cabecera completa.
func (uc *DraftUseCase) UpdateHeader(ctx context.Context, owner, id string, in dto.InvoiceHeaderRequest) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, owner, id, func(dr *invoice.Draft) error {
		dr.Header = HeaderFromRequest(in)
		return nil
	})
}

// AddDetail agrega una línea vacía al final.
func (uc *DraftUseCase) AddDetail(ctx context.Context, owner, id string) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, owner, id, func(dr *invoice.Draft) error {
		dr.AddDetail()
		return nil
	})
}

// UpdateDetail cambia un campo de la línea index. Un índice inexistente deja el borrador igual.
func (uc *DraftUseCase) UpdateDetail(ctx context.Context, owner, id string, index int, in dto.DetailUpdateRequest) (*dto.DraftResponse, error) {
	u, err := invoice.ParseDetailUpdate(in.Field, in.Value)
	if err != nil {
		return nil, fmt.Errorf("campo %q: %w", in.Field, domain.ErrInvalidInput)
	}
	return uc.mutate(ctx, owner, id, func(dr *invoice.Draft) error {
		dr.UpdateDetail(index, u)
		return nil
	})
}

// RemoveDetail quita la línea index. Un índice inexistente deja el borrador igual.
func (uc *DraftUseCase) RemoveDetail(ctx context.Context, owner, id string, index int) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, owner, id, func(dr *invoice.Draft) error {
		dr.RemoveDetail(index)
		return nil
	})
}

// Validate informa los campos inválidos sin modificar el borrador.
func (uc *DraftUseCase) Validate(ctx context.Context, owner, id string) (*invoice.ValidationResult, error) {
	d, err := uc.load(ctx, uc.drafts, owner, id, false)
	if err != nil {
		return nil, err
	}
	res := invoice.Validate(d.Header, d.Details)
	return &res, nil
}

// Submit valida el borrador y lo envía al Invoice Store.
//
// El paso draft -> submitting es un UPDATE condicional: un segundo envío concurrente
// recibe ErrSubmitInProgress y nunca llega al store. Si el store falla, o el borrador
// resulta inválido, vuelve a draft. Con éxito queda submitted con el id remoto.
func (uc *DraftUseCase) Submit(ctx context.Context, owner, token, id string) (*dto.SubmitResponse, error) {
	if _, err := uc.load(ctx, uc.drafts, owner, id, false); err != nil {
		return nil, err
	}

	ok, err := uc.drafts.TransitionStatus(ctx, id, entity.DraftStatusDraft, entity.DraftStatusSubmitting)
	if err != nil {
		return nil, fmt.Errorf("bloquear borrador: %w", err)
	}
	if !ok {
		return nil, uc.transitionError(ctx, id)
	}

	// Releer ya bloqueado: es la versión que se envía.
	d, err := uc.drafts.GetByID(ctx, id)
	if err != nil || d == nil {
		uc.release(ctx, id)
		if err == nil {
			err = domain.ErrNotFound
		}
		return nil, fmt.Errorf("releer borrador: %w", err)
	}

	if res := invoice.Validate(d.Header, d.Details); !res.Valid {
		uc.release(ctx, id)
		return nil, &ValidationError{Result: res}
	}

	remoteID, err := uc.store.CreateInvoice(ctx, token, entity.StoredInvoice{Header: d.Header, Details: d.Details})
	if err != nil {
		uc.release(ctx, id)
		uc.log.Warn().Err(err).Str("draft_id", id).Msg("el Invoice Store rechazó el envío")
		return nil, fmt.Errorf("enviar factura: %w", err)
	}

	// La factura ya existe en el store: cerrar el borrador aunque el request se haya cancelado.
	if err := uc.drafts.MarkSubmitted(context.WithoutCancel(ctx), id, remoteID); err != nil {
		uc.log.Error().Err(err).Str("draft_id", id).Str("invoice_id", remoteID).Msg("factura creada pero el borrador no pudo cerrarse")
		return nil, fmt.Errorf("cerrar borrador: %w", err)
	}
	d.Status = entity.DraftStatusSubmitted
	d.RemoteID = remoteID

	uc.log.Info().Str("draft_id", id).Str("invoice_id", remoteID).Msg("factura enviada")
	return &dto.SubmitResponse{InvoiceID: remoteID, Draft: *toDraftResponse(d)}, nil
}

// Delete descarta el borrador. Mientras se envía no se puede borrar, salvo que lleve
// más de StaleSubmitAfter en submitting: ese borrador no se reintenta, solo se descarta.
func (uc *DraftUseCase) Delete(ctx context.Context, owner, id string) error {
	d, err := uc.load(ctx, uc.drafts, owner, id, false)
	if err != nil {
		return err
	}
	if d.Status == entity.DraftStatusSubmitting {
		if uc.now().Sub(d.UpdatedAt) < StaleSubmitAfter {
			return domain.ErrSubmitInProgress
		}
		uc.log.Warn().Str("draft_id", id).Time("submitting_since", d.UpdatedAt).
			Msg("descartando borrador trabado en envío; verificar la factura en el store")
	}
	if err := uc.drafts.Delete(ctx, id); err != nil {
		return fmt.Errorf("eliminar borrador: %w", err)
	}
	return nil
}

// mutate aplica fn al motor dentro de una transacción con la fila bloqueada y guarda el resultado.
func (uc *DraftUseCase) mutate(ctx context.Context, owner, id string, fn func(dr *invoice.Draft) error) (*dto.DraftResponse, error) {
	var out *entity.InvoiceDraft
	err := uc.txRunner.Run(ctx, func(repo repository.DraftRepository) error {
		d, err := uc.load(ctx, repo, owner, id, true)
		if err != nil {
			return err
		}
		if !d.Editable() {
			return statusError(d.Status)
		}
		dr := d.Engine()
		if err := fn(dr); err != nil {
			return err
		}
		d.Apply(dr)
		if err := repo.Update(ctx, d); err != nil {
			return err
		}
		out = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDraftResponse(out), nil
}

func (uc *DraftUseCase) load(ctx context.Context, repo repository.DraftRepository, owner, id string, lock bool) (*entity.InvoiceDraft, error) {
	get := repo.GetByID
	if lock {
		get = repo.GetForUpdate
	}
	d, err := get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener borrador: %w", err)
	}
	if d == nil || d.OwnerEmail != owner {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// transitionError explica por qué no se pudo pasar a submitting.
func (uc *DraftUseCase) transitionError(ctx context.Context, id string) error {
	d, err := uc.drafts.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("obtener borrador: %w", err)
	}
	if d == nil {
		return domain.ErrNotFound
	}
	if err := statusError(d.Status); err != nil {
		return err
	}
	// Volvió a draft entre ambas lecturas: otro envío acaba de fallar.
	return domain.ErrSubmitInProgress
}

// release devuelve el borrador a draft tras un envío fallido.
func (uc *DraftUseCase) release(ctx context.Context, id string) {
	ok, err := uc.drafts.TransitionStatus(context.WithoutCancel(ctx), id, entity.DraftStatusSubmitting, entity.DraftStatusDraft)
	if err != nil || !ok {
		uc.log.Error().Err(err).Str("draft_id", id).Msg("no se pudo liberar el borrador")
	}
}

func statusError(status string) error {
	switch status {
	case entity.DraftStatusSubmitting:
		return domain.ErrSubmitInProgress
	case entity.DraftStatusSubmitted:
		return domain.ErrAlreadySubmitted
	case entity.DraftStatusDraft:
		return nil
	}
	return fmt.Errorf("estado %q: %w", status, domain.ErrConflict)
}

// IsValidationError extrae el resultado de validación de err, si lo hay.
func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
