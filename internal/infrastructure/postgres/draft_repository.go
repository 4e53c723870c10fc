package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/viajespy/agencia-api/internal/domain"
	"github.com/viajespy/agencia-api/internal/domain/entity"
	"github.com/viajespy/agencia-api/internal/domain/invoice"
	"github.com/viajespy/agencia-api/internal/domain/repository"
)

var _ repository.DraftRepository = (*DraftRepo)(nil)

// DraftRepo implementación de DraftRepository (usable con pool o tx).
type DraftRepo struct {
	q Querier
}

// NewDraftRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDraftRepository(q Querier) *DraftRepo {
	return &DraftRepo{q: q}
}

const draftColumns = `id, owner_email, customer, ruc, email, condition, transaction_type,
	document_type, document_number, date, status, remote_id, created_at, updated_at`

// Create persiste cabecera y detalle de un borrador nuevo.
func (r *DraftRepo) Create(ctx context.Context, d *entity.InvoiceDraft) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.Status == "" {
		d.Status = entity.DraftStatusDraft
	}
	now := time.Now().UTC()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now

	h := d.Header
	_, err := r.q.Exec(ctx, `
		INSERT INTO invoice_drafts (`+draftColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		d.ID, d.OwnerEmail, h.Customer, h.RUC, h.Email, string(h.Condition), string(h.TransactionType),
		string(h.DocumentType), h.DocumentNumber, h.Date, d.Status, nullIfEmpty(d.RemoteID), d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("borrador %s duplicado: %w", d.ID, domain.ErrConflict)
		}
		return fmt.Errorf("insert draft: %w", err)
	}
	return r.replaceDetails(ctx, d.ID, d.Details)
}

// GetByID obtiene un borrador con su detalle en orden.
func (r *DraftRepo) GetByID(ctx context.Context, id string) (*entity.InvoiceDraft, error) {
	return r.get(ctx, `SELECT `+draftColumns+` FROM invoice_drafts WHERE id = $1`, id)
}

// GetForUpdate igual que GetByID pero bloquea la fila (SELECT ... FOR UPDATE).
func (r *DraftRepo) GetForUpdate(ctx context.Context, id string) (*entity.InvoiceDraft, error) {
	return r.get(ctx, `SELECT `+draftColumns+` FROM invoice_drafts WHERE id = $1 FOR UPDATE`, id)
}

func (r *DraftRepo) get(ctx context.Context, query, id string) (*entity.InvoiceDraft, error) {
	d, err := scanDraft(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get draft: %w", err)
	}
	details, err := r.details(ctx, []string{d.ID})
	if err != nil {
		return nil, err
	}
	d.Details = details[d.ID]
	return d, nil
}

// ListByOwner borradores abiertos (no enviados) del administrador, más recientes primero.
func (r *DraftRepo) ListByOwner(ctx context.Context, ownerEmail string) ([]*entity.InvoiceDraft, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+draftColumns+` FROM invoice_drafts
		WHERE owner_email = $1 AND status <> $2
		ORDER BY updated_at DESC`, ownerEmail, entity.DraftStatusSubmitted)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	defer rows.Close()

	var list []*entity.InvoiceDraft
	var ids []string
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, fmt.Errorf("scan draft: %w", err)
		}
		list = append(list, d)
		ids = append(ids, d.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}
	details, err := r.details(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, d := range list {
		d.Details = details[d.ID]
	}
	return list, nil
}

// Update guarda cabecera y detalle. ErrConflict si el borrador ya no está en estado draft.
func (r *DraftRepo) Update(ctx context.Context, d *entity.InvoiceDraft) error {
	d.UpdatedAt = time.Now().UTC()
	h := d.Header
	tag, err := r.q.Exec(ctx, `
		UPDATE invoice_drafts
		SET customer = $2, ruc = $3, email = $4, condition = $5, transaction_type = $6,
		    document_type = $7, document_number = $8, date = $9, updated_at = $10
		WHERE id = $1 AND status = $11`,
		d.ID, h.Customer, h.RUC, h.Email, string(h.Condition), string(h.TransactionType),
		string(h.DocumentType), h.DocumentNumber, h.Date, d.UpdatedAt, entity.DraftStatusDraft,
	)
	if err != nil {
		return fmt.Errorf("update draft: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("borrador %s no editable: %w", d.ID, domain.ErrConflict)
	}
	return r.replaceDetails(ctx, d.ID, d.Details)
}

// TransitionStatus UPDATE condicional: solo cambia si el estado actual es from.
func (r *DraftRepo) TransitionStatus(ctx context.Context, id, from, to string) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE invoice_drafts SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`, id, from, to)
	if err != nil {
		return false, fmt.Errorf("transition draft %s -> %s: %w", from, to, err)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkSubmitted cierra el borrador con el id que asignó el Invoice Store.
func (r *DraftRepo) MarkSubmitted(ctx context.Context, id, remoteID string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE invoice_drafts SET status = $2, remote_id = $3, updated_at = now()
		WHERE id = $1 AND status = $4`,
		id, entity.DraftStatusSubmitted, nullIfEmpty(remoteID), entity.DraftStatusSubmitting)
	if err != nil {
		return fmt.Errorf("mark draft submitted: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("borrador %s no estaba en envío: %w", id, domain.ErrConflict)
	}
	return nil
}

// Delete elimina el borrador; el detalle se borra en cascada.
func (r *DraftRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_drafts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

// replaceDetails reescribe el detalle completo en un solo batch.
func (r *DraftRepo) replaceDetails(ctx context.Context, draftID string, details []invoice.Detail) error {
	b := &pgx.Batch{}
	b.Queue(`DELETE FROM invoice_draft_details WHERE draft_id = $1`, draftID)
	for i, det := range details {
		b.Queue(`
			INSERT INTO invoice_draft_details (draft_id, position, quantity, unit_price, tax_category, description)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			draftID, i, det.Quantity, det.UnitPrice, string(det.TaxCategory), det.Description)
	}
	if err := r.q.SendBatch(ctx, b).Close(); err != nil {
		return fmt.Errorf("replace draft details: %w", err)
	}
	return nil
}

func (r *DraftRepo) details(ctx context.Context, draftIDs []string) (map[string][]invoice.Detail, error) {
	rows, err := r.q.Query(ctx, `
		SELECT draft_id, quantity, unit_price, tax_category, description
		FROM invoice_draft_details WHERE draft_id = ANY($1)
		ORDER BY draft_id, position`, draftIDs)
	if err != nil {
		return nil, fmt.Errorf("list draft details: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]invoice.Detail, len(draftIDs))
	for rows.Next() {
		var id, cat string
		var det invoice.Detail
		if err := rows.Scan(&id, &det.Quantity, &det.UnitPrice, &cat, &det.Description); err != nil {
			return nil, fmt.Errorf("scan detail: %w", err)
		}
		det.TaxCategory = invoice.TaxCategory(cat)
		out[id] = append(out[id], det)
	}
	return out, rows.Err()
}

func scanDraft(row pgx.Row) (*entity.InvoiceDraft, error) {
	var d entity.InvoiceDraft
	var condition, txType, docType string
	var remoteID *string
	err := row.Scan(
		&d.ID, &d.OwnerEmail, &d.Header.Customer, &d.Header.RUC, &d.Header.Email,
		&condition, &txType, &docType, &d.Header.DocumentNumber, &d.Header.Date,
		&d.Status, &remoteID, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.Header.Condition = invoice.Condition(condition)
	d.Header.TransactionType = invoice.TransactionType(txType)
	d.Header.DocumentType = invoice.DocumentType(docType)
	d.RemoteID = derefStr(remoteID)
	return &d, nil
}
