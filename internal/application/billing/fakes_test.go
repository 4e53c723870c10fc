package billing_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/viajespy/agencia-api/internal/domain"
	"github.com/viajespy/agencia-api/internal/domain/entity"
	"github.com/viajespy/agencia-api/internal/domain/invoice"
	"github.com/viajespy/agencia-api/internal/domain/repository"
)

// fakeDrafts repositorio de borradores en memoria; copia al guardar y al leer.
type fakeDrafts struct {
	mu      sync.Mutex
	items   map[string]entity.InvoiceDraft
	markErr error
}

func newFakeDrafts() *fakeDrafts {
	return &fakeDrafts{items: map[string]entity.InvoiceDraft{}}
}

func clone(d entity.InvoiceDraft) *entity.InvoiceDraft {
	d.Details = append([]invoice.Detail(nil), d.Details...)
	return &d
}

func (f *fakeDrafts) Create(_ context.Context, d *entity.InvoiceDraft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.CreatedAt, d.UpdatedAt = time.Now(), time.Now()
	f.items[d.ID] = *clone(*d)
	return nil
}

func (f *fakeDrafts) GetByID(_ context.Context, id string) (*entity.InvoiceDraft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	return clone(d), nil
}

func (f *fakeDrafts) GetForUpdate(ctx context.Context, id string) (*entity.InvoiceDraft, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeDrafts) ListByOwner(_ context.Context, owner string) ([]*entity.InvoiceDraft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.InvoiceDraft
	for _, d := range f.items {
		if d.OwnerEmail == owner && d.Status != entity.DraftStatusSubmitted {
			out = append(out, clone(d))
		}
	}
	return out, nil
}

func (f *fakeDrafts) Update(_ context.Context, d *entity.InvoiceDraft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.items[d.ID]
	if !ok || cur.Status != entity.DraftStatusDraft {
		return domain.ErrConflict
	}
	d.UpdatedAt = time.Now()
	f.items[d.ID] = *clone(*d)
	return nil
}

func (f *fakeDrafts) TransitionStatus(_ context.Context, id, from, to string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.items[id]
	if !ok || cur.Status != from {
		return false, nil
	}
	cur.Status = to
	cur.UpdatedAt = time.Now()
	f.items[id] = cur
	return true, nil
}

func (f *fakeDrafts) MarkSubmitted(_ context.Context, id, remoteID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markErr != nil {
		return f.markErr
	}
	cur, ok := f.items[id]
	if !ok || cur.Status != entity.DraftStatusSubmitting {
		return domain.ErrConflict
	}
	cur.Status, cur.RemoteID = entity.DraftStatusSubmitted, remoteID
	f.items[id] = cur
	return nil
}

func (f *fakeDrafts) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, id)
	return nil
}

func (f *fakeDrafts) status(id string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items[id].Status
}

func (f *fakeDrafts) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

// failingDetails graba la cabecera y falla al escribir el detalle.
type failingDetails struct {
	*fakeDrafts
}

func (f failingDetails) Create(ctx context.Context, d *entity.InvoiceDraft) error {
	_ = f.fakeDrafts.Create(ctx, d)
	return errors.New("batch de detalle rechazado")
}

// rollbackRunner deshace lo escrito en drafts si fn falla.
type rollbackRunner struct {
	drafts *fakeDrafts
	repo   repository.DraftRepository
}

func (r *rollbackRunner) Run(_ context.Context, fn func(repository.DraftRepository) error) error {
	r.drafts.mu.Lock()
	snap := make(map[string]entity.InvoiceDraft, len(r.drafts.items))
	for k, v := range r.drafts.items {
		snap[k] = v
	}
	r.drafts.mu.Unlock()

	if err := fn(r.repo); err != nil {
		r.drafts.mu.Lock()
		r.drafts.items = snap
		r.drafts.mu.Unlock()
		return err
	}
	return nil
}

// fakeRunner serializa las "transacciones" con un mutex propio.
type fakeRunner struct {
	mu    sync.Mutex
	repo  repository.DraftRepository
	calls int
}

func (r *fakeRunner) Run(_ context.Context, fn func(repository.DraftRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return fn(r.repo)
}

// fakeInvoiceStore Invoice Store en memoria.
type fakeInvoiceStore struct {
	mu       sync.Mutex
	created  []entity.StoredInvoice
	invoices map[string]entity.StoredInvoice
	tokens   []string
	err      error
	// block, si no es nil, retiene CreateInvoice hasta que se cierre.
	block   chan struct{}
	entered chan struct{}
}

func newFakeInvoiceStore() *fakeInvoiceStore {
	return &fakeInvoiceStore{invoices: map[string]entity.StoredInvoice{}}
}

func (s *fakeInvoiceStore) CreateInvoice(ctx context.Context, token string, inv entity.StoredInvoice) (string, error) {
	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = append(s.tokens, token)
	if s.err != nil {
		return "", s.err
	}
	s.created = append(s.created, inv)
	id := "inv-" + uuid.NewString()[:8]
	inv.ID = id
	s.invoices[id] = inv
	return id, nil
}

func (s *fakeInvoiceStore) ListInvoices(_ context.Context, _ string) ([]entity.StoredInvoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]entity.StoredInvoice, 0, len(s.invoices))
	for _, inv := range s.invoices {
		out = append(out, inv)
	}
	return out, nil
}

func (s *fakeInvoiceStore) GetInvoice(_ context.Context, _ string, id string) (*entity.StoredInvoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invoices[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &inv, nil
}

func (s *fakeInvoiceStore) DeleteInvoice(_ context.Context, _ string, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.invoices[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.invoices, id)
	return nil
}

func (s *fakeInvoiceStore) createdCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.created)
}
