package http_test

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/viajespy/agencia-api/internal/application/ports"
	"github.com/viajespy/agencia-api/internal/domain"
	"github.com/viajespy/agencia-api/internal/domain/entity"
	"github.com/viajespy/agencia-api/internal/domain/invoice"
	"github.com/viajespy/agencia-api/internal/domain/repository"
)

const (
	adminEmail    = "admin@agencia.com.py"
	adminPassword = "secreto"
	backendToken  = "bearer-backend"
)

// fakeBackend backend REST externo en memoria: login, facturas, paquetes y banners.
type fakeBackend struct {
	mu        sync.Mutex
	seq       int
	invoices  map[string]entity.StoredInvoice
	packages  map[string]entity.TravelPackage
	banners   []entity.Banner
	createErr error
	tokens    []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		invoices: map[string]entity.StoredInvoice{},
		packages: map[string]entity.TravelPackage{},
	}
}

func (b *fakeBackend) next() string {
	b.seq++
	return strconv.Itoa(b.seq)
}

func (b *fakeBackend) Login(_ context.Context, email, password string) (*ports.LoginResult, error) {
	if email != adminEmail || password != adminPassword {
		return nil, domain.ErrUnauthorized
	}
	return &ports.LoginResult{Token: backendToken, UserID: "1", Email: email, Name: "Administración"}, nil
}

func (b *fakeBackend) CreateInvoice(_ context.Context, token string, inv entity.StoredInvoice) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens = append(b.tokens, token)
	if b.createErr != nil {
		return "", b.createErr
	}
	inv.ID = b.next()
	b.invoices[inv.ID] = inv
	return inv.ID, nil
}

func (b *fakeBackend) ListInvoices(context.Context, string) ([]entity.StoredInvoice, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]entity.StoredInvoice, 0, len(b.invoices))
	for _, inv := range b.invoices {
		out = append(out, inv)
	}
	return out, nil
}

func (b *fakeBackend) GetInvoice(_ context.Context, _ string, id string) (*entity.StoredInvoice, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	inv, ok := b.invoices[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &inv, nil
}

func (b *fakeBackend) DeleteInvoice(_ context.Context, _ string, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.invoices[id]; !ok {
		return domain.ErrNotFound
	}
	delete(b.invoices, id)
	return nil
}

func (b *fakeBackend) ListPackages(context.Context) ([]entity.TravelPackage, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]entity.TravelPackage, 0, len(b.packages))
	for _, p := range b.packages {
		out = append(out, p)
	}
	return out, nil
}

func (b *fakeBackend) GetPackage(_ context.Context, _ string, id string) (*entity.TravelPackage, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.packages[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (b *fakeBackend) CreatePackage(_ context.Context, _ string, p entity.TravelPackage) (*entity.TravelPackage, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p.ID = b.next()
	b.packages[p.ID] = p
	return &p, nil
}

func (b *fakeBackend) UpdatePackage(_ context.Context, _ string, p entity.TravelPackage) (*entity.TravelPackage, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.packages[p.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	b.packages[p.ID] = p
	return &p, nil
}

func (b *fakeBackend) DeletePackage(_ context.Context, _ string, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.packages, id)
	return nil
}

func (b *fakeBackend) ListBanners(context.Context) ([]entity.Banner, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]entity.Banner(nil), b.banners...), nil
}

func (b *fakeBackend) CreateBanner(_ context.Context, _ string, banner entity.Banner) (*entity.Banner, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	banner.ID = b.next()
	b.banners = append(b.banners, banner)
	return &banner, nil
}

func (b *fakeBackend) DeleteBanner(context.Context, string, string) error { return nil }

// memDrafts repositorio de borradores en memoria.
type memDrafts struct {
	mu    sync.Mutex
	items map[string]entity.InvoiceDraft
}

func newMemDrafts() *memDrafts { return &memDrafts{items: map[string]entity.InvoiceDraft{}} }

func copyDraft(d entity.InvoiceDraft) *entity.InvoiceDraft {
	d.Details = append([]invoice.Detail(nil), d.Details...)
	return &d
}

func (m *memDrafts) Create(_ context.Context, d *entity.InvoiceDraft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.ID = uuid.NewString()
	d.CreatedAt, d.UpdatedAt = time.Now(), time.Now()
	m.items[d.ID] = *copyDraft(*d)
	return nil
}

func (m *memDrafts) GetByID(_ context.Context, id string) (*entity.InvoiceDraft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return copyDraft(d), nil
}

func (m *memDrafts) GetForUpdate(ctx context.Context, id string) (*entity.InvoiceDraft, error) {
	return m.GetByID(ctx, id)
}

func (m *memDrafts) ListByOwner(_ context.Context, owner string) ([]*entity.InvoiceDraft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.InvoiceDraft
	for _, d := range m.items {
		if d.OwnerEmail == owner && d.Status != entity.DraftStatusSubmitted {
			out = append(out, copyDraft(d))
		}
	}
	return out, nil
}

func (m *memDrafts) Update(_ context.Context, d *entity.InvoiceDraft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.items[d.ID]
	if !ok || cur.Status != entity.DraftStatusDraft {
		return domain.ErrConflict
	}
	m.items[d.ID] = *copyDraft(*d)
	return nil
}

func (m *memDrafts) TransitionStatus(_ context.Context, id, from, to string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.items[id]
	if !ok || cur.Status != from {
		return false, nil
	}
	cur.Status = to
	m.items[id] = cur
	return true, nil
}

func (m *memDrafts) MarkSubmitted(_ context.Context, id, remoteID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Status, cur.RemoteID = entity.DraftStatusSubmitted, remoteID
	m.items[id] = cur
	return nil
}

func (m *memDrafts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

type memRunner struct {
	mu   sync.Mutex
	repo repository.DraftRepository
}

func (r *memRunner) Run(_ context.Context, fn func(repository.DraftRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.repo)
}
