package catalog_test

import (
	"context"
	"errors"
	"io"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/viajespy/agencia-api/internal/application/ports"
	"github.com/viajespy/agencia-api/internal/domain"
	"github.com/viajespy/agencia-api/internal/domain/entity"
)

type fakePackageStore struct {
	mu       sync.Mutex
	pkgs     map[string]entity.TravelPackage
	seq      int
	lists    atomic.Int32
	inFlight atomic.Int32
	maxSeen  atomic.Int32
	failName string
	delay    time.Duration
}

func newFakePackageStore(pkgs ...entity.TravelPackage) *fakePackageStore {
	s := &fakePackageStore{pkgs: map[string]entity.TravelPackage{}}
	for _, p := range pkgs {
		s.pkgs[p.ID] = p
	}
	return s
}

func (s *fakePackageStore) ListPackages(context.Context) ([]entity.TravelPackage, error) {
	s.lists.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.TravelPackage, 0, len(s.pkgs))
	for _, p := range s.pkgs {
		out = append(out, p)
	}
	return out, nil
}

func (s *fakePackageStore) GetPackage(_ context.Context, _ string, id string) (*entity.TravelPackage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pkgs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *fakePackageStore) CreatePackage(_ context.Context, _ string, p entity.TravelPackage) (*entity.TravelPackage, error) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		m := s.maxSeen.Load()
		if n <= m || s.maxSeen.CompareAndSwap(m, n) {
			break
		}
	}
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.failName != "" && p.Name == s.failName {
		return nil, domain.ErrUpstream
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// Los ids nuevos nunca pisan paquetes sembrados.
	for {
		s.seq++
		p.ID = strconv.Itoa(s.seq)
		if _, taken := s.pkgs[p.ID]; !taken {
			break
		}
	}
	s.pkgs[p.ID] = p
	return &p, nil
}

func (s *fakePackageStore) UpdatePackage(_ context.Context, _ string, p entity.TravelPackage) (*entity.TravelPackage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pkgs[p.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	s.pkgs[p.ID] = p
	return &p, nil
}

func (s *fakePackageStore) DeletePackage(_ context.Context, _ string, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pkgs, id)
	return nil
}

func (s *fakePackageStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pkgs)
}

// fakeCache caché en memoria sin vencimiento.
type fakeCache struct {
	mu          sync.Mutex
	pkgs        []entity.TravelPackage
	hit         bool
	invalidated int
	err         error
}

func (c *fakeCache) Get(context.Context) ([]entity.TravelPackage, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, false, c.err
	}
	return c.pkgs, c.hit, nil
}

func (c *fakeCache) Set(_ context.Context, pkgs []entity.TravelPackage, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pkgs, c.hit = pkgs, true
	return nil
}

func (c *fakeCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pkgs, c.hit = nil, false
	c.invalidated++
	return nil
}

type fakeSheet struct {
	rows []ports.SpreadsheetRow
	err  error
}

func (f fakeSheet) ReadRows(io.Reader) ([]ports.SpreadsheetRow, error) { return f.rows, f.err }

type fakeNormalizer struct{ calls int }

func (n *fakeNormalizer) Normalize(r io.Reader) (*ports.NormalizedImage, error) {
	n.calls++
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("imagen vacía")
	}
	return &ports.NormalizedImage{Data: []byte("normalizada"), Format: "JPEG", Width: 10, Height: 10}, nil
}

type fakeBannerStore struct {
	created []entity.Banner
}

func (s *fakeBannerStore) ListBanners(context.Context) ([]entity.Banner, error) {
	return []entity.Banner{{ID: "b1", ImageURL: "https://cdn/1.jpg"}}, nil
}

func (s *fakeBannerStore) CreateBanner(_ context.Context, _ string, b entity.Banner) (*entity.Banner, error) {
	b.ID = "b" + strconv.Itoa(len(s.created)+2)
	s.created = append(s.created, b)
	return &b, nil
}

func (s *fakeBannerStore) DeleteBanner(context.Context, string, string) error { return nil }
