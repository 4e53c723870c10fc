package memory

import (
	"context"
	"sync"
	"time"

	"github.com/viajespy/agencia-api/internal/application/ports"
	"github.com/viajespy/agencia-api/internal/domain/entity"
)

var _ ports.PackageCache = (*PackageCache)(nil)

// PackageCache listado de paquetes con vencimiento.
type PackageCache struct {
	mu      sync.Mutex
	pkgs    []entity.TravelPackage
	expires time.Time
	now     func() time.Time
}

// NewPackageCache construye la caché vacía.
func NewPackageCache() *PackageCache {
	return &PackageCache{now: time.Now}
}

func (c *PackageCache) Get(_ context.Context) ([]entity.TravelPackage, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pkgs == nil || !c.now().Before(c.expires) {
		return nil, false, nil
	}
	return append([]entity.TravelPackage(nil), c.pkgs...), true, nil
}

func (c *PackageCache) Set(_ context.Context, pkgs []entity.TravelPackage, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pkgs = append(make([]entity.TravelPackage, 0, len(pkgs)), pkgs...)
	c.expires = c.now().Add(ttl)
	return nil
}

func (c *PackageCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pkgs = nil
	return nil
}
