package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/viajespy/agencia-api/internal/application/ports"
	"github.com/viajespy/agencia-api/internal/domain/entity"
)

var _ ports.PackageCache = (*PackageCache)(nil)

const packagesKey = "catalog:packages"

// PackageCache listado completo de paquetes bajo una sola clave.
type PackageCache struct {
	rdb *goredis.Client
}

// NewPackageCache construye la caché.
func NewPackageCache(rdb *goredis.Client) *PackageCache {
	return &PackageCache{rdb: rdb}
}

// Get devuelve (nil, false, nil) ante un miss.
func (c *PackageCache) Get(ctx context.Context) ([]entity.TravelPackage, bool, error) {
	raw, err := c.rdb.Get(ctx, packagesKey).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis: leer catálogo: %w", err)
	}
	var pkgs []entity.TravelPackage
	if err := json.Unmarshal(raw, &pkgs); err != nil {
		return nil, false, fmt.Errorf("redis: catálogo corrupto: %w", err)
	}
	return pkgs, true, nil
}

// Set guarda el listado con vencimiento ttl.
func (c *PackageCache) Set(ctx context.Context, pkgs []entity.TravelPackage, ttl time.Duration) error {
	raw, err := json.Marshal(pkgs)
	if err != nil {
		return fmt.Errorf("redis: serializar catálogo: %w", err)
	}
	return c.rdb.Set(ctx, packagesKey, raw, ttl).Err()
}

// Invalidate borra el listado; la próxima lectura va al backend.
func (c *PackageCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, packagesKey).Err()
}
