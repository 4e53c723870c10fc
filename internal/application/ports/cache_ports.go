package ports

import (
	"context"
	"time"

	"github.com/viajespy/agencia-api/internal/domain/entity"
)

// PackageCache caché del listado público de paquetes.
// Get devuelve (nil, false, nil) ante un miss; los errores de la caché no deben cortar la lectura.
type PackageCache interface {
	Get(ctx context.Context) ([]entity.TravelPackage, bool, error)
	Set(ctx context.Context, pkgs []entity.TravelPackage, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}
