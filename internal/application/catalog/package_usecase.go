package catalog

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/viajespy/agencia-api/internal/application/dto"
	"github.com/viajespy/agencia-api/internal/application/ports"
	"github.com/viajespy/agencia-api/internal/domain"
	"github.com/viajespy/agencia-api/internal/domain/entity"
	"github.com/viajespy/agencia-api/pkg/logger"
)

// PackageUseCase catálogo de paquetes turísticos. El listado público se sirve desde caché;
// toda escritura la invalida.
type PackageUseCase struct {
	store    ports.PackageStore
	cache    ports.PackageCache
	images   ports.ImageNormalizer
	cacheTTL time.Duration
	log      *logger.Logger
}

// NewPackageUseCase construye el caso de uso. images puede ser nil (las imágenes se envían tal cual).
func NewPackageUseCase(store ports.PackageStore, cache ports.PackageCache, images ports.ImageNormalizer, cacheTTL time.Duration, log *logger.Logger) *PackageUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PackageUseCase{store: store, cache: cache, images: images, cacheTTL: cacheTTL, log: log.Component("catalog")}
}

// List paquetes que coinciden con q (sin distinguir mayúsculas ni tildes).
func (uc *PackageUseCase) List(ctx context.Context, q string) ([]dto.PackageResponse, error) {
	pkgs, err := uc.all(ctx)
	if err != nil {
		return nil, err
	}
	return packageResponses(matchPackages(pkgs, q)), nil
}

func (uc *PackageUseCase) all(ctx context.Context) ([]entity.TravelPackage, error) {
	if uc.cache != nil {
		pkgs, hit, err := uc.cache.Get(ctx)
		if err != nil {
			uc.log.Warn().Err(err).Msg("caché de catálogo no disponible")
		} else if hit {
			return pkgs, nil
		}
	}
	pkgs, err := uc.store.ListPackages(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar paquetes: %w", err)
	}
	if uc.cache != nil && uc.cacheTTL > 0 {
		if err := uc.cache.Set(ctx, pkgs, uc.cacheTTL); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo guardar el catálogo en caché")
		}
	}
	return pkgs, nil
}

// Get un paquete por id.
func (uc *PackageUseCase) Get(ctx context.Context, token, id string) (*dto.PackageResponse, error) {
	p, err := uc.store.GetPackage(ctx, token, id)
	if err != nil {
		return nil, fmt.Errorf("obtener paquete: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	res := packageResponse(*p)
	return &res, nil
}

// Create valida y da de alta el paquete.
func (uc *PackageUseCase) Create(ctx context.Context, token string, req dto.PackageRequest) (*dto.PackageResponse, error) {
	if err := ValidatePackage(req); err != nil {
		return nil, err
	}
	res, err := uc.create(ctx, token, req)
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return res, nil
}

// create envía un paquete ya validado sin tocar la caché.
func (uc *PackageUseCase) create(ctx context.Context, token string, req dto.PackageRequest) (*dto.PackageResponse, error) {
	p, err := uc.prepare("", req)
	if err != nil {
		return nil, err
	}
	out, err := uc.store.CreatePackage(ctx, token, p)
	if err != nil {
		return nil, fmt.Errorf("crear paquete: %w", err)
	}
	res := packageResponse(*out)
	return &res, nil
}

// Update reemplaza el paquete id.
func (uc *PackageUseCase) Update(ctx context.Context, token, id string, req dto.PackageRequest) (*dto.PackageResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := ValidatePackage(req); err != nil {
		return nil, err
	}
	p, err := uc.prepare(id, req)
	if err != nil {
		return nil, err
	}
	out, err := uc.store.UpdatePackage(ctx, token, p)
	if err != nil {
		return nil, fmt.Errorf("actualizar paquete: %w", err)
	}
	uc.invalidate(ctx)
	res := packageResponse(*out)
	return &res, nil
}

// Delete elimina el paquete.
func (uc *PackageUseCase) Delete(ctx context.Context, token, id string) error {
	if err := uc.store.DeletePackage(ctx, token, id); err != nil {
		return fmt.Errorf("eliminar paquete: %w", err)
	}
	uc.invalidate(ctx)
	return nil
}

func (uc *PackageUseCase) invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(context.WithoutCancel(ctx)); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar la caché de catálogo")
	}
}

// prepare arma la entidad y normaliza la imagen en base64, si vino una.
func (uc *PackageUseCase) prepare(id string, req dto.PackageRequest) (entity.TravelPackage, error) {
	p := packageFromRequest(id, req)
	if uc.images == nil || p.Image.Data == "" {
		return p, nil
	}
	img, err := normalizeBase64(uc.images, p.Image.Data)
	if err != nil {
		return p, err
	}
	p.Image = img
	return p, nil
}

// normalizeBase64 acepta base64 puro o una data URL ("data:image/png;base64,...").
func normalizeBase64(n ports.ImageNormalizer, data string) (entity.Image, error) {
	if i := strings.Index(data, ";base64,"); strings.HasPrefix(data, "data:") && i >= 0 {
		data = data[i+len(";base64,"):]
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return entity.Image{}, fmt.Errorf("imagen: base64 inválido: %w", domain.ErrInvalidInput)
	}
	out, err := n.Normalize(bytes.NewReader(raw))
	if err != nil {
		return entity.Image{}, fmt.Errorf("imagen: %v: %w", err, domain.ErrInvalidInput)
	}
	return entity.Image{Data: base64.StdEncoding.EncodeToString(out.Data), Format: out.Format}, nil
}
