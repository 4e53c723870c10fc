package catalog

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/viajespy/agencia-api/internal/application/dto"
	"github.com/viajespy/agencia-api/internal/application/ports"
	"github.com/viajespy/agencia-api/internal/domain"
	"github.com/viajespy/agencia-api/internal/domain/entity"
)

// BannerUseCase banners de la portada.
type BannerUseCase struct {
	store  ports.BannerStore
	images ports.ImageNormalizer
}

// NewBannerUseCase construye el caso de uso.
func NewBannerUseCase(store ports.BannerStore, images ports.ImageNormalizer) *BannerUseCase {
	return &BannerUseCase{store: store, images: images}
}

// List banners vigentes.
func (uc *BannerUseCase) List(ctx context.Context) ([]dto.BannerResponse, error) {
	list, err := uc.store.ListBanners(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar banners: %w", err)
	}
	out := make([]dto.BannerResponse, 0, len(list))
	for _, b := range list {
		out = append(out, bannerResponse(b))
	}
	return out, nil
}

// Upload normaliza la imagen subida y la envía como {data: base64, format}.
func (uc *BannerUseCase) Upload(ctx context.Context, token, title string, r io.Reader) (*dto.BannerResponse, error) {
	if r == nil {
		return nil, domain.ErrInvalidInput
	}
	img, err := uc.images.Normalize(r)
	if err != nil {
		return nil, fmt.Errorf("banner: %v: %w", err, domain.ErrInvalidInput)
	}
	b := entity.Banner{
		Title: strings.TrimSpace(title),
		Image: entity.Image{Data: base64.StdEncoding.EncodeToString(img.Data), Format: img.Format},
	}
	out, err := uc.store.CreateBanner(ctx, token, b)
	if err != nil {
		return nil, fmt.Errorf("crear banner: %w", err)
	}
	res := bannerResponse(*out)
	return &res, nil
}

// Delete elimina el banner.
func (uc *BannerUseCase) Delete(ctx context.Context, token, id string) error {
	if err := uc.store.DeleteBanner(ctx, token, id); err != nil {
		return fmt.Errorf("eliminar banner: %w", err)
	}
	return nil
}
