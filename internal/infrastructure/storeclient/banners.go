package storeclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/viajespy/agencia-api/internal/domain/entity"
)

// ListBanners GET /banners (público).
func (c *Client) ListBanners(ctx context.Context) ([]entity.Banner, error) {
	var reply listOf[bannerWire]
	if err := c.do(ctx, http.MethodGet, "/banners", "", nil, &reply); err != nil {
		return nil, err
	}
	out := make([]entity.Banner, 0, len(reply))
	for _, w := range reply {
		out = append(out, fromBannerWire(w))
	}
	return out, nil
}

// CreateBanner POST /banners con la imagen en base64.
func (c *Client) CreateBanner(ctx context.Context, token string, b entity.Banner) (*entity.Banner, error) {
	in := bannerWire{Title: b.Title, Image: toImageWire(b.Image), ImageURL: b.ImageURL}
	var w bannerWire
	if err := c.do(ctx, http.MethodPost, "/banners", token, in, &w); err != nil {
		return nil, err
	}
	out := fromBannerWire(w)
	if out.Image.IsEmpty() && out.ImageURL == "" {
		out.Image = b.Image
		out.ImageURL = b.ImageURL
	}
	if out.Title == "" {
		out.Title = b.Title
	}
	return &out, nil
}

// DeleteBanner DELETE /banners/{id}.
func (c *Client) DeleteBanner(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/banners/"+url.PathEscape(id), token, nil, nil)
}

func fromBannerWire(w bannerWire) entity.Banner {
	return entity.Banner{
		ID:       string(w.ID),
		Title:    w.Title,
		Image:    fromImageWire(w.Image),
		ImageURL: w.ImageURL,
	}
}
