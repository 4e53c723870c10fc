package storeclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/viajespy/agencia-api/internal/domain/entity"
)

// ListPackages GET /packages (público).
func (c *Client) ListPackages(ctx context.Context) ([]entity.TravelPackage, error) {
	var reply listOf[packageWire]
	if err := c.do(ctx, http.MethodGet, "/packages", "", nil, &reply); err != nil {
		return nil, err
	}
	out := make([]entity.TravelPackage, 0, len(reply))
	for _, w := range reply {
		out = append(out, fromPackageWire(w))
	}
	return out, nil
}

// GetPackage GET /packages/{id}.
func (c *Client) GetPackage(ctx context.Context, token, id string) (*entity.TravelPackage, error) {
	var w packageWire
	if err := c.do(ctx, http.MethodGet, "/packages/"+url.PathEscape(id), token, nil, &w); err != nil {
		return nil, err
	}
	p := fromPackageWire(w)
	if p.ID == "" {
		p.ID = id
	}
	return &p, nil
}

// CreatePackage POST /packages. Si el backend no devuelve el paquete, se devuelve el enviado con el id recibido.
func (c *Client) CreatePackage(ctx context.Context, token string, p entity.TravelPackage) (*entity.TravelPackage, error) {
	var w packageWire
	if err := c.do(ctx, http.MethodPost, "/packages", token, toPackageWire(p), &w); err != nil {
		return nil, err
	}
	return mergePackage(p, w), nil
}

// UpdatePackage PUT /packages/{id}.
func (c *Client) UpdatePackage(ctx context.Context, token string, p entity.TravelPackage) (*entity.TravelPackage, error) {
	var w packageWire
	if err := c.do(ctx, http.MethodPut, "/packages/"+url.PathEscape(p.ID), token, toPackageWire(p), &w); err != nil {
		return nil, err
	}
	return mergePackage(p, w), nil
}

// DeletePackage DELETE /packages/{id}.
func (c *Client) DeletePackage(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/packages/"+url.PathEscape(id), token, nil, nil)
}

func mergePackage(sent entity.TravelPackage, w packageWire) *entity.TravelPackage {
	if w.Name == "" {
		if w.ID != "" {
			sent.ID = string(w.ID)
		}
		return &sent
	}
	p := fromPackageWire(w)
	return &p
}

func toPackageWire(p entity.TravelPackage) packageWire {
	return packageWire{
		Name:             p.Name,
		Description:      p.Description,
		CostPrice:        NewNumber(p.CostPrice),
		SellPrice:        NewNumber(p.SellPrice),
		City:             p.City,
		Country:          p.Country,
		StartDate:        p.StartDate,
		EndDate:          p.EndDate,
		IncludedServices: ServiceList(p.IncludedServices),
		ExcludedServices: ServiceList(p.ExcludedServices),
		Image:            toImageWire(p.Image),
		ImageURL:         p.ImageURL,
	}
}

func fromPackageWire(w packageWire) entity.TravelPackage {
	return entity.TravelPackage{
		ID:               string(w.ID),
		Name:             w.Name,
		Description:      w.Description,
		CostPrice:        w.CostPrice.Decimal,
		SellPrice:        w.SellPrice.Decimal,
		City:             w.City,
		Country:          w.Country,
		StartDate:        normalizeDate(w.StartDate),
		EndDate:          normalizeDate(w.EndDate),
		IncludedServices: []string(w.IncludedServices),
		ExcludedServices: []string(w.ExcludedServices),
		Image:            fromImageWire(w.Image),
		ImageURL:         w.ImageURL,
	}
}

func toImageWire(img entity.Image) *imageWire {
	if img.IsEmpty() {
		return nil
	}
	return &imageWire{Data: img.Data, Format: img.Format, URL: img.URL}
}

func fromImageWire(w *imageWire) entity.Image {
	if w == nil {
		return entity.Image{}
	}
	return entity.Image{Data: w.Data, Format: w.Format, URL: w.URL}
}
