package catalog

import (
	"strings"

	"github.com/viajespy/agencia-api/internal/application/dto"
	"github.com/viajespy/agencia-api/internal/domain/entity"
)

func cleanServices(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func packageFromRequest(id string, req dto.PackageRequest) entity.TravelPackage {
	p := entity.TravelPackage{
		ID:               id,
		Name:             strings.TrimSpace(req.Name),
		Description:      strings.TrimSpace(req.Description),
		CostPrice:        req.CostPrice,
		SellPrice:        req.SellPrice,
		City:             strings.TrimSpace(req.City),
		Country:          strings.TrimSpace(req.Country),
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		IncludedServices: cleanServices(req.IncludedServices),
		ExcludedServices: cleanServices(req.ExcludedServices),
		ImageURL:         req.ImageURL,
	}
	if req.Image != nil {
		p.Image = entity.Image{Data: req.Image.Data, Format: strings.ToUpper(req.Image.Format), URL: req.Image.URL}
	}
	return p
}

func imagePayload(img entity.Image) *dto.ImagePayload {
	if img.IsEmpty() {
		return nil
	}
	return &dto.ImagePayload{Data: img.Data, Format: img.Format, URL: img.URL}
}

func packageResponse(p entity.TravelPackage) dto.PackageResponse {
	return dto.PackageResponse{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		CostPrice:        p.CostPrice,
		SellPrice:        p.SellPrice,
		City:             p.City,
		Country:          p.Country,
		StartDate:        p.StartDate,
		EndDate:          p.EndDate,
		IncludedServices: nonNil(p.IncludedServices),
		ExcludedServices: nonNil(p.ExcludedServices),
		ImageURL:         p.ImageURL,
		Image:            imagePayload(p.Image),
	}
}

func packageResponses(pkgs []entity.TravelPackage) []dto.PackageResponse {
	out := make([]dto.PackageResponse, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, packageResponse(p))
	}
	return out
}

func bannerResponse(b entity.Banner) dto.BannerResponse {
	return dto.BannerResponse{ID: b.ID, Title: b.Title, ImageURL: b.ImageURL, Image: imagePayload(b.Image)}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
