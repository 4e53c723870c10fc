package dto

import "github.com/shopspring/decimal"

// ImagePayload imagen en base64 o por URL.
type ImagePayload struct {
	Data   string `json:"data,omitempty"`
	Format string `json:"format,omitempty"`
	URL    string `json:"url,omitempty"`
}

// PackageRequest body para POST/PUT /api/packages.
// EndDate no puede ser anterior a StartDate (validación a nivel de struct).
type PackageRequest struct {
	Name             string          `json:"name" validate:"required,min=3,max=200"`
	Description      string          `json:"description" validate:"required,min=10"`
	CostPrice        decimal.Decimal `json:"cost_price" validate:"gte=0"`
	SellPrice        decimal.Decimal `json:"sell_price" validate:"gte=0"`
	City             string          `json:"city" validate:"required"`
	Country          string          `json:"country" validate:"required"`
	StartDate        string          `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate          string          `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	IncludedServices []string        `json:"included_services" validate:"required,min=1,dive,required"`
	ExcludedServices []string        `json:"excluded_services" validate:"omitempty,dive,required"`
	Image            *ImagePayload   `json:"image,omitempty"`
	ImageURL         string          `json:"image_url" validate:"omitempty,url"`
}

// PackageResponse paquete del catálogo.
type PackageResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	CostPrice        decimal.Decimal `json:"cost_price"`
	SellPrice        decimal.Decimal `json:"sell_price"`
	City             string          `json:"city"`
	Country          string          `json:"country"`
	StartDate        string          `json:"start_date"`
	EndDate          string          `json:"end_date"`
	IncludedServices []string        `json:"included_services"`
	ExcludedServices []string        `json:"excluded_services"`
	ImageURL         string          `json:"image_url,omitempty"`
	Image            *ImagePayload   `json:"image,omitempty"`
}

// ImportRowError fila del Excel rechazada (numeración de la planilla, la cabecera es la fila 1).
type ImportRowError struct {
	Row    int      `json:"row"`
	Name   string   `json:"name,omitempty"`
	Errors []string `json:"errors"`
}

// ImportResponse resultado de POST /api/packages/import.
type ImportResponse struct {
	Total   int               `json:"total"`
	Created []PackageResponse `json:"created"`
	Failed  []ImportRowError  `json:"failed"`
}
