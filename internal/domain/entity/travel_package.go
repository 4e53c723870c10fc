package entity

import "github.com/shopspring/decimal"

// Image imagen en base64 ({data, format}) o referenciada por URL.
type Image struct {
	Data   string // base64 sin prefijo data:
	Format string // extensión: JPEG, PNG
	URL    string
}

// IsEmpty indica si no hay imagen.
func (i Image) IsEmpty() bool {
	return i.Data == "" && i.URL == ""
}

// TravelPackage paquete turístico del catálogo.
type TravelPackage struct {
	ID               string
	Name             string
	Description      string
	CostPrice        decimal.Decimal
	SellPrice        decimal.Decimal
	City             string
	Country          string
	StartDate        string // YYYY-MM-DD
	EndDate          string
	IncludedServices []string
	ExcludedServices []string
	Image            Image
	ImageURL         string
}
