package ports

import (
	"context"

	"github.com/viajespy/agencia-api/internal/domain/entity"
)

// Puertos de salida hacia el backend REST externo. El adaptador concreto es
// infrastructure/storeclient; los tests inyectan fakes en memoria.
// token es el bearer de la sesión del administrador; vacío en llamadas públicas.
// Un 404 del backend se devuelve envuelto en domain.ErrNotFound y cualquier otra
// falla en domain.ErrUpstream.

// InvoiceStore CRUD de facturas.
type InvoiceStore interface {
	// CreateInvoice envía cabecera y detalle completos y devuelve el id asignado.
	CreateInvoice(ctx context.Context, token string, inv entity.StoredInvoice) (string, error)
	ListInvoices(ctx context.Context, token string) ([]entity.StoredInvoice, error)
	GetInvoice(ctx context.Context, token, id string) (*entity.StoredInvoice, error)
	DeleteInvoice(ctx context.Context, token, id string) error
}

// PackageStore CRUD del catálogo de paquetes.
type PackageStore interface {
	ListPackages(ctx context.Context) ([]entity.TravelPackage, error)
	GetPackage(ctx context.Context, token, id string) (*entity.TravelPackage, error)
	CreatePackage(ctx context.Context, token string, p entity.TravelPackage) (*entity.TravelPackage, error)
	UpdatePackage(ctx context.Context, token string, p entity.TravelPackage) (*entity.TravelPackage, error)
	DeletePackage(ctx context.Context, token, id string) error
}

// BannerStore banners de portada.
type BannerStore interface {
	ListBanners(ctx context.Context) ([]entity.Banner, error)
	CreateBanner(ctx context.Context, token string, b entity.Banner) (*entity.Banner, error)
	DeleteBanner(ctx context.Context, token, id string) error
}

// LoginResult respuesta del backend a POST /login.
type LoginResult struct {
	Token  string
	UserID string
	Email  string
	Name   string
}

// Authenticator login contra el backend. Credenciales rechazadas: domain.ErrUnauthorized.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}
