package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/viajespy/agencia-api/internal/application/auth"
	"github.com/viajespy/agencia-api/internal/application/billing"
	"github.com/viajespy/agencia-api/internal/application/catalog"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	DraftUC   *billing.DraftUseCase
	InvoiceUC *billing.InvoiceUseCase
	ReportUC  *billing.ReportUseCase
	PackageUC *catalog.PackageUseCase
	ImportUC  *catalog.ImportUseCase
	BannerUC  *catalog.BannerUseCase
}

// Router registra las rutas de la API. Las públicas van antes del grupo protegido.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC)
	packageHandler := NewPackageHandler(deps.PackageUC, deps.ImportUC)
	bannerHandler := NewBannerHandler(deps.BannerUC)

	// Público
	api.Post("/login", authHandler.Login)
	api.Get("/packages", packageHandler.List)
	api.Get("/packages/:id", packageHandler.GetByID)
	api.Get("/banners", bannerHandler.List)

	// Rutas protegidas (requieren Bearer Token del servicio)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))

	protected.Post("/logout", authHandler.Logout)
	protected.Get("/session", authHandler.Session)

	drafts := protected.Group("/drafts")
	draftHandler := NewDraftHandler(deps.DraftUC)
	drafts.Post("/", draftHandler.Create)
	drafts.Get("/", draftHandler.List)
	drafts.Get("/:id", draftHandler.Get)
	drafts.Delete("/:id", draftHandler.Delete)
	drafts.Put("/:id/header", draftHandler.UpdateHeader)
	drafts.Post("/:id/details", draftHandler.AddDetail)
	drafts.Patch("/:id/details/:index", draftHandler.UpdateDetail)
	drafts.Delete("/:id/details/:index", draftHandler.RemoveDetail)
	drafts.Post("/:id/validate", draftHandler.Validate)
	drafts.Post("/:id/submit", draftHandler.Submit)

	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)
	invoices.Delete("/:id", invoiceHandler.Delete)

	packages := protected.Group("/packages")
	packages.Post("/import", packageHandler.Import)
	packages.Post("/", packageHandler.Create)
	packages.Put("/:id", packageHandler.Update)
	packages.Delete("/:id", packageHandler.Delete)

	banners := protected.Group("/banners")
	banners.Post("/", bannerHandler.Upload)
	banners.Delete("/:id", bannerHandler.Delete)

	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/transactions", reportHandler.Transactions)
}
