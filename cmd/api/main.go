// @title                       Agencia API
// @version                     1.0
// @description                 Backend del back office de la agencia: facturación de ingresos/egresos, catálogo de paquetes, banners y reportes.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/viajespy/agencia-api/docs"
	"github.com/viajespy/agencia-api/internal/application/auth"
	"github.com/viajespy/agencia-api/internal/application/billing"
	"github.com/viajespy/agencia-api/internal/application/catalog"
	"github.com/viajespy/agencia-api/internal/application/ports"
	"github.com/viajespy/agencia-api/internal/domain/repository"
	"github.com/viajespy/agencia-api/internal/infrastructure/excel"
	"github.com/viajespy/agencia-api/internal/infrastructure/imagefmt"
	"github.com/viajespy/agencia-api/internal/infrastructure/memory"
	infrapdf "github.com/viajespy/agencia-api/internal/infrastructure/pdf"
	"github.com/viajespy/agencia-api/internal/infrastructure/postgres"
	infraredis "github.com/viajespy/agencia-api/internal/infrastructure/redis"
	"github.com/viajespy/agencia-api/internal/infrastructure/storeclient"
	httpRouter "github.com/viajespy/agencia-api/internal/interfaces/http"
	"github.com/viajespy/agencia-api/pkg/config"
	"github.com/viajespy/agencia-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.BaseURL).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	draftRepo := postgres.NewDraftRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Redis opcional: sin él, sesiones y caché quedan en memoria del proceso.
	var (
		sessions     repository.SessionRepository
		packageCache ports.PackageCache
	)
	if cfg.Redis.Enabled() {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		sessions = infraredis.NewSessionStore(rdb)
		packageCache = infraredis.NewPackageCache(rdb)
	} else {
		log.Warn().Msg("REDIS_URL no definido: sesiones y caché en memoria")
		sessions = memory.NewSessionStore()
		packageCache = memory.NewPackageCache()
	}

	store := storeclient.New(cfg.Store.BaseURL, cfg.Store.Timeout())
	images := imagefmt.NewNormalizer(cfg.Catalog.ImageMaxWidth)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(infrapdf.Issuer{
		Name:          cfg.Issuer.Name,
		Address:       cfg.Issuer.Address,
		Phone:         cfg.Issuer.Phone,
		RUC:           cfg.Issuer.RUC,
		Timbrado:      cfg.Issuer.Timbrado,
		TimbradoStart: cfg.Issuer.TimbradoStart,
	})

	authUC := auth.NewAuthUseCase(store, sessions, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		SessionTTL: cfg.JWT.SessionTTL(),
	})
	draftUC := billing.NewDraftUseCase(txRunner, draftRepo, store, log)
	invoiceUC := billing.NewInvoiceUseCase(store, pdfGenerator)
	reportUC := billing.NewReportUseCase(store, excel.NewReportWriter())
	packageUC := catalog.NewPackageUseCase(store, packageCache, images, cfg.Catalog.CacheTTL(), log)
	importUC := catalog.NewImportUseCase(excel.NewReader(), packageUC, cfg.Catalog.ImportConcurrency, log)
	bannerUC := catalog.NewBannerUseCase(store, images)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    imagefmt.DefaultMaxBytes + 1<<20,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Agencia API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		DraftUC:   draftUC,
		InvoiceUC: invoiceUC,
		ReportUC:  reportUC,
		PackageUC: packageUC,
		ImportUC:  importUC,
		BannerUC:  bannerUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
