package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/invorya-admin/internal/application/analytics"
	"github.com/jhoicas/invorya-admin/internal/application/auth"
	"github.com/jhoicas/invorya-admin/internal/application/inventory"
	"github.com/jhoicas/invorya-admin/internal/application/ports"
	"github.com/jhoicas/invorya-admin/internal/application/usecase"
	"github.com/jhoicas/invorya-admin/internal/infrastructure/backend"
	"github.com/jhoicas/invorya-admin/internal/infrastructure/events"
	"github.com/jhoicas/invorya-admin/internal/infrastructure/memory"
	"github.com/jhoicas/invorya-admin/internal/infrastructure/postgres"
	"github.com/jhoicas/invorya-admin/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/invorya-admin/internal/interfaces/http"
	"github.com/jhoicas/invorya-admin/pkg/config"
	"github.com/jhoicas/invorya-admin/pkg/logger"
)

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
		Str("backend", cfg.Backend.BaseURL).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	store, closeStore := openStorage(ctx, cfg, log)
	defer closeStore()

	hub := events.NewHub(log)
	client := backend.NewClient(backend.Config{BaseURL: cfg.Backend.BaseURL, Timeout: cfg.Backend.Timeout()}, store, log)
	// 401 a mitad de sesión: el navegador conectado recibe la orden de ir a /login.
	client.OnUnauthorized(func(_ context.Context, ns string) {
		hub.Publish(events.Event{Type: events.TypeSessionExpired, Namespace: ns, Redirect: cfg.Session.LoginPath})
	})
	repos := backend.NewRepositories(client)

	sessions := auth.NewSessionManager(store, repos.Auth, auth.Options{CheckExpiry: cfg.Session.CheckExpiry}, log)
	productUC := usecase.NewProductUseCase(repos.Products, hub)
	categoryUC := usecase.NewCategoryUseCase(repos.Categories, hub)
	supplierUC := usecase.NewSupplierUseCase(repos.Suppliers, hub)
	locationUC := usecase.NewLocationUseCase(repos.Locations, hub)
	userUC := usecase.NewUserUseCase(repos.Users, hub)
	auditUC := usecase.NewAuditUseCase(repos.Audit)
	movementUC := inventory.NewMovementUseCase(repos.Entries, repos.Exits, repos.Products, hub)
	transferUC := inventory.NewTransferUseCase(repos.Transfers, repos.Products, hub)
	replenishmentUC := inventory.NewReplenishmentUseCase(repos.Products, repos.Exits)
	salesUC := analytics.NewSalesReportUseCase(repos.Exits, repos.Products)
	presetUC := analytics.NewFilterPresetUseCase(store)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Backend.Timeout() + 5*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI: http://localhost:<port>/docs (solo si DOCS_PATH apunta a un archivo existente)
	if cfg.App.DocsPath != "" {
		if _, err := os.Stat(cfg.App.DocsPath); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.App.DocsPath,
				Path:     "docs",
				Title:    "Invorya Admin",
			}))
		} else {
			log.Warn().Err(err).Str("path", cfg.App.DocsPath).Msg("swagger desactivado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "ws_clients": hub.Subscribers()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Session:       cfg.Session,
		Sessions:      sessions,
		Products:      productUC,
		Categories:    categoryUC,
		Suppliers:     supplierUC,
		Locations:     locationUC,
		Users:         userUC,
		Audit:         auditUC,
		Movements:     movementUC,
		Transfers:     transferUC,
		Replenishment: replenishmentUC,
		Sales:         salesUC,
		Presets:       presetUC,
		Hub:           hub,
		Log:           log,
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
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStorage abre el almacenamiento por cliente según STORAGE_DRIVER.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (ports.Storage, func()) {
	ttl := cfg.Session.NamespaceTTL

	switch cfg.Storage.Driver {
	case config.StorageRedis:
		client, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		return redis.NewStorage(client, ttl), func() { _ = client.Close() }

	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		store := postgres.NewStorage(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("esquema de almacenamiento")
		}
		if hours := int(ttl / time.Hour); hours > 0 {
			go purgeLoop(ctx, store, hours, log)
		}
		return store, pool.Close

	default:
		store := memory.NewStorage(ttl)
		go store.RunSweeper(ctx, time.Minute)
		return store, func() {}
	}
}

func purgeLoop(ctx context.Context, store *postgres.Storage, hours int, log *logger.Logger) {
	t := time.NewTicker(time.Hour)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n, err := store.PurgeIdle(ctx, hours); err != nil {
				log.Warn().Err(err).Msg("purga de almacenamiento")
			} else if n > 0 {
				log.Info().Int64("rows", n).Msg("namespaces inactivos purgados")
			}
		}
	}
}
