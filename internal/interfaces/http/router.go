package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invorya-admin/internal/application/analytics"
	"github.com/jhoicas/invorya-admin/internal/application/auth"
	"github.com/jhoicas/invorya-admin/internal/application/inventory"
	"github.com/jhoicas/invorya-admin/internal/application/usecase"
	"github.com/jhoicas/invorya-admin/internal/domain/permission"
	"github.com/jhoicas/invorya-admin/internal/infrastructure/events"
	"github.com/jhoicas/invorya-admin/pkg/config"
	"github.com/jhoicas/invorya-admin/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Session       config.SessionConfig
	Sessions      *auth.SessionManager
	Products      *usecase.ProductUseCase
	Categories    *usecase.CategoryUseCase
	Suppliers     *usecase.SupplierUseCase
	Locations     *usecase.LocationUseCase
	Users         *usecase.UserUseCase
	Audit         *usecase.AuditUseCase
	Movements     *inventory.MovementUseCase
	Transfers     *inventory.TransferUseCase
	Replenishment *inventory.ReplenishmentUseCase
	Sales         *analytics.SalesReportUseCase
	Presets       *analytics.FilterPresetUseCase
	Hub           *events.Hub
	Log           *logger.Logger
}

// módulos con página propia en el navegador y su título.
var pageTitles = []struct{ module, title string }{
	{permission.ModuleProductos, "Productos"},
	{permission.ModuleCategorias, "Categorías"},
	{permission.ModuleProveedores, "Proveedores"},
	{permission.ModuleEntradas, "Entradas"},
	{permission.ModuleSalidas, "Salidas"},
	{permission.ModuleTraslados, "Traslados"},
	{permission.ModuleUbicaciones, "Ubicaciones"},
	{permission.ModuleReportes, "Reportes"},
	{permission.ModuleAuditoria, "Auditoría"},
}

// Router registra las rutas del panel. SessionMiddleware se aplica a todo;
// cada ruta protegida declara su permiso con el guard.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	loginPath := deps.Session.LoginPath
	if loginPath == "" {
		loginPath = "/login"
	}
	guard := NewGuard(deps.Sessions, loginPath, log)
	can := func(module, action string) fiber.Handler { return guard.Permission(module, action) }

	app.Use(SessionMiddleware(deps.Session))

	// Páginas
	pages := NewPageHandler("/", log)
	app.Get(loginPath, guard.Optional(), pages.Login)
	app.Get("/", guard.Authenticated(), pages.Shell("", "Inicio"))
	for _, p := range pageTitles {
		app.Get("/"+p.module, can(p.module, permission.ActionView), pages.Shell(p.module, p.title))
	}
	app.Get("/"+permission.ModuleUsuarios, guard.AdminOnly(), pages.Shell(permission.ModuleUsuarios, "Usuarios"))

	// Eventos (websocket)
	if deps.Hub != nil {
		ev := NewEventsHandler(deps.Hub, log)
		app.Get("/ws/events", guard.Authenticated(), ev.Upgrade, ev.Stream())
	}

	api := app.Group("/api")

	// Auth
	authHandler := NewAuthHandler(deps.Sessions, log)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", guard.Authenticated(), authHandler.Me)
	authGroup.Post("/permissions/refresh", guard.Authenticated(), authHandler.RefreshPermissions)

	// Productos
	productHandler := NewProductHandler(deps.Products, deps.Replenishment, log)
	products := api.Group("/productos")
	products.Get("/", can(permission.ModuleProductos, permission.ActionView), productHandler.List)
	products.Get("/reposicion", can(permission.ModuleProductos, permission.ActionView), productHandler.Replenishment)
	products.Get("/:id", can(permission.ModuleProductos, permission.ActionView), productHandler.GetByID)
	products.Post("/", can(permission.ModuleProductos, permission.ActionCreate), productHandler.Create)
	products.Put("/:id", can(permission.ModuleProductos, permission.ActionEdit), productHandler.Update)
	products.Delete("/:id", can(permission.ModuleProductos, permission.ActionDelete), productHandler.Delete)

	// Catálogos
	catalog := NewCatalogHandler(deps.Categories, deps.Suppliers, deps.Locations, log)
	categories := api.Group("/categorias")
	categories.Get("/", can(permission.ModuleCategorias, permission.ActionView), catalog.ListCategories)
	categories.Post("/", can(permission.ModuleCategorias, permission.ActionCreate), catalog.CreateCategory)
	categories.Put("/:id", can(permission.ModuleCategorias, permission.ActionEdit), catalog.UpdateCategory)
	categories.Delete("/:id", can(permission.ModuleCategorias, permission.ActionDelete), catalog.DeleteCategory)

	suppliers := api.Group("/proveedores")
	suppliers.Get("/", can(permission.ModuleProveedores, permission.ActionView), catalog.ListSuppliers)
	suppliers.Post("/", can(permission.ModuleProveedores, permission.ActionCreate), catalog.CreateSupplier)
	suppliers.Put("/:id", can(permission.ModuleProveedores, permission.ActionEdit), catalog.UpdateSupplier)
	suppliers.Delete("/:id", can(permission.ModuleProveedores, permission.ActionDelete), catalog.DeleteSupplier)

	locations := api.Group("/ubicaciones")
	locations.Get("/", can(permission.ModuleUbicaciones, permission.ActionView), catalog.ListLocations)
	locations.Post("/", can(permission.ModuleUbicaciones, permission.ActionCreate), catalog.CreateLocation)
	locations.Put("/:id", can(permission.ModuleUbicaciones, permission.ActionEdit), catalog.UpdateLocation)
	locations.Delete("/:id", can(permission.ModuleUbicaciones, permission.ActionDelete), catalog.DeleteLocation)

	// Inventario
	inv := NewInventoryHandler(deps.Movements, deps.Transfers, log)
	api.Get("/entradas", can(permission.ModuleEntradas, permission.ActionView), inv.ListEntries)
	api.Post("/entradas", can(permission.ModuleEntradas, permission.ActionCreate), inv.CreateEntry)
	api.Get("/salidas", can(permission.ModuleSalidas, permission.ActionView), inv.ListExits)
	api.Post("/salidas", can(permission.ModuleSalidas, permission.ActionCreate), inv.CreateExit)
	api.Get("/traslados", can(permission.ModuleTraslados, permission.ActionView), inv.ListTransfers)
	api.Post("/traslados", can(permission.ModuleTraslados, permission.ActionCreate), inv.CreateTransfer)
	api.Post("/traslados/:id/cancelar", can(permission.ModuleTraslados, permission.ActionEdit), inv.CancelTransfer)

	// Reportes
	reports := NewReportHandler(deps.Sales, deps.Presets, log)
	rep := api.Group("/reportes", can(permission.ModuleReportes, permission.ActionView))
	rep.Get("/ventas", reports.Sales)
	rep.Get("/filtros", reports.ListPresets)
	rep.Post("/filtros", reports.SavePreset)
	rep.Delete("/filtros/:name", reports.DeletePreset)

	// Auditoría
	audit := NewAuditHandler(deps.Audit, log)
	api.Get("/auditoria", can(permission.ModuleAuditoria, permission.ActionView), audit.List)

	// Usuarios (solo admin)
	users := NewUserHandler(deps.Users, log)
	admin := api.Group("/usuarios", guard.AdminOnly())
	admin.Get("/", users.List)
	admin.Post("/", users.Create)
	admin.Put("/:id", users.Update)
	admin.Delete("/:id", users.Delete)
	admin.Put("/:id/permisos", users.SetPermissions)
}
