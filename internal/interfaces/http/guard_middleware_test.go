package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invorya-admin/internal/application/auth"
	"github.com/jhoicas/invorya-admin/internal/application/ports"
	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/internal/domain/repository"
	"github.com/jhoicas/invorya-admin/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/invorya-admin/internal/interfaces/http"
	"github.com/jhoicas/invorya-admin/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testNS     = "5b0b6c1e-7d3a-4c39-9f5e-2a8d1e4b7c60"
	testCookie = "invorya_sid"
)

var testSessionCfg = config.SessionConfig{CookieName: testCookie, CheckExpiry: true, LoginPath: "/login"}

type fakeAuth struct {
	perms     []string
	permsErr  error
	permsHits atomic.Int32
}

func (f *fakeAuth) Login(context.Context, string, string) (*repository.LoginResult, error) {
	return nil, domain.ErrUnauthorized
}

func (f *fakeAuth) Permissions(context.Context) ([]string, error) {
	f.permsHits.Add(1)
	return f.perms, f.permsErr
}

func (f *fakeAuth) Logout(context.Context) error { return nil }

// buildGuardApp construye una aplicación Fiber mínima con:
//   - SessionMiddleware para asignar el namespace
//   - el guard correspondiente en cada ruta
//   - un handler dummy que devuelve 200 si pasa los middlewares
func buildGuardApp(store ports.Storage, fa *fakeAuth) *fiber.App {
	sessions := auth.NewSessionManager(store, fa, auth.Options{CheckExpiry: true}, nil)
	guard := apphttp.NewGuard(sessions, "/login", nil)
	ok := func(c *fiber.Ctx) error {
		s := apphttp.GetSession(c)
		role := ""
		if s != nil {
			role = s.Role
		}
		return c.JSON(fiber.Map{"ok": true, "role": role})
	}

	app := fiber.New()
	app.Use(apphttp.SessionMiddleware(testSessionCfg))
	app.Get("/login", guard.Authenticated(), ok)
	app.Get("/productos", guard.Permission("productos", "ver"), ok)
	app.Get("/api/productos", guard.Permission("productos", "ver"), ok)
	app.Post("/api/productos", guard.Permission("productos", "crear"), ok)
	app.Get("/api/usuarios", guard.AdminOnly(), ok)
	app.Get("/api/auth/me", guard.Authenticated(), ok)
	return app
}

// seed escribe una sesión en el almacenamiento. perms nil deja la sesión en Loading.
func seed(t *testing.T, store ports.Storage, role string, exp time.Time, perms []string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, testNS, ports.KeyAuthToken, "tok-1"))
	require.NoError(t, store.Set(ctx, testNS, ports.KeyUserData, `{"id":"u-1","nombre":"Ana","rol":"`+role+`"}`))
	require.NoError(t, store.Set(ctx, testNS, ports.KeyAuthExp, strconv.FormatInt(exp.Unix(), 10)))
	if perms != nil {
		raw, err := json.Marshal(perms)
		require.NoError(t, err)
		require.NoError(t, store.Set(ctx, testNS, ports.KeyPermissions, string(raw)))
	}
}

func doRequest(t *testing.T, app *fiber.App, method, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: testNS})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out), "body: %s", body)
	return out
}

func stored(t *testing.T, store ports.Storage, key string) bool {
	t.Helper()
	_, ok, err := store.Get(context.Background(), testNS, key)
	require.NoError(t, err)
	return ok
}

// ──────────────────────────────────────────────────────────────────────────────
// Sin sesión / expirada
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: Sin sesión en una ruta del navegador → 303 a /login.
func TestGuard_SinSesionNavegadorRedirige(t *testing.T) {
	app := buildGuardApp(memory.NewStorage(0), &fakeAuth{})

	resp := doRequest(t, app, http.MethodGet, "/productos")

	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

// Caso 2: Sin sesión en /api → 401 con la ruta de login en el cuerpo.
func TestGuard_SinSesionAPIDevuelve401ConRedirect(t *testing.T) {
	app := buildGuardApp(memory.NewStorage(0), &fakeAuth{})

	resp := doRequest(t, app, http.MethodGet, "/api/productos")

	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "SESSION_REQUIRED", body["code"])
	assert.Equal(t, "/login", body["redirect"])
}

// Caso 3: Ya en /login sin sesión → no hay bucle de redirección.
func TestGuard_EnLoginNoRedirige(t *testing.T) {
	app := buildGuardApp(memory.NewStorage(0), &fakeAuth{})

	resp := doRequest(t, app, http.MethodGet, "/login")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// Caso 4: Token vencido hace 10 s → se borran las claves de sesión y se redirige.
func TestGuard_TokenExpiradoLimpiaYRedirige(t *testing.T) {
	store := memory.NewStorage(0)
	seed(t, store, "gerente", time.Now().Add(-10*time.Second), []string{"productos.ver"})
	require.NoError(t, store.Set(context.Background(), testNS, ports.KeyReportFilters, `[]`))
	app := buildGuardApp(store, &fakeAuth{})

	resp := doRequest(t, app, http.MethodGet, "/productos")

	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	for _, key := range ports.SessionKeys {
		assert.False(t, stored(t, store, key), "%s debe borrarse", key)
	}
	assert.True(t, stored(t, store, ports.KeyReportFilters), "los presets sobreviven")
}

// Caso 5: Vencida y además sin permisos → redirige, nunca queda en "cargando".
func TestGuard_ExpiradaSinPermisosNoQuedaCargando(t *testing.T) {
	store := memory.NewStorage(0)
	seed(t, store, "empleado", time.Now().Add(-time.Minute), nil)
	fa := &fakeAuth{}
	app := buildGuardApp(store, fa)

	resp := doRequest(t, app, http.MethodGet, "/api/productos")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, fa.permsHits.Load(), "no se consultan permisos de una sesión vencida")
}

// ──────────────────────────────────────────────────────────────────────────────
// Carga de permisos
// ──────────────────────────────────────────────────────────────────────────────

// Caso 6: Permisos sin cargar y backend caído → 202 con Retry-After, sin redirigir.
func TestGuard_PermisosPendientesDevuelve202(t *testing.T) {
	store := memory.NewStorage(0)
	seed(t, store, "admin", time.Now().Add(time.Hour), nil)
	app := buildGuardApp(store, &fakeAuth{permsErr: domain.ErrNetwork})

	resp := doRequest(t, app, http.MethodGet, "/api/productos")

	require.Equal(t, fiber.StatusAccepted, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("Retry-After"))
	assert.Equal(t, "LOADING", decode(t, resp)["code"])
	assert.True(t, stored(t, store, ports.KeyAuthToken), "la sesión se conserva mientras carga")
}

// Caso 7: Permisos sin cargar → el guard los carga y deja pasar en la misma petición.
func TestGuard_CargaPermisosPendientes(t *testing.T) {
	store := memory.NewStorage(0)
	seed(t, store, "empleado", time.Now().Add(time.Hour), nil)
	fa := &fakeAuth{perms: []string{"productos.ver"}}
	app := buildGuardApp(store, fa)

	resp := doRequest(t, app, http.MethodGet, "/api/productos")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(1), fa.permsHits.Load())
	assert.True(t, stored(t, store, ports.KeyPermissions))
}

// Caso 8: El backend rechaza el token al cargar permisos → se trata como sin sesión.
func TestGuard_PermisosCon401Redirige(t *testing.T) {
	store := memory.NewStorage(0)
	seed(t, store, "empleado", time.Now().Add(time.Hour), nil)
	app := buildGuardApp(store, &fakeAuth{permsErr: domain.ErrSessionExpired})

	resp := doRequest(t, app, http.MethodGet, "/productos")

	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Permisos y rol
// ──────────────────────────────────────────────────────────────────────────────

// Caso 9: Empleado con solo productos.ver puede listar pero no crear.
func TestGuard_EmpleadoSoloVer(t *testing.T) {
	store := memory.NewStorage(0)
	seed(t, store, "empleado", time.Now().Add(time.Hour), []string{"productos.ver"})
	app := buildGuardApp(store, &fakeAuth{})

	assert.Equal(t, fiber.StatusOK, doRequest(t, app, http.MethodGet, "/api/productos").StatusCode)

	resp := doRequest(t, app, http.MethodPost, "/api/productos")
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "ACCESS_DENIED", decode(t, resp)["code"])
}

// Caso 10: Ruta solo admin: gerente con "*" no pasa, admin con lista vacía sí.
func TestGuard_AdminOnly(t *testing.T) {
	store := memory.NewStorage(0)
	seed(t, store, "gerente", time.Now().Add(time.Hour), []string{"*"})
	app := buildGuardApp(store, &fakeAuth{})
	assert.Equal(t, fiber.StatusForbidden, doRequest(t, app, http.MethodGet, "/api/usuarios").StatusCode)

	seed(t, store, "administrador", time.Now().Add(time.Hour), []string{})
	resp := doRequest(t, app, http.MethodGet, "/api/usuarios")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "admin", decode(t, resp)["role"], "el rol se normaliza")
}

// Caso 11: Admin sin permisos explícitos pasa cualquier verificación de permiso.
func TestGuard_AdminPasaPermisos(t *testing.T) {
	store := memory.NewStorage(0)
	seed(t, store, "admin", time.Now().Add(time.Hour), []string{})
	app := buildGuardApp(store, &fakeAuth{})

	assert.Equal(t, fiber.StatusOK, doRequest(t, app, http.MethodPost, "/api/productos").StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cookie de cliente
// ──────────────────────────────────────────────────────────────────────────────

func TestSessionMiddleware_AsignaCookie(t *testing.T) {
	app := buildGuardApp(memory.NewStorage(0), &fakeAuth{})

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var sid *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == testCookie {
			sid = c
		}
	}
	require.NotNil(t, sid, "debe emitirse la cookie de cliente")
	assert.True(t, sid.HttpOnly)
	assert.Len(t, sid.Value, 36)
}

func TestSessionMiddleware_ConservaCookieValida(t *testing.T) {
	app := buildGuardApp(memory.NewStorage(0), &fakeAuth{})

	resp := doRequest(t, app, http.MethodGet, "/login")

	for _, c := range resp.Cookies() {
		assert.NotEqual(t, testCookie, c.Name, "no se reemplaza una cookie válida")
	}
}
