package http

import (
	"bytes"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invorya-admin/internal/domain/permission"
	"github.com/jhoicas/invorya-admin/pkg/logger"
)

var loginTmpl = template.Must(template.New("login").Parse(`<!doctype html>
<html lang="es"><head><meta charset="utf-8"><title>Invorya · Iniciar sesión</title></head>
<body>
<form id="login">
  <input name="email" type="email" placeholder="Correo" required>
  <input name="password" type="password" placeholder="Contraseña" required>
  <button type="submit">Ingresar</button>
  <p id="error" role="alert"></p>
</form>
<script>
document.getElementById("login").addEventListener("submit", async (ev) => {
  ev.preventDefault();
  const f = new FormData(ev.target);
  const res = await fetch("/api/auth/login", {method: "POST", headers: {"Content-Type": "application/json"},
    body: JSON.stringify({email: f.get("email"), password: f.get("password")})});
  if (res.ok) { location.assign("{{.Home}}"); return; }
  const body = await res.json().catch(() => ({}));
  document.getElementById("error").textContent = body.message || "No se pudo iniciar sesión";
});
</script>
</body></html>`))

var shellTmpl = template.Must(template.New("shell").Parse(`<!doctype html>
<html lang="es"><head><meta charset="utf-8"><title>Invorya · {{.Title}}</title></head>
<body data-module="{{.Module}}">
<nav>{{range .Modules}}<a href="/{{.}}">{{.}}</a> {{end}}<button id="logout">Salir</button></nav>
<main id="app"><h1>{{.Title}}</h1><p>Hola, {{.User}}</p></main>
<script>
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws/events");
ws.onmessage = (m) => {
  const e = JSON.parse(m.data);
  if (e.type === "session:expired") { location.replace(e.redirect || "{{.Login}}"); }
  if (e.type === document.body.dataset.module + ":refresh") { document.dispatchEvent(new CustomEvent("refresh")); }
};
document.getElementById("logout").onclick = async () => {
  const res = await fetch("/api/auth/logout", {method: "POST"});
  const body = await res.json().catch(() => ({}));
  location.replace(body.redirect || "{{.Login}}");
};
</script>
</body></html>`))

// PageHandler páginas del navegador: login y el contenedor de cada módulo.
type PageHandler struct {
	home string
	log  *logger.Logger
}

// NewPageHandler construye el handler. home es adonde va el usuario después del login.
func NewPageHandler(home string, log *logger.Logger) *PageHandler {
	if home == "" {
		home = "/"
	}
	return &PageHandler{home: home, log: log}
}

// Login sirve el formulario. Va detrás de un guard sin requisitos: con sesión válida
// no tiene sentido mostrarlo y se redirige al inicio.
func (h *PageHandler) Login(c *fiber.Ctx) error {
	if GetState(c).Authenticated() {
		return c.Redirect(h.home, fiber.StatusSeeOther)
	}
	return h.render(c, loginTmpl, map[string]any{"Home": h.home})
}

// Shell sirve el contenedor de un módulo con la navegación filtrada por permisos.
func (h *PageHandler) Shell(module, title string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := GetSession(c)
		r := permission.For(s)
		var modules []string
		for _, m := range permission.AllModules {
			if m == permission.ModuleUsuarios && !r.IsAdmin() {
				continue
			}
			if r.CanView(m) {
				modules = append(modules, m)
			}
		}
		user := ""
		if s != nil {
			user = s.DisplayName
		}
		return h.render(c, shellTmpl, map[string]any{
			"Title":   title,
			"Module":  module,
			"Modules": modules,
			"User":    user,
			"Login":   GetLoginPath(c),
		})
	}
}

func (h *PageHandler) render(c *fiber.Ctx, t *template.Template, data any) error {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		h.log.Error().Err(err).Str("template", t.Name()).Msg("render")
		return fiber.ErrInternalServerError
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}
