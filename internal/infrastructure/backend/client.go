package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/invorya-admin/internal/application/ports"
	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/pkg/logger"
)

// LoginPath es el único endpoint cuyo 401 significa "credenciales inválidas" y no "sesión vencida".
const LoginPath = "/auth/login"

// maxBodyBytes límite de lectura de respuestas del backend.
const maxBodyBytes = 4 << 20

// UnauthorizedFunc se invoca una sola vez por token cuando el backend responde 401.
type UnauthorizedFunc func(ctx context.Context, namespace string)

// Config configuración del cliente remoto.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client es la única frontera HTTP hacia la API de inventario.
// Adjunta el bearer token del namespace del contexto, normaliza errores y limpia la sesión ante 401.
// No reintenta ni cachea: cada llamada se hace una vez.
type Client struct {
	baseURL    string
	httpClient *http.Client
	storage    ports.Storage
	log        *logger.Logger

	mu             sync.Mutex
	onUnauthorized []UnauthorizedFunc
	invalidated    map[string]invalidation
	retention      time.Duration
	now            func() time.Time
}

// invalidation último token de un namespace que recibió 401.
type invalidation struct {
	token string
	at    time.Time
}

// NewClient construye el cliente. Timeout cero usa 15 s.
func NewClient(cfg Config, storage ports.Storage, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:  &http.Client{Timeout: timeout},
		storage:     storage,
		log:         log.Named("backend"),
		invalidated: make(map[string]invalidation),
		retention:   2 * timeout,
		now:         time.Now,
	}
}

// OnUnauthorized registra un callback para el 401 (p. ej. avisar al navegador que vaya a /login).
func (c *Client) OnUnauthorized(fn UnauthorizedFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = append(c.onUnauthorized, fn)
}

// Do ejecuta una llamada JSON. in y out pueden ser nil.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	namespace := ports.NamespaceFrom(ctx)
	token, err := c.token(ctx, namespace)
	if err != nil {
		return err
	}
	if token != "" {
		c.forgetOldToken(namespace, token)
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("backend: serializar request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("backend: crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportError(ctx, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("backend: leer respuesta: %w", err)
	}
	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("llamada al backend")

	if resp.StatusCode == http.StatusUnauthorized && path != LoginPath {
		c.invalidate(ctx, namespace, token)
		return &APIError{Status: resp.StatusCode, Message: "su sesión expiró, inicie sesión nuevamente", Raw: string(raw), kind: domain.ErrSessionExpired}
	}
	if resp.StatusCode >= 400 {
		return normalizeError(resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("backend: deserializar %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) token(ctx context.Context, namespace string) (string, error) {
	if namespace == "" || c.storage == nil {
		return "", nil
	}
	tok, _, err := c.storage.Get(ctx, namespace, ports.KeyAuthToken)
	if err != nil {
		return "", fmt.Errorf("backend: leer token: %w", err)
	}
	return tok, nil
}

func (c *Client) transportError(ctx context.Context, method, path string, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("backend: %s %s cancelado: %w", method, path, ctx.Err())
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("backend: %s %s: %w", method, path, domain.ErrTimeout)
	}
	c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("backend inaccesible")
	return fmt.Errorf("backend: %s %s: %w", method, path, domain.ErrNetwork)
}

// invalidate borra las claves de sesión y dispara los callbacks una sola vez por token.
// Varias llamadas concurrentes con el mismo token vencido producen un único aviso.
func (c *Client) invalidate(ctx context.Context, namespace, token string) {
	if namespace == "" || token == "" {
		return
	}
	c.mu.Lock()
	if e, ok := c.invalidated[namespace]; ok && e.token == token {
		c.mu.Unlock()
		return
	}
	now := c.now()
	c.pruneLocked(now)
	c.invalidated[namespace] = invalidation{token: token, at: now}
	hooks := append([]UnauthorizedFunc(nil), c.onUnauthorized...)
	c.mu.Unlock()

	if c.storage != nil {
		if err := c.storage.Remove(ctx, namespace, ports.SessionKeys...); err != nil {
			c.log.Error().Err(err).Str("namespace", namespace).Msg("no se pudo limpiar la sesión tras 401")
		}
	}
	c.log.Info().Str("namespace", namespace).Msg("401 del backend, sesión cerrada")
	for _, fn := range hooks {
		fn(ctx, namespace)
	}
}

// forgetOldToken descarta la marca de 401 cuando el namespace ya tiene otro token (nuevo login).
func (c *Client) forgetOldToken(namespace, token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.invalidated[namespace]; ok && e.token != token {
		delete(c.invalidated, namespace)
	}
}

// pruneLocked descarta marcas más viejas que retention. Pasado ese lapso ya no quedan
// llamadas en vuelo con el token invalidado. Requiere c.mu.
func (c *Client) pruneLocked(now time.Time) {
	for ns, e := range c.invalidated {
		if now.Sub(e.at) > c.retention {
			delete(c.invalidated, ns)
		}
	}
}

// escape arma "/base/{id}" escapando el id.
func escape(base, id string, rest ...string) string {
	p := base + "/" + url.PathEscape(id)
	for _, r := range rest {
		p += "/" + r
	}
	return p
}
