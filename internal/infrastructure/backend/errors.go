package backend

import (
	"encoding/json"
	"net/http"
	"regexp"
	"sort"
	"strings"

	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/pkg/textutil"
)

// APIError error devuelto por el backend ya normalizado.
// Message es apto para mostrarse al usuario; Raw conserva el cuerpo original.
type APIError struct {
	Status  int
	Message string
	Raw     string
	kind    error
}

func (e *APIError) Error() string { return e.Message }

// Unwrap permite errors.Is contra los errores de dominio.
func (e *APIError) Unwrap() error { return e.kind }

// problem cubre las formas de error habituales del backend (.NET ProblemDetails y {message}).
type problem struct {
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Title   string              `json:"title"`
	Detail  string              `json:"detail"`
	Errors  map[string][]string `json:"errors"`
}

func (p problem) text() string {
	for _, s := range []string{p.Detail, p.Message, p.Error} {
		if strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	if len(p.Errors) > 0 {
		fields := make([]string, 0, len(p.Errors))
		for f := range p.Errors {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		var msgs []string
		for _, f := range fields {
			msgs = append(msgs, p.Errors[f]...)
		}
		return strings.Join(msgs, "; ")
	}
	return strings.TrimSpace(p.Title)
}

func normalizeError(status int, raw []byte) error {
	msg := extractMessage(raw)
	if msg == "" {
		msg = http.StatusText(status)
	}

	if friendly, ok := RewriteDuplicateKey(string(raw)); ok {
		return &APIError{Status: status, Message: friendly, Raw: string(raw), kind: domain.ErrDuplicate}
	}

	kind := domain.ErrBackend
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		kind = domain.ErrInvalidInput
	case status == http.StatusUnauthorized:
		kind = domain.ErrUnauthorized
	case status == http.StatusForbidden:
		kind = domain.ErrForbidden
	case status == http.StatusNotFound:
		kind = domain.ErrNotFound
	case status == http.StatusConflict:
		kind = domain.ErrDuplicate
	}
	return &APIError{Status: status, Message: msg, Raw: string(raw), kind: kind}
}

func extractMessage(raw []byte) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return ""
	}
	var p problem
	if strings.HasPrefix(trimmed, "{") && json.Unmarshal(raw, &p) == nil {
		return p.text()
	}
	var s string
	if strings.HasPrefix(trimmed, `"`) && json.Unmarshal(raw, &s) == nil {
		return s
	}
	return trimmed
}

// ── Reescritura de errores de clave duplicada ─────────────────────────────────

var duplicatePatterns = []string{
	"duplicate key",
	"duplicate entry",
	"unique constraint",
	"unique index",
	"unique key",
	"violates unique",
	"23505",
}

type fieldHint struct {
	re      *regexp.Regexp
	message string
}

// El orden importa: el primer campo reconocido gana.
var fieldHints = []fieldHint{
	{word(`telefono|phone|celular`), "El teléfono ya está registrado"},
	{word(`nit`), "El NIT ya está registrado"},
	{word(`email|correo`), "El correo ya está registrado"},
	{word(`codigo|code|sku`), "El código ya existe"},
	{word(`nombre|name`), "El nombre ya existe"},
}

const duplicateGeneric = "Ya existe un registro con esos datos"

// word reconoce el término como palabra completa; "_" y "." cuentan como separadores
// para que IX_Proveedores_Nit coincida y "unit" no.
func word(alt string) *regexp.Regexp {
	return regexp.MustCompile(`(^|[^a-z0-9])(` + alt + `)([^a-z0-9]|$)`)
}

// RewriteDuplicateKey detecta un error de clave duplicada de la base de datos y devuelve
// un mensaje corto adivinado por subcadenas. ok es false si el texto no es un duplicado,
// en cuyo caso el error original debe propagarse tal cual.
func RewriteDuplicateKey(text string) (string, bool) {
	folded := textutil.Fold(text)
	dup := false
	for _, p := range duplicatePatterns {
		if strings.Contains(folded, p) {
			dup = true
			break
		}
	}
	if !dup {
		return "", false
	}
	for _, h := range fieldHints {
		if h.re.MatchString(folded) {
			return h.message, true
		}
	}
	return duplicateGeneric, true
}
