// Package textutil normaliza texto en español para búsquedas y comparaciones.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold pasa a minúsculas y quita tildes ("Teléfono" → "telefono").
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// Contains indica si alguno de los campos contiene la consulta, sin distinguir tildes ni mayúsculas.
// Una consulta vacía coincide con todo.
func Contains(query string, fields ...string) bool {
	q := strings.TrimSpace(Fold(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(Fold(f), q) {
			return true
		}
	}
	return false
}
