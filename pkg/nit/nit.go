// Package nit normaliza el NIT colombiano y verifica su dígito de verificación
// (módulo 11, pesos de la DIAN aplicados de derecha a izquierda).
package nit

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFormat     = errors.New("nit: formato inválido")
	ErrCheckDigit = errors.New("nit: dígito de verificación inválido")
)

// pesos para cada posición contando desde el último dígito del número base.
var weights = [...]int{3, 7, 13, 17, 19, 23, 29, 37, 41, 43, 47, 53, 59, 67, 71}

// CheckDigit calcula el dígito de verificación de un número base (solo dígitos).
func CheckDigit(base string) (byte, error) {
	if base == "" || len(base) > len(weights) {
		return 0, fmt.Errorf("%w: %q", ErrFormat, base)
	}
	sum := 0
	for i := 0; i < len(base); i++ {
		c := base[len(base)-1-i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: %q", ErrFormat, base)
		}
		sum += int(c-'0') * weights[i]
	}
	r := sum % 11
	if r > 1 {
		r = 11 - r
	}
	return byte('0' + r), nil
}

// Normalize quita puntos y espacios. Si el valor trae "-DV" el dígito se verifica y
// se devuelve "base-DV"; sin guion se devuelve solo el número (cédulas y NIT sin DV).
func Normalize(raw string) (string, error) {
	clean := strings.NewReplacer(".", "", " ", "", ",", "").Replace(strings.TrimSpace(raw))
	base, dv, hasDV := strings.Cut(clean, "-")
	if !digitsOnly(base) || (hasDV && (len(dv) != 1 || !digitsOnly(dv))) {
		return "", fmt.Errorf("%w: %q", ErrFormat, raw)
	}
	if !hasDV {
		return base, nil
	}
	want, err := CheckDigit(base)
	if err != nil {
		return "", err
	}
	if dv[0] != want {
		return "", fmt.Errorf("%w: %s-%s, se esperaba %c", ErrCheckDigit, base, dv, want)
	}
	return base + "-" + dv, nil
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
