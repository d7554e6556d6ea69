package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewriteDuplicateKey(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"sql server teléfono", "Cannot insert duplicate key row in object 'dbo.Proveedores' with unique index 'IX_Proveedores_Telefono'.", "El teléfono ya está registrado"},
		{"postgres nit", `duplicate key value violates unique constraint "suppliers_nit_key"`, "El NIT ya está registrado"},
		{"mysql correo", "Duplicate entry 'ana@example.com' for key 'usuarios.email'", "El correo ya está registrado"},
		{"código con tilde", "Violación de UNIQUE KEY: ya existe el Código", "El código ya existe"},
		{"sku", "unique index IX_Productos_Sku", "El código ya existe"},
		{"nombre", "duplicate key value violates unique constraint \"categorias_nombre_key\"", "El nombre ya existe"},
		{"sqlstate sin campo", "ERROR: 23505", "Ya existe un registro con esos datos"},
		{"unit no es nit", "duplicate key value violates unique constraint \"unit_price_idx\"", "Ya existe un registro con esos datos"},
	}
	for _, tc := range cases {
		got, ok := RewriteDuplicateKey(tc.in)
		assert.True(t, ok, tc.name)
		assert.Equal(t, tc.want, got, tc.name)
	}
}

func TestRewriteDuplicateKey_NoDuplicado(t *testing.T) {
	for _, in := range []string{"", "timeout", "El teléfono es obligatorio", "stock insuficiente"} {
		_, ok := RewriteDuplicateKey(in)
		assert.False(t, ok, "%q no es un duplicado", in)
	}
}

func TestExtractMessage(t *testing.T) {
	assert.Equal(t, "detalle", extractMessage([]byte(`{"title":"t","detail":"detalle"}`)))
	assert.Equal(t, "texto", extractMessage([]byte(`"texto"`)))
	assert.Equal(t, "plano", extractMessage([]byte("  plano ")))
	assert.Empty(t, extractMessage(nil))
}
