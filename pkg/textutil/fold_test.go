package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "telefono", Fold("Teléfono"))
	assert.Equal(t, "codigo unico", Fold("CÓDIGO ÚNICO"))
	assert.Equal(t, "nino", Fold("niño"))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("", "lo que sea"))
	assert.True(t, Contains("cafe", "SKU-1", "Café de Colombia"))
	assert.True(t, Contains("  ARROZ ", "arroz diana"))
	assert.False(t, Contains("azúcar", "SKU-1", "Café"))
}
