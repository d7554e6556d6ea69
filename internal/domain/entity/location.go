package entity

// Tipos de ubicación.
const (
	LocationBodega = "bodega"
	LocationTienda = "tienda"
)

// Location es una bodega o tienda entre las que se mueve el inventario.
type Location struct {
	ID      string `json:"id"`
	Name    string `json:"nombre"`
	Type    string `json:"tipo"`
	Address string `json:"direccion,omitempty"`
	Active  bool   `json:"activo"`
}
