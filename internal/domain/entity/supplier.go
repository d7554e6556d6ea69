package entity

// Supplier proveedor de mercancía.
type Supplier struct {
	ID      string `json:"id"`
	Name    string `json:"nombre"`
	NIT     string `json:"nit"`
	Phone   string `json:"telefono,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"direccion,omitempty"`
	Contact string `json:"contacto,omitempty"`
	Active  bool   `json:"activo"`
}
