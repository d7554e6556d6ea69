package entity

// Category agrupa productos del catálogo.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion,omitempty"`
}
