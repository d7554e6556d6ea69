package ports

import "context"

// Claves fijas del almacenamiento por cliente.
const (
	KeyAuthToken     = "auth-token"
	KeyUserData      = "user-data"
	KeyAuthExp       = "auth-exp"
	KeyPermissions   = "user-permissions"
	KeyReportFilters = "report-filters"
)

// SessionKeys son las claves que se borran juntas al cerrar sesión o detectar expiración.
// report-filters sobrevive al logout.
var SessionKeys = []string{KeyAuthToken, KeyUserData, KeyAuthExp, KeyPermissions}

// Storage es el almacenamiento clave/valor por cliente (lo que en el navegador era localStorage).
// namespace identifica al cliente; los valores son texto (JSON o escalares) sin versionado.
// Las implementaciones deben ser seguras para uso concurrente; la última escritura gana.
type Storage interface {
	Get(ctx context.Context, namespace, key string) (value string, ok bool, err error)
	Set(ctx context.Context, namespace, key, value string) error
	Remove(ctx context.Context, namespace string, keys ...string) error
}

type namespaceKey struct{}

// WithNamespace adjunta el namespace del cliente al contexto de la petición.
func WithNamespace(ctx context.Context, namespace string) context.Context {
	return context.WithValue(ctx, namespaceKey{}, namespace)
}

// NamespaceFrom devuelve el namespace adjunto al contexto, o "" si no hay.
func NamespaceFrom(ctx context.Context) string {
	ns, _ := ctx.Value(namespaceKey{}).(string)
	return ns
}
