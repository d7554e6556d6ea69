package ports

// Notifier avisa a los clientes conectados que los datos de un módulo cambiaron.
type Notifier interface {
	Refresh(module string)
}

// NopNotifier no avisa a nadie.
type NopNotifier struct{}

func (NopNotifier) Refresh(string) {}
