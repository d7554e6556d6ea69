// Package events difunde avisos a los navegadores conectados por websocket
// (sesión vencida, datos de un módulo que cambiaron).
package events

import (
	"sync"
	"time"

	"github.com/jhoicas/invorya-admin/internal/application/ports"
	"github.com/jhoicas/invorya-admin/pkg/logger"
)

var _ ports.Notifier = (*Hub)(nil)

// Tipos de evento.
const (
	TypeSessionExpired = "session:expired"
	refreshSuffix      = ":refresh"
)

// RefreshType devuelve el tipo de evento "<modulo>:refresh".
func RefreshType(module string) string {
	return module + refreshSuffix
}

// Event aviso difundido. Namespace vacío significa "para todos".
type Event struct {
	Type      string    `json:"type"`
	Namespace string    `json:"-"`
	Redirect  string    `json:"redirect,omitempty"`
	At        time.Time `json:"at"`
}

// For indica si el evento corresponde al cliente con ese namespace.
func (e Event) For(namespace string) bool {
	return e.Namespace == "" || e.Namespace == namespace
}

const subscriberBuffer = 16

// Hub difusor en memoria. Un suscriptor lento pierde eventos en lugar de frenar al resto.
type Hub struct {
	mu     sync.RWMutex
	subs   map[int]chan Event
	nextID int
	log    *logger.Logger
}

// NewHub construye el difusor.
func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{subs: make(map[int]chan Event), log: log.Named("events")}
}

// Subscribe registra un suscriptor; cancel cierra el canal y es idempotente.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Publish difunde el evento sin bloquear.
func (h *Hub) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, ch := range h.subs {
		select {
		case ch <- e:
		default:
			h.log.Warn().Int("subscriber", id).Str("type", e.Type).Msg("suscriptor lento, evento descartado")
		}
	}
}

// Subscribers cantidad de suscriptores activos.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Refresh publica "<modulo>:refresh" para todos los clientes.
func (h *Hub) Refresh(module string) {
	h.Publish(Event{Type: RefreshType(module)})
}
