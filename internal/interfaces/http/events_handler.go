package http

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invorya-admin/internal/application/dto"
	"github.com/jhoicas/invorya-admin/internal/infrastructure/events"
	"github.com/jhoicas/invorya-admin/pkg/logger"
)

const pingInterval = 30 * time.Second

// EventsHandler canal websocket por el que el navegador recibe "session:expired" y "<modulo>:refresh".
type EventsHandler struct {
	hub *events.Hub
	log *logger.Logger
}

// NewEventsHandler construye el handler.
func NewEventsHandler(hub *events.Hub, log *logger.Logger) *EventsHandler {
	return &EventsHandler{hub: hub, log: log.Named("ws")}
}

// Upgrade rechaza peticiones que no piden websocket.
func (h *EventsHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).JSON(dto.ErrorResponse{Code: "UPGRADE_REQUIRED", Message: "se requiere websocket"})
	}
	return c.Next()
}

// Stream godoc
// @Summary      Eventos del panel
// @Description  Websocket. Cada mensaje es {"type","redirect","at"}.
// @Tags         eventos
// @Router       /ws/events [get]
func (h *EventsHandler) Stream() fiber.Handler {
	return websocket.New(h.serve)
}

func (h *EventsHandler) serve(conn *websocket.Conn) {
	ns, _ := conn.Locals(LocalNamespace).(string)
	ch, cancel := h.hub.Subscribe()
	defer cancel()

	// El cliente no envía nada útil; leer sirve para detectar el cierre.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	h.log.Debug().Str("namespace", ns).Msg("cliente conectado")
	for {
		select {
		case <-closed:
			h.log.Debug().Str("namespace", ns).Msg("cliente desconectado")
			return
		case e, ok := <-ch:
			if !ok {
				return
			}
			if !e.For(ns) {
				continue
			}
			if err := conn.WriteJSON(e); err != nil {
				h.log.Debug().Err(err).Str("namespace", ns).Msg("write")
				return
			}
			if e.Type == events.TypeSessionExpired {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session expired"))
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
