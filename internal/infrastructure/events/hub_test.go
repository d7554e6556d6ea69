package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishLlegaATodos(t *testing.T) {
	h := NewHub(nil)
	a, cancelA := h.Subscribe()
	b, cancelB := h.Subscribe()
	defer cancelA()
	defer cancelB()

	h.Publish(Event{Type: RefreshType("productos")})

	for _, ch := range []<-chan Event{a, b} {
		select {
		case e := <-ch:
			assert.Equal(t, "productos:refresh", e.Type)
			assert.False(t, e.At.IsZero())
		case <-time.After(time.Second):
			t.Fatal("el evento no llegó")
		}
	}
}

func TestHub_SuscriptorLentoNoBloquea(t *testing.T) {
	h := NewHub(nil)
	_, cancel := h.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*3; i++ {
			h.Publish(Event{Type: TypeSessionExpired})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish se bloqueó con un suscriptor lleno")
	}
}

func TestHub_CancelIdempotente(t *testing.T) {
	h := NewHub(nil)
	ch, cancel := h.Subscribe()
	require.Equal(t, 1, h.Subscribers())

	cancel()
	cancel()
	assert.Equal(t, 0, h.Subscribers())
	_, open := <-ch
	assert.False(t, open)

	h.Publish(Event{Type: TypeSessionExpired})
}

func TestEvent_For(t *testing.T) {
	assert.True(t, Event{Type: "x"}.For("ns-1"))
	assert.True(t, Event{Type: "x", Namespace: "ns-1"}.For("ns-1"))
	assert.False(t, Event{Type: "x", Namespace: "ns-1"}.For("ns-2"))
}
