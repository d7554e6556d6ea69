package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jhoicas/invorya-admin/internal/application/ports"
)

var _ ports.Storage = (*Storage)(nil)

type bucket struct {
	values  map[string]string
	touched atomic.Int64 // UnixNano de la última lectura o escritura
}

// Storage almacenamiento en memoria del proceso. Un namespace sin lecturas ni escrituras
// durante ttl se descarta. ttl cero desactiva la expiración.
type Storage struct {
	mu      sync.RWMutex
	buckets map[string]*bucket
	ttl     time.Duration
	now     func() time.Time
}

// NewStorage construye el almacenamiento.
func NewStorage(ttl time.Duration) *Storage {
	return &Storage{buckets: make(map[string]*bucket), ttl: ttl, now: time.Now}
}

func (s *Storage) expired(b *bucket) bool {
	return s.ttl > 0 && s.now().Sub(time.Unix(0, b.touched.Load())) > s.ttl
}

// Get lee una clave y renueva el namespace.
func (s *Storage) Get(_ context.Context, namespace, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.buckets[namespace]
	if !ok || s.expired(b) {
		return "", false, nil
	}
	b.touched.Store(s.now().UnixNano())
	v, ok := b.values[key]
	return v, ok, nil
}

// Set escribe una clave y renueva el namespace.
func (s *Storage) Set(_ context.Context, namespace, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.buckets[namespace]
	if !ok || s.expired(b) {
		b = &bucket{values: make(map[string]string)}
		s.buckets[namespace] = b
	}
	b.values[key] = value
	b.touched.Store(s.now().UnixNano())
	return nil
}

// Remove borra las claves indicadas; las inexistentes se ignoran.
func (s *Storage) Remove(_ context.Context, namespace string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.buckets[namespace]
	if !ok {
		return nil
	}
	for _, k := range keys {
		delete(b.values, k)
	}
	if len(b.values) == 0 {
		delete(s.buckets, namespace)
	}
	return nil
}

// Sweep descarta los namespaces vencidos y devuelve cuántos eliminó.
func (s *Storage) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for ns, b := range s.buckets {
		if s.expired(b) {
			delete(s.buckets, ns)
			n++
		}
	}
	return n
}

// RunSweeper ejecuta Sweep periódicamente hasta que ctx se cancela.
func (s *Storage) RunSweeper(ctx context.Context, every time.Duration) {
	if s.ttl <= 0 || every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Sweep()
		}
	}
}
