package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/jhoicas/invorya-admin/internal/application/ports"
)

var _ ports.Storage = (*Storage)(nil)

// Storage almacenamiento en un archivo YAML local (lo usa adminctl).
// Cada escritura reescribe el archivo completo vía archivo temporal + rename.
type Storage struct {
	mu   sync.Mutex
	path string
}

// NewStorage construye el almacenamiento sobre path; el archivo se crea en la primera escritura.
func NewStorage(path string) *Storage {
	return &Storage{path: path}
}

// DefaultPath devuelve $HOME/.invorya/storage.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("file storage: home: %w", err)
	}
	return filepath.Join(home, ".invorya", "storage.yaml"), nil
}

type document map[string]map[string]string

func (s *Storage) load() (document, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file storage: leer %s: %w", s.path, err)
	}
	doc := document{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("file storage: yaml inválido en %s: %w", s.path, err)
	}
	return doc, nil
}

func (s *Storage) save(doc document) error {
	raw, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("file storage: serializar: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("file storage: crear directorio: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("file storage: escribir: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// Get lee una clave.
func (s *Storage) Get(_ context.Context, namespace, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := doc[namespace][key]
	return v, ok, nil
}

// Set escribe una clave.
func (s *Storage) Set(_ context.Context, namespace, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return err
	}
	if doc[namespace] == nil {
		doc[namespace] = map[string]string{}
	}
	doc[namespace][key] = value
	return s.save(doc)
}

// Remove borra las claves indicadas.
func (s *Storage) Remove(_ context.Context, namespace string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return err
	}
	if doc[namespace] == nil {
		return nil
	}
	for _, k := range keys {
		delete(doc[namespace], k)
	}
	if len(doc[namespace]) == 0 {
		delete(doc, namespace)
	}
	return s.save(doc)
}
