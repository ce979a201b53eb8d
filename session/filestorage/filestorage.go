// Package filestorage persists session tokens to a JSON file on disk. It backs
// CLI and desktop clients, where the file plays the role a browser's local
// storage plays for web clients.
package filestorage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/tipspace/go-auth-client/session"
)

var _ session.Storage = (*Storage)(nil)

// Storage is a file-backed session.Storage. The whole key/value map is
// rewritten on every mutation; token payloads are small enough that this
// stays cheap.
type Storage struct {
	path string
	lock sync.Mutex
}

// New creates a file storage at path, creating parent directories as needed.
func New(path string) (*Storage, error) {
	if path == "" {
		return nil, errors.New("[filestorage.New] path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "[filestorage.New] create parent directory")
	}
	return &Storage{path: path}, nil
}

func (s *Storage) Set(_ context.Context, key, value string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	values, err := s.load()
	if err != nil {
		return errors.Wrap(err, "[Storage.Set] load")
	}
	values[key] = value
	return s.save(values)
}

func (s *Storage) Get(_ context.Context, key string) (string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	values, err := s.load()
	if err != nil {
		return "", errors.Wrap(err, "[Storage.Get] load")
	}
	value, ok := values[key]
	if !ok {
		return "", session.ErrNotFound
	}
	return value, nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	values, err := s.load()
	if err != nil {
		return errors.Wrap(err, "[Storage.Delete] load")
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.save(values)
}

func (s *Storage) load() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, err
	}

	values := make(map[string]string)
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func (s *Storage) save(values map[string]string) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return err
	}
	// Tokens are credentials: owner-only permissions.
	return os.WriteFile(s.path, raw, 0o600)
}
