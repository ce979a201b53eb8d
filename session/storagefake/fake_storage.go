package storagefake

import (
	"context"
	"sync"

	"github.com/tipspace/go-auth-client/session"
)

var _ session.Storage = (*FakeStorage)(nil)

// FakeStorage is an in-memory session.Storage that records write activity.
type FakeStorage struct {
	values map[string]string
	sets   int
	lock   sync.RWMutex
}

func NewFakeStorage() *FakeStorage {
	return &FakeStorage{
		values: make(map[string]string),
	}
}

func (fs *FakeStorage) Set(_ context.Context, key, value string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.values[key] = value
	fs.sets++
	return nil
}

func (fs *FakeStorage) Get(_ context.Context, key string) (string, error) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()

	value, ok := fs.values[key]
	if !ok {
		return "", session.ErrNotFound
	}
	return value, nil
}

func (fs *FakeStorage) Delete(_ context.Context, key string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	delete(fs.values, key)
	return nil
}

// Has reports whether a key currently holds a value.
func (fs *FakeStorage) Has(key string) bool {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	_, ok := fs.values[key]
	return ok
}

// SetCount returns the number of Set calls received.
func (fs *FakeStorage) SetCount() int {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	return fs.sets
}
