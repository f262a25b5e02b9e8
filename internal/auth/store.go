// Package auth keeps the session's auth token.
package auth

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/starford/folio/internal/storage"
)

// TokenStore is a small key/value session store.
type TokenStore interface {
	// Get returns the value for key, or "" when nothing is stored.
	Get(key string) (string, error)
	Set(key, value string) error
	// Delete removes key; deleting a missing key is not an error.
	Delete(key string) error
}

// MemoryStore is a TokenStore that lives as long as the process.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// FileStore persists each key as a file in a session directory, so the
// token survives restarts of the CLI.
type FileStore struct {
	files storage.Provider
}

// NewFileStore returns a FileStore writing through files.
func NewFileStore(files storage.Provider) *FileStore {
	return &FileStore{files: files}
}

func (f *FileStore) Get(key string) (string, error) {
	data, err := f.files.Read(key)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("auth: read %s: %w", key, err)
	}
	return string(data), nil
}

func (f *FileStore) Set(key, value string) error {
	if err := f.files.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("auth: write %s: %w", key, err)
	}
	return nil
}

func (f *FileStore) Delete(key string) error {
	err := f.files.Delete(key)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("auth: delete %s: %w", key, err)
	}
	return nil
}
