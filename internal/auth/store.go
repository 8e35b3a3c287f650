package auth

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/intradash/adminkit/internal/common/config"
	"go.uber.org/zap"
)

// TokenStore persists the bearer token between invocations. It is the
// only shared mutable state in the client: read before every
// authenticated call, written only by login and cleared only by logout.
type TokenStore interface {
	// Load returns the stored token, or "" when none is stored.
	Load() (string, error)
	// Save replaces the stored token.
	Save(token string) error
	// Clear removes the stored token. Clearing an empty store is not an
	// error.
	Clear() error
}

// NewTokenStore creates a token store based on configuration.
func NewTokenStore(logger *zap.Logger, cfg *config.TokenStorageConfig) (TokenStore, error) {
	logger.Debug("initializing token storage", zap.String("type", cfg.Type))
	switch cfg.Type {
	case "file", "":
		return NewFileStore(cfg.Path)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported token storage type: %s", cfg.Type)
	}
}

// FileStore keeps the token in a single file under the user's home
// directory by default.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a file-backed token store. An empty path selects
// ~/.adminkit/token.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".adminkit", "token")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}
	return &FileStore{path: path}, nil
}

// Load implements TokenStore.
func (s *FileStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Save implements TokenStore.
func (s *FileStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return os.WriteFile(s.path, []byte(token), 0600)
}

// Clear implements TokenStore.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemoryStore keeps the token in memory. Used in tests and one-shot
// invocations.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore creates an in-memory token store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load implements TokenStore.
func (s *MemoryStore) Load() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

// Save implements TokenStore.
func (s *MemoryStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear implements TokenStore.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
