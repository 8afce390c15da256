// Package store persists user settings (site credentials, API keys, provider
// selection) as flat key-value entries in a TOML file. It is the module's
// entire persistence layer.
package store

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Fixed key names for persisted settings.
const (
	KeyWPURL         = "wp_url"
	KeyWPUsername    = "wp_username"
	KeyWPPassword    = "wp_password"
	KeyGeminiKey     = "gemini_key"
	KeyOpenAIKey     = "openai_key"
	KeyOpenAIModel   = "openai_model"
	KeyAIProvider    = "ai_provider"
	KeyImageProvider = "image_provider"
)

// Store is a file-backed key-value settings store. Set persists immediately.
type Store struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
}

// Open creates or loads a settings store. If dir is empty it defaults to
// ~/.seo-dominator.
func Open(dir string) (*Store, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".seo-dominator")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	s := &Store{
		filePath: filepath.Join(dir, "settings.toml"),
		data:     make(map[string]any),
	}
	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return s, nil
}

// Get retrieves a raw value and whether the key exists.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

// GetString retrieves a string value, or "" when absent or not a string.
func (s *Store) GetString(key string) string {
	val, ok := s.Get(key)
	if !ok {
		return ""
	}
	str, _ := val.(string)
	return str
}

// Set stores a value and persists the file immediately.
func (s *Store) Set(key string, value any) error {
	s.mu.Lock()
	s.data[key] = value
	s.mu.Unlock()
	return s.Save()
}

// Delete removes a key and persists the file immediately. Deleting an absent
// key is a no-op.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	_, ok := s.data[key]
	delete(s.data, key)
	s.mu.Unlock()
	if !ok {
		return nil
	}
	return s.Save()
}

// Clear drops every entry and persists the empty file.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.data = make(map[string]any)
	s.mu.Unlock()
	return s.Save()
}

// Save writes the current data to disk.
func (s *Store) Save() error {
	s.mu.RLock()
	raw, err := toml.Marshal(s.data)
	s.mu.RUnlock()
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, raw, 0600)
}

// Load reads the settings file from disk, replacing in-memory data.
func (s *Store) Load() error {
	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}
	data := make(map[string]any)
	if err := toml.Unmarshal(raw, &data); err != nil {
		return err
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// Path returns the settings file path.
func (s *Store) Path() string {
	return s.filePath
}
