package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MedGm/Ollie/internal/ollama"
)

const fileName = "settings.json"

// DefaultParams are the generation parameters applied when a chat does not
// override them.
type DefaultParams struct {
	Temperature *float64 `json:"temperature,omitempty"`
	TopK        *int     `json:"top_k,omitempty"`
	TopP        *float64 `json:"top_p,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
}

// Settings is the persisted application configuration.
type Settings struct {
	ServerURL     string         `json:"server_url"`
	DefaultModel  string         `json:"default_model,omitempty"`
	DefaultParams *DefaultParams `json:"default_params,omitempty"`
	Theme         string         `json:"theme,omitempty"`
}

// Default returns the settings used when no file exists.
func Default() Settings {
	return Settings{
		ServerURL: ollama.DefaultBaseURL,
		Theme:     "light",
	}
}

// Store loads and saves the settings file in one directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. An empty dir selects
// <user config dir>/ollie.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		dir = filepath.Join(base, "ollie")
	}
	return &Store{dir: dir}, nil
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return filepath.Join(s.dir, fileName)
}

// Load reads the settings file. A missing file yields Default().
func (s *Store) Load() (Settings, error) {
	data, err := os.ReadFile(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	var st Settings
	if err := json.Unmarshal(data, &st); err != nil {
		return Settings{}, fmt.Errorf("invalid settings JSON: %w", err)
	}
	return st, nil
}

// Save writes the settings file, creating the directory if needed.
func (s *Store) Save(st Settings) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize settings: %w", err)
	}
	if err := os.WriteFile(s.Path(), data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
