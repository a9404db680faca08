package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Domain is the preference domain the editor extension writes to
const Domain = "LineNumber"

// ConfigEnv overrides the preferences file location
const ConfigEnv = "LINEBLAME_CONFIG"

// FileStore reads preferences from a YAML file of top-level keys:
//
//	RecentDays: 14
//	RecentColor: "0.5 1.0 0.5 1"
//
// A missing file behaves like an empty one.
type FileStore struct {
	Path string

	values map[string]string
}

// NewFileStore creates a FileStore for path
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// DefaultFilePath returns $LINEBLAME_CONFIG, or preferences.yml under the
// user's config directory
func DefaultFilePath() (string, error) {
	if path := os.Getenv(ConfigEnv); path != "" {
		return path, nil
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to locate home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "lineblame", "preferences.yml"), nil
}

// Lookup implements Store
func (s *FileStore) Lookup(key string) (string, bool, error) {
	if s.values == nil {
		if err := s.load(); err != nil {
			return "", false, err
		}
	}
	value, ok := s.values[key]
	if !ok {
		return "", false, nil
	}
	value, ok = trimValue(value)
	return value, ok, nil
}

func (s *FileStore) load() error {
	s.values = make(map[string]string)

	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	for key, value := range raw {
		if value == nil {
			continue
		}
		s.values[key] = fmt.Sprint(value)
	}
	return nil
}

// DefaultsStore reads preferences with the macOS `defaults` tool
type DefaultsStore struct {
	Domain string
}

// NewDefaultsStore creates a DefaultsStore for the editor extension's domain
func NewDefaultsStore() *DefaultsStore {
	return &DefaultsStore{Domain: Domain}
}

// Lookup implements Store. `defaults read` exits non-zero for unset keys.
func (s *DefaultsStore) Lookup(key string) (string, bool, error) {
	cmd := exec.Command("defaults", "read", s.Domain, key)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", false, fmt.Errorf("defaults not found in PATH: %w", err)
		}
		return "", false, nil
	}

	value, ok := trimValue(stdout.String())
	return value, ok, nil
}
