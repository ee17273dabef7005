package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

const (
	// AppDirName is the per-user configuration directory under $HOME.
	AppDirName = ".gdpr-rag"

	configFile = "config.toml"
)

// DefaultDir returns ~/.gdpr-rag.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, AppDirName), nil
}

// ConfigStore keeps config.toml as the nested tree TOML decodes to.
// A dotted key addresses one leaf: "pipeline.chunker.overlap" is the
// overlap entry of the [pipeline.chunker] table.
type ConfigStore struct {
	mu   sync.RWMutex
	path string
	tree map[string]any
}

// NewConfigStore opens configDir/config.toml, creating the directory.
// An empty configDir means DefaultDir. A missing file is an empty store.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	s := &ConfigStore{
		path: filepath.Join(configDir, configFile),
		tree: map[string]any{},
	}

	data, err := os.ReadFile(s.path)
	switch {
	case os.IsNotExist(err):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if err := toml.Unmarshal(data, &s.tree); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return s, nil
}

// Get returns the leaf at key. Tables are not leaves.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	table, leaf := s.parent(key, false)
	if table == nil {
		return nil, false
	}
	val, ok := table[leaf]
	if _, isTable := val.(map[string]any); isTable {
		return nil, false
	}
	return val, ok
}

// Set stores value at key, creating tables on the way, and rewrites the
// file. A key that would replace a table, or pass through a value, fails.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, leaf := s.parent(key, true)
	if table == nil {
		return fmt.Errorf("config key %q conflicts with an existing value", key)
	}
	if _, isTable := table[leaf].(map[string]any); isTable {
		return fmt.Errorf("config key %q names a table", key)
	}
	table[leaf] = value
	return s.write()
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.path
}

// parent walks to the table holding key's last segment. With create set,
// missing tables are added. It returns nil when the walk hits a value.
func (s *ConfigStore) parent(key string, create bool) (map[string]any, string) {
	parts := strings.Split(key, ".")
	table := s.tree
	for _, part := range parts[:len(parts)-1] {
		child, ok := table[part]
		if !ok {
			if !create {
				return nil, ""
			}
			next := map[string]any{}
			table[part] = next
			table = next
			continue
		}
		next, isTable := child.(map[string]any)
		if !isTable {
			return nil, ""
		}
		table = next
	}
	return table, parts[len(parts)-1]
}

// write replaces the file atomically. Mode 0600 since API keys may be
// stored in it. Caller holds the lock.
func (s *ConfigStore) write() error {
	data, err := toml.Marshal(s.tree)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}
