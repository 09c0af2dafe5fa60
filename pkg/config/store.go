package config

import (
	"log/slog"
	"strings"

	"github.com/utkarsh5026/beargit/pkg/repository/scpath"
	"github.com/utkarsh5026/beargit/pkg/storage"
)

// Store handles reading and writing one JSON configuration file.
// Writes go through storage.FS and are atomic.
type Store struct {
	fs      storage.FS
	path    scpath.AbsolutePath
	level   ConfigLevel
	entries map[string]*ConfigEntry
	parser  *Parser
	logger  *slog.Logger
}

// NewStore creates a new configuration store for a specific file and level
func NewStore(fsys storage.FS, path scpath.AbsolutePath, level ConfigLevel, logger *slog.Logger) *Store {
	return &Store{
		fs:      fsys,
		path:    path,
		level:   level,
		entries: make(map[string]*ConfigEntry),
		parser:  &Parser{},
		logger:  logger,
	}
}

// Load reads and parses the configuration file. A missing file is an empty
// configuration. A file that is not valid JSON is logged and ignored so a
// broken user config cannot lock the user out of the repository.
func (s *Store) Load() error {
	content, err := s.fs.ReadFile(s.path)
	if err != nil {
		if storage.IsNotExist(err) {
			s.entries = make(map[string]*ConfigEntry)
			return nil
		}
		return NewConfigError("load", CodeIOErr, "", s.path.String(), s.level.String(), err)
	}

	validation := s.parser.Validate(string(content))
	if strings.TrimSpace(string(content)) != "" && !validation.Valid {
		s.logger.Warn("ignoring invalid configuration file",
			"path", s.path.String(), "errors", validation.Errors)
		s.entries = make(map[string]*ConfigEntry)
		return nil
	}

	entries, err := s.parser.Parse(string(content), NewFileSource(s.path), s.level)
	if err != nil {
		return err
	}

	s.entries = entries
	return nil
}

// Save writes the configuration to disk atomically
func (s *Store) Save() error {
	content, err := s.parser.Serialize(s.entries)
	if err != nil {
		return err
	}

	if err := s.fs.MkdirAll(s.path.Dir()); err != nil {
		return NewConfigError("save", CodeIOErr, "", s.path.String(), s.level.String(), err)
	}

	if err := s.fs.WriteFile(s.path, []byte(content)); err != nil {
		return NewConfigError("save", CodeIOErr, "", s.path.String(), s.level.String(), err)
	}

	return nil
}

// Get returns a copy of the entry for key, or nil.
func (s *Store) Get(key string) *ConfigEntry {
	entry, ok := s.entries[key]
	if !ok {
		return nil
	}
	return entry.Clone()
}

// Keys returns every key held by the store.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	return keys
}

// Set replaces the value for a key
func (s *Store) Set(key, value string) {
	s.entries[key] = NewEntry(key, value, s.level, NewFileSource(s.path))
}

// Unset removes a key
func (s *Store) Unset(key string) {
	delete(s.entries, key)
}

// Path returns the file path for this store
func (s *Store) Path() scpath.AbsolutePath {
	return s.path
}

// Level returns the configuration level for this store
func (s *Store) Level() ConfigLevel {
	return s.level
}
