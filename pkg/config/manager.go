package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/utkarsh5026/beargit/pkg/common/logger"
	"github.com/utkarsh5026/beargit/pkg/repository/scpath"
	"github.com/utkarsh5026/beargit/pkg/storage"
	"golang.org/x/sync/errgroup"
)

// Keys understood by beargit.
const (
	KeyCommitMarker      = "commit.marker"
	KeyLogFormat         = "log.format"
	KeyLogLimit          = "log.limit"
	KeyRepoFormatVersion = "core.repositoryformatversion"
)

// SupportedRepositoryFormatVersion is the newest on-disk layout this build reads.
const SupportedRepositoryFormatVersion = 0

// DefaultCommitMarker must appear in every commit message unless configured otherwise.
const DefaultCommitMarker = "GO BEARS!"

// Log output formats.
const (
	LogFormatText  = "text"
	LogFormatTable = "table"
)

// UserConfigEnv overrides the location of the user-level file.
const UserConfigEnv = "BEARGIT_CONFIG"

// Manager resolves configuration across the levels
// command-line > repository > user > builtin.
// It is safe for concurrent use.
type Manager struct {
	mu              sync.RWMutex
	stores          map[ConfigLevel]*Store
	commandLine     map[string]string
	builtinDefaults map[string]string
	parser          *Parser
	validator       *Validator
	logger          *slog.Logger
}

// Option configures a Manager.
type Option func(*managerOptions)

type managerOptions struct {
	fs       storage.FS
	userPath scpath.AbsolutePath
}

// WithFS sets the storage used for config files.
func WithFS(fsys storage.FS) Option {
	return func(o *managerOptions) { o.fs = fsys }
}

// WithUserConfigPath points the user level at a specific file.
func WithUserConfigPath(path scpath.AbsolutePath) Option {
	return func(o *managerOptions) { o.userPath = path }
}

// NewManager creates a new configuration manager. An empty repositoryPath
// leaves out the repository level (outside any repository).
func NewManager(repositoryPath scpath.RepositoryPath, opts ...Option) *Manager {
	o := &managerOptions{fs: storage.NewOSFS()}
	for _, opt := range opts {
		opt(o)
	}
	if o.userPath == "" {
		o.userPath = defaultUserConfigPath()
	}

	m := &Manager{
		stores:          make(map[ConfigLevel]*Store),
		commandLine:     make(map[string]string),
		builtinDefaults: make(map[string]string),
		parser:          &Parser{},
		validator:       &Validator{},
		logger:          logger.ForComponent(pkgName),
	}

	m.stores[UserLevel] = NewStore(o.fs, o.userPath, UserLevel, m.logger)
	if repositoryPath != "" {
		m.stores[RepositoryLevel] = NewStore(o.fs, repositoryPath.SourcePath().ConfigPath(), RepositoryLevel, m.logger)
	}
	m.loadBuiltinDefaults()

	return m
}

// Load reads every configuration file concurrently.
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, _ := errgroup.WithContext(ctx)

	for _, store := range m.stores {
		s := store
		g.Go(func() error {
			return s.Load()
		})
	}

	return g.Wait()
}

// Get retrieves the effective entry for key, or nil if no level has it.
func (m *Manager) Get(key string) *ConfigEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getUnsafe(key)
}

// Set validates value and stores it at a file-backed level.
func (m *Manager) Set(key, value string, level ConfigLevel) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.validator.ValidateKeyValue(key, value); err != nil {
		return err
	}

	store, err := m.validateStore("set", key, level)
	if err != nil {
		return err
	}

	store.Set(key, value)
	m.logger.Debug("config set", "key", key, "level", level.String())
	return store.Save()
}

// Unset removes a key at a file-backed level.
func (m *Manager) Unset(key string, level ConfigLevel) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	store, err := m.validateStore("unset", key, level)
	if err != nil {
		return err
	}

	if store.Get(key) == nil {
		return NewNotFoundError(key, level.String())
	}

	store.Unset(key)
	return store.Save()
}

// SetCommandLine records a -c key=value override after validating it.
func (m *Manager) SetCommandLine(key, value string) error {
	if err := m.validator.ValidateKeyValue(key, value); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.commandLine[key] = value
	return nil
}

// List returns all effective entries sorted by key.
func (m *Manager) List() []*ConfigEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make(map[string]struct{})
	for key := range m.commandLine {
		keys[key] = struct{}{}
	}
	for _, store := range m.stores {
		for _, key := range store.Keys() {
			keys[key] = struct{}{}
		}
	}
	for key := range m.builtinDefaults {
		keys[key] = struct{}{}
	}

	entries := make([]*ConfigEntry, 0, len(keys))
	for key := range keys {
		if entry := m.getUnsafe(key); entry != nil {
			entries = append(entries, entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})
	return entries
}

// GetStore returns the store for a specific level, or nil.
func (m *Manager) GetStore(level ConfigLevel) *Store {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stores[level]
}

func (m *Manager) validateStore(operation string, key string, level ConfigLevel) (*Store, error) {
	if !level.CanWrite() {
		return nil, NewConfigError(operation, CodeReadOnlyErr, key, "", level.String(), ErrReadOnly)
	}

	store, exists := m.stores[level]
	if !exists {
		return nil, NewConfigError(operation, CodeNotFoundErr, key, "", level.String(), ErrReadOnly)
	}

	return store, nil
}

// getUnsafe resolves key without locking; caller holds at least a read lock.
func (m *Manager) getUnsafe(key string) *ConfigEntry {
	if value, exists := m.commandLine[key]; exists {
		return NewCommandLineEntry(key, value)
	}

	for _, level := range []ConfigLevel{RepositoryLevel, UserLevel} {
		store, exists := m.stores[level]
		if !exists {
			continue
		}
		if entry := store.Get(key); entry != nil {
			return entry
		}
	}

	if value, exists := m.builtinDefaults[key]; exists {
		return NewBuiltinEntry(key, value)
	}

	return nil
}

func (m *Manager) loadBuiltinDefaults() {
	m.builtinDefaults[KeyCommitMarker] = DefaultCommitMarker
	m.builtinDefaults[KeyLogFormat] = LogFormatText
	m.builtinDefaults[KeyLogLimit] = "0"
	m.builtinDefaults[KeyRepoFormatVersion] = "0"
}

func defaultUserConfigPath() scpath.AbsolutePath {
	if p := os.Getenv(UserConfigEnv); p != "" {
		if abs, err := filepath.Abs(p); err == nil {
			return scpath.AbsolutePath(abs)
		}
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return scpath.AbsolutePath(filepath.Join(dir, "beargit", "config.json"))
}
