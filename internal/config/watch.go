package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Store holds the current settings and reloads them when the file changes.
// It implements ports.SettingsSource.
type Store struct {
	mu       sync.RWMutex
	path     string
	settings *Settings
	logger   *zap.Logger
}

// NewStore loads settings from path
func NewStore(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, settings: s, logger: logger}, nil
}

// Current returns the latest successfully loaded settings
func (st *Store) Current() *Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.settings
}

// ConfigureScriptPath implements ports.SettingsSource
func (st *Store) ConfigureScriptPath() string {
	return st.Current().ConfigureScriptPath()
}

// CustomConfigureScriptPath implements ports.SettingsSource
func (st *Store) CustomConfigureScriptPath() string {
	return st.Current().CustomConfigureScriptPath()
}

// Reload re-reads the settings file. Invalid files keep the previous settings.
func (st *Store) Reload() error {
	s, err := Load(st.path)
	if err != nil {
		st.logger.Warn("keeping previous settings", zap.String("path", st.path), zap.Error(err))
		return err
	}
	st.mu.Lock()
	st.settings = s
	st.mu.Unlock()
	st.logger.Info("settings reloaded", zap.String("path", st.path))
	return nil
}

// Watch reloads the settings whenever the file is written, created or
// renamed, until ctx is done. The parent directory is watched so editors
// that replace the file atomically are picked up.
func (st *Store) Watch(ctx context.Context) error {
	if st.path == "" {
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(st.path)); err != nil {
		return err
	}

	const debounce = 100 * time.Millisecond
	var pending <-chan time.Time
	target := filepath.Clean(st.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			pending = time.After(debounce)
		case <-pending:
			pending = nil
			_ = st.Reload()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			st.logger.Warn("settings watcher error", zap.Error(err))
		}
	}
}
