package config

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/ytget/discord-media-downloader/internal/logger"
	"github.com/ytget/discord-media-downloader/internal/platform"
)

// Settings manages application configuration
type Settings struct {
	store *Store

	mu  sync.RWMutex
	cfg Config
}

// NewSettings loads the configuration from store and makes sure the
// download directory exists
func NewSettings(store *Store) *Settings {
	res := store.Load()
	switch {
	case res.Err != nil:
		slog.Warn("Config unusable, using default", "path", store.Path(), "download_path", res.Config.DownloadPath, logger.Err(res.Err))
	case res.Source == SourceDefault:
		slog.Info("No config file, using default", "path", store.Path(), "download_path", res.Config.DownloadPath)
	default:
		slog.Info("Config loaded", "path", store.Path(), "download_path", res.Config.DownloadPath)
	}

	s := &Settings{store: store, cfg: res.Config}
	if err := platform.CreateDirectoryIfNotExists(res.Config.DownloadPath); err != nil {
		slog.Error("Failed to ensure download dir", "dir", res.Config.DownloadPath, logger.Err(err))
	}
	return s
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.DownloadPath
}

// SetDownloadDirectory creates dir, makes it the download directory and
// persists the change. A failed save is logged and does not undo the change.
func (s *Settings) SetDownloadDirectory(dir string) error {
	if dir == "" {
		return fmt.Errorf("download directory is empty")
	}
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		return fmt.Errorf("creating download dir: %w", err)
	}

	s.mu.Lock()
	s.cfg.DownloadPath = dir
	cfg := s.cfg
	s.mu.Unlock()

	if err := s.store.Save(cfg); err != nil {
		slog.Warn("Failed to save config", "path", s.store.Path(), logger.Err(err))
	}
	return nil
}

// Path returns the configuration file path
func (s *Settings) Path() string {
	return s.store.Path()
}
