package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ytget/discord-media-downloader/internal/platform"
)

// Config file constants
const (
	FileName        = "downloader_config.json"
	AppDirName      = "discord-media-downloader"
	MediaDirName    = "discord_media"
	FallbackRootDir = "/tmp"
)

// Config is the persisted application configuration
type Config struct {
	DownloadPath string `json:"download_path"`
}

// Source tells where a loaded configuration came from
type Source int

const (
	SourceDefault Source = iota
	SourceFile
)

// String returns the string representation of Source
func (s Source) String() string {
	if s == SourceFile {
		return "file"
	}
	return "default"
}

// LoadResult is returned by Store.Load. Err holds the reason a default was
// substituted and is nil when the file was simply absent or loaded fine.
type LoadResult struct {
	Config Config
	Source Source
	Err    error
}

// Store reads and writes the configuration JSON file
type Store struct {
	path string
}

// NewStore creates a store backed by the file at path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the configuration file path
func (s *Store) Path() string {
	return s.path
}

// Load reads the configuration file. It never fails: a missing, unreadable
// or corrupt file yields the default configuration.
func (s *Store) Load() LoadResult {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return LoadResult{Config: DefaultConfig(), Source: SourceDefault}
		}
		return LoadResult{Config: DefaultConfig(), Source: SourceDefault, Err: fmt.Errorf("reading config: %w", err)}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return LoadResult{Config: DefaultConfig(), Source: SourceDefault, Err: fmt.Errorf("parsing config: %w", err)}
	}
	if strings.TrimSpace(cfg.DownloadPath) == "" {
		return LoadResult{Config: DefaultConfig(), Source: SourceDefault, Err: errors.New("config has empty download_path")}
	}

	return LoadResult{Config: cfg, Source: SourceFile}
}

// Save overwrites the configuration file
func (s *Store) Save(cfg Config) error {
	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(s.path, append(data, '\n'), platform.DefaultFilePermissions); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// DefaultConfig returns the configuration used when no valid file exists
func DefaultConfig() Config {
	return Config{DownloadPath: DefaultDownloadPath()}
}

// DefaultDownloadPath returns ~/Downloads/discord_media
func DefaultDownloadPath() string {
	downloadsDir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		downloadsDir = filepath.Join(FallbackRootDir, "Downloads")
	}
	return filepath.Join(downloadsDir, MediaDirName)
}

// DefaultConfigPath returns the configuration file location inside the user config directory
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(dir, AppDirName, FileName)
}
