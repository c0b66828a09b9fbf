package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Storage backends accepted in storage_backend.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config captures Folio's runtime settings.
type Config struct {
	APIBaseURL     string
	StorageBackend string
	StoragePath    string
	LogPath        string
	ItemsPerPage   int
	RequestTimeout time.Duration
}

const (
	defaultConfigPath     = "~/.config/folio/config.toml"
	defaultAPIBaseURL     = "https://jsonplaceholder.typicode.com"
	defaultStoragePath    = "~/.local/share/folio/storage.db"
	defaultLogPath        = "~/.local/share/folio/folio.log"
	defaultItemsPerPage   = 5
	defaultRequestTimeout = 10 * time.Second
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIBaseURL:     defaultAPIBaseURL,
		StorageBackend: BackendSQLite,
		StoragePath:    mustExpand(defaultStoragePath),
		LogPath:        mustExpand(defaultLogPath),
		ItemsPerPage:   defaultItemsPerPage,
		RequestTimeout: defaultRequestTimeout,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBaseURL            string `toml:"api_base_url"`
		StorageBackend        string `toml:"storage_backend"`
		StoragePath           string `toml:"storage_path"`
		LogPath               string `toml:"log_path"`
		ItemsPerPage          int    `toml:"items_per_page"`
		RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}

	switch backend := strings.ToLower(strings.TrimSpace(raw.StorageBackend)); backend {
	case "":
	case BackendSQLite, BackendMemory:
		cfg.StorageBackend = backend
	default:
		return Config{}, fmt.Errorf("parse config: unknown storage_backend %q", raw.StorageBackend)
	}

	if v := strings.TrimSpace(raw.StoragePath); v != "" {
		cfg.StoragePath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogPath); v != "" {
		cfg.LogPath = mustExpand(v)
	}
	if raw.ItemsPerPage > 0 {
		cfg.ItemsPerPage = raw.ItemsPerPage
	}
	if raw.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeoutSeconds) * time.Second
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
