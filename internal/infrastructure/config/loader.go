// Package config loads the terminal's YAML configuration, writing defaults on
// first run.
package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/retroshell/internal/domain"
	"github.com/doeshing/retroshell/internal/ports"
)

// FileLoader loads YAML configuration from ~/.retroshell/config.yaml
// (overridable via RETROSHELL_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := defaultConfig()
			if err := writeDefault(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return cfg, nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	return hydrateDefaults(cfg), nil
}

// Path resolves the active config file location.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("RETROSHELL_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(userHomeDir(), ".retroshell", "config.yaml")
}

func writeDefault(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

func defaultConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Preferences: domain.Preferences{
			DefaultModel:  "claude",
			Theme:         domain.DefaultTheme,
			HomeDirectory: domain.DefaultHomeDirectory,
			HistoryLimit:  domain.DefaultHistoryLimit,
		},
		Bridge: domain.BridgeSettings{
			Endpoint:       "",
			TimeoutSeconds: 30,
		},
		Models: []domain.ModelDefinition{
			{
				Name:       "claude",
				Endpoint:   "https://api.anthropic.com/v1/messages",
				AuthEnvVar: "ANTHROPIC_API_KEY",
				ModelID:    "claude-3-5-sonnet-20240620",
				MaxTokens:  1024,
			},
			{
				Name:      "ollama",
				Endpoint:  "http://localhost:11434/api/chat",
				ModelID:   "llama3",
				MaxTokens: 1024,
			},
		},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.Preferences.DefaultModel == "" && len(cfg.Models) > 0 {
		cfg.Preferences.DefaultModel = cfg.Models[0].Name
	}
	if cfg.Preferences.Theme == "" {
		cfg.Preferences.Theme = domain.DefaultTheme
	}
	if cfg.Preferences.HomeDirectory == "" {
		cfg.Preferences.HomeDirectory = domain.DefaultHomeDirectory
	}
	if cfg.Preferences.HistoryLimit <= 0 {
		cfg.Preferences.HistoryLimit = domain.DefaultHistoryLimit
	}
	if cfg.Bridge.TimeoutSeconds <= 0 {
		cfg.Bridge.TimeoutSeconds = 30
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
