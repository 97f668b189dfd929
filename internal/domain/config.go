package domain

import "errors"

// Config mirrors ~/.retroshell/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Preferences         Preferences       `yaml:"preferences"`
	Models              []ModelDefinition `yaml:"models"`
	Bridge              BridgeSettings    `yaml:"bridge"`
}

// Preferences captures user level toggles.
type Preferences struct {
	DefaultModel  string `yaml:"default_model"`
	Theme         string `yaml:"theme"`
	HomeDirectory string `yaml:"home_directory"`
	HistoryLimit  int    `yaml:"history_limit"`
}

// BridgeSettings points at the emulator bridge that runs BASIC programs.
// An empty endpoint selects the offline runner.
type BridgeSettings struct {
	Endpoint       string `yaml:"endpoint"`
	TimeoutSeconds int    `yaml:"timeout"`
}

// ErrModelNotFound is returned when the configured default model is missing.
var ErrModelNotFound = errors.New("model not found in configuration")

// DefaultModel returns the model definition named by preferences.
func (c Config) DefaultModel() (ModelDefinition, error) {
	return c.Model(c.Preferences.DefaultModel)
}

// Model returns the model definition with the given name.
func (c Config) Model(name string) (ModelDefinition, error) {
	if name == "" {
		return ModelDefinition{}, ErrModelNotFound
	}
	for _, model := range c.Models {
		if model.Name == name {
			return model, nil
		}
	}
	return ModelDefinition{}, ErrModelNotFound
}
