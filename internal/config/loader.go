package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigDir is the directory name under ~/.config
	ConfigDir = "repoqa"
	// ConfigFile is the config file name
	ConfigFile = "config.json"
	// ProjectFile is the per-workspace override file, read from the workspace root
	ProjectFile = ".repoqa.yaml"
)

// FileSystem abstracts file operations for testability
type FileSystem interface {
	UserHomeDir() (string, error)
	ReadFile(path string) ([]byte, error)
}

// ConfigFileReader implements FileSystem using the real OS for config loading
type ConfigFileReader struct{}

func (ConfigFileReader) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

func (ConfigFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Loader handles configuration loading with injected dependencies
type Loader struct {
	fs FileSystem
}

// NewLoader creates a production Loader using the real filesystem
func NewLoader() *Loader {
	return &Loader{fs: ConfigFileReader{}}
}

// NewLoaderWithFS creates a Loader with a custom filesystem (for testing)
func NewLoaderWithFS(fs FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Load reads ~/.config/repoqa/config.json, then <workspaceRoot>/.repoqa.yaml, and
// merges both over the defaults. Later layers win.
// Missing files are not an error. Parse errors, permission issues and validation
// failures are.
//
// NOTE: Each layer is decoded directly over the current configuration, so explicit
// zero values in a file override the layer below while missing keys leave it untouched.
func (l *Loader) Load(workspaceRoot string) (*Config, error) {
	cfg := DefaultConfig()

	if homeDir, err := l.fs.UserHomeDir(); err == nil {
		userPath := filepath.Join(homeDir, ".config", ConfigDir, ConfigFile)
		data, err := l.readOptional(userPath)
		if err != nil {
			return nil, err
		}
		if data != nil {
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("invalid config %s: %w", userPath, err)
			}
		}
	}

	if workspaceRoot != "" {
		projectPath := filepath.Join(workspaceRoot, ProjectFile)
		data, err := l.readOptional(projectPath)
		if err != nil {
			return nil, err
		}
		if data != nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("invalid project config %s: %w", projectPath, err)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// readOptional returns nil data (and no error) when the file does not exist.
func (l *Loader) readOptional(path string) ([]byte, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// Load is a convenience function using the default loader
func Load(workspaceRoot string) (*Config, error) {
	return NewLoader().Load(workspaceRoot)
}
