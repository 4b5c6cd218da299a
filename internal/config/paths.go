package config

import (
	"os"
	"path/filepath"
)

// ConfigEnvVar overrides the config file location.
const ConfigEnvVar = "CARGO_CRAFT_CONFIG"

// Paths contains standard filesystem paths for cargo-craft.
type Paths struct {
	// ConfigFile is the path to the config file (~/.cargo-craft/config.yaml).
	ConfigFile string

	// HomeDir is the cargo-craft home directory (~/.cargo-craft).
	HomeDir string
}

// DefaultPaths returns the default paths for cargo-craft.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	craftHome := filepath.Join(homeDir, ".cargo-craft")

	return &Paths{
		ConfigFile: filepath.Join(craftHome, "config.yaml"),
		HomeDir:    craftHome,
	}, nil
}

// GetConfigFile returns the config file path.
// If CARGO_CRAFT_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv(ConfigEnvVar); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.ConfigFile, nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// ~username is not supported
	return path, nil
}
