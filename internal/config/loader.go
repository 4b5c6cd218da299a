package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	oerrors "github.com/cargocraft/cli/internal/errors"
)

// Environment variable prefix for cargo-craft configuration.
const envPrefix = "CARGO_CRAFT"

// envVars maps config keys to their environment variables.
var envVars = map[string]string{
	"version":        "CARGO_CRAFT_VERSION",
	"binName":        "CARGO_CRAFT_BIN_NAME",
	"edition":        "CARGO_CRAFT_EDITION",
	"toolchain":      "CARGO_CRAFT_TOOLCHAIN",
	"packageManager": "CARGO_CRAFT_PACKAGE_MANAGER",
	"formatter":      "CARGO_CRAFT_FORMATTER",
	"vcs":            "CARGO_CRAFT_VCS",
	"historyFile":    "CARGO_CRAFT_HISTORY_FILE",
	"receiptsFile":   "CARGO_CRAFT_RECEIPTS_FILE",
	"log.timestamps": "CARGO_CRAFT_LOG_TIMESTAMPS",
}

// EnvVar returns the environment variable bound to key, or "" if none.
func EnvVar(key string) string {
	return envVars[key]
}

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range envVars {
		_ = v.BindEnv(key, env)
	}

	return &Loader{v: v}
}

// Load loads configuration from the given file path.
// If configFile is empty, it uses the default config file path.
// Environment variables take precedence over file values.
func (l *Loader) Load(configFile string) (*Config, error) {
	return load(l.v, configFile)
}

// LoadWithDefaults loads configuration and applies defaults.
func (l *Loader) LoadWithDefaults(configFile string) (*Config, error) {
	cfg, err := l.Load(configFile)
	if err != nil {
		return nil, err
	}

	return cfg.WithDefaults(), nil
}

// LoadFile loads only the values present in the config file, ignoring the
// environment.
func LoadFile(configFile string) (*Config, error) {
	return load(viper.New(), configFile)
}

func load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return nil, fmt.Errorf("getting config file path: %w", err)
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	v.SetConfigFile(expandedPath)
	v.SetConfigType("yaml")

	// A missing config file is fine: defaults and env vars still apply.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) && !errors.Is(err, os.ErrNotExist) {
			return nil, oerrors.WithCause(oerrors.KindParse, err, "reading config file %s", expandedPath)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, oerrors.WithCause(oerrors.KindParse, err, "decoding config file %s", expandedPath)
	}

	return &cfg, nil
}

// ConfigFileExists checks if the config file exists.
func ConfigFileExists(configFile string) (bool, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return false, err
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// Resolve loads the configuration for one invocation. configFlag is the
// --config flag value, empty when unset.
func Resolve(configFlag string) (*CraftConfig, error) {
	pathResult, err := ResolveConfigPath(ResolveConfigPathOptions{FlagValue: configFlag})
	if err != nil {
		return nil, err
	}

	merged, err := NewLoader().LoadWithDefaults(pathResult.ConfigPath)
	if err != nil {
		return nil, err
	}
	file, err := LoadFile(pathResult.ConfigPath)
	if err != nil {
		return nil, err
	}

	LogResolvedValues([]ResolvedValue{{
		Key:      "config",
		Value:    pathResult.ConfigPath,
		Source:   pathResult.Source,
		Shadowed: pathResult.Shadowed,
	}})

	return &CraftConfig{
		Config:     merged,
		File:       file,
		Path:       pathResult.ConfigPath,
		PathSource: pathResult.Source,
	}, nil
}
