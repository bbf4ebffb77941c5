package cli

import (
	"errors"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds user defaults read from the config file. Every field is
// optional; zero values defer to the built-in defaults.
type Config struct {
	// Base is the reference power for edge-width encoding.
	Base float64 `toml:"base"`

	// Layout is the default layout algorithm name.
	Layout string `toml:"layout"`

	// NodeSize is the default node marker size in points.
	NodeSize int `toml:"nodesize"`

	// NodeShape forces a uniform node marker shape.
	NodeShape string `toml:"nodeshape"`

	// Format is the default output format list (comma-separated).
	Format string `toml:"format"`

	// Converter overrides the gridlabd executable.
	Converter string `toml:"converter"`
}

// loadConfig reads the config file at $XDG_CONFIG_HOME/glmplot/config.toml.
// A missing file is not an error; the zero Config is returned.
func loadConfig() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, nil
	}
	return loadConfigFile(path)
}

func loadConfigFile(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
