// Package emberconfig loads the optional `ember.toml` file that
// carries ambient settings for the driver and emitter — the ones the
// core itself has no opinion about (spec §1/§5: the core performs no
// I/O and knows nothing of files, output directories, or logging).
package emberconfig

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// Config is the full set of ambient settings a project's ember.toml
// may set. Every field has a zero-value-safe default via Default, so
// a missing file, or a file that sets nothing, behaves identically to
// running with no configuration at all.
type Config struct {
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`
}

// OutputConfig holds the `[output]` table. Load parses it, but neither
// the driver nor the CLI reads it: compiled files go to the `-o` path
// or driver.DefaultOutputPath, and the emitter writes its own default
// banner.
type OutputConfig struct {
	// Dir is the `[output] dir` value.
	Dir string `toml:"dir"`
	// Banner is the `[output] banner` value.
	Banner string `toml:"banner"`
}

// LogConfig controls the driver's structured logger.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error"; empty means "info".
	Level string `toml:"level"`
	// Format is "text" or "json"; empty means "text".
	Format string `toml:"format"`
}

// Default returns the configuration used when no ember.toml is present.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads and parses path, filling in Default's values for any
// field the file leaves unset. A missing file is not an error: it
// simply yields Default(), the same as an empty file would.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "emberconfig: reading %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "emberconfig: parsing %s", path)
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	return cfg, nil
}
