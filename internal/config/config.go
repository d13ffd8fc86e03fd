// SPDX-License-Identifier: MIT

// Package config loads the lvla configuration file
// (~/.config/lvla/config.yaml by default). Numeric fields are pointers so an
// absent key keeps the engine default instead of forcing zero.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvla/internal/logger"
	"github.com/katalvlaran/lvla/matrix"
)

// ErrInvalidConfig is returned when a loaded value is out of range.
var ErrInvalidConfig = errors.New("config: invalid value")

// Config mirrors the YAML file.
type Config struct {
	// Numeric policy
	Epsilon   *float64 `yaml:"epsilon"`
	Tolerance *float64 `yaml:"tolerance"`
	MaxIter   *int     `yaml:"max_iter"`
	QRMethod  string   `yaml:"qr_method"`
	Seed      *uint64  `yaml:"seed"`

	// Output
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Server
	ServerAddress string `yaml:"server_address"`
}

// DefaultPath returns the per-user config location, or "" when the user
// config directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "lvla", "config.yaml")
}

// Load reads and validates the file at path. A missing file yields a zero
// Config and no error.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML bytes.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every set field against the ranges the engine accepts.
func (c Config) Validate() error {
	if c.Epsilon != nil && !(*c.Epsilon >= 0 && !math.IsInf(*c.Epsilon, 0)) {
		return fmt.Errorf("%w: epsilon %v", ErrInvalidConfig, *c.Epsilon)
	}
	if c.Tolerance != nil && !(*c.Tolerance >= 0 && !math.IsInf(*c.Tolerance, 0)) {
		return fmt.Errorf("%w: tolerance %v", ErrInvalidConfig, *c.Tolerance)
	}
	if c.MaxIter != nil && *c.MaxIter <= 0 {
		return fmt.Errorf("%w: max_iter %d", ErrInvalidConfig, *c.MaxIter)
	}
	if _, err := matrix.ParseQRMethod(c.QRMethod); err != nil {
		return fmt.Errorf("%w: qr_method %q", ErrInvalidConfig, c.QRMethod)
	}
	switch c.LogFormat {
	case "", logger.FormatPretty, logger.FormatJSON, logger.FormatText:
	default:
		return fmt.Errorf("%w: log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

// Options translates the numeric policy into matrix options. Unset fields
// contribute nothing, leaving the package defaults in place.
func (c Config) Options() []matrix.Option {
	var opts []matrix.Option
	if c.Epsilon != nil {
		opts = append(opts, matrix.WithEpsilon(*c.Epsilon))
	}
	if c.Tolerance != nil {
		opts = append(opts, matrix.WithTolerance(*c.Tolerance))
	}
	if c.MaxIter != nil {
		opts = append(opts, matrix.WithMaxIter(*c.MaxIter))
	}
	if c.QRMethod != "" {
		m, _ := matrix.ParseQRMethod(c.QRMethod)
		opts = append(opts, matrix.WithQRMethod(m))
	}
	if c.Seed != nil {
		opts = append(opts, matrix.WithRand(matrix.NewRand(*c.Seed)))
	}
	return opts
}
