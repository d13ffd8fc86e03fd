// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"os"

	"github.com/katalvlaran/lvla/internal/config"
	"github.com/katalvlaran/lvla/internal/logger"
)

// mergeConfig overlays explicitly set flags on the file config. isSet is
// cmd.IsSet in production.
func mergeConfig(isSet func(name string) bool, cfg config.Config) config.Config {
	if isSet("epsilon") {
		cfg.Epsilon = &epsilon
	}
	if isSet("tolerance") {
		cfg.Tolerance = &tolerance
	}
	if isSet("max-iter") {
		cfg.MaxIter = &maxIter
	}
	if isSet("qr-method") {
		cfg.QRMethod = qrMethod
	}
	if isSet("seed") {
		cfg.Seed = &seed
	}
	if isSet("log-level") || cfg.LogLevel == "" {
		cfg.LogLevel = logLevel
	}
	if debug {
		cfg.LogLevel = "debug"
	}
	if isSet("log-format") || cfg.LogFormat == "" {
		cfg.LogFormat = logFormat
	}
	return cfg
}

// loadConfig reads the config file named by --config and applies the flags.
func loadConfig(isSet func(name string) bool) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	cfg = mergeConfig(isSet, cfg)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config, w io.Writer) logger.Logger {
	if w == nil {
		w = os.Stderr
	}
	return logger.New(w, cfg.LogFormat, logger.ParseLevel(cfg.LogLevel))
}
