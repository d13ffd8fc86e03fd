// SPDX-License-Identifier: MIT

package main

import (
	"github.com/urfave/cli/v3"

	"github.com/katalvlaran/lvla/internal/config"
)

var (
	configPath string
	logLevel   string
	logFormat  string
	debug      bool

	epsilon   float64
	tolerance float64
	maxIter   int
	qrMethod  string
	seed      uint64
)

func configFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config.yaml",
			Value:       config.DefaultPath(),
			Sources:     cli.EnvVars("LVLA_CONFIG"),
			Destination: &configPath,
		},
	}
}

func numericFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{
			Name:        "epsilon",
			Usage:       "tolerance of structural predicates",
			Destination: &epsilon,
		},
		&cli.Float64Flag{
			Name:        "tolerance",
			Aliases:     []string{"tol"},
			Usage:       "convergence threshold of iterative algorithms",
			Destination: &tolerance,
		},
		&cli.IntFlag{
			Name:        "max-iter",
			Usage:       "iteration budget of iterative algorithms",
			Destination: &maxIter,
		},
		&cli.StringFlag{
			Name:        "qr-method",
			Usage:       "QR algorithm (auto, householder, gram-schmidt)",
			Destination: &qrMethod,
		},
		&cli.Uint64Flag{
			Name:        "seed",
			Usage:       "seed of the random source",
			Destination: &seed,
		},
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "warn",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}
