// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvla/internal/config"
	"github.com/katalvlaran/lvla/internal/engine"
	"github.com/katalvlaran/lvla/matrix"
)

func setOf(names ...string) func(string) bool {
	return func(name string) bool {
		for _, n := range names {
			if n == name {
				return true
			}
		}
		return false
	}
}

func TestMergeConfig(t *testing.T) {
	fileTol := 1e-6
	fileIter := 50
	file := config.Config{Tolerance: &fileTol, MaxIter: &fileIter, QRMethod: "householder", LogLevel: "error"}

	tolerance, maxIter, logLevel, logFormat, debug = 1e-3, 7, "warn", "json", false
	t.Cleanup(func() { tolerance, maxIter, logLevel, logFormat, debug = 0, 0, "", "", false })

	t.Run("file wins over defaults", func(t *testing.T) {
		cfg := mergeConfig(setOf(), file)
		require.Equal(t, 1e-6, *cfg.Tolerance)
		require.Equal(t, 50, *cfg.MaxIter)
		require.Equal(t, "householder", cfg.QRMethod)
		require.Equal(t, "error", cfg.LogLevel)
		require.Equal(t, "json", cfg.LogFormat)
	})

	t.Run("explicit flags win over file", func(t *testing.T) {
		cfg := mergeConfig(setOf("tolerance", "log-level"), file)
		require.Equal(t, 1e-3, *cfg.Tolerance)
		require.Equal(t, 50, *cfg.MaxIter)
		require.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("debug overrides level", func(t *testing.T) {
		debug = true
		defer func() { debug = false }()
		require.Equal(t, "debug", mergeConfig(setOf(), file).LogLevel)
	})
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_iter: 0\n"), 0o600))

	old := configPath
	configPath = path
	t.Cleanup(func() { configPath = old })

	_, err := loadConfig(setOf())
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	require.NoError(t, os.WriteFile(path, []byte("seed: 3\nserver_address: :9000\n"), 0o600))
	cfg, err := loadConfig(setOf())
	require.NoError(t, err)
	require.Equal(t, uint64(3), *cfg.Seed)
	require.Equal(t, ":9000", cfg.ServerAddress)
}

func TestBuildRequest(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "b.json")
	require.NoError(t, os.WriteFile(path, []byte(`[[5],[6]]`), 0o600))

	req, err := buildRequest("solve", []string{`[[1,2],[3,4]]`, "@" + path})
	require.NoError(t, err)
	require.Equal(t, "solve", req.Op)
	require.Len(t, req.Args, 2)
	require.Equal(t, [][]float64{{1, 2}, {3, 4}}, req.Args[0].ToArray())
	require.Equal(t, [][]float64{{5}, {6}}, req.Args[1].ToArray())

	req, err = buildRequest("det", []string{"7"})
	require.NoError(t, err)
	require.Equal(t, [][]float64{{7}}, req.Args[0].ToArray())

	_, err = buildRequest("det", []string{`[[1,2],[3]]`})
	require.ErrorIs(t, err, matrix.ErrInvalidLength)
	_, err = buildRequest("det", []string{"@" + filepath.Join(t.TempDir(), "missing.json")})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunEval(t *testing.T) {
	t.Parallel()

	req, err := buildRequest("transpose", []string{`[[1,2,3]]`})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, runEval(context.Background(), &out, engine.New(nil), req))
	require.JSONEq(t, `{"result":[[1],[2],[3]]}`, out.String())

	req, err = buildRequest("inv", []string{`[[1,2],[2,4]]`})
	require.NoError(t, err)
	require.ErrorIs(t, runEval(context.Background(), &out, engine.New(nil), req), matrix.ErrSingular)
}

func TestListOps(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, listOps(&out, engine.New(nil)))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.True(t, strings.HasPrefix(lines[0], "NAME"))
	require.Len(t, lines, len(engine.New(nil).Ops())+1)
	require.Contains(t, out.String(), "exponent")
}
