// SPDX-License-Identifier: MIT
package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/provgraph/config"
	"github.com/katalvlaran/provgraph/graph"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, graph.DefaultErrorFloor, cfg.ErrorFloor)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	cfg, err := config.Load(strings.NewReader("error_floor: 1.0e-9\nlog_level: DEBUG\n"))
	require.NoError(t, err)
	assert.Equal(t, 1e-9, cfg.ErrorFloor)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat) // default kept

	cfg, err = config.Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"negative floor": "error_floor: -1\n",
		"infinite floor": "error_floor: .inf\n",
		"NaN floor":      "error_floor: .nan\n",
		"bad level":      "log_level: loud\n",
		"bad format":     "log_format: xml\n",
		"unknown key":    "floor: 1\n",
		"malformed":      "error_floor: [\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(strings.NewReader(doc))
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_format: console\n"), 0o600))

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "console", cfg.LogFormat)

	_, err = config.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestLogger(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "warn"
	logger, err := cfg.Logger()
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))

	cfg.LogLevel = "nope"
	_, err = cfg.Logger()
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
