// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroConfig(t *testing.T) {
	var c Config
	assert.Equal(t, "%g", c.Format())
	assert.True(t, c.UseUnits())
	assert.False(t, c.Debug("parse"))
	assert.Equal(t, os.Stdout, c.Output())
	assert.Equal(t, os.Stderr, c.ErrOutput())
	assert.Equal(t, Unit{Multiplier: 1}, c.Unit("rho"))
	assert.Empty(t, c.Extras())
}

func TestDebugSettings(t *testing.T) {
	var c Config
	c.SetDebug("tokens", true)
	assert.Equal(t, []string{"cpu=0", "parse=0", "tokens=1", "trace=0", "units=0"}, c.DebugSettings())
}

func TestReadDefaults(t *testing.T) {
	var c Config
	require.NoError(t, c.ReadDefaults(ExampleDefaults))
	assert.True(t, c.UseUnits())
	assert.Equal(t, Unit{Multiplier: 1, Suffix: "g/cm^3"}, c.Unit("rho"))
	assert.Equal(t, []Extra{{Name: "vel", Expression: "(vel_x^2 + vel_y^2 + vel_z^2)^0.5"}}, c.Extras())

	c.SetUseUnits(false)
	assert.Equal(t, Unit{Multiplier: 1}, c.Unit("rho"))
}

func TestReadDefaultsUseUnits(t *testing.T) {
	var c Config
	require.NoError(t, c.ReadDefaults("[data]\nuse-units = false\n\n[units \"P\"]\nmultiplier = 0.1\nsuffix = Pa\n"))
	assert.False(t, c.UseUnits())
	c.SetUseUnits(true)
	assert.Equal(t, Unit{Multiplier: 0.1, Suffix: "Pa"}, c.Unit("P"))
}

func TestReadDefaultsTwice(t *testing.T) {
	var c Config
	require.NoError(t, c.ReadDefaults(ExampleDefaults))
	require.NoError(t, c.ReadDefaults(ExampleDefaults))
	assert.Len(t, c.Extras(), 1)

	// A later file overrides an extra by name and adds new ones.
	require.NoError(t, c.ReadDefaults("[extra \"vel\"]\nexpression = |vel_x|\n\n[extra \"ek\"]\nexpression = rho*vel_x^2\n"))
	assert.Equal(t, []Extra{
		{Name: "ek", Expression: "rho*vel_x^2"},
		{Name: "vel", Expression: "|vel_x|"},
	}, c.Extras())
}

func TestReadDefaultsErrors(t *testing.T) {
	tests := []string{
		"[extra \"v\"]\nexpression =\n",
		"[data\n",
		"[data]\nuse-units = maybe\n",
	}
	for _, text := range tests {
		var c Config
		assert.Error(t, c.ReadDefaults(text), text)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	var c Config
	require.NoError(t, c.LoadDefaults(filepath.Join(dir, "missing")))
	assert.Empty(t, c.Extras())

	path := filepath.Join(dir, DefaultsFile)
	require.NoError(t, os.WriteFile(path, []byte("[extra \"speed\"]\nexpression = |vel_x|\n"), 0o644))
	require.NoError(t, c.LoadDefaults(path))
	assert.Equal(t, []Extra{{Name: "speed", Expression: "|vel_x|"}}, c.Extras())

	require.NoError(t, os.WriteFile(path, []byte("[data\n"), 0o644))
	err := c.LoadDefaults(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing defaults")
}

func TestDefaultsPath(t *testing.T) {
	t.Setenv(DefaultsEnv, "")
	assert.Equal(t, DefaultsFile, DefaultsPath())
	t.Setenv(DefaultsEnv, "/tmp/other.defaults")
	assert.Equal(t, "/tmp/other.defaults", DefaultsPath())
}

func TestInitLogger(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	var buf bytes.Buffer
	closer := InitLogger(&buf, LoggerConfig{Level: "warn"})
	assert.Nil(t, closer)
	slog.Info("hidden")
	slog.Warn("shown", "n", 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "WARN", rec["level"])

	path := filepath.Join(t.TempDir(), "splosh.log")
	closer = InitLogger(&buf, LoggerConfig{Filename: path})
	require.NotNil(t, closer)
	slog.Info("to file")
	require.NoError(t, closer.Close())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LogLevel("debug"))
	assert.Equal(t, slog.LevelInfo, LogLevel("bogus"))
	assert.Equal(t, slog.LevelError, LogLevel("error"))
}
