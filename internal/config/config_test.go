// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.LogFile)
	assert.False(t, cfg.Debug)
	assert.Empty(t, cfg.SourceURLs)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "debug: true\nlog_file: guardia.log\nsource_urls:\n  cuellar: https://cofsegovia.com/cuellar-2025.pdf\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "guardia.log", cfg.LogFile)
	assert.Equal(t, "https://cofsegovia.com/cuellar-2025.pdf", cfg.SourceURLs["cuellar"])
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
