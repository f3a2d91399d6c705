package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/minitools-mcp/internal/config"
	"github.com/ironsheep/minitools-mcp/internal/history"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)

	assert.Contains(t, out.String(), "minitools-mcp dev")
	assert.Contains(t, out.String(), "Git commit: unknown")
}

func TestOpenStore(t *testing.T) {
	s, err := openStore(config.HistoryConfig{Backend: config.BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &history.MemoryStore{}, s)

	s, err = openStore(config.HistoryConfig{Backend: config.BackendFile, Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &history.FileStore{}, s)

	_, err = openStore(config.HistoryConfig{Backend: config.BackendRedis, RedisURL: "not a url"})
	assert.Error(t, err)
}

func TestCompressDefaults(t *testing.T) {
	d := compressDefaults(config.CompressConfig{Quality: 0.7, Format: "jpeg", MaxWidth: 800})
	assert.Equal(t, 0.7, d.Quality)
	assert.Equal(t, "jpeg", d.Format)
	assert.Equal(t, 800, d.MaxWidth)
	assert.Zero(t, d.MaxHeight)
}

func TestSubcommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "version", "color", "convert", "compress", "analyze", "password"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}
