package config_test

import (
	"bytes"
	"flag"
	"io"
	"path/filepath"
	"testing"

	"github.com/plus3/ecscam/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFlags(t *testing.T, args ...string) *config.Flags {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := config.BindFlags(fs)
	require.NoError(t, fs.Parse(args))
	return f
}

func TestFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	writeFile(t, path, "debug: true\ncontent_dir: from-file\nlog_level: warn\n")

	cfg, _, err := parseFlags(t, "-config", path, "-content", "from-flag").Resolve(io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.ContentDir)
	assert.True(t, cfg.Debug, "unset -debug keeps the file value")
	assert.Equal(t, "warn", cfg.LogLevel)

	cfg, _, err = parseFlags(t, "-config", path, "-debug=false").Resolve(io.Discard)
	require.NoError(t, err)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "from-file", cfg.ContentDir)
}

func TestFlagsLogger(t *testing.T) {
	var buf bytes.Buffer
	_, logger, err := parseFlags(t, "-log-level", "debug").Resolve(&buf)
	require.NoError(t, err)

	logger.Debug("starting dungeons")
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), `msg="starting dungeons"`)
}

func TestFlagsErrors(t *testing.T) {
	_, _, err := parseFlags(t, "-log-level", "loud").Resolve(io.Discard)
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, _, err = parseFlags(t, "-config", filepath.Join(t.TempDir(), "missing.yaml")).Resolve(io.Discard)
	assert.ErrorContains(t, err, "config: load")
}

func TestFlagsWatch(t *testing.T) {
	assert.True(t, parseFlags(t, "-watch").Watch)
	assert.False(t, parseFlags(t).Watch)
}
