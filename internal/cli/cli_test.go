package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	var out bytes.Buffer
	config, shouldExit, err := Parse([]string{"--config", "pipeline.hcl"}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, "pipeline.hcl", config.ConfigPath)
	assert.Equal(t, "", config.Input)
	assert.Equal(t, "output", config.Outdir)
	assert.Equal(t, "", config.Converter)
	assert.Equal(t, "text", config.LogFormat)
	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, 4, config.WorkerCount)
	assert.False(t, config.DryRun)
}

func TestParseAllFlags(t *testing.T) {
	var out bytes.Buffer
	config, shouldExit, err := Parse([]string{
		"--config", "pipeline.hcl",
		"--input", "seqs.fasta",
		"--outdir", "results",
		"--colormap", "colors.yaml",
		"--converter", "seqmagick",
		"--workers", "8",
		"--log-format", "JSON",
		"--log-level", "DEBUG",
		"--dry-run",
	}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, "seqs.fasta", config.Input)
	assert.Equal(t, "results", config.Outdir)
	assert.Equal(t, "colors.yaml", config.Colormap)
	assert.Equal(t, "seqmagick", config.Converter)
	assert.Equal(t, 8, config.WorkerCount)
	assert.Equal(t, "json", config.LogFormat)
	assert.Equal(t, "debug", config.LogLevel)
	assert.True(t, config.DryRun)
}

func TestParseNoConfigPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	config, shouldExit, err := Parse(nil, &out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, config)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParseHelpExitsCleanly(t *testing.T) {
	var out bytes.Buffer
	config, shouldExit, err := Parse([]string{"--help"}, &out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, config)
}

func TestParseInvalidLogFormat(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"--config", "p.hcl", "--log-format", "xml"}, &out)
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "invalid log-format")
}

func TestParseInvalidLogLevel(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"--config", "p.hcl", "--log-level", "verbose"}, &out)
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "invalid log-level")
}

func TestParseUnknownConverter(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"--config", "p.hcl", "--converter", "muscle"}, &out)
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Contains(t, exitErr.Message, "unknown converter")
}

func TestParseUnknownFlag(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"--config", "p.hcl", "--bogus"}, &out)
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}
