package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_ColorOnNoOutputPaths(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.Diagnostics.Color)
	assert.Empty(t, cfg.Output.RsOut)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.True(t, cfg.Diagnostics.Color)
}

func TestLoad_ReadsYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cxxbind.yaml")
	yaml := "output:\n  rs_out: bindings.rs\ndiagnostics:\n  verbose: true\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "bindings.rs", cfg.Output.RsOut)
	assert.True(t, cfg.Diagnostics.Verbose)
}

func TestApplyEnv_OverridesFailOnUnsupported(t *testing.T) {
	t.Setenv("CXXBIND_FAIL_ON_UNSUPPORTED", "true")
	t.Setenv("CXXBIND_VERBOSE", "")
	t.Setenv("CXXBIND_NO_COLOR", "1")

	cfg := applyEnv(Default())
	assert.True(t, cfg.Diagnostics.FailOnUnsupported)
	assert.False(t, cfg.Diagnostics.Color)
}
