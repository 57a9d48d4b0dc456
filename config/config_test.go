package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/testconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOverridesDefaults(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
fit_loop:
  max_iterations: 5
translation:
  source_lang: sv
  target_lang: zh-CN
  backend: mock
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.FitLoop.MaxIterations)
	assert.Equal(t, "sv", cfg.Translation.SourceLang)
}

func TestLoadMissingFile(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoggerBuildsWithDefaultLevel(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	logger, err := Default().Logger()
	require.NoError(t, err)
	require.NotNil(t, logger)
}
