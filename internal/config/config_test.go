package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pkgmeta/pkg/pkgmeta"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))
	return dir
}

func TestLoad_AllFields(t *testing.T) {
	dir := writeConfig(t, `generation: 0
indent: 2
defaults:
  license: CC-BY
  is_sponsored: true
  images: 3
  content:
    html:
      main: start.html
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 0, cfg.Generation)
	assert.Equal(t, 2, cfg.Indent)
	assert.Equal(t, "CC-BY", cfg.Defaults["license"])
	assert.Equal(t, true, cfg.Defaults["is_sponsored"])
	assert.Equal(t, 3, cfg.Defaults["images"])
	assert.Equal(t, map[string]any{"html": map[string]any{"main": "start.html"}}, cfg.Defaults["content"])
}

func TestLoad_MinimalYAML(t *testing.T) {
	dir := writeConfig(t, `defaults:
  archive: ephem
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, Default().Generation, cfg.Generation)
	assert.Equal(t, pkgmeta.DefaultIndent, cfg.Indent)
	assert.Equal(t, "ephem", cfg.Defaults["archive"])
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.NotNil(t, cfg.Defaults)
	assert.Empty(t, cfg.Defaults)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("PKGMETA_TEST_PUBLISHER", "Outernet")
	dir := writeConfig(t, `defaults:
  publisher: ${PKGMETA_TEST_PUBLISHER}
  keywords: "news, $PKGMETA_TEST_PUBLISHER"
  content:
    html:
      main: ${PKGMETA_TEST_PUBLISHER}.html
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "Outernet", cfg.Defaults["publisher"])
	assert.Equal(t, "news, Outernet", cfg.Defaults["keywords"])
	assert.Equal(t, "Outernet.html", cfg.Defaults["content"].(map[string]any)["html"].(map[string]any)["main"])
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{{invalid"))
	assert.ErrorIs(t, err, pkgmeta.ErrInvalidConfig)
	assert.Nil(t, cfg)
}

func TestLoad_OutOfRange(t *testing.T) {
	tests := map[string]string{
		"generation too new": "generation: 9\n",
		"negative indent":    "indent: -1\n",
		"huge indent":        "indent: 100\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, content))
			assert.ErrorIs(t, err, pkgmeta.ErrInvalidConfig)
			assert.Nil(t, cfg)
		})
	}
}
