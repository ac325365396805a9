package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	doctreeerrors "git.home.luguber.info/inful/doctree/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doctree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.True(t, doctreeerrors.IsCategory(err, doctreeerrors.CategoryConfig))
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeConfig(t, "content:\n  root: ./docs\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "./docs", cfg.Content.Root)
	require.Equal(t, []string{".md", ".mdx"}, cfg.Content.Extensions)
	require.Equal(t, 1, cfg.Content.Concurrency)
	require.Equal(t, "./dist", cfg.Output.Directory)
	require.Equal(t, 500*time.Millisecond, cfg.Watch.DebounceDuration())
	require.Equal(t, ":8080", cfg.Daemon.Listen)
	require.Zero(t, cfg.Daemon.RebuildIntervalDuration())
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
content:
  root: ./content
  extensions: [".md"]
  include_drafts: true
  concurrency: 8
output:
  directory: ./public
  index_db: ./public/docs.sqlite
watch:
  debounce: 2s
daemon:
  listen: ":9090"
  rebuild_interval: 15m
  nats:
    enabled: true
    url: nats://localhost:4222
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.True(t, cfg.Content.IncludeDrafts)
	require.Equal(t, 8, cfg.Content.Concurrency)
	require.Equal(t, "./public/docs.sqlite", cfg.Output.IndexDB)
	require.Equal(t, 2*time.Second, cfg.Watch.DebounceDuration())
	require.Equal(t, 15*time.Minute, cfg.Daemon.RebuildIntervalDuration())
	// Subject defaulted when publishing is enabled.
	require.Equal(t, "doctree.builds", cfg.Daemon.NATS.Subject)
}

func TestLoad_InvalidExtension(t *testing.T) {
	path := writeConfig(t, "content:\n  extensions: [\"md\"]\n")

	_, err := Load(path)
	require.Error(t, err)
	require.True(t, doctreeerrors.IsCategory(err, doctreeerrors.CategoryConfig))
}

func TestLoad_InvalidDebounce(t *testing.T) {
	path := writeConfig(t, "watch:\n  debounce: sometimes\n")

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_NATSEnabledRequiresURL(t *testing.T) {
	path := writeConfig(t, "daemon:\n  nats:\n    enabled: true\n")

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DOCTREE_CONTENT_ROOT", "/elsewhere")
	t.Setenv("DOCTREE_INCLUDE_DRAFTS", "true")

	path := writeConfig(t, "content:\n  root: ./docs\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/elsewhere", cfg.Content.Root)
	require.True(t, cfg.Content.IncludeDrafts)
}

func TestSample_ParsesAndNormalizes(t *testing.T) {
	path := writeConfig(t, Sample())

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "./content", cfg.Content.Root)
	require.Equal(t, 30*time.Minute, cfg.Daemon.RebuildIntervalDuration())
}
