// Package config loads and normalizes doctree.yaml plus environment
// overrides. Defaults are applied in one place so every command sees the
// same effective configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/doctree/internal/errors"
)

// DefaultConfigFile is the configuration file name commands look for.
const DefaultConfigFile = "doctree.yaml"

// Config is the root configuration.
type Config struct {
	Content ContentConfig `yaml:"content"`
	Output  OutputConfig  `yaml:"output"`
	Watch   WatchConfig   `yaml:"watch,omitempty"`
	Daemon  DaemonConfig  `yaml:"daemon,omitempty"`
}

// ContentConfig describes the content collection input.
type ContentConfig struct {
	// Root is the content directory that is scanned recursively.
	Root string `yaml:"root"`
	// Extensions lists content file extensions including the dot.
	// Defaults to [.md, .mdx].
	Extensions []string `yaml:"extensions,omitempty"`
	// IncludeDrafts keeps draft: true documents in routes and navigation.
	IncludeDrafts bool `yaml:"include_drafts,omitempty"`
	// Concurrency bounds parallel file reads. <=1 means sequential.
	Concurrency int `yaml:"concurrency,omitempty"`
}

// OutputConfig describes build artifacts.
type OutputConfig struct {
	// Directory receives navigation.json, routes.json and report.json.
	Directory string `yaml:"directory"`
	// IndexDB, when set, is the path of the sqlite document index written
	// after each successful build. Empty disables the index.
	IndexDB string `yaml:"index_db,omitempty"`
}

// WatchConfig tunes the fsnotify rebuild loop.
type WatchConfig struct {
	// Debounce coalesces change bursts before triggering a rebuild.
	// Duration string (default 500ms).
	Debounce string `yaml:"debounce,omitempty"`
}

// DebounceDuration returns the parsed debounce interval.
func (w WatchConfig) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(w.Debounce)
	if err != nil || d <= 0 {
		return 500 * time.Millisecond
	}
	return d
}

// DaemonConfig configures daemon mode.
type DaemonConfig struct {
	// Listen is the address of the HTTP endpoint serving /metrics and /healthz.
	Listen string `yaml:"listen,omitempty"`
	// RebuildInterval schedules periodic full rebuilds independent of file
	// events. Duration string; empty disables the schedule.
	RebuildInterval string `yaml:"rebuild_interval,omitempty"`
	// NATS configures optional build report publishing.
	NATS NATSConfig `yaml:"nats,omitempty"`
}

// RebuildIntervalDuration returns the parsed periodic rebuild interval, or
// zero when disabled or unparseable.
func (d DaemonConfig) RebuildIntervalDuration() time.Duration {
	if d.RebuildInterval == "" {
		return 0
	}
	iv, err := time.ParseDuration(d.RebuildInterval)
	if err != nil || iv <= 0 {
		return 0
	}
	return iv
}

// NATSConfig configures build report publishing.
type NATSConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	URL     string `yaml:"url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
}

// Load reads, parses and normalizes a configuration file. Environment files
// (.env, .env.local) are loaded first without overriding existing variables.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "read configuration file").
			WithContext("path", path)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "parse configuration file").
			WithContext("path", path)
	}

	cfg.applyEnvOverrides()
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize applies defaults and rejects invalid values.
func (c *Config) Normalize() error {
	if c.Content.Root == "" {
		c.Content.Root = "./content"
	}
	if len(c.Content.Extensions) == 0 {
		c.Content.Extensions = []string{".md", ".mdx"}
	}
	for _, ext := range c.Content.Extensions {
		if len(ext) < 2 || ext[0] != '.' {
			return errors.ConfigInvalid("content.extensions", fmt.Sprintf("%q must start with a dot", ext))
		}
	}
	if c.Content.Concurrency < 1 {
		c.Content.Concurrency = 1
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "./dist"
	}
	if c.Watch.Debounce == "" {
		c.Watch.Debounce = "500ms"
	}
	if _, err := time.ParseDuration(c.Watch.Debounce); err != nil {
		return errors.ConfigInvalid("watch.debounce", fmt.Sprintf("%q is not a duration", c.Watch.Debounce))
	}
	if c.Daemon.RebuildInterval != "" {
		if _, err := time.ParseDuration(c.Daemon.RebuildInterval); err != nil {
			return errors.ConfigInvalid("daemon.rebuild_interval", fmt.Sprintf("%q is not a duration", c.Daemon.RebuildInterval))
		}
	}
	if c.Daemon.Listen == "" {
		c.Daemon.Listen = ":8080"
	}
	if c.Daemon.NATS.Enabled {
		if c.Daemon.NATS.URL == "" {
			return errors.ConfigInvalid("daemon.nats.url", "required when nats publishing is enabled")
		}
		if c.Daemon.NATS.Subject == "" {
			c.Daemon.NATS.Subject = "doctree.builds"
		}
	}
	return nil
}

// applyEnvOverrides lets the environment override the most common knobs
// without editing the file (useful in CI).
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DOCTREE_CONTENT_ROOT"); v != "" {
		c.Content.Root = v
	}
	if v := os.Getenv("DOCTREE_OUTPUT_DIR"); v != "" {
		c.Output.Directory = v
	}
	if v := os.Getenv("DOCTREE_INCLUDE_DRAFTS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Content.IncludeDrafts = b
		}
	}
}

// loadEnvFiles loads the first .env file found. Existing process environment
// variables are never overwritten (godotenv.Load semantics).
func loadEnvFiles() {
	for _, name := range []string{".env", ".env.local"} {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		_ = godotenv.Load(name)
		return
	}
}

// Sample returns a starter configuration file for `doctree init`.
func Sample() string {
	return `# doctree configuration
content:
  root: ./content
  extensions: [".md", ".mdx"]
  include_drafts: false
  concurrency: 4

output:
  directory: ./dist
  # index_db: ./dist/docs.sqlite

watch:
  debounce: 500ms

daemon:
  listen: ":8080"
  rebuild_interval: 30m
  nats:
    enabled: false
    url: nats://localhost:4222
    subject: doctree.builds
`
}
