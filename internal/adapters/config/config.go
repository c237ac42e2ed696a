// Package config loads the optional vuebuild.toml / vuebuild.yaml project file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/3-lines-studio/vuebuild/internal/adapters/fs"
	"github.com/3-lines-studio/vuebuild/internal/core"
)

const (
	DefaultOutDir       = "dist"
	DefaultManifestName = "manifest.json"
)

// FileNames are probed in order by Find.
var FileNames = []string{"vuebuild.toml", "vuebuild.yaml", "vuebuild.yml"}

type Config struct {
	OutDir string `toml:"out_dir" yaml:"out_dir"`
	Jobs   int    `toml:"jobs" yaml:"jobs"`
	// Manifest is nil when the file does not mention it.
	Manifest *bool `toml:"manifest" yaml:"manifest"`
	// Settings is handed to core.ParseSettings untouched.
	Settings map[string]any `toml:"settings" yaml:"settings"`

	// Path is the file the config came from; empty for defaults.
	Path string `toml:"-" yaml:"-"`
}

func Default() *Config {
	return &Config{OutDir: DefaultOutDir}
}

func (c *Config) ManifestEnabled() bool {
	return c.Manifest == nil || *c.Manifest
}

// BuildSettings validates the settings table.
func (c *Config) BuildSettings() (core.Settings, error) {
	return core.ParseSettings(c.Settings)
}

// Find returns the first config file present in dir.
func Find(fsys fs.FileSystem, dir string) (string, bool) {
	for _, name := range FileNames {
		candidate := filepath.Join(dir, name)
		if fsys.FileExists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// Load reads the config at path. The format follows the file extension.
func Load(fsys fs.FileSystem, path string) (*Config, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		meta, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, key := range undecoded {
				if len(key) > 0 && key[0] == "settings" {
					continue
				}
				keys = append(keys, key.String())
			}
			if len(keys) > 0 {
				return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
			}
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%s: unsupported config format %q", path, ext)
	}

	cfg.Path = path
	cfg.applyDefaults()
	if cfg.Jobs < 0 {
		return nil, fmt.Errorf("%s: jobs must not be negative", path)
	}
	return cfg, nil
}

// Resolve loads the config file in dir when one exists and falls back to
// defaults otherwise.
func Resolve(fsys fs.FileSystem, dir string) (*Config, error) {
	path, ok := Find(fsys, dir)
	if !ok {
		return Default(), nil
	}
	return Load(fsys, path)
}

func (c *Config) applyDefaults() {
	if c.OutDir == "" {
		c.OutDir = DefaultOutDir
	}
}
