package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/3-lines-studio/vuebuild/internal/adapters/fs"
	"github.com/3-lines-studio/vuebuild/internal/core"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		outDir   string
		jobs     int
		manifest bool
		validate bool
		pad      core.PadMode
	}{
		{
			name: "toml",
			file: "vuebuild.toml",
			content: `out_dir = "build"
jobs = 4
manifest = false

[settings]
validateFileExtension = false

[settings.vuejsCompilerSettings]
pad = "space"
`,
			outDir:   "build",
			jobs:     4,
			manifest: false,
			validate: false,
			pad:      core.PadSpace,
		},
		{
			name: "yaml",
			file: "vuebuild.yaml",
			content: `out_dir: public/js
settings:
  vuejsCompilerSettings:
    pad: false
`,
			outDir:   "public/js",
			manifest: true,
			validate: true,
			pad:      core.PadNone,
		},
		{
			name:     "empty yaml",
			file:     "vuebuild.yml",
			content:  "",
			outDir:   DefaultOutDir,
			manifest: true,
			validate: true,
			pad:      core.PadLine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.content)

			cfg, err := Load(fs.NewOSFileSystem(), path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if cfg.OutDir != tt.outDir || cfg.Jobs != tt.jobs || cfg.ManifestEnabled() != tt.manifest {
				t.Errorf("cfg = %+v", cfg)
			}

			settings, err := cfg.BuildSettings()
			if err != nil {
				t.Fatalf("BuildSettings() error: %v", err)
			}
			if settings.ValidateFileExtension != tt.validate {
				t.Errorf("ValidateFileExtension = %v, want %v", settings.ValidateFileExtension, tt.validate)
			}
			opts, err := settings.ParserOptions()
			if err != nil {
				t.Fatalf("ParserOptions() error: %v", err)
			}
			if opts.Pad != tt.pad {
				t.Errorf("Pad = %q, want %q", opts.Pad, tt.pad)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "unknown toml key", file: "vuebuild.toml", content: "outdir = \"x\"\n"},
		{name: "bad toml", file: "vuebuild.toml", content: "out_dir = \n"},
		{name: "unknown yaml key", file: "vuebuild.yaml", content: "output: x\n"},
		{name: "negative jobs", file: "vuebuild.yaml", content: "jobs: -1\n"},
		{name: "unsupported format", file: "vuebuild.json", content: "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.content)
			if _, err := Load(fs.NewOSFileSystem(), path); err == nil {
				t.Fatal("Load() succeeded")
			}
		})
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	fsys := fs.NewOSFileSystem()

	cfg, err := Resolve(fsys, dir)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if cfg.Path != "" || cfg.OutDir != DefaultOutDir {
		t.Errorf("defaults = %+v", cfg)
	}

	writeFile(t, dir, "vuebuild.yaml", "jobs: 2\n")
	writeFile(t, dir, "vuebuild.toml", "jobs = 3\n")
	cfg, err = Resolve(fsys, dir)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if cfg.Jobs != 3 {
		t.Errorf("Jobs = %d, want toml to win", cfg.Jobs)
	}
}
