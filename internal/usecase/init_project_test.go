package usecase_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/3-lines-studio/vuebuild/internal/adapters"
	"github.com/3-lines-studio/vuebuild/internal/adapters/cli"
	"github.com/3-lines-studio/vuebuild/internal/adapters/disk"
	"github.com/3-lines-studio/vuebuild/internal/adapters/fs"
	"github.com/3-lines-studio/vuebuild/internal/core"
	"github.com/3-lines-studio/vuebuild/internal/usecase"
)

func newInitService() *usecase.InitService {
	var out bytes.Buffer
	return usecase.NewInitService(fs.NewOSFileSystem(), cli.NewOutputTo(&out, &out, false), adapters.NewTemplateSource())
}

func TestInitProject(t *testing.T) {
	for _, template := range []string{"minimal", "yaml"} {
		t.Run(template, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "widgets")

			out := newInitService().InitProject(usecase.InitInput{ProjectDir: dir, Template: template})
			if !out.Success {
				t.Fatalf("InitProject() error: %v", out.Error)
			}
			if len(out.Created) != 2 {
				t.Errorf("created = %v", out.Created)
			}

			matches, _ := filepath.Glob(filepath.Join(dir, "vuebuild.*"))
			if len(matches) != 1 {
				t.Fatalf("config files = %v", matches)
			}
			config, _ := os.ReadFile(matches[0])
			if !strings.Contains(string(config), "configuration for widgets") {
				t.Errorf("config not rendered:\n%s", config)
			}

			doc := disk.NewFileDocument(fs.NewOSFileSystem(), "App.vue", filepath.Join(dir, "src", "App.vue"))
			if _, err := newBuildService().Build(context.Background(), usecase.BuildInput{
				Document: doc,
				Settings: core.DefaultSettings(),
			}); err != nil {
				t.Errorf("scaffolded component does not build: %v", err)
			}
		})
	}
}

func TestInitProjectRefusesNonEmptyDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "keep.txt"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	out := newInitService().InitProject(usecase.InitInput{ProjectDir: dir, Template: "minimal"})
	if out.Success || out.Error == nil || !strings.Contains(out.Error.Error(), "not empty") {
		t.Fatalf("InitProject() = %+v", out)
	}
}

func TestInitProjectUnknownTemplate(t *testing.T) {
	out := newInitService().InitProject(usecase.InitInput{ProjectDir: filepath.Join(t.TempDir(), "x"), Template: "spa"})
	if out.Success || out.Error == nil || !strings.Contains(out.Error.Error(), "invalid template 'spa'") {
		t.Fatalf("InitProject() = %+v", out)
	}
}
