package templates

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestProcessFilename(t *testing.T) {
	data := TemplateData{Name: "widgets"}

	tests := []struct {
		name         string
		filename     string
		wantFilename string
		wantIsTmpl   bool
	}{
		{
			name:         "tmpl file gets processed",
			filename:     "vuebuild.toml.tmpl",
			wantFilename: "vuebuild.toml",
			wantIsTmpl:   true,
		},
		{
			name:         "regular file unchanged",
			filename:     "src/App.vue",
			wantFilename: "src/App.vue",
			wantIsTmpl:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotFilename, gotIsTmpl := ProcessFilename(tt.filename, data)
			if gotFilename != tt.wantFilename {
				t.Errorf("ProcessFilename(%q) filename = %q, want %q", tt.filename, gotFilename, tt.wantFilename)
			}
			if gotIsTmpl != tt.wantIsTmpl {
				t.Errorf("ProcessFilename(%q) isTmpl = %v, want %v", tt.filename, gotIsTmpl, tt.wantIsTmpl)
			}
		})
	}
}

func TestProcessContent(t *testing.T) {
	data := TemplateData{Name: "widgets"}

	tests := []struct {
		name       string
		content    string
		isTemplate bool
		want       string
	}{
		{
			name:       "non-template content unchanged",
			content:    "<template><div/></template>",
			isTemplate: false,
			want:       "<template><div/></template>",
		},
		{
			name:       "template with Name placeholder",
			content:    "# config for {{.Name}}",
			isTemplate: true,
			want:       "# config for widgets",
		},
		{
			name:       "placeholder in non-template left alone",
			content:    "{{.Name}}",
			isTemplate: false,
			want:       "{{.Name}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProcessContent([]byte(tt.content), tt.isTemplate, data)
			if string(got) != tt.want {
				t.Errorf("ProcessContent(%q) = %q, want %q", tt.content, string(got), tt.want)
			}
		})
	}
}

func TestDeriveProjectName(t *testing.T) {
	tests := []struct {
		projectDir string
		want       string
	}{
		{projectDir: "/home/user/widgets", want: "widgets"},
		{projectDir: ".", want: "components"},
		{projectDir: "/", want: "components"},
		{projectDir: "", want: "components"},
	}

	for _, tt := range tests {
		if got := DeriveProjectName(tt.projectDir); got != tt.want {
			t.Errorf("DeriveProjectName(%q) = %q, want %q", tt.projectDir, got, tt.want)
		}
	}
}

func TestGetTemplate(t *testing.T) {
	tests := []struct {
		template   string
		configFile string
		wantErr    error
	}{
		{template: "minimal", configFile: "vuebuild.toml.tmpl"},
		{template: "yaml", configFile: "vuebuild.yaml.tmpl"},
		{template: "spa", wantErr: ErrInvalidTemplate},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			templateFS, err := GetTemplate(tt.template)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("GetTemplate(%q) error = %v, want %v", tt.template, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetTemplate(%q) error = %v", tt.template, err)
			}

			config, err := fs.ReadFile(templateFS, tt.configFile)
			if err != nil {
				t.Fatalf("read %s: %v", tt.configFile, err)
			}
			if !strings.Contains(string(config), "{{.Name}}") {
				t.Errorf("%s has no project name placeholder", tt.configFile)
			}
			if _, err := fs.ReadFile(templateFS, "src/App.vue"); err != nil {
				t.Errorf("read src/App.vue: %v", err)
			}
		})
	}
}
