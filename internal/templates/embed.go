package templates

import (
	"embed"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
)

//go:embed all:minimal
var minimalFS embed.FS

//go:embed all:yaml
var yamlFS embed.FS

var ValidTemplates = []string{"minimal", "yaml"}

var ErrInvalidTemplate = errors.New("invalid template name")

// GetTemplate returns the scaffold named name, rooted at its top directory.
func GetTemplate(name string) (fs.FS, error) {
	switch name {
	case "minimal":
		return fs.Sub(minimalFS, "minimal")
	case "yaml":
		return fs.Sub(yamlFS, "yaml")
	default:
		return nil, ErrInvalidTemplate
	}
}

type TemplateData struct {
	Name string
}

func ProcessFilename(filename string, data TemplateData) (string, bool) {
	if before, ok := strings.CutSuffix(filename, ".tmpl"); ok {
		return before, true
	}
	return filename, false
}

func ProcessContent(content []byte, isTemplate bool, data TemplateData) []byte {
	if !isTemplate {
		return content
	}
	return []byte(strings.ReplaceAll(string(content), "{{.Name}}", data.Name))
}

func DeriveProjectName(projectDir string) string {
	base := filepath.Base(projectDir)
	if base == "." || base == "/" || base == "" {
		return "components"
	}
	return base
}
