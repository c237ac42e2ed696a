package adapters

import (
	"io/fs"

	"github.com/3-lines-studio/vuebuild/internal/templates"
)

// TemplateSource serves the embedded project scaffolds.
type TemplateSource struct{}

func NewTemplateSource() *TemplateSource {
	return &TemplateSource{}
}

func (t *TemplateSource) GetTemplate(name string) (fs.FS, error) {
	return templates.GetTemplate(name)
}
