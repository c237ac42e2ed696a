package usecase

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"path/filepath"

	"github.com/3-lines-studio/vuebuild/internal/templates"
)

type InitInput struct {
	ProjectDir string
	Template   string
}

type InitOutput struct {
	Success bool
	Created []string
	Error   error
}

// InitService scaffolds a component project: a config file and a starter
// component.
type InitService struct {
	fs        FileSystem
	cli       CLIOutput
	templates TemplateSource
}

func NewInitService(fs FileSystem, cli CLIOutput, templates TemplateSource) *InitService {
	return &InitService{
		fs:        fs,
		cli:       cli,
		templates: templates,
	}
}

func (s *InitService) InitProject(input InitInput) InitOutput {
	s.cli.PrintHeader("vuebuild init")

	if s.fs.FileExists(input.ProjectDir) {
		entries, err := s.fs.ReadDir(input.ProjectDir)
		if err != nil {
			return InitOutput{
				Success: false,
				Error:   fmt.Errorf("failed to read directory: %w", err),
			}
		}
		if len(entries) > 0 {
			return InitOutput{
				Success: false,
				Error:   fmt.Errorf("directory '%s' already exists and is not empty", input.ProjectDir),
			}
		}
	}

	templateFS, err := s.templates.GetTemplate(input.Template)
	if err != nil {
		if errors.Is(err, templates.ErrInvalidTemplate) {
			err = fmt.Errorf("invalid template '%s' (want one of %v)", input.Template, templates.ValidTemplates)
		}
		return InitOutput{Success: false, Error: err}
	}

	data := templates.TemplateData{Name: templates.DeriveProjectName(input.ProjectDir)}
	var created []string

	err = iofs.WalkDir(templateFS, ".", func(path string, d iofs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		content, err := iofs.ReadFile(templateFS, path)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", path, err)
		}

		targetPath, isTemplate := templates.ProcessFilename(path, data)
		targetPath = filepath.Join(input.ProjectDir, filepath.FromSlash(targetPath))

		if err := s.fs.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(targetPath), err)
		}
		if err := s.fs.WriteFile(targetPath, templates.ProcessContent(content, isTemplate, data), 0644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", targetPath, err)
		}

		if isTemplate {
			s.cli.PrintFile(targetPath + " (generated)")
		} else {
			s.cli.PrintFile(targetPath)
		}
		created = append(created, targetPath)
		return nil
	})
	if err != nil {
		return InitOutput{Success: false, Created: created, Error: err}
	}

	s.cli.PrintDone(fmt.Sprintf("Created %d files using '%s' template", len(created), input.Template))
	s.cli.PrintStep("", "Next: cd %s && vuebuild build src", input.ProjectDir)
	return InitOutput{Success: true, Created: created}
}
