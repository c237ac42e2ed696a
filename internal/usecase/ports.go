package usecase

import (
	"context"
	iofs "io/fs"

	"github.com/3-lines-studio/vuebuild/internal/adapters/cli"
	"github.com/3-lines-studio/vuebuild/internal/adapters/fs"
	"github.com/3-lines-studio/vuebuild/internal/core"
)

// Document is one component source handed to a build.
type Document interface {
	// Name is the target name used for artifact names and messages.
	Name() string
	// SourcePath identifies the document; the scope id is derived from it.
	SourcePath() string
	Content(ctx context.Context) (string, error)
}

// OutputSink creates the targets artifacts are written to.
type OutputSink interface {
	MakeOutputTarget(name string) (OutputTarget, error)
}

// OutputTarget receives the final text of one artifact, exactly once.
type OutputTarget interface {
	Write(content string) error
}

type SectionParser interface {
	Parse(content string, opts core.ParserOptions) (*core.Descriptor, error)
}

type TemplateOptions struct {
	PreserveWhitespace bool
}

type CompiledTemplate struct {
	Render          string
	StaticRenderFns []string
}

type TemplateCompiler interface {
	Compile(markup string, opts TemplateOptions) (CompiledTemplate, error)
}

// Transpiler turns a render body into a callable render function.
type Transpiler interface {
	Wrap(body string, functional bool) (string, error)
}

type StyleOptions struct {
	Source string
	Scoped bool
	ID     string
	Trim   bool
}

type StyleResult struct {
	Code   string
	Errors []error
}

type StyleCompiler interface {
	CompileStyle(opts StyleOptions) StyleResult
}

type ExportRewriter interface {
	AugmentExports(script string, aug core.Augmentation) (string, error)
}

type CLIOutput interface {
	cli.ReportOutput
	PrintHeader(msg string)
	PrintStep(emoji, msg string, args ...any)
	PrintSuccess(msg string, args ...any)
	PrintWarning(msg string, args ...any)
	PrintError(msg string, args ...any)
	PrintFile(path string)
	PrintDone(msg string)
}

// TemplateSource provides the project scaffolds used by init.
type TemplateSource interface {
	GetTemplate(name string) (iofs.FS, error)
}

type FileSystem = fs.FileSystem
