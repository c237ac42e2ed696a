// Package vuebuild compiles single-file Vue components into a JavaScript
// module plus one stylesheet per style language.
package vuebuild

import (
	"context"
	"log/slog"

	"github.com/3-lines-studio/vuebuild/internal/adapters/compiler"
	"github.com/3-lines-studio/vuebuild/internal/adapters/memory"
	"github.com/3-lines-studio/vuebuild/internal/core"
	"github.com/3-lines-studio/vuebuild/internal/usecase"
)

type Settings = core.Settings

type BuildResult = core.BuildResult

type Artifact = core.Artifact

type ArtifactKind = core.ArtifactKind

type BuildError = core.BuildError

type ErrorKind = core.ErrorKind

type SettingsError = core.SettingsError

type Document = usecase.Document

type OutputSink = usecase.OutputSink

type OutputTarget = usecase.OutputTarget

type MemorySink = memory.Sink

const (
	ArtifactScript = core.ArtifactScript
	ArtifactStyle  = core.ArtifactStyle

	KindValidation = core.KindValidation
	KindStructural = core.KindStructural
	KindCompiler   = core.KindCompiler
	KindRewrite    = core.KindRewrite
)

var (
	ErrMissingScript          = core.ErrMissingScript
	ErrDuplicateSection       = core.ErrDuplicateSection
	ErrUnterminatedSection    = core.ErrUnterminatedSection
	ErrUnsupportedStyleLang   = core.ErrUnsupportedStyleLang
	ErrInvalidExtension       = core.ErrInvalidExtension
	ErrMissingSetting         = core.ErrMissingSetting
	ErrInvalidSetting         = core.ErrInvalidSetting
	ErrNoDefaultExport        = core.ErrNoDefaultExport
	ErrMultipleDefaultExports = core.ErrMultipleDefaultExports
	ErrUnknownExportShape     = core.ErrUnknownExportShape
	ErrTemplate               = core.ErrTemplate
	ErrStyle                  = core.ErrStyle
)

// ParseSettings validates raw build settings. Unknown keys are ignored and
// missing keys take their defaults.
func ParseSettings(raw map[string]any) (Settings, error) {
	return core.ParseSettings(raw)
}

func DefaultSettings() Settings {
	return core.DefaultSettings()
}

// KindOf reports the failure category of a Build error, or zero.
func KindOf(err error) ErrorKind {
	return core.KindOf(err)
}

// ScopeID returns the scope attribute a document at sourcePath gets.
func ScopeID(sourcePath string) string {
	return core.ScopeID(sourcePath)
}

type Option func(*Compiler)

func WithSettings(settings Settings) Option {
	return func(c *Compiler) {
		c.settings = settings
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// Compiler builds component documents. A Compiler holds no per-build state
// and is safe for concurrent use.
type Compiler struct {
	settings Settings
	logger   *slog.Logger
	service  *usecase.BuildService
}

func New(opts ...Option) *Compiler {
	c := &Compiler{
		settings: core.DefaultSettings(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.service = usecase.NewBuildService(
		compiler.SectionParser{},
		compiler.TemplateCompiler{},
		compiler.Transpiler{},
		compiler.StyleCompiler{},
		compiler.ExportRewriter{},
		c.logger,
	)
	return c
}

// Build compiles doc and, on success, writes every artifact to sink. On
// failure nothing is written and the error is a *BuildError unless the
// document itself could not be read.
func (c *Compiler) Build(ctx context.Context, doc Document, sink OutputSink) (*BuildResult, error) {
	return c.service.Build(ctx, usecase.BuildInput{
		Document: doc,
		Settings: c.settings,
		Sink:     sink,
	})
}

// CompileString compiles content as the document called name without
// writing anything.
func (c *Compiler) CompileString(ctx context.Context, name, content string) (*BuildResult, error) {
	return c.service.Compile(ctx, memory.NewDocument(name, content), c.settings)
}

// NewDocument wraps in-memory content. Its source path, and so its scope
// id, is name.
func NewDocument(name, content string) Document {
	return memory.NewDocument(name, content)
}

// NewDocumentAt is NewDocument with an explicit source path.
func NewDocumentAt(name, sourcePath, content string) Document {
	return memory.NewDocument(name, content).WithSourcePath(sourcePath)
}

func NewMemorySink() *MemorySink {
	return memory.NewSink()
}
