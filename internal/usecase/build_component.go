package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/3-lines-studio/vuebuild/internal/core"
)

const defaultStyleLang = "css"

type BuildInput struct {
	Document Document
	Settings core.Settings
	Sink     OutputSink
}

// BuildService compiles one component document into its artifacts.
type BuildService struct {
	sections   SectionParser
	templates  TemplateCompiler
	transpiler Transpiler
	styles     StyleCompiler
	rewriter   ExportRewriter
	logger     *slog.Logger
}

func NewBuildService(
	sections SectionParser,
	templates TemplateCompiler,
	transpiler Transpiler,
	styles StyleCompiler,
	rewriter ExportRewriter,
	logger *slog.Logger,
) *BuildService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BuildService{
		sections:   sections,
		templates:  templates,
		transpiler: transpiler,
		styles:     styles,
		rewriter:   rewriter,
		logger:     logger,
	}
}

// Build runs the whole pipeline in memory and only hands artifacts to the
// sink once every step succeeded. Failures are *core.BuildError values.
func (s *BuildService) Build(ctx context.Context, input BuildInput) (*core.BuildResult, error) {
	result, err := s.Compile(ctx, input.Document, input.Settings)
	if err != nil {
		return nil, err
	}
	if input.Sink == nil {
		return result, nil
	}

	// Every target is created before the first write, so a sink that
	// refuses a name leaves nothing behind.
	targets := make([]OutputTarget, len(result.Artifacts))
	for i, artifact := range result.Artifacts {
		target, err := input.Sink.MakeOutputTarget(artifact.Name)
		if err != nil {
			return nil, fmt.Errorf("create output %s: %w", artifact.Name, err)
		}
		targets[i] = target
	}
	for i, artifact := range result.Artifacts {
		if err := targets[i].Write(artifact.Content); err != nil {
			return nil, fmt.Errorf("write output %s: %w", artifact.Name, err)
		}
	}
	return result, nil
}

// Compile produces the artifact list without writing anything.
func (s *BuildService) Compile(ctx context.Context, doc Document, settings core.Settings) (*core.BuildResult, error) {
	name := doc.Name()

	if settings.ValidateFileExtension && !core.HasComponentSuffix(name) {
		return nil, core.NewBuildError(core.KindValidation, name, core.InvalidExtensionError(name))
	}
	parserOpts, err := settings.ParserOptions()
	if err != nil {
		return nil, core.NewBuildError(core.KindValidation, name, err)
	}

	content, err := doc.Content(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	desc, err := s.sections.Parse(content, parserOpts)
	if err != nil {
		return nil, core.NewBuildError(core.KindStructural, name, err)
	}
	if desc.Script == nil || strings.TrimSpace(desc.Script.Content) == "" {
		return nil, core.NewBuildError(core.KindStructural, name, core.MissingScriptError(name))
	}

	scopeID := core.ScopeID(doc.SourcePath())
	s.logger.Debug("parsed component",
		"document", name,
		"scopeId", scopeID,
		"template", desc.Template != nil,
		"styles", len(desc.Styles),
		"customBlocks", len(desc.CustomBlocks))

	var renderInfo *core.RenderInfo
	if desc.Template != nil {
		renderInfo, err = s.lowerTemplate(desc.Template)
		if err != nil {
			return nil, core.NewBuildError(core.KindCompiler, name, err)
		}
	}

	styles, err := s.aggregateStyles(name, scopeID, desc.Styles)
	if err != nil {
		return nil, err
	}

	script := desc.Script.Content + "\n" + styleImports(styles)
	aug := core.Augmentation{Render: renderInfo, HasStyles: len(styles) > 0, ScopeID: scopeID}
	if !aug.Empty() {
		script, err = s.rewriter.AugmentExports(script, aug)
		if err != nil {
			return nil, core.NewBuildError(rewriteErrorKind(err), name, err)
		}
	}

	artifacts := make([]core.Artifact, 0, len(styles)+1)
	artifacts = append(artifacts, core.Artifact{
		Name:    core.ScriptArtifactName(name),
		Kind:    core.ArtifactScript,
		Ext:     "js",
		Content: fmt.Sprintf("// Compiled from %s\n", name) + script,
	})
	artifacts = append(artifacts, styles...)

	s.logger.Debug("compiled component", "document", name, "artifacts", len(artifacts))
	return &core.BuildResult{Document: name, ScopeID: scopeID, Artifacts: artifacts}, nil
}

// lowerTemplate compiles the template and wraps every body into a render
// function, using the functional calling convention when the template
// carries the functional attribute.
func (s *BuildService) lowerTemplate(section *core.Section) (*core.RenderInfo, error) {
	functional := section.HasAttr("functional")

	compiled, err := s.templates.Compile(section.Content, TemplateOptions{PreserveWhitespace: true})
	if err != nil {
		return nil, err
	}

	render, err := s.transpiler.Wrap(compiled.Render, functional)
	if err != nil {
		return nil, err
	}
	staticFns := make([]string, len(compiled.StaticRenderFns))
	for i, body := range compiled.StaticRenderFns {
		if staticFns[i], err = s.transpiler.Wrap(body, functional); err != nil {
			return nil, err
		}
	}

	return &core.RenderInfo{
		Render:          render,
		StaticRenderFns: "[" + strings.Join(staticFns, ",") + "]",
		IsFunctional:    functional,
	}, nil
}

// aggregateStyles compiles every style section and merges sections that
// share an extension into one artifact, in first-seen order.
func (s *BuildService) aggregateStyles(name, scopeID string, sections []*core.Section) ([]core.Artifact, error) {
	var order []string
	buckets := make(map[string]*strings.Builder)

	for _, section := range sections {
		lang := section.Lang
		if lang == "" {
			lang = defaultStyleLang
		}

		var ext, content string
		switch lang {
		case "css":
			res := s.styles.CompileStyle(StyleOptions{
				Source: section.Content,
				Scoped: section.Scoped,
				ID:     scopeID,
				Trim:   true,
			})
			if len(res.Errors) > 0 {
				return nil, core.NewBuildError(core.KindCompiler, name, res.Errors[0])
			}
			ext, content = "css", res.Code
		case "scss":
			ext, content = "scss", section.Content
		default:
			return nil, core.NewBuildError(core.KindStructural, name, core.UnsupportedStyleLangError(name, lang))
		}

		bucket, ok := buckets[ext]
		if !ok {
			bucket = &strings.Builder{}
			fmt.Fprintf(bucket, "/* Compiled from %s */\n", name)
			buckets[ext] = bucket
			order = append(order, ext)
		}
		bucket.WriteString(content)
		if !strings.HasSuffix(content, "\n") {
			bucket.WriteString("\n")
		}
	}

	artifacts := make([]core.Artifact, 0, len(order))
	for _, ext := range order {
		artifacts = append(artifacts, core.Artifact{
			Name:    core.StyleArtifactName(name, ext),
			Kind:    core.ArtifactStyle,
			Ext:     ext,
			Content: buckets[ext].String(),
		})
	}
	return artifacts, nil
}

func styleImports(styles []core.Artifact) string {
	var b strings.Builder
	for _, style := range styles {
		fmt.Fprintf(&b, "import '%s'\n", core.ImportPath(style.Name))
	}
	return b.String()
}

func rewriteErrorKind(err error) core.ErrorKind {
	switch {
	case errors.Is(err, core.ErrNoDefaultExport),
		errors.Is(err, core.ErrMultipleDefaultExports),
		errors.Is(err, core.ErrUnknownExportShape):
		return core.KindStructural
	}
	return core.KindRewrite
}
