// Package compiler plugs the in-process compilers into the build ports.
package compiler

import (
	"github.com/3-lines-studio/vuebuild/internal/core"
	"github.com/3-lines-studio/vuebuild/internal/rewrite"
	"github.com/3-lines-studio/vuebuild/internal/sfc"
	"github.com/3-lines-studio/vuebuild/internal/style"
	"github.com/3-lines-studio/vuebuild/internal/template"
	"github.com/3-lines-studio/vuebuild/internal/transpile"
	"github.com/3-lines-studio/vuebuild/internal/usecase"
)

type SectionParser struct{}

func (SectionParser) Parse(content string, opts core.ParserOptions) (*core.Descriptor, error) {
	return sfc.Parse(content, opts)
}

type TemplateCompiler struct{}

func (TemplateCompiler) Compile(markup string, opts usecase.TemplateOptions) (usecase.CompiledTemplate, error) {
	res, err := template.Compile(markup, template.Options{PreserveWhitespace: opts.PreserveWhitespace})
	if err != nil {
		return usecase.CompiledTemplate{}, err
	}
	return usecase.CompiledTemplate{Render: res.Render, StaticRenderFns: res.StaticRenderFns}, nil
}

type Transpiler struct{}

func (Transpiler) Wrap(body string, functional bool) (string, error) {
	return transpile.Wrap(body, transpile.Options{Functional: functional})
}

type StyleCompiler struct{}

func (StyleCompiler) CompileStyle(opts usecase.StyleOptions) usecase.StyleResult {
	res := style.Compile(style.Options{
		Source: opts.Source,
		Scoped: opts.Scoped,
		ID:     opts.ID,
		Trim:   opts.Trim,
	})
	return usecase.StyleResult{Code: res.Code, Errors: res.Errors}
}

type ExportRewriter struct{}

func (ExportRewriter) AugmentExports(script string, aug core.Augmentation) (string, error) {
	return rewrite.AugmentExports(script, aug)
}

var (
	_ usecase.SectionParser    = SectionParser{}
	_ usecase.TemplateCompiler = TemplateCompiler{}
	_ usecase.Transpiler       = Transpiler{}
	_ usecase.StyleCompiler    = StyleCompiler{}
	_ usecase.ExportRewriter   = ExportRewriter{}
)
