// Package template compiles component template markup into render function
// bodies written against the runtime's render helpers (_c, _v, _s, ...).
package template

import (
	"strings"

	"github.com/3-lines-studio/vuebuild/internal/core"
)

type Options struct {
	// PreserveWhitespace keeps whitespace-only text between elements as a
	// single space instead of dropping it.
	PreserveWhitespace bool
}

type Result struct {
	Render          string
	StaticRenderFns []string
}

// CompileError lists every problem found in a template.
type CompileError struct {
	Errors []string
}

func (e *CompileError) Error() string {
	return "Error compiling template:\n\n- " + strings.Join(e.Errors, "\n- ")
}

func (e *CompileError) Unwrap() error {
	return core.ErrTemplate
}

// Compile parses markup and generates `with(this){return ...}` bodies for
// the render function and each hoisted static subtree.
func Compile(markup string, opts Options) (*Result, error) {
	errs := &errorList{}

	root := parseTemplate(markup, opts, errs)
	validateTree(root, errs)
	if errs.len() > 0 {
		return nil, &CompileError{Errors: errs.msgs}
	}

	optimize(root)
	render, staticFns := generate(root, errs)
	if errs.len() > 0 {
		return nil, &CompileError{Errors: errs.msgs}
	}

	return &Result{Render: render, StaticRenderFns: staticFns}, nil
}
