// Package style compiles component style sheets, optionally scoping every
// selector to one component through its scope attribute.
package style

import (
	"strings"

	"github.com/3-lines-studio/vuebuild/internal/core"
)

type Options struct {
	Source string
	// Scoped appends the [ID] attribute selector to every rule.
	Scoped bool
	ID     string
	Trim   bool
}

type Result struct {
	Code   string
	Errors []error
}

// Compile parses opts.Source and prints it back, scoped when asked. Parse
// problems are reported in Result.Errors; Code is still filled in.
func Compile(opts Options) Result {
	sheet, errs := parseSheet(opts.Source)

	if opts.Scoped && opts.ID != "" {
		keyframes := map[string]string{}
		scope(sheet, opts.ID, strings.TrimPrefix(opts.ID, core.ScopeIDPrefix), keyframes)
		if len(keyframes) > 0 {
			renameAnimations(sheet, keyframes)
		}
	} else {
		unscoped(sheet)
	}

	var b strings.Builder
	sheet.print(&b, 0)
	code := b.String()
	if opts.Trim {
		code = strings.TrimSpace(code)
	} else if code != "" {
		code += "\n"
	}
	return Result{Code: code, Errors: errs}
}
