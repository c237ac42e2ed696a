// Package rewrite attaches compiled render functions and the scope id to a
// component script's default export.
package rewrite

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"

	"github.com/3-lines-studio/vuebuild/internal/core"
)

// exportDefaultBinding names the local that holds a computed default export.
const exportDefaultBinding = "_exportDefault"

// exportShape is the syntactic form of `export default <decl>`. Each form
// has its own way of receiving the injected properties.
type exportShape interface {
	rewrite(stmt *js.ExportStmt, props []property) []js.IStmt
}

// objectExport is `export default { ... }`: properties are appended to the
// literal itself.
type objectExport struct {
	object *js.ObjectExpr
}

func (s objectExport) rewrite(stmt *js.ExportStmt, props []property) []js.IStmt {
	for _, p := range props {
		s.object.List = append(s.object.List, objectProperty(p))
	}
	return []js.IStmt{stmt}
}

// identifierExport is `export default name`: one assignment per property is
// placed before the untouched export statement.
type identifierExport struct {
	name *js.Var
}

func (s identifierExport) rewrite(stmt *js.ExportStmt, props []property) []js.IStmt {
	return append(assignments(s.name, props), stmt)
}

// declarationExport is `export default function Name() {}` or the class
// equivalent: the declaration stays a declaration so Name remains in scope,
// then it is treated like an identifier export.
type declarationExport struct {
	decl js.IStmt
	name *js.Var
}

func (s declarationExport) rewrite(_ *js.ExportStmt, props []property) []js.IStmt {
	stmts := []js.IStmt{s.decl}
	stmts = append(stmts, assignments(s.name, props)...)
	return append(stmts, &js.ExportStmt{Default: true, Decl: s.name})
}

// computedExport is any other expression. Its value is bound to a local,
// augmented through that local and exported again.
type computedExport struct {
	expr    js.IExpr
	binding *js.Var
}

func (s computedExport) rewrite(_ *js.ExportStmt, props []property) []js.IStmt {
	decl := &js.VarDecl{
		TokenType: js.VarToken,
		List:      []js.BindingElement{{Binding: s.binding, Default: s.expr}},
	}
	stmts := []js.IStmt{decl}
	stmts = append(stmts, assignments(s.binding, props)...)
	return append(stmts, &js.ExportStmt{Default: true, Decl: s.binding})
}

// AugmentExports rewrites the default export of script so the exported
// value carries the properties described by aug. The script must contain
// exactly one default export.
func AugmentExports(script string, aug core.Augmentation) (string, error) {
	if aug.Empty() {
		return script, nil
	}

	ast, err := js.Parse(parse.NewInputString(script), js.Options{})
	if err != nil {
		return "", err
	}

	index, err := findDefaultExport(ast)
	if err != nil {
		return "", err
	}
	stmt := ast.List[index].(*js.ExportStmt)

	shape, err := classify(stmt, ast)
	if err != nil {
		return "", err
	}
	props, err := injectedProperties(aug)
	if err != nil {
		return "", err
	}

	replacement := shape.rewrite(stmt, props)
	list := make([]js.IStmt, 0, len(ast.List)+len(replacement)-1)
	list = append(list, ast.List[:index]...)
	list = append(list, replacement...)
	list = append(list, ast.List[index+1:]...)
	ast.List = list

	return ast.JSString(), nil
}

// findDefaultExport returns the index of the only default export statement.
func findDefaultExport(ast *js.AST) (int, error) {
	index := -1
	for i, item := range ast.List {
		stmt, ok := item.(*js.ExportStmt)
		if !ok || !isDefaultExport(stmt) {
			continue
		}
		if index >= 0 {
			return -1, core.ErrMultipleDefaultExports
		}
		index = i
	}
	if index < 0 {
		return -1, core.ErrNoDefaultExport
	}
	return index, nil
}

func isDefaultExport(stmt *js.ExportStmt) bool {
	if stmt.Default {
		return true
	}
	for _, alias := range stmt.List {
		if string(alias.Binding) == "default" {
			return true
		}
	}
	return false
}

func classify(stmt *js.ExportStmt, ast *js.AST) (exportShape, error) {
	if !stmt.Default || stmt.Decl == nil {
		var src strings.Builder
		stmt.JS(&src)
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownExportShape, src.String())
	}

	switch decl := stmt.Decl.(type) {
	case *js.ObjectExpr:
		return objectExport{object: decl}, nil
	case *js.Var:
		return identifierExport{name: decl}, nil
	case *js.FuncDecl:
		if decl.Name != nil {
			return declarationExport{decl: decl, name: decl.Name}, nil
		}
	case *js.ClassDecl:
		if decl.Name != nil {
			return declarationExport{decl: decl, name: decl.Name}, nil
		}
	}
	return computedExport{expr: stmt.Decl, binding: freshBinding(ast)}, nil
}

// freshBinding returns a module level variable named _exportDefault, or
// _exportDefault2, 3, ... when the script already uses that name.
func freshBinding(ast *js.AST) *js.Var {
	used := map[string]bool{}
	scope := ast.BlockStmt.Scope
	for _, v := range scope.Declared {
		used[string(v.Data)] = true
	}
	for _, v := range scope.Undeclared {
		used[string(v.Data)] = true
	}

	name := exportDefaultBinding
	for i := 2; used[name]; i++ {
		name = exportDefaultBinding + strconv.Itoa(i)
	}
	return &js.Var{Data: []byte(name), Decl: js.VariableDecl}
}
