// Package transpile turns `with(this){...}` render bodies into standalone
// render functions that reach instance state through an explicit _vm.
package transpile

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
)

const (
	instancePreamble   = "var _vm=this;var _h=_vm.$createElement;var _c=_vm._self._c||_h;"
	functionalPreamble = "var _c=_vm._c;"
	instanceRef        = "_vm."
)

type Options struct {
	// Functional selects the (_h, _vm) calling convention of functional
	// components.
	Functional bool
}

// allowedGlobals are free identifiers that keep referring to the global
// object instead of the component instance.
var allowedGlobals = map[string]bool{
	"Infinity": true, "undefined": true, "NaN": true, "isFinite": true, "isNaN": true,
	"parseFloat": true, "parseInt": true, "decodeURI": true, "decodeURIComponent": true,
	"encodeURI": true, "encodeURIComponent": true, "Math": true, "Number": true, "Date": true,
	"Array": true, "Object": true, "Boolean": true, "String": true, "RegExp": true, "Map": true,
	"Set": true, "JSON": true, "Intl": true, "BigInt": true, "require": true, "arguments": true,
}

// Wrap wraps body in a function named render. A leading with(this) block is
// removed and every free identifier it relied on is read from _vm instead.
func Wrap(body string, opts Options) (string, error) {
	inner, err := unwrapWith(body)
	if err != nil {
		return "", err
	}

	var src strings.Builder
	if opts.Functional {
		src.WriteString("function render (_h, _vm) {")
		src.WriteString(functionalPreamble)
	} else {
		src.WriteString("function render () {")
		src.WriteString(instancePreamble)
	}
	src.WriteString(inner)
	src.WriteString("}")

	ast, err := js.Parse(parse.NewInputString(src.String()), js.Options{})
	if err != nil {
		return "", fmt.Errorf("render function: %w", err)
	}

	prefixFreeIdentifiers(ast)
	return ast.JSString(), nil
}

// unwrapWith returns the statements inside a leading with(this){...} block,
// or body unchanged when it does not start with one.
func unwrapWith(body string) (string, error) {
	ast, err := js.Parse(parse.NewInputString(body), js.Options{Inline: true})
	if err != nil {
		return "", fmt.Errorf("render body: %w", err)
	}
	if len(ast.List) != 1 {
		return body, nil
	}
	with, ok := ast.List[0].(*js.WithStmt)
	if !ok || !isThis(with.Cond) {
		return body, nil
	}

	var out strings.Builder
	switch stmt := with.Body.(type) {
	case *js.BlockStmt:
		for _, item := range stmt.List {
			item.JS(&out)
			if _, isVar := item.(*js.VarDecl); isVar {
				out.WriteString(";")
			}
			out.WriteString("\n")
		}
	default:
		stmt.JS(&out)
	}
	return out.String(), nil
}

func isThis(expr js.IExpr) bool {
	lit, ok := expr.(*js.LiteralExpr)
	return ok && lit.TokenType == js.ThisToken
}

// prefixFreeIdentifiers renames every undeclared, non global variable of the
// program to _vm.<name>. Uses in nested scopes link to the module level
// variable, so renaming it there renames all of them.
func prefixFreeIdentifiers(ast *js.AST) {
	for _, v := range ast.BlockStmt.Scope.Undeclared {
		if v.Link != nil || v.Decl != js.NoDecl {
			continue
		}
		name := string(v.Data)
		if allowedGlobals[name] || strings.HasPrefix(name, instanceRef) {
			continue
		}
		v.Data = append([]byte(instanceRef), v.Data...)
	}
	js.Walk(linkResolver{}, ast)
}

// linkResolver copies resolved names onto linked uses. The printer decides
// on shorthand properties from a var's own name, so {msg} must see the
// renamed _vm.msg to print as msg: _vm.msg.
type linkResolver struct{}

func (r linkResolver) Enter(n js.INode) js.IVisitor {
	if v, ok := n.(*js.Var); ok && v != nil && v.Link != nil {
		if name := v.Name(); !bytes.Equal(name, v.Data) {
			v.Data = name
		}
	}
	return r
}

func (linkResolver) Exit(js.INode) {}
