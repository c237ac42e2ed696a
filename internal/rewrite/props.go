package rewrite

import (
	"fmt"
	"strconv"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"

	"github.com/3-lines-studio/vuebuild/internal/core"
)

// property is one field injected into the exported component options.
type property struct {
	name  string
	value js.IExpr
}

// injectedProperties lists the fields to attach, in the order they are
// written: render, staticRenderFns, functional, _compiled, _scopeId.
func injectedProperties(aug core.Augmentation) ([]property, error) {
	var props []property
	if aug.Render != nil {
		render, err := firstExpr(aug.Render.Render)
		if err != nil {
			return nil, fmt.Errorf("render function: %w", err)
		}
		staticFns, err := firstExpr(aug.Render.StaticRenderFns)
		if err != nil {
			return nil, fmt.Errorf("static render functions: %w", err)
		}
		props = append(props,
			property{"render", render},
			property{"staticRenderFns", staticFns},
			property{"functional", boolLiteral(aug.Render.IsFunctional)},
			property{"_compiled", boolLiteral(true)},
		)
	}
	if aug.HasStyles {
		props = append(props, property{"_scopeId", stringLiteral(aug.ScopeID)})
	}
	return props, nil
}

// firstExpr parses src and returns its first statement as an expression.
// A function declaration becomes a function expression with the same name,
// parameters and body.
func firstExpr(src string) (js.IExpr, error) {
	ast, err := js.Parse(parse.NewInputString(src), js.Options{})
	if err != nil {
		return nil, err
	}
	if len(ast.List) == 0 {
		return nil, fmt.Errorf("no expression in %q", src)
	}

	switch stmt := ast.List[0].(type) {
	case *js.FuncDecl:
		return stmt, nil
	case *js.ClassDecl:
		return stmt, nil
	case *js.ExprStmt:
		return stmt.Value, nil
	}
	return nil, fmt.Errorf("%q is not an expression", src)
}

func boolLiteral(v bool) *js.LiteralExpr {
	if v {
		return &js.LiteralExpr{TokenType: js.TrueToken, Data: []byte("true")}
	}
	return &js.LiteralExpr{TokenType: js.FalseToken, Data: []byte("false")}
}

func stringLiteral(s string) *js.LiteralExpr {
	return &js.LiteralExpr{TokenType: js.StringToken, Data: []byte(strconv.Quote(s))}
}

func identifier(name string) js.LiteralExpr {
	return js.LiteralExpr{TokenType: js.IdentifierToken, Data: []byte(name)}
}

func objectProperty(p property) js.Property {
	name := identifier(p.name)
	return js.Property{Name: &js.PropertyName{Literal: name}, Value: p.value}
}

// assignments builds `target.name = value;` for every property.
func assignments(target js.IExpr, props []property) []js.IStmt {
	stmts := make([]js.IStmt, 0, len(props))
	for _, p := range props {
		stmts = append(stmts, &js.ExprStmt{Value: &js.BinaryExpr{
			Op: js.EqToken,
			X:  &js.DotExpr{X: target, Y: identifier(p.name)},
			Y:  p.value,
		}})
	}
	return stmts
}
