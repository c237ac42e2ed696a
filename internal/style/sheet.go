package style

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"github.com/3-lines-studio/vuebuild/internal/core"
)

type nodeKind int

const (
	rootNode nodeKind = iota
	ruleNode
	atRuleNode
	declNode
	commentNode
)

// sheetNode is one node of a parsed stylesheet. Rules keep their selector
// tokens so scoping can work on structure instead of text.
type sheetNode struct {
	kind     nodeKind
	name     string
	prelude  string
	selector []css.Token
	value    string
	block    bool
	raw      strings.Builder
	children []*sheetNode
	start    int
}

func (n *sheetNode) add(child *sheetNode) {
	n.children = append(n.children, child)
}

// SyntaxError is a positioned problem in a style sheet.
type SyntaxError struct {
	Line    int
	Column  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("<css input>:%d:%d: %s", e.Line, e.Column, e.Message)
}

func (e *SyntaxError) Unwrap() error {
	return core.ErrStyle
}

func newSyntaxError(src string, offset int, message string) *SyntaxError {
	line, column, _ := parse.Position(strings.NewReader(src), offset)
	return &SyntaxError{Line: line, Column: column, Message: message}
}

func fromParseError(err error) *SyntaxError {
	var perr *parse.Error
	if errors.As(err, &perr) {
		return &SyntaxError{Line: perr.Line, Column: perr.Column, Message: perr.Message}
	}
	return &SyntaxError{Message: err.Error()}
}

// parseSheet builds a node tree from src. Parsing recovers from errors, so
// the tree is usable even when errors are returned.
func parseSheet(src string) (*sheetNode, []error) {
	p := css.NewParser(parse.NewInputString(src), false)
	root := &sheetNode{kind: rootNode}
	stack := []*sheetNode{root}
	var errs []error

	for {
		gt, tt, data := p.Next()
		top := stack[len(stack)-1]

		switch gt {
		case css.ErrorGrammar:
			if p.HasParseError() {
				errs = append(errs, fromParseError(p.Err()))
				continue
			}
			if err := p.Err(); err != nil && !errors.Is(err, io.EOF) {
				errs = append(errs, fromParseError(err))
			}
			return root, errs

		case css.CommentGrammar:
			top.add(&sheetNode{kind: commentNode, value: string(data)})

		case css.AtRuleGrammar:
			top.add(&sheetNode{kind: atRuleNode, name: atRuleName(data), prelude: joinTokens(p.Values())})

		case css.BeginAtRuleGrammar:
			n := &sheetNode{
				kind:    atRuleNode,
				name:    atRuleName(data),
				prelude: joinTokens(p.Values()),
				block:   true,
				start:   p.Offset() - 1,
			}
			top.add(n)
			stack = append(stack, n)

		case css.BeginRulesetGrammar:
			n := &sheetNode{kind: ruleNode, selector: copyTokens(p.Values()), block: true, start: p.Offset() - 1}
			top.add(n)
			stack = append(stack, n)

		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			if tt == css.ErrorToken {
				errs = append(errs, newSyntaxError(src, top.start, "Unclosed block"))
			}
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}

		case css.DeclarationGrammar:
			top.add(&sheetNode{kind: declNode, name: string(data), value: joinTokens(p.Values())})

		case css.CustomPropertyGrammar:
			var value string
			if values := p.Values(); len(values) > 0 {
				value = strings.TrimSpace(string(values[0].Data))
			}
			top.add(&sheetNode{kind: declNode, name: string(data), value: value})

		case css.TokenGrammar:
			if top.kind == atRuleNode {
				top.raw.Write(data)
			}
		}
	}
}

func atRuleName(data []byte) string {
	return strings.TrimPrefix(string(data), "@")
}

func copyTokens(tokens []css.Token) []css.Token {
	out := make([]css.Token, len(tokens))
	for i, t := range tokens {
		out[i] = css.Token{TokenType: t.TokenType, Data: parse.Copy(t.Data)}
	}
	return out
}

func joinTokens(tokens []css.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.Write(t.Data)
	}
	return strings.TrimSpace(b.String())
}

// print writes the tree back as CSS, one declaration per line.
func (n *sheetNode) print(b *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)

	switch n.kind {
	case rootNode:
		for i, c := range n.children {
			if i > 0 {
				b.WriteString("\n")
			}
			c.print(b, depth)
		}
		return

	case commentNode:
		b.WriteString(indent + n.value)

	case declNode:
		b.WriteString(indent + n.name + ": " + n.value + ";")

	case ruleNode:
		b.WriteString(indent + n.prelude)
		n.printBlock(b, depth)

	case atRuleNode:
		b.WriteString(indent + "@" + n.name)
		if n.prelude != "" {
			b.WriteString(" " + n.prelude)
		}
		if !n.block {
			b.WriteString(";")
			return
		}
		if n.raw.Len() > 0 {
			b.WriteString(" {" + n.raw.String() + "}")
			return
		}
		n.printBlock(b, depth)
	}
}

func (n *sheetNode) printBlock(b *strings.Builder, depth int) {
	if len(n.children) == 0 {
		b.WriteString(" {}")
		return
	}
	b.WriteString(" {\n")
	for _, c := range n.children {
		c.print(b, depth+1)
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat("  ", depth) + "}")
}
