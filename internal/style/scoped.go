package style

import (
	"regexp"
	"strings"

	"github.com/tdewolff/parse/v2/css"
)

type partKind int

const (
	partSimple partKind = iota
	partPseudo
	partCombinator
	// partDeep is `>>>` or `/deep/`; it reads as a descendant combinator.
	partDeep
	// partDeepPseudo is `::v-deep`; it disappears from the output.
	partDeepPseudo
)

const deepCombinator = ">>>"

type selectorPart struct {
	kind partKind
	text string
}

// splitSelectors splits a selector list on its top level commas.
func splitSelectors(tokens []css.Token) [][]css.Token {
	var (
		out   [][]css.Token
		cur   []css.Token
		level int
	)
	for _, t := range tokens {
		switch t.TokenType {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			level++
		case css.RightParenthesisToken, css.RightBracketToken:
			level--
		case css.CommaToken:
			if level == 0 {
				out = append(out, cur)
				cur = nil
				continue
			}
		}
		cur = append(cur, t)
	}
	return append(out, cur)
}

func isDelim(t css.Token, c byte) bool {
	return t.TokenType == css.DelimToken && len(t.Data) == 1 && t.Data[0] == c
}

// selectorParts groups the tokens of one selector into simple selectors,
// pseudo selectors and combinators.
func selectorParts(tokens []css.Token) []selectorPart {
	var parts []selectorPart
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		switch {
		case t.TokenType == css.WhitespaceToken:
			parts = addCombinator(parts, selectorPart{kind: partCombinator, text: " "})

		case isDelim(t, '>'):
			if i+2 < len(tokens) && isDelim(tokens[i+1], '>') && isDelim(tokens[i+2], '>') {
				parts = addCombinator(parts, selectorPart{kind: partDeep, text: deepCombinator})
				i += 2
				continue
			}
			parts = addCombinator(parts, selectorPart{kind: partCombinator, text: ">"})

		case isDelim(t, '+'), isDelim(t, '~'):
			parts = addCombinator(parts, selectorPart{kind: partCombinator, text: string(t.Data)})

		case isDelim(t, '/') && i+2 < len(tokens) &&
			tokens[i+1].TokenType == css.IdentToken && string(tokens[i+1].Data) == "deep" && isDelim(tokens[i+2], '/'):
			parts = addCombinator(parts, selectorPart{kind: partDeep, text: deepCombinator})
			i += 2

		case t.TokenType == css.ColonToken:
			text := ":"
			if i+1 < len(tokens) && tokens[i+1].TokenType == css.ColonToken {
				text = "::"
				i++
			}
			if i+1 < len(tokens) {
				i++
				var rest string
				rest, i = collectPseudo(tokens, i)
				text += rest
			}
			if text == "::v-deep" {
				parts = append(parts, selectorPart{kind: partDeepPseudo, text: text})
			} else {
				parts = append(parts, selectorPart{kind: partPseudo, text: text})
			}

		case t.TokenType == css.LeftBracketToken:
			var b strings.Builder
			for ; i < len(tokens); i++ {
				b.Write(tokens[i].Data)
				if tokens[i].TokenType == css.RightBracketToken {
					break
				}
			}
			parts = append(parts, selectorPart{kind: partSimple, text: b.String()})

		case isDelim(t, '.') && i+1 < len(tokens):
			parts = append(parts, selectorPart{kind: partSimple, text: "." + string(tokens[i+1].Data)})
			i++

		default:
			parts = append(parts, selectorPart{kind: partSimple, text: string(t.Data)})
		}
	}
	return parts
}

// collectPseudo reads the name of a pseudo selector starting at tokens[i],
// including a parenthesised argument list. It returns the text and the
// index of the last token consumed.
func collectPseudo(tokens []css.Token, i int) (string, int) {
	if tokens[i].TokenType != css.FunctionToken {
		return string(tokens[i].Data), i
	}
	var b strings.Builder
	level := 0
	for ; i < len(tokens); i++ {
		t := tokens[i]
		b.Write(t.Data)
		switch t.TokenType {
		case css.FunctionToken, css.LeftParenthesisToken:
			level++
		case css.RightParenthesisToken:
			level--
		}
		if level == 0 {
			break
		}
	}
	if i == len(tokens) {
		i--
	}
	return b.String(), i
}

func combinatorWeight(p selectorPart) int {
	switch {
	case p.kind == partDeep:
		return 2
	case p.text != " ":
		return 1
	}
	return 0
}

// addCombinator merges adjacent combinators; whitespace around `>` is
// reported by the tokenizer as a combinator of its own.
func addCombinator(parts []selectorPart, c selectorPart) []selectorPart {
	if n := len(parts); n > 0 && (parts[n-1].kind == partCombinator || parts[n-1].kind == partDeep) {
		if combinatorWeight(c) > combinatorWeight(parts[n-1]) {
			parts[n-1] = c
		}
		return parts
	}
	return append(parts, c)
}

// scopeSelector adds the [id] attribute after the last simple selector
// before any deep marker. Selectors without one get it as a prefix.
func scopeSelector(parts []selectorPart, id string) string {
	stop := len(parts)
	for i, p := range parts {
		if p.kind == partDeep || p.kind == partDeepPseudo {
			stop = i
			break
		}
	}
	insertAt := -1
	for i := 0; i < stop; i++ {
		if parts[i].kind == partSimple {
			insertAt = i
		}
	}

	attr := "[" + id + "]"
	var b strings.Builder
	if insertAt < 0 {
		b.WriteString(attr)
	}
	var pending *selectorPart
	for i := range parts {
		p := parts[i]
		switch p.kind {
		case partDeepPseudo:
			continue
		case partCombinator, partDeep:
			if pending == nil || combinatorWeight(p) > combinatorWeight(*pending) {
				pending = &parts[i]
			}
			continue
		}
		if pending != nil && b.Len() > 0 {
			b.WriteString(renderCombinator(*pending))
		}
		pending = nil
		b.WriteString(p.text)
		if i == insertAt {
			b.WriteString(attr)
		}
	}
	return b.String()
}

func renderCombinator(p selectorPart) string {
	if p.kind == partDeep || p.text == " " {
		return " "
	}
	return " " + p.text + " "
}

func plainSelector(parts []selectorPart) string {
	var b strings.Builder
	var pending *selectorPart
	for i := range parts {
		p := parts[i]
		if p.kind == partCombinator || p.kind == partDeep {
			pending = &parts[i]
			continue
		}
		if pending != nil && b.Len() > 0 {
			if pending.kind == partDeep {
				b.WriteString(" " + deepCombinator + " ")
			} else {
				b.WriteString(renderCombinator(*pending))
			}
		}
		pending = nil
		b.WriteString(p.text)
	}
	return b.String()
}

func selectorText(tokens []css.Token, id string) string {
	selectors := splitSelectors(tokens)
	out := make([]string, 0, len(selectors))
	for _, sel := range selectors {
		parts := selectorParts(sel)
		if id != "" {
			out = append(out, scopeSelector(parts, id))
		} else {
			out = append(out, plainSelector(parts))
		}
	}
	return strings.Join(out, ", ")
}

var (
	keyframesRE     = regexp.MustCompile(`-?keyframes$`)
	animationNameRE = regexp.MustCompile(`^(-\w+-)?animation-name$`)
	animationRE     = regexp.MustCompile(`^(-\w+-)?animation$`)
	whitespaceRE    = regexp.MustCompile(`\s+`)
)

// scope rewrites every rule under n. Rules inside @media and @supports are
// scoped too; keyframe names get the id hash as a suffix.
func scope(n *sheetNode, id, hash string, keyframes map[string]string) {
	for _, c := range n.children {
		switch c.kind {
		case ruleNode:
			c.prelude = selectorText(c.selector, id)
		case atRuleNode:
			name := strings.ToLower(c.name)
			switch {
			case name == "media" || name == "supports":
				scope(c, id, hash, keyframes)
			case keyframesRE.MatchString(name) && c.prelude != "":
				renamed := c.prelude + "-" + hash
				keyframes[c.prelude] = renamed
				c.prelude = renamed
				unscoped(c)
			default:
				unscoped(c)
			}
		}
	}
}

// unscoped prints every rule under n as written.
func unscoped(n *sheetNode) {
	for _, c := range n.children {
		switch c.kind {
		case ruleNode:
			c.prelude = selectorText(c.selector, "")
		case atRuleNode:
			unscoped(c)
		}
	}
}

func renameAnimations(n *sheetNode, keyframes map[string]string) {
	for _, c := range n.children {
		if c.kind != declNode {
			renameAnimations(c, keyframes)
			continue
		}
		switch {
		case animationNameRE.MatchString(c.name):
			names := strings.Split(c.value, ",")
			for i, name := range names {
				name = strings.TrimSpace(name)
				if renamed, ok := keyframes[name]; ok {
					name = renamed
				}
				names[i] = name
			}
			c.value = strings.Join(names, ",")

		case animationRE.MatchString(c.name):
			animations := strings.Split(c.value, ",")
			for i, animation := range animations {
				values := whitespaceRE.Split(strings.TrimSpace(animation), -1)
				for j, v := range values {
					if renamed, ok := keyframes[v]; ok {
						values[j] = renamed
						animations[i] = strings.Join(values, " ")
						break
					}
				}
			}
			c.value = strings.Join(animations, ",")
		}
	}
}
