package template

import (
	"regexp"
	"strings"
)

var interpolationRE = regexp.MustCompile(`\{\{((?:.|\r?\n)+?)\}\}`)

// parseText turns text with {{ }} interpolations into a concatenation
// expression. ok is false when the text has no interpolation.
func parseText(text string) (expression string, ok bool) {
	matches := interpolationRE.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return "", false
	}

	var tokens []string
	lastIndex := 0
	for _, m := range matches {
		if m[0] > lastIndex {
			tokens = append(tokens, jsonString(text[lastIndex:m[0]]))
		}
		exp := parseFilters(strings.TrimSpace(text[m[2]:m[3]]))
		tokens = append(tokens, "_s("+exp+")")
		lastIndex = m[1]
	}
	if lastIndex < len(text) {
		tokens = append(tokens, jsonString(text[lastIndex:]))
	}
	return strings.Join(tokens, "+"), true
}

func isDivisionPrefix(c byte) bool {
	return isWordByte(c) || c == ')' || c == '.' || c == '+' || c == '-' || c == '$' || c == ']'
}

// parseFilters rewrites `exp | a | b(x)` into nested _f() calls. Pipes inside
// strings, template literals, regexps and brackets are left alone.
func parseFilters(exp string) string {
	var (
		inSingle, inDouble, inTemplate, inRegex bool
		curly, square, paren                    int
		lastFilterIndex                         int
		expression                              string
		haveExpression                          bool
		filters                                 []string
		prev, c                                 byte
	)

	i := 0
	for ; i < len(exp); i++ {
		prev = c
		c = exp[i]
		switch {
		case inSingle:
			if c == '\'' && prev != '\\' {
				inSingle = false
			}
		case inDouble:
			if c == '"' && prev != '\\' {
				inDouble = false
			}
		case inTemplate:
			if c == '`' && prev != '\\' {
				inTemplate = false
			}
		case inRegex:
			if c == '/' && prev != '\\' {
				inRegex = false
			}
		case c == '|' && at(exp, i+1) != '|' && at(exp, i-1) != '|' && curly == 0 && square == 0 && paren == 0:
			if !haveExpression {
				lastFilterIndex = i + 1
				expression = strings.TrimSpace(exp[:i])
				haveExpression = true
			} else {
				filters = append(filters, strings.TrimSpace(exp[lastFilterIndex:i]))
				lastFilterIndex = i + 1
			}
		default:
			switch c {
			case '"':
				inDouble = true
			case '\'':
				inSingle = true
			case '`':
				inTemplate = true
			case '(':
				paren++
			case ')':
				paren--
			case '[':
				square++
			case ']':
				square--
			case '{':
				curly++
			case '}':
				curly--
			}
			if c == '/' {
				j := i - 1
				var p byte
				for ; j >= 0; j-- {
					p = exp[j]
					if p != ' ' {
						break
					}
				}
				if p == 0 || !isDivisionPrefix(p) {
					inRegex = true
				}
			}
		}
	}

	if !haveExpression {
		expression = strings.TrimSpace(exp[:i])
	} else if lastFilterIndex != 0 {
		filters = append(filters, strings.TrimSpace(exp[lastFilterIndex:i]))
	}

	for _, f := range filters {
		expression = wrapFilter(expression, f)
	}
	return expression
}

func at(s string, i int) byte {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}

func wrapFilter(exp, filter string) string {
	i := strings.IndexByte(filter, '(')
	if i < 0 {
		return `_f("` + filter + `")(` + exp + `)`
	}
	name := filter[:i]
	args := filter[i+1:]
	if args != ")" {
		return `_f("` + name + `")(` + exp + `,` + args
	}
	return `_f("` + name + `")(` + exp + args
}

func genText(t *textNodeData) string {
	if t.Expression != "" {
		return "_v(" + t.Expression + ")"
	}
	return "_v(" + jsonString(t.Text) + ")"
}
