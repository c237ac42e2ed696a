package template

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

type parser struct {
	root   *element
	stack  []*element
	inPre  bool
	inVPre bool
	errs   *errorList
	opts   Options
}

// parseTemplate builds the element tree for markup. A nil root with no
// errors means the template was empty.
func parseTemplate(markup string, opts Options, errs *errorList) *element {
	p := &parser{errs: errs, opts: opts}
	z := html.NewTokenizer(strings.NewReader(markup))

	for {
		tt := z.Next()
		raw := string(z.Raw())

		switch tt {
		case html.ErrorToken:
			if !errors.Is(z.Err(), io.EOF) {
				errs.add("%v", z.Err())
				return p.root
			}
			for i := len(p.stack) - 1; i >= 0; i-- {
				errs.add("tag <%s> has no matching end tag.", p.stack[i].Tag)
			}
			return p.root

		case html.StartTagToken, html.SelfClosingTagToken:
			lowered, hasAttr := z.TagName()
			tag := originalTagName(raw, string(lowered))
			var attrs []rawAttr
			if hasAttr {
				attrs = readAttrs(z, raw)
			}
			p.start(tag, attrs, tt == html.SelfClosingTagToken || unaryTags[string(lowered)])

		case html.EndTagToken:
			lowered, _ := z.TagName()
			p.end(originalTagName(raw, string(lowered)))

		case html.TextToken:
			p.chars(string(z.Text()))
		}
	}
}

// originalTagName recovers the tag case the tokenizer folded away.
func originalTagName(raw, lowered string) string {
	name := strings.TrimPrefix(strings.TrimPrefix(raw, "<"), "/")
	end := strings.IndexAny(name, " \t\n\r\f/>")
	if end >= 0 {
		name = name[:end]
	}
	if strings.EqualFold(name, lowered) {
		return name
	}
	return lowered
}

// readAttrs pairs the tokenizer's decoded values with the attribute names as
// written in raw, so bindings like :fooBar keep their case.
func readAttrs(z *html.Tokenizer, raw string) []rawAttr {
	var attrs []rawAttr
	for {
		key, val, more := z.TagAttr()
		attrs = append(attrs, rawAttr{Name: string(key), Value: string(val)})
		if !more {
			break
		}
	}

	names := scanAttrNames(raw)
	if len(names) == len(attrs) {
		for i := range attrs {
			if strings.EqualFold(names[i], attrs[i].Name) {
				attrs[i].Name = names[i]
			}
		}
	}
	return attrs
}

func scanAttrNames(raw string) []string {
	s := strings.TrimPrefix(raw, "<")
	i := strings.IndexAny(s, " \t\n\r\f/>")
	if i < 0 {
		return nil
	}
	s = s[i:]

	var names []string
	for len(s) > 0 {
		s = strings.TrimLeft(s, " \t\n\r\f/")
		if s == "" || s[0] == '>' {
			break
		}
		end := 0
		for end < len(s) && !strings.ContainsRune(" \t\n\r\f/>=", rune(s[end])) {
			end++
		}
		if end == 0 {
			end = 1
		}
		names = append(names, s[:end])
		s = strings.TrimLeft(s[end:], " \t\n\r\f")
		if !strings.HasPrefix(s, "=") {
			continue
		}
		s = strings.TrimLeft(s[1:], " \t\n\r\f")
		s = skipAttrValue(s)
	}
	return names
}

func skipAttrValue(s string) string {
	if s == "" {
		return s
	}
	if q := s[0]; q == '"' || q == '\'' {
		if end := strings.IndexByte(s[1:], q); end >= 0 {
			return s[end+2:]
		}
		return ""
	}
	end := strings.IndexAny(s, " \t\n\r\f>")
	if end < 0 {
		return ""
	}
	return s[end:]
}

func (p *parser) currentParent() *element {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

func isForbiddenTag(el *element) bool {
	if el.Tag == "style" {
		return true
	}
	if el.Tag == "script" {
		typ, ok := el.AttrsMap["type"]
		return !ok || typ == "text/javascript"
	}
	return false
}

func (p *parser) start(tag string, attrs []rawAttr, unary bool) {
	el := newElement(tag, attrs, p.currentParent())

	if isForbiddenTag(el) {
		el.Forbidden = true
		p.errs.add("Templates should only be responsible for mapping the state to the UI. "+
			"Avoid placing tags with side-effects in your templates, such as <%s>, as they will not be parsed.", tag)
	}

	if !p.inVPre {
		if _, ok := el.getAndRemoveAttr("v-pre"); ok {
			el.Pre = true
			p.inVPre = true
		}
	}
	if tag == "pre" {
		p.inPre = true
	}

	if p.inVPre {
		processRawAttrs(el)
	} else {
		processFor(el, p.errs)
		processIf(el)
		processOnce(el)
	}

	if p.root == nil {
		p.root = el
		p.checkRootConstraints(el)
	}

	if unary {
		p.closeElement(el)
		return
	}
	p.stack = append(p.stack, el)
}

func (p *parser) checkRootConstraints(el *element) {
	if el.Tag == "slot" || el.Tag == "template" {
		p.errs.add("Cannot use <%s> as component root element because it may contain multiple nodes.", el.Tag)
	}
	if el.hasAttr("v-for") {
		p.errs.add("Cannot use v-for on stateful component root element because it renders multiple elements.")
	}
}

func (p *parser) end(tag string) {
	pos := -1
	for i := len(p.stack) - 1; i >= 0; i-- {
		if strings.EqualFold(p.stack[i].Tag, tag) {
			pos = i
			break
		}
	}
	if pos < 0 {
		p.errs.add("tag </%s> has no matching start tag.", tag)
		return
	}
	for i := len(p.stack) - 1; i > pos; i-- {
		p.errs.add("tag <%s> has no matching end tag.", p.stack[i].Tag)
	}

	el := p.stack[pos]
	p.stack = p.stack[:pos]
	p.closeElement(el)
}

func (p *parser) chars(text string) {
	parent := p.currentParent()
	if parent == nil {
		if strings.TrimSpace(text) != "" {
			if p.root == nil {
				p.errs.add("Component template requires a root element, rather than just text.")
			} else {
				p.errs.add("text %q outside root element will be ignored.", strings.TrimSpace(text))
			}
		}
		return
	}

	// a newline right after <pre> or <textarea> is not content
	if (parent.Tag == "pre" || parent.Tag == "textarea") && len(parent.Children) == 0 {
		text = strings.TrimPrefix(text, "\n")
		if text == "" {
			return
		}
	}

	children := parent.Children
	switch {
	case p.inPre || strings.TrimSpace(text) != "":
	case len(children) == 0:
		text = ""
	case p.opts.PreserveWhitespace:
		text = " "
	default:
		text = ""
	}
	if text == "" {
		return
	}

	if !p.inVPre && text != " " {
		if exp, ok := parseText(text); ok {
			parent.Children = append(parent.Children, &textNodeData{Text: text, Expression: exp})
			return
		}
	}
	if text != " " || len(children) == 0 || !isSpaceText(children[len(children)-1]) {
		parent.Children = append(parent.Children, &textNodeData{Text: text})
	}
}

func isSpaceText(n node) bool {
	t, ok := n.(*textNodeData)
	return ok && t.Expression == "" && t.Text == " "
}

func trimEndingWhitespace(el *element) {
	for len(el.Children) > 0 && isSpaceText(el.Children[len(el.Children)-1]) {
		el.Children = el.Children[:len(el.Children)-1]
	}
}

func (p *parser) closeElement(el *element) {
	if !p.inPre {
		trimEndingWhitespace(el)
	}
	if !p.inVPre {
		processElement(el, p.errs)
	}

	parent := p.currentParent()
	if parent == nil && el != p.root {
		switch {
		case p.root.If != "" && (el.ElseIf != "" || el.Else):
			p.root.addIfCondition(ifCondition{Exp: el.ElseIf, Block: el})
		default:
			p.errs.add("Component template should contain exactly one root element. " +
				"If you are using v-if on multiple elements, use v-else-if to chain them instead.")
		}
	}

	if parent != nil && !el.Forbidden {
		if el.ElseIf != "" || el.Else {
			processIfConditions(el, parent, p.errs)
		} else {
			if el.hasSlotScope {
				name := el.SlotTarget
				if name == "" {
					name = `"default"`
				}
				setScopedSlot(parent, name, el)
			}
			parent.Children = append(parent.Children, el)
			el.Parent = parent
		}
	}

	kept := el.Children[:0]
	for _, c := range el.Children {
		if child, ok := c.(*element); ok && child.hasSlotScope {
			continue
		}
		kept = append(kept, c)
	}
	el.Children = kept
	if !p.inPre {
		trimEndingWhitespace(el)
	}

	if el.Pre {
		p.inVPre = false
	}
	if el.Tag == "pre" {
		p.inPre = false
	}
}

func setScopedSlot(parent *element, name string, slot *element) {
	for i, existing := range parent.ScopedSlots {
		if existing.SlotTarget == name || (existing.SlotTarget == "" && name == `"default"`) {
			parent.ScopedSlots[i] = slot
			return
		}
	}
	parent.ScopedSlots = append(parent.ScopedSlots, slot)
}

func processIfConditions(el, parent *element, errs *errorList) {
	prev := findPrevElement(parent, errs)
	if prev != nil && prev.If != "" {
		prev.addIfCondition(ifCondition{Exp: el.ElseIf, Block: el})
		return
	}
	name := "v-else"
	if el.ElseIf != "" {
		name = "v-else-if=\"" + el.ElseIf + "\""
	}
	errs.add("%s used on element <%s> without corresponding v-if.", name, el.Tag)
}

func findPrevElement(parent *element, errs *errorList) *element {
	for len(parent.Children) > 0 {
		last := parent.Children[len(parent.Children)-1]
		if el, ok := last.(*element); ok {
			return el
		}
		if t, ok := last.(*textNodeData); ok && t.Text != " " {
			errs.add("text %q between v-if and v-else(-if) will be ignored.", strings.TrimSpace(t.Text))
		}
		parent.Children = parent.Children[:len(parent.Children)-1]
	}
	return nil
}

type errorList struct {
	msgs []string
}

func (l *errorList) add(format string, args ...any) {
	l.msgs = append(l.msgs, fmt.Sprintf(format, args...))
}

func (l *errorList) len() int {
	return len(l.msgs)
}
