// Package sfc splits a single file component into its top level blocks.
package sfc

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/3-lines-studio/vuebuild/internal/core"
)

type openBlock struct {
	section      *core.Section
	tag          string
	contentStart int
	depth        int
}

// Parse splits content into template, script, style and custom blocks.
// Only top level elements are blocks; tags nested inside a block are left
// in its content untouched.
func Parse(content string, opts core.ParserOptions) (*core.Descriptor, error) {
	desc := &core.Descriptor{}
	z := html.NewTokenizer(strings.NewReader(content))

	var current *openBlock
	offset := 0

	for {
		tt := z.Next()
		tokenStart := offset
		offset += len(z.Raw())

		switch tt {
		case html.ErrorToken:
			if !errors.Is(z.Err(), io.EOF) {
				return nil, z.Err()
			}
			if current != nil {
				return nil, fmt.Errorf("%w: <%s> starting on line %d is never closed",
					core.ErrUnterminatedSection, current.tag, current.section.Line)
			}
			return desc, nil

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)

			if current != nil {
				if tag == current.tag && tt == html.StartTagToken {
					current.depth++
				}
				continue
			}

			section := newSection(tag, content, offset)
			if hasAttr {
				readAttrs(z, section)
			}

			if tt == html.SelfClosingTagToken {
				section.End = offset
				if err := finish(desc, section, content, opts); err != nil {
					return nil, err
				}
				continue
			}
			current = &openBlock{section: section, tag: tag, contentStart: offset, depth: 1}

		case html.EndTagToken:
			if current == nil {
				continue
			}
			name, _ := z.TagName()
			if string(name) != current.tag {
				continue
			}
			current.depth--
			if current.depth > 0 {
				continue
			}

			section := current.section
			section.End = tokenStart
			section.Content = content[current.contentStart:tokenStart]
			current = nil
			if err := finish(desc, section, content, opts); err != nil {
				return nil, err
			}
		}
	}
}

func newSection(tag, content string, contentStart int) *core.Section {
	section := &core.Section{
		Type:  blockType(tag),
		Tag:   tag,
		Attrs: make(map[string]string),
		Start: contentStart,
		Line:  strings.Count(content[:contentStart], "\n") + 1,
	}
	return section
}

func blockType(tag string) core.SectionType {
	switch tag {
	case "template":
		return core.SectionTemplate
	case "script":
		return core.SectionScript
	case "style":
		return core.SectionStyle
	default:
		return core.SectionCustom
	}
}

func readAttrs(z *html.Tokenizer, section *core.Section) {
	for {
		key, val, more := z.TagAttr()
		name := string(key)
		value := string(val)
		if value == "" {
			value = "true"
		}
		section.Attrs[name] = value

		switch name {
		case "lang":
			section.Lang = string(val)
		case "src":
			section.Src = string(val)
		case "scoped":
			section.Scoped = true
		case "module":
			section.Module = true
		}

		if !more {
			return
		}
	}
}

func finish(desc *core.Descriptor, section *core.Section, content string, opts core.ParserOptions) error {
	text := section.Content
	if opts.Deindent {
		text = Deindent(text)
	}
	// Blank blocks stay blank so callers can tell them apart from padding.
	if section.Type != core.SectionTemplate && opts.Pad != core.PadNone && strings.TrimSpace(text) != "" {
		text = padContent(content, section, opts.Pad) + text
	}
	section.Content = text

	switch section.Type {
	case core.SectionTemplate:
		if desc.Template != nil {
			return fmt.Errorf("%w: more than one <template> block (line %d)", core.ErrDuplicateSection, section.Line)
		}
		desc.Template = section
	case core.SectionScript:
		if desc.Script != nil {
			return fmt.Errorf("%w: more than one <script> block (line %d)", core.ErrDuplicateSection, section.Line)
		}
		desc.Script = section
	case core.SectionStyle:
		desc.Styles = append(desc.Styles, section)
	default:
		desc.CustomBlocks = append(desc.CustomBlocks, section)
	}
	return nil
}

// padContent keeps line numbers (or columns, in space mode) of a block
// aligned with the original document.
func padContent(content string, section *core.Section, mode core.PadMode) string {
	before := content[:section.Start]
	if mode == core.PadSpace {
		var b strings.Builder
		b.Grow(len(before))
		for _, r := range before {
			if r == '\n' || r == '\r' {
				b.WriteRune(r)
			} else {
				b.WriteByte(' ')
			}
		}
		return b.String()
	}

	padChar := "\n"
	if section.Type == core.SectionScript && section.Lang == "" {
		padChar = "//\n"
	}
	return strings.Repeat(padChar, strings.Count(before, "\n"))
}
