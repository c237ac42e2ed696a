package style

import (
	"errors"
	"strings"
	"testing"

	"github.com/3-lines-studio/vuebuild/internal/core"
)

const testID = "data-v-4c940b87"

func TestCompile(t *testing.T) {
	tests := []struct {
		name   string
		source string
		scoped bool
		want   string
	}{
		{
			name:   "scoped rules",
			source: ".a { color: red }\n.b .c:hover, p > span { margin: 0 auto }",
			scoped: true,
			want: ".a[data-v-4c940b87] {\n  color: red;\n}\n" +
				".b .c[data-v-4c940b87]:hover, p > span[data-v-4c940b87] {\n  margin: 0 auto;\n}",
		},
		{
			name:   "unscoped rules",
			source: "  .a > .b { color: red }  \n",
			want:   ".a > .b {\n  color: red;\n}",
		},
		{
			name:   "deep combinator",
			source: ".a >>> .b { color: red }",
			scoped: true,
			want:   ".a[data-v-4c940b87] .b {\n  color: red;\n}",
		},
		{
			name:   "deep keyword",
			source: ".a /deep/ .b { color: red }",
			scoped: true,
			want:   ".a[data-v-4c940b87] .b {\n  color: red;\n}",
		},
		{
			name:   "v-deep pseudo",
			source: ".a ::v-deep .b { color: red }",
			scoped: true,
			want:   ".a[data-v-4c940b87] .b {\n  color: red;\n}",
		},
		{
			name:   "leading v-deep",
			source: "::v-deep .b { color: red }",
			scoped: true,
			want:   "[data-v-4c940b87] .b {\n  color: red;\n}",
		},
		{
			name:   "media query",
			source: "@media (max-width: 600px) { .a { color: red } }",
			scoped: true,
			want:   "@media (max-width:600px) {\n  .a[data-v-4c940b87] {\n    color: red;\n  }\n}",
		},
		{
			name:   "keyframes",
			source: "@keyframes fade { from { opacity: 0 } to { opacity: 1 } }\n.a { animation: fade 1s ease; }\n.b { animation-name: fade, spin }",
			scoped: true,
			want: "@keyframes fade-4c940b87 {\n  from {\n    opacity: 0;\n  }\n  to {\n    opacity: 1;\n  }\n}\n" +
				".a[data-v-4c940b87] {\n  animation: fade-4c940b87 1s ease;\n}\n" +
				".b[data-v-4c940b87] {\n  animation-name: fade-4c940b87,spin;\n}",
		},
		{
			name:   "keyframes untouched when unscoped",
			source: "@keyframes fade { from { opacity: 0 } }",
			want:   "@keyframes fade {\n  from {\n    opacity: 0;\n  }\n}",
		},
		{
			name:   "comments and at rules",
			source: "/* theme */\n@import url(theme.css);\n.a {}",
			scoped: true,
			want:   "/* theme */\n@import url(theme.css);\n.a[data-v-4c940b87] {}",
		},
		{
			name:   "empty source",
			source: "",
			scoped: true,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compile(Options{Source: tt.source, Scoped: tt.scoped, ID: testID, Trim: true})
			if len(got.Errors) > 0 {
				t.Fatalf("Compile() errors = %v", got.Errors)
			}
			if got.Code != tt.want {
				t.Errorf("Compile() =\n%s\nwant\n%s", got.Code, tt.want)
			}
		})
	}
}

func TestCompileWithoutTrim(t *testing.T) {
	got := Compile(Options{Source: ".a { color: red }"})
	if want := ".a {\n  color: red;\n}\n"; got.Code != want {
		t.Errorf("Compile() = %q, want %q", got.Code, want)
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		message string
		line    int
	}{
		{
			name:    "unclosed block",
			source:  ".a {\n  color: red",
			message: "Unclosed block",
			line:    1,
		},
		{
			name:    "bad declaration",
			source:  ".a {\n  : red;\n}",
			message: "unexpected token",
			line:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compile(Options{Source: tt.source, Scoped: true, ID: testID, Trim: true})
			if len(got.Errors) == 0 {
				t.Fatal("Compile() errors = none, want one")
			}
			var syntaxErr *SyntaxError
			if !errors.As(got.Errors[0], &syntaxErr) {
				t.Fatalf("Compile() error = %T, want *SyntaxError", got.Errors[0])
			}
			if !strings.Contains(syntaxErr.Message, tt.message) {
				t.Errorf("SyntaxError.Message = %q, want it to contain %q", syntaxErr.Message, tt.message)
			}
			if syntaxErr.Line != tt.line {
				t.Errorf("SyntaxError.Line = %d, want %d", syntaxErr.Line, tt.line)
			}
			if !errors.Is(got.Errors[0], core.ErrStyle) {
				t.Errorf("Compile() error does not wrap core.ErrStyle")
			}
		})
	}
}

func TestScopeSelector(t *testing.T) {
	tests := []struct {
		selector string
		want     string
	}{
		{"div", "div[x]"},
		{"a.b#c", "a.b#c[x]"},
		{".a::before", ".a[x]::before"},
		{".a:not(.b) .c", ".a:not(.b) .c[x]"},
		{"input[type=text]", "input[type=text][x]"},
		{".a + .b ~ .c", ".a + .b ~ .c[x]"},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			sheet, errs := parseSheet(tt.selector + " {}")
			if len(errs) > 0 || len(sheet.children) != 1 {
				t.Fatalf("parseSheet() = %v, %v", sheet.children, errs)
			}
			if got := selectorText(sheet.children[0].selector, "x"); got != tt.want {
				t.Errorf("selectorText() = %q, want %q", got, tt.want)
			}
		})
	}
}
