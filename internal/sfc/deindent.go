package sfc

import (
	"regexp"
	"strings"
)

var (
	lineSplit = regexp.MustCompile(`\r?\n`)
	needFix   = regexp.MustCompile(`^(\r?\n)*[\t\s]`)
)

// Deindent removes the indentation shared by every non blank line. The
// indent character is taken from the first non blank line; content whose
// first line is not indented is returned as is.
func Deindent(text string) string {
	if !needFix.MatchString(text) {
		return text
	}

	lines := lineSplit.Split(text, -1)
	minIndent := -1
	var indent byte

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if indent == 0 {
			c := line[0]
			if c != ' ' && c != '\t' {
				return text
			}
			indent = c
		}
		n := countLeading(line, indent)
		if minIndent < 0 || n < minIndent {
			minIndent = n
		}
	}

	for i, line := range lines {
		if minIndent < 0 || minIndent >= len(line) {
			lines[i] = ""
			continue
		}
		lines[i] = line[minIndent:]
	}
	return strings.Join(lines, "\n")
}

func countLeading(line string, c byte) int {
	n := 0
	for n < len(line) && line[n] == c {
		n++
	}
	return n
}
