package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

type Output struct {
	out    io.Writer
	errOut io.Writer

	green  *color.Color
	yellow *color.Color
	red    *color.Color
	gray   *color.Color
}

func NewOutput() *Output {
	return NewOutputTo(os.Stdout, os.Stderr, isTerminal(os.Stdout))
}

// NewOutputTo writes to the given streams, coloring only when colors is set.
func NewOutputTo(out, errOut io.Writer, colors bool) *Output {
	o := &Output{
		out:    out,
		errOut: errOut,
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		red:    color.New(color.FgRed),
		gray:   color.New(color.FgHiBlack),
	}
	if !colors {
		o.DisableColors()
	} else {
		o.EnableColors()
	}
	return o
}

func (o *Output) EnableColors() {
	for _, c := range []*color.Color{o.green, o.yellow, o.red, o.gray} {
		c.EnableColor()
	}
}

func (o *Output) DisableColors() {
	for _, c := range []*color.Color{o.green, o.yellow, o.red, o.gray} {
		c.DisableColor()
	}
}

func (o *Output) Green(text string) string  { return o.green.Sprint(text) }
func (o *Output) Yellow(text string) string { return o.yellow.Sprint(text) }
func (o *Output) Red(text string) string    { return o.red.Sprint(text) }
func (o *Output) Gray(text string) string   { return o.gray.Sprint(text) }

func (o *Output) Stdout() io.Writer { return o.out }
func (o *Output) Stderr() io.Writer { return o.errOut }

func (o *Output) PrintHeader(msg string) {
	fmt.Fprintln(o.out, msg)
	fmt.Fprintln(o.out)
}

func (o *Output) PrintStep(emoji, msg string, args ...any) {
	fmt.Fprintf(o.out, "  "+msg+"\n", args...)
}

func (o *Output) PrintSuccess(msg string, args ...any) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(o.out, "  "+o.Green("✓ ")+"%s\n", formatted)
}

func (o *Output) PrintWarning(msg string, args ...any) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(o.out, "  "+o.Yellow("⚠ ")+"%s\n", formatted)
}

func (o *Output) PrintError(msg string, args ...any) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(o.errOut, "  "+o.Red("✗ ")+"%s\n", formatted)
}

func (o *Output) PrintFile(path string) {
	fmt.Fprintf(o.out, "    %s\n", path)
}

func (o *Output) PrintDone(msg string) {
	fmt.Fprintln(o.out, msg)
}

func isTerminal(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
