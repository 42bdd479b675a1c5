package ui

import (
	"fmt"
	"io"
	"os"
)

var (
	reset = "\033[0m"
	bold  = "\033[1m"

	fgGray   = "\033[90m"
	fgGreen  = "\033[32m"
	fgYellow = "\033[33m"
	fgBlue   = "\033[34m"
	fgRed    = "\033[31m"
	fgCyan   = "\033[36m"

	symCheck = "✔"
	symCross = "✖"
)

// Printer renders CLI output. Colour is decided once at construction.
type Printer struct {
	Out   io.Writer
	Err   io.Writer
	Theme Theme
	color bool
}

// New returns a Printer for the named theme. Colour is on when stdout is a
// terminal unless noColor is set; the mono theme never colours.
func New(out, errw io.Writer, theme string, noColor bool) *Printer {
	t := ThemeByName(theme)
	color := !noColor && !t.Mono && isTTY(out)
	return &Printer{Out: out, Err: errw, Theme: t, color: color}
}

// Plain returns a colourless Printer, mostly for tests.
func Plain(out, errw io.Writer) *Printer {
	return &Printer{Out: out, Err: errw, Theme: ThemeByName("classic")}
}

// SetColor forces colour on or off.
func (p *Printer) SetColor(on bool) { p.color = on && !p.Theme.Mono }

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// C wraps s in the colour escape when colour is on.
func (p *Printer) C(color, s string) string {
	if !p.color || color == "" {
		return s
	}
	return color + s + reset
}

func (p *Printer) OK(msg string)   { fmt.Fprintln(p.Out, p.C(p.Theme.Success, p.Theme.SymDone+" "+msg)) }
func (p *Printer) Fail(msg string) { fmt.Fprintln(p.Err, p.C(p.Theme.Error, symCrossFor(p.Theme)+" "+msg)) }

// Hint prints a muted follow-up line on the error stream.
func (p *Printer) Hint(msg string) { fmt.Fprintln(p.Err, p.C(p.Theme.Muted, "Hint: "+msg)) }

func (p *Printer) Println(s string) { fmt.Fprintln(p.Out, s) }

func symCrossFor(t Theme) string {
	if t.Mono {
		return "x"
	}
	return symCross
}
