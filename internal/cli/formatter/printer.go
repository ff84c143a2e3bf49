package formatter

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer writes status messages. Warnings and errors go to the error
// stream.
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

// ResolveColors reports whether colored output should be used: never with
// NO_COLOR set or TERM=dumb, otherwise only on a terminal.
func ResolveColors(lookup func(string) (string, bool), isTerminal bool) bool {
	if _, ok := lookup("NO_COLOR"); ok {
		return false
	}
	if term, _ := lookup("TERM"); term == "dumb" {
		return false
	}
	return isTerminal
}

func NewPrinter(out, err io.Writer, useColors bool) *Printer {
	return &Printer{out: out, err: err, useColors: useColors}
}

func (p *Printer) Info(format string, args ...any) {
	p.print(p.out, color.FgCyan, format, args...)
}

func (p *Printer) Success(format string, args ...any) {
	p.print(p.out, color.FgGreen, format, args...)
}

func (p *Printer) Warn(format string, args ...any) {
	p.print(p.err, color.FgYellow, format, args...)
}

func (p *Printer) Error(format string, args ...any) {
	p.print(p.err, color.FgRed, format, args...)
}

// Plain writes to the output stream without color.
func (p *Printer) Plain(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) print(w io.Writer, attr color.Attribute, format string, args ...any) {
	c := color.New(attr)
	if p.useColors {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	c.Fprintf(w, format+"\n", args...)
}
