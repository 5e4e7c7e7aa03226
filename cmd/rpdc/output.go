package main

import (
	"fmt"
	"io"

	"github.com/labstack/gommon/color"
)

type stdPrinter struct {
	out io.Writer
}

func (s stdPrinter) Println(a ...interface{}) (n int, err error) {
	return fmt.Fprintln(s.out, a...)
}

// colorReporter writes diagnostics as "[line N] Error<where>: message"
type colorReporter struct {
	out   io.Writer
	color *color.Color
}

func newColorReporter(out io.Writer, enabled bool) *colorReporter {
	c := color.New()
	// Disables itself unless out is a terminal
	c.SetOutput(out)
	if !enabled {
		c.Disable()
	}
	return &colorReporter{
		out:   out,
		color: c,
	}
}

func (r *colorReporter) Report(line int, where, message string) {
	fmt.Fprintf(
		r.out,
		"%s %s%s: %s\n",
		r.color.Dim(fmt.Sprintf("[line %d]", line)),
		r.color.Red("Error"),
		where,
		message,
	)
}

// Errorf reports a failure that is not tied to a source line
func (r *colorReporter) Errorf(format string, a ...interface{}) {
	fmt.Fprintf(r.out, "%s: %s\n", r.color.Red("error"), fmt.Sprintf(format, a...))
}
