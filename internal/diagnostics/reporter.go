package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// ColorMode controls whether the reporter decorates the locus prefix.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

const (
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// Reporter is the diagnostic sink: it writes one line per diagnostic and
// counts them. With MaxErrors > 0, reporting stops after that many lines
// (the count keeps growing so the driver still sees the true total).
type Reporter struct {
	out        io.Writer
	count      int
	suppressed int
	useColor   bool
	MaxErrors  int
}

func NewReporter(out io.Writer) *Reporter {
	r := &Reporter{out: out}
	r.SetColorMode(ColorAuto)
	return r
}

func (r *Reporter) SetColorMode(mode ColorMode) {
	switch mode {
	case ColorAlways:
		r.useColor = true
	case ColorNever:
		r.useColor = false
	default:
		f, ok := r.out.(*os.File)
		r.useColor = ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
	}
}

// Report writes the diagnostic and bumps the error count.
func (r *Reporter) Report(err *DiagnosticError) {
	r.count++
	if r.MaxErrors > 0 && r.count > r.MaxErrors {
		r.suppressed++
		return
	}
	if r.useColor && err.HasLocus() {
		fmt.Fprintf(r.out, "%s%s:%d:%s %s\n", ansiRed, err.File, err.Token.Line, ansiReset, err.Message)
		return
	}
	fmt.Fprintf(r.out, "%s\n", err.Error())
}

// ReportAll reports a batch in order.
func (r *Reporter) ReportAll(errs []*DiagnosticError) {
	for _, e := range errs {
		r.Report(e)
	}
}

// Errors returns the number of diagnostics seen, including suppressed ones.
func (r *Reporter) Errors() int { return r.count }

// Flush writes a trailer when diagnostics were suppressed by MaxErrors.
func (r *Reporter) Flush() {
	if r.suppressed > 0 {
		fmt.Fprintf(r.out, "... and %d more errors\n", r.suppressed)
	}
}
