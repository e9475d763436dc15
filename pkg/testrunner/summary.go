package testrunner

import (
	"fmt"
	"time"

	"github.com/fatih/color"
)

// summarize prints a mocha-style tail: passing, pending, failing.
func (r *Runner) summarize(res Result, failed []string) {
	pass := color.New(color.FgGreen)
	pend := color.New(color.FgCyan)
	fail := color.New(color.FgRed)
	dim := color.New(color.Faint)
	if !r.opts.Colors {
		for _, c := range []*color.Color{pass, pend, fail, dim} {
			c.DisableColor()
		}
	}

	fmt.Fprintln(r.out)
	pass.Fprintf(r.out, "  %d passing", res.Passed)
	dim.Fprintf(r.out, " (%s)\n", res.Duration.Round(time.Millisecond))
	if res.Skipped > 0 {
		pend.Fprintf(r.out, "  %d pending\n", res.Skipped)
	}
	if res.Failed > 0 {
		fail.Fprintf(r.out, "  %d failing\n", res.Failed)
		fmt.Fprintln(r.out)
		for i, name := range failed {
			fail.Fprintf(r.out, "  %d) %s\n", i+1, name)
		}
	}
	fmt.Fprintln(r.out)
}
