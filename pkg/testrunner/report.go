package testrunner

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jstemmer/go-junit-report/v2/gtr"
	"github.com/jstemmer/go-junit-report/v2/junit"
	"github.com/jstemmer/go-junit-report/v2/parser/gotest"
)

// Parse reads a `go test -json` event stream.
func Parse(r io.Reader) (gtr.Report, error) {
	report, err := gotest.NewJSONParser().Parse(r)
	if err != nil {
		return gtr.Report{}, fmt.Errorf("parse test events: %w", err)
	}
	return report, nil
}

// shape applies the interface, timeout and stack depth options in place.
func shape(report *gtr.Report, opts Options) {
	for i := range report.Packages {
		pkg := &report.Packages[i]

		switch opts.UI {
		case TDD:
			pkg.Tests = topLevel(pkg.Tests)
		default:
			pkg.Tests = leaves(pkg.Tests)
		}

		for j := range pkg.Tests {
			test := &pkg.Tests[j]
			if opts.Timeout > 0 && test.Result == gtr.Pass && test.Duration > opts.Timeout {
				test.Result = gtr.Fail
				test.Output = append(test.Output, timeoutMessage(opts.Timeout))
			}
			if test.Result == gtr.Fail {
				test.Output = trimStack(test.Output, opts.StackDepth)
			}
		}
	}
}

func topLevel(tests []gtr.Test) []gtr.Test {
	out := tests[:0:0]
	for _, t := range tests {
		if !strings.Contains(t.Name, "/") {
			out = append(out, t)
		}
	}
	return out
}

// leaves drops tests that only group subtests. A parent that failed while
// every child passed keeps its own case so the failure is not lost.
func leaves(tests []gtr.Test) []gtr.Test {
	childFailed := make(map[string]bool)
	hasChild := make(map[string]bool)
	for _, t := range tests {
		for parent := parentName(t.Name); parent != ""; parent = parentName(parent) {
			hasChild[parent] = true
			if t.Result == gtr.Fail {
				childFailed[parent] = true
			}
		}
	}

	out := tests[:0:0]
	for _, t := range tests {
		if hasChild[t.Name] && (t.Result != gtr.Fail || childFailed[t.Name]) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func parentName(name string) string {
	i := strings.LastIndexByte(name, '/')
	if i < 0 {
		return ""
	}
	return name[:i]
}

func timeoutMessage(d time.Duration) string {
	return fmt.Sprintf("timeout of %dms exceeded", d.Milliseconds())
}

// trimStack keeps the first non-blank line plus depth more lines.
func trimStack(lines []string, depth int) []string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	lines = lines[start:]
	if depth < 0 || len(lines) <= depth+1 {
		return lines
	}
	return lines[:depth+1]
}

// tally counts cases as the JUnit report will show them. Tests without a
// result never finished and count as failures, as do packages that failed
// to build or whose test binary failed outside any test.
func tally(report gtr.Report) (passed, failed, skipped int) {
	for _, pkg := range report.Packages {
		for _, t := range pkg.Tests {
			switch t.Result {
			case gtr.Pass:
				passed++
			case gtr.Skip:
				skipped++
			default:
				failed++
			}
		}
		failed += len(packageErrors(pkg))
	}
	return passed, failed, skipped
}

// failures lists the names of failed cases, package-qualified.
func failures(report gtr.Report) []string {
	var names []string
	for _, pkg := range report.Packages {
		for _, t := range pkg.Tests {
			if t.Result != gtr.Pass && t.Result != gtr.Skip {
				names = append(names, pkg.Name+"."+t.Name)
			}
		}
		names = append(names, packageErrors(pkg)...)
	}
	return names
}

// packageErrors names the package-level errors junit.CreateFromReport turns
// into error cases.
func packageErrors(pkg gtr.Package) []string {
	name := pkg.Name
	var errs []string
	if pkg.BuildError.Name != "" {
		if name == "" {
			name = pkg.BuildError.Name
		}
		errs = append(errs, name+" [build failed]")
	}
	if pkg.RunError.Name != "" {
		if name == "" {
			name = pkg.RunError.Name
		}
		errs = append(errs, name+" [run failed]")
	}
	return errs
}

// WriteReport renders report as JUnit XML at path, creating parent
// directories. The file is replaced only after rendering succeeds.
func WriteReport(path, name string, report gtr.Report) error {
	hostname, _ := os.Hostname()
	suites := junit.CreateFromReport(report, hostname)
	suites.Name = name

	var buf bytes.Buffer
	if err := suites.WriteXML(&buf); err != nil {
		return fmt.Errorf("render junit report: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
