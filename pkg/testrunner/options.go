package testrunner

import (
	"errors"
	"fmt"
	"time"
)

// TaskName is the build task that runs the unit tests. CI jobs call it by
// this name and read the report from DefaultReportPath.
const TaskName = "mocha-test"

const (
	DefaultPattern    = "test/*_test.go"
	DefaultReportPath = "test/mocha-report.xml"
	DefaultReportName = "Mocha Unit Tests"
	DefaultTimeout    = 3000 * time.Millisecond
	DefaultStackDepth = 1
)

// Interface selects how nested tests are reported.
type Interface string

const (
	// BDD reports the leaves of t.Run trees ("describe/it"); a parent that
	// only groups subtests is not a test case of its own.
	BDD Interface = "bdd"
	// TDD reports top-level TestXxx functions only.
	TDD Interface = "tdd"
)

// ReporterJUnit is the only reporter: JUnit XML for CI systems.
const ReporterJUnit = "junit"

var ErrInvalidOptions = errors.New("testrunner: invalid options")

// Options is the fixed configuration of a test run.
type Options struct {
	// Dir is the module root the pattern is matched against. "" means cwd.
	Dir string
	// Pattern is a filepath.Match glob relative to Dir. Only file names are
	// matched; contents are left to the go tool.
	Pattern string

	// Globals are environment variables passed to the test process when
	// leak checking is on. IgnoreLeaks passes the whole environment.
	Globals     []string
	IgnoreLeaks bool

	// Timeout is the per-test limit. A test running longer is failed.
	Timeout time.Duration

	UI     Interface
	Colors bool

	Reporter   string
	ReportName string
	ReportPath string // relative paths are resolved against Dir
	// StackDepth is how many output lines follow the first line of a
	// failure in the report. Negative keeps everything.
	StackDepth int
}

// DefaultOptions returns the options of the mocha-test task.
func DefaultOptions() Options {
	return Options{
		Pattern:     DefaultPattern,
		Globals:     []string{"expect"},
		IgnoreLeaks: true,
		Timeout:     DefaultTimeout,
		UI:          BDD,
		Colors:      true,
		Reporter:    ReporterJUnit,
		ReportName:  DefaultReportName,
		ReportPath:  DefaultReportPath,
		StackDepth:  DefaultStackDepth,
	}
}

func (o Options) validate() error {
	switch {
	case o.Pattern == "":
		return fmt.Errorf("%w: pattern is required", ErrInvalidOptions)
	case o.ReportPath == "":
		return fmt.Errorf("%w: report path is required", ErrInvalidOptions)
	case o.Timeout < 0:
		return fmt.Errorf("%w: negative timeout", ErrInvalidOptions)
	case o.UI != BDD && o.UI != TDD:
		return fmt.Errorf("%w: unknown interface %q", ErrInvalidOptions, o.UI)
	case o.Reporter != ReporterJUnit:
		return fmt.Errorf("%w: unknown reporter %q", ErrInvalidOptions, o.Reporter)
	}
	return nil
}
