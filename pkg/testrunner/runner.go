// Package testrunner runs the Go unit tests matched by a file glob and writes
// a JUnit XML report, the way CI expects from the mocha-test task.
//
// The pipeline is sequential: glob → go test -json → shape → report.
//
//	res, err := testrunner.New(testrunner.DefaultOptions()).Run(ctx)
//	if errors.Is(err, testrunner.ErrTestsFailed) {
//	    // res.Failed cases are marked <failure> in res.ReportPath
//	}
package testrunner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/jstemmer/go-junit-report/v2/gtr"

	"github.com/shashiranjanraj/basecamp/pkg/logger"
	"github.com/shashiranjanraj/basecamp/pkg/metrics"
	"github.com/shashiranjanraj/basecamp/pkg/task"
)

// ErrTestsFailed is returned when any case failed or the test process
// exited non-zero. The report is written before it is returned.
var ErrTestsFailed = errors.New("testrunner: tests failed")

// Result summarises one run.
type Result struct {
	Files      []string
	Packages   []string
	Passed     int
	Failed     int
	Skipped    int
	ReportPath string
	Duration   time.Duration
}

// Total is the number of test cases in the report.
func (r Result) Total() int {
	return r.Passed + r.Failed + r.Skipped
}

type Option func(*Runner)

// WithExecutor replaces `go test` (tests inject canned event streams).
func WithExecutor(e Executor) Option {
	return func(r *Runner) { r.exec = e }
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.log = l }
}

// WithOutput sets where the console summary goes. Default os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) { r.out = w }
}

type Runner struct {
	opts Options
	exec Executor
	log  *slog.Logger
	out  io.Writer
}

func New(opts Options, ropts ...Option) *Runner {
	r := &Runner{
		opts: opts,
		exec: GoTest{},
		log:  logger.L,
		out:  os.Stdout,
	}
	for _, o := range ropts {
		o(r)
	}
	return r
}

// Run executes the pipeline once. Report write failures are returned as-is;
// nothing is retried.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	if err := r.opts.validate(); err != nil {
		return Result{}, err
	}

	start := time.Now()
	res := Result{ReportPath: r.reportPath()}

	files, pkgs, err := Discover(r.opts.Dir, r.opts.Pattern)
	if err != nil {
		return res, err
	}
	res.Files, res.Packages = files, pkgs

	var (
		report     gtr.Report
		procFailed bool
	)
	if len(pkgs) == 0 {
		r.log.Info("no test files matched", "pattern", r.opts.Pattern)
	} else {
		r.log.Info("running tests", "files", len(files), "packages", pkgs)

		out, err := r.exec.Exec(ctx, ExecRequest{
			Dir:      r.opts.Dir,
			Packages: pkgs,
			Env:      environ(r.opts),
			Timeout:  binaryTimeout(r.opts.Timeout),
		})
		var exitErr *exec.ExitError
		switch {
		case err == nil:
		case errors.As(err, &exitErr):
			procFailed = true
			r.log.Warn("test process exited non-zero", "error", err)
		default:
			return res, fmt.Errorf("run tests: %w", err)
		}

		report, err = Parse(bytes.NewReader(out))
		if err != nil {
			return res, err
		}
		shape(&report, r.opts)
	}

	if err := WriteReport(res.ReportPath, r.opts.ReportName, report); err != nil {
		return res, err
	}

	res.Passed, res.Failed, res.Skipped = tally(report)
	res.Duration = time.Since(start)
	metrics.RecordTestRun(res.Passed, res.Failed, res.Skipped, res.Duration)

	r.summarize(res, failures(report))
	r.log.Info("report written", "path", res.ReportPath, "tests", res.Total(), "failures", res.Failed)

	if res.Failed > 0 || procFailed {
		return res, ErrTestsFailed
	}
	return res, nil
}

func (r *Runner) reportPath() string {
	if filepath.IsAbs(r.opts.ReportPath) || r.opts.Dir == "" {
		return r.opts.ReportPath
	}
	return filepath.Join(r.opts.Dir, r.opts.ReportPath)
}

// Task wraps a runner with opts as a registrable build task.
func Task(opts Options, ropts ...Option) task.Task {
	return task.Task{
		Name:        TaskName,
		Description: fmt.Sprintf("Run %s and write a JUnit report to %s", opts.Pattern, opts.ReportPath),
		Run: func(ctx context.Context) error {
			_, err := New(opts, ropts...).Run(ctx)
			return err
		},
	}
}
