package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/basecamp/pkg/task"
	"github.com/shashiranjanraj/basecamp/pkg/testrunner"
)

// basecamp task:list
var taskListCmd = &cobra.Command{
	Use:   "task:list",
	Short: "List registered build tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "TASK\tDESCRIPTION")
		for _, t := range task.All() {
			fmt.Fprintf(w, "%s\t%s\n", t.Name, t.Description)
		}
		return w.Flush()
	},
}

// mochaTestCmd exposes the mocha-test task with a flag for every runner
// option. Defaults match the CI configuration.
func mochaTestCmd() *cobra.Command {
	opts := testrunner.DefaultOptions()
	var (
		ui       string
		noColors bool
	)

	cmd := &cobra.Command{
		Use:   testrunner.TaskName,
		Short: "Run the unit tests and write a JUnit report",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.UI = testrunner.Interface(ui)
			opts.Colors = !noColors

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// Registered at run time so flag values are captured.
			reg := task.NewRegistry()
			reg.MustRegister(testrunner.Task(opts))
			return reg.Run(ctx, testrunner.TaskName)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Dir, "dir", "", "project root the pattern and report path are relative to")
	f.StringVar(&opts.Pattern, "pattern", opts.Pattern, "glob selecting test files")
	f.StringSliceVar(&opts.Globals, "globals", opts.Globals, "environment variables passed through when leak checking")
	f.BoolVar(&opts.IgnoreLeaks, "ignore-leaks", opts.IgnoreLeaks, "pass the full environment to the test process")
	f.DurationVar(&opts.Timeout, "timeout", opts.Timeout, "per-test timeout")
	f.StringVar(&ui, "ui", string(opts.UI), "interface: bdd or tdd")
	f.BoolVar(&noColors, "no-colors", false, "disable colored output")
	f.StringVar(&opts.Reporter, "reporter", opts.Reporter, "report format")
	f.StringVar(&opts.ReportName, "report-name", opts.ReportName, "test suites name in the report")
	f.StringVar(&opts.ReportPath, "report", opts.ReportPath, "report destination")
	f.IntVar(&opts.StackDepth, "stack", opts.StackDepth, "failure lines kept after the message (-1 keeps all)")
	return cmd
}

func init() {
	task.MustRegister(testrunner.Task(testrunner.DefaultOptions()))
}
