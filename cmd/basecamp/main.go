package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/basecamp/config"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "basecamp",
	Short:         "basecamp server and build tasks",
	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: loadConfig,
}

// loadConfig fails every command on a malformed config file or .env.
func loadConfig(cmd *cobra.Command, args []string) error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return nil
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Tasks
	rootCmd.AddCommand(taskListCmd)
	rootCmd.AddCommand(mochaTestCmd())
}
