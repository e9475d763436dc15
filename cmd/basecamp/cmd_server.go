package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/basecamp/app/routes"
	"github.com/shashiranjanraj/basecamp/pkg/app"
)

func newApp() *app.Application {
	return app.New().Routes(routes.Register)
}

// basecamp serve
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run", "start"},
	Short:   "Start the HTTP server on " + app.DefaultAddr,
	RunE: func(cmd *cobra.Command, args []string) error {
		return newApp().ServeUntilSignal()
	},
}

// basecamp route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return newApp().PrintRoutes(os.Stdout)
	},
}
