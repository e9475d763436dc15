// Command server is the production entry point: it builds the application,
// mounts the routes at "/" and serves on :8080.
package main

import (
	"github.com/shashiranjanraj/basecamp/app/routes"
	"github.com/shashiranjanraj/basecamp/pkg/app"
)

func main() {
	app.New().Routes(routes.Register).Run()
}
