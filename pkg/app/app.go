// Package app provides the basecamp application builder.
//
//	func main() {
//	    app.New().Routes(routes.Register).Run()
//	}
//
// Run dispatches on os.Args[1]:
//
//	serve        bind :8080 and serve until SIGINT/SIGTERM (default)
//	route:list   print the registered routes
//
// Tests drive the same handler without binding a port:
//
//	h := app.New().Routes(routes.Register).Handler()
//	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/shashiranjanraj/basecamp/config"
	"github.com/shashiranjanraj/basecamp/pkg/logger"
	"github.com/shashiranjanraj/basecamp/pkg/router"
)

// DefaultAddr is where the server listens. The port is fixed.
const DefaultAddr = ":8080"

// ErrUnknownCommand is returned by Run for an unrecognised os.Args[1].
var ErrUnknownCommand = errors.New("app: unknown command")

// Application is the central configuration object. Build one with New(),
// attach routes, then call Run() or Serve().
type Application struct {
	routesFns []func(*router.Router)
	addr      string

	once    sync.Once
	handler *router.Router
}

// New creates an Application listening on DefaultAddr.
func New() *Application {
	return &Application{addr: DefaultAddr}
}

// Routes registers a route-registration callback, called when the handler
// is built. Callbacks run in the order they were added.
func (a *Application) Routes(fn func(*router.Router)) *Application {
	a.routesFns = append(a.routesFns, fn)
	return a
}

// Listen overrides the listen address. Tests use "127.0.0.1:0".
func (a *Application) Listen(addr string) *Application {
	a.addr = addr
	return a
}

// Addr returns the configured listen address.
func (a *Application) Addr() string {
	return a.addr
}

// Run reads os.Args and dispatches to the matching command. Errors are
// fatal: they are logged and the process exits with status 1.
func (a *Application) Run() {
	if err := a.run(os.Args[1:], os.Stdout); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func (a *Application) run(args []string, w io.Writer) error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	cmd := "serve"
	if len(args) > 0 {
		cmd = args[0]
	}

	switch cmd {
	case "serve", "start", "run", "s":
		return a.ServeUntilSignal()
	case "route:list", "routes":
		return a.PrintRoutes(w)
	case "help", "--help", "-h":
		printHelp(w)
		return nil
	default:
		return fmt.Errorf("%w: %q (run with --help for usage)", ErrUnknownCommand, cmd)
	}
}

// PrintRoutes writes the route table built from the registered callbacks.
func (a *Application) PrintRoutes(w io.Writer) error {
	routes := a.router().Routes()
	if len(routes) == 0 {
		_, err := fmt.Fprintln(w, "No routes registered.")
		return err
	}

	fmt.Fprintf(w, "%-8s  %-40s  %s\n", "METHOD", "PATH", "NAME")
	for _, ri := range routes {
		fmt.Fprintf(w, "%-8s  %-40s  %s\n", ri.Method, ri.Path, ri.Name)
	}
	return nil
}

func printHelp(w io.Writer) {
	fmt.Fprint(w, `Usage:
  <program> <command>

Commands:
  serve        Start the HTTP server on :8080  (aliases: start, run)
  route:list   List registered routes

`)
}
