package app

// kernel.go builds the http.Handler: global middleware first, then the
// metrics endpoint, then every user route callback on the root router.

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/basecamp/pkg/logger"
	"github.com/shashiranjanraj/basecamp/pkg/metrics"
	"github.com/shashiranjanraj/basecamp/pkg/middleware"
	"github.com/shashiranjanraj/basecamp/pkg/reqid"
	"github.com/shashiranjanraj/basecamp/pkg/response"
	"github.com/shashiranjanraj/basecamp/pkg/router"
)

// Handler returns the application handler. It is built once; later calls
// return the same value, so embedding harnesses and the server share it.
func (a *Application) Handler() http.Handler {
	return a.router().Handler()
}

func (a *Application) router() *router.Router {
	a.once.Do(func() {
		a.handler = buildRouter(a.routesFns)
	})
	return a.handler
}

func buildRouter(routesFns []func(*router.Router)) *router.Router {
	r := router.New()

	// Outermost first:
	//  1. metrics     accurate total latency
	//  2. request id  before anything logs
	//  3. access log  injects the request-scoped logger
	//  4. recovery    panics become JSON 500s, logged with the request id
	//  5. CORS
	//  6. rate limit
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger(logger.L))
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w)
	})
	r.Handle("/metrics", metrics.Handler())

	for _, fn := range routesFns {
		fn(r)
	}

	return r
}
