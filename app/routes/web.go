package routes

import (
	"github.com/shashiranjanraj/basecamp/app/controllers"
	"github.com/shashiranjanraj/basecamp/pkg/router"
)

// Register mounts the application routes on the root router.
func Register(r *router.Router) {
	home := controllers.NewHomeController()

	r.Get("/", "home", home.Index)
	r.Get("/health", "health", home.Health)
}
