package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/basecamp/config"
	"github.com/shashiranjanraj/basecamp/pkg/response"
)

type HomeController struct {
	appName string
}

func NewHomeController() *HomeController {
	return &HomeController{appName: config.AppName()}
}

// Index answers GET /.
func (c *HomeController) Index(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"app":     c.appName,
		"message": "Welcome to " + c.appName,
	})
}

// Health answers GET /health for load balancers and process managers.
func (c *HomeController) Health(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{"status": "ok"})
}
