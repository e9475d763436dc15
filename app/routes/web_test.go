package routes_test

import (
	"testing"

	"github.com/shashiranjanraj/basecamp/app/routes"
	"github.com/shashiranjanraj/basecamp/pkg/app"
	"github.com/shashiranjanraj/basecamp/pkg/testkit"
)

func TestRoutes(t *testing.T) {
	handler := app.New().Routes(routes.Register).Handler()
	testkit.RunDir(t, handler, "testdata")
}
