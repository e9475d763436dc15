package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}
}

func do(h http.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestRouter_MethodsAndNames(t *testing.T) {
	r := New()
	r.Get("/", "home", ok("home"))
	r.Post("items", "items.create", ok("created"))
	r.Put("/items/{id}", "items.replace", ok("replaced"))
	r.Patch("/items/{id}", "items.update", ok("updated"))
	r.Delete("/items/{id}", "items.delete", ok("deleted"))

	assert.Equal(t, "home", do(r.Handler(), http.MethodGet, "/").Body.String())
	assert.Equal(t, "created", do(r.Handler(), http.MethodPost, "/items").Body.String())
	assert.Equal(t, "replaced", do(r.Handler(), http.MethodPut, "/items/7").Body.String())
	assert.Equal(t, "updated", do(r.Handler(), http.MethodPatch, "/items/7").Body.String())
	assert.Equal(t, "deleted", do(r.Handler(), http.MethodDelete, "/items/7").Body.String())
	assert.Equal(t, http.StatusMethodNotAllowed, do(r.Handler(), http.MethodGet, "/items").Code)

	path, found := r.Path("items.create")
	require.True(t, found)
	assert.Equal(t, "/items", path)
}

func TestRouter_URL(t *testing.T) {
	r := New()
	r.Get("/items/{id}", "items.show", ok(""))

	url, err := r.URL("items.show", map[string]string{"id": "42"})
	require.NoError(t, err)
	assert.Equal(t, "/items/42", url)

	_, err = r.URL("items.show", nil)
	assert.Error(t, err)

	_, err = r.URL("missing", nil)
	assert.Error(t, err)
}

func TestRouter_GroupMiddlewareOrder(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, req)
			})
		}
	}

	r := New()
	api := r.Group("/api", tag("group"))
	api.Group("v1").Get("/ping", "ping", ok("pong"), tag("route"))

	rec := do(r.Handler(), http.MethodGet, "/api/v1/ping")
	assert.Equal(t, "pong", rec.Body.String())
	assert.Equal(t, []string{"group", "route"}, order)
}

func TestRouter_MountAtRoot(t *testing.T) {
	sub := New()
	sub.Get("/hello", "hello", ok("hi"))

	r := New()
	r.Mount("/", sub.Handler())

	assert.Equal(t, "hi", do(r.Handler(), http.MethodGet, "/hello").Body.String())
}

func TestRouter_Routes(t *testing.T) {
	r := New()
	r.Get("/b", "b", ok(""))
	r.Get("/a", "a", ok(""))
	r.Post("/a", "", ok(""))

	assert.Equal(t, []RouteInfo{
		{Method: http.MethodGet, Path: "/a", Name: "a"},
		{Method: http.MethodPost, Path: "/a"},
		{Method: http.MethodGet, Path: "/b", Name: "b"},
	}, r.Routes())
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "/", joinPath())
	assert.Equal(t, "/", joinPath("", "/"))
	assert.Equal(t, "/api/v1/users", joinPath("/api/", "v1", "/users/"))
}
