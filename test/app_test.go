// Package test holds the acceptance suite run by the mocha-test task. It
// drives the real application handler over HTTP.
package test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/basecamp/app/routes"
	"github.com/shashiranjanraj/basecamp/pkg/app"
	"github.com/shashiranjanraj/basecamp/pkg/reqid"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(app.New().Routes(routes.Register).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, envelope) {
	t.Helper()
	resp, err := srv.Client().Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func TestHome(t *testing.T) {
	srv := newServer(t)

	t.Run("greets with the app name", func(t *testing.T) {
		resp, env := get(t, srv, "/")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		assert.JSONEq(t, `{"app":"basecamp","message":"Welcome to basecamp"}`, string(env.Data))
	})

	t.Run("tags the response with a request id", func(t *testing.T) {
		resp, _ := get(t, srv, "/")
		assert.NotEmpty(t, resp.Header.Get(reqid.Header))
	})

	t.Run("echoes an upstream request id", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/", nil)
		require.NoError(t, err)
		req.Header.Set(reqid.Header, "ci-1234")

		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, "ci-1234", resp.Header.Get(reqid.Header))
	})
}

func TestHealth(t *testing.T) {
	resp, env := get(t, newServer(t), "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(env.Data))
}

func TestUnknownRoute(t *testing.T) {
	resp, env := get(t, newServer(t), "/does-not-exist")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, http.StatusNotFound, env.Status)
	assert.Equal(t, "Not found", env.Message)
}

func TestCORSPreflight(t *testing.T) {
	srv := newServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://ci.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), http.MethodGet)
}

func TestMetricsScrape(t *testing.T) {
	srv := newServer(t)
	get(t, srv, "/health")

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), `path="/health"`), "health request should be counted")
}
