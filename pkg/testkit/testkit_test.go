package testkit_test

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/basecamp/pkg/testkit"
)

// testHandler is a tiny handler that powers the testkit self-tests.
var testHandler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/health":
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	case r.URL.Path == "/echo" && r.Method == http.MethodPost:
		io.Copy(w, r.Body) //nolint:errcheck
	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`)) //nolint:errcheck
	}
})

func TestRunDir(t *testing.T) {
	testkit.RunDir(t, testHandler, "testdata")
}

func TestRun_SingleScenario(t *testing.T) {
	testkit.Run(t, testHandler, "testdata/health.json")
}

func TestLoadScenario_Defaults(t *testing.T) {
	s, err := testkit.LoadScenario("testdata/echo.json")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, s.RequestMethod)
	assert.True(t, filepath.IsAbs(s.RequestBodyPath()))
	assert.Equal(t, "echo_res.json", filepath.Base(s.ResponseBodyPath()))

	s, err = testkit.LoadScenario("testdata/health.json")
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, s.RequestMethod)
	assert.Empty(t, s.RequestBodyPath())
}

func TestLoadScenario_Invalid(t *testing.T) {
	dir := t.TempDir()

	cases := map[string]string{
		"noname.json": `{"requestUrl": "/", "expectedCode": 200}`,
		"nourl.json":  `{"name": "x", "expectedCode": 200}`,
		"nocode.json": `{"name": "x", "requestUrl": "/"}`,
		"broken.json": `{"name": `,
	}
	for file, body := range cases {
		path := filepath.Join(dir, file)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

		_, err := testkit.LoadScenario(path)
		assert.Error(t, err, file)
	}

	scenarios, errs := testkit.LoadAllFromDir(dir)
	assert.Empty(t, scenarios)
	assert.Len(t, errs, len(cases))
}

func TestLoadAllFromDir_Empty(t *testing.T) {
	_, errs := testkit.LoadAllFromDir(t.TempDir())
	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], testkit.ErrNoScenarios))
}

func TestDo_ReturnsRecorder(t *testing.T) {
	s, err := testkit.LoadScenario("testdata/echo.json")
	require.NoError(t, err)

	rec, err := testkit.Do(testHandler, s)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"hello"}`, rec.Body.String())
}

func TestDumpScenario(t *testing.T) {
	s, err := testkit.LoadScenario("testdata/health.json")
	require.NoError(t, err)

	var buf bytes.Buffer
	testkit.DumpScenario(&buf, s)
	assert.Contains(t, buf.String(), "GET /health → 200")
}
