package testkit

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

// Run executes the scenario at scenarioPath against handler as a subtest.
func Run(t *testing.T, handler http.Handler, scenarioPath string) {
	t.Helper()

	s, err := LoadScenario(scenarioPath)
	if err != nil {
		t.Fatalf("%v", err)
	}

	t.Run(s.Name, func(t *testing.T) {
		runScenario(t, handler, s)
	})
}

// RunDir runs every scenario in dir as a subtest. Scenario files that fail
// to parse are reported as failures, not fatals.
func RunDir(t *testing.T, handler http.Handler, dir string) {
	t.Helper()

	scenarios, errs := LoadAllFromDir(dir)
	for _, err := range errs {
		t.Errorf("%v", err)
	}

	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			runScenario(t, handler, s)
		})
	}
}

// Do fires the scenario's request at handler and returns the recorder.
func Do(handler http.Handler, s *Scenario) (*httptest.ResponseRecorder, error) {
	var body io.Reader
	if p := s.RequestBodyPath(); p != "" {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read request file %q: %w", p, err)
		}
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(s.RequestMethod, s.RequestURL, body)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range s.Headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, nil
}

func runScenario(t *testing.T, handler http.Handler, s *Scenario) {
	t.Helper()

	rec, err := Do(handler, s)
	if err != nil {
		t.Fatalf("[%s] %v", s.Name, err)
	}

	AssertStatusCode(t, s, rec.Code)
	AssertHeaders(t, s, rec.Header())

	if p := s.ResponseBodyPath(); p != "" {
		expected, err := os.ReadFile(p)
		if err != nil {
			t.Errorf("[%s] read response file %q: %v", s.Name, p, err)
			return
		}
		AssertJSONBody(t, s, expected, rec.Body.Bytes())
	}
}

// DumpScenario prints a human-readable summary of the scenario to w.
func DumpScenario(w io.Writer, s *Scenario) {
	fmt.Fprintf(w, "Scenario: %s\n", s.Name)
	fmt.Fprintf(w, "  %s %s → %d\n", s.RequestMethod, s.RequestURL, s.ExpectedCode)
	if s.RequestFileName != "" {
		fmt.Fprintf(w, "  requestFile:  %s\n", s.RequestFileName)
	}
	if s.ResponseFileName != "" {
		fmt.Fprintf(w, "  responseFile: %s\n", s.ResponseFileName)
	}
}
