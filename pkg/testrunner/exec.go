package testrunner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Executor runs the test binaries for packages and returns the
// `go test -json` event stream. A non-nil error together with output means
// the tests ran and at least one failed.
type Executor interface {
	Exec(ctx context.Context, req ExecRequest) ([]byte, error)
}

type ExecRequest struct {
	Dir      string
	Packages []string
	Env      []string

	// Timeout is passed as go test -timeout. Zero keeps the go default.
	Timeout time.Duration
}

// GoTest runs `go test -json` from the go tool on PATH (or GoBin).
type GoTest struct {
	GoBin string
}

func (g GoTest) Exec(ctx context.Context, req ExecRequest) ([]byte, error) {
	bin := g.GoBin
	if bin == "" {
		bin = "go"
	}

	args := goTestArgs(req)
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = req.Dir
	cmd.Env = req.Env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil && stdout.Len() == 0 {
		return nil, fmt.Errorf("%s %s: %w: %s", bin, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), err
}

func goTestArgs(req ExecRequest) []string {
	args := []string{"test", "-json", "-count=1"}
	if req.Timeout > 0 {
		args = append(args, "-timeout="+req.Timeout.String())
	}
	return append(args, req.Packages...)
}

// binaryTimeout is the deadline for a whole test binary. A hung test is
// killed at this point and reported without a result; the per-test timeout
// is still applied when the report is shaped.
func binaryTimeout(perTest time.Duration) time.Duration {
	if perTest <= 0 {
		return 0
	}
	return max(minBinaryTimeout, binaryTimeoutFactor*perTest)
}

const (
	binaryTimeoutFactor = 20
	minBinaryTimeout    = time.Minute
)

// toolchainEnv is what the go tool needs to build and run tests at all.
var toolchainEnv = []string{
	"PATH", "HOME", "TMPDIR",
	"GOROOT", "GOPATH", "GOCACHE", "GOMODCACHE", "GOFLAGS", "GOPROXY", "GOPRIVATE", "GOTOOLCHAIN",
}

// environ builds the test process environment. With leak checking on, only
// the toolchain variables and the whitelisted globals get through.
func environ(opts Options) []string {
	if opts.IgnoreLeaks {
		return os.Environ()
	}

	var env []string
	for _, group := range [][]string{toolchainEnv, opts.Globals} {
		for _, key := range group {
			if v, ok := os.LookupEnv(key); ok {
				env = append(env, key+"="+v)
			}
		}
	}
	return env
}
