// Package common provides shared plumbing for capture backends that wrap
// external binaries.
package common

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"sync"

	"opticx/internal/platform/errors"
	"opticx/internal/platform/logx"
)

// ExecRunner handles subprocess execution for CLI-based capture backends:
// binary resolution, stderr capture, context cancellation and cleanup.
//
// Usage:
//  1. Create with NewExecRunner
//  2. Call Resolve() once (typically from the backend's Init)
//  3. Call Run() per capture
type ExecRunner struct {
	logger   logx.Logger
	execPath string

	mu       sync.Mutex
	resolved string
	active   map[*exec.Cmd]struct{}
}

// NewExecRunner creates a runner for the given binary name or path.
func NewExecRunner(logger logx.Logger, backendName, execPath string) *ExecRunner {
	return &ExecRunner{
		logger:   logger.With("backend", backendName),
		execPath: execPath,
		active:   make(map[*exec.Cmd]struct{}),
	}
}

// Resolve locates the binary via LookPath. Failure means the backend is
// unavailable on this system.
func (r *ExecRunner) Resolve() error {
	path, err := exec.LookPath(r.execPath)
	if err != nil {
		return errors.Wrapf(errors.ErrBackendUnavailable, "binary %q not found in PATH", r.execPath)
	}

	r.mu.Lock()
	r.resolved = path
	r.mu.Unlock()

	r.logger.Debug("binary resolved", "path", path)
	return nil
}

// Run executes the binary with the given arguments and waits for it.
// Returns the captured stderr (trimmed, for diagnostics) and an error:
// errors.ErrTimeout when the context deadline killed the process, or a
// wrapped exit error otherwise.
func (r *ExecRunner) Run(ctx context.Context, args ...string) (string, error) {
	r.mu.Lock()
	path := r.resolved
	r.mu.Unlock()
	if path == "" {
		return "", errors.Wrap(errors.ErrBackendUnavailable, "runner not resolved, call Resolve first")
	}

	cmd := exec.CommandContext(ctx, path, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	// Workers may run captures concurrently; track every live subprocess
	// so Close can kill them all.
	r.mu.Lock()
	r.active[cmd] = struct{}{}
	r.mu.Unlock()

	r.logger.Debug("executing", "path", path, "args", strings.Join(args, " "))

	err := cmd.Run()

	r.mu.Lock()
	delete(r.active, cmd)
	r.mu.Unlock()

	captured := tail(stderr.String(), 512)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return captured, errors.ErrTimeout
		}
		if ctx.Err() == context.Canceled {
			return captured, errors.Wrap(ctx.Err(), "capture cancelled")
		}
		return captured, errors.Wrapf(err, "%s exited", r.execPath)
	}
	return captured, nil
}

// Close kills any still-running subprocesses.
func (r *ExecRunner) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for cmd := range r.active {
		if cmd.Process != nil {
			r.logger.Debug("killing subprocess", "pid", cmd.Process.Pid)
			if err := cmd.Process.Kill(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// tail keeps the last n bytes of s, trimmed. Renderer binaries can be very
// chatty on stderr; only the end is useful in a log line.
func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) > n {
		s = "..." + s[len(s)-n:]
	}
	return s
}
