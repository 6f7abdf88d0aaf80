// internal/backends/common/exec_runner_test.go
package common

import (
	"context"
	"testing"
	"time"

	"opticx/internal/platform/errors"
	"opticx/internal/platform/logx"
	"opticx/internal/testutil"
)

func TestExecRunner_ResolveMissingBinary(t *testing.T) {
	r := NewExecRunner(logx.NewSilent(), "ghost", "definitely-not-a-real-binary")

	err := r.Resolve()

	testutil.AssertError(t, err, "missing binary fails")
	testutil.AssertTrue(t, errors.Is(err, errors.ErrBackendUnavailable), "classified as unavailable")
}

func TestExecRunner_Run(t *testing.T) {
	r := NewExecRunner(logx.NewSilent(), "shell", "sh")
	testutil.AssertNoError(t, r.Resolve(), "resolve sh")

	_, err := r.Run(context.Background(), "-c", "exit 0")
	testutil.AssertNoError(t, err, "clean exit")
}

func TestExecRunner_RunCapturesStderr(t *testing.T) {
	r := NewExecRunner(logx.NewSilent(), "shell", "sh")
	testutil.AssertNoError(t, r.Resolve(), "resolve sh")

	stderr, err := r.Run(context.Background(), "-c", "echo boom >&2; exit 3")

	testutil.AssertError(t, err, "nonzero exit fails")
	testutil.AssertTrue(t, len(stderr) > 0, "stderr tail captured")
}

func TestExecRunner_RunTimeout(t *testing.T) {
	r := NewExecRunner(logx.NewSilent(), "shell", "sh")
	testutil.AssertNoError(t, r.Resolve(), "resolve sh")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := r.Run(ctx, "-c", "sleep 5")

	testutil.AssertError(t, err, "deadline kills the process")
	testutil.AssertTrue(t, errors.Is(err, errors.ErrTimeout), "classified as timeout")
}
