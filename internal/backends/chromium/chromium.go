// internal/backends/chromium/chromium.go

// Package chromium captures web targets by driving a headless
// Chromium/Chrome binary one URL at a time.
package chromium

import (
	"context"
	"fmt"
	"os"

	"opticx/internal/adapters/output"
	"opticx/internal/backends/common"
	"opticx/internal/core/domain"
	"opticx/internal/platform/errors"
	"opticx/internal/platform/logx"
)

const (
	defaultExec       = "chromium"
	defaultWindowSize = "1600,900"
)

// Backend renders pages with a headless browser. The browser process is the
// single session handle of the web pipeline: it must never be driven from
// concurrent callers, which the sequential pipeline guarantees.
type Backend struct {
	logger     logx.Logger
	runner     *common.ExecRunner
	windowSize string
	extraArgs  []string
}

// New creates a chromium backend.
func New(logger logx.Logger, execPath, windowSize string, extraArgs []string) *Backend {
	if execPath == "" {
		execPath = defaultExec
	}
	if windowSize == "" {
		windowSize = defaultWindowSize
	}

	return &Backend{
		logger:     logger.With("backend", "chromium"),
		runner:     common.NewExecRunner(logger, "chromium", execPath),
		windowSize: windowSize,
		extraArgs:  extraArgs,
	}
}

func (b *Backend) Name() string            { return "chromium" }
func (b *Backend) Kind() domain.TargetKind { return domain.KindWeb }

// Init resolves the browser binary. A missing binary is a backend
// availability failure, surfaced before the first target is attempted.
func (b *Backend) Init(ctx context.Context) error {
	return b.runner.Resolve()
}

// Capture renders one URL to a PNG inside outDir.
//
// Severity: renderer failures (bad TLS, unresponsive server, crash) are
// per-target; a missing or empty output file after a successful render is a
// systemic persistence failure.
func (b *Backend) Capture(ctx context.Context, target domain.Target, outDir string) error {
	web, ok := target.(domain.WebTarget)
	if !ok {
		return domain.PerTarget(fmt.Errorf("%w: got %s", domain.ErrWrongTargetKind, target.Kind()))
	}

	outFile := output.ImagePath(outDir, web)
	args := b.buildArgs(web, outFile)

	stderr, err := b.runner.Run(ctx, args...)
	if err != nil {
		if stderr != "" {
			b.logger.Debug("renderer stderr", "target", web.URL, "stderr", stderr)
		}
		return domain.PerTarget(errors.Wrapf(err, "rendering %s", web.URL))
	}

	info, err := os.Stat(outFile)
	if err != nil {
		return domain.Systemic(errors.Wrapf(errors.ErrOutputWrite, "missing %s: %v", outFile, err))
	}
	if info.Size() == 0 {
		return domain.Systemic(errors.Wrapf(errors.ErrOutputWrite, "empty image %s", outFile))
	}

	b.logger.Debug("image written", "target", web.URL, "file", outFile, "bytes", info.Size())
	return nil
}

// Close kills a renderer still in flight, if any.
func (b *Backend) Close() error {
	return b.runner.Close()
}

func (b *Backend) buildArgs(target domain.WebTarget, outFile string) []string {
	args := []string{
		"--headless",
		"--disable-gpu",
		"--hide-scrollbars",
		"--no-first-run",
		"--window-size=" + b.windowSize,
		"--screenshot=" + outFile,
	}
	args = append(args, b.extraArgs...)
	args = append(args, target.URL)
	return args
}
