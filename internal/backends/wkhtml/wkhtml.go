// internal/backends/wkhtml/wkhtml.go

// Package wkhtml captures web targets through the wkhtmltoimage binary, as
// an alternative to the headless-browser backend on hosts without Chromium.
package wkhtml

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"opticx/internal/adapters/output"
	"opticx/internal/backends/common"
	"opticx/internal/core/domain"
	"opticx/internal/platform/errors"
	"opticx/internal/platform/logx"
)

const (
	defaultExec    = "wkhtmltoimage"
	defaultQuality = 85
)

// Backend renders pages with wkhtmltoimage.
type Backend struct {
	logger  logx.Logger
	runner  *common.ExecRunner
	quality int
}

// New creates a wkhtml backend.
func New(logger logx.Logger, execPath string, quality int) *Backend {
	if execPath == "" {
		execPath = defaultExec
	}
	if quality <= 0 || quality > 100 {
		quality = defaultQuality
	}

	return &Backend{
		logger:  logger.With("backend", "wkhtml"),
		runner:  common.NewExecRunner(logger, "wkhtml", execPath),
		quality: quality,
	}
}

func (b *Backend) Name() string            { return "wkhtml" }
func (b *Backend) Kind() domain.TargetKind { return domain.KindWeb }

// Init resolves the wkhtmltoimage binary.
func (b *Backend) Init(ctx context.Context) error {
	return b.runner.Resolve()
}

// Capture renders one URL to a PNG inside outDir. Severity policy matches
// the chromium backend: render errors are per-target, persistence errors
// are systemic.
func (b *Backend) Capture(ctx context.Context, target domain.Target, outDir string) error {
	web, ok := target.(domain.WebTarget)
	if !ok {
		return domain.PerTarget(fmt.Errorf("%w: got %s", domain.ErrWrongTargetKind, target.Kind()))
	}

	outFile := output.ImagePath(outDir, web)
	args := []string{
		"--quiet",
		"--format", "png",
		"--quality", strconv.Itoa(b.quality),
		web.URL,
		outFile,
	}

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
