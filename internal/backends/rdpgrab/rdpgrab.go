// internal/backends/rdpgrab/rdpgrab.go

// Package rdpgrab captures RDP login screens. Each capture probes the
// endpoint in-process first (TCP + X.224 negotiation) and only then spends
// a grabber subprocess on it. The grabber binary is configurable; anything
// that accepts an rdp:// target and an output directory works.
package rdpgrab

import (
	"context"
	"fmt"
	"time"

	"opticx/internal/backends/common"
	"opticx/internal/core/domain"
	"opticx/internal/platform/errors"
	"opticx/internal/platform/logx"
)

const defaultExec = "scrying"

// Backend captures RDP targets. Unlike the web backends it holds no session
// handle across captures: every worker drives its own probe + subprocess,
// so concurrent calls from the pool are safe.
type Backend struct {
	logger    logx.Logger
	runner    *common.ExecRunner
	prober    *prober
	extraArgs []string
}

// New creates an rdpgrab backend.
func New(logger logx.Logger, execPath, proxyURL string, probeTimeout time.Duration, extraArgs []string) *Backend {
	if execPath == "" {
		execPath = defaultExec
	}

	return &Backend{
		logger:    logger.With("backend", "rdpgrab"),
		runner:    common.NewExecRunner(logger, "rdpgrab", execPath),
		prober:    newProber(logger.With("backend", "rdpgrab"), proxyURL, probeTimeout),
		extraArgs: extraArgs,
	}
}

func (b *Backend) Name() string            { return "rdpgrab" }
func (b *Backend) Kind() domain.TargetKind { return domain.KindRDP }

// Init resolves the grabber binary before the pool dispatches anything.
func (b *Backend) Init(ctx context.Context) error {
	return b.runner.Resolve()
}

// Capture probes the endpoint, then runs the grabber against it. All
// failures here are per-target: a dead or misbehaving RDP host never says
// anything about its siblings or about the environment.
func (b *Backend) Capture(ctx context.Context, target domain.Target, outDir string) error {
	rdp, ok := target.(domain.RDPTarget)
	if !ok {
		return domain.PerTarget(fmt.Errorf("%w: got %s", domain.ErrWrongTargetKind, target.Kind()))
	}

	if err := b.prober.probe(ctx, rdp.Address()); err != nil {
		return domain.PerTarget(err)
	}

	args := []string{"-t", rdp.String(), "-o", outDir}
	args = append(args, b.extraArgs...)

	stderr, err := b.runner.Run(ctx, args...)
	if err != nil {
		if stderr != "" {
			b.logger.Debug("grabber stderr", "target", rdp.String(), "stderr", stderr)
		}
		return domain.PerTarget(errors.Wrapf(err, "grabbing %s", rdp.String()))
	}

	b.logger.Debug("grab complete", "target", rdp.String(), "dir", outDir)
	return nil
}

// Close kills a grabber still in flight, if any.
func (b *Backend) Close() error {
	return b.runner.Close()
}
