// internal/core/usecases/orchestrator.go
package usecases

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"opticx/internal/adapters/output"
	"opticx/internal/core/domain"
	"opticx/internal/core/ports"
	"opticx/internal/platform/errors"
	"opticx/internal/platform/logx"
	"opticx/internal/platform/ui"
)

// Orchestrator runs the web pipeline and the RDP pool as two independent,
// concurrently executing units over the same read-only target list, and
// waits for both. It never correlates per-target outcomes across pipelines;
// each pipeline logs its own.
type Orchestrator struct {
	webBackend ports.Capturer
	rdpBackend ports.Capturer
	layout     *output.Layout
	logger     logx.Logger
	presenter  ui.Presenter

	maxConcurrent  int
	captureTimeout time.Duration
}

// OrchestratorOptions configures the orchestrator.
type OrchestratorOptions struct {
	WebBackend     ports.Capturer
	RDPBackend     ports.Capturer
	Layout         *output.Layout
	Logger         logx.Logger
	Presenter      ui.Presenter
	MaxConcurrent  int
	CaptureTimeout time.Duration
}

// RunReport pairs both pipeline summaries for the caller's final log line.
type RunReport struct {
	RDP Summary
	Web Summary
}

// NewOrchestrator creates an orchestrator.
func NewOrchestrator(opts OrchestratorOptions) *Orchestrator {
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	if opts.Presenter == nil {
		opts.Presenter = ui.NewNoopPresenter()
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = DefaultMaxConcurrent
	}

	return &Orchestrator{
		webBackend:     opts.WebBackend,
		rdpBackend:     opts.RDPBackend,
		layout:         opts.Layout,
		logger:         opts.Logger.With("component", "orchestrator"),
		presenter:      opts.Presenter,
		maxConcurrent:  opts.MaxConcurrent,
		captureTimeout: opts.CaptureTimeout,
	}
}

// Run ensures the output layout, then executes both pipelines and waits.
//
// The only fatal condition is a layout failure: it is returned as an error
// for the caller to decide the exit code. Capture failures of any severity
// stay inside their pipeline.
func (o *Orchestrator) Run(ctx context.Context, list *domain.TargetList) (RunReport, error) {
	report := RunReport{}

	if list == nil || list.Empty() {
		return report, domain.ErrNoTargets
	}

	if err := o.layout.Ensure(); err != nil {
		return report, errors.Wrap(err, "creating output layout")
	}

	o.logger.Info("starting capture run",
		"rdp_targets", len(list.RDP),
		"web_targets", len(list.Web),
		"rdp_dir", o.layout.RDPDir(),
		"web_dir", o.layout.WebDir(),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		pool := NewRDPPool(RDPPoolOptions{
			Backend:        o.rdpBackend,
			Logger:         o.logger,
			Presenter:      o.presenter,
			MaxConcurrent:  o.maxConcurrent,
			CaptureTimeout: o.captureTimeout,
		})
		report.RDP = pool.Run(gctx, list.RDP, o.layout.RDPDir())
		return nil
	})

	g.Go(func() error {
		pipeline := NewWebPipeline(WebPipelineOptions{
			Backend:        o.webBackend,
			Logger:         o.logger,
			Presenter:      o.presenter,
			CaptureTimeout: o.captureTimeout,
		})
		report.Web = pipeline.Run(gctx, list.Web, o.layout.WebDir())
		return nil
	})

	// Pipelines never return errors; Wait only propagates a programming
	// mistake if that ever changes.
	if err := g.Wait(); err != nil {
		return report, err
	}

	o.logger.Info("capture run finished",
		"rdp_captured", report.RDP.Captured,
		"rdp_failed", report.RDP.Failed,
		"web_captured", report.Web.Captured,
		"web_failed", report.Web.Failed,
	)
	return report, nil
}
