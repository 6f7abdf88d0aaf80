// internal/core/usecases/web_pipeline.go
package usecases

import (
	"context"
	"time"

	"opticx/internal/core/domain"
	"opticx/internal/core/ports"
	"opticx/internal/platform/logx"
	"opticx/internal/platform/ui"
)

// WebPipeline drives a single backend handle over the web targets, strictly
// one at a time. Renderer sessions (a headless browser tab) are not safe to
// share across concurrent calls, so there is no concurrency here.
//
// Failure policy is two-tier: a systemic failure (output cannot be
// persisted) terminates the pipeline immediately; a per-target failure
// (unresponsive server, render error) is logged and the next target is
// attempted.
type WebPipeline struct {
	backend   ports.Capturer
	logger    logx.Logger
	presenter ui.Presenter

	captureTimeout time.Duration
}

// WebPipelineOptions configures the pipeline.
type WebPipelineOptions struct {
	Backend        ports.Capturer
	Logger         logx.Logger
	Presenter      ui.Presenter
	CaptureTimeout time.Duration // 0 = no per-capture deadline
}

// NewWebPipeline creates a sequential web capture pipeline.
func NewWebPipeline(opts WebPipelineOptions) *WebPipeline {
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	if opts.Presenter == nil {
		opts.Presenter = ui.NewNoopPresenter()
	}

	return &WebPipeline{
		backend:        opts.Backend,
		logger:         opts.Logger.With("component", "web-pipeline"),
		presenter:      opts.Presenter,
		captureTimeout: opts.CaptureTimeout,
	}
}

// Run attempts to capture every target in source order, stopping early only
// on a systemic failure or cancellation.
func (w *WebPipeline) Run(ctx context.Context, targets []domain.WebTarget, outDir string) Summary {
	start := time.Now()
	sum := Summary{}

	if len(targets) == 0 {
		w.logger.Debug("no web targets, pipeline idle")
		sum.Elapsed = time.Since(start)
		return sum
	}

	// Exactly one backend handle for the whole run, acquired up front.
	if err := w.backend.Init(ctx); err != nil {
		w.logger.Err(err, "phase", "backend-init", "backend", w.backend.Name())
		w.presenter.Error("web backend unavailable: " + err.Error())
		sum.Aborted = true
		sum.Elapsed = time.Since(start)
		return sum
	}
	defer func() {
		if err := w.backend.Close(); err != nil {
			w.logger.Warn("failed to close web backend", "error", err.Error())
		}
	}()

	w.logger.Info("starting web pipeline",
		"targets", len(targets),
		"backend", w.backend.Name(),
	)
	w.presenter.StartPipeline(string(domain.KindWeb), len(targets))

	for _, target := range targets {
		if ctx.Err() != nil {
			w.logger.Warn("pipeline cancelled", "attempted", sum.Attempted, "remaining", len(targets)-sum.Attempted)
			sum.Aborted = true
			break
		}

		sum.Attempted++
		err := w.captureOne(ctx, target, outDir)
		if err == nil {
			sum.Captured++
			w.logger.Info("captured", "target", target.URL)
			w.presenter.CaptureDone(string(domain.KindWeb), target.URL, ui.StatusOK)
			continue
		}

		sum.Failed++
		if domain.IsSystemic(err) {
			// Once output cannot be written, continuing is pointless.
			w.logger.Err(err, "target", target.URL, "severity", "systemic")
			w.presenter.Error("web pipeline aborted: " + err.Error())
			sum.Aborted = true
			break
		}

		w.logger.Info("failed to capture image",
			"target", target.URL,
			"error", err.Error(),
		)
		w.presenter.CaptureDone(string(domain.KindWeb), target.URL, ui.StatusFailed)
	}

	sum.Elapsed = time.Since(start)
	w.logger.Info("web pipeline finished",
		"attempted", sum.Attempted,
		"captured", sum.Captured,
		"failed", sum.Failed,
		"aborted", sum.Aborted,
		"elapsed_ms", sum.Elapsed.Milliseconds(),
	)
	w.presenter.FinishPipeline(string(domain.KindWeb), ui.PipelineStats{
		Attempted: sum.Attempted,
		Captured:  sum.Captured,
		Failed:    sum.Failed,
		Aborted:   sum.Aborted,
		Elapsed:   sum.Elapsed,
	})
	return sum
}

func (w *WebPipeline) captureOne(ctx context.Context, target domain.WebTarget, outDir string) error {
	cctx := ctx
	if w.captureTimeout > 0 {
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(ctx, w.captureTimeout)
		defer cancel()
	}
	return w.backend.Capture(cctx, target, outDir)
}
