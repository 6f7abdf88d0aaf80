// internal/core/usecases/rdp_pool.go
package usecases

import (
	"context"
	"time"

	"opticx/internal/core/domain"
	"opticx/internal/core/ports"
	"opticx/internal/platform/logx"
	"opticx/internal/platform/ui"
)

// DefaultMaxConcurrent is the capture worker cap when none is configured.
const DefaultMaxConcurrent = 3

// workerStatus is the single-variant "task complete" signal a finished
// worker sends back to the scheduler so it can free a concurrency slot.
type workerStatus struct{}

// workerHandle represents one in-flight or finished RDP capture task.
// Owned by the scheduler from spawn until joined; after the join it yields
// the task's own outcome and is discarded.
type workerHandle struct {
	target domain.RDPTarget
	done   chan struct{}
	err    error
}

// RDPPool dispatches RDP captures to a bounded set of concurrent workers.
//
// The scheduler is a single goroutine that owns all slot state: it blocks on
// the status channel when the pool is at capacity, so the free-slot check and
// the dispatch decision can never race. No busy-waiting, no shared counters.
type RDPPool struct {
	backend   ports.Capturer
	logger    logx.Logger
	presenter ui.Presenter

	maxConcurrent  int
	captureTimeout time.Duration
}

// RDPPoolOptions configures the pool.
type RDPPoolOptions struct {
	Backend        ports.Capturer
	Logger         logx.Logger
	Presenter      ui.Presenter
	MaxConcurrent  int
	CaptureTimeout time.Duration // 0 = no per-capture deadline
}

// NewRDPPool creates a bounded-concurrency RDP capture pool.
func NewRDPPool(opts RDPPoolOptions) *RDPPool {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = DefaultMaxConcurrent
	}
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	if opts.Presenter == nil {
		opts.Presenter = ui.NewNoopPresenter()
	}

	return &RDPPool{
		backend:        opts.Backend,
		logger:         opts.Logger.With("component", "rdp-pool"),
		presenter:      opts.Presenter,
		maxConcurrent:  opts.MaxConcurrent,
		captureTimeout: opts.CaptureTimeout,
	}
}

// Run captures every target exactly once with at most maxConcurrent workers
// executing simultaneously, and returns once all dispatched workers have been
// joined. Worker failures are logged warnings; they never affect sibling
// workers or the pool's own outcome.
func (p *RDPPool) Run(ctx context.Context, targets []domain.RDPTarget, outDir string) Summary {
	start := time.Now()
	sum := Summary{}

	if len(targets) == 0 {
		p.logger.Debug("no rdp targets, pool idle")
		sum.Elapsed = time.Since(start)
		return sum
	}

	if err := p.backend.Init(ctx); err != nil {
		p.logger.Err(err, "phase", "backend-init", "backend", p.backend.Name())
		p.presenter.Error("rdp backend unavailable: " + err.Error())
		sum.Aborted = true
		sum.Elapsed = time.Since(start)
		return sum
	}
	defer func() {
		if err := p.backend.Close(); err != nil {
			p.logger.Warn("failed to close rdp backend", "error", err.Error())
		}
	}()

	p.logger.Info("starting rdp pool",
		"targets", len(targets),
		"max_concurrent", p.maxConcurrent,
		"backend", p.backend.Name(),
	)
	p.presenter.StartPipeline(string(domain.KindRDP), len(targets))

	// Buffered to the worker cap so finishing workers never block on the
	// send once the dispatch loop has exited.
	statusCh := make(chan workerStatus, p.maxConcurrent)
	handles := make([]*workerHandle, 0, len(targets))
	active := 0

dispatch:
	for _, target := range targets {
		if ctx.Err() != nil {
			p.logger.Warn("dispatch cancelled", "dispatched", len(handles), "remaining", len(targets)-len(handles))
			break dispatch
		}

		// Wait for a free slot. Blocking receive: the scheduler suspends
		// until a worker reports completion.
		for active >= p.maxConcurrent {
			select {
			case <-statusCh:
				active--
			case <-ctx.Done():
				p.logger.Warn("dispatch cancelled", "dispatched", len(handles), "remaining", len(targets)-len(handles))
				break dispatch
			}
		}

		h := &workerHandle{target: target, done: make(chan struct{})}
		handles = append(handles, h)
		active++

		p.logger.Debug("dispatching worker", "target", target.String(), "active", active)
		go p.capture(ctx, h, statusCh, outDir)
	}

	// Join phase: every spawned handle, in spawn order. A failed capture is
	// a non-fatal warning and does not disturb the remaining joins.
	for _, h := range handles {
		<-h.done
		sum.Attempted++

		if h.err != nil {
			sum.Failed++
			p.logger.Warn("worker terminated with error",
				"target", h.target.String(),
				"error", h.err.Error(),
			)
			p.presenter.CaptureDone(string(domain.KindRDP), h.target.String(), ui.StatusFailed)
			continue
		}

		sum.Captured++
		p.logger.Info("captured", "target", h.target.String())
		p.presenter.CaptureDone(string(domain.KindRDP), h.target.String(), ui.StatusOK)
	}

	sum.Elapsed = time.Since(start)
	p.logger.Info("rdp pool drained",
		"attempted", sum.Attempted,
		"captured", sum.Captured,
		"failed", sum.Failed,
		"elapsed_ms", sum.Elapsed.Milliseconds(),
	)
	p.presenter.FinishPipeline(string(domain.KindRDP), ui.PipelineStats{
		Attempted: sum.Attempted,
		Captured:  sum.Captured,
		Failed:    sum.Failed,
		Aborted:   sum.Aborted,
		Elapsed:   sum.Elapsed,
	})
	return sum
}

// capture runs one worker: invoke the backend with an optional per-capture
// deadline, record the outcome on the handle, then signal the scheduler.
func (p *RDPPool) capture(ctx context.Context, h *workerHandle, statusCh chan<- workerStatus, outDir string) {
	defer close(h.done)
	defer func() { statusCh <- workerStatus{} }()

	cctx := ctx
	if p.captureTimeout > 0 {
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(ctx, p.captureTimeout)
		defer cancel()
	}

	h.err = p.backend.Capture(cctx, h.target, outDir)
}
