// cmd/opticx/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"opticx/internal/adapters/input"
	"opticx/internal/adapters/output"
	"opticx/internal/core/domain"
	"opticx/internal/core/ports"
	"opticx/internal/core/usecases"
	"opticx/internal/platform/config"
	"opticx/internal/platform/logx"
	"opticx/internal/platform/registry"
	"opticx/internal/platform/ui"

	// Import backends for auto-registration via init()
	_ "opticx/internal/backends/chromium"
	_ "opticx/internal/backends/rdpgrab"
	_ "opticx/internal/backends/wkhtml"
)

var (
	// Rellenables con -ldflags en build
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// 1. Load centralized config
	cfg, err := config.Load(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: configuration load failed: %v\n", err)
		return 2
	}

	if cfg.PrintVersion {
		fmt.Printf("opticx %s (%s, %s)\n", version, commit, date)
		return 0
	}

	// 2. Shared logger, explicit handle injected everywhere
	level := logx.ParseLevel(cfg.LogLevel)
	if cfg.Quiet {
		level = logx.LevelWarn
	}
	logger := logx.NewWithLevel(level)

	runID := "run-" + uuid.NewString()
	logger = logger.With("run", runID)

	logger.Info("opticx starting",
		"version", version,
		"commit", commit,
		"web_backend", cfg.WebBackend,
		"rdp_backend", cfg.RDPBackend,
		"max_concurrent", cfg.MaxConcurrent,
	)

	// 3. Context and signals for clean shutdown
	ctx, cancel := rootContextWithSignals()
	defer cancel()

	// 4. Resolve the immutable target list
	resolver := input.NewResolver(logger)
	targets, err := resolver.Resolve(input.Sources{
		RDP:       cfg.RDPTargets,
		Web:       cfg.WebTargets,
		Files:     cfg.TargetFiles,
		NmapFiles: cfg.NmapFiles,
	})
	if err != nil {
		logger.Err(err, "phase", "resolve")
		return 2
	}
	if targets.Empty() {
		fmt.Fprintln(os.Stderr, "Error: no targets")
		fmt.Fprintln(os.Stderr, "Usage: opticx --rdp host[:port] --web url [-f targets.txt] [--nmap scan.xml]")
		fmt.Fprintln(os.Stderr, "Try: opticx --help")
		return 2
	}

	// 5. Build exactly one backend per target class from the registry
	webBackend, rdpBackend, err := buildBackends(cfg, logger)
	if err != nil {
		logger.Err(err, "phase", "backend-build")
		return 2
	}

	// 6. Presenter
	presenter := buildPresenter(cfg)
	defer presenter.Close()

	presenter.Start(ui.RunInfo{
		RunID:      runID,
		RDPTargets: len(targets.RDP),
		WebTargets: len(targets.Web),
		Workers:    cfg.MaxConcurrent,
		OutputDir:  cfg.OutputDir,
	})

	// 7. Orchestrate both pipelines
	orch := usecases.NewOrchestrator(usecases.OrchestratorOptions{
		WebBackend:     webBackend,
		RDPBackend:     rdpBackend,
		Layout:         output.NewLayout(cfg.OutputDir),
		Logger:         logger,
		Presenter:      presenter,
		MaxConcurrent:  cfg.MaxConcurrent,
		CaptureTimeout: cfg.CaptureTimeout(),
	})

	start := time.Now()
	report, runErr := orch.Run(ctx, targets)
	elapsed := time.Since(start)

	presenter.Finish(elapsed)

	// 8. Summary. Capture failures stay inside their pipeline: the process
	// fails only when the run itself could not happen.
	if runErr != nil {
		logger.Err(runErr, "phase", "run", "elapsed_ms", elapsed.Milliseconds())
		return 1
	}

	logger.Info("opticx finished",
		"elapsed_ms", elapsed.Milliseconds(),
		"rdp_captured", report.RDP.Captured,
		"rdp_failed", report.RDP.Failed,
		"web_captured", report.Web.Captured,
		"web_failed", report.Web.Failed,
	)
	return 0
}

// buildBackends selects and constructs one capability per target class.
func buildBackends(cfg config.Config, logger logx.Logger) (web, rdp ports.Capturer, err error) {
	web, err = registry.Global().Build(cfg.WebBackend, domain.KindWeb, cfg.BackendConfig(cfg.WebBackend), logger)
	if err != nil {
		return nil, nil, err
	}
	rdp, err = registry.Global().Build(cfg.RDPBackend, domain.KindRDP, cfg.BackendConfig(cfg.RDPBackend), logger)
	if err != nil {
		return nil, nil, err
	}
	return web, rdp, nil
}

func buildPresenter(cfg config.Config) ui.Presenter {
	if cfg.Quiet || cfg.NoProgress {
		return ui.NewNoopPresenter()
	}
	return ui.NewPtermPresenter()
}

// rootContextWithSignals creates a root context cancelled by SIGINT/SIGTERM.
func rootContextWithSignals() (context.Context, context.CancelFunc) {
	base, baseCancel := context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-ch:
			baseCancel()
		case <-base.Done():
		}
	}()

	cleanup := func() {
		signal.Stop(ch)
		baseCancel()
	}
	return base, cleanup
}
