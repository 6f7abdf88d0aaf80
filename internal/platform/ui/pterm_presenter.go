// internal/platform/ui/pterm_presenter.go
package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/pterm/pterm"
)

// PtermPresenter renderiza el progreso de captura con pterm.
// Seguro para llamadas concurrentes: el pool RDP y el pipeline web reportan
// desde goroutines distintas.
type PtermPresenter struct {
	mu   sync.Mutex
	bars map[string]*pterm.ProgressbarPrinter
}

// NewPtermPresenter crea un presenter interactivo para terminal.
func NewPtermPresenter() *PtermPresenter {
	return &PtermPresenter{
		bars: make(map[string]*pterm.ProgressbarPrinter),
	}
}

func (p *PtermPresenter) Start(info RunInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.DefaultSection.Println("opticx capture run")
	pterm.Info.Printf("run: %s\n", pterm.Cyan(info.RunID))
	pterm.Info.Printf("targets: %s rdp, %s web (workers: %d)\n",
		pterm.Yellow(fmt.Sprint(info.RDPTargets)),
		pterm.Yellow(fmt.Sprint(info.WebTargets)),
		info.Workers,
	)
	pterm.Info.Printf("output: %s\n", info.OutputDir)
	pterm.Println()
}

func (p *PtermPresenter) StartPipeline(kind string, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if total == 0 {
		return
	}
	bar, err := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle(fmt.Sprintf("%s captures", kind)).
		Start()
	if err != nil {
		return
	}
	p.bars[kind] = bar
}

func (p *PtermPresenter) CaptureDone(kind, target string, status Status) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch status {
	case StatusOK:
		pterm.Success.Printf("[%s] %s\n", kind, target)
	case StatusFailed:
		pterm.Warning.Printf("[%s] %s\n", kind, target)
	case StatusSkipped:
		pterm.Debug.Printf("[%s] %s skipped\n", kind, target)
	}

	if bar, ok := p.bars[kind]; ok {
		bar.Increment()
	}
}

func (p *PtermPresenter) FinishPipeline(kind string, stats PipelineStats) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if bar, ok := p.bars[kind]; ok {
		_, _ = bar.Stop()
		delete(p.bars, kind)
	}

	line := fmt.Sprintf("%s pipeline: %d attempted, %d captured, %d failed (%s)",
		kind, stats.Attempted, stats.Captured, stats.Failed, formatDuration(stats.Elapsed))
	if stats.Aborted {
		pterm.Error.Println(line + " [aborted]")
		return
	}
	pterm.Info.Println(line)
}

func (p *PtermPresenter) Warning(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pterm.Warning.Println(msg)
}

func (p *PtermPresenter) Error(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pterm.Error.Println(msg)
}

func (p *PtermPresenter) Finish(elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pterm.Println()
	pterm.Info.Printf("done in %s\n", formatDuration(elapsed))
}

func (p *PtermPresenter) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for kind, bar := range p.bars {
		_, _ = bar.Stop()
		delete(p.bars, kind)
	}
	return nil
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(100 * time.Millisecond).String()
}
