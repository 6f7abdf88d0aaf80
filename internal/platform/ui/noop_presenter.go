// internal/platform/ui/noop_presenter.go
package ui

import "time"

// NoopPresenter es una implementación vacía del Presenter que no produce
// ninguna salida. Útil para modo quiet o ejecución en pipelines CI.
type NoopPresenter struct{}

// NewNoopPresenter crea una instancia del presenter sin salida
func NewNoopPresenter() *NoopPresenter {
	return &NoopPresenter{}
}

// Start no hace nada
func (n *NoopPresenter) Start(info RunInfo) {}

// StartPipeline no hace nada
func (n *NoopPresenter) StartPipeline(kind string, total int) {}

// CaptureDone no hace nada
func (n *NoopPresenter) CaptureDone(kind, target string, status Status) {}

// FinishPipeline no hace nada
func (n *NoopPresenter) FinishPipeline(kind string, stats PipelineStats) {}

// Warning no hace nada
func (n *NoopPresenter) Warning(msg string) {}

// Error no hace nada
func (n *NoopPresenter) Error(msg string) {}

// Finish no hace nada
func (n *NoopPresenter) Finish(elapsed time.Duration) {}

// Close no hace nada
func (n *NoopPresenter) Close() error {
	return nil
}
