// internal/platform/ui/presenter.go
package ui

import "time"

// Status es el estado final de una captura individual.
type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Presenter define la interfaz para presentar el progreso de una ejecución
// de captura en terminal. El core solo habla con este port; la selección de
// implementación (pterm o noop) es del main.
type Presenter interface {
	// Start inicia la presentación con información de la ejecución
	Start(info RunInfo)

	// StartPipeline notifica el arranque de un pipeline (rdp o web)
	StartPipeline(kind string, total int)

	// CaptureDone notifica el resultado de una captura individual
	CaptureDone(kind, target string, status Status)

	// FinishPipeline notifica la finalización de un pipeline
	FinishPipeline(kind string, stats PipelineStats)

	// Warning muestra una advertencia
	Warning(msg string)

	// Error muestra un error
	Error(msg string)

	// Finish finaliza la presentación
	Finish(elapsed time.Duration)

	// Close limpia recursos del presenter
	Close() error
}

// RunInfo contiene información inicial de la ejecución.
type RunInfo struct {
	RunID      string
	RDPTargets int
	WebTargets int
	Workers    int
	OutputDir  string
}

// PipelineStats contiene los contadores finales de un pipeline.
type PipelineStats struct {
	Attempted int
	Captured  int
	Failed    int
	Aborted   bool
	Elapsed   time.Duration
}
