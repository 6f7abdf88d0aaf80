// internal/core/domain/outcome.go
package domain

import (
	"errors"
	"fmt"
)

// Severity clasifica el fallo de un intento de captura.
//
// Un fallo sistémico (no poder persistir la imagen) invalida continuar con
// el pipeline que lo observa. Un fallo per-target (servidor que no responde,
// render fallido, timeout) es terminal solo para ese target.
type Severity int

const (
	// SeverityTarget: fallo aislado a un target, el pipeline continúa
	SeverityTarget Severity = iota

	// SeveritySystemic: fallo de entorno, el pipeline que lo observa aborta
	SeveritySystemic
)

func (s Severity) String() string {
	switch s {
	case SeveritySystemic:
		return "systemic"
	default:
		return "per-target"
	}
}

// CaptureError es el outcome fallido de una captura, con su severidad.
// Se crea en el backend y se consume inmediatamente en el pipeline que
// invocó la captura; nunca se persiste.
type CaptureError struct {
	Severity Severity
	Err      error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("capture failed (%s): %v", e.Severity, e.Err)
}

func (e *CaptureError) Unwrap() error { return e.Err }

// Systemic envuelve err como fallo sistémico. Retorna nil si err es nil.
func Systemic(err error) error {
	if err == nil {
		return nil
	}
	return &CaptureError{Severity: SeveritySystemic, Err: err}
}

// PerTarget envuelve err como fallo per-target. Retorna nil si err es nil.
func PerTarget(err error) error {
	if err == nil {
		return nil
	}
	return &CaptureError{Severity: SeverityTarget, Err: err}
}

// IsSystemic indica si err está clasificado como fallo sistémico.
// Un error sin clasificar cuenta como per-target: solo los fallos que un
// backend marca explícitamente como de entorno abortan un pipeline.
func IsSystemic(err error) bool {
	var ce *CaptureError
	if errors.As(err, &ce) {
		return ce.Severity == SeveritySystemic
	}
	return false
}
