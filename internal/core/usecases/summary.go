// internal/core/usecases/summary.go
package usecases

import "time"

// Summary collects the per-pipeline counters. Outcomes are logged as they
// happen; this is bookkeeping for the final log line, never a report artifact.
type Summary struct {
	Attempted int
	Captured  int
	Failed    int

	// Aborted is set when a systemic failure stopped the pipeline before
	// every target was attempted.
	Aborted bool

	Elapsed time.Duration
}
