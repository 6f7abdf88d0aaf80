// internal/core/domain/outcome_test.go
package domain

import (
	"errors"
	"fmt"
	"testing"

	"opticx/internal/testutil"
)

func TestSeverityClassification(t *testing.T) {
	base := errors.New("boom")

	testutil.AssertTrue(t, IsSystemic(Systemic(base)), "systemic wrap classifies systemic")
	testutil.AssertFalse(t, IsSystemic(PerTarget(base)), "per-target wrap is not systemic")
	testutil.AssertFalse(t, IsSystemic(base), "unclassified error defaults to per-target")
	testutil.AssertFalse(t, IsSystemic(nil), "nil is never systemic")
}

func TestSeverityWrapNil(t *testing.T) {
	testutil.AssertNil(t, Systemic(nil), "systemic of nil")
	testutil.AssertNil(t, PerTarget(nil), "per-target of nil")
}

func TestCaptureError_Unwrap(t *testing.T) {
	base := errors.New("disk full")
	err := Systemic(fmt.Errorf("writing image: %w", base))

	testutil.AssertTrue(t, errors.Is(err, base), "cause is preserved through the severity wrapper")

	var ce *CaptureError
	testutil.AssertTrue(t, errors.As(err, &ce), "capture error type reachable")
	testutil.AssertEqual(t, ce.Severity, SeveritySystemic, "severity")
}

func TestSeverityClassificationThroughWrapping(t *testing.T) {
	// Severity survives further wrapping by callers.
	inner := Systemic(errors.New("disk full"))
	outer := fmt.Errorf("pipeline: %w", inner)

	testutil.AssertTrue(t, IsSystemic(outer), "severity visible through an outer wrap")
}

func TestSeverityString(t *testing.T) {
	testutil.AssertEqual(t, SeveritySystemic.String(), "systemic", "systemic name")
	testutil.AssertEqual(t, SeverityTarget.String(), "per-target", "per-target name")
}
