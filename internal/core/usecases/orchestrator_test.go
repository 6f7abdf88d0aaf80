// internal/core/usecases/orchestrator_test.go
package usecases

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"opticx/internal/adapters/output"
	"opticx/internal/core/domain"
	"opticx/internal/platform/logx"
	"opticx/internal/testutil"
)

func TestOrchestrator_Run_BothPipelines(t *testing.T) {
	rdpBackend := newMockCapturer(domain.KindRDP)
	webBackend := newMockCapturer(domain.KindWeb)
	root := filepath.Join(t.TempDir(), "out")

	orch := NewOrchestrator(OrchestratorOptions{
		WebBackend: webBackend,
		RDPBackend: rdpBackend,
		Layout:     output.NewLayout(root),
		Logger:     logx.NewSilent(),
	})

	list := &domain.TargetList{RDP: rdpTargets(3), Web: webTargets(2)}

	report, err := orch.Run(context.Background(), list)

	testutil.AssertNoError(t, err, "run")
	testutil.AssertEqual(t, report.RDP.Captured, 3, "rdp captured")
	testutil.AssertEqual(t, report.Web.Captured, 2, "web captured")

	for _, dir := range []string{filepath.Join(root, "rdp"), filepath.Join(root, "web")} {
		info, statErr := os.Stat(dir)
		testutil.AssertNoError(t, statErr, "output dir exists")
		testutil.AssertTrue(t, info.IsDir(), "output path is a directory")
	}
}

func TestOrchestrator_Run_EmptyList(t *testing.T) {
	orch := NewOrchestrator(OrchestratorOptions{
		WebBackend: newMockCapturer(domain.KindWeb),
		RDPBackend: newMockCapturer(domain.KindRDP),
		Layout:     output.NewLayout(t.TempDir()),
		Logger:     logx.NewSilent(),
	})

	_, err := orch.Run(context.Background(), &domain.TargetList{})

	testutil.AssertError(t, err, "empty list is rejected")
	testutil.AssertTrue(t, err == domain.ErrNoTargets, "error identity")
}

func TestOrchestrator_Run_LayoutFailureIsFatal(t *testing.T) {
	// A regular file where the output root should be makes MkdirAll fail.
	root := filepath.Join(t.TempDir(), "occupied")
	testutil.AssertNoError(t, os.WriteFile(root, []byte("x"), 0o644), "fixture")

	rdpBackend := newMockCapturer(domain.KindRDP)
	webBackend := newMockCapturer(domain.KindWeb)
	orch := NewOrchestrator(OrchestratorOptions{
		WebBackend: webBackend,
		RDPBackend: rdpBackend,
		Layout:     output.NewLayout(root),
		Logger:     logx.NewSilent(),
	})

	list := &domain.TargetList{RDP: rdpTargets(1), Web: webTargets(1)}

	_, err := orch.Run(context.Background(), list)

	testutil.AssertError(t, err, "layout failure surfaces to the caller")
	testutil.AssertEqual(t, rdpBackend.initCalls, 0, "no pipeline starts after a layout failure")
	testutil.AssertEqual(t, webBackend.initCalls, 0, "no pipeline starts after a layout failure")
}

func TestOrchestrator_Run_PipelineFailuresDoNotPropagate(t *testing.T) {
	rdpBackend := newMockCapturer(domain.KindRDP)
	rdpBackend.captureFunc = func(ctx context.Context, target domain.Target) error {
		return domain.PerTarget(os.ErrDeadlineExceeded)
	}
	webBackend := newMockCapturer(domain.KindWeb)
	webBackend.captureFunc = func(ctx context.Context, target domain.Target) error {
		return domain.Systemic(os.ErrPermission)
	}

	orch := NewOrchestrator(OrchestratorOptions{
		WebBackend: webBackend,
		RDPBackend: rdpBackend,
		Layout:     output.NewLayout(t.TempDir()),
		Logger:     logx.NewSilent(),
	})

	list := &domain.TargetList{RDP: rdpTargets(2), Web: webTargets(2)}

	report, err := orch.Run(context.Background(), list)

	testutil.AssertNoError(t, err, "capture failures never reach the orchestrator")
	testutil.AssertEqual(t, report.RDP.Failed, 2, "rdp failures recorded")
	testutil.AssertTrue(t, report.Web.Aborted, "web pipeline aborted on systemic failure")
	testutil.AssertEqual(t, report.RDP.Attempted, 2, "rdp pool unaffected by web abort")
}

func TestLayout_EnsureIsIdempotent(t *testing.T) {
	layout := output.NewLayout(filepath.Join(t.TempDir(), "out"))

	testutil.AssertNoError(t, layout.Ensure(), "first ensure")
	testutil.AssertNoError(t, layout.Ensure(), "ensure on existing directories is a no-op")
}
