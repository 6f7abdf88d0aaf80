// internal/backends/chromium/chromium_test.go
package chromium

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"opticx/internal/core/domain"
	"opticx/internal/platform/logx"
	"opticx/internal/testutil"
)

func TestBackend_Identity(t *testing.T) {
	b := New(logx.NewSilent(), "", "", nil)

	testutil.AssertEqual(t, b.Name(), "chromium", "name")
	testutil.AssertEqual(t, b.Kind(), domain.KindWeb, "kind")
}

func TestBackend_BuildArgs(t *testing.T) {
	b := New(logx.NewSilent(), "", "1024,768", []string{"--ignore-certificate-errors"})
	target := domain.WebTarget{URL: "https://example.com/login"}

	args := b.buildArgs(target, "out/web/example.png")

	joined := strings.Join(args, " ")
	testutil.AssertTrue(t, strings.Contains(joined, "--headless"), "headless flag")
	testutil.AssertTrue(t, strings.Contains(joined, "--window-size=1024,768"), "window size")
	testutil.AssertTrue(t, strings.Contains(joined, "--screenshot=out/web/example.png"), "output file")
	testutil.AssertTrue(t, strings.Contains(joined, "--ignore-certificate-errors"), "extra args carried")
	testutil.AssertEqual(t, args[len(args)-1], "https://example.com/login", "url goes last")
}

func TestBackend_BuildArgs_Defaults(t *testing.T) {
	b := New(logx.NewSilent(), "", "", nil)

	args := b.buildArgs(domain.WebTarget{URL: "http://x"}, "x.png")

	testutil.AssertTrue(t, strings.Contains(strings.Join(args, " "), "--window-size=1600,900"), "default window size")
}

func TestBackend_Capture_RejectsWrongKind(t *testing.T) {
	b := New(logx.NewSilent(), "", "", nil)

	err := b.Capture(context.Background(), domain.RDPTarget{Host: "h", Port: 3389}, t.TempDir())

	testutil.AssertError(t, err, "rdp target rejected")
	testutil.AssertTrue(t, stderrors.Is(err, domain.ErrWrongTargetKind), "kind sentinel")
	testutil.AssertFalse(t, domain.IsSystemic(err), "kind mismatch is per-target")
}
