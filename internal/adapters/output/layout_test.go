// internal/adapters/output/layout_test.go
package output

import (
	"os"
	"path/filepath"
	"testing"

	"opticx/internal/core/domain"
	"opticx/internal/testutil"
)

func TestLayout_Ensure(t *testing.T) {
	root := filepath.Join(t.TempDir(), "captures")
	layout := NewLayout(root)

	testutil.AssertNoError(t, layout.Ensure(), "ensure")

	for _, dir := range []string{layout.RDPDir(), layout.WebDir()} {
		info, err := os.Stat(dir)
		testutil.AssertNoError(t, err, "stat "+dir)
		testutil.AssertTrue(t, info.IsDir(), dir+" is a directory")
	}
}

func TestLayout_EnsureIdempotent(t *testing.T) {
	layout := NewLayout(filepath.Join(t.TempDir(), "captures"))

	testutil.AssertNoError(t, layout.Ensure(), "first ensure")
	testutil.AssertNoError(t, layout.Ensure(), "second ensure is a no-op")
}

func TestLayout_EnsureFailsOnOccupiedPath(t *testing.T) {
	root := filepath.Join(t.TempDir(), "occupied")
	testutil.AssertNoError(t, os.WriteFile(root, []byte("x"), 0o644), "fixture")

	layout := NewLayout(root)
	testutil.AssertError(t, layout.Ensure(), "file in the way is an error")
}

func TestLayout_Dirs(t *testing.T) {
	layout := NewLayout("out")
	testutil.AssertEqual(t, layout.RDPDir(), filepath.Join("out", "rdp"), "rdp dir")
	testutil.AssertEqual(t, layout.WebDir(), filepath.Join("out", "web"), "web dir")
}

func TestImagePath(t *testing.T) {
	target := domain.RDPTarget{Host: "srv01", Port: 3389}
	got := ImagePath("out/rdp", target)
	testutil.AssertEqual(t, got, filepath.Join("out/rdp", "srv01-3389.png"), "image path")
}
