// internal/adapters/output/layout.go
package output

import (
	"fmt"
	"os"
	"path/filepath"

	"opticx/internal/core/domain"
)

// Layout owns the on-disk output structure of a capture run: one directory
// per target class under a common root. Backends receive the directory and
// decide the per-target file name themselves via ImagePath.
type Layout struct {
	root string
}

// NewLayout creates a layout rooted at dir.
func NewLayout(root string) *Layout {
	return &Layout{root: root}
}

// Root returns the configured output root.
func (l *Layout) Root() string { return l.root }

// RDPDir returns the directory for RDP captures.
func (l *Layout) RDPDir() string { return filepath.Join(l.root, "rdp") }

// WebDir returns the directory for web captures.
func (l *Layout) WebDir() string { return filepath.Join(l.root, "web") }

// Ensure creates both class directories. Creating a directory that already
// exists is a no-op, not an error.
func (l *Layout) Ensure() error {
	for _, dir := range []string{l.RDPDir(), l.WebDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return nil
}

// ImagePath builds the output PNG path for a target inside dir.
func ImagePath(dir string, target domain.Target) string {
	return filepath.Join(dir, target.FileStem()+".png")
}
