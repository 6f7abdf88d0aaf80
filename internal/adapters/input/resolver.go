// internal/adapters/input/resolver.go

// Package input resolves the immutable target list from command-line
// arguments, line-oriented target files and nmap XML output. The core treats
// the resolved list as pre-validated, read-only input.
package input

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"opticx/internal/core/domain"
	"opticx/internal/platform/logx"
)

// Sources enumerates everything the resolver may pull targets from.
type Sources struct {
	RDP       []string // host[:port] or rdp://host[:port]
	Web       []string // absolute http(s) URLs
	Files     []string // one target per line, class routed by prefix
	NmapFiles []string // nmap -oX output
}

// Resolver builds a domain.TargetList from configured sources.
type Resolver struct {
	logger logx.Logger
}

// NewResolver creates a target resolver.
func NewResolver(logger logx.Logger) *Resolver {
	if logger == nil {
		logger = logx.New()
	}
	return &Resolver{logger: logger.With("component", "resolver")}
}

// Resolve parses every source, deduplicates, and returns the immutable list.
// Input order is preserved: flags first, then files, then nmap output.
// Unparseable lines are logged and skipped; unreadable files are errors.
func (r *Resolver) Resolve(src Sources) (*domain.TargetList, error) {
	list := &domain.TargetList{}
	seenRDP := make(map[string]bool)
	seenWeb := make(map[string]bool)

	addRDP := func(raw, origin string) {
		t, err := domain.ParseRDPTarget(raw)
		if err != nil {
			r.logger.Warn("skipping rdp target", "raw", raw, "origin", origin, "error", err.Error())
			return
		}
		if seenRDP[t.Address()] {
			return
		}
		seenRDP[t.Address()] = true
		list.RDP = append(list.RDP, t)
	}
	addWeb := func(raw, origin string) {
		t, err := domain.ParseWebTarget(raw)
		if err != nil {
			r.logger.Warn("skipping web target", "raw", raw, "origin", origin, "error", err.Error())
			return
		}
		if seenWeb[t.URL] {
			return
		}
		seenWeb[t.URL] = true
		list.Web = append(list.Web, t)
	}

	for _, raw := range src.RDP {
		addRDP(raw, "flag")
	}
	for _, raw := range src.Web {
		addWeb(raw, "flag")
	}

	for _, path := range src.Files {
		if err := r.resolveFile(path, addRDP, addWeb); err != nil {
			return nil, fmt.Errorf("target file %s: %w", path, err)
		}
	}

	for _, path := range src.NmapFiles {
		if err := r.resolveNmap(path, addRDP, addWeb); err != nil {
			return nil, fmt.Errorf("nmap file %s: %w", path, err)
		}
	}

	r.logger.Info("targets resolved", "rdp", len(list.RDP), "web", len(list.Web))
	return list, nil
}

// resolveFile reads one target per line. Class routing: rdp:// lines are RDP,
// http(s):// lines are web, anything else is treated as an RDP host[:port].
func (r *Resolver) resolveFile(path string, addRDP, addWeb func(raw, origin string)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "rdp://"):
			addRDP(line, path)
		case strings.HasPrefix(line, "http://"), strings.HasPrefix(line, "https://"):
			addWeb(line, path)
		default:
			addRDP(line, path)
		}
	}
	return scanner.Err()
}
