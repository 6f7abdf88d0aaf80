// internal/core/usecases/mocks_test.go
package usecases

import (
	"context"
	"sync"

	"opticx/internal/core/domain"
)

// mockCapturer es un mock de ports.Capturer para tests del pool y pipeline.
// Registra el orden de capturas y la concurrencia observada.
type mockCapturer struct {
	name string
	kind domain.TargetKind

	captureFunc func(ctx context.Context, target domain.Target) error
	initErr     error

	mu          sync.Mutex
	captured    []string
	callsPer    map[string]int
	current     int
	maxObserved int
	initCalls   int
	closeCalls  int
}

func newMockCapturer(kind domain.TargetKind) *mockCapturer {
	return &mockCapturer{
		name:     "mock-" + string(kind),
		kind:     kind,
		callsPer: make(map[string]int),
	}
}

func (m *mockCapturer) Name() string            { return m.name }
func (m *mockCapturer) Kind() domain.TargetKind { return m.kind }

func (m *mockCapturer) Init(ctx context.Context) error {
	m.mu.Lock()
	m.initCalls++
	m.mu.Unlock()
	return m.initErr
}

func (m *mockCapturer) Capture(ctx context.Context, target domain.Target, outDir string) error {
	m.mu.Lock()
	m.current++
	if m.current > m.maxObserved {
		m.maxObserved = m.current
	}
	m.captured = append(m.captured, target.Address())
	m.callsPer[target.Address()]++
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.current--
		m.mu.Unlock()
	}()

	if m.captureFunc != nil {
		return m.captureFunc(ctx, target)
	}
	return nil
}

func (m *mockCapturer) Close() error {
	m.mu.Lock()
	m.closeCalls++
	m.mu.Unlock()
	return nil
}

func (m *mockCapturer) capturedTargets() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.captured))
	copy(out, m.captured)
	return out
}

func (m *mockCapturer) maxConcurrent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxObserved
}

func (m *mockCapturer) calls(address string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callsPer[address]
}

// rdpTargets genera n targets de prueba.
func rdpTargets(n int) []domain.RDPTarget {
	out := make([]domain.RDPTarget, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.RDPTarget{Host: hostName(i), Port: domain.DefaultRDPPort})
	}
	return out
}

func webTargets(n int) []domain.WebTarget {
	out := make([]domain.WebTarget, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.WebTarget{URL: "https://" + hostName(i)})
	}
	return out
}

func hostName(i int) string {
	return "target-" + string(rune('a'+i)) + ".example.com"
}
