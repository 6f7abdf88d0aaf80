// internal/platform/registry/backend_registry.go
package registry

import (
	"fmt"
	"sort"
	"sync"

	"opticx/internal/core/domain"
	"opticx/internal/core/ports"
	"opticx/internal/platform/logx"
)

// BackendRegistry gestiona el registro y construcción de backends de captura.
// Implementa el patrón Registry + Factory para que el orquestador seleccione
// la capability en runtime desde configuración, sin selección en compilación.
type BackendRegistry struct {
	mu        sync.RWMutex
	factories map[string]BackendFactory
	metadata  map[string]ports.BackendMetadata
}

// BackendFactory es una función que crea una instancia de Capturer.
type BackendFactory func(cfg ports.BackendConfig, logger logx.Logger) (ports.Capturer, error)

// globalRegistry es la instancia global del registry.
var globalRegistry *BackendRegistry
var once sync.Once

// Global retorna la instancia global del registry.
func Global() *BackendRegistry {
	once.Do(func() {
		globalRegistry = NewBackendRegistry()
	})
	return globalRegistry
}

// NewBackendRegistry crea un nuevo registry de backends.
func NewBackendRegistry() *BackendRegistry {
	return &BackendRegistry{
		factories: make(map[string]BackendFactory),
		metadata:  make(map[string]ports.BackendMetadata),
	}
}

// Register registra una backend factory con su metadata.
// Típicamente llamado desde init() de cada backend package.
func (r *BackendRegistry) Register(name string, factory BackendFactory, meta ports.BackendMetadata) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name == "" {
		return fmt.Errorf("backend name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil for backend %s", name)
	}
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("backend %s is already registered", name)
	}

	r.factories[name] = factory
	r.metadata[name] = meta
	return nil
}

// Build construye el backend con el nombre dado. Valida que la clase de
// target del backend coincida con la esperada por el caller.
func (r *BackendRegistry) Build(name string, kind domain.TargetKind, cfg ports.BackendConfig, logger logx.Logger) (ports.Capturer, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	meta := r.metadata[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown backend %q (available: %v)", name, r.Names(kind))
	}
	if meta.Kind != kind {
		return nil, fmt.Errorf("backend %q captures %s targets, not %s", name, meta.Kind, kind)
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	if cfg.ExecPath == "" {
		cfg.ExecPath = meta.DefaultExec
	}

	backend, err := factory(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build backend %s: %w", name, err)
	}
	return backend, nil
}

// Names retorna los nombres registrados para una clase de target, ordenados.
func (r *BackendRegistry) Names(kind domain.TargetKind) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.metadata))
	for name, meta := range r.metadata {
		if meta.Kind == kind {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// GetMetadata retorna la metadata de un backend registrado.
func (r *BackendRegistry) GetMetadata(name string) (ports.BackendMetadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	meta, ok := r.metadata[name]
	return meta, ok
}
