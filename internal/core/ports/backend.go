// internal/core/ports/backend.go
package ports

import (
	"context"
	"time"

	"opticx/internal/core/domain"
)

// Capturer es el port primario para los backends de captura de opticx.
// Cualquier backend (renderizador web, grabber RDP) debe implementar esta
// interfaz. Exactamente una implementación por clase de target está activa
// durante una ejecución; la selección ocurre en arranque vía registry.
type Capturer interface {
	// Name retorna el nombre único del backend (ej: "chromium", "rdpgrab")
	Name() string

	// Kind retorna la clase de target que este backend sabe capturar
	Kind() domain.TargetKind

	// Init adquiere el handle de sesión del backend (localizar el binario,
	// arrancar la sesión). Debe llamarse una vez antes de la primera captura.
	Init(ctx context.Context) error

	// Capture renderiza un target a un fichero de imagen dentro de outDir.
	// El error retornado lleva severidad domain (sistémico vs per-target).
	Capture(ctx context.Context, target domain.Target, outDir string) error

	// Close libera recursos del backend (procesos, conexiones)
	Close() error
}

// BackendConfig contiene la configuración específica de un backend.
type BackendConfig struct {
	// ExecPath ruta al binario externo del backend (resuelta vía LookPath)
	ExecPath string

	// Timeout tiempo máximo por captura individual (0 = sin límite)
	Timeout time.Duration

	// ProxyURL proxy SOCKS5 opcional para backends que dialean red
	ProxyURL string

	// Custom configuración específica del backend (flags extra, geometría)
	Custom map[string]interface{}
}

// DefaultBackendConfig retorna una configuración por defecto.
func DefaultBackendConfig() BackendConfig {
	return BackendConfig{
		Timeout: 60 * time.Second,
		Custom:  make(map[string]interface{}),
	}
}

// BackendMetadata describe un backend registrado.
type BackendMetadata struct {
	Name        string
	Description string
	Kind        domain.TargetKind

	// DefaultExec binario externo usado si la config no fija exec_path
	// (vacío para backends puramente in-process)
	DefaultExec string
}
