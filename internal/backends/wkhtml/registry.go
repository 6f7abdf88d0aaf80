// internal/backends/wkhtml/registry.go
package wkhtml

import (
	"opticx/internal/core/domain"
	"opticx/internal/core/ports"
	"opticx/internal/platform/logx"
	"opticx/internal/platform/registry"
)

// Auto-register wkhtml backend on package import.
func init() {
	err := registry.Global().Register("wkhtml", factory, ports.BackendMetadata{
		Name:        "wkhtml",
		Description: "wkhtmltoimage page renderer",
		Kind:        domain.KindWeb,
		DefaultExec: defaultExec,
	})
	if err != nil {
		logx.New().Warn("failed to register wkhtml backend", "error", err.Error())
	}
}

// factory creates a wkhtml backend from BackendConfig.
func factory(cfg ports.BackendConfig, logger logx.Logger) (ports.Capturer, error) {
	quality := registry.GetIntConfig(cfg.Custom, "quality", defaultQuality)
	return New(logger, cfg.ExecPath, quality), nil
}
