// internal/backends/chromium/registry.go
package chromium

import (
	"opticx/internal/core/domain"
	"opticx/internal/core/ports"
	"opticx/internal/platform/logx"
	"opticx/internal/platform/registry"
)

// Auto-register chromium backend on package import.
func init() {
	err := registry.Global().Register("chromium", factory, ports.BackendMetadata{
		Name:        "chromium",
		Description: "Headless Chromium/Chrome page renderer",
		Kind:        domain.KindWeb,
		DefaultExec: defaultExec,
	})
	if err != nil {
		logx.New().Warn("failed to register chromium backend", "error", err.Error())
	}
}

// factory creates a chromium backend from BackendConfig.
func factory(cfg ports.BackendConfig, logger logx.Logger) (ports.Capturer, error) {
	windowSize := registry.GetStringConfig(cfg.Custom, "window_size", defaultWindowSize)
	extraArgs := registry.GetStringSliceConfig(cfg.Custom, "extra_args")

	return New(logger, cfg.ExecPath, windowSize, extraArgs), nil
}
