// internal/backends/rdpgrab/registry.go
package rdpgrab

import (
	"time"

	"opticx/internal/core/domain"
	"opticx/internal/core/ports"
	"opticx/internal/platform/logx"
	"opticx/internal/platform/registry"
)

// Auto-register rdpgrab backend on package import.
func init() {
	err := registry.Global().Register("rdpgrab", factory, ports.BackendMetadata{
		Name:        "rdpgrab",
		Description: "RDP login-screen grabber (external tool + X.224 preflight probe)",
		Kind:        domain.KindRDP,
		DefaultExec: defaultExec,
	})
	if err != nil {
		logx.New().Warn("failed to register rdpgrab backend", "error", err.Error())
	}
}

// factory creates an rdpgrab backend from BackendConfig.
func factory(cfg ports.BackendConfig, logger logx.Logger) (ports.Capturer, error) {
	probeTimeout := time.Duration(registry.GetIntConfig(cfg.Custom, "probe_timeout", 10)) * time.Second
	extraArgs := registry.GetStringSliceConfig(cfg.Custom, "extra_args")

	return New(logger, cfg.ExecPath, cfg.ProxyURL, probeTimeout, extraArgs), nil
}
