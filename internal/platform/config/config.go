// internal/platform/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"opticx/internal/core/ports"
)

type Config struct {
	// Targets (entradas del resolver)
	RDPTargets  []string `yaml:"rdp_targets"`
	WebTargets  []string `yaml:"web_targets"`
	TargetFiles []string `yaml:"target_files"`
	NmapFiles   []string `yaml:"nmap_files"`

	// Capture
	WebBackend      string `yaml:"web_backend"`
	RDPBackend      string `yaml:"rdp_backend"`
	MaxConcurrent   int    `yaml:"max_concurrent"`
	CaptureTimeoutS int    `yaml:"capture_timeout"` // segundos (0 = sin timeout)
	ProxyURL        string `yaml:"proxy_url"`

	// IO
	OutputDir  string `yaml:"output_dir"`
	ConfigFile string `yaml:"-"`

	// Log / UI
	LogLevel     string `yaml:"log_level"`
	Quiet        bool   `yaml:"quiet"`
	NoProgress   bool   `yaml:"no_progress"`
	PrintVersion bool   `yaml:"-"`

	// Backends: configuración específica por backend.
	// Key = backend name (ej: "chromium", "rdpgrab")
	Backends map[string]map[string]interface{} `yaml:"backends"`
}

// DefaultConfig retorna una configuración por defecto.
func DefaultConfig() Config {
	return Config{
		WebBackend:      "chromium",
		RDPBackend:      "rdpgrab",
		MaxConcurrent:   3,
		CaptureTimeoutS: 60,
		OutputDir:       "opticx_out",
		LogLevel:        "info",
		Backends:        make(map[string]map[string]interface{}),
	}
}

// Load inicializa la configuración: defaults -> ENV -> fichero YAML -> FLAGS.
// Los flags tienen la máxima prioridad; el fichero solo pisa lo que declara.
func Load(args []string) (Config, error) {
	cfg := DefaultConfig()

	fs := newFlagSet(&cfg)
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	// Los valores de flags ya están en cfg; conservar los que el usuario
	// tocó explícitamente para re-aplicarlos encima del fichero.
	flagged := cfg

	loadFromEnv(&cfg)

	if cfg.ConfigFile == "" {
		cfg.ConfigFile = flagged.ConfigFile
	}
	if cfg.ConfigFile != "" {
		if err := loadFromFile(&cfg, cfg.ConfigFile); err != nil {
			return cfg, fmt.Errorf("config file: %w", err)
		}
	}

	applyChangedFlags(&cfg, flagged, fs)

	normalize(&cfg)
	return cfg, nil
}

func newFlagSet(cfg *Config) *pflag.FlagSet {
	fs := pflag.NewFlagSet("opticx", pflag.ContinueOnError)

	fs.StringArrayVar(&cfg.RDPTargets, "rdp", nil, "RDP target host[:port] (repeatable)")
	fs.StringArrayVar(&cfg.WebTargets, "web", nil, "Web target URL (repeatable)")
	fs.StringArrayVarP(&cfg.TargetFiles, "file", "f", nil, "File with one target per line (repeatable)")
	fs.StringArrayVar(&cfg.NmapFiles, "nmap", nil, "Nmap XML output file to extract targets from (repeatable)")

	fs.StringVar(&cfg.WebBackend, "web-backend", cfg.WebBackend, "Web capture backend (chromium, wkhtml)")
	fs.StringVar(&cfg.RDPBackend, "rdp-backend", cfg.RDPBackend, "RDP capture backend (rdpgrab)")
	fs.IntVar(&cfg.MaxConcurrent, "max-concurrent", cfg.MaxConcurrent, "Concurrent RDP capture workers")
	fs.IntVar(&cfg.CaptureTimeoutS, "timeout", cfg.CaptureTimeoutS, "Per-capture timeout in seconds (0 = no timeout)")
	fs.StringVar(&cfg.ProxyURL, "proxy", cfg.ProxyURL, "SOCKS5 proxy for RDP probing (socks5://host:port)")

	fs.StringVarP(&cfg.OutputDir, "out", "o", cfg.OutputDir, "Output directory")
	fs.StringVarP(&cfg.ConfigFile, "config", "c", "", "YAML config file")

	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, "Only log warnings and errors")
	fs.BoolVar(&cfg.NoProgress, "no-progress", cfg.NoProgress, "Disable terminal progress output")
	fs.BoolVar(&cfg.PrintVersion, "version", false, "Print version and exit")

	return fs
}

// applyChangedFlags re-aplica sobre cfg los valores de flags que el usuario
// fijó explícitamente (prioridad: flags > fichero > ENV > defaults).
func applyChangedFlags(cfg *Config, flagged Config, fs *pflag.FlagSet) {
	set := map[string]func(){
		"rdp":            func() { cfg.RDPTargets = flagged.RDPTargets },
		"web":            func() { cfg.WebTargets = flagged.WebTargets },
		"file":           func() { cfg.TargetFiles = flagged.TargetFiles },
		"nmap":           func() { cfg.NmapFiles = flagged.NmapFiles },
		"web-backend":    func() { cfg.WebBackend = flagged.WebBackend },
		"rdp-backend":    func() { cfg.RDPBackend = flagged.RDPBackend },
		"max-concurrent": func() { cfg.MaxConcurrent = flagged.MaxConcurrent },
		"timeout":        func() { cfg.CaptureTimeoutS = flagged.CaptureTimeoutS },
		"proxy":          func() { cfg.ProxyURL = flagged.ProxyURL },
		"out":            func() { cfg.OutputDir = flagged.OutputDir },
		"log-level":      func() { cfg.LogLevel = flagged.LogLevel },
		"quiet":          func() { cfg.Quiet = flagged.Quiet },
		"no-progress":    func() { cfg.NoProgress = flagged.NoProgress },
		"version":        func() { cfg.PrintVersion = flagged.PrintVersion },
	}
	fs.Visit(func(f *pflag.Flag) {
		if apply, ok := set[f.Name]; ok {
			apply()
		}
	})
}

// loadFromEnv carga configuración desde variables de entorno OPTICX_*.
func loadFromEnv(cfg *Config) {
	if v := getenv("OPTICX_WEB_BACKEND", ""); v != "" {
		cfg.WebBackend = v
	}
	if v := getenv("OPTICX_RDP_BACKEND", ""); v != "" {
		cfg.RDPBackend = v
	}
	if v := getenv("OPTICX_MAX_CONCURRENT", ""); v != "" {
		cfg.MaxConcurrent = parseInt(v, cfg.MaxConcurrent)
	}
	if v := getenv("OPTICX_TIMEOUT", ""); v != "" {
		cfg.CaptureTimeoutS = parseInt(v, cfg.CaptureTimeoutS)
	}
	if v := getenv("OPTICX_PROXY_URL", ""); v != "" {
		cfg.ProxyURL = v
	}
	if v := getenv("OPTICX_OUTPUT_DIR", ""); v != "" {
		cfg.OutputDir = v
	}
	if v := getenv("OPTICX_CONFIG", ""); v != "" {
		cfg.ConfigFile = v
	}
	if v := getenv("OPTICX_LOG_LEVEL", ""); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv("OPTICX_QUIET", ""); v != "" {
		cfg.Quiet = parseBool(v)
	}
	if v := getenv("OPTICX_NO_PROGRESS", ""); v != "" {
		cfg.NoProgress = parseBool(v)
	}
}

// loadFromFile mezcla un fichero YAML encima de la configuración actual.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func normalize(c *Config) {
	c.WebBackend = strings.ToLower(strings.TrimSpace(c.WebBackend))
	c.RDPBackend = strings.ToLower(strings.TrimSpace(c.RDPBackend))
	if c.MaxConcurrent < 1 {
		c.MaxConcurrent = 1
	}
	if c.CaptureTimeoutS < 0 {
		c.CaptureTimeoutS = 0
	}
	if c.OutputDir == "" {
		c.OutputDir = "opticx_out"
	}
	if c.Backends == nil {
		c.Backends = make(map[string]map[string]interface{})
	}
}

// CaptureTimeout devuelve el timeout por captura como time.Duration.
func (c Config) CaptureTimeout() time.Duration {
	if c.CaptureTimeoutS <= 0 {
		return 0
	}
	return time.Duration(c.CaptureTimeoutS) * time.Second
}

// BackendConfig materializa la configuración ports para un backend concreto.
func (c Config) BackendConfig(name string) ports.BackendConfig {
	bc := ports.DefaultBackendConfig()
	bc.Timeout = c.CaptureTimeout()
	bc.ProxyURL = c.ProxyURL

	if custom, ok := c.Backends[name]; ok && custom != nil {
		bc.Custom = custom
		if v, ok := custom["exec_path"].(string); ok && v != "" {
			bc.ExecPath = v
		}
	}
	return bc
}

// Helpers

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok {
		return v
	}
	return def
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(v string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}
