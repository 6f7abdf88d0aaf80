// internal/core/domain/target.go
package domain

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// TargetKind distingue las dos clases de objetivo que opticx captura.
type TargetKind string

const (
	KindRDP TargetKind = "rdp"
	KindWeb TargetKind = "web"
)

// DefaultRDPPort es el puerto usado cuando un target RDP no especifica uno.
const DefaultRDPPort = 3389

// Target es el descriptor opaco que los backends reciben para una captura.
// Las implementaciones son inmutables una vez construidas.
type Target interface {
	// Kind retorna la clase del target (rdp o web)
	Kind() TargetKind

	// Address retorna la dirección capturable (host:port o URL completa)
	Address() string

	// FileStem retorna un nombre de fichero portable (sin extensión) para
	// la imagen producida por este target
	FileStem() string
}

// RDPTarget direcciona un endpoint RDP por host y puerto.
type RDPTarget struct {
	Host string
	Port int
}

// WebTarget direcciona una página por URL absoluta http(s).
type WebTarget struct {
	URL string
}

// TargetList agrupa las dos secuencias ordenadas de targets.
// Invariante: inmutable tras construcción; se comparte en solo-lectura
// entre el pipeline web y el pool RDP durante toda la ejecución.
type TargetList struct {
	RDP []RDPTarget
	Web []WebTarget
}

// Total retorna el número total de targets de ambas clases.
func (l *TargetList) Total() int {
	return len(l.RDP) + len(l.Web)
}

// Empty indica si la lista no contiene ningún target.
func (l *TargetList) Empty() bool {
	return l.Total() == 0
}

// ParseRDPTarget construye un RDPTarget desde "host", "host:port" o
// "rdp://host:port". Sin puerto explícito se asume DefaultRDPPort.
func ParseRDPTarget(s string) (RDPTarget, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "rdp://")
	if s == "" {
		return RDPTarget{}, ErrEmptyTarget
	}

	host := s
	port := DefaultRDPPort

	if h, p, err := net.SplitHostPort(s); err == nil {
		n, convErr := strconv.Atoi(p)
		if convErr != nil || n < 1 || n > 65535 {
			return RDPTarget{}, fmt.Errorf("%w: bad port in %q", ErrInvalidTarget, s)
		}
		host = h
		port = n
	} else if strings.Count(s, ":") > 1 && !strings.Contains(s, "[") {
		// IPv6 literal sin corchetes ni puerto
		host = s
	}

	if host == "" {
		return RDPTarget{}, fmt.Errorf("%w: %q", ErrInvalidTarget, s)
	}

	return RDPTarget{Host: host, Port: port}, nil
}

// ParseWebTarget valida una URL http(s) absoluta.
func ParseWebTarget(s string) (WebTarget, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return WebTarget{}, ErrEmptyTarget
	}

	u, err := url.Parse(s)
	if err != nil {
		return WebTarget{}, fmt.Errorf("%w: %v", ErrInvalidTarget, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return WebTarget{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidTarget, u.Scheme)
	}
	if u.Host == "" {
		return WebTarget{}, fmt.Errorf("%w: missing host in %q", ErrInvalidTarget, s)
	}

	return WebTarget{URL: u.String()}, nil
}

func (t RDPTarget) Kind() TargetKind { return KindRDP }

func (t RDPTarget) Address() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

func (t RDPTarget) FileStem() string {
	return sanitizeStem(fmt.Sprintf("%s-%d", t.Host, t.Port))
}

func (t RDPTarget) String() string {
	return "rdp://" + t.Address()
}

func (t WebTarget) Kind() TargetKind { return KindWeb }

func (t WebTarget) Address() string { return t.URL }

func (t WebTarget) FileStem() string {
	s := t.URL
	if idx := strings.Index(s, "://"); idx >= 0 {
		s = s[idx+3:]
	}
	s = strings.TrimSuffix(s, "/")
	return sanitizeStem(s)
}

func (t WebTarget) String() string { return t.URL }

// sanitizeStem reemplaza los caracteres problemáticos para un nombre de
// fichero portable. Mantiene letras, dígitos, punto y guión.
func sanitizeStem(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := b.String()
	if out == "" {
		out = "target"
	}
	return out
}
