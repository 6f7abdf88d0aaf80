// internal/backends/rdpgrab/probe.go
package rdpgrab

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"net/url"
	"time"

	"golang.org/x/net/proxy"

	"opticx/internal/platform/errors"
	"opticx/internal/platform/logx"
)

const (
	defaultProbeTimeout = 10 * time.Second

	negTypeRequest  = 0x01
	negTypeResponse = 0x02
	negTypeFailure  = 0x03

	protocolSSL = 0x00000001
)

// prober performs the preflight connection check against an RDP endpoint:
// TCP dial (optionally through SOCKS5) followed by an X.224 Connection
// Request negotiating TLS security. It exists to classify dead targets
// cheaply before a grabber subprocess is spent on them.
type prober struct {
	logger   logx.Logger
	proxyURL string
	timeout  time.Duration
}

func newProber(logger logx.Logger, proxyURL string, timeout time.Duration) *prober {
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	return &prober{logger: logger, proxyURL: proxyURL, timeout: timeout}
}

// probe dials the target and exchanges the RDP negotiation. Every failure
// here is isolated to the target: refusals, timeouts and protocol surprises
// all classify as per-target upstream.
func (p *prober) probe(ctx context.Context, address string) error {
	dialCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	conn, err := p.dial(dialCtx, address)
	if err != nil {
		return errors.Wrapf(errors.ErrProbeRefused, "%s: %v", address, err)
	}
	defer conn.Close()

	if deadline, ok := dialCtx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if _, err := conn.Write(negotiationRequest()); err != nil {
		return errors.Wrapf(err, "sending x224 connection request to %s", address)
	}

	if err := readNegotiationConfirm(conn); err != nil {
		return errors.Wrapf(err, "rdp negotiation with %s", address)
	}

	p.logger.Debug("probe ok", "target", address)
	return nil
}

// dial opens the TCP connection, through SOCKS5 when a proxy is configured.
func (p *prober) dial(ctx context.Context, address string) (net.Conn, error) {
	if p.proxyURL == "" {
		var d net.Dialer
		return d.DialContext(ctx, "tcp", address)
	}

	u, err := url.Parse(p.proxyURL)
	if err != nil {
		return nil, fmt.Errorf("bad proxy url: %w", err)
	}
	if u.Scheme != "socks5" {
		return nil, fmt.Errorf("unsupported proxy scheme %q", u.Scheme)
	}

	var auth *proxy.Auth
	if u.User != nil {
		pw, _ := u.User.Password()
		auth = &proxy.Auth{User: u.User.Username(), Password: pw}
	}

	dialer, err := proxy.SOCKS5("tcp", u.Host, auth, proxy.Direct)
	if err != nil {
		return nil, err
	}
	if cd, ok := dialer.(proxy.ContextDialer); ok {
		return cd.DialContext(ctx, "tcp", address)
	}
	return dialer.Dial("tcp", address)
}

// negotiationRequest builds a TPKT-framed X.224 Connection Request carrying
// an RDP_NEG_REQ that asks for TLS security.
func negotiationRequest() []byte {
	// RDP_NEG_REQ: type, flags, length (LE), requestedProtocols (LE)
	neg := make([]byte, 8)
	neg[0] = negTypeRequest
	binary.LittleEndian.PutUint16(neg[2:], 8)
	binary.LittleEndian.PutUint32(neg[4:], protocolSSL)

	// X.224 CR TPDU: LI, CR code, dst-ref, src-ref, class 0
	x224 := append([]byte{byte(6 + len(neg)), 0xE0, 0x00, 0x00, 0x00, 0x00, 0x00}, neg...)

	// TPKT: version 3, reserved, length (BE)
	tpkt := make([]byte, 4)
	tpkt[0] = 0x03
	binary.BigEndian.PutUint16(tpkt[2:], uint16(4+len(x224)))

	return append(tpkt, x224...)
}

// readNegotiationConfirm parses the TPKT-framed X.224 Connection Confirm.
// A server without a negotiation payload is still accepted: legacy standard
// RDP security responds with a bare confirm.
func readNegotiationConfirm(conn net.Conn) error {
	header := make([]byte, 4)
	if _, err := io.ReadFull(conn, header); err != nil {
		return fmt.Errorf("reading tpkt header: %w", err)
	}
	if header[0] != 0x03 {
		return fmt.Errorf("not a tpkt response (version %#x)", header[0])
	}

	total := int(binary.BigEndian.Uint16(header[2:]))
	if total < 11 || total > 1024 {
		return fmt.Errorf("implausible tpkt length %d", total)
	}

	body := make([]byte, total-4)
	if _, err := io.ReadFull(conn, body); err != nil {
		return fmt.Errorf("reading x224 confirm: %w", err)
	}
	if body[1] != 0xD0 {
		return fmt.Errorf("expected x224 connection confirm, got code %#x", body[1])
	}

	// Optional RDP_NEG payload after the 7-byte fixed part
	if len(body) >= 15 && body[7] == negTypeFailure {
		code := binary.LittleEndian.Uint32(body[11:15])
		return fmt.Errorf("negotiation failure, code %d", code)
	}

	return nil
}
