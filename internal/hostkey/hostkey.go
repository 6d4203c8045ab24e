// Package hostkey discovers the public host key of a remote SFTP endpoint.
//
// A scan performs key-only SSH handshakes against host:port, pinning one key
// algorithm at a time in a fixed preference order and capturing whatever key
// the server presents. The first non-empty key wins and the sweep stops. If
// the ordered sweep yields nothing, a single IPv4-only fallback probe without
// algorithm restriction is attempted before giving up.
//
// Network failures (DNS, connection refused, timeout) are folded into a
// not-found ScanResult with a diagnostic reason; only malformed input is
// reported as an error. A scan is read-only and never authenticates.
package hostkey

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
)

const (
	defaultTimeout = 30 * time.Second

	// scanUser is the username offered during the throwaway handshake.
	// The handshake is aborted at host key verification, so it never
	// reaches authentication.
	scanUser = "hostkey-scan"
)

// algorithmOrder is the fixed preference order for the key sweep.
var algorithmOrder = []string{
	ssh.KeyAlgoRSA,
	ssh.KeyAlgoECDSA256,
	ssh.KeyAlgoECDSA384,
	ssh.KeyAlgoECDSA521,
	ssh.KeyAlgoED25519,
}

// errKeyCaptured aborts the handshake once the host key has been seen.
var errKeyCaptured = errors.New("host key captured")

// ScanResult is the outcome of one scan invocation. At most one key is
// returned even if the server publishes several; callers needing a
// multi-algorithm trust list must scan repeatedly.
type ScanResult struct {
	// Found reports whether a key was discovered.
	Found bool

	// Key is the discovered key in authorized_keys format
	// ("ssh-rsa AAAA..."), empty when Found is false.
	Key string

	// Algorithm is the key type of the discovered key.
	Algorithm string

	// Reason carries a diagnostic when no key was found.
	Reason string
}

// Scanner probes remote endpoints for their SSH host keys.
type Scanner struct {
	timeout time.Duration

	// handshake establishes a connection and runs the SSH handshake.
	// Replaced in tests.
	handshake func(ctx context.Context, network, addr string, cfg *ssh.ClientConfig) error
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithTimeout sets the per-attempt timeout. If zero, the default of 30s is used.
func WithTimeout(d time.Duration) Option {
	return func(s *Scanner) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewScanner creates a Scanner with the default transport.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		timeout:   defaultTimeout,
		handshake: dialAndHandshake,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan discovers the host key of target. The target may be a bare hostname,
// host:port, or an sftp:// URL; see ParseEndpoint. The returned error is
// non-nil only for invalid input.
func (s *Scanner) Scan(ctx context.Context, target string) (ScanResult, error) {
	ep, err := ParseEndpoint(target)
	if err != nil {
		return ScanResult{}, err
	}

	var reasons []string
	for _, algo := range algorithmOrder {
		if err := ctx.Err(); err != nil {
			return ScanResult{}, err
		}

		key, keyType := s.probe(ctx, "tcp", ep, []string{algo}, &reasons)
		if key != "" {
			return ScanResult{Found: true, Key: key, Algorithm: keyType}, nil
		}
	}

	// Some endpoints misbehave on dual-stack dials; retry once over IPv4
	// with no algorithm restriction before giving up.
	if err := ctx.Err(); err != nil {
		return ScanResult{}, err
	}
	key, keyType := s.probe(ctx, "tcp4", ep, nil, &reasons)
	if key != "" {
		return ScanResult{Found: true, Key: key, Algorithm: keyType}, nil
	}

	return ScanResult{
		Found:  false,
		Reason: fmt.Sprintf("no host key discovered for %s: %s", ep.Addr(), strings.Join(dedupe(reasons), "; ")),
	}, nil
}

// probe runs one handshake attempt and returns the captured key, if any.
// Handshake errors are expected (the attempt never authenticates) and are
// collected as diagnostics only when no key was seen.
func (s *Scanner) probe(ctx context.Context, network string, ep Endpoint, algos []string, reasons *[]string) (key, keyType string) {
	var captured, capturedType string
	cfg := &ssh.ClientConfig{
		User:              scanUser,
		HostKeyAlgorithms: algos,
		HostKeyCallback: func(_ string, _ net.Addr, k ssh.PublicKey) error {
			captured = strings.TrimSpace(string(ssh.MarshalAuthorizedKey(k)))
			capturedType = k.Type()
			return errKeyCaptured
		},
		Timeout: s.timeout,
	}

	err := s.handshake(ctx, network, ep.Addr(), cfg)
	if captured != "" {
		return captured, capturedType
	}
	if err != nil && !errors.Is(err, errKeyCaptured) {
		*reasons = append(*reasons, err.Error())
	}
	return "", ""
}

// dialAndHandshake is the real transport: TCP dial honoring the context,
// then an SSH handshake that is expected to be aborted by the host key
// callback.
func dialAndHandshake(ctx context.Context, network, addr string, cfg *ssh.ClientConfig) error {
	d := net.Dialer{Timeout: cfg.Timeout}
	conn, err := d.DialContext(ctx, network, addr)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else if cfg.Timeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(cfg.Timeout))
	}

	c, chans, reqs, err := ssh.NewClientConn(conn, addr, cfg)
	if err != nil {
		return err
	}
	// Unreachable in practice: the callback aborts before auth. Close
	// cleanly anyway in case the server accepted the throwaway user.
	go ssh.DiscardRequests(reqs)
	go func() {
		for ch := range chans {
			_ = ch.Reject(ssh.Prohibited, "host key scan")
		}
	}()
	return c.Close()
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
