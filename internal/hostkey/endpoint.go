package hostkey

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

const defaultPort = 22

// Endpoint is a parsed scan target.
type Endpoint struct {
	Host string
	Port int
}

// Addr returns the host:port dial address.
func (e Endpoint) Addr() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// ParseEndpoint parses a scan target. Accepted forms:
//
//	example.com
//	example.com:2222
//	sftp://example.com
//	sftp://example.com:2222/upload
//
// The scheme defaults to sftp:// and the port to 22. A path suffix is
// allowed and ignored. Anything else is rejected.
func ParseEndpoint(target string) (Endpoint, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return Endpoint{}, fmt.Errorf("endpoint URL is empty")
	}
	if strings.ContainsAny(target, " \t") {
		return Endpoint{}, fmt.Errorf("invalid endpoint URL %q: contains whitespace", target)
	}

	if !strings.Contains(target, "://") {
		target = "sftp://" + target
	}

	u, err := url.Parse(target)
	if err != nil {
		return Endpoint{}, fmt.Errorf("invalid endpoint URL %q: %w", target, err)
	}
	if u.Scheme != "sftp" {
		return Endpoint{}, fmt.Errorf("invalid endpoint URL %q: unsupported scheme %q", target, u.Scheme)
	}
	if u.User != nil {
		return Endpoint{}, fmt.Errorf("invalid endpoint URL %q: user info not allowed", target)
	}
	if u.Hostname() == "" {
		return Endpoint{}, fmt.Errorf("invalid endpoint URL %q: missing hostname", target)
	}

	port := defaultPort
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil || port < 1 || port > 65535 {
			return Endpoint{}, fmt.Errorf("invalid endpoint URL %q: bad port %q", target, p)
		}
	}

	return Endpoint{Host: u.Hostname(), Port: port}, nil
}
