// Package transport performs the network exchange of the Gopher protocol:
// one TCP (optionally TLS-wrapped) connection per request, the selector
// line out, the raw response back.
//
// The transport is stateless per call and does not retry; retry policy
// belongs to the caller. Failures are classified into distinct error codes
// (RESOLVE_FAILED, CONNECTION_REFUSED, TIMEOUT, TLS_FAILURE) so the caller
// can decide whether retrying with a different IP version is worthwhile.
package transport

import (
	"context"
	"crypto/tls"
	stderrors "errors"
	"io"
	"net"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/mhollis/burrow/pkg/errors"
	"github.com/mhollis/burrow/pkg/gopher"
)

// DefaultTimeout bounds the connect and read phases when Options.Timeout
// is zero.
const DefaultTimeout = 30 * time.Second

// IPVersion selects the address family used for dialing.
type IPVersion int

const (
	// IPAuto uses the system's default resolution order.
	IPAuto IPVersion = iota
	// IPv4 restricts dialing to IPv4 addresses.
	IPv4
	// IPv6 restricts dialing to IPv6 addresses.
	IPv6
)

// ParseIPVersion parses a configuration string into an IPVersion.
// Accepted forms: "auto" (or empty), "4"/"v4"/"ipv4", "6"/"v6"/"ipv6".
func ParseIPVersion(s string) (IPVersion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return IPAuto, nil
	case "4", "v4", "ipv4":
		return IPv4, nil
	case "6", "v6", "ipv6":
		return IPv6, nil
	default:
		return IPAuto, errors.New(errors.ErrCodeInvalidConfig, "invalid ip version: %q", s)
	}
}

// network returns the net.Dial network string for this preference.
func (v IPVersion) network() string {
	switch v {
	case IPv4:
		return "tcp4"
	case IPv6:
		return "tcp6"
	default:
		return "tcp"
	}
}

// String returns the configuration form of the preference.
func (v IPVersion) String() string {
	switch v {
	case IPv4:
		return "ipv4"
	case IPv6:
		return "ipv6"
	default:
		return "auto"
	}
}

// Options controls a single fetch.
type Options struct {
	// Timeout bounds connect, TLS handshake, write, and read together.
	// Zero means DefaultTimeout.
	Timeout time.Duration
	// IPVersion is the preferred address family.
	IPVersion IPVersion
}

// Fetch retrieves the raw response for a locator: it dials host:port with
// the configured family preference, wraps the connection in TLS when the
// locator is secure, writes the selector (plus a tab-separated query for
// search-type locators) terminated by CRLF, and reads until the peer
// closes the connection or the timeout elapses.
//
// The connection is closed on every exit path. A timeout never yields a
// partial silent success; it is always reported as a TIMEOUT error.
func Fetch(ctx context.Context, u gopher.URL, opts Options) ([]byte, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	addr := net.JoinHostPort(u.Host, strconv.Itoa(u.Port))
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, opts.IPVersion.network(), addr)
	if err != nil {
		return nil, classifyDialError(addr, err)
	}
	defer conn.Close()

	// One absolute deadline covers handshake, write, and read.
	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "set deadline for %s", addr)
	}

	if u.Secure {
		tlsConn := tls.Client(conn, &tls.Config{ServerName: u.Host})
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			return nil, errors.Wrap(errors.ErrCodeTLSFailure, err, "tls handshake with %s", addr)
		}
		conn = tlsConn
	}

	if _, err := conn.Write([]byte(requestLine(u))); err != nil {
		return nil, classifyIOError(addr, "send request to", err)
	}

	data, err := io.ReadAll(conn)
	if err != nil {
		return nil, classifyIOError(addr, "read response from", err)
	}
	return data, nil
}

// requestLine builds the wire request: selector[\tquery]CRLF. The query is
// only transmitted for search-type locators; other types ignore it.
func requestLine(u gopher.URL) string {
	req := u.Selector
	if u.ItemType == gopher.TypeSearch && u.Query != "" {
		req += "\t" + u.Query
	}
	return req + "\r\n"
}

func classifyDialError(addr string, err error) error {
	var dnsErr *net.DNSError
	if stderrors.As(err, &dnsErr) {
		return errors.Wrap(errors.ErrCodeResolveFailed, err, "resolve %s", addr)
	}
	if stderrors.Is(err, syscall.ECONNREFUSED) {
		return errors.Wrap(errors.ErrCodeConnectionRefused, err, "connect to %s", addr)
	}
	if isTimeout(err) {
		return errors.Wrap(errors.ErrCodeTimeout, err, "connect to %s", addr)
	}
	return errors.Wrap(errors.ErrCodeNetwork, err, "connect to %s", addr)
}

func classifyIOError(addr, verb string, err error) error {
	if isTimeout(err) {
		return errors.Wrap(errors.ErrCodeTimeout, err, "%s %s", verb, addr)
	}
	return errors.Wrap(errors.ErrCodeNetwork, err, "%s %s", verb, addr)
}

func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return stderrors.As(err, &netErr) && netErr.Timeout()
}
