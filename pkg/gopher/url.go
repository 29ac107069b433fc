package gopher

import (
	"strconv"
	"strings"

	"github.com/mhollis/burrow/pkg/errors"
)

// URL is a parsed Gopher resource locator. It is a plain value: construct
// one with [Parse] or from components, pass it by value, never mutate it.
type URL struct {
	Host     string
	Port     int
	ItemType ItemType
	Selector string
	Secure   bool
	Query    string
}

// Parse parses a Gopher locator string.
//
// It accepts a bare hostname, host:port, and the fully qualified form
// [scheme://]host[:port][/typechar][selector][?query]. A missing scheme is
// treated as plaintext gopher; the "gophers" scheme enables TLS. A missing
// type character defaults to the directory type.
//
// Parse returns an INVALID_URL error for an empty or undecomposable string
// or a non-gopher scheme, and an INVALID_PORT error for a non-numeric or
// out-of-range port.
func Parse(raw string) (URL, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return URL{}, errors.New(errors.ErrCodeInvalidURL, "empty locator")
	}

	var u URL
	switch {
	case strings.HasPrefix(s, "gophers://"):
		u.Secure = true
		s = s[len("gophers://"):]
	case strings.HasPrefix(s, "gopher://"):
		s = s[len("gopher://"):]
	default:
		if i := strings.Index(s, "://"); i >= 0 {
			return URL{}, errors.New(errors.ErrCodeInvalidURL, "not a gopher locator: %s", raw)
		}
	}

	if i := strings.IndexByte(s, '?'); i >= 0 {
		u.Query = s[i+1:]
		s = s[:i]
	}

	hostport := s
	var path string
	if i := strings.IndexByte(s, '/'); i >= 0 {
		hostport = s[:i]
		path = s[i+1:]
	}

	host, port, err := splitHostPort(hostport)
	if err != nil {
		return URL{}, err
	}
	u.Host = host
	u.Port = port

	u.ItemType = TypeDirectory
	if path != "" {
		u.ItemType = TypeFromChar(path[0])
		u.Selector = path[1:]
	}

	return u, nil
}

// splitHostPort separates host and optional port, defaulting to port 70.
// IPv6 literals must be bracketed, as in "[::1]:70".
func splitHostPort(hostport string) (string, int, error) {
	host := hostport
	portStr := ""

	if strings.HasPrefix(hostport, "[") {
		end := strings.IndexByte(hostport, ']')
		if end < 0 {
			return "", 0, errors.New(errors.ErrCodeInvalidURL, "unclosed bracket in host: %s", hostport)
		}
		host = hostport[1:end]
		rest := hostport[end+1:]
		if rest != "" {
			if !strings.HasPrefix(rest, ":") {
				return "", 0, errors.New(errors.ErrCodeInvalidURL, "malformed host: %s", hostport)
			}
			portStr = rest[1:]
		}
	} else if i := strings.LastIndexByte(hostport, ':'); i >= 0 {
		host = hostport[:i]
		portStr = hostport[i+1:]
	}

	if host == "" {
		return "", 0, errors.New(errors.ErrCodeInvalidURL, "empty host")
	}

	port := DefaultPort
	if portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			return "", 0, errors.New(errors.ErrCodeInvalidPort, "non-numeric port: %q", portStr)
		}
		port = p
	}
	if port < 1 || port > 65535 {
		return "", 0, errors.New(errors.ErrCodeInvalidPort, "port out of range: %d", port)
	}
	return host, port, nil
}

// String renders the canonical locator form. Parsing the result yields a
// URL equal in all fields, so String is stable under re-parsing.
func (u URL) String() string {
	var b strings.Builder
	if u.Secure {
		b.WriteString("gophers://")
	} else {
		b.WriteString("gopher://")
	}

	if strings.Contains(u.Host, ":") {
		b.WriteString("[" + u.Host + "]")
	} else {
		b.WriteString(u.Host)
	}
	if u.Port != 0 && u.Port != DefaultPort {
		b.WriteString(":" + strconv.Itoa(u.Port))
	}

	t := u.ItemType
	if t == 0 {
		t = TypeDirectory
	}
	b.WriteString("/" + t.String() + u.Selector)

	if u.Query != "" {
		b.WriteString("?" + u.Query)
	}
	return b.String()
}

// Join returns a locator for a selector relative to this one, preserving
// host, port, item type, and the security flag. An absolute selector
// (leading slash) replaces the current one; a relative selector resolves
// against the current selector's directory. The query is always cleared.
func (u URL) Join(selector string) URL {
	joined := u
	joined.Query = ""

	if strings.HasPrefix(selector, "/") {
		joined.Selector = selector
		return joined
	}

	dir := ""
	if i := strings.LastIndexByte(u.Selector, '/'); i >= 0 {
		dir = u.Selector[:i]
	}
	if dir == "" {
		joined.Selector = selector
	} else {
		joined.Selector = dir + "/" + selector
	}
	return joined
}

// WithQuery returns a copy of the locator carrying a search query. Queries
// are only sent on the wire for search-type locators.
func (u URL) WithQuery(query string) URL {
	u.Query = query
	return u
}
