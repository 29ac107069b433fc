package transport

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"

	"github.com/mhollis/burrow/pkg/errors"
	"github.com/mhollis/burrow/pkg/gopher"
)

// startServer runs a one-shot Gopher server that records the request line
// it receives and answers with response.
func startServer(t *testing.T, response string) (gopher.URL, <-chan string) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	requests := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		line, err := bufio.NewReader(conn).ReadString('\n')
		if err != nil {
			return
		}
		requests <- line
		conn.Write([]byte(response))
	}()

	addr := ln.Addr().(*net.TCPAddr)
	return gopher.URL{Host: "127.0.0.1", Port: addr.Port, ItemType: gopher.TypeTextFile}, requests
}

func TestFetch(t *testing.T) {
	u, requests := startServer(t, "hello gopher\r\n")
	u.Selector = "/notes.txt"

	data, err := Fetch(context.Background(), u, Options{Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if got := string(data); got != "hello gopher\r\n" {
		t.Errorf("Fetch() = %q, want %q", got, "hello gopher\r\n")
	}
	if req := <-requests; req != "/notes.txt\r\n" {
		t.Errorf("request line = %q, want %q", req, "/notes.txt\r\n")
	}
}

func TestFetch_SearchQueryAppended(t *testing.T) {
	u, requests := startServer(t, "")
	u.ItemType = gopher.TypeSearch
	u.Selector = "/search"
	u.Query = "golang cache"

	if _, err := Fetch(context.Background(), u, Options{Timeout: 2 * time.Second}); err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if req := <-requests; req != "/search\tgolang cache\r\n" {
		t.Errorf("request line = %q, want query after tab", req)
	}
}

func TestFetch_QueryIgnoredForNonSearchTypes(t *testing.T) {
	u, requests := startServer(t, "")
	u.Selector = "/file.txt"
	u.Query = "should not appear"

	if _, err := Fetch(context.Background(), u, Options{Timeout: 2 * time.Second}); err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if req := <-requests; req != "/file.txt\r\n" {
		t.Errorf("request line = %q, want no query", req)
	}
}

func TestFetch_ConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	u := gopher.URL{Host: "127.0.0.1", Port: port, ItemType: gopher.TypeDirectory}
	_, err = Fetch(context.Background(), u, Options{Timeout: 2 * time.Second})
	if !errors.Is(err, errors.ErrCodeConnectionRefused) {
		t.Errorf("error code = %v, want CONNECTION_REFUSED", errors.GetCode(err))
	}
}

func TestFetch_ResolveFailure(t *testing.T) {
	u := gopher.URL{Host: "host.invalid", Port: 70, ItemType: gopher.TypeDirectory}
	_, err := Fetch(context.Background(), u, Options{Timeout: 2 * time.Second})
	if !errors.Is(err, errors.ErrCodeResolveFailed) {
		t.Errorf("error code = %v, want RESOLVE_FAILED", errors.GetCode(err))
	}
}

func TestFetch_ReadTimeout(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	// Accept and hold the connection open without responding.
	done := make(chan struct{})
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		<-done
	}()
	t.Cleanup(func() { close(done) })

	addr := ln.Addr().(*net.TCPAddr)
	u := gopher.URL{Host: "127.0.0.1", Port: addr.Port, ItemType: gopher.TypeTextFile}

	start := time.Now()
	_, err = Fetch(context.Background(), u, Options{Timeout: 100 * time.Millisecond})
	if !errors.Is(err, errors.ErrCodeTimeout) {
		t.Fatalf("error code = %v, want TIMEOUT", errors.GetCode(err))
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout took %v, want around 100ms", elapsed)
	}
}

func TestParseIPVersion(t *testing.T) {
	tests := []struct {
		raw     string
		want    IPVersion
		wantErr bool
	}{
		{"auto", IPAuto, false},
		{"", IPAuto, false},
		{"4", IPv4, false},
		{"ipv4", IPv4, false},
		{"v6", IPv6, false},
		{"IPv6", IPv6, false},
		{"both", IPAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseIPVersion(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseIPVersion(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseIPVersion(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestIPVersion_Network(t *testing.T) {
	tests := []struct {
		v    IPVersion
		want string
	}{
		{IPAuto, "tcp"},
		{IPv4, "tcp4"},
		{IPv6, "tcp6"},
	}
	for _, tt := range tests {
		if got := tt.v.network(); got != tt.want {
			t.Errorf("network(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
