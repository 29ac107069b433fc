// Package client is the high-level entry point of the burrow core: it
// orchestrates locator validation, cache lookup, the transport exchange,
// content classification, and cache population.
//
// A [Client] call is synchronous: it either returns immediately from the
// cache or blocks until the transport finishes or times out. One Client
// may be shared by multiple goroutines; the cache tiers carry their own
// locks and the transport is stateless per call.
//
// # Usage
//
//	c, err := client.New(client.Config{
//	    Timeout:  10 * time.Second,
//	    CacheDir: "~/.cache/burrow",
//	    CacheTTL: time.Hour,
//	})
//	if err != nil {
//	    return err
//	}
//	resp, err := c.Retrieve(ctx, "gopher://gopher.example.org/1/")
package client

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mhollis/burrow/pkg/cache"
	"github.com/mhollis/burrow/pkg/errors"
	"github.com/mhollis/burrow/pkg/gopher"
	"github.com/mhollis/burrow/pkg/transport"
)

// Defaults applied by New for zero-valued configuration fields.
const (
	DefaultTimeout       = 30 * time.Second
	DefaultCacheTTL      = time.Hour
	DefaultMemoryEntries = 100
)

// Kind tags what a Response carries. It is shared with the cache layer.
type Kind = cache.Kind

// Response kinds.
const (
	KindDirectory = cache.KindDirectory
	KindText      = cache.KindText
	KindBinary    = cache.KindBinary
)

// Config is the process-wide client configuration, injected once at
// construction. Reconfiguration requires a new Client.
type Config struct {
	// Timeout bounds each transport exchange. Zero means DefaultTimeout.
	Timeout time.Duration
	// CacheDir is the disk tier's directory; empty disables the disk tier.
	CacheDir string
	// IPVersion is the preferred address family for dialing.
	IPVersion transport.IPVersion
	// CacheTTL is the entry time-to-live. Zero disables cache reuse
	// entirely, so every retrieval hits the network; callers wanting the
	// usual default should pass DefaultCacheTTL. Negative values are
	// rejected.
	CacheTTL time.Duration
	// MemoryCacheEntries bounds the in-memory tier. Zero means
	// DefaultMemoryEntries.
	MemoryCacheEntries int
}

func (cfg Config) validate() error {
	if cfg.Timeout < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "timeout must not be negative: %v", cfg.Timeout)
	}
	if cfg.CacheTTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must not be negative: %v", cfg.CacheTTL)
	}
	if cfg.MemoryCacheEntries < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "memory cache capacity must not be negative: %d", cfg.MemoryCacheEntries)
	}
	return nil
}

// Fetcher performs the raw network exchange for a locator. It exists as a
// seam so tests can substitute a fake transport.
type Fetcher interface {
	Fetch(ctx context.Context, u gopher.URL) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, u gopher.URL) ([]byte, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, u gopher.URL) ([]byte, error) {
	return f(ctx, u)
}

// Option customizes a Client at construction.
type Option func(*Client)

// WithLogger attaches a logger for debug output (cache decisions, parse
// warnings). Without it the client is silent.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithFetcher replaces the network transport, typically with a fake in
// tests.
func WithFetcher(f Fetcher) Option {
	return func(c *Client) { c.fetch = f }
}

// Client retrieves Gopher resources through the two-tier cache. Construct
// it with New; the zero value is not usable.
type Client struct {
	cfg   Config
	cache *cache.Tiered
	fetch Fetcher
	log   *log.Logger
}

// New validates cfg, builds the cache tiers, and returns a ready Client.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MemoryCacheEntries == 0 {
		cfg.MemoryCacheEntries = DefaultMemoryEntries
	}

	store, err := cache.NewTiered(cfg.MemoryCacheEntries, cfg.CacheDir, cfg.CacheTTL)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "initialize cache")
	}

	c := &Client{
		cfg:   cfg,
		cache: store,
		log:   log.New(io.Discard),
	}
	c.fetch = FetcherFunc(func(ctx context.Context, u gopher.URL) ([]byte, error) {
		return transport.Fetch(ctx, u, transport.Options{
			Timeout:   cfg.Timeout,
			IPVersion: cfg.IPVersion,
		})
	})
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Response is the typed result of a retrieval. Exactly one of Items, Text,
// or Data is meaningful, selected by Kind.
type Response struct {
	URL       gopher.URL
	Kind      Kind
	Items     []gopher.Item // directory listings
	Text      string        // textual content
	Data      []byte        // opaque binary content
	FromCache bool
}

// Retrieve parses raw as a locator and fetches it. See RetrieveURL.
func (c *Client) Retrieve(ctx context.Context, raw string) (*Response, error) {
	u, err := gopher.Parse(raw)
	if err != nil {
		return nil, err
	}
	return c.RetrieveURL(ctx, u)
}

// RetrieveURL fetches a locator: cache first, transport on a miss, then
// classification by the locator's item type (directory types through the
// menu parser, text types decoded, everything else an opaque buffer). A
// fresh fetch populates both cache tiers.
//
// Validation and transport errors are returned unchanged. A listing that
// only reports server errors yields a SERVER_ERROR so callers can render
// it distinctly from transport failures; such responses are not cached.
func (c *Client) RetrieveURL(ctx context.Context, u gopher.URL) (*Response, error) {
	key := cache.Key(u.String())

	if entry, ok := c.cache.Get(key); ok {
		c.log.Debug("cache hit", "url", u.String(), "kind", entry.Kind)
		return c.buildResponse(u, entry.Kind, entry.Payload, true)
	}

	c.log.Debug("cache miss", "url", u.String())
	payload, err := c.fetch.Fetch(ctx, u)
	if err != nil {
		return nil, err
	}

	kind := classify(u.ItemType)
	resp, err := c.buildResponse(u, kind, payload, false)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Put(key, cache.Entry{
		Kind:     kind,
		StoredAt: time.Now(),
		URL:      u.String(),
		Payload:  payload,
	}); err != nil {
		// The memory copy is already live; a disk write failure only
		// costs persistence.
		c.log.Warn("cache write failed", "url", u.String(), "err", err)
	}
	return resp, nil
}

// Download fetches a locator and writes the raw bytes to dest, creating
// parent directories as needed. Downloads bypass the cache in both
// directions and return the number of bytes written.
func (c *Client) Download(ctx context.Context, raw string, dest string) (int64, error) {
	u, err := gopher.Parse(raw)
	if err != nil {
		return 0, err
	}

	payload, err := c.fetch.Fetch(ctx, u)
	if err != nil {
		return 0, err
	}

	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, errors.Wrap(errors.ErrCodeInternal, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(dest, payload, 0o644); err != nil {
		return 0, errors.Wrap(errors.ErrCodeInternal, err, "write %s", dest)
	}
	c.log.Debug("downloaded", "url", u.String(), "dest", dest, "bytes", len(payload))
	return int64(len(payload)), nil
}

// CacheDir returns the disk tier's directory, or "" when disabled.
func (c *Client) CacheDir() string { return c.cache.Dir() }

// CacheTTL returns the configured entry time-to-live.
func (c *Client) CacheTTL() time.Duration { return c.cache.TTL() }

// ClearCache empties both cache tiers.
func (c *Client) ClearCache() error { return c.cache.Clear() }

// EvictExpired sweeps expired entries from both cache tiers.
func (c *Client) EvictExpired() { c.cache.EvictExpired() }

// classify maps a locator's item type to the payload kind. Search
// responses are menus, so they classify as directories; the zero item
// type defaults to directory as well.
func classify(t gopher.ItemType) Kind {
	switch {
	case t == 0 || t == gopher.TypeDirectory || t == gopher.TypeSearch:
		return KindDirectory
	case t.IsText():
		return KindText
	default:
		return KindBinary
	}
}

// buildResponse turns a payload into a typed result for the caller.
func (c *Client) buildResponse(u gopher.URL, kind Kind, payload []byte, fromCache bool) (*Response, error) {
	resp := &Response{URL: u, Kind: kind, FromCache: fromCache}

	switch kind {
	case KindDirectory:
		items, warnings := gopher.ParseMenu(payload)
		for _, w := range warnings {
			c.log.Debug("menu parse warning", "url", u.String(), "warning", w)
		}
		if msg, ok := serverError(items); ok {
			return nil, errors.New(errors.ErrCodeServerError, "%s reported: %s", u.Host, msg)
		}
		resp.Items = items
	case KindText:
		text := gopher.DecodeText(payload)
		if u.ItemType == gopher.TypeError {
			return nil, errors.New(errors.ErrCodeServerError, "%s reported: %s", u.Host, strings.TrimSpace(text))
		}
		resp.Text = text
	default:
		resp.Data = payload
	}
	return resp, nil
}

// serverError reports whether a listing is solely a server-side error
// notice: at least one error-marker item and nothing else but
// informational lines. The returned message joins the error items'
// display text.
func serverError(items []gopher.Item) (string, bool) {
	var msgs []string
	for _, it := range items {
		switch it.Type {
		case gopher.TypeError:
			msgs = append(msgs, strings.TrimSpace(it.Display))
		case gopher.TypeInfo:
			// Informational padding around an error notice.
		default:
			return "", false
		}
	}
	if len(msgs) == 0 {
		return "", false
	}
	return strings.Join(msgs, "; "), true
}
