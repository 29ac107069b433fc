// Package cache implements the two-tier response cache that sits in front
// of the Gopher transport: a bounded in-memory tier with least-recently-used
// eviction and a persistent on-disk tier, both honoring one time-to-live.
//
// The memory tier is always consulted before the disk tier, and a disk hit
// is promoted into memory on read, so a memory entry is always a
// duplicate-or-fresher copy of the same-key disk entry. TTL is enforced at
// read time in both tiers; expired entries are proactively removed.
//
// Each tier guards its mutable state with its own mutex, so one [Tiered]
// instance may be shared by multiple goroutines. Disk writes go through a
// temp file and an atomic rename, which is the only cross-process
// consistency guarantee: a reader never observes a half-written entry.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Kind tags what a cached payload contains.
type Kind string

// Payload kinds.
const (
	KindDirectory Kind = "directory"
	KindText      Kind = "text"
	KindBinary    Kind = "binary"
)

// Entry is one cached response. The payload is the raw server response;
// directory payloads are re-parsed by the consumer on retrieval.
type Entry struct {
	Kind     Kind
	StoredAt time.Time
	URL      string // canonical locator the entry was fetched from
	Payload  []byte
}

// Expired reports whether the entry's age exceeds ttl. A non-positive ttl
// never expires an entry here; reuse-disabling (ttl == 0) is handled by
// [Tiered], which refuses reads entirely in that mode.
func (e Entry) Expired(ttl time.Duration) bool {
	return ttl > 0 && time.Since(e.StoredAt) > ttl
}

// Key derives the cache key for a canonical locator string: a SHA-256
// digest rendered as hex. Hashing keeps filesystem-unsafe characters and
// arbitrarily long selectors out of file names and is collision-resistant
// far beyond practical need.
func Key(canonical string) string {
	h := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(h[:])
}
