package cache

import (
	"os"
	"testing"
	"time"
)

func TestTiered_GetPut(t *testing.T) {
	c, err := NewTiered(4, t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewTiered() failed: %v", err)
	}

	if err := c.Put("key", entry("payload")); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	got, ok := c.Get("key")
	if !ok {
		t.Fatal("Get() returned false for stored key")
	}
	if string(got.Payload) != "payload" {
		t.Errorf("Payload = %q, want %q", got.Payload, "payload")
	}
}

// A disk hit must be promoted into the memory tier.
func TestTiered_DiskHitPromoted(t *testing.T) {
	dir := t.TempDir()
	c, _ := NewTiered(4, dir, time.Hour)

	// Seed the disk tier directly, bypassing memory.
	if err := c.disk.Put("key", entry("from disk")); err != nil {
		t.Fatalf("disk Put() failed: %v", err)
	}

	if _, ok := c.memory.Get("key"); ok {
		t.Fatal("memory tier unexpectedly populated")
	}
	if _, ok := c.Get("key"); !ok {
		t.Fatal("Get() missed a disk entry")
	}
	if _, ok := c.memory.Get("key"); !ok {
		t.Error("disk hit was not promoted into memory")
	}
}

// An entry older than the TTL is never returned from either tier and is
// proactively removed.
func TestTiered_ExpiredEntryRemovedFromBothTiers(t *testing.T) {
	dir := t.TempDir()
	c, _ := NewTiered(4, dir, time.Hour)

	stale := Entry{Kind: KindText, StoredAt: time.Now().Add(-2 * time.Hour), Payload: []byte("stale")}
	c.memory.Put("key", stale)
	if err := c.disk.Put("key", stale); err != nil {
		t.Fatalf("disk Put() failed: %v", err)
	}

	if _, ok := c.Get("key"); ok {
		t.Fatal("Get() returned an expired entry")
	}
	if _, ok := c.memory.Get("key"); ok {
		t.Error("expired entry still in memory tier")
	}
	if _, ok := c.disk.Get("key"); ok {
		t.Error("expired entry still on disk")
	}
}

func TestTiered_ExpiredDiskOnlyEntryRemoved(t *testing.T) {
	dir := t.TempDir()
	c, _ := NewTiered(4, dir, time.Hour)

	stale := Entry{Kind: KindText, StoredAt: time.Now().Add(-2 * time.Hour), Payload: []byte("stale")}
	if err := c.disk.Put("key", stale); err != nil {
		t.Fatalf("disk Put() failed: %v", err)
	}

	if _, ok := c.Get("key"); ok {
		t.Fatal("Get() returned an expired disk entry")
	}
	if _, ok := c.disk.Get("key"); ok {
		t.Error("expired entry still on disk")
	}
}

// ttl == 0 disables reuse entirely.
func TestTiered_ZeroTTLDisablesReuse(t *testing.T) {
	dir := t.TempDir()
	c, _ := NewTiered(4, dir, 0)

	if err := c.Put("key", entry("payload")); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if _, ok := c.Get("key"); ok {
		t.Error("Get() hit with ttl == 0, want miss")
	}

	names, _ := os.ReadDir(dir)
	if len(names) != 0 {
		t.Errorf("ttl == 0 wrote %d files, want none", len(names))
	}
}

func TestTiered_MemoryOnlyWithoutDir(t *testing.T) {
	c, err := NewTiered(4, "", time.Hour)
	if err != nil {
		t.Fatalf("NewTiered() failed: %v", err)
	}
	if c.Dir() != "" {
		t.Errorf("Dir() = %q, want empty", c.Dir())
	}

	if err := c.Put("key", entry("payload")); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if _, ok := c.Get("key"); !ok {
		t.Error("Get() missed in memory-only mode")
	}
}

func TestTiered_EvictExpired(t *testing.T) {
	dir := t.TempDir()
	c, _ := NewTiered(4, dir, time.Hour)

	stale := Entry{Kind: KindText, StoredAt: time.Now().Add(-2 * time.Hour), Payload: []byte("stale")}
	c.memory.Put("old", stale)
	c.disk.Put("old", stale)
	c.Put("fresh", entry("fresh"))

	c.EvictExpired()

	if _, ok := c.memory.Get("old"); ok {
		t.Error("expired entry survived in memory")
	}
	if _, ok := c.disk.Get("old"); ok {
		t.Error("expired entry survived on disk")
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Error("fresh entry was evicted")
	}
}

func TestTiered_Clear(t *testing.T) {
	dir := t.TempDir()
	c, _ := NewTiered(4, dir, time.Hour)

	c.Put("a", entry("a"))
	c.Put("b", entry("b"))
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}

	if _, ok := c.Get("a"); ok {
		t.Error("entry survived Clear")
	}
	names, _ := os.ReadDir(dir)
	if len(names) != 0 {
		t.Errorf("got %d files after Clear, want 0", len(names))
	}
}
