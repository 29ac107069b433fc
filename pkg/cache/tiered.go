package cache

import "time"

// Tiered combines the memory and disk tiers behind one store. The disk
// tier is optional; without it the cache degrades to memory-only.
//
// A ttl of zero disables reuse entirely: every Get misses and Put is a
// no-op, so each retrieval goes to the network.
type Tiered struct {
	memory *Memory
	disk   *Disk // nil when no cache directory is configured
	ttl    time.Duration
}

// NewTiered creates a two-tier cache. dir may be empty to disable the
// disk tier; memCapacity below one is clamped to one.
func NewTiered(memCapacity int, dir string, ttl time.Duration) (*Tiered, error) {
	c := &Tiered{
		memory: NewMemory(memCapacity),
		ttl:    ttl,
	}
	if dir != "" {
		disk, err := NewDisk(dir)
		if err != nil {
			return nil, err
		}
		c.disk = disk
	}
	return c, nil
}

// TTL returns the configured time-to-live.
func (c *Tiered) TTL() time.Duration { return c.ttl }

// Dir returns the disk tier's directory, or "" when the disk tier is off.
func (c *Tiered) Dir() string {
	if c.disk == nil {
		return ""
	}
	return c.disk.Dir()
}

// Get looks key up in memory first, then on disk. Disk hits are promoted
// into memory. Expired entries are removed from both tiers and reported
// as misses.
func (c *Tiered) Get(key string) (Entry, bool) {
	if c.ttl == 0 {
		return Entry{}, false
	}

	if entry, ok := c.memory.Get(key); ok {
		if !entry.Expired(c.ttl) {
			return entry, true
		}
		// The disk copy is the same or older, so it is expired too.
		c.memory.Delete(key)
		if c.disk != nil {
			c.disk.Delete(key)
		}
		return Entry{}, false
	}

	if c.disk == nil {
		return Entry{}, false
	}
	entry, ok := c.disk.Get(key)
	if !ok {
		return Entry{}, false
	}
	if entry.Expired(c.ttl) {
		c.disk.Delete(key)
		return Entry{}, false
	}
	c.memory.Put(key, entry)
	return entry, true
}

// Put stores the entry in both tiers. The disk write error, if any, is
// returned after the memory tier has been populated; callers may treat it
// as non-fatal since the memory copy is already live.
func (c *Tiered) Put(key string, e Entry) error {
	if c.ttl == 0 {
		return nil
	}
	c.memory.Put(key, e)
	if c.disk == nil {
		return nil
	}
	return c.disk.Put(key, e)
}

// EvictExpired sweeps both tiers, removing entries older than the TTL.
func (c *Tiered) EvictExpired() {
	c.memory.EvictExpired(c.ttl)
	if c.disk != nil {
		c.disk.EvictExpired(c.ttl)
	}
}

// Clear empties both tiers.
func (c *Tiered) Clear() error {
	c.memory.Clear()
	if c.disk == nil {
		return nil
	}
	return c.disk.Clear()
}
