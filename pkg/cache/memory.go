package cache

import (
	"container/list"
	"sync"
	"time"
)

// Memory is the bounded in-process tier. Both reads and writes refresh an
// entry's recency; inserting past capacity evicts the least-recently-used
// entry. All operations are O(1) amortized and goroutine-safe.
type Memory struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front = most recently used
}

type memoryItem struct {
	key   string
	entry Entry
}

// NewMemory creates a memory tier holding at most capacity entries.
// A capacity below one is clamped to one.
func NewMemory(capacity int) *Memory {
	if capacity < 1 {
		capacity = 1
	}
	return &Memory{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Get returns the entry for key and marks it most recently used.
func (m *Memory) Get(key string) (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.entries[key]
	if !ok {
		return Entry{}, false
	}
	m.order.MoveToFront(el)
	return el.Value.(*memoryItem).entry, true
}

// Put stores the entry under key, refreshing its recency. When the
// insertion exceeds capacity, the least-recently-used entry is evicted.
func (m *Memory) Put(key string, e Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if el, ok := m.entries[key]; ok {
		el.Value.(*memoryItem).entry = e
		m.order.MoveToFront(el)
		return
	}

	m.entries[key] = m.order.PushFront(&memoryItem{key: key, entry: e})
	for len(m.entries) > m.capacity {
		oldest := m.order.Back()
		if oldest == nil {
			break
		}
		m.order.Remove(oldest)
		delete(m.entries, oldest.Value.(*memoryItem).key)
	}
}

// Delete removes the entry for key, if present.
func (m *Memory) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeLocked(key)
}

func (m *Memory) removeLocked(key string) {
	if el, ok := m.entries[key]; ok {
		m.order.Remove(el)
		delete(m.entries, key)
	}
}

// EvictExpired removes every entry older than ttl.
func (m *Memory) EvictExpired(ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, el := range m.entries {
		if el.Value.(*memoryItem).entry.Expired(ttl) {
			m.removeLocked(key)
		}
	}
}

// Clear drops every entry.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]*list.Element)
	m.order.Init()
}

// Len returns the number of resident entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
