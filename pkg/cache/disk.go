package cache

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Disk is the persistent tier: one file per cache key under a directory,
// named by the key's hex digest. Each file holds a one-line JSON header
// (kind tag, stored-at timestamp, source locator) followed by the raw
// payload bytes.
//
// Writes land in a temp file in the same directory and are renamed into
// place, so a crash mid-write never leaves a corrupted entry visible. A
// file that fails to parse is deleted and reported as a miss.
type Disk struct {
	mu  sync.Mutex
	dir string
}

// diskHeader is the serialized metadata preceding the payload.
type diskHeader struct {
	Kind     Kind      `json:"kind"`
	StoredAt time.Time `json:"stored_at"`
	URL      string    `json:"url,omitempty"`
}

// NewDisk creates a disk tier rooted at dir, creating the directory with
// mode 0755 if needed.
func NewDisk(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Disk{dir: dir}, nil
}

// Dir returns the cache directory path.
func (d *Disk) Dir() string { return d.dir }

// Get reads the entry for key. A missing file is a plain miss; a file that
// cannot be parsed (corrupted or truncated) is deleted and is also a miss,
// never an error.
func (d *Disk) Get(key string) (Entry, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	path := d.path(key)
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, false
	}

	sep := bytes.IndexByte(data, '\n')
	if sep < 0 {
		_ = os.Remove(path)
		return Entry{}, false
	}
	var hdr diskHeader
	if err := json.Unmarshal(data[:sep], &hdr); err != nil || hdr.Kind == "" {
		_ = os.Remove(path)
		return Entry{}, false
	}

	return Entry{
		Kind:     hdr.Kind,
		StoredAt: hdr.StoredAt,
		URL:      hdr.URL,
		Payload:  data[sep+1:],
	}, true
}

// Put writes the entry for key atomically.
func (d *Disk) Put(key string, e Entry) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	header, err := json.Marshal(diskHeader{Kind: e.Kind, StoredAt: e.StoredAt, URL: e.URL})
	if err != nil {
		return fmt.Errorf("encode cache header: %w", err)
	}

	tmp, err := os.CreateTemp(d.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(header, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write cache header: %w", err)
	}
	if _, err := tmp.Write(e.Payload); err != nil {
		tmp.Close()
		return fmt.Errorf("write cache payload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close cache file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), d.path(key)); err != nil {
		return fmt.Errorf("rename cache file: %w", err)
	}
	return nil
}

// Delete removes the entry for key; missing entries are not an error.
func (d *Disk) Delete(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_ = os.Remove(d.path(key))
}

// EvictExpired removes every entry older than ttl.
func (d *Disk) EvictExpired(ttl time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()

	names, err := os.ReadDir(d.dir)
	if err != nil {
		return
	}
	for _, name := range names {
		if name.IsDir() {
			continue
		}
		path := filepath.Join(d.dir, name.Name())
		entry, ok := d.readEntry(path)
		if !ok {
			continue
		}
		if entry.Expired(ttl) {
			_ = os.Remove(path)
		}
	}
}

// Clear removes every cache file under the directory.
func (d *Disk) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	names, err := os.ReadDir(d.dir)
	if err != nil {
		return err
	}
	for _, name := range names {
		if name.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(d.dir, name.Name())); err != nil {
			return err
		}
	}
	return nil
}

// readEntry parses the header of a cache file without taking the lock;
// callers must hold d.mu.
func (d *Disk) readEntry(path string) (Entry, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, false
	}
	sep := bytes.IndexByte(data, '\n')
	if sep < 0 {
		return Entry{}, false
	}
	var hdr diskHeader
	if err := json.Unmarshal(data[:sep], &hdr); err != nil {
		return Entry{}, false
	}
	return Entry{Kind: hdr.Kind, StoredAt: hdr.StoredAt, URL: hdr.URL}, true
}

func (d *Disk) path(key string) string {
	return filepath.Join(d.dir, key)
}
