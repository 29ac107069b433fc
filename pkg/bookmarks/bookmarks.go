// Package bookmarks provides a persistent store for saved Gopher locators.
// Bookmarks are kept as a single JSON file and written atomically, so a
// crash mid-save never leaves a truncated store behind.
package bookmarks

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Bookmark is a single saved locator.
type Bookmark struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Visits      int       `json:"visits"`
	LastVisited time.Time `json:"last_visited,omitzero"`
}

// Store is a file-backed bookmark collection. All methods are safe for
// concurrent use.
type Store struct {
	mu   sync.RWMutex
	path string
	byID map[string]*Bookmark
}

// Open loads the bookmark store at path, creating an empty one if the
// file does not exist yet. If path is empty it defaults to
// ~/.config/burrow/bookmarks.json.
func Open(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		path = filepath.Join(home, ".config", "burrow", "bookmarks.json")
	}

	s := &Store{path: path, byID: make(map[string]*Bookmark)}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read bookmarks file: %w", err)
	}

	var list []*Bookmark
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("parse bookmarks file: %w", err)
	}
	for _, b := range list {
		s.byID[b.ID] = b
	}
	return nil
}

// save writes the full collection to disk. Callers must hold the write lock.
func (s *Store) save() error {
	list := make([]*Bookmark, 0, len(s.byID))
	for _, b := range s.byID {
		list = append(list, b)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal bookmarks: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create bookmarks dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".bookmarks-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write bookmarks: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		return fmt.Errorf("chmod bookmarks file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace bookmarks file: %w", err)
	}
	return nil
}

// Add saves a new bookmark and returns it. An empty title falls back to
// the URL itself. Adding a URL that is already bookmarked is an error.
func (s *Store) Add(url, title string, tags []string) (*Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.byID {
		if b.URL == url {
			return nil, fmt.Errorf("already bookmarked: %s", url)
		}
	}
	if title == "" {
		title = url
	}

	b := &Bookmark{
		ID:        uuid.NewString(),
		URL:       url,
		Title:     title,
		Tags:      tags,
		CreatedAt: time.Now(),
	}
	s.byID[b.ID] = b
	if err := s.save(); err != nil {
		delete(s.byID, b.ID)
		return nil, err
	}
	return b, nil
}

// Remove deletes a bookmark by ID or URL. It reports whether anything
// was removed.
func (s *Store) Remove(ref string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.lookup(ref)
	if b == nil {
		return false, nil
	}
	delete(s.byID, b.ID)
	if err := s.save(); err != nil {
		s.byID[b.ID] = b
		return false, err
	}
	return true, nil
}

// Get returns the bookmark matching the given ID or URL, or nil.
func (s *Store) Get(ref string) *Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if b := s.lookup(ref); b != nil {
		clone := *b
		return &clone
	}
	return nil
}

// lookup resolves a reference as an ID first, then as a URL. Callers
// must hold at least the read lock.
func (s *Store) lookup(ref string) *Bookmark {
	if b, ok := s.byID[ref]; ok {
		return b
	}
	for _, b := range s.byID {
		if b.URL == ref {
			return b
		}
	}
	return nil
}

// All returns every bookmark sorted by title, case-insensitively.
func (s *Store) All() []Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Bookmark, 0, len(s.byID))
	for _, b := range s.byID {
		list = append(list, *b)
	}
	sort.Slice(list, func(i, j int) bool {
		return strings.ToLower(list[i].Title) < strings.ToLower(list[j].Title)
	})
	return list
}

// Search returns bookmarks whose title, URL, description, or tags
// contain the query, case-insensitively.
func (s *Store) Search(query string) []Bookmark {
	query = strings.ToLower(query)

	var matched []Bookmark
	for _, b := range s.All() {
		if strings.Contains(strings.ToLower(b.Title), query) ||
			strings.Contains(strings.ToLower(b.URL), query) ||
			strings.Contains(strings.ToLower(b.Description), query) ||
			matchTag(b.Tags, query) {
			matched = append(matched, b)
		}
	}
	return matched
}

// ByTag returns bookmarks carrying the given tag, case-insensitively.
func (s *Store) ByTag(tag string) []Bookmark {
	tag = strings.ToLower(tag)

	var matched []Bookmark
	for _, b := range s.All() {
		for _, t := range b.Tags {
			if strings.ToLower(t) == tag {
				matched = append(matched, b)
				break
			}
		}
	}
	return matched
}

func matchTag(tags []string, query string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), query) {
			return true
		}
	}
	return false
}

// RecordVisit bumps the visit counter and timestamp for a bookmark,
// identified by ID or URL. Unknown references are ignored.
func (s *Store) RecordVisit(ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.lookup(ref)
	if b == nil {
		return nil
	}
	b.Visits++
	b.LastVisited = time.Now()
	return s.save()
}

// Len returns the number of bookmarks in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
