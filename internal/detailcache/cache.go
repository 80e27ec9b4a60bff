package detailcache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"ratingsync/internal/fileutil"
	"ratingsync/internal/logging"
)

// Status records what a cache entry asserts about an item.
type Status string

const (
	// StatusResolved marks an entry whose external identifier was found.
	StatusResolved Status = "resolved"
	// StatusNotFound marks a confirmed absence: the full pipeline ran and
	// found nothing. Distinguished from a missing entry (never looked up)
	// so permanently unmatched items stop costing a search every run.
	StatusNotFound Status = "not_found"
)

// Entry is the cached enrichment result for one source item. A hit skips all
// network work for the item, not just the identifier lookup.
type Entry struct {
	Key           string    `json:"-"`
	Status        Status    `json:"status"`
	ExternalID    string    `json:"external_id"`
	ExternalURL   string    `json:"external_url"`
	OriginalTitle string    `json:"original_title"`
	Genre         string    `json:"genre,omitempty"`
	Director      string    `json:"director,omitempty"`
	Cast          string    `json:"cast,omitempty"`
	Description   string    `json:"description,omitempty"`
	CachedAt      time.Time `json:"cached_at"`
}

const keySuffix = "::details"

// Key derives the cache key for a source item URL.
func Key(sourceURL string) string {
	return sourceURL + keySuffix
}

// SourceURL recovers the source item URL from a cache key.
func SourceURL(key string) string {
	return strings.TrimSuffix(key, keySuffix)
}

// Store is the persistent detail cache. All methods are safe for concurrent
// use by the enrichment workers. Writes are buffered in memory and hit disk
// on Flush; a disabled store turns every operation into a no-op.
type Store struct {
	path    string
	enabled bool
	logger  *slog.Logger

	mu      sync.RWMutex
	entries map[string]Entry
	dirty   bool
}

// NewStore creates a cache store and loads any existing file. A missing or
// corrupt cache file means "start empty", never a failure.
func NewStore(path string, enabled bool, logger *slog.Logger) *Store {
	logger = logging.NewComponentLogger(logger, "detailcache")

	s := &Store{
		path:    path,
		enabled: enabled && strings.TrimSpace(path) != "",
		logger:  logger,
		entries: make(map[string]Entry),
	}
	if !s.enabled {
		return s
	}

	if err := s.load(); err != nil {
		logger.Warn("failed to load detail cache",
			logging.String(logging.FieldEventType, "cache_load_failed"),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "cache will start empty"),
			logging.String(logging.FieldImpact, "previously enriched items will be fetched again"))
	}

	return s
}

// Get returns the entry for a source URL, if present.
func (s *Store) Get(sourceURL string) (Entry, bool) {
	if !s.enabled {
		return Entry{}, false
	}
	key := Key(sourceURL)

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, found := s.entries[key]
	if found {
		entry.Key = key
	}
	return entry, found
}

// Put records an entry for a source URL. The write is buffered; call Flush
// to persist.
func (s *Store) Put(sourceURL string, entry Entry) {
	if !s.enabled || strings.TrimSpace(sourceURL) == "" {
		return
	}
	if entry.Status == "" {
		entry.Status = StatusNotFound
		if entry.ExternalID != "" {
			entry.Status = StatusResolved
		}
	}
	if entry.CachedAt.IsZero() {
		entry.CachedAt = time.Now().UTC()
	}
	entry.Key = ""

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[Key(sourceURL)] = entry
	s.dirty = true
}

// Remove deletes an entry, if present, and marks the store dirty.
func (s *Store) Remove(sourceURL string) {
	if !s.enabled {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.entries[Key(sourceURL)]; found {
		delete(s.entries, Key(sourceURL))
		s.dirty = true
	}
}

// Clear drops every entry and persists the empty cache.
func (s *Store) Clear() error {
	if !s.enabled {
		return nil
	}
	s.mu.Lock()
	s.entries = make(map[string]Entry)
	s.dirty = true
	s.mu.Unlock()
	return s.Flush()
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Entries returns a snapshot of every cached entry, sorted by key, with each
// entry's Key populated.
func (s *Store) Entries() []Entry {
	if !s.enabled {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]Entry, 0, len(s.entries))
	for key, entry := range s.entries {
		entry.Key = key
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

// Counts returns how many entries are resolved versus confirmed-absent.
func (s *Store) Counts() (resolved, notFound int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, entry := range s.entries {
		if entry.Status == StatusResolved {
			resolved++
		} else {
			notFound++
		}
	}
	return resolved, notFound
}

// Flush writes the current map to disk if anything changed since the last
// write. Called periodically from the worker pool and once at job end.
func (s *Store) Flush() error {
	if !s.enabled {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	if err := s.save(); err != nil {
		return fmt.Errorf("persist detail cache: %w", err)
	}
	s.dirty = false
	s.logger.Debug("detail cache flushed", logging.Int("entry_count", len(s.entries)))
	return nil
}

// load reads the cache file into memory.
func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil // fresh start
		}
		return fmt.Errorf("read cache file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var entries map[string]Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse cache file: %w", err)
	}

	s.entries = make(map[string]Entry, len(entries))
	for key, entry := range entries {
		if strings.TrimSpace(key) == "" {
			continue
		}
		s.entries[key] = entry
	}

	s.logger.Debug("detail cache loaded",
		logging.Int("entry_count", len(s.entries)),
		logging.String("path", s.path))
	return nil
}

// save writes the cache to disk atomically. Caller holds the lock.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}
	return fileutil.WriteFileAtomic(s.path, data)
}
