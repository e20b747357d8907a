package registry

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/samber/lo"
)

// Snapshot is an immutable view of the registry. Readers hold a whole
// snapshot for the duration of an operation; a reload never mutates one
// in place.
type Snapshot struct {
	feeds map[string]FeedDescriptor
}

func BuildSnapshot(entries []RawFeedEntry) *Snapshot {
	feeds := make(map[string]FeedDescriptor, len(entries))
	for _, entry := range entries {
		id := DeriveID(entry.URL)
		feeds[id] = FeedDescriptor{
			ID:       id,
			Title:    entry.Title,
			URL:      entry.URL,
			HTMLURL:  entry.HTMLURL,
			Category: entry.Category,
		}
	}
	return &Snapshot{feeds: feeds}
}

func (s *Snapshot) Get(id string) (FeedDescriptor, bool) {
	fd, ok := s.feeds[id]
	return fd, ok
}

func (s *Snapshot) Len() int {
	return len(s.feeds)
}

func (s *Snapshot) All() []FeedDescriptor {
	all := lo.Values(s.feeds)
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// Categories returns the distinct non-empty category labels, treated
// case-insensitively, keeping the first-seen casing.
func (s *Snapshot) Categories() []string {
	labels := make([]string, 0, len(s.feeds))
	for _, fd := range s.All() {
		if fd.Category != "" {
			labels = append(labels, fd.Category)
		}
	}
	return lo.UniqBy(labels, strings.ToLower)
}

// Store owns the registry snapshot. Replace swaps the whole snapshot
// atomically, so concurrent readers see either the old or the new
// registry in full, never a partially loaded one.
type Store struct {
	snapshot atomic.Pointer[Snapshot]
	version  atomic.Uint64
}

func NewStore() *Store {
	st := &Store{}
	st.snapshot.Store(&Snapshot{feeds: map[string]FeedDescriptor{}})
	return st
}

func (st *Store) Snapshot() *Snapshot {
	return st.snapshot.Load()
}

// Version increments on every replacement. Cached renderings key on it
// so a reload invalidates them without touching the cache directly.
func (st *Store) Version() uint64 {
	return st.version.Load()
}

func (st *Store) Replace(entries []RawFeedEntry) {
	st.snapshot.Store(BuildSnapshot(entries))
	st.version.Add(1)
}

// Load reads a feed-list file and replaces the registry with its
// contents. The previous snapshot stays in place on any failure.
func (st *Store) Load(path string) error {
	var load func([]byte) ([]RawFeedEntry, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".opml", ".xml":
		load = LoadHierarchical
	case ".json":
		load = LoadFlat
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read feed list %s: %w", path, err)
	}

	entries, err := load(data)
	if err != nil {
		return fmt.Errorf("failed to load feed list %s: %w", path, err)
	}

	st.Replace(entries)
	slog.Info("feed registry replaced", "path", path, "feeds", st.Snapshot().Len())
	return nil
}

// LoadOrDefault is the startup path: a failed load falls back to the
// builtin feed set instead of starting with an empty registry.
func (st *Store) LoadOrDefault(path string) {
	if err := st.Load(path); err != nil {
		slog.Error("feed list load failed, using builtin feeds", "path", path, "error", err)
		st.Replace(DefaultEntries())
	}
}
