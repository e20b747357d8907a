package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"feedpress/internal/registry"

	"github.com/samber/lo"
)

// Orchestrator runs single-feed and multi-feed fetches against the
// live registry snapshot.
type Orchestrator struct {
	store   *registry.Store
	fetcher Fetcher
}

func NewOrchestrator(store *registry.Store, fetcher Fetcher) *Orchestrator {
	return &Orchestrator{store: store, fetcher: fetcher}
}

// FetchOne fetches a single registered feed by identifier. Transport
// failures surface to the caller.
func (o *Orchestrator) FetchOne(ctx context.Context, id string, limit int) ([]FeedItem, error) {
	fd, ok := o.store.Snapshot().Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFeedNotFound, id)
	}

	src, err := o.fetcher.Fetch(ctx, fd.URL)
	if err != nil {
		return nil, err
	}

	items := shapeItems(src, fd, limit)
	sortByTimestamp(items)
	return items, nil
}

// FetchAll fetches every candidate feed concurrently, merges the
// successful results, and returns the newest `limit` items. A per-feed
// failure is logged and dropped; it never aborts the batch. An empty
// candidate set yields an empty result, not an error.
//
// The per-feed budget divides the limit by the total registry size, not
// the candidate count, so narrow filters may under-fill the limit. That
// is long-standing behavior callers rely on.
func (o *Orchestrator) FetchAll(ctx context.Context, filter string, limit int) []FeedItem {
	snap := o.store.Snapshot()
	if snap.Len() == 0 {
		return nil
	}

	candidates := snap.All()
	if filter != "" {
		candidates = lo.Filter(candidates, func(fd registry.FeedDescriptor, _ int) bool {
			return matchesFilter(fd, filter)
		})
	}
	if len(candidates) == 0 {
		return nil
	}

	perFeed := (limit + snap.Len() - 1) / snap.Len()
	if perFeed < 1 {
		perFeed = 1
	}

	results := make(chan []FeedItem, len(candidates))
	var wg sync.WaitGroup

	for _, fd := range candidates {
		wg.Add(1)
		go func(fd registry.FeedDescriptor) {
			defer wg.Done()

			src, err := o.fetcher.Fetch(ctx, fd.URL)
			if err != nil {
				slog.Error("feed fetch failed", "feed", fd.ID, "url", fd.URL, "error", err)
				return
			}
			results <- shapeItems(src, fd, perFeed)
		}(fd)
	}

	wg.Wait()
	close(results)

	var merged []FeedItem
	for batch := range results {
		merged = append(merged, batch...)
	}

	sortByTimestamp(merged)
	if len(merged) > limit {
		merged = merged[:limit]
	}

	return merged
}

// matchesFilter is the deliberately loose candidate test: category
// equality or containment in either direction, or the filter appearing
// in the feed title.
func matchesFilter(fd registry.FeedDescriptor, filter string) bool {
	f := strings.ToLower(filter)
	category := strings.ToLower(fd.Category)
	title := strings.ToLower(fd.Title)

	if category != "" && (category == f || strings.Contains(category, f) || strings.Contains(f, category)) {
		return true
	}
	return strings.Contains(title, f)
}

func shapeItems(src *SourceFeed, fd registry.FeedDescriptor, limit int) []FeedItem {
	sourceTitle := fd.Title
	if sourceTitle == "" {
		sourceTitle = src.Title
	}

	n := limit
	if n > len(src.Items) {
		n = len(src.Items)
	}

	items := make([]FeedItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, NewFeedItem(src.Items[i], sourceTitle, fd.HTMLURL))
	}
	return items
}

func sortByTimestamp(items []FeedItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
}
