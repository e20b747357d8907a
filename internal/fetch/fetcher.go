package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"
)

var (
	// ErrFeedNotFound marks an identifier absent from the registry.
	ErrFeedNotFound = errors.New("feed not found")

	// ErrFetchFailure marks a transport-level failure: network error or
	// unparsable feed document.
	ErrFetchFailure = errors.New("feed fetch failed")
)

// SourceFeed is the raw result of fetching one URL.
type SourceFeed struct {
	Title string
	Link  string
	Items []RawItem
}

// RawItem carries what the transport saw, before item shaping. The
// parsed times are the normalized form of the published/updated
// strings and are preferred for sorting when present.
type RawItem struct {
	Title           string
	Link            string
	Published       string
	PublishedParsed *time.Time
	Updated         string
	UpdatedParsed   *time.Time
	Content         string
	Description     string
	Author          string
	Categories      []string
}

// Fetcher is the transport capability: fetch a URL, get a parsed feed
// or a failure. Implementations own their own timeouts.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*SourceFeed, error)
}

// GofeedFetcher is the production Fetcher, backed by gofeed's RSS/Atom
// parser.
type GofeedFetcher struct {
	parser *gofeed.Parser
}

func NewGofeedFetcher() *GofeedFetcher {
	return &GofeedFetcher{parser: gofeed.NewParser()}
}

func (g *GofeedFetcher) Fetch(ctx context.Context, url string) (*SourceFeed, error) {
	feed, err := g.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailure, url, err)
	}

	src := &SourceFeed{
		Title: feed.Title,
		Link:  feed.Link,
		Items: make([]RawItem, 0, len(feed.Items)),
	}

	for _, item := range feed.Items {
		author := ""
		if item.Author != nil {
			author = item.Author.Name
			if author == "" {
				author = item.Author.Email
			}
		}

		src.Items = append(src.Items, RawItem{
			Title:           item.Title,
			Link:            item.Link,
			Published:       item.Published,
			PublishedParsed: item.PublishedParsed,
			Updated:         item.Updated,
			UpdatedParsed:   item.UpdatedParsed,
			Content:         item.Content,
			Description:     item.Description,
			Author:          author,
			Categories:      item.Categories,
		})
	}

	return src, nil
}
