package fetch

import (
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/araddon/dateparse"
	"github.com/microcosm-cc/bluemonday"
)

// FeedItem is one merged, presentation-ready article. Items are built
// fresh per fetch call and never cached.
type FeedItem struct {
	Title      string
	Link       string
	Published  string
	Timestamp  time.Time
	Content    string
	Excerpt    string
	Author     string
	Categories []string

	// Provenance, denormalized from the registry entry.
	SourceTitle string
	SourceLink  string
}

// NewFeedItem shapes a raw transport item. The effective timestamp
// prefers the normalized parsed times over the primary published
// string; an author missing from the item falls back to the feed title.
func NewFeedItem(raw RawItem, sourceTitle, sourceLink string) FeedItem {
	timestamp := time.Now()
	switch {
	case raw.PublishedParsed != nil:
		timestamp = *raw.PublishedParsed
	case raw.UpdatedParsed != nil:
		timestamp = *raw.UpdatedParsed
	default:
		if t, err := dateparse.ParseAny(raw.Published); err == nil {
			timestamp = t
		}
	}

	description := raw.Description
	if description == "" && raw.Content != "" {
		description = raw.Content
	}

	author := raw.Author
	if author == "" {
		author = sourceTitle
	}

	return FeedItem{
		Title:       raw.Title,
		Link:        raw.Link,
		Published:   raw.Published,
		Timestamp:   timestamp,
		Content:     raw.Content,
		Excerpt:     stripHTML(description),
		Author:      author,
		Categories:  raw.Categories,
		SourceTitle: sourceTitle,
		SourceLink:  sourceLink,
	}
}

var htmlStripper = bluemonday.StrictPolicy()

func stripHTML(s string) string {
	s = htmlStripper.Sanitize(s)
	s = html.UnescapeString(s)
	s = strings.TrimSpace(s)

	if len(s) > 500 {
		cut := 497
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}

	return s
}
