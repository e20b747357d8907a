package fetch_test

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"feedpress/internal/fetch"

	"github.com/stretchr/testify/assert"
)

func ptr(t time.Time) *time.Time { return &t }

func TestNewFeedItemTimestampPreference(t *testing.T) {
	published := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	updated := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		raw      fetch.RawItem
		expected time.Time
	}{
		{
			name: "published parsed wins",
			raw: fetch.RawItem{
				PublishedParsed: ptr(published),
				UpdatedParsed:   ptr(updated),
			},
			expected: published,
		},
		{
			name: "updated parsed when published missing",
			raw: fetch.RawItem{
				UpdatedParsed: ptr(updated),
			},
			expected: updated,
		},
		{
			name: "unparsed string normalized",
			raw: fetch.RawItem{
				Published: "2023-05-01T12:00:00Z",
			},
			expected: published,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := fetch.NewFeedItem(tt.raw, "Source", "https://source.example")
			assert.True(t, item.Timestamp.Equal(tt.expected))
		})
	}
}

func TestNewFeedItemAuthorFallsBackToFeedTitle(t *testing.T) {
	item := fetch.NewFeedItem(fetch.RawItem{Title: "Post"}, "The Daily Feed", "")
	assert.Equal(t, "The Daily Feed", item.Author)

	item = fetch.NewFeedItem(fetch.RawItem{Title: "Post", Author: "Jo"}, "The Daily Feed", "")
	assert.Equal(t, "Jo", item.Author)
}

func TestNewFeedItemExcerpt(t *testing.T) {
	item := fetch.NewFeedItem(fetch.RawItem{
		Description: "<p>Hello <b>world</b> &amp; friends</p>",
	}, "Source", "")
	assert.Equal(t, "Hello world & friends", item.Excerpt)
}

func TestNewFeedItemDescriptionFallsBackToContent(t *testing.T) {
	item := fetch.NewFeedItem(fetch.RawItem{Content: "<p>body text</p>"}, "Source", "")
	assert.Equal(t, "body text", item.Excerpt)
}

func TestNewFeedItemExcerptTruncatesOnRuneBoundary(t *testing.T) {
	// 300 two-byte runes: the 497-byte cut lands mid-rune.
	item := fetch.NewFeedItem(fetch.RawItem{
		Description: strings.Repeat("é", 300),
	}, "Source", "")

	assert.True(t, utf8.ValidString(item.Excerpt))
	assert.True(t, strings.HasSuffix(item.Excerpt, "..."))
	assert.LessOrEqual(t, len(item.Excerpt), 500)
}

func TestNewFeedItemProvenance(t *testing.T) {
	item := fetch.NewFeedItem(fetch.RawItem{Title: "Post"}, "Source Feed", "https://source.example")
	assert.Equal(t, "Source Feed", item.SourceTitle)
	assert.Equal(t, "https://source.example", item.SourceLink)
}
