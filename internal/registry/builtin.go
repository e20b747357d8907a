package registry

// DefaultEntries is the builtin fallback registry used when the startup
// feed list cannot be read.
func DefaultEntries() []RawFeedEntry {
	return []RawFeedEntry{
		{
			Title:    "BBC World News",
			URL:      "https://feeds.bbci.co.uk/news/world/rss.xml",
			HTMLURL:  "https://www.bbc.co.uk/news/world",
			Category: "News",
		},
		{
			Title:    "Hacker News",
			URL:      "https://news.ycombinator.com/rss",
			HTMLURL:  "https://news.ycombinator.com",
			Category: "Tech",
		},
	}
}
