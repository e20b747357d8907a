package registry

import "errors"

// FeedDescriptor is a single registered feed, keyed by its derived ID.
type FeedDescriptor struct {
	ID       string
	Title    string
	URL      string
	HTMLURL  string
	Category string
}

// RawFeedEntry is the loader-level shape shared by both source formats.
type RawFeedEntry struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	HTMLURL  string `json:"htmlUrl,omitempty"`
	Category string `json:"category,omitempty"`
}

var (
	// ErrMalformedSource marks a feed-list file that could not be parsed
	// or is structurally wrong for its declared format.
	ErrMalformedSource = errors.New("malformed feed source")

	// ErrUnsupportedFormat marks a feed-list file whose extension matches
	// neither recognized format.
	ErrUnsupportedFormat = errors.New("unsupported feed source format")
)

const UncategorizedLabel = "Uncategorized"
