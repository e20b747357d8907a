package registry

import (
	"encoding/json"
	"fmt"
)

// LoadFlat parses the flat list format: a JSON array of entries already
// in their final shape. No transformation beyond decoding.
func LoadFlat(data []byte) ([]RawFeedEntry, error) {
	var entries []RawFeedEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSource, err)
	}
	return entries, nil
}
