package resolver_test

import (
	"testing"

	"feedpress/internal/resolver"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	categories := []string{"Tech News", "Science", "World", "Sports"}

	tests := []struct {
		name     string
		keyword  string
		expected string
		ok       bool
	}{
		{
			name:     "exact match is case-insensitive",
			keyword:  "tech news",
			expected: "Tech News",
			ok:       true,
		},
		{
			name:     "keyword as substring of category",
			keyword:  "tech",
			expected: "Tech News",
			ok:       true,
		},
		{
			name:     "first token of multi-word keyword",
			keyword:  "science weekly digest",
			expected: "Science",
			ok:       true,
		},
		{
			name:     "synonym table routes to tech",
			keyword:  "technology trends",
			expected: "Tech News",
			ok:       true,
		},
		{
			name:     "synonym table routes to science",
			keyword:  "sci-fi research",
			expected: "Science",
			ok:       true,
		},
		{
			name:     "synonym table routes to sports",
			keyword:  "football scores",
			expected: "Sports",
			ok:       true,
		},
		{
			name:     "tolerates phrasing variance",
			keyword:  "techy stuff",
			expected: "Tech News",
			ok:       true,
		},
		{
			name:    "no match",
			keyword: "xyzzy",
			ok:      false,
		},
		{
			name:    "blank keyword",
			keyword: "   ",
			ok:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, ok := resolver.Resolve(tt.keyword, categories)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, category)
		})
	}
}

func TestResolveNoCategories(t *testing.T) {
	_, ok := resolver.Resolve("tech", nil)
	assert.False(t, ok)
}
