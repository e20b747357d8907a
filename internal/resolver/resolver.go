// Package resolver maps free-text keywords onto registered category
// labels through a fixed sequence of match layers, most precise first.
package resolver

import (
	"strings"

	"golang.org/x/text/cases"
)

// matchLayer tries one strategy against the folded keyword and the
// registered categories. Layers run in order; the first hit wins.
type matchLayer func(keyword string, categories []string) (string, bool)

var layers = []matchLayer{
	matchExact,
	matchSubstring,
	matchSynonym,
}

// synonymTable maps canonical topic names to related free-text terms.
// A keyword containing any related term selects the first registered
// category whose label contains the canonical topic name.
var synonymTable = []struct {
	topic string
	terms []string
}{
	{"tech", []string{"tech", "technology", "technical", "software", "programming", "computer", "gadget", "digital"}},
	{"news", []string{"headline", "headlines", "breaking", "current events", "world"}},
	{"business", []string{"finance", "financial", "economy", "economic", "market", "startup", "money"}},
	{"health", []string{"medical", "medicine", "fitness", "wellness", "nutrition"}},
	{"science", []string{"research", "scientific", "sci", "physics", "biology", "space", "climate"}},
	{"sports", []string{"sport", "football", "soccer", "basketball", "tennis", "cricket"}},
}

var folder = cases.Fold()

// Resolve returns the best-matching registered category for a keyword,
// or false when nothing matches. Matching is case-insensitive.
func Resolve(keyword string, categories []string) (string, bool) {
	kw := folder.String(strings.TrimSpace(keyword))
	if kw == "" || len(categories) == 0 {
		return "", false
	}

	for _, layer := range layers {
		if category, ok := layer(kw, categories); ok {
			return category, true
		}
	}

	return "", false
}

func matchExact(keyword string, categories []string) (string, bool) {
	for _, category := range categories {
		if folder.String(category) == keyword {
			return category, true
		}
	}
	return "", false
}

// matchSubstring accepts the keyword appearing inside a category label,
// or the keyword's first token doing so when the keyword itself is a
// multi-word phrase.
func matchSubstring(keyword string, categories []string) (string, bool) {
	token := keyword
	if fields := strings.Fields(keyword); len(fields) > 0 {
		token = fields[0]
	}

	for _, category := range categories {
		label := folder.String(category)
		if strings.Contains(label, keyword) || strings.Contains(label, token) {
			return category, true
		}
	}
	return "", false
}

func matchSynonym(keyword string, categories []string) (string, bool) {
	for _, entry := range synonymTable {
		for _, term := range entry.terms {
			if !strings.Contains(keyword, term) {
				continue
			}
			for _, category := range categories {
				if strings.Contains(folder.String(category), entry.topic) {
					return category, true
				}
			}
		}
	}
	return "", false
}
