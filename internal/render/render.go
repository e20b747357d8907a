// Package render produces every human-facing block of text: fetched
// articles, the grouped feed listing, and the plain-text fallback used
// whenever the primary renderer fails.
package render

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	texttemplate "text/template"

	"feedpress/internal/fetch"
	"feedpress/internal/registry"
)

// Renderer formats a batch of items under a title.
type Renderer interface {
	Render(items []fetch.FeedItem, title string) (string, error)
}

const articleTemplate = `## {{.Title}}
{{range $i, $item := .Items}}
{{inc $i}}. **{{$item.Title}}**{{if $item.SourceTitle}} — {{$item.SourceTitle}}{{end}}{{if $item.Author}} ({{$item.Author}}){{end}}
   {{$item.Link}}{{if $item.Excerpt}}
   {{$item.Excerpt}}{{end}}
{{end}}`

// TextRenderer is the default primary renderer: a markdown-style block
// built from a text template.
type TextRenderer struct {
	tmpl *texttemplate.Template
}

func NewTextRenderer() *TextRenderer {
	tmpl := texttemplate.Must(texttemplate.New("articles").Funcs(texttemplate.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}).Parse(articleTemplate))
	return &TextRenderer{tmpl: tmpl}
}

func (r *TextRenderer) Render(items []fetch.FeedItem, title string) (string, error) {
	var b strings.Builder
	err := r.tmpl.Execute(&b, struct {
		Title string
		Items []fetch.FeedItem
	}{Title: title, Items: items})
	if err != nil {
		return "", fmt.Errorf("failed to render articles: %w", err)
	}
	return strings.TrimSpace(b.String()), nil
}

// Fallback builds the local numbered plain-text list. It must always
// succeed; it is the floor every response can fall back to.
func Fallback(items []fetch.FeedItem, title string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", title)
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s", i+1, item.Title)
		if item.SourceTitle != "" {
			fmt.Fprintf(&b, " [%s]", item.SourceTitle)
		}
		b.WriteString("\n")
		if item.Link != "" {
			fmt.Fprintf(&b, "   %s\n", item.Link)
		}
	}
	return strings.TrimSpace(b.String())
}

// RenderOrFallback tries the primary renderer and downgrades to the
// plain-text fallback on any failure. Render failures are logged, never
// surfaced to the end user.
func RenderOrFallback(r Renderer, items []fetch.FeedItem, title string) string {
	if r == nil {
		return Fallback(items, title)
	}
	out, err := r.Render(items, title)
	if err != nil {
		slog.Error("renderer failed, using plain-text fallback", "title", title, "error", err)
		return Fallback(items, title)
	}
	return out
}

// List renders the registry grouped by category: categories in ordinal
// order, feeds per category ordered by title, each with the identifier
// the user would type to fetch it alone.
func List(feeds []registry.FeedDescriptor) string {
	if len(feeds) == 0 {
		return "No feeds registered."
	}

	groups := make(map[string][]registry.FeedDescriptor)
	for _, fd := range feeds {
		label := fd.Category
		if label == "" {
			label = registry.UncategorizedLabel
		}
		groups[label] = append(groups[label], fd)
	}

	labels := make([]string, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var b strings.Builder
	b.WriteString("Available feeds:\n")
	for _, label := range labels {
		fmt.Fprintf(&b, "\n%s:\n", label)

		group := groups[label]
		sort.Slice(group, func(i, j int) bool { return group[i].Title < group[j].Title })
		for _, fd := range group {
			fmt.Fprintf(&b, "  - %s (--%s)\n", fd.Title, fd.ID)
		}
	}
	return strings.TrimSpace(b.String())
}
