package registry

import (
	"encoding/xml"
	"fmt"
)

type opmlDoc struct {
	XMLName xml.Name  `xml:"opml"`
	Body    *opmlBody `xml:"body"`
}

type opmlBody struct {
	Outlines []opmlOutline `xml:"outline"`
}

type opmlOutline struct {
	Title    string        `xml:"title,attr"`
	Text     string        `xml:"text,attr"`
	Type     string        `xml:"type,attr"`
	XMLURL   string        `xml:"xmlUrl,attr"`
	HTMLURL  string        `xml:"htmlUrl,attr"`
	Outlines []opmlOutline `xml:"outline"`
}

// LoadHierarchical parses an OPML outline tree. Outlines carrying an
// xmlUrl attribute are feed leaves; outlines without one are category
// folders whose label applies to every leaf beneath them, with inner
// folders overriding outer ones for their own subtree.
func LoadHierarchical(data []byte) ([]RawFeedEntry, error) {
	var doc opmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSource, err)
	}
	if doc.Body == nil {
		return nil, fmt.Errorf("%w: missing opml body", ErrMalformedSource)
	}

	var entries []RawFeedEntry
	collectOutlines(&entries, doc.Body.Outlines, "")

	return entries, nil
}

func collectOutlines(result *[]RawFeedEntry, outlines []opmlOutline, category string) {
	for _, outline := range outlines {
		if outline.XMLURL != "" {
			title := outline.Title
			if title == "" {
				title = outline.Text
			}
			if title == "" {
				title = "Unnamed Feed"
			}

			*result = append(*result, RawFeedEntry{
				Title:    title,
				URL:      outline.XMLURL,
				HTMLURL:  outline.HTMLURL,
				Category: category,
			})
			continue
		}

		label := outline.Title
		if label == "" {
			label = outline.Text
		}

		next := category
		if label != "" {
			next = label
		}

		collectOutlines(result, outline.Outlines, next)
	}
}
