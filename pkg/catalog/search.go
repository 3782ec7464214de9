package catalog

import (
	"strings"

	"golang.org/x/net/html"
)

// StripMarkup returns the plain text of an HTML fragment. Catalog
// descriptions carry links and line breaks that must not leak into search
// matching.
func StripMarkup(s string) string {
	if !strings.ContainsRune(s, '<') && !strings.ContainsRune(s, '&') {
		return s
	}

	var b strings.Builder
	tz := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := tz.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			b.Write(tz.Text())
		}
	}
	return b.String()
}

// Link is a hyperlink extracted from a description fragment.
type Link struct {
	Text string
	URL  string
}

// Links returns the anchors of an HTML fragment in document order, so the
// dialog can render them as real hyperlinks next to the plain-text
// description.
func Links(s string) []Link {
	var out []Link
	tz := html.NewTokenizer(strings.NewReader(s))
	var current *Link
	for {
		switch tz.Next() {
		case html.ErrorToken:
			return out
		case html.StartTagToken:
			name, hasAttr := tz.TagName()
			if string(name) != "a" {
				continue
			}
			current = &Link{}
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = tz.TagAttr()
				if string(key) == "href" {
					current.URL = string(val)
				}
			}
		case html.TextToken:
			if current != nil {
				current.Text += string(tz.Text())
			}
		case html.EndTagToken:
			name, _ := tz.TagName()
			if string(name) == "a" && current != nil {
				if current.URL != "" {
					out = append(out, *current)
				}
				current = nil
			}
		}
	}
}

// searchBlob concatenates everything a query is matched against: name,
// plain-text description, offering labels and variant labels.
func searchBlob(e *ServiceEntry) string {
	parts := []string{e.Name, StripMarkup(e.Description)}
	for _, k := range e.OfferingKeys() {
		off := e.Offerings[k]
		label := off.Label
		if label == "" {
			label = k
		}
		parts = append(parts, label)
		for _, v := range off.Variants {
			parts = append(parts, v.Label)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// Filter returns the entries matching the query, preserving catalog order.
// Matching is case-insensitive substring containment; an empty query returns
// the input unchanged.
func Filter(entries []ServiceEntry, query string) []ServiceEntry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return entries
	}

	var out []ServiceEntry
	for i := range entries {
		if strings.Contains(searchBlob(&entries[i]), q) {
			out = append(out, entries[i])
		}
	}
	return out
}
