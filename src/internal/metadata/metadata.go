// Package metadata maps remote records onto the normalized schema.
package metadata

import (
	"strconv"
	"strings"

	"isfdbmeta/src/internal/isfdb"
	"isfdbmeta/src/internal/sanitize"
	"isfdbmeta/src/internal/schema"
	"isfdbmeta/src/internal/stringsx"
)

// FromPublication maps pub, filling only the gaps from title (which may be nil).
func FromPublication(pub *isfdb.Publication, title *isfdb.Title) schema.Metadata {
	m := schema.Metadata{
		Title:       pub.Title,
		Authors:     append([]string(nil), pub.Authors...),
		Identifiers: map[string]string{schema.IDPublication: strconv.Itoa(pub.ID)},
		Publisher:   pub.Publisher,
		PubDate:     pub.Date,
		CoverURL:    pub.CoverURL,
		SourceURL:   pub.URL,
	}
	if pub.ISBN != "" {
		m.Identifiers[schema.IDISBN] = isbnValue(pub.ISBN)
	}
	if pub.CatalogID != "" {
		m.Identifiers[schema.IDCatalog] = pub.CatalogID
	}
	for k, v := range pub.ExternalIDs {
		if id := externalKind(k); id != "" {
			m.Identifiers[id] = v
		}
	}
	titleID := pub.TitleID
	if title != nil {
		titleID = title.ID
	}
	if titleID > 0 {
		m.Identifiers[schema.IDTitle] = strconv.Itoa(titleID)
	}
	var comments []string
	if pub.SeriesName != "" {
		m.Series, comments = series(pub.SeriesName, pub.SeriesIndex, comments)
	}
	comments = appendIf(comments, pub.Contents)
	comments = appendIf(comments, pub.Notes)
	if len(pub.CoverArtists) > 0 {
		comments = append(comments, "Cover: "+strings.Join(pub.CoverArtists, ", "))
	}

	if title != nil {
		if m.Title == "" {
			m.Title = title.Title
		}
		if len(m.Authors) == 0 {
			m.Authors = append([]string(nil), title.Authors...)
		}
		if m.PubDate.IsZero() {
			m.PubDate = title.Date
		}
		if m.Series == nil && title.Series != "" {
			m.Series, comments = series(title.Series, title.SeriesIndex, comments)
		}
		m.Language = title.Language
		m.Tags = append([]string(nil), title.Tags...)
		comments = appendIf(comments, title.Notes)
	}
	m.Comments = joinComments(comments, pub.URL)
	sanitize.CleanMetadata(&m)
	return m
}

// FromTitle maps a title record on its own.
func FromTitle(t *isfdb.Title) schema.Metadata {
	m := schema.Metadata{
		Title:       t.Title,
		Authors:     append([]string(nil), t.Authors...),
		Identifiers: map[string]string{schema.IDTitle: strconv.Itoa(t.ID)},
		PubDate:     t.Date,
		Language:    t.Language,
		Tags:        append([]string(nil), t.Tags...),
		SourceURL:   t.URL,
	}
	comments := appendIf(nil, t.Notes)
	if t.Series != "" {
		m.Series, comments = series(t.Series, t.SeriesIndex, comments)
	}
	m.Comments = joinComments(comments, t.URL)
	sanitize.CleanMetadata(&m)
	return m
}

// WithSeries replaces the series name with the combined "Series | Sub-series"
// form, keeping the index.
func WithSeries(m schema.Metadata, s *isfdb.Series) schema.Metadata {
	if s == nil {
		return m
	}
	name := s.FullName()
	if name == "" {
		return m
	}
	idx := ""
	if m.Series != nil {
		idx = m.Series.Index
	}
	m.Series = &schema.Series{Name: name, Index: idx}
	return m
}

// SeriesIndex normalises "61/62" style numbers to their first number and
// reports whether anything was dropped.
func SeriesIndex(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	first, _, cut := strings.Cut(raw, "/")
	n := stringsx.DigitsOnly(first, false)
	if strings.Contains(first, ".") {
		if _, err := strconv.ParseFloat(strings.TrimSpace(first), 64); err == nil {
			n = strings.TrimSpace(first)
		}
	}
	return n, cut || n != raw
}

func series(name, rawIndex string, comments []string) (*schema.Series, []string) {
	idx, reduced := SeriesIndex(rawIndex)
	if reduced && rawIndex != "" {
		comments = append(comments, "Reported series number was "+rawIndex+".")
	}
	return &schema.Series{Name: name, Index: idx}, comments
}

func isbnValue(s string) string {
	if d := stringsx.DigitsOnly(s, true); len(d) == 10 || len(d) == 13 {
		return d
	}
	return s
}

func externalKind(label string) string {
	switch label {
	case "OCLC/WorldCat":
		return "oclc-worldcat"
	case "DNB":
		return "dnb"
	}
	return ""
}

func appendIf(list []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		list = append(list, s)
	}
	return list
}

func joinComments(parts []string, source string) string {
	if source != "" {
		parts = append(parts, "Source: "+source)
	}
	return strings.Join(parts, "<br />")
}
