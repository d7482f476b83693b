package isfdb

import "isfdbmeta/src/internal/dates"

// Publication is one edition as listed on a pl.cgi page.
type Publication struct {
	ID      int
	TitleID int // 0 when the page carries no container title link
	Title   string
	Authors []string
	// AuthorString is the first credited name without the editor suffix,
	// used for exact title lookups.
	AuthorString string
	ISBN         string
	CatalogID    string
	Publisher    string
	Date         dates.PartialDate
	Price        string
	Pages        string
	Format       string
	Type         string
	CoverURL     string
	CoverArtists []string
	Notes        string // HTML
	Contents     string // HTML
	SeriesID     int
	SeriesName   string
	SeriesIndex  string
	ExternalIDs  map[string]string
	URL          string
}

// Title is the abstract work on a title.cgi page.
type Title struct {
	ID             int
	Title          string
	Authors        []string
	Date           dates.PartialDate
	Type           string
	Length         string
	Language       string // ISO 639-2 code when known, otherwise the page text
	Tags           []string
	SeriesID       int
	Series         string
	SeriesIndex    string
	Notes          string // HTML
	PublicationIDs []int
	URL            string
}

// HasPublication reports whether id is listed among the title's editions.
func (t *Title) HasPublication(id int) bool {
	for _, p := range t.PublicationIDs {
		if p == id {
			return true
		}
	}
	return false
}

type RowKind int

const (
	RowPublication RowKind = iota + 1
	RowTitle
)

func (k RowKind) String() string {
	if k == RowTitle {
		return "title"
	}
	return "publication"
}

// SearchRow is one line of an advanced search result.
type SearchRow struct {
	Kind    RowKind
	ID      int
	Title   string
	Authors []string
	Date    dates.PartialDate
	Price   string
	ISBN    string
	URL     string
}

// Series is a pe.cgi page reduced to its name and parent series.
type Series struct {
	ID     int
	Name   string
	Parent string
}

// FullName renders "Parent | Name" for sub-series and Name otherwise.
func (s Series) FullName() string {
	if s.Parent != "" && s.Name != "" {
		return s.Parent + " | " + s.Name
	}
	if s.Name != "" {
		return s.Name
	}
	return s.Parent
}
