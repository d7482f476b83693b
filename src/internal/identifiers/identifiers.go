// Package identifiers turns the loose identifier strings attached to a
// catalog entry into typed, validated values.
package identifiers

import (
	"sort"
	"strconv"
	"strings"

	"isfdbmeta/src/internal/schema"
	"isfdbmeta/src/internal/stringsx"
)

// Extra kinds accepted as disambiguation hints.
const (
	KindYear  = "year"
	KindMonth = "month"
	KindPrice = "price"
)

// Entry is the read-only view of a host catalog entry.
type Entry struct {
	Identifiers map[string]string `yaml:"identifiers" json:"identifiers"`
	Title       string            `yaml:"title,omitempty" json:"title,omitempty"`
	Authors     []string          `yaml:"authors,omitempty" json:"authors,omitempty"`
}

// Set holds at most one validated value per kind. Zero values mean absent.
type Set struct {
	PublicationID int
	TitleID       int
	ISBN          string // digits only, ISBN-10 may end in X
	CatalogID     string
	Year          int
	// Month is set together with MonthYear; when present Year is cleared.
	Month     int
	MonthYear int
	Price     string
}

// Query is the free-text fallback input.
type Query struct {
	Title   string
	Authors []string
}

// Empty reports whether there is no text to search for.
func (q Query) Empty() bool {
	if strings.TrimSpace(q.Title) != "" {
		return false
	}
	for _, a := range q.Authors {
		if strings.TrimSpace(a) != "" {
			return false
		}
	}
	return true
}

// Hints are the disambiguation values of a Set.
type Hints struct {
	Year      int
	Month     int
	MonthYear int
	Price     string
}

func (h Hints) Empty() bool { return h.Year == 0 && h.Month == 0 && h.Price == "" }

func (s Set) Hints() Hints {
	return Hints{Year: s.Year, Month: s.Month, MonthYear: s.MonthYear, Price: s.Price}
}

// Code is the value searched in the remote's combined ISBN/catalog field.
func (s Set) Code() string {
	return stringsx.FirstNonEmpty(s.ISBN, s.CatalogID)
}

// Extract validates each known kind; malformed values are dropped. The
// entry's map is only read. When several keys fold to the same kind, the
// exact lowercase key wins, then the lexically last other spelling.
func Extract(e Entry) (Set, Query) {
	var s Set
	for _, k := range orderedKeys(e.Identifiers) {
		v := strings.TrimSpace(e.Identifiers[k])
		switch strings.ToLower(strings.TrimSpace(k)) {
		case schema.IDPublication:
			s.PublicationID = positiveInt(v)
		case schema.IDTitle:
			s.TitleID = positiveInt(v)
		case schema.IDISBN:
			s.ISBN = ISBN(v)
		case schema.IDCatalog:
			s.CatalogID = v
		case KindYear:
			s.Year = year(v)
		case KindMonth:
			s.MonthYear, s.Month = month(v)
		case KindPrice:
			s.Price = v
		}
	}
	if s.Month != 0 {
		s.Year = 0
	}
	authors := make([]string, 0, len(e.Authors))
	for _, a := range e.Authors {
		if a = strings.TrimSpace(a); a != "" {
			authors = append(authors, a)
		}
	}
	return s, Query{Title: strings.TrimSpace(e.Title), Authors: authors}
}

// ParsePair splits "kind:value" as written on command lines.
func ParsePair(s string) (kind, value string, ok bool) {
	kind, value, ok = strings.Cut(s, ":")
	kind, value = strings.TrimSpace(kind), strings.TrimSpace(value)
	if !ok || kind == "" || value == "" {
		return "", "", false
	}
	return strings.ToLower(kind), value, true
}

// ISBN strips hyphens and spaces and returns the value when 10 or 13
// digits remain, "" otherwise. Checksums are not verified.
func ISBN(v string) string {
	var b strings.Builder
	for _, r := range v {
		switch {
		case r == '-' || r == ' ':
		case r >= '0' && r <= '9', r == 'x' || r == 'X':
			b.WriteRune(r)
		default:
			return ""
		}
	}
	s := strings.ToUpper(b.String())
	switch {
	case len(s) == 13 && !strings.ContainsRune(s, 'X'):
		return s
	case len(s) == 10 && !strings.ContainsRune(s[:9], 'X'):
		return s
	}
	return ""
}

func positiveInt(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

func year(v string) int {
	if len(v) != 4 {
		return 0
	}
	return positiveInt(v)
}

func month(v string) (int, int) {
	y, m, ok := strings.Cut(v, "-")
	if !ok || len(m) != 2 {
		return 0, 0
	}
	yy, mm := year(y), positiveInt(m)
	if yy == 0 || mm < 1 || mm > 12 {
		return 0, 0
	}
	return yy, mm
}

// orderedKeys sorts keys so canonical spellings are applied last.
func orderedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	canonical := func(k string) bool { return k == strings.ToLower(strings.TrimSpace(k)) }
	sort.Slice(keys, func(i, j int) bool {
		ci, cj := canonical(keys[i]), canonical(keys[j])
		if ci != cj {
			return cj
		}
		return keys[i] < keys[j]
	})
	return keys
}
