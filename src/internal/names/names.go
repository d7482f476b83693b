package names

import (
	"strings"
	"unicode"
)

// Author normalises a credited name as the remote lists it. "uncredited"
// becomes "unknown" and editors are suffixed with " (Editor)".
func Author(name string, editor bool) string {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return ""
	}
	if strings.EqualFold(name, "uncredited") {
		name = "unknown"
	}
	if editor {
		return name + " (Editor)"
	}
	return name
}

// QueryAuthor builds the author term used for remote text searches: only
// the first author, with "Family, Given" unscrambled to "Given Family".
// Middle initials are kept.
func QueryAuthor(authors []string) string {
	for _, a := range authors {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if i := strings.Index(a, ","); i >= 0 {
			a = strings.TrimSpace(a[i+1:]) + " " + strings.TrimSpace(a[:i])
		}
		return strings.Join(strings.Fields(a), " ")
	}
	return ""
}

// QueryTitle builds the title term used for remote text searches: the
// subtitle after a colon and any bracketed suffix are dropped.
func QueryTitle(title string) string {
	title = strings.TrimSpace(title)
	if i := strings.Index(title, ":"); i > 0 {
		title = title[:i]
	}
	for _, open := range []string{"(", "["} {
		if i := strings.Index(title, open); i > 0 {
			title = title[:i]
		}
	}
	return strings.Join(strings.Fields(title), " ")
}

// Stripped lowercases s and keeps only letters and spaces, for loose title comparison.
func Stripped(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
