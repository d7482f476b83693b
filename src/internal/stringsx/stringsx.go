package stringsx

import "strings"

// FirstNonEmpty returns the first string in vals that is non-empty when trimmed.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// CollapseSpace trims s and folds internal whitespace runs to one space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// DigitsOnly keeps ASCII digits; a trailing x/X is kept when keepX is set.
func DigitsOnly(s string, keepX bool) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case keepX && (r == 'x' || r == 'X') && i == len(s)-1:
			b.WriteByte('X')
		}
	}
	return b.String()
}
