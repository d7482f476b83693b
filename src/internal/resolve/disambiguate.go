package resolve

import (
	"isfdbmeta/src/internal/identifiers"
	"isfdbmeta/src/internal/isfdb"
)

// Disambiguate narrows search rows with the date hint (month beats year)
// and then the price hint. A stage that would remove every row is skipped.
// When any hint matched, only the first surviving row is returned;
// otherwise rows are capped at max. Order is never changed.
func Disambiguate(rows []isfdb.SearchRow, h identifiers.Hints, max int) []isfdb.SearchRow {
	if len(rows) == 0 {
		return nil
	}
	out := rows
	matched := false
	var ok bool
	switch {
	case h.Month != 0:
		out, ok = keep(out, func(r isfdb.SearchRow) bool { return r.Date.SameMonth(h.MonthYear, h.Month) })
		matched = matched || ok
	case h.Year != 0:
		out, ok = keep(out, func(r isfdb.SearchRow) bool { return r.Date.Year == h.Year })
		matched = matched || ok
	}
	if h.Price != "" {
		out, ok = keep(out, func(r isfdb.SearchRow) bool { return r.Price == h.Price })
		matched = matched || ok
	}
	if matched {
		return []isfdb.SearchRow{out[0]}
	}
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return append([]isfdb.SearchRow(nil), out...)
}

// keep filters rows; when nothing survives the input is returned with false.
func keep(rows []isfdb.SearchRow, pred func(isfdb.SearchRow) bool) ([]isfdb.SearchRow, bool) {
	var kept []isfdb.SearchRow
	for _, r := range rows {
		if pred(r) {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		return rows, false
	}
	return kept, true
}
