package isfdb

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"isfdbmeta/src/internal/dates"
	"isfdbmeta/src/internal/stringsx"
)

const (
	opSearchPublications = "search_publications"
	opSearchTitles       = "search_titles"
)

type columns struct {
	title, date, authors, price, isbn int
}

// Column positions used when a result table has no header row.
var (
	publicationColumns = columns{title: 0, date: 1, authors: 2, price: -1, isbn: -1}
	titleColumns       = columns{title: 4, date: 0, authors: 5, price: -1, isbn: -1}
)

func headerColumns(hdr *goquery.Selection, fallback columns) columns {
	cells := hdr.Find("th")
	if cells.Length() == 0 {
		return fallback
	}
	c := columns{title: -1, date: -1, authors: -1, price: -1, isbn: -1}
	cells.Each(func(i int, th *goquery.Selection) {
		h := strings.ToLower(stringsx.CollapseSpace(th.Text()))
		set := func(p *int) {
			if *p < 0 {
				*p = i
			}
		}
		switch {
		case strings.HasPrefix(h, "title"):
			set(&c.title)
		case strings.HasPrefix(h, "date"):
			set(&c.date)
		case strings.HasPrefix(h, "author"):
			set(&c.authors)
		case strings.HasPrefix(h, "price"):
			set(&c.price)
		case strings.HasPrefix(h, "isbn"):
			set(&c.isbn)
		}
	})
	if c.title < 0 {
		return fallback
	}
	return c
}

// parseSearch reads an adv_search_results page. "No records found" is an
// empty result; a page without the result block is a ParseError.
func parseSearch(doc *goquery.Document, kind RowKind, op, pageURL string) ([]SearchRow, error) {
	main := doc.Find("div#main")
	if main.Length() == 0 {
		return nil, parseErrorf(op, pageURL, "no main block")
	}
	if strings.Contains(main.Text(), "No records found") {
		return nil, nil
	}
	table := main.Find("table").First()
	if table.Length() == 0 {
		return nil, parseErrorf(op, pageURL, "no result table")
	}

	fallback, script := publicationColumns, "pl.cgi?"
	if kind == RowTitle {
		fallback, script = titleColumns, "title.cgi?"
	}
	rows := table.Find("tr")
	cols := headerColumns(rows.First(), fallback)

	var out []SearchRow
	rows.Each(func(_ int, tr *goquery.Selection) {
		cells := tr.ChildrenFiltered("td")
		if cells.Length() == 0 {
			return // header
		}
		cell := func(i int) *goquery.Selection {
			if i < 0 || i >= cells.Length() {
				return nil
			}
			return cells.Eq(i)
		}
		tc := cell(cols.title)
		if tc == nil {
			return
		}
		link := tc.Find(`a[href*="` + script + `"]`).First()
		href, _ := link.Attr("href")
		id, ok := IDFromURL(href)
		if !ok {
			return
		}
		row := SearchRow{Kind: kind, ID: id, Title: stringsx.CollapseSpace(link.Text()), URL: href}
		if c := cell(cols.authors); c != nil {
			c.Find("a").Each(func(_ int, a *goquery.Selection) {
				if s := stringsx.CollapseSpace(a.Text()); s != "" {
					row.Authors = append(row.Authors, s)
				}
			})
		}
		if c := cell(cols.date); c != nil {
			row.Date, _ = dates.Parse(firstWord(c.Text()))
		}
		if c := cell(cols.price); c != nil {
			row.Price = stringsx.CollapseSpace(c.Text())
		}
		if c := cell(cols.isbn); c != nil {
			row.ISBN = firstWord(c.Text())
		}
		out = append(out, row)
	})
	if len(out) == 0 && rows.Length() > 1 {
		return nil, parseErrorf(op, pageURL, "result rows carry no %s links", strings.TrimSuffix(script, "?"))
	}
	return out, nil
}

func firstWord(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return f[0]
	}
	return ""
}
