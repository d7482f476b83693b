package isfdb

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"isfdbmeta/src/internal/dates"
	"isfdbmeta/src/internal/names"
	"isfdbmeta/src/internal/stringsx"
)

const (
	opFetchTitle  = "fetch_title"
	opTitleCovers = "fetch_title_covers"
)

// typeTags maps title types to the tags they imply.
var typeTags = map[string][]string{
	"ANTHOLOGY":    {"anthology"},
	"CHAPBOOK":     {"chapbook"},
	"COLLECTION":   {"collection"},
	"ESSAY":        {"essay"},
	"FANZINE":      {"fanzine"},
	"MAGAZINE":     {"magazine"},
	"NONFICTION":   {"non-fiction"},
	"NOVEL":        {"novel"},
	"OMNIBUS":      {"omnibus"},
	"POEM":         {"poem"},
	"SERIAL":       {"serial"},
	"SHORTFICTION": {"short fiction"},
}

// languages maps the remote's language names to ISO 639-2 codes.
var languages = map[string]string{
	"Afrikaans": "afr", "Arabic": "ara", "Bulgarian": "bul", "Catalan": "cat",
	"Chinese": "chi", "Croatian": "hrv", "Czech": "cze", "Danish": "dan",
	"Dutch": "dut", "English": "eng", "Esperanto": "epo", "Estonian": "est",
	"Finnish": "fin", "French": "fre", "German": "ger", "Greek": "gre",
	"Hebrew": "heb", "Hindi": "hin", "Hungarian": "hun", "Icelandic": "ice",
	"Indonesian": "ind", "Irish": "gle", "Italian": "ita", "Japanese": "jpn",
	"Korean": "kor", "Latin": "lat", "Latvian": "lav", "Lithuanian": "lit",
	"Norwegian": "nor", "Persian": "per", "Polish": "pol", "Portuguese": "por",
	"Romanian": "rum", "Russian": "rus", "Serbian": "srp", "Slovak": "slo",
	"Slovenian": "slv", "Spanish": "spa", "Swedish": "swe", "Thai": "tha",
	"Turkish": "tur", "Ukrainian": "ukr", "Vietnamese": "vie", "Welsh": "wel",
	"Yiddish": "yid", "Klingon": "tlh",
}

func parseTitle(doc *goquery.Document, id int, pageURL string) (*Title, error) {
	box := doc.Find("div.ContentBox").First()
	if box.Length() == 0 {
		return nil, parseErrorf(opFetchTitle, pageURL, "no content box")
	}
	fields := listFields(box.Find("ul").First().ChildrenFiltered("li"))
	if len(fields) == 0 {
		fields = breakFields(box)
	}
	if len(fields) == 0 {
		return nil, parseErrorf(opFetchTitle, pageURL, "no title fields")
	}

	t := &Title{ID: id, URL: pageURL}
	var notes []string
	for _, f := range fields {
		switch f.label {
		case "Title":
			t.Title = stringsx.FirstNonEmpty(f.tail, f.text())
		case "Author", "Authors", "Editor", "Editors":
			editor := strings.HasPrefix(f.label, "Editor")
			for _, a := range f.linkTexts() {
				t.Authors = append(t.Authors, names.Author(a, editor))
			}
		case "Date":
			if d, err := dates.Parse(f.tail); err == nil {
				t.Date = d
			}
		case "Type":
			t.Type = f.tail
			if kw := strings.Fields(f.tail); len(kw) > 0 {
				t.Tags = append(t.Tags, typeTags[kw[0]]...)
			}
		case "Length":
			t.Length = f.tail
			if f.tail != "" {
				t.Tags = append(t.Tags, f.tail)
			}
		case "Language":
			t.Language = f.tail
			if code, ok := languages[f.tail]; ok {
				t.Language = code
			}
		case "Series":
			a := f.links().First()
			t.Series = stringsx.CollapseSpace(a.Text())
			if href, ok := a.Attr("href"); ok {
				t.SeriesID, _ = IDFromURL(href)
			}
		case "Series Number":
			t.SeriesIndex = f.tail
		case "Note", "Notes":
			if n := outerHTML(f.sel.Find("div.notes").AddSelection(f.sel.Filter("div.notes")).First()); n != "" {
				notes = append(notes, n)
			} else if s := f.text(); s != "" {
				notes = append(notes, s)
			}
		case "Variant Title of":
			if s := f.text(); s != "" {
				notes = append(notes, "Variant Title of: "+s)
			}
		case "Current Tags":
			for _, tag := range f.linkTexts() {
				if tag != "Add Tags" {
					t.Tags = append(t.Tags, tag)
				}
			}
		}
	}
	if t.Title == "" {
		return nil, parseErrorf(opFetchTitle, pageURL, "title page has no title")
	}
	t.Notes = strings.Join(notes, "<br />")

	seen := map[int]bool{}
	doc.Find(`a[href*="pl.cgi?"]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if pid, ok := IDFromURL(href); ok && !seen[pid] {
			seen[pid] = true
			t.PublicationIDs = append(t.PublicationIDs, pid)
		}
	})
	return t, nil
}

// parseTitleCovers lists every cover image on a titlecovers page in page order.
func parseTitleCovers(doc *goquery.Document, pageURL string) ([]string, error) {
	main := doc.Find("div#main")
	if main.Length() == 0 {
		return nil, parseErrorf(opTitleCovers, pageURL, "no main block")
	}
	var out []string
	main.Find("a > img").Each(func(_ int, img *goquery.Selection) {
		if src, ok := img.Attr("src"); ok && strings.TrimSpace(src) != "" {
			out = append(out, strings.TrimSpace(src))
		}
	})
	return out, nil
}
