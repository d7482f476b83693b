package isfdb

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"isfdbmeta/src/internal/dates"
	"isfdbmeta/src/internal/names"
	"isfdbmeta/src/internal/stringsx"
)

const opFetchPublication = "fetch_publication"

func parsePublication(doc *goquery.Document, id int, pageURL string) (*Publication, error) {
	items := doc.Find("div#content td.pubheader > ul > li")
	if items.Length() == 0 {
		// records without a cover image have no header table
		items = doc.Find("div#content div.ContentBox").First().Find("ul").First().ChildrenFiltered("li")
	}
	fields := listFields(items)
	if len(fields) == 0 {
		return nil, parseErrorf(opFetchPublication, pageURL, "no publication fields")
	}

	pub := &Publication{ID: id, URL: pageURL}
	for _, f := range fields {
		switch f.label {
		case "Publication":
			pub.Title = stringsx.FirstNonEmpty(f.tail, f.text())
		case "Author", "Authors", "Editor", "Editors":
			editor := strings.HasPrefix(f.label, "Editor")
			for _, a := range f.linkTexts() {
				if pub.AuthorString == "" {
					pub.AuthorString = a
				}
				pub.Authors = append(pub.Authors, names.Author(a, editor))
			}
		case "Date":
			if d, err := dates.Parse(f.tail); err == nil {
				pub.Date = d
			}
		case "ISBN":
			pub.ISBN = strings.Trim(f.tail, "[] ")
		case "Catalog ID":
			pub.CatalogID = f.tail
		case "Publisher":
			pub.Publisher = stringsx.FirstNonEmpty(f.links().First().Text(), f.text())
		case "Price":
			pub.Price = stringsx.FirstNonEmpty(f.tail, f.text())
		case "Pages":
			pub.Pages = f.tail
		case "Format":
			pub.Format = stringsx.FirstNonEmpty(f.tail, f.text())
		case "Type":
			pub.Type = f.tail
		case "Pub. Series":
			a := f.links().First()
			pub.SeriesName = stringsx.CollapseSpace(a.Text())
			if href, ok := a.Attr("href"); ok {
				pub.SeriesID, _ = IDFromURL(href)
			}
		case "Pub. Series #":
			pub.SeriesIndex = f.tail
		case "Cover":
			f.sel.Find(`a[href*="ea.cgi?"]`).Each(func(_ int, a *goquery.Selection) {
				if s := stringsx.CollapseSpace(a.Text()); s != "" {
					pub.CoverArtists = append(pub.CoverArtists, s)
				}
			})
		case "Notes":
			if n := outerHTML(f.sel.Find("div.notes").First()); n != "" {
				pub.Notes = n
			} else {
				pub.Notes = f.text()
			}
		case "External IDs":
			pub.ExternalIDs = externalIDs(f.sel)
		case "Container Title":
			f.links().EachWithBreak(func(_ int, a *goquery.Selection) bool {
				href, _ := a.Attr("href")
				if strings.Contains(href, "title.cgi?") {
					pub.TitleID, _ = IDFromURL(href)
					return false
				}
				return true
			})
		}
	}
	if pub.Title == "" {
		return nil, parseErrorf(opFetchPublication, pageURL, "publication page has no title")
	}

	if contents := doc.Find("div.ContentBox").Eq(1).ChildrenFiltered("ul").First(); contents.Length() > 0 {
		pub.Contents = outerHTML(contents)
	}
	cell := doc.Find("div#content table").First().Find("tr").First().Find("td").First()
	if src, ok := cell.Find("a > img").First().Attr("src"); ok {
		pub.CoverURL = strings.TrimSpace(src)
	}
	return pub, nil
}

// externalIDs reads "<li><abbr>OCLC/WorldCat</abbr>: <a>123</a>" lines.
func externalIDs(s *goquery.Selection) map[string]string {
	out := map[string]string{}
	s.Find("ul > li").Each(func(_ int, li *goquery.Selection) {
		key := stringsx.CollapseSpace(li.Children().First().Text())
		val := stringsx.CollapseSpace(li.Find("a").Last().Text())
		if key != "" && val != "" {
			out[key] = val
		}
	})
	if len(out) == 0 {
		return nil
	}
	return out
}
