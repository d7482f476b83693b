package isfdb

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"isfdbmeta/src/internal/stringsx"
)

const opFetchSeries = "fetch_series"

// parseSeries reads the header box of a series page:
//
//	Series: Classic-Zyklus Series Record # 45706
//	Sub-series of: Ren Dhark Universe
func parseSeries(doc *goquery.Document, id int, pageURL string) (*Series, error) {
	items := doc.Find("div#content div.ContentBox").First().Find("ul").First().ChildrenFiltered("li")
	if items.Length() == 0 {
		return nil, parseErrorf(opFetchSeries, pageURL, "no series fields")
	}
	s := &Series{ID: id}
	items.Each(func(_ int, li *goquery.Selection) {
		line := stringsx.CollapseSpace(li.Text())
		if v, ok := cutLabel(line, "Sub-series of:"); ok && s.Parent == "" {
			s.Parent = v
			return
		}
		for _, c := range []struct{ label, record string }{
			{"Publication Series:", "Pub. Series Record #"},
			{"Series:", "Series Record #"},
		} {
			if v, ok := cutLabel(line, c.label); ok && s.Name == "" {
				if i := strings.Index(v, c.record); i >= 0 {
					v = v[:i]
				}
				s.Name = strings.TrimSpace(v)
				return
			}
		}
	})
	if s.Name == "" {
		return nil, parseErrorf(opFetchSeries, pageURL, "series page has no name")
	}
	return s, nil
}

func cutLabel(line, label string) (string, bool) {
	if !strings.HasPrefix(line, label) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(line, label)), true
}
