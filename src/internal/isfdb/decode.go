package isfdb

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"isfdbmeta/src/internal/stringsx"
)

// document decodes body from its declared charset (the remote serves
// ISO-8859-1) and drops tooltip markup that would otherwise leak into
// field values.
func document(body []byte, contentType string) (*goquery.Document, error) {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	doc.Find("sup.mouseover, span.tooltiptext").Remove()
	return doc, nil
}

// field is one labelled line of a record page: "<b>Label:</b> value".
type field struct {
	label string
	// tail is the text directly after the label element.
	tail string
	sel  *goquery.Selection
}

func (f field) links() *goquery.Selection {
	return f.sel.Filter("a").AddSelection(f.sel.Find("a"))
}

func (f field) linkTexts() []string {
	var out []string
	f.links().Each(func(_ int, a *goquery.Selection) {
		if s := stringsx.CollapseSpace(a.Text()); s != "" {
			out = append(out, s)
		}
	})
	return out
}

// text is the whole line without its label.
func (f field) text() string {
	s := stringsx.CollapseSpace(f.sel.Text())
	if i := strings.Index(s, ":"); i >= 0 && strings.HasPrefix(s, f.label) {
		s = strings.TrimSpace(s[i+1:])
	}
	return s
}

func labelOf(s *goquery.Selection) string {
	return strings.TrimSuffix(stringsx.CollapseSpace(s.Text()), ":")
}

// tailText returns the text node following n, if any.
func tailText(n *html.Node) string {
	if n == nil || n.NextSibling == nil || n.NextSibling.Type != html.TextNode {
		return ""
	}
	return stringsx.CollapseSpace(n.NextSibling.Data)
}

// listFields reads "<li><b>Label:</b> ..." lines.
func listFields(items *goquery.Selection) []field {
	var out []field
	items.Each(func(_ int, li *goquery.Selection) {
		b := li.ChildrenFiltered("b").First()
		if b.Length() == 0 {
			return
		}
		out = append(out, field{label: labelOf(b), tail: tailText(b.Nodes[0]), sel: li})
	})
	return out
}

// breakFields reads a flat run of elements separated by <br>, the older
// layout of title pages.
func breakFields(box *goquery.Selection) []field {
	var out []field
	var group []*html.Node
	flush := func() {
		if len(group) > 0 && group[0].Data == "b" {
			sel := box.Children().FilterNodes(group...)
			first := sel.First()
			out = append(out, field{label: labelOf(first), tail: tailText(group[0]), sel: sel})
		}
		group = nil
	}
	box.Children().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "br" {
			flush()
			return
		}
		group = append(group, c.Nodes[0])
	})
	flush()
	return out
}

func outerHTML(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	h, err := goquery.OuterHtml(s)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(h)
}

// notFound reports the remote's "no such record" pages: a bare heading
// naming the missing record and none of a record page's structure. Body
// text such as notes is never inspected.
func notFound(doc *goquery.Document) bool {
	if doc.Find("td.pubheader, div.ContentBox").Length() > 0 {
		return false
	}
	found := false
	doc.Find("div#content > h1, div#content > h2, div#content > h3, div#main > h1, div#main > h2, div#main > h3").
		EachWithBreak(func(_ int, h *goquery.Selection) bool {
			text := strings.ToLower(stringsx.CollapseSpace(h.Text()))
			for _, m := range missingMarkers {
				if strings.HasPrefix(text, m) {
					found = true
					return false
				}
			}
			return true
		})
	return found
}

var missingMarkers = []string{"unknown publication record", "unknown title record", "unknown series record",
	"record not found", "this record does not exist", "no such record"}
