package isfdb

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// DefaultBaseURL is the remote's CGI root.
const DefaultBaseURL = "https://www.isfdb.org/cgi-bin/"

var recordID = regexp.MustCompile(`\.cgi\?(\d+)`)

// IDFromURL extracts the numeric record id from a pl/title/pe/pubseries link.
func IDFromURL(href string) (int, bool) {
	m := recordID.FindStringSubmatch(href)
	if m == nil {
		return 0, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func recordURL(base, script string, id int) string {
	return base + script + "?" + strconv.Itoa(id)
}

type term struct {
	use, op, value string
}

// latin1Escape encodes a query term the way the remote's own search form
// does. Runes outside ISO-8859-1 become the charmap replacement byte.
// Encoders carry state, so each call gets its own.
func latin1Escape(s string) string {
	b, err := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder()).String(s)
	if err != nil {
		b = s
	}
	return url.QueryEscape(b)
}

// searchURL renders adv_search_results.cgi with numbered USE/OPERATOR/TERM
// triples joined by AND.
func searchURL(base, typ, orderBy string, terms []term) string {
	var b strings.Builder
	b.WriteString(base)
	b.WriteString("adv_search_results.cgi?")
	for i, t := range terms {
		n := strconv.Itoa(i + 1)
		b.WriteString("USE_" + n + "=" + url.QueryEscape(t.use) + "&")
		b.WriteString("OPERATOR_" + n + "=" + url.QueryEscape(t.op) + "&")
		b.WriteString("TERM_" + n + "=" + latin1Escape(t.value) + "&")
		if i < len(terms)-1 {
			b.WriteString("CONJUNCTION_" + n + "=AND&")
		}
	}
	b.WriteString("ORDERBY=" + orderBy + "&START=0&TYPE=" + typ)
	return b.String()
}
