package isfdb

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"isfdbmeta/src/internal/httpx"
)

type fakeSession struct {
	mu      sync.Mutex
	handler func(url string) (*httpx.Page, error)
	urls    []string
}

func (f *fakeSession) Get(_ context.Context, url string) (*httpx.Page, error) {
	f.mu.Lock()
	f.urls = append(f.urls, url)
	f.mu.Unlock()
	return f.handler(url)
}

func htmlPage(url, body string) *httpx.Page {
	return &httpx.Page{Body: []byte(body), FinalURL: url, StatusCode: 200, ContentType: "text/html; charset=iso-8859-1"}
}

func statusPage(url string, status int) *httpx.Page {
	return &httpx.Page{Body: []byte("<html></html>"), FinalURL: url, StatusCode: status}
}

func newTestClient(t *testing.T, s httpx.Session, cache int) *Client {
	t.Helper()
	c, err := New(s, Options{CacheSize: cache})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNewRejectsNilSession(t *testing.T) {
	if _, err := New(nil, Options{}); err == nil {
		t.Fatalf("expected error for nil session")
	}
}

func TestFetchPublication(t *testing.T) {
	s := &fakeSession{handler: func(u string) (*httpx.Page, error) { return htmlPage(u, publicationPage), nil }}
	c := newTestClient(t, s, 0)
	pub, err := c.FetchPublication(context.Background(), 262210)
	if err != nil {
		t.Fatalf("FetchPublication: %v", err)
	}
	if pub.ID != 262210 || pub.Title != "The Silver Locusts" {
		t.Fatalf("pub: %+v", pub)
	}
	if s.urls[0] != "https://www.isfdb.org/cgi-bin/pl.cgi?262210" || pub.URL != s.urls[0] {
		t.Fatalf("url: %v / %q", s.urls, pub.URL)
	}
}

func TestFetchTitleAndCoversAndSeries(t *testing.T) {
	s := &fakeSession{handler: func(u string) (*httpx.Page, error) {
		switch {
		case strings.Contains(u, "titlecovers.cgi?1475"):
			return htmlPage(u, coversPage), nil
		case strings.Contains(u, "title.cgi?1475"):
			return htmlPage(u, titlePage), nil
		case strings.Contains(u, "pe.cgi?45706"):
			return htmlPage(u, seriesPage), nil
		}
		return statusPage(u, 404), nil
	}}
	c := newTestClient(t, s, 0)
	ctx := context.Background()
	ti, err := c.FetchTitle(ctx, 1475)
	if err != nil || ti.SeriesID != 45706 {
		t.Fatalf("FetchTitle: %+v %v", ti, err)
	}
	covers, err := c.FetchTitleCovers(ctx, 1475)
	if err != nil || len(covers) != 3 {
		t.Fatalf("FetchTitleCovers: %v %v", covers, err)
	}
	series, err := c.FetchSeries(ctx, 45706)
	if err != nil || series.FullName() != "Ren Dhark Universe | Classic-Zyklus" {
		t.Fatalf("FetchSeries: %+v %v", series, err)
	}
}

func TestSearchURLs(t *testing.T) {
	s := &fakeSession{handler: func(u string) (*httpx.Page, error) { return htmlPage(u, noRecordsPage), nil }}
	c := newTestClient(t, s, 0)
	ctx := context.Background()
	if _, err := c.SearchPublications(ctx, PublicationQuery{Code: "0330020420", Title: "ignored"}); err != nil {
		t.Fatalf("SearchPublications code: %v", err)
	}
	if _, err := c.SearchPublications(ctx, PublicationQuery{Title: "Dune", Author: "Frank Herbert"}); err != nil {
		t.Fatalf("SearchPublications text: %v", err)
	}
	if _, err := c.SearchTitles(ctx, TitleQuery{Author: "Herbert"}); err != nil {
		t.Fatalf("SearchTitles: %v", err)
	}
	if _, err := c.SearchTitlesExact(ctx, "Dune", "Frank Herbert", "NOVEL"); err != nil {
		t.Fatalf("SearchTitlesExact: %v", err)
	}
	want := []string{
		"adv_search_results.cgi?USE_1=pub_isbn&OPERATOR_1=exact&TERM_1=0330020420&ORDERBY=pub_title&START=0&TYPE=Publication",
		"USE_1=pub_title&OPERATOR_1=contains&TERM_1=Dune&CONJUNCTION_1=AND&USE_2=author_canonical&OPERATOR_2=contains&TERM_2=Frank+Herbert&ORDERBY=pub_title",
		"USE_1=author_canonical&OPERATOR_1=contains&TERM_1=Herbert&ORDERBY=title_title&START=0&TYPE=Title",
		"USE_3=title_ttype&OPERATOR_3=exact&TERM_3=NOVEL&ORDERBY=title_title",
	}
	for i, w := range want {
		if !strings.Contains(s.urls[i], w) {
			t.Fatalf("url %d: %s does not contain %s", i, s.urls[i], w)
		}
	}
	if _, err := c.SearchPublications(ctx, PublicationQuery{}); err == nil {
		t.Fatalf("empty query should fail")
	}
}

func TestErrorClassification(t *testing.T) {
	cases := []struct {
		name string
		page *httpx.Page
		err  error
		want error
	}{
		{"login", nil, httpx.ErrLoginRedirect, ErrAuthRequired},
		{"network", nil, errors.New("connection reset"), ErrTransient},
		{"timeout", nil, context.DeadlineExceeded, ErrTransient},
		{"401", statusPage("u", 401), nil, ErrAuthRequired},
		{"403", statusPage("u", 403), nil, ErrAuthRequired},
		{"404", statusPage("u", 404), nil, ErrNotFound},
		{"429", statusPage("u", 429), nil, ErrTransient},
		{"503", statusPage("u", 503), nil, ErrTransient},
		{"418", statusPage("u", 418), nil, ErrParse},
		{"unknown record", htmlPage("u", unknownRecordPage), nil, ErrNotFound},
		{"drift", htmlPage("u", brokenSearchPage), nil, ErrParse},
	}
	for _, tc := range cases {
		s := &fakeSession{handler: func(string) (*httpx.Page, error) { return tc.page, tc.err }}
		_, err := newTestClient(t, s, 0).FetchPublication(context.Background(), 1)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: want %v, got %v", tc.name, tc.want, err)
		}
		var e *Error
		if !errors.As(err, &e) || e.Op != opFetchPublication || e.URL == "" {
			t.Fatalf("%s: missing op/url: %#v", tc.name, err)
		}
	}
}

func TestErrorKindsAreDistinct(t *testing.T) {
	err := newError(KindNotFound, "op", "u", nil)
	if errors.Is(err, ErrParse) || !errors.Is(err, ErrNotFound) {
		t.Fatalf("kind matching broken")
	}
	if KindOf(err) != KindNotFound || KindOf(errors.New("x")) != 0 {
		t.Fatalf("KindOf mismatch")
	}
	if !strings.Contains(err.Error(), "not_found") {
		t.Fatalf("message: %s", err.Error())
	}
}

func TestPageCache(t *testing.T) {
	s := &fakeSession{handler: func(u string) (*httpx.Page, error) { return htmlPage(u, publicationPage), nil }}
	c := newTestClient(t, s, 4)
	for i := 0; i < 3; i++ {
		if _, err := c.FetchPublication(context.Background(), 262210); err != nil {
			t.Fatalf("FetchPublication: %v", err)
		}
	}
	if len(s.urls) != 1 {
		t.Fatalf("cache should serve repeats, session saw %d requests", len(s.urls))
	}
}

func TestPageCacheSkipsFailures(t *testing.T) {
	n := 0
	s := &fakeSession{handler: func(u string) (*httpx.Page, error) {
		n++
		if n == 1 {
			return statusPage(u, 503), nil
		}
		return htmlPage(u, publicationPage), nil
	}}
	c := newTestClient(t, s, 4)
	if _, err := c.FetchPublication(context.Background(), 1); !errors.Is(err, ErrTransient) {
		t.Fatalf("first call: %v", err)
	}
	if _, err := c.FetchPublication(context.Background(), 1); err != nil {
		t.Fatalf("second call should refetch: %v", err)
	}
}

func TestRecordTextMentioningMissingRecordIsNotNotFound(t *testing.T) {
	page := strings.Replace(publicationPage, "Data from Locus1", "OCLC record not found. No such record in Reginald", 1)
	s := &fakeSession{handler: func(u string) (*httpx.Page, error) { return htmlPage(u, page), nil }}
	pub, err := newTestClient(t, s, 0).FetchPublication(context.Background(), 262210)
	if err != nil {
		t.Fatalf("notes text must not make the record missing: %v", err)
	}
	if !strings.Contains(pub.Notes, "OCLC record not found") {
		t.Fatalf("notes: %q", pub.Notes)
	}
}

func TestSearchRowTitledLikeMissingRecord(t *testing.T) {
	page := strings.Replace(publicationSearchPage, ">All Flesh Is Grass</a></td><td>1965", ">No Such Record</a></td><td>1965", 1)
	s := &fakeSession{handler: func(u string) (*httpx.Page, error) { return htmlPage(u, page), nil }}
	rows, err := newTestClient(t, s, 0).SearchPublications(context.Background(), PublicationQuery{Title: "No Such Record"})
	if err != nil {
		t.Fatalf("search rows are never a missing record: %v", err)
	}
	if len(rows) != 3 || rows[0].Title != "No Such Record" {
		t.Fatalf("rows: %+v", rows)
	}
}

func TestSearchNeverReportsNotFound(t *testing.T) {
	s := &fakeSession{handler: func(u string) (*httpx.Page, error) { return htmlPage(u, unknownRecordPage), nil }}
	_, err := newTestClient(t, s, 0).SearchTitles(context.Background(), TitleQuery{Title: "x"})
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("search classified as NotFound: %v", err)
	}
}
