package resolve

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"isfdbmeta/src/internal/dates"
	"isfdbmeta/src/internal/isfdb"
)

type fakeFetcher struct {
	mu        sync.Mutex
	pubs      map[int]*isfdb.Publication
	titles    map[int]*isfdb.Title
	covers    map[int][]string
	series    map[int]*isfdb.Series
	pubRows   []isfdb.SearchRow
	titleRows []isfdb.SearchRow
	exactRows []isfdb.SearchRow
	errs      map[string]error
	calls     []string
}

func newFake() *fakeFetcher {
	return &fakeFetcher{
		pubs:   map[int]*isfdb.Publication{},
		titles: map[int]*isfdb.Title{},
		covers: map[int][]string{},
		series: map[int]*isfdb.Series{},
		errs:   map[string]error{},
	}
}

func (f *fakeFetcher) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	if err, ok := f.errs[call]; ok {
		return err
	}
	return nil
}

func (f *fakeFetcher) called(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func notFound(op string, id int) error {
	return &isfdb.Error{Kind: isfdb.KindNotFound, Op: op, URL: fmt.Sprintf("test://%s/%d", op, id)}
}

func (f *fakeFetcher) FetchPublication(_ context.Context, id int) (*isfdb.Publication, error) {
	if err := f.record("pub:" + strconv.Itoa(id)); err != nil {
		return nil, err
	}
	if p, ok := f.pubs[id]; ok {
		return p, nil
	}
	return nil, notFound("fetch_publication", id)
}

func (f *fakeFetcher) FetchTitle(_ context.Context, id int) (*isfdb.Title, error) {
	if err := f.record("title:" + strconv.Itoa(id)); err != nil {
		return nil, err
	}
	if t, ok := f.titles[id]; ok {
		return t, nil
	}
	return nil, notFound("fetch_title", id)
}

func (f *fakeFetcher) FetchTitleCovers(_ context.Context, id int) ([]string, error) {
	if err := f.record("covers:" + strconv.Itoa(id)); err != nil {
		return nil, err
	}
	return f.covers[id], nil
}

func (f *fakeFetcher) FetchSeries(_ context.Context, id int) (*isfdb.Series, error) {
	if err := f.record("series:" + strconv.Itoa(id)); err != nil {
		return nil, err
	}
	if s, ok := f.series[id]; ok {
		return s, nil
	}
	return nil, notFound("fetch_series", id)
}

func (f *fakeFetcher) SearchPublications(_ context.Context, q isfdb.PublicationQuery) ([]isfdb.SearchRow, error) {
	if err := f.record("search_pubs:" + q.Code + "|" + q.Title + "|" + q.Author); err != nil {
		return nil, err
	}
	return f.pubRows, nil
}

func (f *fakeFetcher) SearchTitles(_ context.Context, q isfdb.TitleQuery) ([]isfdb.SearchRow, error) {
	if err := f.record("search_titles:" + q.Title + "|" + q.Author); err != nil {
		return nil, err
	}
	return f.titleRows, nil
}

func (f *fakeFetcher) SearchTitlesExact(_ context.Context, title, author, ttype string) ([]isfdb.SearchRow, error) {
	if err := f.record("search_exact:" + title + "|" + author + "|" + ttype); err != nil {
		return nil, err
	}
	return f.exactRows, nil
}

func pub(id, titleID int, title string) *isfdb.Publication {
	return &isfdb.Publication{
		ID:           id,
		TitleID:      titleID,
		Title:        title,
		Authors:      []string{"Clifford D. Simak"},
		AuthorString: "Clifford D. Simak",
		Type:         "NOVEL",
		Date:         dates.PartialDate{Year: 1965},
		URL:          "https://www.isfdb.org/cgi-bin/pl.cgi?" + strconv.Itoa(id),
	}
}

func title(id int, name string, pubs ...int) *isfdb.Title {
	return &isfdb.Title{
		ID:             id,
		Title:          name,
		Authors:        []string{"Clifford D. Simak"},
		Language:       "eng",
		PublicationIDs: pubs,
		URL:            "https://www.isfdb.org/cgi-bin/title.cgi?" + strconv.Itoa(id),
	}
}

func row(id int, name, date, price string) isfdb.SearchRow {
	d, _ := dates.Parse(date)
	return isfdb.SearchRow{Kind: isfdb.RowPublication, ID: id, Title: name, Date: d, Price: price}
}
