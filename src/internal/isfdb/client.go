package isfdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"isfdbmeta/src/internal/httpx"
	"isfdbmeta/src/internal/logger"
	"isfdbmeta/src/internal/metrics"
)

// Options configures a Client.
type Options struct {
	BaseURL string
	// CacheSize bounds the in-process page cache; 0 disables it.
	CacheSize int
}

// Client fetches and parses remote record pages over a borrowed Session.
// It is safe for concurrent use.
type Client struct {
	session httpx.Session
	base    string
	cache   *lru.Cache[string, *httpx.Page]
}

func New(session httpx.Session, opts Options) (*Client, error) {
	if session == nil {
		return nil, errors.New("isfdb: nil session")
	}
	c := &Client{session: session, base: opts.BaseURL}
	if c.base == "" {
		c.base = DefaultBaseURL
	}
	if !strings.HasSuffix(c.base, "/") {
		c.base += "/"
	}
	if opts.CacheSize > 0 {
		cache, err := lru.New[string, *httpx.Page](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("isfdb: page cache: %w", err)
		}
		c.cache = cache
	}
	return c, nil
}

// PublicationQuery searches publications by Code (ISBN or catalog ID,
// exact) or else by Title and Author (contains).
type PublicationQuery struct {
	Code   string
	Title  string
	Author string
}

// TitleQuery searches titles by Title and Author (contains).
type TitleQuery struct {
	Title  string
	Author string
}

func (c *Client) FetchPublication(ctx context.Context, id int) (*Publication, error) {
	u := recordURL(c.base, "pl.cgi", id)
	doc, err := c.get(ctx, opFetchPublication, u, true)
	if err != nil {
		return nil, err
	}
	pub, err := parsePublication(doc, id, u)
	return pub, c.observeParse(ctx, err)
}

func (c *Client) FetchTitle(ctx context.Context, id int) (*Title, error) {
	u := recordURL(c.base, "title.cgi", id)
	doc, err := c.get(ctx, opFetchTitle, u, true)
	if err != nil {
		return nil, err
	}
	t, err := parseTitle(doc, id, u)
	return t, c.observeParse(ctx, err)
}

func (c *Client) FetchTitleCovers(ctx context.Context, titleID int) ([]string, error) {
	u := recordURL(c.base, "titlecovers.cgi", titleID)
	doc, err := c.get(ctx, opTitleCovers, u, true)
	if err != nil {
		return nil, err
	}
	covers, err := parseTitleCovers(doc, u)
	return covers, c.observeParse(ctx, err)
}

func (c *Client) FetchSeries(ctx context.Context, id int) (*Series, error) {
	u := recordURL(c.base, "pe.cgi", id)
	doc, err := c.get(ctx, opFetchSeries, u, true)
	if err != nil {
		return nil, err
	}
	s, err := parseSeries(doc, id, u)
	return s, c.observeParse(ctx, err)
}

func (c *Client) SearchPublications(ctx context.Context, q PublicationQuery) ([]SearchRow, error) {
	var terms []term
	if code := strings.TrimSpace(q.Code); code != "" {
		terms = []term{{"pub_isbn", "exact", code}}
	} else {
		if q.Title != "" {
			terms = append(terms, term{"pub_title", "contains", q.Title})
		}
		if q.Author != "" {
			terms = append(terms, term{"author_canonical", "contains", q.Author})
		}
	}
	if len(terms) == 0 {
		return nil, errors.New("isfdb: empty publication query")
	}
	return c.search(ctx, opSearchPublications, RowPublication, searchURL(c.base, "Publication", "pub_title", terms))
}

func (c *Client) SearchTitles(ctx context.Context, q TitleQuery) ([]SearchRow, error) {
	var terms []term
	if q.Title != "" {
		terms = append(terms, term{"title_title", "contains", q.Title})
	}
	if q.Author != "" {
		terms = append(terms, term{"author_canonical", "contains", q.Author})
	}
	if len(terms) == 0 {
		return nil, errors.New("isfdb: empty title query")
	}
	return c.search(ctx, opSearchTitles, RowTitle, searchURL(c.base, "Title", "title_title", terms))
}

// SearchTitlesExact finds titles by exact title, author and (optional) type.
// It locates the title of a publication page that lacks a container link.
func (c *Client) SearchTitlesExact(ctx context.Context, title, author, ttype string) ([]SearchRow, error) {
	if title == "" {
		return nil, errors.New("isfdb: empty title query")
	}
	terms := []term{{"title_title", "exact", title}}
	if author != "" {
		terms = append(terms, term{"author_canonical", "exact", author})
	}
	if ttype != "" {
		terms = append(terms, term{"title_ttype", "exact", ttype})
	}
	return c.search(ctx, opSearchTitles, RowTitle, searchURL(c.base, "Title", "title_title", terms))
}

func (c *Client) search(ctx context.Context, op string, kind RowKind, u string) ([]SearchRow, error) {
	doc, err := c.get(ctx, op, u, false)
	if err != nil {
		return nil, err
	}
	rows, err := parseSearch(doc, kind, op, u)
	if err = c.observeParse(ctx, err); err != nil {
		return nil, err
	}
	logger.For(ctx).WithFields(logrus.Fields{"op": op, "rows": len(rows)}).Debug("isfdb.search")
	return rows, nil
}

// get fetches u and classifies every failure into an *Error. Only record
// pages (record true) can come back as a "no such record" page; search
// pages never do.
func (c *Client) get(ctx context.Context, op, u string, record bool) (*goquery.Document, error) {
	log := logger.For(ctx).WithFields(logrus.Fields{"op": op, "url": u})
	page, cached := c.cached(u)
	if !cached {
		start := time.Now()
		var err error
		page, err = c.session.Get(ctx, u)
		metrics.FetchDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
		if err != nil {
			kind := KindTransient
			if errors.Is(err, httpx.ErrLoginRedirect) {
				kind = KindAuthRequired
			}
			return nil, c.fail(log, newError(kind, op, u, err))
		}
		if kerr := statusError(op, u, page.StatusCode); kerr != nil {
			return nil, c.fail(log, kerr)
		}
	}
	log.WithField("cached", cached).Debug("isfdb.fetch")

	doc, err := document(page.Body, page.ContentType)
	if err != nil {
		return nil, c.fail(log, newError(KindParse, op, u, err))
	}
	if record && notFound(doc) {
		return nil, c.fail(log, newError(KindNotFound, op, u, errors.New("no such record")))
	}
	if !cached && c.cache != nil {
		c.cache.Add(u, page)
	}
	metrics.FetchTotal.WithLabelValues(op, "ok").Inc()
	return doc, nil
}

func (c *Client) cached(u string) (*httpx.Page, bool) {
	if c.cache == nil {
		return nil, false
	}
	p, ok := c.cache.Get(u)
	if ok {
		metrics.CacheHits.Inc()
	}
	return p, ok
}

func statusError(op, u string, status int) *Error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return newError(KindAuthRequired, op, u, fmt.Errorf("http %d", status))
	case status == http.StatusNotFound:
		return newError(KindNotFound, op, u, fmt.Errorf("http %d", status))
	case status == http.StatusTooManyRequests || status >= 500:
		return newError(KindTransient, op, u, fmt.Errorf("http %d", status))
	}
	return newError(KindParse, op, u, fmt.Errorf("unexpected http %d", status))
}

func (c *Client) fail(log *logrus.Entry, e *Error) error {
	metrics.FetchTotal.WithLabelValues(e.Op, e.Kind.String()).Inc()
	switch e.Kind {
	case KindParse:
		log.WithError(e.Err).Error("isfdb: page shape mismatch")
	case KindNotFound:
		log.Debug("isfdb: record not found")
	default:
		log.WithError(e.Err).Warn("isfdb: fetch failed")
	}
	return e
}

// observeParse logs and counts adapter failures; err is returned as-is.
func (c *Client) observeParse(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return c.fail(logger.For(ctx).WithFields(logrus.Fields{"op": e.Op, "url": e.URL}), e)
	}
	return err
}
