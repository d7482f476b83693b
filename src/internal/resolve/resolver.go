// Package resolve picks a lookup strategy for a catalog entry, runs it
// against the remote catalog and maps what it finds.
package resolve

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"isfdbmeta/src/internal/identifiers"
	"isfdbmeta/src/internal/isfdb"
	"isfdbmeta/src/internal/logger"
	"isfdbmeta/src/internal/metadata"
	"isfdbmeta/src/internal/metrics"
	"isfdbmeta/src/internal/schema"
)

const titleCacheSize = 4096

// Match is one resolved record with the remote records it came from.
// Publication is nil for title-only matches; Title may be nil when a
// publication's title could not be found.
type Match struct {
	Metadata    schema.Metadata
	Publication *isfdb.Publication
	Title       *isfdb.Title
}

// Outcome is the result of one resolution call.
type Outcome struct {
	Strategy Strategy
	Matches  []Match
}

// Resolver is safe for concurrent use; calls share only the fetcher and a
// publication-to-title id cache.
type Resolver struct {
	fetcher Fetcher
	titleOf *lru.Cache[int, int]
}

func New(f Fetcher) (*Resolver, error) {
	if f == nil {
		return nil, errors.New("resolve: nil fetcher")
	}
	cache, err := lru.New[int, int](titleCacheSize)
	if err != nil {
		return nil, err
	}
	return &Resolver{fetcher: f, titleOf: cache}, nil
}

// Resolve returns the normalized metadata for e.
func (r *Resolver) Resolve(ctx context.Context, e identifiers.Entry, opts Options) ([]schema.Metadata, error) {
	out, err := r.ResolveMatches(ctx, e, opts)
	if err != nil {
		return nil, err
	}
	list := make([]schema.Metadata, 0, len(out.Matches))
	for _, m := range out.Matches {
		list = append(list, m.Metadata)
	}
	return list, nil
}

// ResolveMatches runs the first applicable strategy and nothing else. No
// applicable strategy is an empty outcome, not an error.
func (r *Resolver) ResolveMatches(ctx context.Context, e identifiers.Entry, opts Options) (Outcome, error) {
	set, q := identifiers.Extract(e)
	req := Request{Set: set, Query: q, Options: opts}
	b := selectBranch(req)
	if b == nil {
		logger.For(ctx).Info("resolve: no usable identifiers or text")
		metrics.ResolveTotal.WithLabelValues(StrategyNone.String(), "empty").Inc()
		return Outcome{Strategy: StrategyNone}, nil
	}
	log := logger.For(ctx).WithField("strategy", b.strategy.String())
	log.Info("resolve: strategy selected")
	defer logger.Track(ctx, "resolve "+b.strategy.String())()

	matches, err := b.run(ctx, r, req)
	if err != nil {
		metrics.ResolveTotal.WithLabelValues(b.strategy.String(), outcomeLabel(err)).Inc()
		log.WithError(err).Warn("resolve: failed")
		return Outcome{Strategy: b.strategy}, err
	}
	outcome := "ok"
	if len(matches) == 0 {
		outcome = "empty"
	}
	metrics.ResolveTotal.WithLabelValues(b.strategy.String(), outcome).Inc()
	log.WithField("matches", len(matches)).Info("resolve: done")
	return Outcome{Strategy: b.strategy, Matches: matches}, nil
}

func outcomeLabel(err error) string {
	if k := isfdb.KindOf(err); k != 0 {
		return k.String()
	}
	return "error"
}

// publication fetches a publication, merges its title and maps both.
func (r *Resolver) publication(ctx context.Context, id, relevance int, opts Options) (Match, error) {
	pub, err := r.fetcher.FetchPublication(ctx, id)
	if err != nil {
		return Match{}, err
	}
	title, err := r.titleFor(ctx, pub)
	if err != nil {
		return Match{}, err
	}
	md := metadata.FromPublication(pub, title)
	if title != nil && md.Series != nil && md.Series.Name == title.Series {
		if md, err = r.combineSeries(ctx, md, title.SeriesID, opts); err != nil {
			return Match{}, err
		}
	}
	md.Relevance = relevance
	if err := validate(md, pub.URL); err != nil {
		return Match{}, err
	}
	return Match{Metadata: md, Publication: pub, Title: title}, nil
}

func (r *Resolver) publicationRows(ctx context.Context, rows []isfdb.SearchRow, rel func(isfdb.SearchRow) int, opts Options) ([]Match, error) {
	out := make([]Match, 0, len(rows))
	for _, row := range rows {
		m, err := r.publication(ctx, row.ID, rel(row), opts)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *Resolver) title(ctx context.Context, id, relevance int, opts Options) (Match, error) {
	t, err := r.fetcher.FetchTitle(ctx, id)
	if err != nil {
		return Match{}, err
	}
	md := metadata.FromTitle(t)
	if md.Series != nil {
		if md, err = r.combineSeries(ctx, md, t.SeriesID, opts); err != nil {
			return Match{}, err
		}
	}
	md.Relevance = relevance
	if err := validate(md, t.URL); err != nil {
		return Match{}, err
	}
	return Match{Metadata: md, Title: t}, nil
}

// titleFor finds the title record of pub. The page's container link is
// trusted; any other candidate must list pub among its publications. A
// missing title is not an error.
func (r *Resolver) titleFor(ctx context.Context, pub *isfdb.Publication) (*isfdb.Title, error) {
	log := logger.For(ctx).WithFields(logrus.Fields{"publication": pub.ID})
	if pub.TitleID > 0 {
		t, err := r.fetchTitle(ctx, pub.TitleID)
		if t != nil {
			r.titleOf.Add(pub.ID, t.ID)
		}
		return t, err
	}

	var candidates []int
	if id, ok := r.titleOf.Get(pub.ID); ok {
		candidates = append(candidates, id)
	}
	if len(candidates) == 0 && pub.Title != "" {
		log.Debug("resolve: no title link on publication page, searching")
		rows, err := r.fetcher.SearchTitlesExact(ctx, pub.Title, pub.AuthorString, pub.Type)
		if err != nil && !errors.Is(err, isfdb.ErrNotFound) {
			return nil, err
		}
		for _, row := range rows {
			candidates = append(candidates, row.ID)
		}
	}
	for _, id := range candidates {
		t, err := r.fetchTitle(ctx, id)
		if err != nil {
			return nil, err
		}
		if t != nil && t.HasPublication(pub.ID) {
			r.titleOf.Add(pub.ID, t.ID)
			return t, nil
		}
	}
	log.Debug("resolve: no title record for publication")
	return nil, nil
}

// fetchTitle absorbs NotFound into a nil title.
func (r *Resolver) fetchTitle(ctx context.Context, id int) (*isfdb.Title, error) {
	t, err := r.fetcher.FetchTitle(ctx, id)
	if errors.Is(err, isfdb.ErrNotFound) {
		return nil, nil
	}
	return t, err
}

func (r *Resolver) combineSeries(ctx context.Context, md schema.Metadata, seriesID int, opts Options) (schema.Metadata, error) {
	if !opts.CombineSeries || seriesID <= 0 {
		return md, nil
	}
	s, err := r.fetcher.FetchSeries(ctx, seriesID)
	if errors.Is(err, isfdb.ErrNotFound) {
		return md, nil
	}
	if err != nil {
		return md, err
	}
	return metadata.WithSeries(md, s), nil
}

// validate refuses records missing required fields instead of returning
// them half-filled.
func validate(md schema.Metadata, source string) error {
	if err := md.Validate(); err != nil {
		return &isfdb.Error{Kind: isfdb.KindParse, Op: "map", URL: source, Err: fmt.Errorf("incomplete record: %w", err)}
	}
	return nil
}
