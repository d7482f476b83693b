package resolve

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"isfdbmeta/src/internal/isfdb"
	"isfdbmeta/src/internal/logger"
	"isfdbmeta/src/internal/metrics"
)

// CoverSource seeds the cover lookup with whatever records are at hand.
type CoverSource struct {
	Publication *isfdb.Publication
	Title       *isfdb.Title
}

// CoverSourceOf returns the records behind a match.
func CoverSourceOf(m Match) CoverSource {
	return CoverSource{Publication: m.Publication, Title: m.Title}
}

// ResolveCovers is Covers with the configured cap.
func (r *Resolver) ResolveCovers(ctx context.Context, src CoverSource, opts Options) ([]string, error) {
	return r.Covers(ctx, src, opts.MaxCovers)
}

// Covers returns the publication's own cover when it has one, and never
// looks further in that case. Otherwise it lists up to max title covers
// in remote order. Failures on the title side yield an empty list.
func (r *Resolver) Covers(ctx context.Context, src CoverSource, max int) ([]string, error) {
	if src.Publication == nil && src.Title == nil {
		return nil, errors.New("resolve: cover source has no publication or title")
	}
	if src.Publication != nil && src.Publication.CoverURL != "" {
		return []string{src.Publication.CoverURL}, nil
	}

	log := logger.For(ctx)
	titleID := 0
	switch {
	case src.Title != nil:
		titleID = src.Title.ID
	case src.Publication.TitleID > 0:
		titleID = src.Publication.TitleID
	default:
		t, err := r.titleFor(ctx, src.Publication)
		if err != nil {
			return degrade(log.WithField("publication", src.Publication.ID), err), nil
		}
		if t != nil {
			titleID = t.ID
		}
	}
	if titleID <= 0 {
		log.Debug("resolve: no title to take covers from")
		return []string{}, nil
	}
	covers, err := r.fetcher.FetchTitleCovers(ctx, titleID)
	if err != nil {
		return degrade(log.WithField("title", titleID), err), nil
	}
	return capList(covers, max), nil
}

func degrade(log *logrus.Entry, err error) []string {
	metrics.CoverFallbacks.Inc()
	log.WithError(err).Warn("resolve: title covers unavailable")
	return []string{}
}

func capList(list []string, max int) []string {
	if max > 0 && len(list) > max {
		list = list[:max]
	}
	return append([]string{}, list...)
}
