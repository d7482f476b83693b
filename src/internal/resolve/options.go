package resolve

import (
	"context"

	"isfdbmeta/src/internal/isfdb"
)

// Fetcher is the part of *isfdb.Client the pipeline uses.
type Fetcher interface {
	FetchPublication(ctx context.Context, id int) (*isfdb.Publication, error)
	FetchTitle(ctx context.Context, id int) (*isfdb.Title, error)
	FetchTitleCovers(ctx context.Context, titleID int) ([]string, error)
	FetchSeries(ctx context.Context, id int) (*isfdb.Series, error)
	SearchPublications(ctx context.Context, q isfdb.PublicationQuery) ([]isfdb.SearchRow, error)
	SearchTitles(ctx context.Context, q isfdb.TitleQuery) ([]isfdb.SearchRow, error)
	SearchTitlesExact(ctx context.Context, title, author, ttype string) ([]isfdb.SearchRow, error)
}

// Options are the per-call settings. A cap of zero or less means no cap.
type Options struct {
	MaxSearchResults   int
	MaxCovers          int
	SearchPublications bool
	SearchTitles       bool
	// CombineSeries fetches the series page to render "Series | Sub-series".
	CombineSeries bool
}

func DefaultOptions() Options {
	return Options{
		MaxSearchResults:   10,
		MaxCovers:          10,
		SearchPublications: true,
		SearchTitles:       true,
	}
}
