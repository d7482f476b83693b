package resolve

import (
	"context"

	"isfdbmeta/src/internal/identifiers"
	"isfdbmeta/src/internal/isfdb"
	"isfdbmeta/src/internal/names"
)

// Strategy names the lookup path chosen for a request.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategyPublicationExact
	StrategyTitleExact
	StrategyPublicationByCode
	StrategyPublicationByText
	StrategyTitleByText
)

func (s Strategy) String() string {
	switch s {
	case StrategyPublicationExact:
		return "publication_exact"
	case StrategyTitleExact:
		return "title_exact"
	case StrategyPublicationByCode:
		return "publication_by_code"
	case StrategyPublicationByText:
		return "publication_by_text"
	case StrategyTitleByText:
		return "title_by_text"
	}
	return "none"
}

// Relevance values carried on results; lower is better.
const (
	relevanceExact = 0
	relevanceCode  = 1
	relevanceText  = 2
)

// Request is one resolution input after extraction.
type Request struct {
	Set     identifiers.Set
	Query   identifiers.Query
	Options Options
}

type branch struct {
	strategy Strategy
	applies  func(Request) bool
	run      func(ctx context.Context, r *Resolver, req Request) ([]Match, error)
}

// branches is evaluated in order; the first that applies is the only one run,
// even when it finds nothing.
var branches = []branch{
	{
		strategy: StrategyPublicationExact,
		applies:  func(req Request) bool { return req.Set.PublicationID > 0 },
		run: func(ctx context.Context, r *Resolver, req Request) ([]Match, error) {
			m, err := r.publication(ctx, req.Set.PublicationID, relevanceExact, req.Options)
			if err != nil {
				return nil, err
			}
			return []Match{m}, nil
		},
	},
	{
		strategy: StrategyTitleExact,
		applies:  func(req Request) bool { return req.Set.TitleID > 0 },
		run: func(ctx context.Context, r *Resolver, req Request) ([]Match, error) {
			m, err := r.title(ctx, req.Set.TitleID, relevanceExact, req.Options)
			if err != nil {
				return nil, err
			}
			return []Match{m}, nil
		},
	},
	{
		strategy: StrategyPublicationByCode,
		applies:  func(req Request) bool { return req.Set.Code() != "" },
		run: func(ctx context.Context, r *Resolver, req Request) ([]Match, error) {
			rows, err := r.fetcher.SearchPublications(ctx, isfdb.PublicationQuery{Code: req.Set.Code()})
			if err != nil {
				return nil, err
			}
			rows = Disambiguate(rows, req.Set.Hints(), req.Options.MaxSearchResults)
			return r.publicationRows(ctx, rows, func(isfdb.SearchRow) int { return relevanceCode }, req.Options)
		},
	},
	{
		strategy: StrategyPublicationByText,
		applies: func(req Request) bool {
			return req.Options.SearchPublications && !req.Query.Empty()
		},
		run: func(ctx context.Context, r *Resolver, req Request) ([]Match, error) {
			title, author := queryTerms(req.Query)
			rows, err := r.fetcher.SearchPublications(ctx, isfdb.PublicationQuery{Title: title, Author: author})
			if err != nil {
				return nil, err
			}
			rows = Disambiguate(rows, req.Set.Hints(), req.Options.MaxSearchResults)
			return r.publicationRows(ctx, rows, textRelevance(title), req.Options)
		},
	},
	{
		strategy: StrategyTitleByText,
		applies: func(req Request) bool {
			return req.Options.SearchTitles && !req.Query.Empty()
		},
		run: func(ctx context.Context, r *Resolver, req Request) ([]Match, error) {
			title, author := queryTerms(req.Query)
			rows, err := r.fetcher.SearchTitles(ctx, isfdb.TitleQuery{Title: title, Author: author})
			if err != nil {
				return nil, err
			}
			rows = Disambiguate(rows, req.Set.Hints(), req.Options.MaxSearchResults)
			rel := textRelevance(title)
			out := make([]Match, 0, len(rows))
			for _, row := range rows {
				m, err := r.title(ctx, row.ID, rel(row), req.Options)
				if err != nil {
					return nil, err
				}
				out = append(out, m)
			}
			return out, nil
		},
	},
}

// Select reports which strategy a request takes.
func Select(req Request) Strategy {
	if b := selectBranch(req); b != nil {
		return b.strategy
	}
	return StrategyNone
}

func selectBranch(req Request) *branch {
	for i := range branches {
		if branches[i].applies(req) {
			return &branches[i]
		}
	}
	return nil
}

func queryTerms(q identifiers.Query) (title, author string) {
	return names.QueryTitle(q.Title), names.QueryAuthor(q.Authors)
}

// textRelevance rates a text-search row as exact when its title matches
// the query title ignoring case and punctuation.
func textRelevance(queryTitle string) func(isfdb.SearchRow) int {
	want := names.Stripped(queryTitle)
	return func(row isfdb.SearchRow) int {
		if want != "" && names.Stripped(row.Title) == want {
			return relevanceExact
		}
		return relevanceText
	}
}
