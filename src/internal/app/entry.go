package app

import (
	"context"
	"fmt"
	"strings"

	"isfdbmeta/src/internal/identifiers"
	"isfdbmeta/src/internal/resolve"
)

// Service is the resolver surface the commands and HTTP handlers use.
type Service interface {
	ResolveMatches(ctx context.Context, e identifiers.Entry, opts resolve.Options) (resolve.Outcome, error)
	ResolveCovers(ctx context.Context, src resolve.CoverSource, opts resolve.Options) ([]string, error)
}

// LoadFunc builds the service lazily so commands only touch config and
// network when they run.
type LoadFunc func() (Service, resolve.Options, error)

// ParseEntry builds an entry from "kind:value" pairs plus free text.
// Unlike Extract, a pair without a colon is an input error here.
func ParseEntry(pairs []string, title string, authors []string) (identifiers.Entry, error) {
	e := identifiers.Entry{Identifiers: map[string]string{}, Title: strings.TrimSpace(title)}
	for _, p := range pairs {
		kind, value, ok := identifiers.ParsePair(p)
		if !ok {
			return e, fmt.Errorf("identifier %q: want kind:value", p)
		}
		e.Identifiers[kind] = value
	}
	for _, a := range authors {
		if a = strings.TrimSpace(a); a != "" {
			e.Authors = append(e.Authors, a)
		}
	}
	if len(e.Identifiers) == 0 && e.Title == "" && len(e.Authors) == 0 {
		return e, fmt.Errorf("provide at least one identifier, a title or an author")
	}
	return e, nil
}
