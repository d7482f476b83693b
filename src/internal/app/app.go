// Package app wires configuration into a ready resolver.
package app

import (
	"fmt"

	"isfdbmeta/src/internal/config"
	"isfdbmeta/src/internal/httpx"
	"isfdbmeta/src/internal/isfdb"
	"isfdbmeta/src/internal/resolve"
)

type App struct {
	Config   config.Config
	Client   *isfdb.Client
	Resolver *resolve.Resolver
}

// Build creates the session, client and resolver for cfg. doer may be nil,
// in which case a plain http.Client with cfg.Timeout is used.
func Build(cfg config.Config, doer httpx.Doer) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	session := httpx.NewSession(cfg.SessionOptions(doer))
	client, err := isfdb.New(session, isfdb.Options{BaseURL: cfg.BaseURL, CacheSize: cfg.PageCacheSize})
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	r, err := resolve.New(client)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	return &App{Config: cfg, Client: client, Resolver: r}, nil
}

// Options returns the resolver settings from the loaded configuration.
func (a *App) Options() resolve.Options { return a.Config.Options() }
