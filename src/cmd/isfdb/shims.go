package main

import (
	"os"

	"github.com/spf13/cobra"

	"isfdbmeta/src/cmd/isfdb/batchcmd"
	"isfdbmeta/src/cmd/isfdb/coverscmd"
	"isfdbmeta/src/cmd/isfdb/resolvecmd"
	"isfdbmeta/src/cmd/isfdb/servecmd"
	"isfdbmeta/src/internal/app"
	"isfdbmeta/src/internal/config"
	"isfdbmeta/src/internal/logger"
	"isfdbmeta/src/internal/resolve"
)

// loadService reads config, sets up logging and builds the resolver.
func loadService() (app.Service, resolve.Options, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, resolve.Options{}, err
	}
	if err := logger.Setup(cfg.LogLevel, os.Stderr); err != nil {
		return nil, resolve.Options{}, err
	}
	a, err := app.Build(cfg, nil)
	if err != nil {
		return nil, resolve.Options{}, err
	}
	return a.Resolver, a.Options(), nil
}

func newResolveCmd() *cobra.Command { return resolvecmd.New(loadService) }
func newCoversCmd() *cobra.Command  { return coverscmd.New(loadService) }
func newBatchCmd() *cobra.Command   { return batchcmd.New(loadService) }
func newServeCmd() *cobra.Command   { return servecmd.New(loadService) }
