package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"isfdbmeta/src/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "isfdb",
	Short: "Resolve catalog entries to ISFDB bibliographic metadata and covers",
}

func execute(ctx context.Context) error {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "YAML config file (missing file means defaults)")
	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newCoversCmd())
	rootCmd.AddCommand(newBatchCmd())
	rootCmd.AddCommand(newServeCmd())
	return rootCmd.ExecuteContext(ctx)
}

func main() {
	// .env is optional
	_ = godotenv.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := execute(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
