package coverscmd

import (
    "fmt"

    "github.com/spf13/cobra"

    "isfdbmeta/src/internal/app"
    "isfdbmeta/src/internal/resolve"
)

// New returns the covers command which lists cover image URLs for the first match.
func New(load app.LoadFunc) *cobra.Command {
    var ids, authors []string
    var title string
    var max int
    cmd := &cobra.Command{
        Use:          "covers",
        Short:        "List cover image URLs for the best match",
        Args:         cobra.NoArgs,
        SilenceUsage: true,
        RunE: func(cmd *cobra.Command, args []string) error {
            e, err := app.ParseEntry(ids, title, authors)
            if err != nil { return err }
            svc, opts, err := load()
            if err != nil { return err }
            if cmd.Flags().Changed("max") { opts.MaxCovers = max }
            out, err := svc.ResolveMatches(cmd.Context(), e, opts)
            if err != nil { return err }
            if len(out.Matches) == 0 {
                _, err := fmt.Fprintf(cmd.ErrOrStderr(), "no match (strategy %s)\n", out.Strategy)
                return err
            }
            urls, err := svc.ResolveCovers(cmd.Context(), resolve.CoverSourceOf(out.Matches[0]), opts)
            if err != nil { return err }
            for _, u := range urls {
                if _, err := fmt.Fprintln(cmd.OutOrStdout(), u); err != nil { return err }
            }
            return nil
        },
    }
    cmd.Flags().StringArrayVar(&ids, "id", nil, "identifier as kind:value; repeatable")
    cmd.Flags().StringVar(&title, "title", "", "title to search for")
    cmd.Flags().StringArrayVar(&authors, "author", nil, "author to search for; repeatable")
    cmd.Flags().IntVar(&max, "max", 0, "maximum number of title covers (default from config)")
    return cmd
}
