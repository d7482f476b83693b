package batchcmd

import (
    "context"
    "fmt"
    "io"

    "github.com/schollz/progressbar/v3"
    "github.com/spf13/cobra"
    "golang.org/x/sync/errgroup"

    "isfdbmeta/src/internal/app"
    "isfdbmeta/src/internal/identifiers"
    "isfdbmeta/src/internal/isfdb"
    "isfdbmeta/src/internal/logger"
    "isfdbmeta/src/internal/resolve"
    "isfdbmeta/src/internal/schema"
    "isfdbmeta/src/internal/store"
)

// New returns the batch command which resolves a YAML list of entries concurrently.
func New(load app.LoadFunc) *cobra.Command {
    var out, library string
    var workers int
    var covers bool
    cmd := &cobra.Command{
        Use:          "batch <entries.yaml>",
        Short:        "Resolve every entry in a YAML file and write the results",
        Args:         cobra.ExactArgs(1),
        SilenceUsage: true,
        RunE: func(cmd *cobra.Command, args []string) error {
            entries, err := store.ReadEntries(args[0])
            if err != nil { return err }
            svc, opts, err := load()
            if err != nil { return err }
            results, err := Run(cmd.Context(), svc, opts, entries, Options{Workers: workers, Covers: covers, Progress: cmd.ErrOrStderr()})
            if err != nil { return err }
            if err := store.WriteResults(out, results); err != nil { return err }
            ok := 0
            for _, r := range results {
                if r.Error == "" && len(r.Records) > 0 { ok++ }
            }
            if _, err := fmt.Fprintf(cmd.OutOrStdout(), "resolved %d/%d entries, wrote %s\n", ok, len(results), out); err != nil { return err }
            if library == "" { return nil }
            return writeLibrary(cmd.OutOrStdout(), library, results)
        },
    }
    cmd.Flags().StringVar(&out, "out", "results.yaml", "results file")
    cmd.Flags().IntVar(&workers, "workers", 4, "concurrent resolutions")
    cmd.Flags().BoolVar(&covers, "covers", false, "also resolve cover URLs for each entry's first match")
    cmd.Flags().StringVar(&library, "library", "", "also write each record under this directory and rebuild its indexes")
    return cmd
}

// Options tunes Run. A nil Progress disables the progress bar.
type Options struct {
    Workers  int
    Covers   bool
    Progress io.Writer
}

// Run resolves entries with at most o.Workers in flight. Per-entry failures
// are recorded on the result; only cancellation of ctx fails the run.
// Results keep the input order.
func Run(ctx context.Context, svc app.Service, opts resolve.Options, entries []identifiers.Entry, o Options) ([]store.Result, error) {
    if o.Workers < 1 { o.Workers = 1 }
    results := make([]store.Result, len(entries))
    var bar *progressbar.ProgressBar
    if o.Progress != nil {
        bar = progressbar.NewOptions(len(entries),
            progressbar.OptionSetWriter(o.Progress),
            progressbar.OptionSetDescription("resolving"),
            progressbar.OptionShowCount(),
        )
    }
    g, gctx := errgroup.WithContext(ctx)
    g.SetLimit(o.Workers)
    for i, e := range entries {
        i, e := i, e
        g.Go(func() error {
            if err := gctx.Err(); err != nil { return err }
            rctx := logger.ContextWithID(gctx, logger.NewID())
            results[i] = resolveOne(rctx, svc, opts, e, o.Covers)
            if bar != nil { _ = bar.Add(1) }
            return nil
        })
    }
    if err := g.Wait(); err != nil { return nil, err }
    if bar != nil { _ = bar.Finish() }
    return results, nil
}

func resolveOne(ctx context.Context, svc app.Service, opts resolve.Options, e identifiers.Entry, covers bool) store.Result {
    res := store.Result{Entry: e, Records: []schema.Metadata{}}
    out, err := svc.ResolveMatches(ctx, e, opts)
    res.Strategy = out.Strategy.String()
    if err != nil {
        logger.For(ctx).WithError(err).Warn("batch entry failed")
        return withError(res, err)
    }
    for _, m := range out.Matches {
        res.Records = append(res.Records, m.Metadata)
    }
    if covers && len(out.Matches) > 0 {
        urls, err := svc.ResolveCovers(ctx, resolve.CoverSourceOf(out.Matches[0]), opts)
        if err != nil { return withError(res, err) }
        res.Covers = urls
    }
    return res
}

func withError(res store.Result, err error) store.Result {
    res.Error = err.Error()
    res.ErrorKind = "error"
    if k := isfdb.KindOf(err); k != 0 {
        res.ErrorKind = k.String()
    }
    return res
}

func writeLibrary(w io.Writer, root string, results []store.Result) error {
    n := 0
    for _, r := range results {
        for _, m := range r.Records {
            if _, err := store.WriteRecord(root, m); err != nil { return err }
            n++
        }
    }
    list, err := store.ReadLibrary(root)
    if err != nil { return err }
    paths, err := store.BuildIndexes(root, list)
    if err != nil { return err }
    if _, err := fmt.Fprintf(w, "wrote %d records to %s\n", n, root); err != nil { return err }
    for _, p := range paths {
        if _, err := fmt.Fprintf(w, "wrote %s\n", p); err != nil { return err }
    }
    return nil
}
