package servecmd

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/spf13/cobra"

    "isfdbmeta/src/internal/app"
    "isfdbmeta/src/internal/logger"
)

// New returns the serve command which exposes resolution over HTTP.
func New(load app.LoadFunc) *cobra.Command {
    var addr string
    cmd := &cobra.Command{
        Use:          "serve",
        Short:        "Serve /resolve, /covers, /healthz and /metrics over HTTP",
        Args:         cobra.NoArgs,
        SilenceUsage: true,
        RunE: func(cmd *cobra.Command, args []string) error {
            svc, opts, err := load()
            if err != nil { return err }
            srv := &http.Server{Addr: addr, Handler: NewHandler(svc, opts), ReadHeaderTimeout: 10 * time.Second}
            ctx := cmd.Context()
            if ctx == nil { ctx = context.Background() }
            errc := make(chan error, 1)
            go func() { errc <- srv.ListenAndServe() }()
            logger.For(ctx).WithField("addr", addr).Info("http server listening")
            select {
            case err := <-errc:
                if errors.Is(err, http.ErrServerClosed) { return nil }
                return err
            case <-ctx.Done():
                shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
                defer cancel()
                return srv.Shutdown(shutdown)
            }
        },
    }
    cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
    return cmd
}
