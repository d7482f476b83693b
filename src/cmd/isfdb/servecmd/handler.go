package servecmd

import (
    "encoding/json"
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/go-chi/chi/v5/middleware"
    "github.com/prometheus/client_golang/prometheus/promhttp"
    "github.com/sirupsen/logrus"

    "isfdbmeta/src/internal/app"
    "isfdbmeta/src/internal/isfdb"
    "isfdbmeta/src/internal/logger"
    "isfdbmeta/src/internal/metrics"
    "isfdbmeta/src/internal/resolve"
    "isfdbmeta/src/internal/schema"
)

const requestIDHeader = "X-Request-ID"

type server struct {
    svc  app.Service
    opts resolve.Options
}

type resolveResponse struct {
    Strategy string            `json:"strategy"`
    Records  []schema.Metadata `json:"records"`
}

type coversResponse struct {
    Strategy string   `json:"strategy"`
    Covers   []string `json:"covers"`
}

type errorResponse struct {
    Error     string `json:"error"`
    Kind      string `json:"kind,omitempty"`
    RequestID string `json:"request_id,omitempty"`
}

// NewHandler returns the HTTP surface. Inputs are query parameters:
// id=kind:value (repeatable), title, author (repeatable).
func NewHandler(svc app.Service, opts resolve.Options) http.Handler {
    s := &server{svc: svc, opts: opts}
    r := chi.NewRouter()
    r.Use(middleware.Recoverer)
    r.Use(requestID)
    r.Use(accessLog)
    r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
        writeJSON(w, http.StatusOK, map[string]any{"ok": true})
    })
    r.Method(http.MethodGet, "/metrics", promhttp.Handler())
    r.Get("/resolve", s.resolve)
    r.Get("/covers", s.covers)
    return r
}

func (s *server) resolve(w http.ResponseWriter, r *http.Request) {
    q := r.URL.Query()
    e, err := app.ParseEntry(q["id"], q.Get("title"), q["author"])
    if err != nil {
        writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: "bad_request"})
        return
    }
    out, err := s.svc.ResolveMatches(r.Context(), e, s.opts)
    if err != nil {
        writeError(w, r, err)
        return
    }
    resp := resolveResponse{Strategy: out.Strategy.String(), Records: make([]schema.Metadata, 0, len(out.Matches))}
    for _, m := range out.Matches {
        resp.Records = append(resp.Records, m.Metadata)
    }
    writeJSON(w, http.StatusOK, resp)
}

func (s *server) covers(w http.ResponseWriter, r *http.Request) {
    q := r.URL.Query()
    e, err := app.ParseEntry(q["id"], q.Get("title"), q["author"])
    if err != nil {
        writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: "bad_request"})
        return
    }
    opts := s.opts
    if v := q.Get("max"); v != "" {
        n, err := strconv.Atoi(v)
        if err != nil || n < 0 {
            writeJSON(w, http.StatusBadRequest, errorResponse{Error: "max must be a non-negative integer", Kind: "bad_request"})
            return
        }
        opts.MaxCovers = n
    }
    out, err := s.svc.ResolveMatches(r.Context(), e, opts)
    if err != nil {
        writeError(w, r, err)
        return
    }
    resp := coversResponse{Strategy: out.Strategy.String(), Covers: []string{}}
    if len(out.Matches) > 0 {
        urls, err := s.svc.ResolveCovers(r.Context(), resolve.CoverSourceOf(out.Matches[0]), opts)
        if err != nil {
            writeError(w, r, err)
            return
        }
        resp.Covers = append(resp.Covers, urls...)
    }
    writeJSON(w, http.StatusOK, resp)
}

// statusFor maps fetch failure kinds to response codes.
func statusFor(err error) int {
    switch isfdb.KindOf(err) {
    case isfdb.KindNotFound:
        return http.StatusNotFound
    case isfdb.KindAuthRequired:
        return http.StatusUnauthorized
    case isfdb.KindParse:
        return http.StatusBadGateway
    case isfdb.KindTransient:
        return http.StatusServiceUnavailable
    }
    return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
    status := statusFor(err)
    resp := errorResponse{Error: err.Error(), RequestID: logger.IDFrom(r.Context())}
    var ie *isfdb.Error
    if errors.As(err, &ie) {
        resp.Kind = ie.Kind.String()
    }
    logger.For(r.Context()).WithError(err).WithField("status", status).Warn("resolve request failed")
    writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    _ = json.NewEncoder(w).Encode(v)
}

// requestID reuses the caller's X-Request-ID or mints one, and stores it
// in the request context for logger.For.
func requestID(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        id := r.Header.Get(requestIDHeader)
        if id == "" {
            id = logger.NewID()
        }
        w.Header().Set(requestIDHeader, id)
        next.ServeHTTP(w, r.WithContext(logger.ContextWithID(r.Context(), id)))
    })
}

func accessLog(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        start := time.Now()
        ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
        next.ServeHTTP(ww, r)
        status := ww.Status()
        if status == 0 {
            status = http.StatusOK
        }
        dur := time.Since(start)
        route := routePattern(r)
        metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
        metrics.HTTPRequestDuration.WithLabelValues(route).Observe(dur.Seconds())
        logger.For(r.Context()).WithFields(logrus.Fields{
            "method":   r.Method,
            "path":     r.URL.Path,
            "status":   status,
            "duration": dur.String(),
        }).Info("http request")
    })
}

// routePattern labels metrics by the matched route so unknown paths share
// one series.
func routePattern(r *http.Request) string {
    if rc := chi.RouteContext(r.Context()); rc != nil {
        if p := rc.RoutePattern(); p != "" {
            return p
        }
    }
    return "unmatched"
}
