package servecmd

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "isfdbmeta/src/internal/identifiers"
    "isfdbmeta/src/internal/isfdb"
    "isfdbmeta/src/internal/resolve"
    "isfdbmeta/src/internal/schema"
)

type fakeService struct {
    got     identifiers.Entry
    out     resolve.Outcome
    err     error
    covers  []string
    gotMax  int
}

func (f *fakeService) ResolveMatches(_ context.Context, e identifiers.Entry, _ resolve.Options) (resolve.Outcome, error) {
    f.got = e
    return f.out, f.err
}

func (f *fakeService) ResolveCovers(_ context.Context, _ resolve.CoverSource, opts resolve.Options) ([]string, error) {
    f.gotMax = opts.MaxCovers
    return f.covers, nil
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
    t.Helper()
    rec := httptest.NewRecorder()
    h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
    return rec
}

func TestResolveEndpoint(t *testing.T) {
    md := schema.Metadata{Title: "Dune", Authors: []string{"Frank Herbert"}, Identifiers: map[string]string{"isfdb": "123"}}
    svc := &fakeService{out: resolve.Outcome{Strategy: resolve.StrategyPublicationExact, Matches: []resolve.Match{{Metadata: md}}}}
    rec := get(t, NewHandler(svc, resolve.DefaultOptions()), "/resolve?id=isfdb:123&author=Frank+Herbert")
    if rec.Code != http.StatusOK {
        t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
    }
    if rec.Header().Get("X-Request-ID") == "" {
        t.Fatalf("missing request id header")
    }
    var resp resolveResponse
    if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
        t.Fatalf("json: %v", err)
    }
    if resp.Strategy != "publication_exact" || len(resp.Records) != 1 || resp.Records[0].Title != "Dune" {
        t.Fatalf("resp: %+v", resp)
    }
    if svc.got.Identifiers["isfdb"] != "123" || svc.got.Authors[0] != "Frank Herbert" {
        t.Fatalf("entry: %+v", svc.got)
    }
}

func TestResolveEndpointKeepsRequestID(t *testing.T) {
    svc := &fakeService{}
    req := httptest.NewRequest(http.MethodGet, "/resolve?title=x", nil)
    req.Header.Set("X-Request-ID", "abc")
    rec := httptest.NewRecorder()
    NewHandler(svc, resolve.DefaultOptions()).ServeHTTP(rec, req)
    if rec.Header().Get("X-Request-ID") != "abc" {
        t.Fatalf("request id: %q", rec.Header().Get("X-Request-ID"))
    }
    if !strings.Contains(rec.Body.String(), `"records":[]`) {
        t.Fatalf("empty outcome should encode an empty list: %s", rec.Body.String())
    }
}

func TestErrorStatuses(t *testing.T) {
    cases := []struct {
        kind isfdb.Kind
        want int
    }{
        {isfdb.KindNotFound, http.StatusNotFound},
        {isfdb.KindAuthRequired, http.StatusUnauthorized},
        {isfdb.KindParse, http.StatusBadGateway},
        {isfdb.KindTransient, http.StatusServiceUnavailable},
    }
    for _, c := range cases {
        svc := &fakeService{err: &isfdb.Error{Kind: c.kind, Op: "publication"}}
        rec := get(t, NewHandler(svc, resolve.DefaultOptions()), "/resolve?id=isfdb:1")
        if rec.Code != c.want {
            t.Fatalf("%s: status %d want %d", c.kind, rec.Code, c.want)
        }
        var resp errorResponse
        _ = json.Unmarshal(rec.Body.Bytes(), &resp)
        if resp.Kind != c.kind.String() {
            t.Fatalf("%s: kind %q", c.kind, resp.Kind)
        }
    }
}

func TestBadRequest(t *testing.T) {
    h := NewHandler(&fakeService{}, resolve.DefaultOptions())
    if rec := get(t, h, "/resolve"); rec.Code != http.StatusBadRequest {
        t.Fatalf("empty input: %d", rec.Code)
    }
    if rec := get(t, h, "/resolve?id=nocolon"); rec.Code != http.StatusBadRequest {
        t.Fatalf("bad pair: %d", rec.Code)
    }
    if rec := get(t, h, "/covers?title=x&max=-1"); rec.Code != http.StatusBadRequest {
        t.Fatalf("bad max: %d", rec.Code)
    }
}

func TestCoversEndpoint(t *testing.T) {
    svc := &fakeService{
        out:    resolve.Outcome{Strategy: resolve.StrategyTitleExact, Matches: []resolve.Match{{Title: &isfdb.Title{ID: 9}}}},
        covers: []string{"https://img/1.jpg"},
    }
    rec := get(t, NewHandler(svc, resolve.DefaultOptions()), "/covers?id=isfdb-title:9&max=3")
    if rec.Code != http.StatusOK {
        t.Fatalf("status %d", rec.Code)
    }
    var resp coversResponse
    if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
        t.Fatal(err)
    }
    if resp.Strategy != "title_exact" || len(resp.Covers) != 1 || svc.gotMax != 3 {
        t.Fatalf("resp: %+v max=%d", resp, svc.gotMax)
    }
}

func TestHealthAndMetrics(t *testing.T) {
    h := NewHandler(&fakeService{}, resolve.DefaultOptions())
    if rec := get(t, h, "/healthz"); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok":true`) {
        t.Fatalf("healthz: %d %s", rec.Code, rec.Body.String())
    }
    _ = get(t, h, "/healthz")
    rec := get(t, h, "/metrics")
    if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "isfdbmeta_http_requests_total") {
        t.Fatalf("metrics: %d", rec.Code)
    }
}

func TestMetricsUseRoutePatterns(t *testing.T) {
    h := NewHandler(&fakeService{}, resolve.DefaultOptions())
    if rec := get(t, h, "/wp-admin/setup-config.php"); rec.Code != http.StatusNotFound {
        t.Fatalf("unknown path: %d", rec.Code)
    }
    _ = get(t, h, "/healthz")
    body := get(t, h, "/metrics").Body.String()
    if strings.Contains(body, "wp-admin") {
        t.Fatalf("raw path leaked into metric labels")
    }
    if !strings.Contains(body, `path="unmatched"`) || !strings.Contains(body, `path="/healthz"`) {
        t.Fatalf("route labels missing")
    }
}

func TestErrorCarriesRequestID(t *testing.T) {
    svc := &fakeService{err: &isfdb.Error{Kind: isfdb.KindTransient, Op: "search"}}
    req := httptest.NewRequest(http.MethodGet, "/resolve?title=x", nil)
    req.Header.Set("X-Request-ID", "req-7")
    rec := httptest.NewRecorder()
    NewHandler(svc, resolve.DefaultOptions()).ServeHTTP(rec, req)
    var resp errorResponse
    if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
        t.Fatal(err)
    }
    if resp.RequestID != "req-7" || resp.Kind != "transient" {
        t.Fatalf("resp: %+v", resp)
    }
}
