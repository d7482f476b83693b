package httpx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ErrLoginRedirect is returned when a request ends on a login page, meaning
// the supplied session is missing or expired.
var ErrLoginRedirect = errors.New("httpx: redirected to login")

// DefaultLoginMarkers are URL fragments of the remote's login pages.
var DefaultLoginMarkers = []string{"dologin.cgi", "Special:UserLogin", "/login"}

const maxBody = 4 << 20

// Page is a fetched response body with the URL the request finally landed on.
type Page struct {
	Body        []byte
	FinalURL    string
	StatusCode  int
	ContentType string
}

// Session performs authenticated GETs. Implementations must be safe for
// concurrent use; the resolver only reads through them.
type Session interface {
	Get(ctx context.Context, url string) (*Page, error)
}

// Options configures NewSession.
type Options struct {
	Doer              Doer
	UserAgent         string
	Timeout           time.Duration
	RequestsPerSecond float64
	// Cookies are sent on every request as supplied; they are never refreshed.
	Cookies      map[string]string
	LoginMarkers []string
}

type session struct {
	doer    Doer
	ua      string
	cookie  string
	markers []string
	limiter *rate.Limiter
}

// NewSession returns a Session over opts.Doer (an http.Client with
// opts.Timeout when nil). A zero RequestsPerSecond disables throttling.
func NewSession(opts Options) Session {
	s := &session{doer: opts.Doer, ua: opts.UserAgent, markers: opts.LoginMarkers}
	if s.doer == nil {
		to := opts.Timeout
		if to <= 0 {
			to = 20 * time.Second
		}
		s.doer = &http.Client{Timeout: to}
	}
	if len(s.markers) == 0 {
		s.markers = DefaultLoginMarkers
	}
	if opts.RequestsPerSecond > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	s.cookie = cookieHeader(opts.Cookies)
	return s
}

func cookieHeader(c map[string]string) string {
	if len(c) == 0 {
		return ""
	}
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, (&http.Cookie{Name: k, Value: c[k]}).String())
	}
	return strings.Join(parts, "; ")
}

func (s *session) Get(ctx context.Context, u string) (*Page, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	SetUA(req, s.ua)
	req.Header.Set("Accept", "text/html")
	if s.cookie != "" {
		req.Header.Set("Cookie", s.cookie)
	}
	resp, err := s.doer.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	final := u
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL.String()
	}
	if final != u && s.isLogin(final) {
		return nil, fmt.Errorf("%w: %s", ErrLoginRedirect, final)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, err
	}
	return &Page{
		Body:        body,
		FinalURL:    final,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

func (s *session) isLogin(u string) bool {
	for _, m := range s.markers {
		if m != "" && strings.Contains(u, m) {
			return true
		}
	}
	return false
}
