// Package config loads resolver settings from defaults, an optional YAML
// file and ISFDB_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"isfdbmeta/src/internal/httpx"
	"isfdbmeta/src/internal/isfdb"
	"isfdbmeta/src/internal/resolve"
)

const DefaultPath = "isfdb.yaml"

type Config struct {
	BaseURL           string            `yaml:"base_url"`
	Timeout           time.Duration     `yaml:"timeout"`
	UserAgent         string            `yaml:"user_agent"`
	RequestsPerSecond float64           `yaml:"requests_per_second"`
	Cookies           map[string]string `yaml:"cookies"`
	LoginMarkers      []string          `yaml:"login_markers"`
	PageCacheSize     int               `yaml:"page_cache_size"`

	MaxSearchResults   int  `yaml:"max_search_results"`
	MaxCovers          int  `yaml:"max_covers"`
	SearchPublications bool `yaml:"search_publications"`
	SearchTitles       bool `yaml:"search_titles"`
	CombineSeries      bool `yaml:"combine_series"`

	LogLevel string `yaml:"log_level"`
}

func Default() Config {
	o := resolve.DefaultOptions()
	return Config{
		BaseURL:            isfdb.DefaultBaseURL,
		Timeout:            20 * time.Second,
		UserAgent:          httpx.DefaultUA,
		RequestsPerSecond:  1,
		LoginMarkers:       append([]string(nil), httpx.DefaultLoginMarkers...),
		MaxSearchResults:   o.MaxSearchResults,
		MaxCovers:          o.MaxCovers,
		SearchPublications: o.SearchPublications,
		SearchTitles:       o.SearchTitles,
		CombineSeries:      o.CombineSeries,
		LogLevel:           "info",
	}
}

// Load reads path over the defaults (a missing file is not an error) and
// then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, err
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("config: invalid YAML in %s: %w", path, err)
			}
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("config: base_url is required")
	}
	if c.MaxSearchResults < 0 || c.MaxCovers < 0 || c.PageCacheSize < 0 {
		return errors.New("config: limits must not be negative")
	}
	if c.RequestsPerSecond < 0 {
		return errors.New("config: requests_per_second must not be negative")
	}
	return nil
}

// Options returns the per-call resolver settings.
func (c Config) Options() resolve.Options {
	return resolve.Options{
		MaxSearchResults:   c.MaxSearchResults,
		MaxCovers:          c.MaxCovers,
		SearchPublications: c.SearchPublications,
		SearchTitles:       c.SearchTitles,
		CombineSeries:      c.CombineSeries,
	}
}

// SessionOptions returns the transport settings; doer may be nil.
func (c Config) SessionOptions(doer httpx.Doer) httpx.Options {
	return httpx.Options{
		Doer:              doer,
		UserAgent:         c.UserAgent,
		Timeout:           c.Timeout,
		RequestsPerSecond: c.RequestsPerSecond,
		Cookies:           c.Cookies,
		LoginMarkers:      c.LoginMarkers,
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	var errs []error
	num := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("config: %s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	flag := func(key string, dst *bool) {
		if v, ok := lookup(key); ok && v != "" {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("config: %s: %w", key, err))
				return
			}
			*dst = b
		}
	}

	str("ISFDB_BASE_URL", &c.BaseURL)
	str("ISFDB_USER_AGENT", &c.UserAgent)
	str("ISFDB_LOG_LEVEL", &c.LogLevel)
	num("ISFDB_MAX_SEARCH_RESULTS", &c.MaxSearchResults)
	num("ISFDB_MAX_COVERS", &c.MaxCovers)
	num("ISFDB_PAGE_CACHE_SIZE", &c.PageCacheSize)
	flag("ISFDB_SEARCH_PUBLICATIONS", &c.SearchPublications)
	flag("ISFDB_SEARCH_TITLES", &c.SearchTitles)
	flag("ISFDB_COMBINE_SERIES", &c.CombineSeries)
	if v, ok := lookup("ISFDB_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("config: ISFDB_TIMEOUT: %w", err))
		} else {
			c.Timeout = d
		}
	}
	if v, ok := lookup("ISFDB_REQUESTS_PER_SECOND"); ok && v != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: ISFDB_REQUESTS_PER_SECOND: %w", err))
		} else {
			c.RequestsPerSecond = f
		}
	}
	// ISFDB_COOKIES="name=value; other=value" as copied from a browser
	if v, ok := lookup("ISFDB_COOKIES"); ok && strings.TrimSpace(v) != "" {
		c.Cookies = ParseCookies(v)
	}
	return errors.Join(errs...)
}

// ParseCookies reads a "name=value; name2=value2" header string.
func ParseCookies(s string) map[string]string {
	out := map[string]string{}
	for _, part := range strings.Split(s, ";") {
		name, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if ok && strings.TrimSpace(name) != "" {
			out[strings.TrimSpace(name)] = strings.TrimSpace(value)
		}
	}
	return out
}
