package sanitize

import (
    "net/url"
    "strings"

    "github.com/microcosm-cc/bluemonday"

    "isfdbmeta/src/internal/schema"
)

// policy allows the inline markup the remote uses in notes and content
// listings (lists, links, emphasis, line breaks) and nothing else.
var policy = func() *bluemonday.Policy {
    p := bluemonday.NewPolicy()
    p.AllowElements("p", "br", "ul", "ol", "li", "b", "i", "em", "strong", "cite", "div", "span")
    p.AllowAttrs("href").OnElements("a")
    p.AllowStandardURLs()
    p.RequireNoFollowOnLinks(false)
    return p
}()

// CleanString trims and removes ASCII control characters except tab/newline/carriage
// return up to max runes (if max <= 0, no truncation).
func CleanString(s string, max int) string {
    s = strings.TrimSpace(s)
    if s == "" {
        return s
    }
    var b strings.Builder
    n := 0
    for _, r := range s {
        if r == '\n' || r == '\t' || r == '\r' || (r >= 0x20 && r != 0x7f) {
            b.WriteRune(r)
            n++
            if max > 0 && n >= max {
                break
            }
        }
    }
    return strings.TrimSpace(b.String())
}

// CleanURL returns a validated http/https URL or empty string.
func CleanURL(raw string) string {
    raw = strings.TrimSpace(raw)
    if raw == "" {
        return ""
    }
    u, err := url.Parse(raw)
    if err != nil || u.Scheme == "" || u.Host == "" {
        return ""
    }
    if u.Scheme != "http" && u.Scheme != "https" {
        return ""
    }
    u.Path = strings.ReplaceAll(u.Path, " ", "%20")
    return u.String()
}

// CleanHTML strips everything outside the allowed inline subset.
func CleanHTML(s string) string {
    s = strings.TrimSpace(s)
    if s == "" {
        return ""
    }
    return strings.TrimSpace(policy.Sanitize(s))
}

// CleanTags trims and dedupes tags, keeping first-seen order and case.
func CleanTags(tags []string) []string {
    if len(tags) == 0 {
        return nil
    }
    const maxLen = 128
    seen := map[string]bool{}
    out := make([]string, 0, len(tags))
    for _, t := range tags {
        t = CleanString(t, maxLen)
        k := strings.ToLower(t)
        if t == "" || seen[k] {
            continue
        }
        seen[k] = true
        out = append(out, t)
    }
    if len(out) == 0 {
        return nil
    }
    return out
}

// CleanAuthors trims names and drops blanks; order is preserved.
func CleanAuthors(authors []string) []string {
    if len(authors) == 0 {
        return nil
    }
    out := make([]string, 0, len(authors))
    for _, a := range authors {
        if a = CleanString(a, 256); a != "" {
            out = append(out, a)
        }
    }
    if len(out) == 0 {
        return nil
    }
    return out
}

// CleanMetadata applies conservative sanitization to every string in m.
func CleanMetadata(m *schema.Metadata) {
    if m == nil { return }
    m.Title = CleanString(m.Title, 1024)
    m.Authors = CleanAuthors(m.Authors)
    m.Publisher = CleanString(m.Publisher, 512)
    m.Language = CleanString(m.Language, 16)
    m.Tags = CleanTags(m.Tags)
    m.Comments = CleanHTML(m.Comments)
    m.CoverURL = CleanURL(m.CoverURL)
    m.SourceURL = CleanURL(m.SourceURL)
    if m.Series != nil {
        m.Series.Name = CleanString(m.Series.Name, 512)
        m.Series.Index = CleanString(m.Series.Index, 32)
        if m.Series.Name == "" {
            m.Series = nil
        }
    }
    for k, v := range m.Identifiers {
        if v = CleanString(v, 64); v == "" {
            delete(m.Identifiers, k)
        } else {
            m.Identifiers[k] = v
        }
    }
}
