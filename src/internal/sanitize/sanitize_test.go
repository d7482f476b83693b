package sanitize

import (
    "net/url"
    "strings"
    "testing"
    "unicode/utf8"

    "isfdbmeta/src/internal/schema"
)

func TestCleanString(t *testing.T) {
    in := "  \tHello\x00World\n  "
    out := CleanString(in, 100)
    if out != "HelloWorld" {
        t.Fatalf("CleanString unexpected: %q", out)
    }
    if s := CleanString("abcdef", 3); s != "abc" {
        t.Fatalf("CleanString truncation: want 'abc', got %q", s)
    }
    if s := CleanString("Übersetzung", 2); s != "Üb" {
        t.Fatalf("CleanString counts runes: got %q", s)
    }
    if !utf8.ValidString(out) {
        t.Fatalf("CleanString produced invalid utf8")
    }
}

func TestCleanURL(t *testing.T) {
    if CleanURL("") != "" { t.Fatalf("CleanURL empty should be empty") }
    if CleanURL("not a url") != "" { t.Fatalf("CleanURL invalid should be empty") }
    u := CleanURL("https://example.com/a b")
    if _, err := url.Parse(u); err != nil { t.Fatalf("CleanURL not parseable: %v", err) }
    if CleanURL("ftp://x") != "" { t.Fatalf("only http/https allowed") }
}

func TestCleanHTML(t *testing.T) {
    got := CleanHTML(`<p>Notes <b>bold</b><script>alert(1)</script></p><a href="https://www.isfdb.org/x" onclick="x()">l</a>`)
    if strings.Contains(got, "script") || strings.Contains(got, "onclick") {
        t.Fatalf("unsafe markup survived: %q", got)
    }
    if !strings.Contains(got, "<b>bold</b>") || !strings.Contains(got, `href="https://www.isfdb.org/x"`) {
        t.Fatalf("allowed markup lost: %q", got)
    }
    if CleanHTML("   ") != "" { t.Fatalf("blank should be empty") }
}

func TestCleanTags(t *testing.T) {
    out := CleanTags([]string{" Space Opera ", "space opera", "Robots"})
    if len(out) != 2 || out[0] != "Space Opera" || out[1] != "Robots" {
        t.Fatalf("CleanTags: %v", out)
    }
}

func TestCleanMetadata(t *testing.T) {
    m := schema.Metadata{
        Title:       "  Dune ",
        Authors:     []string{" ", "Frank Herbert "},
        Identifiers: map[string]string{"isfdb": " 1 ", "isbn": " "},
        Series:      &schema.Series{Name: " "},
        CoverURL:    "javascript:alert(1)",
        Comments:    "<p>ok</p><iframe></iframe>",
    }
    CleanMetadata(&m)
    if m.Title != "Dune" || len(m.Authors) != 1 || m.Authors[0] != "Frank Herbert" {
        t.Fatalf("strings not cleaned: %+v", m)
    }
    if m.Identifiers["isfdb"] != "1" { t.Fatalf("id not trimmed: %v", m.Identifiers) }
    if _, ok := m.Identifiers["isbn"]; ok { t.Fatalf("blank id kept: %v", m.Identifiers) }
    if m.Series != nil { t.Fatalf("blank series kept") }
    if m.CoverURL != "" { t.Fatalf("bad cover url kept: %q", m.CoverURL) }
    if m.Comments != "<p>ok</p>" { t.Fatalf("comments: %q", m.Comments) }
    CleanMetadata(nil)
}
