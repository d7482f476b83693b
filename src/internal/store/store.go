package store

import (
    "encoding/json"
    "errors"
    "fmt"
    "io/fs"
    "os"
    "path/filepath"
    "regexp"
    "sort"
    "strings"

    "gopkg.in/yaml.v3"

    "isfdbmeta/src/internal/identifiers"
    "isfdbmeta/src/internal/schema"
)

// Library layout under a caller-chosen root directory.
const (
    PublicationsDir = "publications"
    TitlesDir       = "titles"
    IndexDir        = "index"
    AuthorsJSON     = "authors.json"
    TitlesJSON      = "titles.json"
    ISBNJSON        = "isbn.json"
)

// Result is one batch entry's outcome as written to the results file.
type Result struct {
    Entry     identifiers.Entry `yaml:"entry" json:"entry"`
    Strategy  string            `yaml:"strategy" json:"strategy"`
    Records   []schema.Metadata `yaml:"records" json:"records"`
    Covers    []string          `yaml:"covers,omitempty" json:"covers,omitempty"`
    Error     string            `yaml:"error,omitempty" json:"error,omitempty"`
    ErrorKind string            `yaml:"error_kind,omitempty" json:"error_kind,omitempty"`
}

// ReadEntries loads a YAML list of catalog entries.
func ReadEntries(path string) ([]identifiers.Entry, error) {
    data, err := os.ReadFile(path)
    if err != nil { return nil, err }
    var entries []identifiers.Entry
    if err := yaml.Unmarshal(data, &entries); err != nil {
        return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
    }
    for i, e := range entries {
        if len(e.Identifiers) == 0 && strings.TrimSpace(e.Title) == "" && len(e.Authors) == 0 {
            return nil, fmt.Errorf("entry %d in %s has no identifiers, title or authors", i+1, path)
        }
    }
    return entries, nil
}

// WriteResults writes results as one YAML document, creating parent dirs.
func WriteResults(path string, results []Result) error {
    if dir := filepath.Dir(path); dir != "." {
        if err := os.MkdirAll(dir, 0o755); err != nil { return err }
    }
    buf, err := yaml.Marshal(results)
    if err != nil { return err }
    return os.WriteFile(path, buf, 0o644)
}

// recordPath returns the root-relative path of a record's YAML file, or ""
// when the record carries no remote id.
func recordPath(m schema.Metadata) string {
    if id := strings.TrimSpace(m.Identifiers[schema.IDPublication]); id != "" {
        return filepath.ToSlash(filepath.Join(PublicationsDir, id+".yaml"))
    }
    if id := strings.TrimSpace(m.Identifiers[schema.IDTitle]); id != "" {
        return filepath.ToSlash(filepath.Join(TitlesDir, id+".yaml"))
    }
    return ""
}

// WriteRecord validates m and writes it to <root>/publications/<id>.yaml, or
// <root>/titles/<id>.yaml for title-only records. Rewrites replace the file.
func WriteRecord(root string, m schema.Metadata) (string, error) {
    if err := m.Validate(); err != nil { return "", err }
    rel := recordPath(m)
    path := filepath.Join(root, filepath.FromSlash(rel))
    if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { return "", err }
    buf, err := yaml.Marshal(m)
    if err != nil { return "", err }
    if err := os.WriteFile(path, buf, 0o644); err != nil { return "", err }
    return path, nil
}

// ReadLibrary loads, validates, and returns all records under root.
func ReadLibrary(root string) ([]schema.Metadata, error) {
    var list []schema.Metadata
    if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
        return list, nil
    }
    for _, seg := range []string{PublicationsDir, TitlesDir} {
        dir := filepath.Join(root, seg)
        if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
            continue
        }
        err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
            if err != nil { return err }
            if d.IsDir() || !strings.HasSuffix(path, ".yaml") { return nil }
            data, err := os.ReadFile(path)
            if err != nil { return err }
            var m schema.Metadata
            if err := yaml.Unmarshal(data, &m); err != nil {
                return fmt.Errorf("invalid YAML in %s: %w", path, err)
            }
            if err := m.Validate(); err != nil {
                return fmt.Errorf("invalid record in %s: %w", path, err)
            }
            list = append(list, m)
            return nil
        })
        if err != nil { return nil, err }
    }
    return list, nil
}

func writeJSON(root, name string, v any) (string, error) {
    dir := filepath.Join(root, IndexDir)
    if err := os.MkdirAll(dir, 0o755); err != nil { return "", err }
    target := filepath.Join(dir, name)
    b, err := json.MarshalIndent(v, "", "  ")
    if err != nil { return "", err }
    if err := os.WriteFile(target, b, 0o644); err != nil { return "", err }
    return target, nil
}

// BuildAuthorIndex writes index/authors.json mapping author -> record paths.
func BuildAuthorIndex(root string, list []schema.Metadata) (string, error) {
    index := map[string][]string{}
    for _, m := range list {
        path := recordPath(m)
        seen := map[string]bool{}
        for _, a := range m.Authors {
            a = strings.TrimSpace(a)
            if a == "" || seen[a] { continue }
            seen[a] = true
            index[a] = append(index[a], path)
        }
    }
    for k := range index {
        sort.Strings(index[k])
    }
    return writeJSON(root, AuthorsJSON, index)
}

// BuildTitleIndex writes index/titles.json mapping title word -> record paths.
func BuildTitleIndex(root string, list []schema.Metadata) (string, error) {
    index := map[string][]string{}
    for _, m := range list {
        path := recordPath(m)
        seen := map[string]bool{}
        for _, w := range tokenizeWords(m.Title) {
            if seen[w] { continue }
            seen[w] = true
            index[w] = append(index[w], path)
        }
    }
    for k := range index {
        sort.Strings(index[k])
    }
    return writeJSON(root, TitlesJSON, index)
}

// BuildISBNIndex writes index/isbn.json mapping ISBN -> record path.
func BuildISBNIndex(root string, list []schema.Metadata) (string, error) {
    index := map[string]string{}
    for _, m := range list {
        isbn := strings.TrimSpace(m.Identifiers[schema.IDISBN])
        if isbn == "" { continue }
        index[isbn] = recordPath(m)
    }
    return writeJSON(root, ISBNJSON, index)
}

// BuildIndexes rebuilds every index and returns the written paths.
func BuildIndexes(root string, list []schema.Metadata) ([]string, error) {
    var out []string
    for _, b := range []func(string, []schema.Metadata) (string, error){BuildAuthorIndex, BuildTitleIndex, BuildISBNIndex} {
        p, err := b(root, list)
        if err != nil { return out, err }
        out = append(out, p)
    }
    return out, nil
}

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// tokenizeWords splits a phrase into lowercased word tokens, filtering 1-character tokens.
func tokenizeWords(s string) []string {
    s = strings.TrimSpace(s)
    if s == "" { return nil }
    parts := nonWord.Split(s, -1)
    out := make([]string, 0, len(parts))
    for _, p := range parts {
        p = strings.ToLower(p)
        if len([]rune(p)) >= 2 {
            out = append(out, p)
        }
    }
    return out
}
